package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jpcardenasg/esencia-backend/pkg/db/models"
)

// PerfumeRepository exposes persistence operations for catalog perfumes.
type PerfumeRepository struct {
	db *gorm.DB
}

// NewPerfumeRepository constructs a perfume repository bound to the provided DB.
func NewPerfumeRepository(db *gorm.DB) *PerfumeRepository {
	return &PerfumeRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *PerfumeRepository) WithTx(tx *gorm.DB) *PerfumeRepository {
	if tx == nil {
		return r
	}
	return &PerfumeRepository{db: tx}
}

// Create inserts a perfume along with its associations.
func (r *PerfumeRepository) Create(ctx context.Context, perfume *models.Perfume) (*models.Perfume, error) {
	if err := r.db.WithContext(ctx).Create(perfume).Error; err != nil {
		return nil, err
	}
	return perfume, nil
}

// Save persists scalar fields of a perfume without touching associations.
func (r *PerfumeRepository) Save(ctx context.Context, perfume *models.Perfume) (*models.Perfume, error) {
	if err := r.db.WithContext(ctx).Omit("Categories", "Notes").Save(perfume).Error; err != nil {
		return nil, err
	}
	return perfume, nil
}

// FindByID loads a perfume with its categories and notes.
func (r *PerfumeRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Perfume, error) {
	var perfume models.Perfume
	err := r.db.WithContext(ctx).
		Preload("Categories").
		Preload("Notes").
		Where("id = ?", id).
		First(&perfume).Error
	if err != nil {
		return nil, err
	}
	return &perfume, nil
}

// List returns all perfumes with associations.
func (r *PerfumeRepository) List(ctx context.Context) ([]models.Perfume, error) {
	var rows []models.Perfume
	err := r.db.WithContext(ctx).
		Preload("Categories").
		Preload("Notes").
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListByCategory returns perfumes attached to the given category.
func (r *PerfumeRepository) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Perfume, error) {
	var rows []models.Perfume
	err := r.db.WithContext(ctx).
		Preload("Categories").
		Preload("Notes").
		Joins("JOIN perfume_categories pc ON pc.perfume_id = perfumes.id").
		Where("pc.category_id = ?", categoryID).
		Order("perfumes.created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// SearchByName returns perfumes whose name contains the fragment, case
// insensitively. LOWER/LIKE keeps the query portable across backends.
func (r *PerfumeRepository) SearchByName(ctx context.Context, fragment string) ([]models.Perfume, error) {
	var rows []models.Perfume
	pattern := "%" + strings.ToLower(strings.TrimSpace(fragment)) + "%"
	err := r.db.WithContext(ctx).
		Preload("Categories").
		Preload("Notes").
		Where("LOWER(name) LIKE ?", pattern).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ReplaceCategories swaps the perfume's category set.
func (r *PerfumeRepository) ReplaceCategories(ctx context.Context, perfume *models.Perfume, categories []models.Category) error {
	return r.db.WithContext(ctx).Model(perfume).Association("Categories").Replace(categories)
}

// ReplaceNotes swaps the perfume's note set.
func (r *PerfumeRepository) ReplaceNotes(ctx context.Context, perfume *models.Perfume, notes []models.OlfactoryNote) error {
	return r.db.WithContext(ctx).Model(perfume).Association("Notes").Replace(notes)
}

// CountInvoiceReferences reports how many invoice line items still point at
// the perfume. A non-zero count blocks deletion.
func (r *PerfumeRepository) CountInvoiceReferences(ctx context.Context, perfumeID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.InvoiceItem{}).
		Where("perfume_id = ?", perfumeID).
		Count(&count).Error
	return count, err
}

// DetachAssociations removes the perfume's join-table rows.
func (r *PerfumeRepository) DetachAssociations(ctx context.Context, perfumeID uuid.UUID) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Exec("DELETE FROM perfume_categories WHERE perfume_id = ?", perfumeID).Error; err != nil {
		return err
	}
	return tx.Exec("DELETE FROM perfume_notes WHERE perfume_id = ?", perfumeID).Error
}

// ClearCartReferences nulls out cart line items pointing at the perfume.
func (r *PerfumeRepository) ClearCartReferences(ctx context.Context, perfumeID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("perfume_id = ?", perfumeID).
		Update("perfume_id", nil).Error
}

// Delete removes a perfume row.
func (r *PerfumeRepository) Delete(ctx context.Context, perfumeID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", perfumeID).Delete(&models.Perfume{}).Error
}
