package custom

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jpcardenasg/esencia-backend/pkg/db/models"
)

// Repository exposes persistence operations for custom perfumes.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a custom perfume repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// Create inserts a custom perfume along with its note set.
func (r *Repository) Create(ctx context.Context, perfume *models.CustomPerfume) (*models.CustomPerfume, error) {
	if err := r.db.WithContext(ctx).Create(perfume).Error; err != nil {
		return nil, err
	}
	return perfume, nil
}

// Save persists scalar fields without touching the note association.
func (r *Repository) Save(ctx context.Context, perfume *models.CustomPerfume) (*models.CustomPerfume, error) {
	if err := r.db.WithContext(ctx).Omit("Notes").Save(perfume).Error; err != nil {
		return nil, err
	}
	return perfume, nil
}

// ReplaceNotes swaps the blend's note set.
func (r *Repository) ReplaceNotes(ctx context.Context, perfume *models.CustomPerfume, notes []models.OlfactoryNote) error {
	return r.db.WithContext(ctx).Model(perfume).Association("Notes").Replace(notes)
}

// FindByID loads a custom perfume with its notes.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.CustomPerfume, error) {
	var perfume models.CustomPerfume
	err := r.db.WithContext(ctx).
		Preload("Notes").
		Where("id = ?", id).
		First(&perfume).Error
	if err != nil {
		return nil, err
	}
	return &perfume, nil
}

// List returns every custom perfume.
func (r *Repository) List(ctx context.Context) ([]models.CustomPerfume, error) {
	var rows []models.CustomPerfume
	err := r.db.WithContext(ctx).
		Preload("Notes").
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListByUser returns the user's custom perfumes.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CustomPerfume, error) {
	var rows []models.CustomPerfume
	err := r.db.WithContext(ctx).
		Preload("Notes").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListApproved returns blends cleared for the public catalog.
func (r *Repository) ListApproved(ctx context.Context) ([]models.CustomPerfume, error) {
	var rows []models.CustomPerfume
	err := r.db.WithContext(ctx).
		Preload("Notes").
		Where("approved = ?", true).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Delete removes a custom perfume and its join rows, nulling any cart or
// invoice line references. The removal is unconditional.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Exec("DELETE FROM custom_perfume_notes WHERE custom_perfume_id = ?", id).Error; err != nil {
		return err
	}
	if err := tx.Model(&models.CartItem{}).
		Where("custom_perfume_id = ?", id).
		Update("custom_perfume_id", nil).Error; err != nil {
		return err
	}
	if err := tx.Model(&models.InvoiceItem{}).
		Where("custom_perfume_id = ?", id).
		Update("custom_perfume_id", nil).Error; err != nil {
		return err
	}
	return tx.Where("id = ?", id).Delete(&models.CustomPerfume{}).Error
}
