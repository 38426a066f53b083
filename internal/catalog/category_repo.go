package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jpcardenasg/esencia-backend/pkg/db/models"
)

// CategoryRepository exposes persistence operations for categories.
type CategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository constructs a category repository bound to the provided DB.
func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *CategoryRepository) WithTx(tx *gorm.DB) *CategoryRepository {
	if tx == nil {
		return r
	}
	return &CategoryRepository{db: tx}
}

// Create inserts a new category.
func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// Update saves the provided category.
func (r *CategoryRepository) Update(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := r.db.WithContext(ctx).Save(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// FindByID loads a category by id.
func (r *CategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// FindByIDs loads the categories matching the given ids.
func (r *CategoryRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Category, error) {
	var rows []models.Category
	if len(ids) == 0 {
		return rows, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// List returns all categories ordered by name.
func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	var rows []models.Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// DetachFromPerfumes removes the category from every perfume referencing it.
// Must run before Delete to keep the m2m edge consistent.
func (r *CategoryRepository) DetachFromPerfumes(ctx context.Context, categoryID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Exec("DELETE FROM perfume_categories WHERE category_id = ?", categoryID).Error
}

// Delete removes a category row.
func (r *CategoryRepository) Delete(ctx context.Context, categoryID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", categoryID).Delete(&models.Category{}).Error
}
