package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/qrmenu/backend/internal/domain/menu"
	"github.com/qrmenu/backend/internal/domain/shared"
	"gorm.io/gorm"
)

var errCategoryNotFound = shared.NewDomainError("NOT_FOUND", "Category not found")

// GormCategoryRepository implements menu.CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// FindByIDForBusiness finds a category by ID within a business
func (r *GormCategoryRepository) FindByIDForBusiness(ctx context.Context, businessID, id uuid.UUID) (*menu.Category, error) {
	var category menu.Category
	if err := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", id, businessID).
		Take(&category).Error; err != nil {
		return nil, translateError(err, errCategoryNotFound)
	}
	return &category, nil
}

// FindAllForBusiness lists a business's categories ordered by name
func (r *GormCategoryRepository) FindAllForBusiness(ctx context.Context, businessID uuid.UUID) ([]menu.Category, error) {
	categories := make([]menu.Category, 0)
	if err := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("name ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Create inserts a new category
func (r *GormCategoryRepository) Create(ctx context.Context, category *menu.Category) error {
	return translateError(r.db.WithContext(ctx).Create(category).Error, nil)
}

// Update writes the mutable columns where both id and business match
func (r *GormCategoryRepository) Update(ctx context.Context, category *menu.Category) error {
	result := r.db.WithContext(ctx).
		Model(&menu.Category{}).
		Where("id = ? AND business_id = ?", category.ID, category.BusinessID).
		Updates(map[string]any{
			"name":        category.Name,
			"description": category.Description,
			"image_path":  category.ImagePath,
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return translateError(result.Error, errCategoryNotFound)
	}
	if result.RowsAffected == 0 {
		return errCategoryNotFound
	}
	return nil
}

// DeleteForBusiness deletes the category and its items in one transaction and
// reports which image paths the removed rows referenced.
func (r *GormCategoryRepository) DeleteForBusiness(ctx context.Context, businessID, id uuid.UUID) (*menu.CategoryDeletion, error) {
	deletion := &menu.CategoryDeletion{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND business_id = ?", id, businessID).
			Take(&deletion.Category).Error; err != nil {
			return translateError(err, errCategoryNotFound)
		}

		var itemCount int64
		if err := tx.Model(&menu.MenuItem{}).
			Where("category_id = ?", id).
			Count(&itemCount).Error; err != nil {
			return err
		}
		deletion.ItemCount = int(itemCount)

		if err := tx.Model(&menu.MenuItem{}).
			Where("category_id = ? AND image_path <> ''", id).
			Pluck("image_path", &deletion.ItemImagePaths).Error; err != nil {
			return err
		}

		// The foreign key cascades as well; deleting explicitly keeps the
		// result independent of whether the connection enforces it.
		if err := tx.Where("category_id = ?", id).Delete(&menu.MenuItem{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ? AND business_id = ?", id, businessID).Delete(&menu.Category{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errCategoryNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deletion, nil
}

var _ menu.CategoryRepository = (*GormCategoryRepository)(nil)
