package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/qrmenu/backend/internal/domain/menu"
	"github.com/qrmenu/backend/internal/domain/shared"
	"gorm.io/gorm"
)

var errMenuItemNotFound = shared.NewDomainError("NOT_FOUND", "Menu item not found")

// GormMenuItemRepository implements menu.MenuItemRepository using GORM
type GormMenuItemRepository struct {
	db *gorm.DB
}

// NewGormMenuItemRepository creates a new GormMenuItemRepository
func NewGormMenuItemRepository(db *gorm.DB) *GormMenuItemRepository {
	return &GormMenuItemRepository{db: db}
}

// views selects items joined with their category, requiring both rows to
// belong to businessID.
func (r *GormMenuItemRepository) views(ctx context.Context, businessID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("menu_items AS m").
		Select("m.*, c.name AS category_name").
		Joins("JOIN categories AS c ON c.id = m.category_id").
		Where("m.business_id = ? AND c.business_id = ?", businessID, businessID)
}

// FindByID loads an item regardless of business
func (r *GormMenuItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*menu.MenuItem, error) {
	var item menu.MenuItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&item).Error; err != nil {
		return nil, translateError(err, errMenuItemNotFound)
	}
	return &item, nil
}

// FindByIDForBusiness loads an item with its category name
func (r *GormMenuItemRepository) FindByIDForBusiness(ctx context.Context, businessID, id uuid.UUID) (*menu.MenuItemView, error) {
	var view menu.MenuItemView
	if err := r.views(ctx, businessID).Where("m.id = ?", id).Take(&view).Error; err != nil {
		return nil, translateError(err, errMenuItemNotFound)
	}
	return &view, nil
}

// FindAllForBusiness lists items ordered by category name, then item name
func (r *GormMenuItemRepository) FindAllForBusiness(ctx context.Context, businessID uuid.UUID, filter menu.MenuItemFilter) ([]menu.MenuItemView, error) {
	query := r.views(ctx, businessID)
	if filter.CategoryID != nil {
		query = query.Where("m.category_id = ?", *filter.CategoryID)
	}
	if filter.Status != "" {
		query = query.Where("m.status = ?", filter.Status)
	}

	views := make([]menu.MenuItemView, 0)
	if err := query.Order("c.name ASC, m.name ASC").Find(&views).Error; err != nil {
		return nil, err
	}
	return views, nil
}

// Create inserts a new item; a category that vanished meanwhile is reported
// as an invalid category.
func (r *GormMenuItemRepository) Create(ctx context.Context, item *menu.MenuItem) error {
	err := r.db.WithContext(ctx).Create(item).Error
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return menu.ErrInvalidCategory
	}
	return translateError(err, nil)
}

// UpdateForBusiness writes every mutable column where (id, business_id) match
func (r *GormMenuItemRepository) UpdateForBusiness(ctx context.Context, businessID uuid.UUID, item *menu.MenuItem) error {
	result := r.db.WithContext(ctx).
		Model(&menu.MenuItem{}).
		Where("id = ? AND business_id = ?", item.ID, businessID).
		Updates(map[string]any{
			"category_id": item.CategoryID,
			"name":        item.Name,
			"description": item.Description,
			"price":       item.Price,
			"image_path":  item.ImagePath,
			"status":      item.Status,
			"updated_at":  time.Now(),
		})
	if errors.Is(result.Error, gorm.ErrForeignKeyViolated) {
		return menu.ErrInvalidCategory
	}
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errMenuItemNotFound
	}
	return nil
}

// DeleteForBusiness deletes where (id, business_id) match
func (r *GormMenuItemRepository) DeleteForBusiness(ctx context.Context, businessID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", id, businessID).
		Delete(&menu.MenuItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errMenuItemNotFound
	}
	return nil
}

var _ menu.MenuItemRepository = (*GormMenuItemRepository)(nil)
