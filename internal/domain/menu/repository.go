package menu

import (
	"context"

	"github.com/google/uuid"
)

// CategoryRepository persists categories. Every method is scoped by the
// owning business.
type CategoryRepository interface {
	// FindByIDForBusiness returns shared.ErrNotFound for a wrong id or wrong business
	FindByIDForBusiness(ctx context.Context, businessID, id uuid.UUID) (*Category, error)

	// FindAllForBusiness returns all categories ordered by name
	FindAllForBusiness(ctx context.Context, businessID uuid.UUID) ([]Category, error)

	// Create inserts a new category
	Create(ctx context.Context, category *Category) error

	// Update writes name, description and image, scoped to the category's business
	Update(ctx context.Context, category *Category) error

	// DeleteForBusiness removes the category and, through the foreign key, its
	// menu items. It returns the image paths that are no longer referenced.
	DeleteForBusiness(ctx context.Context, businessID, id uuid.UUID) (*CategoryDeletion, error)
}

// CategoryDeletion describes the rows removed by a category delete
type CategoryDeletion struct {
	Category       Category
	ItemCount      int
	ItemImagePaths []string
}

// OrphanedImages returns every image path released by the delete
func (d *CategoryDeletion) OrphanedImages() []string {
	paths := make([]string, 0, len(d.ItemImagePaths)+1)
	if d.Category.ImagePath != "" {
		paths = append(paths, d.Category.ImagePath)
	}
	for _, p := range d.ItemImagePaths {
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// MenuItemFilter narrows a menu item listing
type MenuItemFilter struct {
	CategoryID *uuid.UUID
	Status     ItemStatus
}

// MenuItemRepository persists menu items
type MenuItemRepository interface {
	// FindByID loads an item without tenant scoping, for ownership checks
	FindByID(ctx context.Context, id uuid.UUID) (*MenuItem, error)

	// FindByIDForBusiness loads an item whose own and category business both match
	FindByIDForBusiness(ctx context.Context, businessID, id uuid.UUID) (*MenuItemView, error)

	// FindAllForBusiness lists items ordered by category name, then item name.
	// Both the item and its category must belong to businessID.
	FindAllForBusiness(ctx context.Context, businessID uuid.UUID, filter MenuItemFilter) ([]MenuItemView, error)

	// Create inserts a new item
	Create(ctx context.Context, item *MenuItem) error

	// UpdateForBusiness writes the item where (id, business_id) match;
	// shared.ErrNotFound when no row changed
	UpdateForBusiness(ctx context.Context, businessID uuid.UUID, item *MenuItem) error

	// DeleteForBusiness deletes where (id, business_id) match;
	// shared.ErrNotFound when no row changed
	DeleteForBusiness(ctx context.Context, businessID, id uuid.UUID) error
}
