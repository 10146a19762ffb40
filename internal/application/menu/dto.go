package menu

import (
	"time"

	"github.com/google/uuid"
	"github.com/qrmenu/backend/internal/domain/menu"
	"github.com/shopspring/decimal"
)

// CreateCategoryInput contains the input for creating a category
type CreateCategoryInput struct {
	BusinessID  uuid.UUID
	Name        string
	Description string
	Image       *ImageUpload // optional
}

// UpdateCategoryInput contains the input for updating a category
type UpdateCategoryInput struct {
	BusinessID  uuid.UUID
	ID          uuid.UUID
	Name        string
	Description string
	Image       *ImageUpload // optional; replaces the current image
}

// CategoryResult is a category with its resolved image URL
type CategoryResult struct {
	ID          uuid.UUID
	BusinessID  uuid.UUID
	Name        string
	Description string
	ImageURL    string // empty when the category has no image
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DeleteCategoryResult reports what a category delete removed
type DeleteCategoryResult struct {
	ID           uuid.UUID
	DeletedItems int
}

// MenuItemInput holds the client-supplied fields of a menu item. Values are
// kept as received so the service can report which one is invalid.
type MenuItemInput struct {
	CategoryID  string
	Name        string
	Description string
	Price       string
	Status      string
}

// CreateMenuItemInput contains the input for creating a menu item
type CreateMenuItemInput struct {
	BusinessID uuid.UUID
	MenuItemInput
	Image *ImageUpload // optional
}

// UpdateMenuItemInput contains the input for updating a menu item. At most
// one of Image and RemoveImage takes effect; an upload wins.
type UpdateMenuItemInput struct {
	BusinessID uuid.UUID
	ID         uuid.UUID
	MenuItemInput
	Image       *ImageUpload
	RemoveImage bool
}

// MenuItemListFilter narrows the admin item listing
type MenuItemListFilter struct {
	CategoryID *uuid.UUID
}

// MenuItemResult is a menu item with its category name and image URL
type MenuItemResult struct {
	ID           uuid.UUID
	BusinessID   uuid.UUID
	CategoryID   uuid.UUID
	CategoryName string
	Name         string
	Description  string
	Price        decimal.Decimal
	Status       menu.ItemStatus
	ImageURL     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicMenu is the customer-facing projection of a business menu
type PublicMenu struct {
	Restaurant RestaurantInfo
	Categories []PublicCategory
}

// RestaurantInfo describes the business on the public menu
type RestaurantInfo struct {
	Name    string
	Slug    string
	LogoURL string
}

// PublicCategory is a category with its available items
type PublicCategory struct {
	ID          uuid.UUID
	Name        string
	Description string
	ImageURL    string
	Items       []PublicMenuItem
}

// PublicMenuItem is an available menu item
type PublicMenuItem struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       decimal.Decimal
	ImageURL    string
	Status      menu.ItemStatus
}

// QRCodeResult holds a generated menu QR code
type QRCodeResult struct {
	MenuURL string
	DataURL string
}

// PosterResult holds a rendered printable poster
type PosterResult struct {
	Filename string
	PDF      []byte
}
