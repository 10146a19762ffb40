package menu

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/qrmenu/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ItemStatus controls whether a menu item is shown on the public menu
type ItemStatus string

const (
	ItemStatusAvailable   ItemStatus = "available"
	ItemStatusUnavailable ItemStatus = "unavailable"
)

// ErrInvalidCategory is returned when a menu item references a category that
// does not exist or belongs to another business.
var ErrInvalidCategory = shared.NewDomainError("INVALID_CATEGORY", "invalid category id")

// ParseItemStatus parses a status value; empty input means available
func ParseItemStatus(s string) (ItemStatus, error) {
	switch ItemStatus(strings.ToLower(strings.TrimSpace(s))) {
	case "", ItemStatusAvailable:
		return ItemStatusAvailable, nil
	case ItemStatusUnavailable:
		return ItemStatusUnavailable, nil
	default:
		return "", shared.NewDomainError("INVALID_STATUS", "Status must be available or unavailable")
	}
}

// MenuItem is a dish or drink listed under a category
type MenuItem struct {
	shared.TenantAggregateRoot
	CategoryID  uuid.UUID       `gorm:"column:category_id;not null;index"`
	Name        string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	ImagePath   string          `gorm:"column:image_path;type:varchar(500)"`
	Status      ItemStatus      `gorm:"type:varchar(20);not null;default:'available'"`
}

// TableName returns the table name for GORM
func (MenuItem) TableName() string {
	return "menu_items"
}

// NewMenuItem creates a menu item in the given category. The category must
// belong to businessID.
func NewMenuItem(businessID uuid.UUID, category *Category, name, description string, price decimal.Decimal, status ItemStatus) (*MenuItem, error) {
	if category == nil || !category.BelongsTo(businessID) {
		return nil, ErrInvalidCategory
	}

	item := &MenuItem{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(businessID),
		CategoryID:          category.ID,
	}
	if err := item.apply(name, description, price, status); err != nil {
		return nil, err
	}
	return item, nil
}

// Update replaces the item's details and moves it to category, which must
// belong to the same business as the item.
func (m *MenuItem) Update(category *Category, name, description string, price decimal.Decimal, status ItemStatus) error {
	if category == nil || !category.BelongsTo(m.BusinessID) {
		return ErrInvalidCategory
	}
	if err := m.apply(name, description, price, status); err != nil {
		return err
	}
	m.CategoryID = category.ID
	m.UpdatedAt = time.Now()
	return nil
}

// ReplaceImage points the item at a new stored image (empty removes it) and
// returns the path it replaced.
func (m *MenuItem) ReplaceImage(path string) string {
	previous := m.ImagePath
	m.ImagePath = path
	m.UpdatedAt = time.Now()
	return previous
}

// IsAvailable returns true if the item is visible on the public menu
func (m *MenuItem) IsAvailable() bool {
	return m.Status == ItemStatusAvailable
}

func (m *MenuItem) apply(name, description string, price decimal.Decimal, status ItemStatus) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Menu item name is required")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Menu item name cannot exceed 200 characters")
	}
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if status == "" {
		status = ItemStatusAvailable
	}
	if status != ItemStatusAvailable && status != ItemStatusUnavailable {
		return shared.NewDomainError("INVALID_STATUS", "Status must be available or unavailable")
	}

	m.Name = name
	m.Description = strings.TrimSpace(description)
	m.Price = price
	m.Status = status
	return nil
}

// MenuItemView is a menu item joined with the name of its category
type MenuItemView struct {
	MenuItem
	CategoryName string `gorm:"column:category_name"`
}
