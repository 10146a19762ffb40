package menu

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/qrmenu/backend/internal/domain/shared"
)

// Category groups menu items of one business
type Category struct {
	shared.TenantAggregateRoot
	Name        string `gorm:"type:varchar(100);not null"`
	Description string `gorm:"type:text"`
	ImagePath   string `gorm:"column:image_path;type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category owned by the given business
func NewCategory(businessID uuid.UUID, name, description string) (*Category, error) {
	name = strings.TrimSpace(name)
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}

	return &Category{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(businessID),
		Name:                name,
		Description:         strings.TrimSpace(description),
	}, nil
}

// Update replaces the category's name and description
func (c *Category) Update(name, description string) error {
	name = strings.TrimSpace(name)
	if err := validateCategoryName(name); err != nil {
		return err
	}

	c.Name = name
	c.Description = strings.TrimSpace(description)
	c.UpdatedAt = time.Now()
	return nil
}

// ReplaceImage points the category at a new stored image and returns the
// path it replaced, which is empty when there was none.
func (c *Category) ReplaceImage(path string) string {
	previous := c.ImagePath
	c.ImagePath = path
	c.UpdatedAt = time.Now()
	return previous
}

// HasImage returns true if an image is attached
func (c *Category) HasImage() bool {
	return c.ImagePath != ""
}

func validateCategoryName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name is required")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 100 characters")
	}
	return nil
}
