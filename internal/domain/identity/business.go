package identity

import (
	"strings"
	"time"

	"github.com/qrmenu/backend/internal/domain/shared"
)

// Business is the tenant root. Every category, menu item and user belongs to
// exactly one business, and its slug is the public handle used in menu links.
type Business struct {
	shared.BaseEntity
	Name    string `gorm:"type:varchar(200);not null"`
	Slug    string `gorm:"type:varchar(100);not null;uniqueIndex"`
	LogoURL string `gorm:"column:logo_url;type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Business) TableName() string {
	return "businesses"
}

// NewBusiness creates a new business. When slug is empty it is derived from the name.
func NewBusiness(name, slug string) (*Business, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Business name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Business name cannot exceed 200 characters")
	}

	if slug == "" {
		slug = Slugify(name)
	}
	if err := ValidateSlug(slug); err != nil {
		return nil, err
	}

	return &Business{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Slug:       slug,
	}, nil
}

// SetLogo sets the logo URL
func (b *Business) SetLogo(logoURL string) {
	b.LogoURL = strings.TrimSpace(logoURL)
	b.UpdatedAt = time.Now()
}

// Rename changes the display name. The slug is immutable once published.
func (b *Business) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Business name cannot be empty")
	}
	b.Name = name
	b.UpdatedAt = time.Now()
	return nil
}
