package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/qrmenu/backend/internal/domain/identity"
	"github.com/qrmenu/backend/internal/domain/shared"
	"gorm.io/gorm"
)

var errBusinessNotFound = shared.NewDomainError("NOT_FOUND", "Business not found")

// GormBusinessRepository implements identity.BusinessRepository using GORM
type GormBusinessRepository struct {
	db *gorm.DB
}

// NewGormBusinessRepository creates a new GormBusinessRepository
func NewGormBusinessRepository(db *gorm.DB) *GormBusinessRepository {
	return &GormBusinessRepository{db: db}
}

// Create inserts a business; a taken slug yields shared.ErrAlreadyExists
func (r *GormBusinessRepository) Create(ctx context.Context, business *identity.Business) error {
	return translateError(r.db.WithContext(ctx).Create(business).Error, nil)
}

// FindByID finds a business by ID
func (r *GormBusinessRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Business, error) {
	var business identity.Business
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&business).Error; err != nil {
		return nil, translateError(err, errBusinessNotFound)
	}
	return &business, nil
}

// FindBySlug finds a business by its public slug
func (r *GormBusinessRepository) FindBySlug(ctx context.Context, slug string) (*identity.Business, error) {
	var business identity.Business
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).Take(&business).Error; err != nil {
		return nil, translateError(err, errBusinessNotFound)
	}
	return &business, nil
}

var _ identity.BusinessRepository = (*GormBusinessRepository)(nil)
