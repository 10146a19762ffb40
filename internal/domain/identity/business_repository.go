package identity

import (
	"context"

	"github.com/google/uuid"
)

// BusinessRepository defines the interface for business persistence
type BusinessRepository interface {
	// Create creates a new business; returns shared.ErrAlreadyExists on a slug conflict
	Create(ctx context.Context, business *Business) error

	// FindByID finds a business by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Business, error)

	// FindBySlug finds a business by its public slug
	FindBySlug(ctx context.Context, slug string) (*Business, error)
}
