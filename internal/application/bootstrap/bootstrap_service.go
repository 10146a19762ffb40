// Package bootstrap creates the default business, its admin account and
// optional demo menu data.
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/qrmenu/backend/internal/domain/identity"
	"github.com/qrmenu/backend/internal/domain/menu"
	"github.com/qrmenu/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Config selects the default business and admin account
type Config struct {
	BusinessName  string
	BusinessSlug  string
	AdminUsername string
	AdminPassword string
}

// Result reports what EnsureDefaultBusiness did
type Result struct {
	Business        *identity.Business
	BusinessCreated bool
	AdminCreated    bool
}

// SeedResult reports what SeedDemoData inserted
type SeedResult struct {
	Categories int
	Items      int
	Skipped    bool
}

// Service seeds initial data. Every operation is safe to run on each start.
type Service struct {
	businesses identity.BusinessRepository
	users      identity.UserRepository
	categories menu.CategoryRepository
	items      menu.MenuItemRepository
	logger     *zap.Logger
}

// NewService creates a new bootstrap service
func NewService(
	businesses identity.BusinessRepository,
	users identity.UserRepository,
	categories menu.CategoryRepository,
	items menu.MenuItemRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		businesses: businesses,
		users:      users,
		categories: categories,
		items:      items,
		logger:     logger,
	}
}

// EnsureDefaultBusiness creates the configured business and admin user when
// they are missing. Without an admin password no admin is created.
func (s *Service) EnsureDefaultBusiness(ctx context.Context, cfg Config) (*Result, error) {
	slug := cfg.BusinessSlug
	if slug == "" {
		slug = identity.Slugify(cfg.BusinessName)
	}

	result := &Result{}
	business, err := s.businesses.FindBySlug(ctx, slug)
	switch {
	case err == nil:
		result.Business = business
	case errors.Is(err, shared.ErrNotFound):
		business, err = identity.NewBusiness(cfg.BusinessName, slug)
		if err != nil {
			return nil, err
		}
		if err := s.businesses.Create(ctx, business); err != nil {
			return nil, fmt.Errorf("failed to create default business: %w", err)
		}
		s.logger.Info("Default business created",
			zap.String("business_id", business.ID.String()),
			zap.String("slug", business.Slug))
		result.Business = business
		result.BusinessCreated = true
	default:
		return nil, fmt.Errorf("failed to look up default business: %w", err)
	}

	if cfg.AdminUsername == "" {
		return result, nil
	}
	exists, err := s.users.ExistsByUsername(ctx, cfg.AdminUsername)
	if err != nil {
		return nil, fmt.Errorf("failed to look up admin user: %w", err)
	}
	if exists {
		return result, nil
	}
	if cfg.AdminPassword == "" {
		s.logger.Warn("Admin password not configured, admin user not created",
			zap.String("username", cfg.AdminUsername),
			zap.String("business_slug", business.Slug))
		return result, nil
	}

	admin, err := identity.NewUser(business.ID, cfg.AdminUsername, cfg.AdminPassword)
	if err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return nil, fmt.Errorf("failed to create admin user: %w", err)
	}
	s.logger.Info("Admin user created",
		zap.String("user_id", admin.ID.String()),
		zap.String("username", admin.Username),
		zap.String("business_id", business.ID.String()))
	result.AdminCreated = true

	return result, nil
}

// SeedDemoData fills an empty menu with sample categories and items. A
// business that already has categories is left untouched.
func (s *Service) SeedDemoData(ctx context.Context, businessID uuid.UUID) (*SeedResult, error) {
	existing, err := s.categories.FindAllForBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		s.logger.Info("Menu already has categories, demo data skipped",
			zap.String("business_id", businessID.String()),
			zap.Int("categories", len(existing)))
		return &SeedResult{Skipped: true}, nil
	}

	result := &SeedResult{}
	for _, dc := range demoMenu {
		category, err := menu.NewCategory(businessID, dc.Name, dc.Description)
		if err != nil {
			return nil, err
		}
		if err := s.categories.Create(ctx, category); err != nil {
			return nil, fmt.Errorf("failed to seed category %q: %w", dc.Name, err)
		}
		result.Categories++

		for _, di := range dc.Items {
			item, err := menu.NewMenuItem(businessID, category, di.Name, di.Description,
				decimal.RequireFromString(di.Price), menu.ItemStatusAvailable)
			if err != nil {
				return nil, err
			}
			if err := s.items.Create(ctx, item); err != nil {
				return nil, fmt.Errorf("failed to seed menu item %q: %w", di.Name, err)
			}
			result.Items++
		}
	}

	s.logger.Info("Demo data seeded",
		zap.String("business_id", businessID.String()),
		zap.Int("categories", result.Categories),
		zap.Int("items", result.Items))
	return result, nil
}
