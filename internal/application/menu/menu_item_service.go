package menu

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/qrmenu/backend/internal/domain/menu"
	"github.com/qrmenu/backend/internal/domain/shared"
	"github.com/qrmenu/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// MenuItemService handles menu item operations for the authenticated business
type MenuItemService struct {
	items      menu.MenuItemRepository
	categories menu.CategoryRepository
	images     ImageStore
	policy     ImagePolicy
	metrics    *telemetry.MenuMetrics
	logger     *zap.Logger
}

// NewMenuItemService creates a new menu item service
func NewMenuItemService(
	items menu.MenuItemRepository,
	categories menu.CategoryRepository,
	images ImageStore,
	policy ImagePolicy,
	logger *zap.Logger,
) *MenuItemService {
	return &MenuItemService{
		items:      items,
		categories: categories,
		images:     images,
		policy:     policy,
		logger:     logger,
	}
}

// SetMetrics sets the menu metrics collector
func (s *MenuItemService) SetMetrics(m *telemetry.MenuMetrics) {
	s.metrics = m
}

// List returns the business's items ordered by category name, then item name
func (s *MenuItemService) List(ctx context.Context, businessID uuid.UUID, filter MenuItemListFilter) ([]MenuItemResult, error) {
	views, err := s.items.FindAllForBusiness(ctx, businessID, menu.MenuItemFilter{CategoryID: filter.CategoryID})
	if err != nil {
		return nil, err
	}

	results := make([]MenuItemResult, 0, len(views))
	for i := range views {
		results = append(results, s.toResult(&views[i].MenuItem, views[i].CategoryName))
	}
	return results, nil
}

// Get returns one item whose own and category business match the caller
func (s *MenuItemService) Get(ctx context.Context, businessID, id uuid.UUID) (*MenuItemResult, error) {
	view, err := s.items.FindByIDForBusiness(ctx, businessID, id)
	if err != nil {
		return nil, err
	}
	result := s.toResult(&view.MenuItem, view.CategoryName)
	return &result, nil
}

// Create validates the input and the category before the image is stored,
// so a rejected request leaves no file behind.
func (s *MenuItemService) Create(ctx context.Context, input CreateMenuItemInput) (_ *MenuItemResult, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "menu_item", "create",
		telemetry.WithAttribute(telemetry.SpanAttrBusinessID, input.BusinessID))
	defer func() {
		telemetry.RecordError(span, err)
		span.End()
	}()

	fields, err := parseMenuItemInput(input.MenuItemInput)
	if err != nil {
		return nil, err
	}
	category, err := s.ownedCategory(ctx, input.BusinessID, fields.categoryID)
	if err != nil {
		return nil, err
	}

	item, err := menu.NewMenuItem(input.BusinessID, category, fields.name, fields.description, fields.price, fields.status)
	if err != nil {
		return nil, err
	}

	var newKey string
	if input.Image != nil {
		newKey, err = s.policy.store(ctx, s.images, s.metrics, input.Image)
		if err != nil {
			return nil, err
		}
		item.ReplaceImage(newKey)
	}

	if err := s.items.Create(ctx, item); err != nil {
		discardImages(ctx, s.images, s.metrics, s.logger, "menu item create failed", newKey)
		return nil, err
	}

	s.logger.Info("Menu item created",
		zap.String("item_id", item.ID.String()),
		zap.String("business_id", item.BusinessID.String()),
		zap.String("category_id", item.CategoryID.String()))

	result := s.toResult(item, category.Name)
	return &result, nil
}

// Update rewrites the item. The image ends up as exactly one of: the new
// upload, removed, or unchanged. A replaced or removed image is deleted only
// after the row is written.
func (s *MenuItemService) Update(ctx context.Context, input UpdateMenuItemInput) (_ *MenuItemResult, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "menu_item", "update",
		telemetry.WithAttribute(telemetry.SpanAttrBusinessID, input.BusinessID),
		telemetry.WithAttribute(telemetry.SpanAttrItemID, input.ID))
	defer func() {
		telemetry.RecordError(span, err)
		span.End()
	}()

	item, err := s.loadOwnedItem(ctx, input.BusinessID, input.ID)
	if err != nil {
		return nil, err
	}

	fields, err := parseMenuItemInput(input.MenuItemInput)
	if err != nil {
		return nil, err
	}
	category, err := s.ownedCategory(ctx, input.BusinessID, fields.categoryID)
	if err != nil {
		return nil, err
	}
	if err := item.Update(category, fields.name, fields.description, fields.price, fields.status); err != nil {
		return nil, err
	}

	var newKey, oldKey string
	switch {
	case input.Image != nil:
		newKey, err = s.policy.store(ctx, s.images, s.metrics, input.Image)
		if err != nil {
			return nil, err
		}
		oldKey = item.ReplaceImage(newKey)
	case input.RemoveImage:
		oldKey = item.ReplaceImage("")
	}

	if err := s.items.UpdateForBusiness(ctx, input.BusinessID, item); err != nil {
		discardImages(ctx, s.images, s.metrics, s.logger, "menu item update failed", newKey)
		return nil, err
	}
	discardImages(ctx, s.images, s.metrics, s.logger, "menu item image replaced", oldKey)

	s.logger.Info("Menu item updated",
		zap.String("item_id", item.ID.String()),
		zap.String("business_id", item.BusinessID.String()),
		zap.Bool("image_replaced", newKey != ""),
		zap.Bool("image_removed", input.Image == nil && input.RemoveImage))

	result := s.toResult(item, category.Name)
	return &result, nil
}

// Delete removes the item and then its image
func (s *MenuItemService) Delete(ctx context.Context, businessID, id uuid.UUID) (err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "menu_item", "delete",
		telemetry.WithAttribute(telemetry.SpanAttrBusinessID, businessID),
		telemetry.WithAttribute(telemetry.SpanAttrItemID, id))
	defer func() {
		telemetry.RecordError(span, err)
		span.End()
	}()

	item, err := s.loadOwnedItem(ctx, businessID, id)
	if err != nil {
		return err
	}

	if err := s.items.DeleteForBusiness(ctx, businessID, id); err != nil {
		return err
	}
	discardImages(ctx, s.images, s.metrics, s.logger, "menu item deleted", item.ImagePath)

	s.logger.Info("Menu item deleted",
		zap.String("item_id", id.String()),
		zap.String("business_id", businessID.String()))
	return nil
}

// loadOwnedItem distinguishes a missing item (not found) from another
// business's item (forbidden).
func (s *MenuItemService) loadOwnedItem(ctx context.Context, businessID, id uuid.UUID) (*menu.MenuItem, error) {
	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !item.BelongsTo(businessID) {
		s.logger.Warn("Menu item access denied",
			zap.String("item_id", id.String()),
			zap.String("business_id", businessID.String()))
		return nil, shared.ErrForbidden
	}
	return item, nil
}

// ownedCategory maps a missing or foreign category to menu.ErrInvalidCategory
func (s *MenuItemService) ownedCategory(ctx context.Context, businessID, categoryID uuid.UUID) (*menu.Category, error) {
	category, err := s.categories.FindByIDForBusiness(ctx, businessID, categoryID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, menu.ErrInvalidCategory
		}
		return nil, err
	}
	return category, nil
}

func (s *MenuItemService) toResult(m *menu.MenuItem, categoryName string) MenuItemResult {
	return MenuItemResult{
		ID:           m.ID,
		BusinessID:   m.BusinessID,
		CategoryID:   m.CategoryID,
		CategoryName: categoryName,
		Name:         m.Name,
		Description:  m.Description,
		Price:        m.Price,
		Status:       m.Status,
		ImageURL:     imageURL(s.images, m.ImagePath),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

type menuItemFields struct {
	categoryID  uuid.UUID
	name        string
	description string
	price       decimal.Decimal
	status      menu.ItemStatus
}

func parseMenuItemInput(in MenuItemInput) (*menuItemFields, error) {
	categoryID := strings.TrimSpace(in.CategoryID)
	name := strings.TrimSpace(in.Name)
	price := strings.TrimSpace(in.Price)
	if categoryID == "" || name == "" || price == "" {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Category, name, and price are required")
	}

	id, err := uuid.Parse(categoryID)
	if err != nil {
		return nil, menu.ErrInvalidCategory
	}

	amount, err := decimal.NewFromString(price)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price must be a number")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	status, err := menu.ParseItemStatus(in.Status)
	if err != nil {
		return nil, err
	}

	return &menuItemFields{
		categoryID:  id,
		name:        name,
		description: in.Description,
		price:       amount.Round(2),
		status:      status,
	}, nil
}
