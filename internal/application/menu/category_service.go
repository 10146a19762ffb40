package menu

import (
	"context"

	"github.com/google/uuid"
	"github.com/qrmenu/backend/internal/domain/menu"
	"github.com/qrmenu/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// CategoryService handles category operations for the authenticated business
type CategoryService struct {
	categories menu.CategoryRepository
	images     ImageStore
	policy     ImagePolicy
	metrics    *telemetry.MenuMetrics
	logger     *zap.Logger
}

// NewCategoryService creates a new category service
func NewCategoryService(categories menu.CategoryRepository, images ImageStore, policy ImagePolicy, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		categories: categories,
		images:     images,
		policy:     policy,
		logger:     logger,
	}
}

// SetMetrics sets the menu metrics collector
func (s *CategoryService) SetMetrics(m *telemetry.MenuMetrics) {
	s.metrics = m
}

// List returns all categories of the business ordered by name
func (s *CategoryService) List(ctx context.Context, businessID uuid.UUID) ([]CategoryResult, error) {
	categories, err := s.categories.FindAllForBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}

	results := make([]CategoryResult, 0, len(categories))
	for i := range categories {
		results = append(results, s.toResult(&categories[i]))
	}
	return results, nil
}

// Get returns one category; categories of other businesses are not found
func (s *CategoryService) Get(ctx context.Context, businessID, id uuid.UUID) (*CategoryResult, error) {
	category, err := s.categories.FindByIDForBusiness(ctx, businessID, id)
	if err != nil {
		return nil, err
	}
	result := s.toResult(category)
	return &result, nil
}

// Create creates a category, storing its image first when one is uploaded
func (s *CategoryService) Create(ctx context.Context, input CreateCategoryInput) (_ *CategoryResult, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "category", "create",
		telemetry.WithAttribute(telemetry.SpanAttrBusinessID, input.BusinessID))
	defer func() {
		telemetry.RecordError(span, err)
		span.End()
	}()

	category, err := menu.NewCategory(input.BusinessID, input.Name, input.Description)
	if err != nil {
		return nil, err
	}

	var newKey string
	if input.Image != nil {
		newKey, err = s.policy.store(ctx, s.images, s.metrics, input.Image)
		if err != nil {
			return nil, err
		}
		category.ReplaceImage(newKey)
	}

	if err := s.categories.Create(ctx, category); err != nil {
		discardImages(ctx, s.images, s.metrics, s.logger, "category create failed", newKey)
		return nil, err
	}

	s.logger.Info("Category created",
		zap.String("category_id", category.ID.String()),
		zap.String("business_id", category.BusinessID.String()),
		zap.Bool("has_image", category.HasImage()))

	result := s.toResult(category)
	return &result, nil
}

// Update replaces name and description and, when uploaded, the image path.
// The previously stored image file is left in place.
func (s *CategoryService) Update(ctx context.Context, input UpdateCategoryInput) (_ *CategoryResult, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "category", "update",
		telemetry.WithAttribute(telemetry.SpanAttrBusinessID, input.BusinessID),
		telemetry.WithAttribute(telemetry.SpanAttrCategoryID, input.ID))
	defer func() {
		telemetry.RecordError(span, err)
		span.End()
	}()

	category, err := s.categories.FindByIDForBusiness(ctx, input.BusinessID, input.ID)
	if err != nil {
		return nil, err
	}
	if err := category.Update(input.Name, input.Description); err != nil {
		return nil, err
	}

	var newKey, oldKey string
	if input.Image != nil {
		newKey, err = s.policy.store(ctx, s.images, s.metrics, input.Image)
		if err != nil {
			return nil, err
		}
		oldKey = category.ReplaceImage(newKey)
	}

	if err := s.categories.Update(ctx, category); err != nil {
		discardImages(ctx, s.images, s.metrics, s.logger, "category update failed", newKey)
		return nil, err
	}

	// TODO: decide whether replaced category images should be deleted like menu item images.
	s.logger.Info("Category updated",
		zap.String("category_id", category.ID.String()),
		zap.String("business_id", category.BusinessID.String()),
		zap.Bool("image_replaced", newKey != ""),
		zap.String("previous_image", oldKey))

	result := s.toResult(category)
	return &result, nil
}

// Delete removes the category together with its menu items, then the images
// they referenced.
func (s *CategoryService) Delete(ctx context.Context, businessID, id uuid.UUID) (_ *DeleteCategoryResult, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "category", "delete",
		telemetry.WithAttribute(telemetry.SpanAttrBusinessID, businessID),
		telemetry.WithAttribute(telemetry.SpanAttrCategoryID, id))
	defer func() {
		telemetry.RecordError(span, err)
		span.End()
	}()

	deletion, err := s.categories.DeleteForBusiness(ctx, businessID, id)
	if err != nil {
		return nil, err
	}

	telemetry.SetAttribute(span, telemetry.SpanAttrItemCount, deletion.ItemCount)
	discardImages(ctx, s.images, s.metrics, s.logger, "category deleted", deletion.OrphanedImages()...)

	s.logger.Info("Category deleted",
		zap.String("category_id", id.String()),
		zap.String("business_id", businessID.String()),
		zap.Int("deleted_items", deletion.ItemCount))

	return &DeleteCategoryResult{ID: id, DeletedItems: deletion.ItemCount}, nil
}

func (s *CategoryService) toResult(c *menu.Category) CategoryResult {
	return CategoryResult{
		ID:          c.ID,
		BusinessID:  c.BusinessID,
		Name:        c.Name,
		Description: c.Description,
		ImageURL:    imageURL(s.images, c.ImagePath),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
