package menu

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"net/url"

	"github.com/google/uuid"
	"github.com/qrmenu/backend/internal/domain/identity"
	"github.com/qrmenu/backend/internal/domain/menu"
	"github.com/qrmenu/backend/internal/domain/shared"
	"github.com/qrmenu/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ErrBusinessNotFound is returned for an unknown menu slug
var ErrBusinessNotFound = shared.NewDomainError("NOT_FOUND", "Business not found")

// ErrCategoryNotFound is returned for a category outside the requested business
var ErrCategoryNotFound = shared.NewDomainError("NOT_FOUND", "Category not found")

var placeholderPalette = []string{
	"FFB3BA", "FFDFBA", "FFFFBA", "BAFFC9", "BAE1FF",
	"E0BBE4", "D4F0F0", "FCE1E4", "E8DFF5", "DAEAF6",
}

const (
	categoryPlaceholderSize = "300x200"
	itemPlaceholderSize     = "500x300"
)

// PublicMenuService builds the customer-facing menu of a business. It only
// reads, and only available items are ever returned.
type PublicMenuService struct {
	businesses  identity.BusinessRepository
	categories  menu.CategoryRepository
	items       menu.MenuItemRepository
	images      ImageStore
	defaultSlug string
	metrics     *telemetry.MenuMetrics
	logger      *zap.Logger
}

// NewPublicMenuService creates a new public menu service. defaultSlug selects
// the business shown by DemoMenu.
func NewPublicMenuService(
	businesses identity.BusinessRepository,
	categories menu.CategoryRepository,
	items menu.MenuItemRepository,
	images ImageStore,
	defaultSlug string,
	logger *zap.Logger,
) *PublicMenuService {
	return &PublicMenuService{
		businesses:  businesses,
		categories:  categories,
		items:       items,
		images:      images,
		defaultSlug: defaultSlug,
		logger:      logger,
	}
}

// SetMetrics sets the menu metrics collector
func (s *PublicMenuService) SetMetrics(m *telemetry.MenuMetrics) {
	s.metrics = m
}

// GetMenu returns the menu of the business with the given slug. Categories
// and items are ordered by name; categories without available items are left out.
func (s *PublicMenuService) GetMenu(ctx context.Context, slug string) (_ *PublicMenu, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "public_menu", "get",
		telemetry.WithAttribute(telemetry.SpanAttrBusinessSlug, slug))
	defer func() {
		telemetry.RecordError(span, err)
		span.End()
	}()

	business, err := s.findBusiness(ctx, slug)
	if err != nil {
		return nil, err
	}

	categories, err := s.categories.FindAllForBusiness(ctx, business.ID)
	if err != nil {
		return nil, err
	}
	items, err := s.items.FindAllForBusiness(ctx, business.ID, menu.MenuItemFilter{Status: menu.ItemStatusAvailable})
	if err != nil {
		return nil, err
	}

	byCategory := make(map[uuid.UUID][]PublicMenuItem, len(categories))
	for i := range items {
		item := &items[i].MenuItem
		if !item.IsAvailable() {
			continue
		}
		byCategory[item.CategoryID] = append(byCategory[item.CategoryID], s.toPublicItem(item))
	}

	result := &PublicMenu{
		Restaurant: toRestaurantInfo(business),
		Categories: make([]PublicCategory, 0, len(categories)),
	}
	for i := range categories {
		c := &categories[i]
		categoryItems := byCategory[c.ID]
		if len(categoryItems) == 0 {
			continue
		}
		result.Categories = append(result.Categories, s.toPublicCategory(c, categoryItems))
	}

	s.metrics.RecordMenuView(ctx, business.ID)
	telemetry.SetAttribute(span, telemetry.SpanAttrItemCount, len(items))
	s.logger.Debug("Public menu served",
		zap.String("slug", business.Slug),
		zap.Int("categories", len(result.Categories)),
		zap.Int("items", len(items)))

	return result, nil
}

// DemoMenu returns the menu of the default business
func (s *PublicMenuService) DemoMenu(ctx context.Context) (*PublicMenu, error) {
	return s.GetMenu(ctx, s.defaultSlug)
}

// GetCategory returns one category of the business with its available items.
// Unlike GetMenu, a category with no available items is still returned.
func (s *PublicMenuService) GetCategory(ctx context.Context, slug string, id uuid.UUID) (*PublicCategory, error) {
	business, err := s.findBusiness(ctx, slug)
	if err != nil {
		return nil, err
	}

	category, err := s.categories.FindByIDForBusiness(ctx, business.ID, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	items, err := s.items.FindAllForBusiness(ctx, business.ID, menu.MenuItemFilter{
		CategoryID: &category.ID,
		Status:     menu.ItemStatusAvailable,
	})
	if err != nil {
		return nil, err
	}

	publicItems := make([]PublicMenuItem, 0, len(items))
	for i := range items {
		if items[i].IsAvailable() {
			publicItems = append(publicItems, s.toPublicItem(&items[i].MenuItem))
		}
	}

	result := s.toPublicCategory(category, publicItems)
	return &result, nil
}

func (s *PublicMenuService) findBusiness(ctx context.Context, slug string) (*identity.Business, error) {
	if slug == "" {
		return nil, ErrBusinessNotFound
	}
	business, err := s.businesses.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, err
	}
	return business, nil
}

func (s *PublicMenuService) toPublicCategory(c *menu.Category, items []PublicMenuItem) PublicCategory {
	image := imageURL(s.images, c.ImagePath)
	if image == "" {
		image = PlaceholderImageURL(c.ID, c.Name, categoryPlaceholderSize)
	}
	return PublicCategory{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		ImageURL:    image,
		Items:       items,
	}
}

func (s *PublicMenuService) toPublicItem(m *menu.MenuItem) PublicMenuItem {
	image := imageURL(s.images, m.ImagePath)
	if image == "" {
		image = PlaceholderImageURL(m.ID, m.Name, itemPlaceholderSize)
	}
	return PublicMenuItem{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		ImageURL:    image,
		Status:      m.Status,
	}
}

func toRestaurantInfo(b *identity.Business) RestaurantInfo {
	return RestaurantInfo{
		Name:    b.Name,
		Slug:    b.Slug,
		LogoURL: b.LogoURL,
	}
}

// PlaceholderImageURL returns a generated placeholder image. The background
// color is derived from id so a record keeps its color across requests.
func PlaceholderImageURL(id uuid.UUID, text, size string) string {
	h := fnv.New32a()
	_, _ = h.Write(id[:])
	color := placeholderPalette[h.Sum32()%uint32(len(placeholderPalette))]
	return fmt.Sprintf("https://via.placeholder.com/%s/%s?text=%s", size, color, url.QueryEscape(text))
}
