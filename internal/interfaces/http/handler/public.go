package handler

import (
	"context"
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	menuapp "github.com/qrmenu/backend/internal/application/menu"
	"github.com/qrmenu/backend/internal/interfaces/http/dto"
)

// PublicMenuService is the unauthenticated menu use case
type PublicMenuService interface {
	GetMenu(ctx context.Context, slug string) (*menuapp.PublicMenu, error)
	DemoMenu(ctx context.Context) (*menuapp.PublicMenu, error)
	GetCategory(ctx context.Context, slug string, id uuid.UUID) (*menuapp.PublicCategory, error)
}

// PublicHandler serves customer-facing menu endpoints
type PublicHandler struct {
	BaseHandler
	menuService PublicMenuService
}

// NewPublicHandler creates a new public menu handler
func NewPublicHandler(menuService PublicMenuService, publicBaseURL string) *PublicHandler {
	return &PublicHandler{
		BaseHandler: BaseHandler{PublicBaseURL: publicBaseURL},
		menuService: menuService,
	}
}

// RestaurantInfoResponse describes the business on a public menu
type RestaurantInfoResponse struct {
	Name    string  `json:"name" example:"Demo Bistro"`
	Slug    string  `json:"slug" example:"demo-bistro"`
	LogoURL *string `json:"logo_url"`
}

// PublicMenuItemResponse is an item shown to customers
type PublicMenuItemResponse struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       json.Number `json:"price" swaggertype:"number" example:"9.90"`
	ImageURL    *string     `json:"image_url"`
	Status      string      `json:"status" example:"available"`
}

// PublicCategoryResponse is a category with its available items
type PublicCategoryResponse struct {
	ID          uuid.UUID                `json:"id"`
	Name        string                   `json:"name"`
	Description string                   `json:"description"`
	ImageURL    *string                  `json:"image_url"`
	Items       []PublicMenuItemResponse `json:"items"`
}

// PublicMenuResponse is the full public menu of a business
type PublicMenuResponse struct {
	RestaurantInfo RestaurantInfoResponse   `json:"restaurantInfo"`
	Categories     []PublicCategoryResponse `json:"categories"`
}

func (h *PublicHandler) toCategory(c *gin.Context, pc *menuapp.PublicCategory) PublicCategoryResponse {
	items := make([]PublicMenuItemResponse, 0, len(pc.Items))
	for _, it := range pc.Items {
		items = append(items, PublicMenuItemResponse{
			ID:          it.ID,
			Name:        it.Name,
			Description: it.Description,
			Price:       priceJSON(it.Price),
			ImageURL:    h.absoluteURL(c, it.ImageURL),
			Status:      string(it.Status),
		})
	}
	return PublicCategoryResponse{
		ID:          pc.ID,
		Name:        pc.Name,
		Description: pc.Description,
		ImageURL:    h.absoluteURL(c, pc.ImageURL),
		Items:       items,
	}
}

func (h *PublicHandler) toMenu(c *gin.Context, m *menuapp.PublicMenu) PublicMenuResponse {
	categories := make([]PublicCategoryResponse, 0, len(m.Categories))
	for i := range m.Categories {
		categories = append(categories, h.toCategory(c, &m.Categories[i]))
	}
	return PublicMenuResponse{
		RestaurantInfo: RestaurantInfoResponse{
			Name:    m.Restaurant.Name,
			Slug:    m.Restaurant.Slug,
			LogoURL: h.absoluteURL(c, m.Restaurant.LogoURL),
		},
		Categories: categories,
	}
}

// Liveness godoc
// @ID           publicLiveness
// @Summary      Public API liveness
// @Tags         public
// @Produce      json
// @Success      200 {object} APIResponse[dto.MessageResponse]
// @Router       /public [get]
func (h *PublicHandler) Liveness(c *gin.Context) {
	h.Success(c, dto.MessageResponse{Message: "Public menu API is running"})
}

// Demo godoc
// @ID           getDemoMenu
// @Summary      Get the demo menu
// @Description  Static sample menu that needs no database
// @Tags         public
// @Produce      json
// @Success      200 {object} APIResponse[PublicMenuResponse]
// @Router       /public/demo [get]
func (h *PublicHandler) Demo(c *gin.Context) {
	m, err := h.menuService.DemoMenu(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, h.toMenu(c, m))
}

// GetMenu godoc
// @ID           getPublicMenu
// @Summary      Get a business's public menu
// @Description  Categories ordered by name, each with its available items
// @Tags         public
// @Produce      json
// @Param        slug path string true "Business slug"
// @Success      200 {object} APIResponse[PublicMenuResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /public/menu/{slug} [get]
func (h *PublicHandler) GetMenu(c *gin.Context) {
	m, err := h.menuService.GetMenu(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, h.toMenu(c, m))
}

// GetCategory godoc
// @ID           getPublicCategory
// @Summary      Get one public category
// @Tags         public
// @Produce      json
// @Param        slug path string true "Business slug"
// @Param        id path string true "Category ID" format(uuid)
// @Success      200 {object} APIResponse[PublicCategoryResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /public/menu/{slug}/category/{id} [get]
func (h *PublicHandler) GetCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.NotFound(c, "Category not found")
		return
	}

	pc, err := h.menuService.GetCategory(c.Request.Context(), c.Param("slug"), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, h.toCategory(c, pc))
}
