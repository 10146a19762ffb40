package handler

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	menuapp "github.com/qrmenu/backend/internal/application/menu"
	"github.com/qrmenu/backend/internal/interfaces/http/dto"
)

// MenuItemService is the menu item use case consumed by MenuItemHandler
type MenuItemService interface {
	List(ctx context.Context, businessID uuid.UUID, filter menuapp.MenuItemListFilter) ([]menuapp.MenuItemResult, error)
	Get(ctx context.Context, businessID, id uuid.UUID) (*menuapp.MenuItemResult, error)
	Create(ctx context.Context, input menuapp.CreateMenuItemInput) (*menuapp.MenuItemResult, error)
	Update(ctx context.Context, input menuapp.UpdateMenuItemInput) (*menuapp.MenuItemResult, error)
	Delete(ctx context.Context, businessID, id uuid.UUID) error
}

// MenuItemHandler handles admin menu item endpoints
type MenuItemHandler struct {
	BaseHandler
	itemService MenuItemService
}

// NewMenuItemHandler creates a new menu item handler
func NewMenuItemHandler(itemService MenuItemService, publicBaseURL string) *MenuItemHandler {
	return &MenuItemHandler{
		BaseHandler: BaseHandler{PublicBaseURL: publicBaseURL},
		itemService: itemService,
	}
}

// MenuItemForm is the multipart form for creating or updating a menu item.
// Values are validated by the service so each failure has a precise code.
type MenuItemForm struct {
	CategoryID  string `form:"category_id"`
	Name        string `form:"name" binding:"max=200"`
	Description string `form:"description" binding:"max=2000"`
	Price       string `form:"price" example:"12.50"`
	Status      string `form:"status" example:"available"`
	RemoveImage bool   `form:"remove_image"`
}

func (f MenuItemForm) input() menuapp.MenuItemInput {
	return menuapp.MenuItemInput{
		CategoryID:  f.CategoryID,
		Name:        f.Name,
		Description: f.Description,
		Price:       f.Price,
		Status:      f.Status,
	}
}

// MenuItemResponse is a menu item as returned to the admin UI
type MenuItemResponse struct {
	Message      string      `json:"message,omitempty"`
	ID           uuid.UUID   `json:"id"`
	BusinessID   uuid.UUID   `json:"business_id"`
	CategoryID   uuid.UUID   `json:"category_id"`
	CategoryName string      `json:"category_name" example:"Desserts"`
	Name         string      `json:"name" example:"Tiramisu"`
	Description  string      `json:"description"`
	Price        json.Number `json:"price" swaggertype:"number" example:"6.50"`
	Status       string      `json:"status" example:"available"`
	ImageURL     *string     `json:"image_url"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

func (h *MenuItemHandler) toResponse(c *gin.Context, r *menuapp.MenuItemResult) MenuItemResponse {
	return MenuItemResponse{
		ID:           r.ID,
		BusinessID:   r.BusinessID,
		CategoryID:   r.CategoryID,
		CategoryName: r.CategoryName,
		Name:         r.Name,
		Description:  r.Description,
		Price:        priceJSON(r.Price),
		Status:       string(r.Status),
		ImageURL:     h.absoluteURL(c, r.ImageURL),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// List godoc
// @ID           listMenuItems
// @Summary      List menu items
// @Description  List the caller's items with their category name, ordered by category then item name
// @Tags         menu-items
// @Produce      json
// @Param        category_id query string false "Only items of this category" format(uuid)
// @Success      200 {object} APIResponse[[]MenuItemResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /menu-items [get]
func (h *MenuItemHandler) List(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var filter menuapp.MenuItemListFilter
	if raw := c.Query("category_id"); raw != "" {
		categoryID, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, dto.ErrCodeInvalidID, "Invalid category_id")
			return
		}
		filter.CategoryID = &categoryID
	}

	results, err := h.itemService.List(c.Request.Context(), businessID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]MenuItemResponse, 0, len(results))
	for i := range results {
		out = append(out, h.toResponse(c, &results[i]))
	}
	h.Success(c, out)
}

// Get godoc
// @ID           getMenuItem
// @Summary      Get menu item
// @Tags         menu-items
// @Produce      json
// @Param        id path string true "Menu item ID" format(uuid)
// @Success      200 {object} APIResponse[MenuItemResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /menu-items/{id} [get]
func (h *MenuItemHandler) Get(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		h.NotFound(c, "Menu item not found")
		return
	}

	result, err := h.itemService.Get(c.Request.Context(), businessID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, h.toResponse(c, result))
}

// Create godoc
// @ID           createMenuItem
// @Summary      Create menu item
// @Tags         menu-items
// @Accept       multipart/form-data
// @Produce      json
// @Param        category_id formData string true "Category ID" format(uuid)
// @Param        name formData string true "Item name"
// @Param        description formData string false "Description"
// @Param        price formData string true "Non-negative price"
// @Param        status formData string false "available or unavailable" Enums(available, unavailable)
// @Param        image formData file false "Item image"
// @Success      201 {object} APIResponse[MenuItemResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      413 {object} ErrorResponse
// @Failure      415 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /menu-items [post]
func (h *MenuItemHandler) Create(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var form MenuItemForm
	if err := c.ShouldBind(&form); err != nil {
		h.ValidationError(c, err)
		return
	}
	image, closeImage, err := readImage(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	defer closeImage()

	result, err := h.itemService.Create(c.Request.Context(), menuapp.CreateMenuItemInput{
		BusinessID:    businessID,
		MenuItemInput: form.input(),
		Image:         image,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp := h.toResponse(c, result)
	resp.Message = "Menu item created successfully"
	h.Created(c, resp)
}

// Update godoc
// @ID           updateMenuItem
// @Summary      Update menu item
// @Description  Replace the item's fields. The image is replaced by a new upload, removed with remove_image=true, or kept.
// @Tags         menu-items
// @Accept       multipart/form-data
// @Produce      json
// @Param        id path string true "Menu item ID" format(uuid)
// @Param        category_id formData string true "Category ID" format(uuid)
// @Param        name formData string true "Item name"
// @Param        description formData string false "Description"
// @Param        price formData string true "Non-negative price"
// @Param        status formData string false "available or unavailable" Enums(available, unavailable)
// @Param        remove_image formData bool false "Remove the current image"
// @Param        image formData file false "New item image"
// @Success      200 {object} APIResponse[MenuItemResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /menu-items/{id} [put]
func (h *MenuItemHandler) Update(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		h.NotFound(c, "Menu item not found")
		return
	}

	var form MenuItemForm
	if err := c.ShouldBind(&form); err != nil {
		h.ValidationError(c, err)
		return
	}
	image, closeImage, err := readImage(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	defer closeImage()

	result, err := h.itemService.Update(c.Request.Context(), menuapp.UpdateMenuItemInput{
		BusinessID:    businessID,
		ID:            id,
		MenuItemInput: form.input(),
		Image:         image,
		RemoveImage:   form.RemoveImage,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp := h.toResponse(c, result)
	resp.Message = "Menu item updated successfully"
	h.Success(c, resp)
}

// Delete godoc
// @ID           deleteMenuItem
// @Summary      Delete menu item
// @Tags         menu-items
// @Produce      json
// @Param        id path string true "Menu item ID" format(uuid)
// @Success      200 {object} APIResponse[dto.MessageResponse]
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /menu-items/{id} [delete]
func (h *MenuItemHandler) Delete(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		h.NotFound(c, "Menu item not found")
		return
	}

	if err := h.itemService.Delete(c.Request.Context(), businessID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.MessageResponse{Message: "Menu item deleted successfully"})
}
