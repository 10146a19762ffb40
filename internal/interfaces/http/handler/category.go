package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	menuapp "github.com/qrmenu/backend/internal/application/menu"
	"github.com/qrmenu/backend/internal/interfaces/http/dto"
)

// CategoryService is the category use case consumed by CategoryHandler
type CategoryService interface {
	List(ctx context.Context, businessID uuid.UUID) ([]menuapp.CategoryResult, error)
	Get(ctx context.Context, businessID, id uuid.UUID) (*menuapp.CategoryResult, error)
	Create(ctx context.Context, input menuapp.CreateCategoryInput) (*menuapp.CategoryResult, error)
	Update(ctx context.Context, input menuapp.UpdateCategoryInput) (*menuapp.CategoryResult, error)
	Delete(ctx context.Context, businessID, id uuid.UUID) (*menuapp.DeleteCategoryResult, error)
}

// CategoryHandler handles admin category endpoints
type CategoryHandler struct {
	BaseHandler
	categoryService CategoryService
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryService CategoryService, publicBaseURL string) *CategoryHandler {
	return &CategoryHandler{
		BaseHandler:     BaseHandler{PublicBaseURL: publicBaseURL},
		categoryService: categoryService,
	}
}

// CategoryForm is the multipart form for creating or updating a category.
// The image is sent as the "image" file field.
type CategoryForm struct {
	Name        string `form:"name" binding:"max=200"`
	Description string `form:"description" binding:"max=2000"`
}

// CategoryResponse is a category as returned to the admin UI
type CategoryResponse struct {
	Message     string    `json:"message,omitempty"`
	ID          uuid.UUID `json:"id"`
	BusinessID  uuid.UUID `json:"business_id"`
	Name        string    `json:"name" example:"Desserts"`
	Description string    `json:"description"`
	ImageURL    *string   `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (h *CategoryHandler) toResponse(c *gin.Context, r *menuapp.CategoryResult) CategoryResponse {
	return CategoryResponse{
		ID:          r.ID,
		BusinessID:  r.BusinessID,
		Name:        r.Name,
		Description: r.Description,
		ImageURL:    h.absoluteURL(c, r.ImageURL),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// List godoc
// @ID           listCategories
// @Summary      List categories
// @Description  List the caller's categories ordered by name
// @Tags         categories
// @Produce      json
// @Success      200 {object} APIResponse[[]CategoryResponse]
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	results, err := h.categoryService.List(c.Request.Context(), businessID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]CategoryResponse, 0, len(results))
	for i := range results {
		out = append(out, h.toResponse(c, &results[i]))
	}
	h.Success(c, out)
}

// Get godoc
// @ID           getCategory
// @Summary      Get category
// @Tags         categories
// @Produce      json
// @Param        id path string true "Category ID" format(uuid)
// @Success      200 {object} APIResponse[CategoryResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /categories/{id} [get]
func (h *CategoryHandler) Get(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		h.NotFound(c, "Category not found")
		return
	}

	result, err := h.categoryService.Get(c.Request.Context(), businessID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, h.toResponse(c, result))
}

// Create godoc
// @ID           createCategory
// @Summary      Create category
// @Description  Create a category with an optional image (multipart)
// @Tags         categories
// @Accept       multipart/form-data
// @Produce      json
// @Param        name formData string true "Category name"
// @Param        description formData string false "Description"
// @Param        image formData file false "Category image"
// @Success      201 {object} APIResponse[CategoryResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      413 {object} ErrorResponse
// @Failure      415 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var form CategoryForm
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

	result, err := h.categoryService.Create(c.Request.Context(), menuapp.CreateCategoryInput{
		BusinessID:  businessID,
		Name:        form.Name,
		Description: form.Description,
		Image:       image,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp := h.toResponse(c, result)
	resp.Message = "Category created successfully"
	h.Created(c, resp)
}

// Update godoc
// @ID           updateCategory
// @Summary      Update category
// @Description  Replace name and description; a new image replaces the old one
// @Tags         categories
// @Accept       multipart/form-data
// @Produce      json
// @Param        id path string true "Category ID" format(uuid)
// @Param        name formData string true "Category name"
// @Param        description formData string false "Description"
// @Param        image formData file false "New category image"
// @Success      200 {object} APIResponse[CategoryResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      413 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		h.NotFound(c, "Category not found")
		return
	}

	var form CategoryForm
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

	result, err := h.categoryService.Update(c.Request.Context(), menuapp.UpdateCategoryInput{
		BusinessID:  businessID,
		ID:          id,
		Name:        form.Name,
		Description: form.Description,
		Image:       image,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp := h.toResponse(c, result)
	resp.Message = "Category updated successfully"
	h.Success(c, resp)
}

// Delete godoc
// @ID           deleteCategory
// @Summary      Delete category
// @Description  Delete a category together with its menu items and their images
// @Tags         categories
// @Produce      json
// @Param        id path string true "Category ID" format(uuid)
// @Success      200 {object} APIResponse[dto.MessageResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		h.NotFound(c, "Category not found")
		return
	}

	if _, err := h.categoryService.Delete(c.Request.Context(), businessID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.MessageResponse{Message: "Category deleted successfully"})
}
