package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	menuapp "github.com/qrmenu/backend/internal/application/menu"
)

// QRService produces menu QR codes and printable posters
type QRService interface {
	Generate(ctx context.Context) (*menuapp.QRCodeResult, error)
	Poster(ctx context.Context, businessID uuid.UUID) (*menuapp.PosterResult, error)
}

// QRHandler handles QR code endpoints
type QRHandler struct {
	BaseHandler
	qrService QRService
}

// NewQRHandler creates a new QR handler
func NewQRHandler(qrService QRService) *QRHandler {
	return &QRHandler{qrService: qrService}
}

// QRCodeResponse carries the menu URL and its QR image
type QRCodeResponse struct {
	Message       string `json:"message" example:"QR code generated successfully"`
	QRCodeURL     string `json:"qrCodeUrl" example:"https://menu.example.com/menu"`
	QRCodeDataURL string `json:"qrCodeDataUrl" example:"data:image/png;base64,iVBORw0KGgo..."`
}

// Generate godoc
// @ID           generateQRCode
// @Summary      Generate the menu QR code
// @Description  PNG data URL encoding the public menu URL
// @Tags         qr
// @Produce      json
// @Success      200 {object} APIResponse[QRCodeResponse]
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /qr/generate [get]
func (h *QRHandler) Generate(c *gin.Context) {
	result, err := h.qrService.Generate(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, QRCodeResponse{
		Message:       "QR code generated successfully",
		QRCodeURL:     result.MenuURL,
		QRCodeDataURL: result.DataURL,
	})
}

// Poster godoc
// @ID           downloadQRPoster
// @Summary      Download the printable QR poster
// @Tags         qr
// @Produce      application/pdf
// @Success      200 {file} binary
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /qr/poster [get]
func (h *QRHandler) Poster(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	poster, err := h.qrService.Poster(c.Request.Context(), businessID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", poster.Filename))
	c.Data(http.StatusOK, "application/pdf", poster.PDF)
}
