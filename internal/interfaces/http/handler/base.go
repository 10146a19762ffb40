package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/qrmenu/backend/internal/domain/shared"
	"github.com/qrmenu/backend/internal/infrastructure/logger"
	"github.com/qrmenu/backend/internal/interfaces/http/dto"
	"github.com/qrmenu/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

var errMissingClaims = errors.New("authenticated identity not found in context")

// BaseHandler provides common handler utilities
type BaseHandler struct {
	// PublicBaseURL prefixes relative asset URLs; when empty the request's
	// own scheme and host are used
	PublicBaseURL string
}

// getBusinessID returns the caller's business from the verified token.
// It is never read from client input.
func getBusinessID(c *gin.Context) (uuid.UUID, error) {
	id := middleware.GetJWTBusinessID(c)
	if id == "" {
		return uuid.Nil, errMissingClaims
	}
	return uuid.Parse(id)
}

// getUserID returns the caller's user ID from the verified token
func getUserID(c *gin.Context) (uuid.UUID, error) {
	id := middleware.GetJWTUserID(c)
	if id == "" {
		return uuid.Nil, errMissingClaims
	}
	return uuid.Parse(id)
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, middleware.GetRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, code, message string) {
	h.Error(c, http.StatusBadRequest, code, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// Unauthorized sends a 401 unauthorized response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, message)
}

// InternalError sends a 500 with the generic message
func (h *BaseHandler) InternalError(c *gin.Context) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, dto.InternalErrorMessage)
}

// ValidationError reports a request binding failure
func (h *BaseHandler) ValidationError(c *gin.Context, err error) {
	middleware.HandleValidationError(c, err)
}

// HandleError converts an error into an HTTP response. Domain errors with a
// client status keep their message; everything else becomes a 500 whose
// detail is logged and never returned.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodePayloadTooLarge, "Request body exceeds maximum allowed size")
		return
	}

	if errors.Is(err, errMissingClaims) {
		h.Unauthorized(c, "Access token required")
		return
	}

	log := logger.GetGinLogger(c)

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		status := dto.GetHTTPStatus(domainErr.Code)
		if status < http.StatusInternalServerError {
			h.Error(c, status, domainErr.Code, domainErr.Message)
			return
		}
		log.Error("Request failed", zap.String("code", domainErr.Code), zap.Error(err))
		if status == http.StatusServiceUnavailable {
			h.Error(c, status, domainErr.Code, domainErr.Message)
			return
		}
		h.Error(c, status, domainErr.Code, dto.InternalErrorMessage)
		return
	}

	log.Error("Unexpected error", zap.Error(err))
	h.InternalError(c)
}

// absoluteURL resolves a stored asset URL for clients. Empty input yields nil
// so the field serializes as null.
func (h *BaseHandler) absoluteURL(c *gin.Context, u string) *string {
	if u == "" {
		return nil
	}
	if !strings.HasPrefix(u, "/") {
		return &u
	}

	base := strings.TrimRight(h.PublicBaseURL, "/")
	if base == "" {
		scheme := "http"
		if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
			scheme = "https"
		}
		base = scheme + "://" + c.Request.Host
	}
	abs := base + u
	return &abs
}
