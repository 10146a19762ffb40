package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/qrmenu/backend/internal/application/identity"
	"github.com/qrmenu/backend/internal/interfaces/http/dto"
	"github.com/qrmenu/backend/internal/interfaces/http/middleware"
)

// AuthService is the authentication use case consumed by AuthHandler
type AuthService interface {
	Login(ctx context.Context, input identity.LoginInput) (*identity.LoginResult, error)
	Logout(ctx context.Context, input identity.LogoutInput) error
	GetCurrentUser(ctx context.Context, input identity.CurrentUserInput) (*identity.CurrentUserResult, error)
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest is the login payload
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=100" example:"admin"`
	Password string `json:"password" binding:"required,max=200" example:"changeme"`
}

// AuthUserResponse describes the authenticated user and their business
type AuthUserResponse struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username" example:"admin"`
	Role         string    `json:"role" example:"admin"`
	BusinessID   uuid.UUID `json:"business_id"`
	BusinessName string    `json:"business_name" example:"Default Business"`
	BusinessSlug string    `json:"business_slug" example:"default-business"`
}

// LoginResponse is returned after a successful login
type LoginResponse struct {
	Message   string           `json:"message" example:"Login successful"`
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	User      AuthUserResponse `json:"user"`
}

// CurrentUserResponse is returned by Me
type CurrentUserResponse struct {
	User    AuthUserResponse `json:"user"`
	LogoURL *string          `json:"logo_url"`
}

func toAuthUserResponse(u identity.UserInfo) AuthUserResponse {
	return AuthUserResponse{
		ID:           u.ID,
		Username:     u.Username,
		Role:         u.Role,
		BusinessID:   u.BusinessID,
		BusinessName: u.BusinessName,
		BusinessSlug: u.BusinessSlug,
	}
}

// Login godoc
// @ID           loginAuth
// @Summary      Admin login
// @Description  Authenticate with username and password and receive a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} APIResponse[LoginResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      429 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), identity.LoginInput{
		Username: req.Username,
		Password: req.Password,
		IP:       c.ClientIP(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, LoginResponse{
		Message:   "Login successful",
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      toAuthUserResponse(result.User),
	})
}

// Logout godoc
// @ID           logoutAuth
// @Summary      Logout
// @Description  Revoke the current bearer token
// @Tags         auth
// @Produce      json
// @Success      200 {object} APIResponse[dto.MessageResponse]
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Access token required")
		return
	}
	userID, err := claims.GetUserUUID()
	if err != nil {
		h.HandleError(c, errMissingClaims)
		return
	}

	input := identity.LogoutInput{UserID: userID, TokenJTI: claims.ID}
	if claims.ExpiresAt != nil {
		input.ExpiresAt = claims.ExpiresAt.Time
	}
	if err := h.authService.Logout(c.Request.Context(), input); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.MessageResponse{Message: "Logged out successfully"})
}

// Me godoc
// @ID           getAuthMe
// @Summary      Current user
// @Description  Return the authenticated user and their business
// @Tags         auth
// @Produce      json
// @Success      200 {object} APIResponse[CurrentUserResponse]
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.HandleError(c, errMissingClaims)
		return
	}
	businessID, err := getBusinessID(c)
	if err != nil {
		h.HandleError(c, errMissingClaims)
		return
	}

	result, err := h.authService.GetCurrentUser(c.Request.Context(), identity.CurrentUserInput{
		UserID:     userID,
		BusinessID: businessID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, CurrentUserResponse{
		User:    toAuthUserResponse(result.User),
		LogoURL: h.absoluteURL(c, result.LogoURL),
	})
}
