package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/qrmenu/backend/internal/infrastructure/auth"
	"github.com/qrmenu/backend/internal/infrastructure/logger"
	"github.com/qrmenu/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// JWT context keys
const (
	JWTClaimsKey       = "jwt_claims"
	JWTUserIDKey       = "jwt_user_id"
	JWTBusinessIDKey   = "jwt_business_id"
	JWTBusinessSlugKey = "jwt_business_slug"
	JWTUsernameKey     = "jwt_username"
	JWTRoleKey         = "jwt_role"
	AuthHeaderKey      = "Authorization"
	BearerPrefix       = "Bearer "
)

// TokenValidator validates a raw bearer token
type TokenValidator interface {
	ValidateToken(tokenString string) (*auth.Claims, error)
}

// JWTMiddlewareConfig holds configuration for JWT middleware
type JWTMiddlewareConfig struct {
	// JWTService is required for token validation
	JWTService TokenValidator
	// TokenBlacklist is optional; revoked tokens are rejected when set
	TokenBlacklist auth.TokenBlacklist
	// SkipPaths are paths that don't require authentication
	SkipPaths []string
	// SkipPathPrefixes are path prefixes that don't require authentication
	SkipPathPrefixes []string
	Logger           *zap.Logger
}

// JWTAuthMiddleware creates JWT authentication middleware without a blacklist
func JWTAuthMiddleware(jwtService TokenValidator) gin.HandlerFunc {
	return JWTAuthMiddlewareWithConfig(JWTMiddlewareConfig{JWTService: jwtService})
}

// JWTAuthMiddlewareWithConfig creates JWT authentication middleware.
// A request without a bearer token gets 401; a token that is malformed,
// expired or revoked gets 403.
func JWTAuthMiddlewareWithConfig(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skipPath := range cfg.SkipPaths {
			if path == skipPath {
				c.Next()
				return
			}
		}
		for _, prefix := range cfg.SkipPathPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		tokenString := bearerToken(c.GetHeader(AuthHeaderKey))
		if tokenString == "" {
			abortWithError(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Access token required")
			return
		}

		claims, err := cfg.JWTService.ValidateToken(tokenString)
		if err != nil {
			log.Warn("JWT authentication failed", zap.Error(err), zap.String("path", path))
			abortWithError(c, http.StatusForbidden, dto.ErrCodeForbidden, "Invalid or expired token")
			return
		}

		if cfg.TokenBlacklist != nil && claims.ID != "" {
			revoked, err := cfg.TokenBlacklist.IsBlacklisted(c.Request.Context(), claims.ID)
			if err != nil {
				// fail open: a blacklist outage must not lock every admin out
				log.Error("Failed to check token blacklist", zap.String("jti", claims.ID), zap.Error(err))
			} else if revoked {
				log.Warn("Revoked token used", zap.String("jti", claims.ID), zap.String("user_id", claims.UserID))
				abortWithError(c, http.StatusForbidden, dto.ErrCodeForbidden, "Token has been revoked")
				return
			}
		}

		setClaims(c, claims)

		log.Debug("JWT authentication successful",
			zap.String("user_id", claims.UserID),
			zap.String("business_id", claims.BusinessID),
		)

		c.Next()
	}
}

func bearerToken(header string) string {
	if !strings.HasPrefix(header, BearerPrefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
}

func setClaims(c *gin.Context, claims *auth.Claims) {
	c.Set(JWTClaimsKey, claims)
	c.Set(JWTUserIDKey, claims.UserID)
	c.Set(JWTBusinessIDKey, claims.BusinessID)
	c.Set(JWTBusinessSlugKey, claims.BusinessSlug)
	c.Set(JWTUsernameKey, claims.Username)
	c.Set(JWTRoleKey, claims.Role)

	ctx := c.Request.Context()
	var log *zap.Logger
	if l, ok := c.Get(logger.GinContextKey); ok {
		log, _ = l.(*zap.Logger)
	}
	if log == nil {
		log = logger.FromContext(ctx)
	}
	ctx, log = logger.WithUserID(ctx, log, claims.UserID)
	ctx, log = logger.WithBusinessID(ctx, log, claims.BusinessID)
	c.Set(logger.GinContextKey, log)
	c.Request = c.Request.WithContext(ctx)
}

// GetJWTClaims retrieves JWT claims from gin.Context
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if claims, exists := c.Get(JWTClaimsKey); exists {
		if jwtClaims, ok := claims.(*auth.Claims); ok {
			return jwtClaims
		}
	}
	return nil
}

// GetJWTUserID retrieves the user ID from JWT claims in context
func GetJWTUserID(c *gin.Context) string {
	return c.GetString(JWTUserIDKey)
}

// GetJWTBusinessID retrieves the business ID from JWT claims in context
func GetJWTBusinessID(c *gin.Context) string {
	return c.GetString(JWTBusinessIDKey)
}

// GetJWTBusinessSlug retrieves the business slug from JWT claims in context
func GetJWTBusinessSlug(c *gin.Context) string {
	return c.GetString(JWTBusinessSlugKey)
}
