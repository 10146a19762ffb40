package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/qrmenu/backend/internal/domain/identity"
	"github.com/qrmenu/backend/internal/domain/shared"
	"github.com/qrmenu/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// ErrInvalidCredentials is returned for an unknown user and for a wrong
// password alike.
var ErrInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")

// TokenIssuer issues signed session tokens
type TokenIssuer interface {
	GenerateToken(subject auth.TokenSubject) (*auth.Token, error)
}

// AuthService handles authentication operations
type AuthService struct {
	userRepo     identity.UserRepository
	businessRepo identity.BusinessRepository
	tokens       TokenIssuer
	blacklist    auth.TokenBlacklist
	logger       *zap.Logger
	now          func() time.Time
	// burnPassword spends a password compare when no user matched
	burnPassword func(password string) bool
}

// NewAuthService creates a new authentication service. blacklist may be nil,
// in which case Logout is a no-op on the server side.
func NewAuthService(
	userRepo identity.UserRepository,
	businessRepo identity.BusinessRepository,
	tokens TokenIssuer,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		businessRepo: businessRepo,
		tokens:       tokens,
		blacklist:    blacklist,
		logger:       logger,
		now:          time.Now,
		burnPassword: identity.VerifyDummyPassword,
	}
}

// Login authenticates a user and issues a session token
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Username and password are required")
	}

	s.logger.Info("Login attempt", zap.String("username", username), zap.String("ip", input.IP))

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.burnPassword(input.Password)
			s.logger.Warn("User not found during login", zap.String("username", username))
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Failed to load user during login", zap.Error(err))
		return nil, err
	}

	if !user.VerifyPassword(input.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("username", username))
		return nil, ErrInvalidCredentials
	}

	business, err := s.businessRepo.FindByID(ctx, user.BusinessID)
	if err != nil {
		s.logger.Error("Failed to load business for user",
			zap.String("user_id", user.ID.String()),
			zap.String("business_id", user.BusinessID.String()),
			zap.Error(err))
		return nil, err
	}

	token, err := s.tokens.GenerateToken(auth.TokenSubject{
		UserID:       user.ID,
		Username:     user.Username,
		BusinessID:   business.ID,
		BusinessSlug: business.Slug,
		Role:         string(user.Role),
	})
	if err != nil {
		s.logger.Error("Failed to generate token", zap.Error(err))
		return nil, shared.WrapDomainError("INTERNAL_ERROR", "Failed to generate authentication token", err)
	}

	s.logger.Info("User logged in successfully",
		zap.String("username", user.Username),
		zap.String("user_id", user.ID.String()),
		zap.String("business_id", business.ID.String()))

	return &LoginResult{
		Token:     token.Value,
		ExpiresAt: token.ExpiresAt,
		User:      toUserInfo(user, business),
	}, nil
}

// Logout revokes the caller's token until it would have expired anyway
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	if s.blacklist == nil || input.TokenJTI == "" {
		s.logger.Info("User logged out", zap.String("user_id", input.UserID.String()))
		return nil
	}

	ttl := input.ExpiresAt.Sub(s.now())
	if err := s.blacklist.AddToBlacklist(ctx, input.TokenJTI, ttl); err != nil {
		s.logger.Error("Failed to blacklist token",
			zap.String("user_id", input.UserID.String()),
			zap.Error(err))
		return shared.WrapDomainError("INTERNAL_ERROR", "Failed to revoke token", err)
	}

	s.logger.Info("User logged out, token revoked",
		zap.String("user_id", input.UserID.String()),
		zap.Duration("ttl", ttl))
	return nil
}

// GetCurrentUser returns the caller's user and business summary
func (s *AuthService) GetCurrentUser(ctx context.Context, input CurrentUserInput) (*CurrentUserResult, error) {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	// a token must never outlive a move of its user to another business
	if !user.BelongsTo(input.BusinessID) {
		return nil, shared.ErrForbidden
	}

	business, err := s.businessRepo.FindByID(ctx, user.BusinessID)
	if err != nil {
		return nil, err
	}

	return &CurrentUserResult{
		User:    toUserInfo(user, business),
		LogoURL: business.LogoURL,
	}, nil
}

func toUserInfo(user *identity.User, business *identity.Business) UserInfo {
	return UserInfo{
		ID:           user.ID,
		Username:     user.Username,
		Role:         string(user.Role),
		BusinessID:   business.ID,
		BusinessName: business.Name,
		BusinessSlug: business.Slug,
	}
}
