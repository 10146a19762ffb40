package identity

import (
	"time"

	"github.com/google/uuid"
)

// LoginInput contains the input for user login
type LoginInput struct {
	Username string
	Password string
	IP       string // Client IP, logged only
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      UserInfo
}

// UserInfo contains basic user information returned after login
type UserInfo struct {
	ID           uuid.UUID
	Username     string
	Role         string
	BusinessID   uuid.UUID
	BusinessName string
	BusinessSlug string
}

// LogoutInput contains the input for user logout
type LogoutInput struct {
	UserID    uuid.UUID
	TokenJTI  string
	ExpiresAt time.Time // natural expiry of the revoked token
}

// CurrentUserInput identifies the caller for GetCurrentUser
type CurrentUserInput struct {
	UserID     uuid.UUID
	BusinessID uuid.UUID
}

// CurrentUserResult contains the current user's information
type CurrentUserResult struct {
	User    UserInfo
	LogoURL string
}
