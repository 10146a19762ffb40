package identity

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/qrmenu/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	businessID := uuid.New()

	t.Run("creates user with valid username and password", func(t *testing.T) {
		user, err := NewUser(businessID, "testuser", "Password123")

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.Equal(t, businessID, user.BusinessID)
		assert.Equal(t, "testuser", user.Username)
		assert.Equal(t, RoleAdmin, user.Role)
		assert.NotEmpty(t, user.PasswordHash)
		assert.NotEqual(t, "Password123", user.PasswordHash)
	})

	t.Run("normalizes username", func(t *testing.T) {
		user, err := NewUser(businessID, "  TestUser ", "Password123")

		require.NoError(t, err)
		assert.Equal(t, "testuser", user.Username)
	})

	t.Run("fails without business", func(t *testing.T) {
		_, err := NewUser(uuid.Nil, "testuser", "Password123")

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "INVALID_BUSINESS", domainErr.Code)
	})

	t.Run("fails with empty username", func(t *testing.T) {
		_, err := NewUser(businessID, "", "Password123")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be empty")
	})

	t.Run("fails with short username", func(t *testing.T) {
		_, err := NewUser(businessID, "ab", "Password123")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "at least 3 characters")
	})

	t.Run("fails with invalid characters in username", func(t *testing.T) {
		_, err := NewUser(businessID, "bad user!", "Password123")

		assert.Error(t, err)
	})

	t.Run("fails with weak password", func(t *testing.T) {
		_, err := NewUser(businessID, "testuser", "password")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "letter and one number")
	})

	t.Run("fails with short password", func(t *testing.T) {
		_, err := NewUser(businessID, "testuser", "Pass1")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "at least 8 characters")
	})
}

func TestUser_VerifyPassword(t *testing.T) {
	user, err := NewUser(uuid.New(), "testuser", "Password123")
	require.NoError(t, err)

	assert.True(t, user.VerifyPassword("Password123"))
	assert.False(t, user.VerifyPassword("Password124"))
	assert.False(t, user.VerifyPassword(""))
}

func TestVerifyDummyPassword(t *testing.T) {
	assert.False(t, VerifyDummyPassword("Secret123"))
	assert.False(t, VerifyDummyPassword("dummy-password-0"))
}

func TestUser_SetPassword(t *testing.T) {
	user, err := NewUser(uuid.New(), "testuser", "Password123")
	require.NoError(t, err)

	require.NoError(t, user.SetPassword("NewSecret456"))
	assert.True(t, user.VerifyPassword("NewSecret456"))
	assert.False(t, user.VerifyPassword("Password123"))

	assert.Error(t, user.SetPassword("short"))
}

func TestUser_SetRole(t *testing.T) {
	user, err := NewUser(uuid.New(), "testuser", "Password123")
	require.NoError(t, err)

	require.NoError(t, user.SetRole(RoleStaff))
	assert.Equal(t, RoleStaff, user.Role)
	assert.Error(t, user.SetRole(Role("owner")))
}
