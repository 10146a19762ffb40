package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/qrmenu/backend/internal/domain/identity"
	"github.com/qrmenu/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormUserAndBusinessRepositories_SQLite(t *testing.T) {
	db := newSQLiteDatabase(t)
	ctx := context.Background()
	users := NewGormUserRepository(db.DB)
	businesses := NewGormBusinessRepository(db.DB)

	business := seedBusiness(t, db, "Café Olé")
	assert.Equal(t, "cafe-ole", business.Slug)

	t.Run("business lookups", func(t *testing.T) {
		found, err := businesses.FindBySlug(ctx, "cafe-ole")
		require.NoError(t, err)
		assert.Equal(t, business.ID, found.ID)
		assert.Equal(t, "Café Olé", found.Name)

		found, err = businesses.FindByID(ctx, business.ID)
		require.NoError(t, err)
		assert.Equal(t, "cafe-ole", found.Slug)

		_, err = businesses.FindBySlug(ctx, "missing")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("duplicate slug already exists", func(t *testing.T) {
		dup, err := identity.NewBusiness("Cafe Ole", "cafe-ole")
		require.NoError(t, err)
		assert.ErrorIs(t, businesses.Create(ctx, dup), shared.ErrAlreadyExists)
	})

	user, err := identity.NewUser(business.ID, "Admin", "Secret123")
	require.NoError(t, err)
	require.NoError(t, users.Create(ctx, user))

	t.Run("username lookup ignores case", func(t *testing.T) {
		found, err := users.FindByUsername(ctx, "ADMIN")
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)
		assert.Equal(t, business.ID, found.BusinessID)
		assert.True(t, found.VerifyPassword("Secret123"))

		exists, err := users.ExistsByUsername(ctx, " admin ")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = users.ExistsByUsername(ctx, "nobody")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		_, err := users.FindByUsername(ctx, "ghost")
		assert.ErrorIs(t, err, shared.ErrNotFound)

		_, err = users.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("duplicate username already exists", func(t *testing.T) {
		dup, err := identity.NewUser(business.ID, "admin", "Other1234")
		require.NoError(t, err)
		assert.ErrorIs(t, users.Create(ctx, dup), shared.ErrAlreadyExists)
	})
}
