package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryTokenBlacklist(t *testing.T) {
	blacklist := NewInMemoryTokenBlacklist()
	ctx := context.Background()

	require.NoError(t, blacklist.AddToBlacklist(ctx, "jti-1", time.Hour))

	revoked, err := blacklist.IsBlacklisted(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = blacklist.IsBlacklisted(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestInMemoryTokenBlacklist_Expiry(t *testing.T) {
	blacklist := NewInMemoryTokenBlacklist()
	ctx := context.Background()
	now := time.Now()
	blacklist.now = func() time.Time { return now }

	require.NoError(t, blacklist.AddToBlacklist(ctx, "jti-short", time.Minute))

	now = now.Add(2 * time.Minute)
	revoked, err := blacklist.IsBlacklisted(ctx, "jti-short")
	require.NoError(t, err)
	assert.False(t, revoked)
	assert.Empty(t, blacklist.entries)
}

func TestInMemoryTokenBlacklist_IgnoresNonPositiveTTL(t *testing.T) {
	blacklist := NewInMemoryTokenBlacklist()
	ctx := context.Background()

	require.NoError(t, blacklist.AddToBlacklist(ctx, "jti-expired", 0))

	revoked, err := blacklist.IsBlacklisted(ctx, "jti-expired")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestInMemoryTokenBlacklist_PrunesOnAdd(t *testing.T) {
	blacklist := NewInMemoryTokenBlacklist()
	ctx := context.Background()
	now := time.Now()
	blacklist.now = func() time.Time { return now }

	require.NoError(t, blacklist.AddToBlacklist(ctx, "old", time.Second))
	now = now.Add(time.Minute)
	require.NoError(t, blacklist.AddToBlacklist(ctx, "new", time.Hour))

	assert.Len(t, blacklist.entries, 1)
	assert.Contains(t, blacklist.entries, "new")
}

func TestRedisTokenBlacklist_Key(t *testing.T) {
	b := NewRedisTokenBlacklistWithClient(nil)
	assert.Equal(t, "qrmenu:token:blacklist:abc", b.key("abc"))
}
