package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/qrmenu/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:     "test-secret-key-at-least-32-chars",
		Expiration: 8 * time.Hour,
		Issuer:     "test-issuer",
	})
}

func newTestSubject() TokenSubject {
	return TokenSubject{
		UserID:       uuid.New(),
		Username:     "admin",
		BusinessID:   uuid.New(),
		BusinessSlug: "default-business",
		Role:         "admin",
	}
}

func TestNewJWTService_DefaultExpiration(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{Secret: "s"})
	assert.Equal(t, 8*time.Hour, svc.Expiration())
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestJWTService()
	subject := newTestSubject()

	token, err := svc.GenerateToken(subject)
	require.NoError(t, err)
	assert.NotEmpty(t, token.Value)
	assert.NotEmpty(t, token.ID)
	assert.WithinDuration(t, time.Now().Add(8*time.Hour), token.ExpiresAt, time.Minute)

	claims, err := svc.ValidateToken(token.Value)
	require.NoError(t, err)
	assert.Equal(t, subject.UserID.String(), claims.UserID)
	assert.Equal(t, subject.BusinessID.String(), claims.BusinessID)
	assert.Equal(t, "default-business", claims.BusinessSlug)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, token.ID, claims.ID)

	businessID, err := claims.GetBusinessUUID()
	require.NoError(t, err)
	assert.Equal(t, subject.BusinessID, businessID)
	assert.Greater(t, claims.GetRemainingTTL(), 7*time.Hour)
}

func TestGenerateToken_UniqueJTI(t *testing.T) {
	svc := newTestJWTService()
	subject := newTestSubject()

	a, err := svc.GenerateToken(subject)
	require.NoError(t, err)
	b, err := svc.GenerateToken(subject)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
}

func TestGenerateToken_RequiresIdentity(t *testing.T) {
	svc := newTestJWTService()

	subject := newTestSubject()
	subject.BusinessID = uuid.Nil
	_, err := svc.GenerateToken(subject)
	assert.ErrorIs(t, err, ErrMissingBusinessID)

	subject = newTestSubject()
	subject.UserID = uuid.Nil
	_, err = svc.GenerateToken(subject)
	assert.ErrorIs(t, err, ErrMissingUserID)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := newTestJWTService()
	svc.now = func() time.Time { return time.Now().Add(-9 * time.Hour) }

	token, err := svc.GenerateToken(newTestSubject())
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(token.Value)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := newTestJWTService().GenerateToken(newTestSubject())
	require.NoError(t, err)

	other := NewJWTService(config.JWTConfig{Secret: "another-secret-key-of-32-characters", Issuer: "test-issuer"})
	_, err = other.ValidateToken(token.Value)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Malformed(t *testing.T) {
	svc := newTestJWTService()

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.ValidateToken(raw)
		assert.ErrorIs(t, err, ErrInvalidToken, raw)
	}
}

func TestValidateToken_TamperedPayload(t *testing.T) {
	svc := newTestJWTService()
	token, err := svc.GenerateToken(newTestSubject())
	require.NoError(t, err)

	parts := strings.Split(token.Value, ".")
	require.Len(t, parts, 3)
	parts[1] = parts[1][:len(parts[1])-2] + "xx"

	_, err = svc.ValidateToken(strings.Join(parts, "."))
	assert.Error(t, err)
}

func TestValidateToken_RejectsOtherAlgorithms(t *testing.T) {
	svc := newTestJWTService()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "test-issuer",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID:     uuid.NewString(),
		BusinessID: uuid.NewString(),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(svc.secret)
	require.NoError(t, err)

	_, err = svc.ValidateToken(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_MissingBusiness(t *testing.T) {
	svc := newTestJWTService()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "test-issuer",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: uuid.NewString(),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(svc.secret)
	require.NoError(t, err)

	_, err = svc.ValidateToken(raw)
	assert.ErrorIs(t, err, ErrMissingBusinessID)
}
