package auth

import (
	"testing"
	"time"

	"gebeya_backend/internal/config"
	"gebeya_backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setTestConfig(t *testing.T, ttlMinutes int) {
	t.Helper()
	prev := config.AppConfig
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-signing-secret"
	cfg.JWT.TTL = ttlMinutes
	config.AppConfig = cfg
	t.Cleanup(func() { config.AppConfig = prev })
}

func TestTokenRoundTrip(t *testing.T) {
	setTestConfig(t, 60)

	token, err := GenerateToken("user-42", models.UserRoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.UserID)
	assert.Equal(t, models.UserRoleAdmin, claims.Role)
	assert.WithinDuration(t, time.Now().Add(60*time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	setTestConfig(t, 60)

	_, err := ParseToken("not.a.token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	setTestConfig(t, 60)

	claims := &Claims{
		UserID: "user-42",
		Role:   models.UserRoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	_, err = ParseToken(signed)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	setTestConfig(t, 60)

	claims := &Claims{
		UserID: "user-42",
		Role:   models.UserRoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-signing-secret"))
	require.NoError(t, err)

	_, err = ParseToken(signed)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
