package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"gebeya_backend/internal/config"
	"gebeya_backend/internal/models"
)

var ErrTokenInvalid = errors.New("token is invalid or expired")

// Claims carried inside access tokens.
type Claims struct {
	UserID string          `json:"user_id"`
	Role   models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken issues a signed access token for the user.
func GenerateToken(userID string, role models.UserRole) (string, error) {
	cfg := config.GetConfig()

	ttl := time.Duration(cfg.JWT.TTL) * time.Minute
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWT.Secret))
}

// ParseToken validates a token string and returns its claims.
func ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(config.GetConfig().JWT.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
