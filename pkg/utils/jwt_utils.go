package utils

import (
	"fmt"
	"time"

	"client_monitoring_backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// jwtSecretKey signs and verifies tokens. The default only covers local
// development; InitJWT replaces it from configuration at startup.
var jwtSecretKey = []byte("client-monitoring-dev-secret-change-in-production")

// TokenTTL is how long an issued token stays valid.
const TokenTTL = 7 * 24 * time.Hour

// InitJWT installs the signing secret loaded from the environment.
func InitJWT(secret string) {
	if secret != "" {
		jwtSecretKey = []byte(secret)
	}
}

// Claims defines the JWT claims structure embedded in issued tokens.
type Claims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed token embedding the user's identity and role.
func GenerateToken(user *models.User) (string, error) {
	expirationTime := time.Now().Add(TokenTTL)
	claims := &Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "client-monitoring-backend",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(jwtSecretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a token string, returning the claims
// when the signature and expiry check out.
func ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
