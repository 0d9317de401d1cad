package auth

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"salvage-server/internal/shared/config"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RolePilot = "pilot"
	RoleAdmin = "admin"
)

type Claims struct {
	Pilot string `json:"pilot"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

func signingKey(cfg config.AuthConfig) ([]byte, error) {
	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("JWT secret must be at least 32 characters long")
	}
	return []byte(cfg.JWTSecret), nil
}

func GenerateJWT(cfg config.AuthConfig, pilot, role string) (string, error) {
	key, err := signingKey(cfg)
	if err != nil {
		return "", fmt.Errorf("cannot generate JWT: %w", err)
	}

	now := time.Now()
	claims := Claims{
		Pilot: pilot,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TokenExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   "pilot_" + pilot,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}

func ValidateJWT(cfg config.AuthConfig, tokenString string) (*Claims, error) {
	key, err := signingKey(cfg)
	if err != nil {
		return nil, fmt.Errorf("cannot validate JWT: %w", err)
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return key, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

// BearerToken extracts the token from an "Authorization: Bearer" header.
func BearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
