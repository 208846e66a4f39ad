// utils/jwt.go
package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"assetverse/models"
)

type Claims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and validates HS256 bearer tokens carrying the
// principal's identity.
type TokenIssuer struct {
	key    []byte
	expiry time.Duration
}

func NewTokenIssuer(key []byte, expiry time.Duration) *TokenIssuer {
	return &TokenIssuer{key: key, expiry: expiry}
}

func (t *TokenIssuer) Generate(p models.Principal) (string, error) {
	claims := Claims{
		UserID: p.ID,
		Email:  p.Email,
		Name:   p.Name,
		Role:   string(p.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(t.expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.key)
}

// Validate parses the token and returns the embedded principal. The role is
// checked against the closed role set here so downstream code never sees an
// unknown role string.
func (t *TokenIssuer) Validate(tokenString string) (models.Principal, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.key, nil
	})
	if err != nil {
		return models.Principal{}, err
	}
	if !token.Valid {
		return models.Principal{}, fmt.Errorf("invalid token")
	}

	role := models.Role(claims.Role)
	if !role.Valid() {
		return models.Principal{}, fmt.Errorf("unknown role %q", claims.Role)
	}

	return models.Principal{
		ID:    claims.UserID,
		Email: claims.Email,
		Name:  claims.Name,
		Role:  role,
	}, nil
}
