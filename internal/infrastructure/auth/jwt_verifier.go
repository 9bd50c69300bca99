package auth

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"velora/internal/domain/service"
	"velora/pkg/errors"
)

type jwtVerifier struct {
	secret []byte
}

// NewJWTVerifier verifies HMAC-signed session tokens issued by the auth
// provider.
func NewJWTVerifier(secret string) service.TokenVerifier {
	return &jwtVerifier{secret: []byte(secret)}
}

type sessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func (v *jwtVerifier) Verify(ctx context.Context, token string) (*service.Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &sessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, errors.Unauthorized("Invalid or expired token", err)
	}

	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return nil, errors.Unauthorized("Invalid or expired token", nil)
	}

	return &service.Claims{
		UserID: claims.Subject,
		Role:   claims.Role,
	}, nil
}
