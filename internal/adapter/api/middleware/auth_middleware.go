package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"velora/internal/domain/service"
)

const sessionHeader = "X-Session-Id"

type AuthMiddleware struct {
	verifier service.TokenVerifier
}

func NewAuthMiddleware(verifier service.TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// Authenticate requires a valid bearer token and puts the user id and role
// on the request context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header is required")
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization format")
		}

		claims, err := m.verifier.Verify(c.Request().Context(), parts[1])
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
		}

		c.Set("uid", claims.UserID)
		c.Set("role", claims.Role)
		return next(c)
	}
}

// Identify resolves the caller without requiring authentication. Cart
// endpoints serve both authenticated users and guests carrying a session
// header; a valid token wins over the header.
func (m *AuthMiddleware) Identify(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				if claims, err := m.verifier.Verify(c.Request().Context(), parts[1]); err == nil {
					c.Set("uid", claims.UserID)
					c.Set("role", claims.Role)
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
		}

		if sessionID := c.Request().Header.Get(sessionHeader); sessionID != "" {
			c.Set("sid", sessionID)
		}
		return next(c)
	}
}
