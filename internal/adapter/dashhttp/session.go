package dashhttp

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const userContextKey = "session.user"

// SessionConfig verifies already-issued session tokens. The dashboard never
// issues tokens itself; login lives in the auth gateway.
type SessionConfig struct {
	Secret   string
	Issuer   string
	Audience string
}

type sessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// SessionMiddleware validates a Bearer JWT (HS256) on every request. With no
// secret configured the middleware is a no-op, which is the local dev mode.
func SessionMiddleware(cfg SessionConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cfg.Secret == "" {
				return next(c)
			}

			raw := strings.TrimPrefix(c.Request().Header.Get("Authorization"), "Bearer ")
			if raw == "" || raw == c.Request().Header.Get("Authorization") {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing session token"})
			}

			claims := &sessionClaims{}
			token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
				return []byte(cfg.Secret), nil
			},
				jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
				jwt.WithIssuer(cfg.Issuer),
				jwt.WithAudience(cfg.Audience),
			)
			if err != nil || !token.Valid {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid session token"})
			}

			c.Set(userContextKey, claims.Subject)
			return next(c)
		}
	}
}
