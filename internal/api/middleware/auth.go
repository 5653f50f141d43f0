package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/taskloop/todo-api/internal/core/ports"
)

// Context keys set by the Auth middleware.
const (
	CtxUserKey   = "user"
	CtxUserIDKey = "user_id"
)

// Auth validates the bearer token and resolves the embedded user id to a full
// identity record, which downstream handlers read from the echo context. This
// is the single enforcement point for per-user data isolation: every task and
// profile route runs behind it.
func Auth(jwtSecret string, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			id, _ := claims["id"].(string)
			if id == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing identity")
			}

			user, err := users.FindByID(c.Request().Context(), id)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "unknown identity")
			}

			c.Set(CtxUserIDKey, user.ID)
			c.Set(CtxUserKey, user)

			return next(c)
		}
	}
}
