package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskloop/todo-api/internal/api/middleware"
	"github.com/taskloop/todo-api/internal/core/domain"
)

// ctxUser extracts the identity injected by the Auth middleware and performs
// a fast-fail check before any service call: a missing user means the route
// was wired without the middleware, which must never pass silently.
func ctxUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(middleware.CtxUserKey).(*domain.User)
	if user == nil || user.ID == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication identity")
	}
	return user, nil
}
