package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskly/task-service/internal/api/middleware"
	"github.com/taskly/task-service/internal/core/domain"
)

// currentUser extracts the identity injected by the Auth middleware. A
// missing or mistyped entry means the middleware did not run on this route.
func currentUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(middleware.UserContextKey).(*domain.User)
	if !ok || user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return user, nil
}
