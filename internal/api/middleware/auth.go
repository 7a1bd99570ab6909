package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/taskly/task-service/internal/core/ports"
)

// UserContextKey is the echo context key under which the resolved user is
// stored for downstream handlers.
const UserContextKey = "user"

// Auth resolves the bearer access token into the authenticated, active user
// and injects it into the request context. Resolution errors pass through to
// the central error handler: invalid or expired tokens become 401,
// deactivated accounts 403, vanished subjects 404.
func Auth(identity ports.IdentityResolver) echo.MiddlewareFunc {
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

			user, err := identity.ResolveActive(c.Request().Context(), parts[1])
			if err != nil {
				return err
			}

			c.Set(UserContextKey, user)
			return next(c)
		}
	}
}
