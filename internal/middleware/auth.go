package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/arbelos/fieldbook/internal/auth"
	"github.com/arbelos/fieldbook/internal/model"
	"github.com/arbelos/fieldbook/internal/session"
)

// Context keys set by BearerAuth for downstream handlers.
const (
	CtxUsername = "username" // string
	CtxRole     = "role"     // auth.Role
	CtxToken    = "token"    // raw bearer token, used by logout
)

// UserLoader is the slice of the user repository the middleware needs.  The
// interface keeps the middleware testable with an in-memory fake.
type UserLoader interface {
	GetByUsername(ctx context.Context, username string) (model.User, error)
}

// BearerAuth returns an Echo middleware that authenticates requests with an
// opaque bearer token.  The token is resolved through the injected session
// registry, then the account is loaded and checked: tokens belonging to a
// deactivated user are rejected even if the session itself is still live.
// On success the username, parsed role and raw token are stored in the
// request context.
func BearerAuth(sessions session.Store, users UserLoader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			token := strings.TrimPrefix(header, "Bearer ")

			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()

			username, err := sessions.Resolve(ctx, token)
			if err != nil {
				if errors.Is(err, session.ErrInvalidToken) {
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "session lookup failed"})
			}

			u, err := users.GetByUsername(ctx, username)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
			}
			if !u.IsActive {
				// Session may still exist; the account being deactivated wins.
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "account deactivated"})
			}

			c.Set(CtxUsername, u.Username)
			c.Set(CtxRole, auth.ParseRole(u.Role))
			c.Set(CtxToken, token)
			return next(c)
		}
	}
}
