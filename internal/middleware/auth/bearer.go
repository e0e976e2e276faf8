package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/yoga_studio/internal/logging"
	"github.com/Skotchmaster/yoga_studio/internal/models"
	"github.com/Skotchmaster/yoga_studio/internal/service"
	"github.com/Skotchmaster/yoga_studio/internal/tokens"
)

const identityKey = "identity"

type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// BearerAuth authenticates requests carrying "Authorization: Bearer <token>".
// The admin flag is read from the stored user, not from the token.
type BearerAuth struct {
	Tokens *tokens.Service
	Users  UserFinder
}

func NewBearerAuth(t *tokens.Service, users UserFinder) *BearerAuth {
	return &BearerAuth{Tokens: t, Users: users}
}

func (m *BearerAuth) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		l := logging.FromContext(ctx).With("middleware", "require_auth")

		raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok || !m.Tokens.Validate(raw) {
			l.Warn("auth_failed", "status", 401, "reason", "missing or invalid token")
			return echo.NewHTTPError(http.StatusUnauthorized, "Error: Unauthorized")
		}
		email, err := m.Tokens.SubjectOf(raw)
		if err != nil {
			l.Warn("auth_failed", "status", 401, "reason", "cannot read subject", "error", err)
			return echo.NewHTTPError(http.StatusUnauthorized, "Error: Unauthorized")
		}

		user, err := m.Users.FindByEmail(ctx, email)
		if err != nil || user == nil {
			l.Warn("auth_failed", "status", 401, "reason", "unknown subject")
			return echo.NewHTTPError(http.StatusUnauthorized, "Error: Unauthorized")
		}

		c.Set(identityKey, service.Identity{UserID: user.ID, Email: user.Email, Admin: user.Admin})
		return next(c)
	}
}

// RequireAdmin must run after RequireAuth.
func (m *BearerAuth) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := IdentityFrom(c)
		if err != nil {
			return err
		}
		if !id.Admin {
			logging.FromContext(c.Request().Context()).Warn("admin_required", "status", 403, "user_id", id.UserID)
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		return next(c)
	}
}

var errNoIdentity = errors.New("no identity in context")

func IdentityFrom(c echo.Context) (service.Identity, error) {
	id, ok := c.Get(identityKey).(service.Identity)
	if !ok {
		return service.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "Error: Unauthorized").SetInternal(errNoIdentity)
	}
	return id, nil
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(header[len(prefix):]), true
}
