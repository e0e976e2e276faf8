package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/yoga_studio/internal/logging"
	middleware "github.com/Skotchmaster/yoga_studio/internal/middleware/auth"
	"github.com/Skotchmaster/yoga_studio/internal/service"
	"github.com/Skotchmaster/yoga_studio/internal/transport"
)

type UserHTTP struct {
	Svc *service.UserService
}

func (h *UserHTTP) GetUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.get")

	id, err := pathID(c, "id")
	if err != nil {
		l.Warn("get_user_failed", "status", 400, "reason", "id is not numeric")
		return err
	}

	u, err := h.Svc.FindByID(ctx, id)
	if err != nil {
		return fail(l, "get_user_failed", err)
	}
	if u == nil {
		l.Warn("get_user_failed", "status", 404, "user_id", id)
		return echo.NewHTTPError(http.StatusNotFound, "Not Found")
	}
	return c.JSON(http.StatusOK, transport.UserToDTO(u))
}

// DeleteUser lets a user remove their own account.
func (h *UserHTTP) DeleteUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.delete")

	id, err := pathID(c, "id")
	if err != nil {
		l.Warn("delete_user_failed", "status", 400, "reason", "id is not numeric")
		return err
	}
	requester, err := middleware.IdentityFrom(c)
	if err != nil {
		return err
	}

	if err := h.Svc.Delete(ctx, requester, id); err != nil {
		return fail(l, "delete_user_failed", err)
	}

	l.Info("delete_user_success", "user_id", id)
	return c.NoContent(http.StatusOK)
}
