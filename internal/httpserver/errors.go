package httpserver

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/yoga_studio/internal/service"
)

// fail logs err under event and maps it to the HTTP error the client sees.
func fail(l *slog.Logger, event string, err error) error {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		l.Warn(event, "status", 400, "reason", "validation failed", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{
			"message": "Bad Request",
			"errors":  verr.Fields,
		})
	case errors.Is(err, service.ErrEmailTaken):
		l.Warn(event, "status", 400, "reason", "email taken")
		return echo.NewHTTPError(http.StatusBadRequest, "Error: Email is already taken!")
	case errors.Is(err, service.ErrBadRequest):
		l.Warn(event, "status", 400, "reason", err.Error())
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		l.Warn(event, "status", 404, "reason", err.Error())
		return echo.NewHTTPError(http.StatusNotFound, "Not Found")
	case errors.Is(err, service.ErrAuthenticationFailed):
		l.Warn(event, "status", 401, "reason", "bad credentials")
		return echo.NewHTTPError(http.StatusUnauthorized, "Bad credentials")
	case errors.Is(err, service.ErrUnauthorized):
		l.Warn(event, "status", 401, "reason", "not allowed")
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	default:
		l.Error(event, "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}

// pathID parses a positive numeric path parameter.
func pathID(c echo.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 63)
	if err != nil || v == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be a numeric id")
	}
	return uint(v), nil
}
