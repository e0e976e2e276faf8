package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/yoga_studio/internal/logging"
	middleware "github.com/Skotchmaster/yoga_studio/internal/middleware/auth"
	"github.com/Skotchmaster/yoga_studio/internal/service"
	"github.com/Skotchmaster/yoga_studio/internal/transport"
	"github.com/Skotchmaster/yoga_studio/internal/util"
)

type SessionHTTP struct {
	Svc    *service.SessionService
	Ledger *service.Ledger
}

func (h *SessionHTTP) GetSessions(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "session.list")

	sessions, err := h.Svc.FindAll(ctx)
	if err != nil {
		return fail(l, "get_sessions_failed", err)
	}
	return c.JSON(http.StatusOK, transport.SessionsToDTO(sessions))
}

func (h *SessionHTTP) SearchSessions(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "session.search")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)

	res, err := h.Svc.Find(ctx, c.QueryParam("q"), page, size)
	if err != nil {
		return fail(l, "search_sessions_failed", err)
	}
	if page < 1 {
		page = 1
	}

	l.Info("search_sessions_success", "total", res.Total)
	return c.JSON(http.StatusOK, transport.SessionPage{
		Data: transport.SessionsToDTO(res.Sessions),
		Meta: transport.NewPageMeta(page, res.Offset, res.Limit, res.Total),
	})
}

func (h *SessionHTTP) GetSession(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "session.get")

	id, err := pathID(c, "id")
	if err != nil {
		l.Warn("get_session_failed", "status", 400, "reason", "id is not numeric")
		return err
	}

	s, err := h.Svc.GetByID(ctx, id)
	if err != nil {
		return fail(l, "get_session_failed", err)
	}
	if s == nil {
		l.Warn("get_session_failed", "status", 404, "session_id", id)
		return echo.NewHTTPError(http.StatusNotFound, "Not Found")
	}
	return c.JSON(http.StatusOK, transport.SessionToDTO(s))
}

func (h *SessionHTTP) CreateSession(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "session.create")

	var req transport.SessionDTO
	if err := c.Bind(&req); err != nil {
		l.Warn("create_session_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	s, err := h.Svc.Create(ctx, req)
	if err != nil {
		return fail(l, "create_session_failed", err)
	}

	l.Info("create_session_success", "session_id", s.ID)
	return c.JSON(http.StatusOK, transport.SessionToDTO(s))
}

// UpdateSession answers 404 for an unknown id; the registry itself writes
// blindly.
func (h *SessionHTTP) UpdateSession(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "session.update")

	id, err := pathID(c, "id")
	if err != nil {
		l.Warn("update_session_failed", "status", 400, "reason", "id is not numeric")
		return err
	}
	var req transport.SessionDTO
	if err := c.Bind(&req); err != nil {
		l.Warn("update_session_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	existing, err := h.Svc.GetByID(ctx, id)
	if err != nil {
		return fail(l, "update_session_failed", err)
	}
	if existing == nil {
		l.Warn("update_session_failed", "status", 404, "session_id", id)
		return echo.NewHTTPError(http.StatusNotFound, "Not Found")
	}

	s, err := h.Svc.Update(ctx, id, req)
	if err != nil {
		return fail(l, "update_session_failed", err)
	}

	l.Info("update_session_success", "session_id", id)
	return c.JSON(http.StatusOK, transport.SessionToDTO(s))
}

func (h *SessionHTTP) DeleteSession(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "session.delete")

	id, err := pathID(c, "id")
	if err != nil {
		l.Warn("delete_session_failed", "status", 400, "reason", "id is not numeric")
		return err
	}

	existing, err := h.Svc.GetByID(ctx, id)
	if err != nil {
		return fail(l, "delete_session_failed", err)
	}
	if existing == nil {
		l.Warn("delete_session_failed", "status", 404, "session_id", id)
		return echo.NewHTTPError(http.StatusNotFound, "Not Found")
	}

	if err := h.Svc.Delete(ctx, id); err != nil {
		return fail(l, "delete_session_failed", err)
	}

	l.Info("delete_session_success", "session_id", id)
	return c.NoContent(http.StatusOK)
}

func (h *SessionHTTP) Participate(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "session.participate")

	sessionID, userID, err := participationIDs(c)
	if err != nil {
		l.Warn("participate_failed", "status", 400, "reason", "ids are not numeric")
		return err
	}
	requester, err := middleware.IdentityFrom(c)
	if err != nil {
		return err
	}

	if err := h.Ledger.Join(ctx, requester, sessionID, userID); err != nil {
		return fail(l, "participate_failed", err)
	}
	return c.NoContent(http.StatusOK)
}

func (h *SessionHTTP) NoLongerParticipate(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "session.unparticipate")

	sessionID, userID, err := participationIDs(c)
	if err != nil {
		l.Warn("unparticipate_failed", "status", 400, "reason", "ids are not numeric")
		return err
	}
	requester, err := middleware.IdentityFrom(c)
	if err != nil {
		return err
	}

	if err := h.Ledger.Leave(ctx, requester, sessionID, userID); err != nil {
		return fail(l, "unparticipate_failed", err)
	}
	return c.NoContent(http.StatusOK)
}

func participationIDs(c echo.Context) (uint, uint, error) {
	sessionID, err := pathID(c, "id")
	if err != nil {
		return 0, 0, err
	}
	userID, err := pathID(c, "userId")
	if err != nil {
		return 0, 0, err
	}
	return sessionID, userID, nil
}
