package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/yoga_studio/internal/logging"
	"github.com/Skotchmaster/yoga_studio/internal/service"
	"github.com/Skotchmaster/yoga_studio/internal/transport"
)

type TeacherHTTP struct {
	Svc *service.TeacherService
}

func (h *TeacherHTTP) GetTeachers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "teacher.list")

	teachers, err := h.Svc.FindAll(ctx)
	if err != nil {
		return fail(l, "get_teachers_failed", err)
	}
	return c.JSON(http.StatusOK, transport.TeachersToDTO(teachers))
}

func (h *TeacherHTTP) GetTeacher(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "teacher.get")

	id, err := pathID(c, "id")
	if err != nil {
		l.Warn("get_teacher_failed", "status", 400, "reason", "id is not numeric")
		return err
	}

	t, err := h.Svc.FindByID(ctx, id)
	if err != nil {
		return fail(l, "get_teacher_failed", err)
	}
	if t == nil {
		l.Warn("get_teacher_failed", "status", 404, "teacher_id", id)
		return echo.NewHTTPError(http.StatusNotFound, "Not Found")
	}
	return c.JSON(http.StatusOK, transport.TeacherToDTO(t))
}
