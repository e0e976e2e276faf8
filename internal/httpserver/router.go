package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/yoga_studio/internal/logging"
	middleware "github.com/Skotchmaster/yoga_studio/internal/middleware/auth"
)

type Deps struct {
	AuthHandler    *AuthHTTP
	SessionHandler *SessionHTTP
	UserHandler    *UserHTTP
	TeacherHandler *TeacherHTTP
	AuthMW         *middleware.BearerAuth
	Ready          func(ctx context.Context) error
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			if err := d.Ready(c.Request().Context()); err != nil {
				logging.FromContext(c.Request().Context()).Error("not_ready", "error", err)
				return c.NoContent(http.StatusServiceUnavailable)
			}
		}
		return c.NoContent(http.StatusOK)
	})

	api := e.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", d.AuthHandler.Register)
	auth.POST("/login", d.AuthHandler.Login)

	sessions := api.Group("/session", d.AuthMW.RequireAuth)
	sessions.GET("", d.SessionHandler.GetSessions)
	sessions.GET("/search", d.SessionHandler.SearchSessions)
	sessions.GET("/:id", d.SessionHandler.GetSession)
	sessions.POST("/:id/participate/:userId", d.SessionHandler.Participate)
	sessions.DELETE("/:id/participate/:userId", d.SessionHandler.NoLongerParticipate)
	sessions.POST("", d.SessionHandler.CreateSession, d.AuthMW.RequireAdmin)
	sessions.PUT("/:id", d.SessionHandler.UpdateSession, d.AuthMW.RequireAdmin)
	sessions.DELETE("/:id", d.SessionHandler.DeleteSession, d.AuthMW.RequireAdmin)

	users := api.Group("/user", d.AuthMW.RequireAuth)
	users.GET("/:id", d.UserHandler.GetUser)
	users.DELETE("/:id", d.UserHandler.DeleteUser)

	teachers := api.Group("/teacher", d.AuthMW.RequireAuth)
	teachers.GET("", d.TeacherHandler.GetTeachers)
	teachers.GET("/:id", d.TeacherHandler.GetTeacher)
}
