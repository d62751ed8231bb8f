package server

import (
	"github.com/labstack/echo/v4"

	"github.com/AngreeCloud/SurveyApp/internal/platform/correlation"
)

// correlationMiddleware seeds every request context with a correlation ID so
// log lines produced along the request path can be tied together.
func correlationMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := correlation.NewID()
		ctx := correlation.WithID(c.Request().Context(), id)
		c.SetRequest(c.Request().WithContext(ctx))
		c.Response().Header().Set("X-Correlation-ID", id)
		return next(c)
	}
}

func (s *Server) requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		session, err := s.sessionStore.Get(c.Request(), sessionName)
		if err != nil {
			return c.JSON(401, map[string]string{"error": "Unauthorized"})
		}

		authenticated, ok := session.Values[sessionKeyAuthenticated].(bool)
		if !ok || !authenticated {
			return c.JSON(401, map[string]string{"error": "Unauthorized"})
		}

		return next(c)
	}
}
