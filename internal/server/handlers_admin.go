package server

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/AngreeCloud/SurveyApp/internal/domain"
	apperrors "github.com/AngreeCloud/SurveyApp/internal/errors"
)

type adminLoginRequest struct {
	Password string `json:"password"`
}

func (s *Server) handleAdminLogin(c echo.Context) error {
	var req adminLoginRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("Invalid request body")
	}

	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(s.config.AdminPassword)) != 1 {
		return c.JSON(401, map[string]string{"error": "Invalid password"})
	}

	session, err := s.sessionStore.Get(c.Request(), sessionName)
	if err != nil {
		slog.Warn("Failed to decode existing session, issuing a fresh one", "error", err)
	}
	session.Values[sessionKeyAuthenticated] = true
	if err := session.Save(c.Request(), c.Response().Writer); err != nil {
		return apperrors.InternalError("Failed to save session", err)
	}

	return c.JSON(200, map[string]bool{"success": true})
}

func (s *Server) handleAdminLogout(c echo.Context) error {
	session, err := s.sessionStore.Get(c.Request(), sessionName)
	if err != nil {
		slog.Warn("Failed to decode session during logout", "error", err)
	}
	session.Options.MaxAge = -1
	if err := session.Save(c.Request(), c.Response().Writer); err != nil {
		return apperrors.InternalError("Failed to clear session", err)
	}

	return c.JSON(200, map[string]bool{"success": true})
}

func (s *Server) handleAdminStats(c echo.Context) error {
	date := parseDateParam(c.QueryParam("date"))

	snapshot, err := s.app.Snapshot(c.Request().Context(), date)
	if err != nil {
		return apperrors.InternalError("Failed to compute statistics", err)
	}

	return c.JSON(200, snapshot)
}

func (s *Server) handleAdminExport(c echo.Context) error {
	format := c.QueryParam("format")
	if format == "" {
		format = "csv"
	}
	date := parseDateParam(c.QueryParam("date"))

	file, err := s.app.Export(c.Request().Context(), date, format)
	switch {
	case errors.Is(err, domain.ErrUnsupportedFormat):
		return apperrors.ValidationError("Invalid format").WithField("format", format)
	case err != nil:
		return apperrors.InternalError("Failed to export feedback", err)
	}

	c.Response().Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", file.Filename))
	return c.Blob(200, file.ContentType, file.Data)
}
