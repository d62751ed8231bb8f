package server

import (
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/AngreeCloud/SurveyApp/internal/app"
	"github.com/AngreeCloud/SurveyApp/internal/domain"
	apperrors "github.com/AngreeCloud/SurveyApp/internal/errors"
)

type submitFeedbackRequest struct {
	SatisfactionLevel string `json:"satisfaction_level"`
	Token             string `json:"token"`
}

func (s *Server) handleSubmitFeedback(c echo.Context) error {
	var req submitFeedbackRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("Invalid request body")
	}

	// Kiosk device tokens are UUIDs. Without one the client address stands in,
	// which still shields a single kiosk against double-taps.
	token := req.Token
	if token != "" {
		if _, err := uuid.Parse(token); err != nil {
			return apperrors.ValidationError("Invalid token").WithField("token", token)
		}
	} else {
		token = c.RealIP()
	}

	fb, err := s.app.Submit(c.Request().Context(), req.SatisfactionLevel, token)
	switch {
	case errors.Is(err, domain.ErrInvalidLevel):
		return apperrors.ValidationError("Invalid satisfaction level").
			WithField("satisfaction_level", req.SatisfactionLevel)
	case errors.Is(err, domain.ErrDuplicateSubmit):
		return apperrors.RateLimitedError("Feedback already received, please wait a moment")
	case err != nil:
		return apperrors.InternalError("Failed to record feedback", err)
	}

	return c.JSON(200, map[string]any{
		"success": true,
		"message": "Obrigado pelo seu feedback!",
		"id":      fb.ID,
		"ticket":  fb.Sequence,
	})
}

func (s *Server) handleListFeedback(c echo.Context) error {
	date := parseDateParam(c.QueryParam("date"))

	limitParam := c.QueryParam("limit")
	if limitParam == "" {
		limitParam = strconv.Itoa(app.DefaultListLimit)
	}
	limit, err := strconv.Atoi(limitParam)
	if err != nil {
		return apperrors.ValidationError("Invalid limit").WithField("limit", limitParam)
	}

	feedbacks, err := s.app.List(c.Request().Context(), date, limit)
	switch {
	case errors.Is(err, domain.ErrInvalidLimit):
		return apperrors.ValidationError("Invalid limit").WithField("limit", limitParam)
	case err != nil:
		return apperrors.InternalError("Failed to list feedback", err)
	}

	if feedbacks == nil {
		feedbacks = []domain.Feedback{}
	}
	return c.JSON(200, feedbacks)
}

// parseDateParam parses a YYYY-MM-DD query parameter. Malformed values
// disable the filter instead of failing the request.
func parseDateParam(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return nil
	}
	return &t
}
