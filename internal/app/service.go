package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/AngreeCloud/SurveyApp/internal/domain"
	"github.com/AngreeCloud/SurveyApp/internal/export"
	"github.com/AngreeCloud/SurveyApp/internal/metrics"
)

// DefaultListLimit caps feedback listings when the caller does not choose one.
const DefaultListLimit = 100

// Notifier is told about accepted submissions so live views can refresh.
// Implementations must not block.
type Notifier interface {
	Notify()
}

// Service is the application layer. debouncer and notifier may be nil when the
// corresponding infrastructure is not configured.
type Service struct {
	repo      domain.FeedbackRepository
	stats     domain.StatsProvider
	debouncer domain.Debouncer
	notifier  Notifier
	clock     clockwork.Clock
}

// NewService creates the application layer service.
func NewService(repo domain.FeedbackRepository, stats domain.StatsProvider, debouncer domain.Debouncer, notifier Notifier, clock clockwork.Clock) *Service {
	return &Service{
		repo:      repo,
		stats:     stats,
		debouncer: debouncer,
		notifier:  notifier,
		clock:     clock,
	}
}

// Submit validates and persists one satisfaction rating.
func (s *Service) Submit(ctx context.Context, level, token string) (*domain.Feedback, error) {
	if !domain.ValidLevel(level) {
		metrics.RejectedTotal.WithLabelValues("invalid_level").Inc()
		return nil, domain.ErrInvalidLevel
	}

	if s.debouncer != nil && token != "" {
		allowed, err := s.debouncer.Allow(ctx, token)
		if err != nil {
			// The debouncer is best-effort: a Redis outage must not take the
			// kiosk down, so the submission proceeds.
			slog.WarnContext(ctx, "Debounce check failed, accepting submission", "error", err)
		} else if !allowed {
			metrics.RejectedTotal.WithLabelValues("debounced").Inc()
			return nil, domain.ErrDuplicateSubmit
		}
	}

	fb, err := s.repo.Append(ctx, level)
	if err != nil {
		return nil, err
	}

	metrics.SubmissionsTotal.WithLabelValues(fb.Level).Inc()
	slog.InfoContext(ctx, "Feedback recorded", "level", fb.Level, "sequence", fb.Sequence)

	if s.notifier != nil {
		s.notifier.Notify()
	}

	return fb, nil
}

// List returns recent feedback. limit must be positive.
func (s *Service) List(ctx context.Context, date *time.Time, limit int) ([]domain.Feedback, error) {
	if limit <= 0 {
		return nil, domain.ErrInvalidLimit
	}
	return s.repo.List(ctx, date, limit)
}

// Snapshot returns the three-way admin statistics bundle.
func (s *Service) Snapshot(ctx context.Context, date *time.Time) (*domain.Snapshot, error) {
	return s.stats.Snapshot(ctx, date)
}

// Export encodes the full (optionally date-filtered) feedback list. Unlike
// List, the query is uncapped so the download covers every row.
func (s *Service) Export(ctx context.Context, date *time.Time, format string) (*domain.ExportFile, error) {
	feedbacks, err := s.repo.List(ctx, date, 0)
	if err != nil {
		return nil, err
	}

	file, err := export.Encode(feedbacks, format, s.clock.Now())
	if err != nil {
		return nil, err
	}

	metrics.ExportsTotal.WithLabelValues(format).Inc()
	return file, nil
}
