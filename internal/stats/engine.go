package stats

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"

	"github.com/AngreeCloud/SurveyApp/internal/domain"
)

// Engine computes admin snapshots from the feedback ledger.
type Engine struct {
	repo  domain.FeedbackRepository
	clock clockwork.Clock
	group singleflight.Group
}

// NewEngine creates a snapshot engine reading from repo.
func NewEngine(repo domain.FeedbackRepository, clock clockwork.Clock) *Engine {
	return &Engine{repo: repo, clock: clock}
}

// Snapshot returns the three-way statistics bundle. Concurrent calls with the
// same date filter collapse into a single set of queries.
func (e *Engine) Snapshot(ctx context.Context, date *time.Time) (*domain.Snapshot, error) {
	key := "all"
	if date != nil {
		key = date.Format(time.DateOnly)
	}

	v, err, _ := e.group.Do(key, func() (any, error) {
		return e.snapshot(ctx, date)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Snapshot), nil
}

// snapshot runs the three aggregate queries independently. A date filter equal
// to today does not short-circuit the today view.
func (e *Engine) snapshot(ctx context.Context, date *time.Time) (*domain.Snapshot, error) {
	currentCounts, err := e.repo.CountsByLevel(ctx, date)
	if err != nil {
		return nil, err
	}

	overallCounts, err := e.repo.CountsByLevel(ctx, nil)
	if err != nil {
		return nil, err
	}

	today := e.clock.Now()
	todayCounts, err := e.repo.CountsByLevel(ctx, &today)
	if err != nil {
		return nil, err
	}

	return &domain.Snapshot{
		Current: Compute(currentCounts),
		Overall: Compute(overallCounts),
		Today:   Compute(todayCounts),
	}, nil
}
