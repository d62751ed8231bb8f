package domain

import (
	"context"
	"time"
)

// Satisfaction levels accepted from the kiosk. Closed set - anything else is
// rejected before it reaches the database.
const (
	LevelVerySatisfied = "Muito Satisfeito"
	LevelSatisfied     = "Satisfeito"
	LevelUnsatisfied   = "Insatisfeito"
)

// Levels lists the accepted satisfaction levels in display order.
var Levels = []string{LevelVerySatisfied, LevelSatisfied, LevelUnsatisfied}

// ValidLevel reports whether level is a member of the accepted set.
func ValidLevel(level string) bool {
	for _, l := range Levels {
		if l == level {
			return true
		}
	}
	return false
}

// Feedback is one persisted satisfaction submission.
//
// Sequence is the per-level daily ordinal (1..N for the Nth submission of that
// level on that calendar day). It is assigned at insertion time and never
// reused within a (level, day) pair.
type Feedback struct {
	ID        int64     `json:"id"`
	Level     string    `json:"satisfaction_level"`
	Sequence  int       `json:"sequence_number"`
	CreatedAt time.Time `json:"created_at"`
}

// LevelCount is one aggregate row from the counts query. Kept as a slice
// element rather than a map entry so the grouping order survives aggregation.
type LevelCount struct {
	Level string
	Count int
}

// FeedbackRepository abstracts feedback persistence. The store is append-only:
// there are no update or delete operations.
type FeedbackRepository interface {
	// Append inserts a new feedback row, allocating the next per-level daily
	// sequence number atomically with the insert.
	Append(ctx context.Context, level string) (*Feedback, error)

	// List returns feedback ordered by creation time descending, optionally
	// restricted to a single calendar day, capped at limit. A limit <= 0 means
	// no cap (used by exports).
	List(ctx context.Context, date *time.Time, limit int) ([]Feedback, error)

	// CountsByLevel returns one row per level present in the (optionally
	// date-filtered) feedback set. Levels with zero rows are absent.
	CountsByLevel(ctx context.Context, date *time.Time) ([]LevelCount, error)
}
