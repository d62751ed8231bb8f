package domain

import (
	"context"
	"time"
)

// LevelStat is one level's share of a stats computation. Percentage is a
// pre-formatted one-decimal string ("33.3", "0.0") because that is the wire
// format the admin view consumes.
type LevelStat struct {
	Level      string `json:"level"`
	Count      int    `json:"count"`
	Percentage string `json:"percentage"`
}

// Stats is the aggregate over one feedback set.
type Stats struct {
	Total int         `json:"total"`
	Stats []LevelStat `json:"stats"`
}

// Snapshot is the three-way statistics bundle returned to the admin view:
// the date-filtered view, the all-time view, and the current calendar day.
type Snapshot struct {
	Current Stats `json:"current"`
	Overall Stats `json:"overall"`
	Today   Stats `json:"today"`
}

// StatsProvider computes snapshots from the feedback ledger.
type StatsProvider interface {
	Snapshot(ctx context.Context, date *time.Time) (*Snapshot, error)
}
