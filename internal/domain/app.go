package domain

import (
	"context"
	"time"
)

// ExportFile is an encoded download plus the metadata the HTTP layer needs to
// serve it.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Debouncer suppresses duplicate kiosk submissions within a cooldown window.
// Allow returns false when the token submitted too recently.
type Debouncer interface {
	Allow(ctx context.Context, token string) (bool, error)
}

// AppService is the application layer contract - handlers route all operations
// through here.
type AppService interface {
	// Submit validates and persists one satisfaction rating. token identifies
	// the submitting kiosk for debouncing and may be empty.
	Submit(ctx context.Context, level, token string) (*Feedback, error)

	// List returns recent feedback, optionally filtered to one calendar day.
	List(ctx context.Context, date *time.Time, limit int) ([]Feedback, error)

	// Snapshot returns the three-way admin statistics bundle.
	Snapshot(ctx context.Context, date *time.Time) (*Snapshot, error)

	// Export encodes the (optionally filtered) full feedback list as csv or txt.
	Export(ctx context.Context, date *time.Time, format string) (*ExportFile, error)
}
