package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Debouncer suppresses duplicate kiosk submissions. A SETNX key per submission
// token acts as a cooldown: the first submission in the window wins, repeats
// are rejected until the key expires.
type Debouncer struct {
	rdb      *goredis.Client
	cooldown time.Duration
}

// NewDebouncer creates a debouncer with the given cooldown window.
func NewDebouncer(rdb *goredis.Client, cooldown time.Duration) *Debouncer {
	return &Debouncer{rdb: rdb, cooldown: cooldown}
}

// Allow reports whether a submission from token may proceed. The token is
// consumed on success.
func (d *Debouncer) Allow(ctx context.Context, token string) (bool, error) {
	set, err := d.rdb.SetNX(ctx, debounceKey(token), "1", d.cooldown).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check debounce: %w", err)
	}
	return set, nil
}

func debounceKey(token string) string {
	return "debounce:feedback:" + token
}
