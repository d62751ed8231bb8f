package redis

import (
	"context"
	"flag"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

var testClient *goredis.Client

func TestMain(m *testing.M) {
	flag.Parse()

	if testing.Short() {
		os.Exit(m.Run())
	}

	ctx := context.Background()

	redisContainer, err := tcredis.Run(ctx, "redis:8-alpine")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start redis container: %v\n", err)
		os.Exit(1)
	}

	defer func() {
		if err := redisContainer.Terminate(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to terminate redis container: %v\n", err)
		}
	}()

	connStr, err := redisContainer.ConnectionString(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to get connection string: %v\n", err)
		os.Exit(1)
	}

	testClient, err = NewClient(ctx, connStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to test redis: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = testClient.Close() }()

	os.Exit(m.Run())
}

func TestAllow_FirstSubmissionPasses(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	d := NewDebouncer(testClient, 2*time.Second)
	token := uuid.NewString()

	allowed, err := d.Allow(context.Background(), token)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestAllow_RepeatWithinCooldownIsRejected(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	d := NewDebouncer(testClient, 2*time.Second)
	token := uuid.NewString()

	allowed, err := d.Allow(context.Background(), token)
	require.NoError(t, err)
	require.True(t, allowed)

	allowed, err = d.Allow(context.Background(), token)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestAllow_DistinctTokensDoNotInterfere(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	d := NewDebouncer(testClient, 2*time.Second)

	first, err := d.Allow(context.Background(), uuid.NewString())
	require.NoError(t, err)
	second, err := d.Allow(context.Background(), uuid.NewString())
	require.NoError(t, err)

	assert.True(t, first)
	assert.True(t, second)
}

func TestAllow_PassesAgainAfterCooldown(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	d := NewDebouncer(testClient, 100*time.Millisecond)
	token := uuid.NewString()

	allowed, err := d.Allow(context.Background(), token)
	require.NoError(t, err)
	require.True(t, allowed)

	time.Sleep(150 * time.Millisecond)

	allowed, err = d.Allow(context.Background(), token)
	require.NoError(t, err)
	assert.True(t, allowed)
}
