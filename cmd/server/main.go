package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"

	"github.com/AngreeCloud/SurveyApp/internal/app"
	"github.com/AngreeCloud/SurveyApp/internal/broadcast"
	"github.com/AngreeCloud/SurveyApp/internal/config"
	"github.com/AngreeCloud/SurveyApp/internal/database"
	"github.com/AngreeCloud/SurveyApp/internal/domain"
	"github.com/AngreeCloud/SurveyApp/internal/platform/logging"
	"github.com/AngreeCloud/SurveyApp/internal/redis"
	"github.com/AngreeCloud/SurveyApp/internal/server"
	"github.com/AngreeCloud/SurveyApp/internal/stats"
)

const maxDashboardClients = 32

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupDB(cfg *config.Config) *pgxpool.Pool {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.RunMigrations(ctx, db); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	return db
}

func setupRedis(ctx context.Context, cfg *config.Config) *goredis.Client {
	client, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	return client
}

func runGracefulShutdown(srv *server.Server, broadcaster *broadcast.Broadcaster) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		broadcaster.Stop()

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	// Initialize structured logging
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port)

	pool := setupDB(cfg)
	defer pool.Close()

	// Redis backs the submit debouncer and is optional: without it every
	// submission is accepted.
	var redisClient *goredis.Client
	var debouncer domain.Debouncer
	if cfg.RedisURL != "" {
		redisClient = setupRedis(context.Background(), cfg)
		defer func() { _ = redisClient.Close() }()
		debouncer = redis.NewDebouncer(redisClient, cfg.FeedbackDebounce)
	} else {
		slog.Info("REDIS_URL not set, submit debouncing disabled")
	}

	feedbackRepo := database.NewFeedbackRepo(pool)
	statsEngine := stats.NewEngine(feedbackRepo, clock)
	broadcaster := broadcast.NewBroadcaster(statsEngine, clock, maxDashboardClients)

	appSvc := app.NewService(feedbackRepo, statsEngine, debouncer, broadcaster, clock)

	srv := server.NewServer(cfg, appSvc, broadcaster, pool, redisClient)

	done := runGracefulShutdown(srv, broadcaster)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
