package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"

	"github.com/AngreeCloud/SurveyApp/internal/broadcast"
	"github.com/AngreeCloud/SurveyApp/internal/config"
	"github.com/AngreeCloud/SurveyApp/internal/domain"
	apperrors "github.com/AngreeCloud/SurveyApp/internal/errors"
)

const (
	sessionName             = "surveyapp-admin-session"
	sessionKeyAuthenticated = "authenticated"
)

type Server struct {
	echo         *echo.Echo
	config       *config.Config
	app          domain.AppService
	broadcaster  *broadcast.Broadcaster
	sessionStore *sessions.CookieStore
	db           *pgxpool.Pool
	redisClient  *goredis.Client
	startTime    time.Time

	// Overridable in tests; nil means use db / redisClient directly.
	postgresHealthCheck postgresHealthChecker
	redisHealthCheck    redisHealthChecker
}

// NewServer builds the Echo application. broadcaster and redisClient may be
// nil when the corresponding infrastructure is not configured.
func NewServer(cfg *config.Config, app domain.AppService, broadcaster *broadcast.Broadcaster, db *pgxpool.Pool, redisClient *goredis.Client) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(correlationMiddleware)
	e.Use(apperrors.Middleware())

	// Session store
	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.SessionMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   cfg.AppEnv == "production",
		SameSite: http.SameSiteLaxMode,
	}

	srv := &Server{
		echo:         e,
		config:       cfg,
		app:          app,
		broadcaster:  broadcaster,
		sessionStore: sessionStore,
		db:           db,
		redisClient:  redisClient,
		startTime:    time.Now(),
	}

	srv.registerRoutes()

	return srv
}

func (s *Server) Start() error {
	slog.Info("Starting server", "port", s.config.Port)
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
