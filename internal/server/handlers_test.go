package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/AngreeCloud/SurveyApp/internal/config"
	"github.com/AngreeCloud/SurveyApp/internal/domain"
)

const testAdminPassword = "correct-horse"

// mockAppService records calls and returns configured results.
type mockAppService struct {
	submitLevels []string
	submitTokens []string
	submitResult *domain.Feedback
	submitErr    error

	listDates  []*time.Time
	listLimits []int
	feedbacks  []domain.Feedback
	listErr    error

	snapshot    *domain.Snapshot
	snapshotErr error

	exportFormats []string
	exportFile    *domain.ExportFile
	exportErr     error
}

func (m *mockAppService) Submit(ctx context.Context, level, token string) (*domain.Feedback, error) {
	m.submitLevels = append(m.submitLevels, level)
	m.submitTokens = append(m.submitTokens, token)
	if m.submitErr != nil {
		return nil, m.submitErr
	}
	if m.submitResult != nil {
		return m.submitResult, nil
	}
	return &domain.Feedback{ID: 1, Level: level, Sequence: 1, CreatedAt: time.Now()}, nil
}

func (m *mockAppService) List(ctx context.Context, date *time.Time, limit int) ([]domain.Feedback, error) {
	m.listDates = append(m.listDates, date)
	m.listLimits = append(m.listLimits, limit)
	return m.feedbacks, m.listErr
}

func (m *mockAppService) Snapshot(ctx context.Context, date *time.Time) (*domain.Snapshot, error) {
	if m.snapshotErr != nil {
		return nil, m.snapshotErr
	}
	if m.snapshot != nil {
		return m.snapshot, nil
	}
	return &domain.Snapshot{}, nil
}

func (m *mockAppService) Export(ctx context.Context, date *time.Time, format string) (*domain.ExportFile, error) {
	m.exportFormats = append(m.exportFormats, format)
	return m.exportFile, m.exportErr
}

type serverOption func(*Server)

func withPostgresHealthCheck(checker postgresHealthChecker) serverOption {
	return func(s *Server) { s.postgresHealthCheck = checker }
}

func withRedisHealthCheck(checker redisHealthChecker) serverOption {
	return func(s *Server) { s.redisHealthCheck = checker }
}

func newTestServer(t *testing.T, app domain.AppService, opts ...serverOption) *Server {
	t.Helper()

	cfg := &config.Config{
		AppEnv:        "test",
		Port:          "8080",
		AdminPassword: testAdminPassword,
		SessionSecret: "0123456789abcdef0123456789abcdef",
		SessionMaxAge: time.Hour,
	}

	srv := NewServer(cfg, app, nil, nil, nil)
	for _, opt := range opts {
		opt(srv)
	}
	return srv
}

// doRequest routes a request through the full middleware chain.
func doRequest(srv *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)
	return rec
}

func getRequest(target string) *http.Request {
	return httptest.NewRequest(http.MethodGet, target, nil)
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

// loginAdmin authenticates against the test server and returns the session
// cookies to attach to subsequent requests.
func loginAdmin(t *testing.T, srv *Server) []*http.Cookie {
	t.Helper()

	rec := doRequest(srv, jsonRequest(http.MethodPost, "/api/admin/login", `{"password":"`+testAdminPassword+`"}`))
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}
