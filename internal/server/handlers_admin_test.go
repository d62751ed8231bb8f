package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AngreeCloud/SurveyApp/internal/domain"
)

func withCookies(req *http.Request, cookies []*http.Cookie) *http.Request {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

func TestAdminLogin_WrongPassword(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})

	rec := doRequest(srv, jsonRequest(http.MethodPost, "/api/admin/login", `{"password":"nope"}`))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid password")
	assert.Empty(t, rec.Result().Cookies(), "failed logins must not issue a session")
}

func TestAdminLogin_CorrectPasswordIssuesSession(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})

	cookies := loginAdmin(t, srv)

	req := withCookies(getRequest("/api/admin/stats"), cookies)
	rec := doRequest(srv, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminStats_RequiresSession(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})

	rec := doRequest(srv, getRequest("/api/admin/stats"))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminLogout_ExpiresSession(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})
	cookies := loginAdmin(t, srv)

	rec := doRequest(srv, withCookies(jsonRequest(http.MethodPost, "/api/admin/logout", ``), cookies))
	require.Equal(t, http.StatusOK, rec.Code)

	var expired bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionName && c.MaxAge < 0 {
			expired = true
		}
	}
	assert.True(t, expired, "logout must expire the session cookie")
}

func TestAdminStats_ReturnsSnapshot(t *testing.T) {
	app := &mockAppService{snapshot: &domain.Snapshot{
		Overall: domain.Stats{Total: 3, Stats: []domain.LevelStat{
			{Level: domain.LevelVerySatisfied, Count: 3, Percentage: "100.0"},
		}},
	}}
	srv := newTestServer(t, app)
	cookies := loginAdmin(t, srv)

	rec := doRequest(srv, withCookies(getRequest("/api/admin/stats?date=2025-08-30"), cookies))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"percentage":"100.0"`)
	assert.Contains(t, rec.Body.String(), `"overall"`)
	assert.Contains(t, rec.Body.String(), `"today"`)
}

func TestAdminExport_SetsDownloadHeaders(t *testing.T) {
	app := &mockAppService{exportFile: &domain.ExportFile{
		Filename:    "feedback-2025-08-30.csv",
		ContentType: "text/csv; charset=utf-8",
		Data:        []byte("ID;..."),
	}}
	srv := newTestServer(t, app)
	cookies := loginAdmin(t, srv)

	rec := doRequest(srv, withCookies(getRequest("/api/admin/export"), cookies))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "attachment; filename=feedback-2025-08-30.csv", rec.Header().Get("Content-Disposition"))
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Equal(t, "ID;...", rec.Body.String())
	assert.Equal(t, []string{"csv"}, app.exportFormats, "missing format must default to csv")
}

func TestAdminExport_InvalidFormat(t *testing.T) {
	app := &mockAppService{exportErr: domain.ErrUnsupportedFormat}
	srv := newTestServer(t, app)
	cookies := loginAdmin(t, srv)

	rec := doRequest(srv, withCookies(getRequest("/api/admin/export?format=pdf"), cookies))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid format")
}

func TestAdminExport_RequiresSession(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})

	rec := doRequest(srv, getRequest("/api/admin/export"))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
