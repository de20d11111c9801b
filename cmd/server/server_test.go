package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/codr1/CopticLeague/internal/api/auth"
	"github.com/codr1/CopticLeague/internal/api/authz"
	"github.com/codr1/CopticLeague/internal/config"
	"github.com/codr1/CopticLeague/internal/ratelimit"
	"github.com/codr1/CopticLeague/internal/testutil"
)

func setupRouterTest(t *testing.T) (http.Handler, string) {
	t.Helper()

	database := testutil.NewTestDB(t)
	admin := testutil.SeedUser(t, database, "admin@example.com", authz.RoleAdmin)
	testutil.SeedLeague(t, database, "Fall Mens", time.Date(2025, 8, 30, 0, 0, 0, 0, time.UTC))

	cfg := &config.Config{}
	cfg.App.Environment = "development"
	cfg.App.Port = 8080
	cfg.App.SecretKey = "router-secret"
	cfg.App.AllowedOrigins = []string{"http://localhost:5173"}
	cfg.Features.EnableMetrics = true

	clk := clockwork.NewFakeClockAt(time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC))
	limiter := ratelimit.New(&ratelimit.Config{
		SignupMaxIPPerHour: 100,
		LoginMaxAttempts:   5,
		LoginLockout:       time.Minute,
		LoginMaxIPPerHour:  100,
		Clock:              clk,
	})
	t.Cleanup(limiter.Close)

	server := newServer(cfg, database, nil, limiter, clk)
	token, _, err := auth.IssueToken(&authz.AuthUser{ID: admin.ID, Role: authz.RoleAdmin})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return server.Handler, token
}

func serve(handler http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRoutes(t *testing.T) {
	handler, token := setupRouterTest(t)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		status int
		body   string
	}{
		{"health", http.MethodGet, "/health", "", http.StatusOK, "OK"},
		{"metrics", http.MethodGet, "/metrics", "", http.StatusOK, "coptic_league"},
		{"home page", http.MethodGet, "/", "", http.StatusOK, "Fall Mens"},
		{"public league list", http.MethodGet, "/api/v1/leagues", "", http.StatusOK, "Fall Mens"},
		{"admin create without token", http.MethodPost, "/api/v1/leagues", "", http.StatusUnauthorized, "Authentication required"},
		{"audit as admin", http.MethodGet, "/api/v1/admin/records/audit", token, http.StatusOK, "teamsChecked"},
		{"export is not an id", http.MethodGet, "/api/v1/registrations/export", token, http.StatusOK, "Payment Status"},
		{"unknown path", http.MethodGet, "/nope", "", http.StatusNotFound, ""},
		{"wrong method", http.MethodPatch, "/api/v1/games", token, http.StatusMethodNotAllowed, ""},
	}
	for _, tt := range tests {
		rec := serve(handler, tt.method, tt.path, tt.token)
		if rec.Code != tt.status {
			t.Errorf("%s: expected %d, got %d: %s", tt.name, tt.status, rec.Code, rec.Body.String())
			continue
		}
		if tt.body != "" && !strings.Contains(rec.Body.String(), tt.body) {
			t.Errorf("%s: expected body to contain %q, got %s", tt.name, tt.body, rec.Body.String())
		}
	}
}

func TestRoutesAssignRequestID(t *testing.T) {
	handler, _ := setupRouterTest(t)

	rec := serve(handler, http.MethodGet, "/health", "")
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected X-Request-ID header")
	}
}
