package htmx

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWantsFragment(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    bool
	}{
		{"plain request", nil, false},
		{"htmx swap", map[string]string{HeaderRequest: "true"}, true},
		{"htmx swap any case", map[string]string{HeaderRequest: "TRUE"}, true},
		{"boosted navigation", map[string]string{HeaderRequest: "true", HeaderBoosted: "true"}, false},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		for k, v := range tt.headers {
			req.Header.Set(k, v)
		}
		if got := WantsFragment(req); got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
	}
}

func TestTarget(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if Target(req) != "" {
		t.Fatalf("expected empty target, got %q", Target(req))
	}
	req.Header.Set(HeaderTarget, "#standings-table")
	if Target(req) != "standings-table" {
		t.Fatalf("expected standings-table, got %q", Target(req))
	}
}
