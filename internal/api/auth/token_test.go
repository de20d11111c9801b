package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/codr1/CopticLeague/internal/api/authz"
	"github.com/codr1/CopticLeague/internal/config"
)

func setTokenConfig(t *testing.T) *clockwork.FakeClock {
	t.Helper()

	prevConfig := appConfig
	prevClock := clock
	fake := clockwork.NewFakeClockAt(time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC))
	appConfig = &config.Config{}
	appConfig.App.SecretKey = "test-secret"
	clock = fake
	t.Cleanup(func() {
		appConfig = prevConfig
		clock = prevClock
	})
	return fake
}

func TestIssueTokenRoundTripViaBearer(t *testing.T) {
	setTokenConfig(t)

	token, _, err := IssueToken(&authz.AuthUser{ID: 42, Role: authz.RoleCoach})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	user, err := UserFromRequest(req)
	if err != nil {
		t.Fatalf("user from request: %v", err)
	}
	if user == nil || user.ID != 42 || user.Role != authz.RoleCoach {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestUserFromRequestReadsCookie(t *testing.T) {
	setTokenConfig(t)

	token, _, err := IssueToken(&authz.AuthUser{ID: 7, Role: authz.RoleAdmin})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: authCookieName, Value: token})

	user, err := UserFromRequest(req)
	if err != nil || user == nil || user.Role != authz.RoleAdmin {
		t.Fatalf("expected admin from cookie, got %+v (%v)", user, err)
	}
}

func TestUserFromRequestWithoutToken(t *testing.T) {
	setTokenConfig(t)

	user, err := UserFromRequest(httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil || user != nil {
		t.Fatalf("expected anonymous request, got %+v (%v)", user, err)
	}
}

func TestParseTokenRejectsTampering(t *testing.T) {
	setTokenConfig(t)

	token, _, err := IssueToken(&authz.AuthUser{ID: 1, Role: authz.RolePlayer})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	forged, _, err := IssueToken(&authz.AuthUser{ID: 1, Role: authz.RoleAdmin})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	// Admin payload with the player signature.
	tampered := forged[:indexDot(forged)] + token[indexDot(token):]
	if _, err := parseToken(tampered); err == nil {
		t.Fatal("expected tampered token to be rejected")
	}
	if _, err := parseToken("garbage"); err == nil {
		t.Fatal("expected malformed token to be rejected")
	}
}

func TestParseTokenExpires(t *testing.T) {
	fake := setTokenConfig(t)

	token, _, err := IssueToken(&authz.AuthUser{ID: 1, Role: authz.RolePlayer})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	fake.Advance(authTokenTTL - time.Minute)
	if _, err := parseToken(token); err != nil {
		t.Fatalf("expected token valid before expiry, got %v", err)
	}
	fake.Advance(2 * time.Minute)
	if _, err := parseToken(token); err != errTokenExpired {
		t.Fatalf("expected errTokenExpired, got %v", err)
	}
}

func TestSignPayloadRequiresSecret(t *testing.T) {
	prevConfig := appConfig
	appConfig = nil
	t.Cleanup(func() { appConfig = prevConfig })

	if _, err := signPayload("payload"); err != errAuthConfigMissing {
		t.Fatalf("expected errAuthConfigMissing, got %v", err)
	}
}

func indexDot(token string) int {
	for i := range token {
		if token[i] == '.' {
			return i
		}
	}
	return len(token)
}
