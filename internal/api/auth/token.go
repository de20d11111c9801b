package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/codr1/CopticLeague/internal/api/authz"
)

const (
	authCookieName = "coptic_league_auth"
	authTokenTTL   = 8 * time.Hour
	bearerPrefix   = "Bearer "
)

var (
	errAuthConfigMissing = errors.New("auth configuration missing")
	errInvalidToken      = errors.New("invalid auth token")
	errTokenExpired      = errors.New("auth token expired")
)

type tokenClaims struct {
	UserID    int64  `json:"user_id"`
	Role      string `json:"role"`
	ExpiresAt int64  `json:"exp"`
}

func isSecureCookie() bool {
	return appConfig == nil || !appConfig.IsDevelopment()
}

// IssueToken signs a token for user valid for authTokenTTL from now.
func IssueToken(user *authz.AuthUser) (string, time.Time, error) {
	if user == nil {
		return "", time.Time{}, errors.New("token requires a user")
	}

	expiresAt := clock.Now().Add(authTokenTTL)
	payload, err := json.Marshal(tokenClaims{
		UserID:    user.ID,
		Role:      string(user.Role),
		ExpiresAt: expiresAt.Unix(),
	})
	if err != nil {
		return "", time.Time{}, err
	}

	encodedPayload := base64.RawURLEncoding.EncodeToString(payload)
	signature, err := signPayload(encodedPayload)
	if err != nil {
		return "", time.Time{}, err
	}
	return encodedPayload + "." + signature, expiresAt, nil
}

func SetAuthCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecureCookie(),
		SameSite: http.SameSiteLaxMode,
		Expires:  expiresAt,
		MaxAge:   int(authTokenTTL.Seconds()),
	})
}

func ClearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecureCookie(),
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
}

// UserFromRequest reads the token from the Authorization header or, failing
// that, the auth cookie. A request without a token yields (nil, nil).
func UserFromRequest(r *http.Request) (*authz.AuthUser, error) {
	if r == nil {
		return nil, nil
	}

	raw := tokenFromRequest(r)
	if raw == "" {
		return nil, nil
	}

	claims, err := parseToken(raw)
	if err != nil {
		return nil, err
	}

	return &authz.AuthUser{
		ID:   claims.UserID,
		Role: authz.ParseRole(claims.Role),
	}, nil
}

func tokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, bearerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	}
	cookie, err := r.Cookie(authCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func parseToken(raw string) (*tokenClaims, error) {
	parts := strings.SplitN(raw, ".", 2)
	if len(parts) != 2 {
		return nil, errInvalidToken
	}

	encodedPayload := parts[0]
	signature := parts[1]
	expectedSignature, err := signPayload(encodedPayload)
	if err != nil {
		return nil, err
	}

	if !hmac.Equal([]byte(signature), []byte(expectedSignature)) {
		return nil, errInvalidToken
	}

	payload, err := base64.RawURLEncoding.DecodeString(encodedPayload)
	if err != nil {
		return nil, errInvalidToken
	}

	var claims tokenClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, errInvalidToken
	}

	if claims.ExpiresAt <= clock.Now().Unix() {
		return nil, errTokenExpired
	}

	return &claims, nil
}

func signPayload(payload string) (string, error) {
	if appConfig == nil || appConfig.App.SecretKey == "" {
		return "", errAuthConfigMissing
	}

	mac := hmac.New(sha256.New, []byte(appConfig.App.SecretKey))
	_, _ = mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil)), nil
}
