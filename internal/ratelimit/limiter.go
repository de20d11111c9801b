// Package ratelimit throttles account sign-ups and login attempts.
package ratelimit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// Reasons reported in LimitResult.
const (
	ReasonIPHourly    = "ip_hourly_limit"
	ReasonLockout     = "lockout"
	ReasonMaxAttempts = "max_attempts"
)

const (
	ipWindow        = time.Hour
	cleanupInterval = 5 * time.Minute
)

// Config holds rate limit configuration.
type Config struct {
	SignupMaxIPPerHour int // accounts created per IP per hour

	LoginMaxAttempts  int           // failed attempts per email before lockout
	LoginLockout      time.Duration // how long a locked email stays locked
	LoginMaxIPPerHour int           // failed attempts per IP per hour

	// Clock defaults to the real clock.
	Clock clockwork.Clock
}

// DefaultConfig returns the limits used when New is given nil.
func DefaultConfig() *Config {
	return &Config{
		SignupMaxIPPerHour: 10,
		LoginMaxAttempts:   5,
		LoginLockout:       15 * time.Minute,
		LoginMaxIPPerHour:  50,
	}
}

// LimitResult is the outcome of a Check call.
type LimitResult struct {
	Allowed    bool
	RetryAfter time.Duration
	Reason     string
}

func allowed() LimitResult { return LimitResult{Allowed: true} }

func denied(reason string, retryAfter time.Duration) LimitResult {
	return LimitResult{RetryAfter: retryAfter, Reason: reason}
}

// counter is a fixed window of events for one key.
type counter struct {
	count    int
	firstAt  time.Time
	lastAt   time.Time
	lockedAt time.Time
}

// counters maps hashed keys to windows.
type counters map[string]*counter

// overHourly reports how long key must wait when it has reached max events
// within the current hour.
func (c counters) overHourly(key string, max int, now time.Time) (time.Duration, bool) {
	e := c[key]
	if e == nil {
		return 0, false
	}
	age := now.Sub(e.firstAt)
	if age < ipWindow && e.count >= max {
		return ipWindow - age, true
	}
	return 0, false
}

// bumpHourly records an event, starting a new window when the old one has
// expired.
func (c counters) bumpHourly(key string, now time.Time) {
	e := c[key]
	if e == nil || now.Sub(e.firstAt) >= ipWindow {
		c[key] = &counter{count: 1, firstAt: now, lastAt: now}
		return
	}
	e.count++
	e.lastAt = now
}

func (c counters) prune(now time.Time, maxIdle time.Duration) {
	for k, e := range c {
		if now.Sub(e.lastAt) > maxIdle {
			delete(c, k)
		}
	}
}

// Limiter tracks sign-ups per IP and failed logins per email and IP. Keys are
// hashed so raw emails and addresses are never held in memory.
type Limiter struct {
	config *Config
	clock  clockwork.Clock

	mu         sync.RWMutex
	signupByIP counters
	loginByID  counters
	loginByIP  counters

	stop        context.CancelFunc
	stopCtx     context.Context
	cleanupOnce sync.Once
	cleanupWg   sync.WaitGroup
}

// New creates a limiter. A nil cfg uses DefaultConfig.
func New(cfg *Config) *Limiter {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Limiter{
		config:     cfg,
		clock:      clock,
		signupByIP: make(counters),
		loginByID:  make(counters),
		loginByIP:  make(counters),
		stop:       cancel,
		stopCtx:    ctx,
	}
}

// Close stops the background cleanup.
func (l *Limiter) Close() {
	l.stop()
	l.cleanupWg.Wait()
}

// CheckSignup reports whether ip may create another account.
func (l *Limiter) CheckSignup(ip string) LimitResult {
	l.startCleanup()
	now := l.clock.Now()

	l.mu.RLock()
	defer l.mu.RUnlock()

	if wait, over := l.signupByIP.overHourly(hashKey("signup:ip:", ip), l.config.SignupMaxIPPerHour, now); over {
		return denied(ReasonIPHourly, wait)
	}
	return allowed()
}

// RecordSignup counts a created account. Call it after the insert succeeds.
func (l *Limiter) RecordSignup(ip string) {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.signupByIP.bumpHourly(hashKey("signup:ip:", ip), now)
}

// CheckLogin reports whether a login attempt may proceed. It does not count
// the attempt.
func (l *Limiter) CheckLogin(email, ip string) LimitResult {
	l.startCleanup()
	now := l.clock.Now()

	l.mu.RLock()
	defer l.mu.RUnlock()

	if e := l.loginByID[loginKey(email)]; e != nil {
		if !e.lockedAt.IsZero() {
			if elapsed := now.Sub(e.lockedAt); elapsed < l.config.LoginLockout {
				return denied(ReasonLockout, l.config.LoginLockout-elapsed)
			}
		} else if e.count >= l.config.LoginMaxAttempts {
			return denied(ReasonMaxAttempts, l.config.LoginLockout)
		}
	}
	if wait, over := l.loginByIP.overHourly(hashKey("login:ip:", ip), l.config.LoginMaxIPPerHour, now); over {
		return denied(ReasonIPHourly, wait)
	}
	return allowed()
}

// RecordLoginFailure counts a failed login and reports whether this attempt
// locked the email.
func (l *Limiter) RecordLoginFailure(email, ip string) (lockedOut bool) {
	now := l.clock.Now()
	key := loginKey(email)

	l.mu.Lock()
	defer l.mu.Unlock()

	e := l.loginByID[key]
	if e == nil || (!e.lockedAt.IsZero() && now.Sub(e.lockedAt) >= l.config.LoginLockout) {
		e = &counter{firstAt: now}
		l.loginByID[key] = e
	}
	e.count++
	e.lastAt = now
	if e.count >= l.config.LoginMaxAttempts && e.lockedAt.IsZero() {
		e.lockedAt = now
		lockedOut = true
	}

	l.loginByIP.bumpHourly(hashKey("login:ip:", ip), now)
	return lockedOut
}

// ResetLogin clears an email's failures after a successful login.
func (l *Limiter) ResetLogin(email string) {
	l.mu.Lock()
	delete(l.loginByID, loginKey(email))
	l.mu.Unlock()
}

func loginKey(email string) string {
	return hashKey("login:id:", strings.ToLower(strings.TrimSpace(email)))
}

func hashKey(prefix, value string) string {
	sum := sha256.Sum256([]byte(value))
	return prefix + hex.EncodeToString(sum[:8])
}

func (l *Limiter) startCleanup() {
	l.cleanupOnce.Do(func() {
		l.cleanupWg.Add(1)
		go func() {
			defer l.cleanupWg.Done()
			ticker := l.clock.NewTicker(cleanupInterval)
			defer ticker.Stop()
			for {
				select {
				case <-l.stopCtx.Done():
					return
				case <-ticker.Chan():
					l.cleanup()
				}
			}
		}()
	})
}

func (l *Limiter) cleanup() {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.signupByIP.prune(now, ipWindow)
	l.loginByIP.prune(now, ipWindow)
	l.loginByID.prune(now, l.config.LoginLockout+ipWindow)
}

// GetClientIP returns the address a request came from. X-Forwarded-For and
// X-Real-IP are only read when trustProxy is set; the rightmost public
// forwarded address wins.
func GetClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			hops := strings.Split(xff, ",")
			for i := len(hops) - 1; i >= 0; i-- {
				hop := strings.TrimSpace(hops[i])
				if hop != "" && !isPrivateIP(hop) {
					return hop
				}
			}
			return strings.TrimSpace(hops[len(hops)-1])
		}
		if xri := r.Header.Get("X-Real-IP"); xri != "" {
			return strings.TrimSpace(xri)
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func isPrivateIP(raw string) bool {
	addr, err := netip.ParseAddr(raw)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	return addr.IsPrivate() || addr.IsLoopback() || addr.IsLinkLocalUnicast()
}

// SanitizeIdentifier masks an email address for logging.
func SanitizeIdentifier(identifier string) string {
	identifier = strings.ToLower(strings.TrimSpace(identifier))
	at := strings.LastIndex(identifier, "@")
	if at < 0 {
		return "***"
	}
	local, domain := identifier[:at], identifier[at+1:]
	if len(local) > 2 {
		return local[:2] + "***@" + domain
	}
	return "***@" + domain
}

// LogRateLimitExceeded logs a throttled request without the raw email.
func LogRateLimitExceeded(limitType, identifier, ip, reason string) {
	log.Warn().
		Str("event", "rate_limit_exceeded").
		Str("type", limitType).
		Str("identifier", SanitizeIdentifier(identifier)).
		Str("ip", ip).
		Str("reason", reason).
		Msg("Rate limit exceeded")
}
