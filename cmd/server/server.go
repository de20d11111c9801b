// cmd/server/server.go
package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/time/rate"

	"github.com/codr1/CopticLeague/internal/api"
	"github.com/codr1/CopticLeague/internal/api/auth"
	"github.com/codr1/CopticLeague/internal/api/games"
	"github.com/codr1/CopticLeague/internal/api/leagues"
	"github.com/codr1/CopticLeague/internal/api/pages"
	"github.com/codr1/CopticLeague/internal/api/registrations"
	"github.com/codr1/CopticLeague/internal/api/teams"
	"github.com/codr1/CopticLeague/internal/config"
	"github.com/codr1/CopticLeague/internal/db"
	"github.com/codr1/CopticLeague/internal/email"
	"github.com/codr1/CopticLeague/internal/metrics"
	"github.com/codr1/CopticLeague/internal/ratelimit"
)

// Mutating API calls across all clients.
const (
	writeRequestsPerSecond = 20
	writeBurst             = 40
)

func newServer(cfg *config.Config, database *db.DB, sender email.EmailSender, limiter *ratelimit.Limiter, clk clockwork.Clock) *http.Server {
	auth.InitHandlers(database, cfg, limiter, clk)
	leagues.InitHandlers(database)
	teams.InitHandlers(database)
	games.InitHandlers(database)
	registrations.InitHandlers(database, sender, clk)
	pages.InitHandlers(database.Queries, clk)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      newHandler(cfg),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// newHandler builds the routed mux behind the middleware chain. Handlers
// must already be initialized.
func newHandler(cfg *config.Config) http.Handler {
	router := http.NewServeMux()
	registerRoutes(router, cfg)

	// Applied inside out: the request id is assigned before logging and
	// recovery run.
	return api.ChainMiddleware(
		router,
		api.WithAuth,
		api.WithWriteRateLimit(rate.NewLimiter(rate.Limit(writeRequestsPerSecond), writeBurst)),
		api.WithMetrics,
		api.WithRecovery,
		api.WithLogging,
		api.WithRequestID,
		api.WithCORS(cfg.App.AllowedOrigins),
	)
}

func registerRoutes(mux *http.ServeMux, cfg *config.Config) {
	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	if cfg.Features.EnableMetrics {
		mux.Handle("GET /metrics", metrics.Handler())
	}

	// Public pages
	mux.HandleFunc("GET /{$}", pages.HandleHome)
	mux.HandleFunc("GET /leagues/{id}/standings", pages.HandleStandingsPage)
	mux.HandleFunc("GET /leagues/{id}/schedule", pages.HandleSchedulePage)

	// Auth
	mux.HandleFunc("POST /api/v1/auth/register", auth.HandleRegister)
	mux.HandleFunc("POST /api/v1/auth/login", auth.HandleLogin)
	mux.HandleFunc("POST /api/v1/auth/logout", auth.HandleLogout)
	mux.HandleFunc("GET /api/v1/auth/me", auth.HandleMe)
	mux.HandleFunc("PUT /api/v1/auth/profile", auth.HandleUpdateProfile)

	// Leagues
	mux.HandleFunc("GET /api/v1/leagues", leagues.HandleListLeagues)
	mux.HandleFunc("POST /api/v1/leagues", leagues.HandleCreateLeague)
	mux.HandleFunc("GET /api/v1/leagues/{id}", leagues.HandleGetLeague)
	mux.HandleFunc("PUT /api/v1/leagues/{id}", leagues.HandleUpdateLeague)
	mux.HandleFunc("DELETE /api/v1/leagues/{id}", leagues.HandleDeleteLeague)
	mux.HandleFunc("GET /api/v1/leagues/{id}/standings", leagues.HandleLeagueStandings)
	mux.HandleFunc("POST /api/v1/leagues/{id}/schedule/generate", leagues.HandleGenerateSchedule)
	mux.HandleFunc("GET /api/v1/admin/records/audit", leagues.HandleRecordAudit)

	// Teams
	mux.HandleFunc("GET /api/v1/teams", teams.HandleListTeams)
	mux.HandleFunc("POST /api/v1/teams", teams.HandleCreateTeam)
	mux.HandleFunc("GET /api/v1/teams/{id}", teams.HandleGetTeam)
	mux.HandleFunc("PUT /api/v1/teams/{id}", teams.HandleUpdateTeam)
	mux.HandleFunc("DELETE /api/v1/teams/{id}", teams.HandleDeleteTeam)
	mux.HandleFunc("POST /api/v1/teams/{id}/players", teams.HandleAddPlayer)
	mux.HandleFunc("DELETE /api/v1/teams/{id}/players/{player_id}", teams.HandleRemovePlayer)

	// Games
	mux.HandleFunc("GET /api/v1/games", games.HandleListGames)
	mux.HandleFunc("POST /api/v1/games", games.HandleCreateGame)
	mux.HandleFunc("GET /api/v1/games/{id}", games.HandleGetGame)
	mux.HandleFunc("PUT /api/v1/games/{id}", games.HandleUpdateGame)
	mux.HandleFunc("DELETE /api/v1/games/{id}", games.HandleDeleteGame)

	// Registrations
	mux.HandleFunc("GET /api/v1/registrations", registrations.HandleListRegistrations)
	mux.HandleFunc("POST /api/v1/registrations", registrations.HandleCreateRegistration)
	mux.HandleFunc("GET /api/v1/registrations/export", registrations.HandleExportRegistrations)
	mux.HandleFunc("GET /api/v1/registrations/{id}", registrations.HandleGetRegistration)
	mux.HandleFunc("PUT /api/v1/registrations/{id}", registrations.HandleUpdateRegistration)
	mux.HandleFunc("DELETE /api/v1/registrations/{id}", registrations.HandleDeleteRegistration)
	mux.HandleFunc("PUT /api/v1/registrations/{id}/payment", registrations.HandleUpdatePayment)
}
