// internal/api/pages/handlers.go
package pages

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/codr1/CopticLeague/internal/api/apiutil"
	"github.com/codr1/CopticLeague/internal/api/htmx"
	leagueapi "github.com/codr1/CopticLeague/internal/api/leagues"
	dbgen "github.com/codr1/CopticLeague/internal/db/generated"
	domain "github.com/codr1/CopticLeague/internal/leagues"
	"github.com/codr1/CopticLeague/internal/templates/components/pages"
	"github.com/codr1/CopticLeague/internal/templates/layouts"
)

const (
	pageQueryTimeout = 5 * time.Second
	leagueIDPathKey  = "id"
)

var (
	queries *dbgen.Queries
	clock   clockwork.Clock = clockwork.NewRealClock()
)

func InitHandlers(q *dbgen.Queries, clk clockwork.Clock) {
	queries = q
	if clk != nil {
		clock = clk
	}
}

// GET /
func HandleHome(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	if queries == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), pageQueryTimeout)
	defer cancel()

	rows, err := queries.ListLeagues(ctx, dbgen.ListLeaguesParams{})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list leagues for home page")
		http.Error(w, "Failed to load leagues", http.StatusInternalServerError)
		return
	}

	now := clock.Now()
	cards := make([]pages.LeagueCard, 0, len(rows))
	for _, league := range rows {
		if !league.IsActive || league.Status == domain.LeagueStatusDraft {
			continue
		}
		cards = append(cards, pages.LeagueCard{
			ID:                   league.ID,
			Name:                 league.Name,
			Division:             league.Division,
			Season:               league.Season,
			Status:               league.Status,
			StartDate:            league.StartDate,
			EndDate:              league.EndDate,
			RegistrationDeadline: league.RegistrationDeadline,
			RegistrationFee:      apiutil.FormatPriceCents(league.RegistrationFeeCents),
			RegistrationOpen:     league.Status == domain.LeagueStatusOpen && domain.RegistrationOpen(league.RegistrationDeadline, now),
		})
	}

	render(ctx, w, r, "Coptic League", pages.Home(cards), nil)
}

// GET /leagues/{id}/standings
func HandleStandingsPage(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	if queries == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	leagueID, err := apiutil.PathID(r, leagueIDPathKey)
	if err != nil {
		http.Error(w, "Invalid league ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), pageQueryTimeout)
	defer cancel()

	league, ok := loadLeague(ctx, w, r, leagueID)
	if !ok {
		return
	}
	standings, err := leagueapi.LoadStandings(ctx, queries, leagueID)
	if err != nil {
		logger.Error().Err(err).Int64("league_id", leagueID).Msg("Failed to load standings page")
		http.Error(w, "Failed to load standings", http.StatusInternalServerError)
		return
	}

	render(ctx, w, r, league.Name+" Standings", pages.StandingsPage(header(league), standings), pages.StandingsTable(standings))
}

// GET /leagues/{id}/schedule
func HandleSchedulePage(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	if queries == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	leagueID, err := apiutil.PathID(r, leagueIDPathKey)
	if err != nil {
		http.Error(w, "Invalid league ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), pageQueryTimeout)
	defer cancel()

	league, ok := loadLeague(ctx, w, r, leagueID)
	if !ok {
		return
	}
	rows, err := queries.ListGames(ctx, dbgen.ListGamesParams{
		LeagueID: sql.NullInt64{Int64: leagueID, Valid: true},
	})
	if err != nil {
		logger.Error().Err(err).Int64("league_id", leagueID).Msg("Failed to load schedule page")
		http.Error(w, "Failed to load schedule", http.StatusInternalServerError)
		return
	}

	games := make([]pages.GameRow, 0, len(rows))
	for _, row := range rows {
		games = append(games, pages.GameRow{
			ID:        row.ID,
			Date:      row.ScheduledDate,
			Time:      row.ScheduledTime,
			Venue:     row.Venue,
			Status:    row.Status,
			HomeTeam:  row.HomeTeamName,
			AwayTeam:  row.AwayTeamName,
			HomeScore: row.HomeScore,
			AwayScore: row.AwayScore,
		})
	}

	render(ctx, w, r, league.Name+" Schedule", pages.SchedulePage(header(league), games), pages.ScheduleList(games))
}

func loadLeague(ctx context.Context, w http.ResponseWriter, r *http.Request, leagueID int64) (dbgen.League, bool) {
	league, err := queries.GetLeague(ctx, leagueID)
	if errors.Is(err, sql.ErrNoRows) {
		http.Error(w, "League not found", http.StatusNotFound)
		return league, false
	}
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Int64("league_id", leagueID).Msg("Failed to load league for page")
		http.Error(w, "Failed to load league", http.StatusInternalServerError)
		return league, false
	}
	return league, true
}

func header(league dbgen.League) pages.LeagueHeader {
	return pages.LeagueHeader{
		ID:       league.ID,
		Name:     league.Name,
		Division: league.Division,
		Season:   league.Season,
	}
}

// render answers a partial htmx swap with fragment, or with page when
// fragment is nil or the swap targets the main content area. Everything
// else gets page inside the base layout.
func render(ctx context.Context, w http.ResponseWriter, r *http.Request, title string, page, fragment templ.Component) {
	var component templ.Component
	switch {
	case !htmx.WantsFragment(r):
		component = layouts.Base(title, layouts.DefaultPalette, page)
	case fragment == nil || htmx.Target(r) == layouts.MainContentID:
		component = page
	default:
		component = fragment
	}
	w.Header().Add("Vary", htmx.HeaderRequest)
	apiutil.RenderHTMLComponent(ctx, w, component, nil, "Failed to render page", "Failed to render page")
}
