package leagues

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/CopticLeague/internal/api/apiutil"
	"github.com/codr1/CopticLeague/internal/api/authz"
	dbgen "github.com/codr1/CopticLeague/internal/db/generated"
	domain "github.com/codr1/CopticLeague/internal/leagues"
)

type auditResponse struct {
	CheckedAt      time.Time            `json:"checkedAt"`
	TeamsChecked   int                  `json:"teamsChecked"`
	GamesCompleted int                  `json:"gamesCompleted"`
	Drift          []domain.RecordDrift `json:"drift"`
}

// RecordAudit is the outcome of comparing every team's stored record with
// its completed games.
type RecordAudit struct {
	Teams int
	Games int
	Drift []domain.RecordDrift
}

// LoadRecordAudit reads all teams and completed games and reports the teams
// whose stored wins/losses disagree with their games. It never writes.
func LoadRecordAudit(ctx context.Context, q *dbgen.Queries) (RecordAudit, error) {
	teams, err := q.ListAllTeams(ctx)
	if err != nil {
		return RecordAudit{}, err
	}
	games, err := q.ListCompletedGames(ctx)
	if err != nil {
		return RecordAudit{}, err
	}

	inputs := make([]domain.StandingsInput, 0, len(teams))
	for _, team := range teams {
		inputs = append(inputs, domain.StandingsInput{
			TeamID:   team.ID,
			TeamName: team.Name,
			Wins:     team.Wins,
			Losses:   team.Losses,
		})
	}
	completed := make([]domain.CompletedGame, 0, len(games))
	for _, game := range games {
		completed = append(completed, domain.CompletedGame{
			GameID:     game.ID,
			HomeTeamID: game.HomeTeamID,
			AwayTeamID: game.AwayTeamID,
			HomeScore:  game.HomeScore,
			AwayScore:  game.AwayScore,
		})
	}
	return RecordAudit{
		Teams: len(teams),
		Games: len(games),
		Drift: domain.AuditRecords(inputs, completed),
	}, nil
}

// GET /api/v1/admin/records/audit
func HandleRecordAudit(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if !apiutil.RequireRole(w, r, authz.RoleAdmin) {
		return
	}
	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal Server Error", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	audit, err := LoadRecordAudit(ctx, q)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to audit team records")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to audit team records", err)
		return
	}

	drift := audit.Drift
	if drift == nil {
		drift = []domain.RecordDrift{}
	}
	if len(drift) > 0 {
		logger.Warn().Int("teams_with_drift", len(drift)).Msg("Team record drift found")
	}
	resp := auditResponse{
		CheckedAt:      time.Now().UTC(),
		TeamsChecked:   audit.Teams,
		GamesCompleted: audit.Games,
		Drift:          drift,
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, resp); err != nil {
		logger.Error().Err(err).Msg("Failed to write audit response")
	}
}
