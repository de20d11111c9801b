package leagues

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/CopticLeague/internal/api/apiutil"
	"github.com/codr1/CopticLeague/internal/api/authz"
	appdb "github.com/codr1/CopticLeague/internal/db"
	dbgen "github.com/codr1/CopticLeague/internal/db/generated"
	domain "github.com/codr1/CopticLeague/internal/leagues"
)

const scheduleWriteTimeout = 15 * time.Second

type scheduleRequest struct {
	Venue             string  `json:"venue" validate:"required,max=200"`
	VenueAddress      *string `json:"venueAddress"`
	FirstGameTime     string  `json:"firstGameTime" validate:"required"`
	SlotMinutes       int     `json:"slotMinutes" validate:"omitempty,gte=15,max=480"`
	RoundIntervalDays int     `json:"roundIntervalDays" validate:"omitempty,gt=0,max=60"`
}

type scheduledGameResponse struct {
	ID            int64     `json:"id"`
	Round         int       `json:"round"`
	HomeTeamID    int64     `json:"homeTeamId"`
	AwayTeamID    int64     `json:"awayTeamId"`
	ScheduledDate time.Time `json:"scheduledDate"`
	ScheduledTime string    `json:"scheduledTime"`
	Venue         string    `json:"venue"`
}

// POST /api/v1/leagues/{id}/schedule/generate
func HandleGenerateSchedule(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if !apiutil.RequireRole(w, r, authz.RoleAdmin) {
		return
	}
	q := loadQueries()
	if q == nil || database == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal Server Error", nil)
		return
	}

	leagueID, err := apiutil.PathID(r, leagueIDPathKey)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Invalid league ID", err)
		return
	}

	var req scheduleRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Invalid JSON", err)
		return
	}
	req.Venue = strings.TrimSpace(req.Venue)
	if err := apiutil.ValidateStruct(req); err != nil {
		apiutil.WriteHandlerError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), scheduleWriteTimeout)
	defer cancel()

	league, err := q.GetLeague(ctx, leagueID)
	if err != nil {
		writeLeagueLoadError(w, r, leagueID, err)
		return
	}

	existing, err := q.ListGames(ctx, dbgen.ListGamesParams{
		LeagueID: apiutil.ToNullInt64(&leagueID),
	})
	if err != nil {
		logger.Error().Err(err).Int64("league_id", leagueID).Msg("Failed to list league games")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to generate schedule", err)
		return
	}
	if len(existing) > 0 {
		apiutil.WriteError(w, http.StatusConflict, "League already has games scheduled", nil)
		return
	}

	teams, err := q.ListTeamsByLeague(ctx, leagueID)
	if err != nil {
		logger.Error().Err(err).Int64("league_id", leagueID).Msg("Failed to list league teams")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to generate schedule", err)
		return
	}
	teamIDs := make([]int64, 0, len(teams))
	for _, team := range teams {
		if team.IsActive {
			teamIDs = append(teamIDs, team.ID)
		}
	}

	plan, err := domain.GenerateRoundRobinSchedule(leagueID, teamIDs, domain.ScheduleOptions{
		StartDate:         league.StartDate,
		EndDate:           league.EndDate,
		FirstGameTime:     req.FirstGameTime,
		SlotDuration:      time.Duration(req.SlotMinutes) * time.Minute,
		RoundIntervalDays: req.RoundIntervalDays,
		Venue:             req.Venue,
	})
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	resp := make([]scheduledGameResponse, 0, len(plan))
	err = database.RunInTx(ctx, func(tx *appdb.DB) error {
		for _, planned := range plan {
			game, err := tx.Queries.CreateGame(ctx, dbgen.CreateGameParams{
				LeagueID:      planned.LeagueID,
				HomeTeamID:    planned.HomeTeamID,
				AwayTeamID:    planned.AwayTeamID,
				ScheduledDate: planned.ScheduledDate,
				ScheduledTime: planned.ScheduledTime,
				Venue:         planned.Venue,
				VenueAddress:  apiutil.ToNullString(req.VenueAddress),
			})
			if err != nil {
				return err
			}
			resp = append(resp, scheduledGameResponse{
				ID:            game.ID,
				Round:         planned.Round,
				HomeTeamID:    game.HomeTeamID,
				AwayTeamID:    game.AwayTeamID,
				ScheduledDate: game.ScheduledDate,
				ScheduledTime: game.ScheduledTime,
				Venue:         game.Venue,
			})
		}
		return nil
	})
	if err != nil {
		logger.Error().Err(err).Int64("league_id", leagueID).Msg("Failed to store generated schedule")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to generate schedule", err)
		return
	}

	logger.Info().
		Int64("league_id", leagueID).
		Int("team_count", len(teamIDs)).
		Int("game_count", len(resp)).
		Msg("League schedule generated")
	if err := apiutil.WriteJSON(w, http.StatusCreated, resp); err != nil {
		logger.Error().Err(err).Msg("Failed to write schedule response")
	}
}
