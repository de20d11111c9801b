package games

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/codr1/CopticLeague/internal/api/apiutil"
	"github.com/codr1/CopticLeague/internal/api/authz"
	appdb "github.com/codr1/CopticLeague/internal/db"
	dbgen "github.com/codr1/CopticLeague/internal/db/generated"
	domain "github.com/codr1/CopticLeague/internal/leagues"
	"github.com/codr1/CopticLeague/internal/metrics"
)

// ErrGameVersionConflict is returned when the stored game changed between
// the read and the write of an update.
var ErrGameVersionConflict = errors.New("game version conflict")

// gameUpdate lists the game fields an admin may change. The league and the
// two teams are fixed once a game exists.
type gameUpdate struct {
	ScheduledDate *string            `json:"scheduledDate"`
	ScheduledTime *string            `json:"scheduledTime"`
	Venue         *string            `json:"venue" validate:"omitempty,min=1,max=200"`
	VenueAddress  *string            `json:"venueAddress" validate:"omitempty,max=300"`
	Status        *string            `json:"status" validate:"omitempty,game_status"`
	HomeScore     *int64             `json:"homeScore" validate:"omitempty,gte=0"`
	AwayScore     *int64             `json:"awayScore" validate:"omitempty,gte=0"`
	Quarter       *int64             `json:"quarter" validate:"omitempty,gte=1,max=10"`
	Notes         *string            `json:"notes"`
	Officials     *[]officialRequest `json:"officials" validate:"omitempty,max=6,dive"`
	Attendance    *int64             `json:"attendance" validate:"omitempty,gte=0"`

	// Version, when sent, must match the stored version.
	Version *int64 `json:"version" validate:"omitempty,gt=0"`
}

// updateResult carries what a committed update changed.
type updateResult struct {
	game           dbgen.Game
	home           dbgen.Team
	away           dbgen.Team
	officials      []dbgen.GameOfficial
	reconciliation domain.Reconciliation
}

// PUT /api/v1/games/{id}
func HandleUpdateGame(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if !apiutil.RequireRole(w, r, authz.RoleAdmin) {
		return
	}
	if loadQueries() == nil || database == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal Server Error", nil)
		return
	}

	gameID, err := apiutil.PathID(r, gameIDPathKey)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Invalid game ID", err)
		return
	}

	var req gameUpdate
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Invalid JSON", err)
		return
	}
	if err := apiutil.ValidateStruct(req); err != nil {
		apiutil.WriteHandlerError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), gameQueryTimeout)
	defer cancel()

	result, err := updateGame(ctx, database, gameID, req)
	if err != nil {
		if errors.Is(err, ErrGameVersionConflict) {
			metrics.ObserveVersionConflict()
			logger.Warn().Int64("game_id", gameID).Msg("Game update lost a version race")
		}
		writeGameError(w, r, "Failed to update game", err)
		return
	}

	rec := result.reconciliation
	logReconciliation(logger, result)
	if rec.ReversalRan || rec.ApplyRan {
		metrics.ObserveReconciliation(rec.Reversed.String(), rec.Applied.String())
	}
	if rec.RetainedResult {
		metrics.ObserveRetainedResult()
	}

	resp := newGameResponse(result.game, summarizeTeam(result.home), summarizeTeam(result.away), result.officials)
	resp.Reconciliation = &reconciliationResponse{
		Reversed:       rec.Reversed.String(),
		Applied:        rec.Applied.String(),
		RetainedResult: rec.RetainedResult,
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, resp); err != nil {
		logger.Error().Err(err).Msg("Failed to write game response")
	}
}

// updateGame applies req to the game and reconciles both teams' records in
// one transaction. The game row is written with a version check, so a
// concurrent update of the same game surfaces as ErrGameVersionConflict and
// nothing is committed.
func updateGame(ctx context.Context, db *appdb.DB, gameID int64, req gameUpdate) (updateResult, error) {
	var result updateResult
	err := db.RunInTx(ctx, func(tx *appdb.DB) error {
		q := tx.Queries

		current, err := q.GetGame(ctx, gameID)
		if err != nil {
			return err
		}
		if req.Version != nil && *req.Version != current.Version {
			return ErrGameVersionConflict
		}
		home, err := q.GetTeam(ctx, current.HomeTeamID)
		if err != nil {
			return err
		}
		away, err := q.GetTeam(ctx, current.AwayTeamID)
		if err != nil {
			return err
		}

		params, err := applyGameUpdate(current, req)
		if err != nil {
			return err
		}

		homeRecord := domain.NewTeamRecord(home.ID, home.Wins, home.Losses)
		awayRecord := domain.NewTeamRecord(away.ID, away.Wins, away.Losses)
		if err := domain.CheckRecords(current.HomeTeamID, current.AwayTeamID, homeRecord, awayRecord); err != nil {
			return err
		}
		result.reconciliation = domain.Reconcile(
			gameState(current.Status, current.HomeScore, current.AwayScore),
			gameState(params.Status, params.HomeScore, params.AwayScore),
			homeRecord,
			awayRecord,
		)

		result.game, err = q.UpdateGame(ctx, params)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrGameVersionConflict
		}
		if err != nil {
			return err
		}

		if result.reconciliation.Changed() {
			if err := saveRecord(ctx, q, homeRecord); err != nil {
				return err
			}
			if err := saveRecord(ctx, q, awayRecord); err != nil {
				return err
			}
		}
		home.Wins, home.Losses = homeRecord.Wins(), homeRecord.Losses()
		away.Wins, away.Losses = awayRecord.Wins(), awayRecord.Losses()
		result.home, result.away = home, away

		if req.Officials != nil {
			if err := replaceOfficials(ctx, q, gameID, *req.Officials); err != nil {
				return err
			}
		}
		result.officials, err = q.ListGameOfficials(ctx, gameID)
		return err
	})
	return result, err
}

func applyGameUpdate(current dbgen.Game, req gameUpdate) (dbgen.UpdateGameParams, error) {
	params := dbgen.UpdateGameParams{
		ScheduledDate: current.ScheduledDate,
		ScheduledTime: current.ScheduledTime,
		Venue:         current.Venue,
		VenueAddress:  current.VenueAddress,
		Status:        current.Status,
		HomeScore:     current.HomeScore,
		AwayScore:     current.AwayScore,
		Quarter:       current.Quarter,
		Notes:         current.Notes,
		Attendance:    current.Attendance,
		ID:            current.ID,
		Version:       current.Version,
	}

	if req.ScheduledDate != nil {
		date, err := apiutil.ParseDate(*req.ScheduledDate, "scheduledDate")
		if err != nil {
			return params, apiutil.FieldError{Field: "scheduledDate", Reason: "must be a valid date"}
		}
		params.ScheduledDate = date
	}
	if req.ScheduledTime != nil {
		normalized, err := domain.NormalizeTimeOfDay(*req.ScheduledTime)
		if err != nil {
			return params, apiutil.FieldError{Field: "scheduledTime", Reason: "must be HH:MM or H:MM AM/PM"}
		}
		params.ScheduledTime = normalized
	}
	if req.Venue != nil {
		params.Venue = strings.TrimSpace(*req.Venue)
		if params.Venue == "" {
			return params, apiutil.FieldError{Field: "venue", Reason: "is required"}
		}
	}
	if req.VenueAddress != nil {
		params.VenueAddress = apiutil.ToNullString(req.VenueAddress)
	}
	if req.Status != nil {
		params.Status = *req.Status
	}
	if req.HomeScore != nil {
		params.HomeScore = *req.HomeScore
	}
	if req.AwayScore != nil {
		params.AwayScore = *req.AwayScore
	}
	if req.Quarter != nil {
		params.Quarter = *req.Quarter
	}
	if req.Notes != nil {
		params.Notes = strings.TrimSpace(*req.Notes)
	}
	if req.Attendance != nil {
		params.Attendance = *req.Attendance
	}
	return params, nil
}

func gameState(status string, homeScore, awayScore int64) domain.GameState {
	return domain.GameState{Status: status, HomeScore: &homeScore, AwayScore: &awayScore}
}

func saveRecord(ctx context.Context, q *dbgen.Queries, record *domain.TeamRecord) error {
	updated, err := q.SaveTeamRecord(ctx, dbgen.SaveTeamRecordParams{
		Wins:   record.Wins(),
		Losses: record.Losses(),
		ID:     record.TeamID(),
	})
	if err != nil {
		return err
	}
	if updated == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func replaceOfficials(ctx context.Context, q *dbgen.Queries, gameID int64, officials []officialRequest) error {
	if err := q.DeleteGameOfficials(ctx, gameID); err != nil {
		return err
	}
	for idx, official := range officials {
		err := q.AddGameOfficial(ctx, dbgen.AddGameOfficialParams{
			GameID:    gameID,
			SortOrder: int64(idx),
			Name:      strings.TrimSpace(official.Name),
			Role:      official.Role,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func logReconciliation(logger *zerolog.Logger, result updateResult) {
	rec := result.reconciliation
	if rec.RetainedResult {
		// The earlier result stays on both records until the game is
		// completed again or the records are corrected by hand.
		logger.Warn().
			Int64("game_id", result.game.ID).
			Str("status", result.game.Status).
			Int64("home_team_id", result.home.ID).
			Int64("away_team_id", result.away.ID).
			Msg("Game left completed status; its result remains counted in team records")
	}
	if !rec.ReversalRan && !rec.ApplyRan {
		return
	}
	logger.Info().
		Int64("game_id", result.game.ID).
		Str("reversed", rec.Reversed.String()).
		Str("applied", rec.Applied.String()).
		Int64("home_team_id", result.home.ID).
		Int64("home_wins", result.home.Wins).
		Int64("home_losses", result.home.Losses).
		Int64("away_team_id", result.away.ID).
		Int64("away_wins", result.away.Wins).
		Int64("away_losses", result.away.Losses).
		Msg("Team records reconciled")
}
