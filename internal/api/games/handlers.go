// internal/api/games/handlers.go
package games

import (
	"context"
	"database/sql"
	"errors"
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

const (
	gameQueryTimeout = 5 * time.Second
	gameIDPathKey    = "id"
)

var (
	queries  *dbgen.Queries
	database *appdb.DB
)

func init() {
	apiutil.RegisterValidation("game_status", apiutil.OneOf(
		domain.StatusScheduled,
		domain.StatusInProgress,
		domain.StatusCompleted,
		domain.StatusPostponed,
		domain.StatusCancelled,
	))
}

type officialRequest struct {
	Name string `json:"name" validate:"required,max=100"`
	Role string `json:"role" validate:"required,oneof=referee umpire scorekeeper timekeeper"`
}

type gameRequest struct {
	LeagueID      int64   `json:"leagueId" validate:"required,gt=0"`
	HomeTeamID    int64   `json:"homeTeamId" validate:"required,gt=0"`
	AwayTeamID    int64   `json:"awayTeamId" validate:"required,gt=0"`
	ScheduledDate string  `json:"scheduledDate" validate:"required"`
	ScheduledTime string  `json:"scheduledTime" validate:"required"`
	Venue         string  `json:"venue" validate:"required,max=200"`
	VenueAddress  *string `json:"venueAddress" validate:"omitempty,max=300"`
	Notes         *string `json:"notes"`
}

type teamSummary struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Logo   string `json:"logo,omitempty"`
	Wins   int64  `json:"wins"`
	Losses int64  `json:"losses"`
}

type officialResponse struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

type reconciliationResponse struct {
	Reversed       string `json:"reversed"`
	Applied        string `json:"applied"`
	RetainedResult bool   `json:"retainedResult"`
}

type gameResponse struct {
	ID             int64                   `json:"id"`
	LeagueID       int64                   `json:"leagueId"`
	HomeTeam       teamSummary             `json:"homeTeam"`
	AwayTeam       teamSummary             `json:"awayTeam"`
	ScheduledDate  time.Time               `json:"scheduledDate"`
	ScheduledTime  string                  `json:"scheduledTime"`
	Venue          string                  `json:"venue"`
	VenueAddress   *string                 `json:"venueAddress,omitempty"`
	Status         string                  `json:"status"`
	HomeScore      int64                   `json:"homeScore"`
	AwayScore      int64                   `json:"awayScore"`
	Quarter        int64                   `json:"quarter"`
	Officials      []officialResponse      `json:"officials,omitempty"`
	Attendance     int64                   `json:"attendance"`
	Notes          string                  `json:"notes,omitempty"`
	Version        int64                   `json:"version"`
	CreatedAt      time.Time               `json:"createdAt"`
	UpdatedAt      time.Time               `json:"updatedAt"`
	Reconciliation *reconciliationResponse `json:"reconciliation,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(db *appdb.DB) {
	database = db
	if db != nil {
		queries = db.Queries
	}
}

// GET /api/v1/games
func HandleListGames(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal Server Error", nil)
		return
	}

	params, err := listGamesParams(r)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), gameQueryTimeout)
	defer cancel()

	rows, err := q.ListGames(ctx, params)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list games")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to list games", err)
		return
	}

	resp := make([]gameResponse, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, newGameResponse(row.Game,
			teamSummary{ID: row.HomeTeamID, Name: row.HomeTeamName, Logo: row.HomeTeamLogo, Wins: row.HomeTeamWins, Losses: row.HomeTeamLosses},
			teamSummary{ID: row.AwayTeamID, Name: row.AwayTeamName, Logo: row.AwayTeamLogo, Wins: row.AwayTeamWins, Losses: row.AwayTeamLosses},
			nil,
		))
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, resp); err != nil {
		logger.Error().Err(err).Msg("Failed to write games response")
	}
}

// listGamesParams reads the league, team, status and date range filters.
func listGamesParams(r *http.Request) (dbgen.ListGamesParams, error) {
	leagueID, err := apiutil.OptionalQueryInt64(r, "league")
	if err != nil {
		return dbgen.ListGamesParams{}, err
	}
	teamID, err := apiutil.OptionalQueryInt64(r, "team")
	if err != nil {
		return dbgen.ListGamesParams{}, err
	}
	startDate, err := apiutil.OptionalQueryDate(r, "start_date", false)
	if err != nil {
		return dbgen.ListGamesParams{}, err
	}
	endDate, err := apiutil.OptionalQueryDate(r, "end_date", true)
	if err != nil {
		return dbgen.ListGamesParams{}, err
	}
	status := apiutil.OptionalQueryString(r, "status")
	if status.Valid && !domain.GameStatusAllowed(status.String) {
		return dbgen.ListGamesParams{}, errors.New("status must be one of scheduled, in-progress, completed, postponed, cancelled")
	}
	return dbgen.ListGamesParams{
		LeagueID:  leagueID,
		TeamID:    teamID,
		Status:    status,
		StartDate: startDate,
		EndDate:   endDate,
	}, nil
}

// GET /api/v1/games/{id}
func HandleGetGame(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal Server Error", nil)
		return
	}

	gameID, err := apiutil.PathID(r, gameIDPathKey)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Invalid game ID", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), gameQueryTimeout)
	defer cancel()

	game, err := q.GetGame(ctx, gameID)
	if err != nil {
		writeGameError(w, r, "Failed to load game", err)
		return
	}
	resp, err := loadGameResponse(ctx, q, game)
	if err != nil {
		writeGameError(w, r, "Failed to load game", err)
		return
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, resp); err != nil {
		logger.Error().Err(err).Msg("Failed to write game response")
	}
}

// POST /api/v1/games
func HandleCreateGame(w http.ResponseWriter, r *http.Request) {
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

	var req gameRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Invalid JSON", err)
		return
	}
	req.Venue = strings.TrimSpace(req.Venue)
	if err := apiutil.ValidateStruct(req); err != nil {
		apiutil.WriteHandlerError(w, err)
		return
	}
	if req.HomeTeamID == req.AwayTeamID {
		apiutil.WriteHandlerError(w, apiutil.FieldError{Field: "awayTeamId", Reason: "must differ from homeTeamId"})
		return
	}
	scheduledDate, err := apiutil.ParseDate(req.ScheduledDate, "scheduledDate")
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	scheduledTime, err := domain.NormalizeTimeOfDay(req.ScheduledTime)
	if err != nil {
		apiutil.WriteHandlerError(w, apiutil.FieldError{Field: "scheduledTime", Reason: "must be HH:MM or H:MM AM/PM"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), gameQueryTimeout)
	defer cancel()

	if _, err := q.GetLeague(ctx, req.LeagueID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteError(w, http.StatusNotFound, "League not found", nil)
			return
		}
		writeGameError(w, r, "Failed to create game", err)
		return
	}
	home, err := loadTeamInLeague(ctx, q, req.HomeTeamID, req.LeagueID, "homeTeamId")
	if err != nil {
		writeGameError(w, r, "Failed to create game", err)
		return
	}
	away, err := loadTeamInLeague(ctx, q, req.AwayTeamID, req.LeagueID, "awayTeamId")
	if err != nil {
		writeGameError(w, r, "Failed to create game", err)
		return
	}

	params := dbgen.CreateGameParams{
		LeagueID:      req.LeagueID,
		HomeTeamID:    home.ID,
		AwayTeamID:    away.ID,
		ScheduledDate: scheduledDate,
		ScheduledTime: scheduledTime,
		Venue:         req.Venue,
		VenueAddress:  apiutil.ToNullString(req.VenueAddress),
	}
	if req.Notes != nil {
		params.Notes = strings.TrimSpace(*req.Notes)
	}
	game, err := q.CreateGame(ctx, params)
	if err != nil {
		writeGameError(w, r, "Failed to create game", err)
		return
	}

	logger.Info().
		Int64("game_id", game.ID).
		Int64("league_id", game.LeagueID).
		Int64("home_team_id", game.HomeTeamID).
		Int64("away_team_id", game.AwayTeamID).
		Msg("Game created")
	resp := newGameResponse(game, summarizeTeam(home), summarizeTeam(away), nil)
	if err := apiutil.WriteJSON(w, http.StatusCreated, resp); err != nil {
		logger.Error().Err(err).Msg("Failed to write game response")
	}
}

// DELETE /api/v1/games/{id}
//
// Removing a game leaves both teams' records as they are.
func HandleDeleteGame(w http.ResponseWriter, r *http.Request) {
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

	gameID, err := apiutil.PathID(r, gameIDPathKey)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Invalid game ID", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), gameQueryTimeout)
	defer cancel()

	deleted, err := q.DeleteGame(ctx, gameID)
	if err != nil {
		writeGameError(w, r, "Failed to delete game", err)
		return
	}
	if deleted == 0 {
		apiutil.WriteError(w, http.StatusNotFound, "Game not found", nil)
		return
	}

	logger.Info().Int64("game_id", gameID).Msg("Game deleted")
	if err := apiutil.WriteJSON(w, http.StatusOK, messageResponse{Message: "Game removed"}); err != nil {
		logger.Error().Err(err).Msg("Failed to write delete response")
	}
}

func loadTeamInLeague(ctx context.Context, q *dbgen.Queries, teamID, leagueID int64, field string) (dbgen.Team, error) {
	team, err := q.GetTeam(ctx, teamID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return team, apiutil.HandlerError{Status: http.StatusNotFound, Message: "Team not found", Err: err}
		}
		return team, err
	}
	if team.LeagueID != leagueID {
		return team, apiutil.FieldError{Field: field, Reason: "must belong to the game's league"}
	}
	return team, nil
}

func loadGameResponse(ctx context.Context, q *dbgen.Queries, game dbgen.Game) (gameResponse, error) {
	home, err := q.GetTeam(ctx, game.HomeTeamID)
	if err != nil {
		return gameResponse{}, err
	}
	away, err := q.GetTeam(ctx, game.AwayTeamID)
	if err != nil {
		return gameResponse{}, err
	}
	officials, err := q.ListGameOfficials(ctx, game.ID)
	if err != nil {
		return gameResponse{}, err
	}
	return newGameResponse(game, summarizeTeam(home), summarizeTeam(away), officials), nil
}

func summarizeTeam(team dbgen.Team) teamSummary {
	return teamSummary{
		ID:     team.ID,
		Name:   team.Name,
		Logo:   team.Logo,
		Wins:   team.Wins,
		Losses: team.Losses,
	}
}

func newGameResponse(game dbgen.Game, home, away teamSummary, officials []dbgen.GameOfficial) gameResponse {
	resp := gameResponse{
		ID:            game.ID,
		LeagueID:      game.LeagueID,
		HomeTeam:      home,
		AwayTeam:      away,
		ScheduledDate: game.ScheduledDate,
		ScheduledTime: game.ScheduledTime,
		Venue:         game.Venue,
		VenueAddress:  apiutil.NullStringPtr(game.VenueAddress),
		Status:        game.Status,
		HomeScore:     game.HomeScore,
		AwayScore:     game.AwayScore,
		Quarter:       game.Quarter,
		Attendance:    game.Attendance,
		Notes:         game.Notes,
		Version:       game.Version,
		CreatedAt:     game.CreatedAt,
		UpdatedAt:     game.UpdatedAt,
	}
	for _, official := range officials {
		resp.Officials = append(resp.Officials, officialResponse{Name: official.Name, Role: official.Role})
	}
	return resp
}

func writeGameError(w http.ResponseWriter, r *http.Request, message string, err error) {
	var handlerErr apiutil.HandlerError
	var fieldErr apiutil.FieldError
	switch {
	case errors.As(err, &handlerErr), errors.As(err, &fieldErr):
		apiutil.WriteHandlerError(w, err)
	case errors.Is(err, ErrGameVersionConflict):
		apiutil.WriteError(w, http.StatusConflict, "Game was updated by another request; reload and retry", err)
	case errors.Is(err, sql.ErrNoRows):
		apiutil.WriteError(w, http.StatusNotFound, "Game not found", nil)
	default:
		log.Ctx(r.Context()).Error().Err(err).Msg(message)
		apiutil.WriteError(w, http.StatusInternalServerError, message, err)
	}
}

func loadQueries() *dbgen.Queries {
	return queries
}
