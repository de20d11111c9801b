// internal/api/leagues/handlers.go
package leagues

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
	leagueQueryTimeout = 5 * time.Second
	leagueIDPathKey    = "id"
)

var (
	queries  *dbgen.Queries
	database *appdb.DB
)

func init() {
	apiutil.RegisterValidation("division", apiutil.OneOf(domain.Divisions...))
	apiutil.RegisterValidation("league_status", apiutil.OneOf(
		domain.LeagueStatusDraft,
		domain.LeagueStatusOpen,
		domain.LeagueStatusInProgress,
		domain.LeagueStatusCompleted,
	))
}

type leagueRequest struct {
	Name                 string  `json:"name" validate:"required,max=200"`
	Division             string  `json:"division" validate:"required,division"`
	Season               string  `json:"season" validate:"required,max=100"`
	StartDate            string  `json:"startDate" validate:"required"`
	EndDate              string  `json:"endDate" validate:"required"`
	RegistrationDeadline string  `json:"registrationDeadline" validate:"required"`
	MaxTeams             *int64  `json:"maxTeams" validate:"omitempty,gt=0"`
	RegistrationFeeCents *int64  `json:"registrationFeeCents" validate:"required,gte=0"`
	Rules                *string `json:"rules"`
	Status               *string `json:"status" validate:"omitempty,league_status"`
	IsActive             *bool   `json:"isActive"`
}

// leagueUpdate is the set of league fields an admin may change.
type leagueUpdate struct {
	Name                 *string `json:"name" validate:"omitempty,min=1,max=200"`
	Division             *string `json:"division" validate:"omitempty,division"`
	Season               *string `json:"season" validate:"omitempty,min=1,max=100"`
	StartDate            *string `json:"startDate"`
	EndDate              *string `json:"endDate"`
	RegistrationDeadline *string `json:"registrationDeadline"`
	MaxTeams             *int64  `json:"maxTeams" validate:"omitempty,gt=0"`
	RegistrationFeeCents *int64  `json:"registrationFeeCents" validate:"omitempty,gte=0"`
	Rules                *string `json:"rules"`
	Status               *string `json:"status" validate:"omitempty,league_status"`
	IsActive             *bool   `json:"isActive"`
}

type leagueResponse struct {
	ID                   int64         `json:"id"`
	Name                 string        `json:"name"`
	Division             string        `json:"division"`
	Season               string        `json:"season"`
	StartDate            time.Time     `json:"startDate"`
	EndDate              time.Time     `json:"endDate"`
	RegistrationDeadline time.Time     `json:"registrationDeadline"`
	MaxTeams             int64         `json:"maxTeams"`
	RegistrationFeeCents int64         `json:"registrationFeeCents"`
	RegistrationFee      string        `json:"registrationFee"`
	Rules                string        `json:"rules"`
	Status               string        `json:"status"`
	IsActive             bool          `json:"isActive"`
	CreatedAt            time.Time     `json:"createdAt"`
	UpdatedAt            time.Time     `json:"updatedAt"`
	Teams                []teamSummary `json:"teams,omitempty"`
}

type teamSummary struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	CoachID       int64   `json:"coachId"`
	Wins          int64   `json:"wins"`
	Losses        int64   `json:"losses"`
	WinPercentage float64 `json:"winPercentage"`
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

// GET /api/v1/leagues
func HandleListLeagues(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal Server Error", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	rows, err := q.ListLeagues(ctx, dbgen.ListLeaguesParams{
		Division: apiutil.OptionalQueryString(r, "division"),
		Season:   apiutil.OptionalQueryString(r, "season"),
		Status:   apiutil.OptionalQueryString(r, "status"),
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list leagues")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to list leagues", err)
		return
	}

	resp := make([]leagueResponse, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, newLeagueResponse(row))
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, resp); err != nil {
		logger.Error().Err(err).Msg("Failed to write leagues response")
	}
}

// GET /api/v1/leagues/{id}
func HandleGetLeague(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal Server Error", nil)
		return
	}

	leagueID, err := apiutil.PathID(r, leagueIDPathKey)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Invalid league ID", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	league, err := q.GetLeague(ctx, leagueID)
	if err != nil {
		writeLeagueLoadError(w, r, leagueID, err)
		return
	}

	teams, err := q.ListTeamsByLeague(ctx, leagueID)
	if err != nil {
		logger.Error().Err(err).Int64("league_id", leagueID).Msg("Failed to list league teams")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to load league", err)
		return
	}

	resp := newLeagueResponse(league)
	resp.Teams = make([]teamSummary, 0, len(teams))
	for _, team := range teams {
		resp.Teams = append(resp.Teams, teamSummary{
			ID:            team.ID,
			Name:          team.Name,
			CoachID:       team.CoachID,
			Wins:          team.Wins,
			Losses:        team.Losses,
			WinPercentage: domain.WinPercentage(team.Wins, team.Losses),
		})
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, resp); err != nil {
		logger.Error().Err(err).Msg("Failed to write league response")
	}
}

// POST /api/v1/leagues
func HandleCreateLeague(w http.ResponseWriter, r *http.Request) {
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

	var req leagueRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Invalid JSON", err)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Season = strings.TrimSpace(req.Season)
	if err := apiutil.ValidateStruct(req); err != nil {
		apiutil.WriteHandlerError(w, err)
		return
	}

	params, err := createLeagueParams(req)
	if err != nil {
		apiutil.WriteHandlerError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	league, err := q.CreateLeague(ctx, params)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create league")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to create league", err)
		return
	}

	logger.Info().Int64("league_id", league.ID).Str("division", league.Division).Msg("League created")
	if err := apiutil.WriteJSON(w, http.StatusCreated, newLeagueResponse(league)); err != nil {
		logger.Error().Err(err).Msg("Failed to write league response")
	}
}

// PUT /api/v1/leagues/{id}
func HandleUpdateLeague(w http.ResponseWriter, r *http.Request) {
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

	leagueID, err := apiutil.PathID(r, leagueIDPathKey)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Invalid league ID", err)
		return
	}

	var req leagueUpdate
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Invalid JSON", err)
		return
	}
	if err := apiutil.ValidateStruct(req); err != nil {
		apiutil.WriteHandlerError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	current, err := q.GetLeague(ctx, leagueID)
	if err != nil {
		writeLeagueLoadError(w, r, leagueID, err)
		return
	}

	params, err := applyLeagueUpdate(current, req)
	if err != nil {
		apiutil.WriteHandlerError(w, err)
		return
	}

	updated, err := q.UpdateLeague(ctx, params)
	if err != nil {
		logger.Error().Err(err).Int64("league_id", leagueID).Msg("Failed to update league")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to update league", err)
		return
	}

	logger.Info().Int64("league_id", leagueID).Msg("League updated")
	if err := apiutil.WriteJSON(w, http.StatusOK, newLeagueResponse(updated)); err != nil {
		logger.Error().Err(err).Msg("Failed to write league response")
	}
}

// DELETE /api/v1/leagues/{id}
func HandleDeleteLeague(w http.ResponseWriter, r *http.Request) {
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

	leagueID, err := apiutil.PathID(r, leagueIDPathKey)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Invalid league ID", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	deleted, err := q.DeleteLeague(ctx, leagueID)
	if err != nil {
		logger.Error().Err(err).Int64("league_id", leagueID).Msg("Failed to delete league")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to delete league", err)
		return
	}
	if deleted == 0 {
		apiutil.WriteError(w, http.StatusNotFound, "League not found", nil)
		return
	}

	logger.Info().Int64("league_id", leagueID).Msg("League deleted")
	if err := apiutil.WriteJSON(w, http.StatusOK, messageResponse{Message: "League removed"}); err != nil {
		logger.Error().Err(err).Msg("Failed to write delete response")
	}
}

// GET /api/v1/leagues/{id}/standings
func HandleLeagueStandings(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal Server Error", nil)
		return
	}

	leagueID, err := apiutil.PathID(r, leagueIDPathKey)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Invalid league ID", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	standings, err := LoadStandings(ctx, q, leagueID)
	if err != nil {
		writeLeagueLoadError(w, r, leagueID, err)
		return
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, standings); err != nil {
		logger.Error().Err(err).Msg("Failed to write standings response")
	}
}

// LoadStandings ranks the teams of a league. It returns sql.ErrNoRows when
// the league does not exist.
func LoadStandings(ctx context.Context, q *dbgen.Queries, leagueID int64) ([]domain.TeamStanding, error) {
	if _, err := q.GetLeague(ctx, leagueID); err != nil {
		return nil, err
	}
	teams, err := q.ListTeamsByLeague(ctx, leagueID)
	if err != nil {
		return nil, err
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
	return domain.CalculateStandings(inputs), nil
}

func createLeagueParams(req leagueRequest) (dbgen.CreateLeagueParams, error) {
	start, err := apiutil.ParseDate(req.StartDate, "startDate")
	if err != nil {
		return dbgen.CreateLeagueParams{}, fieldErrorFrom("startDate", err)
	}
	end, err := apiutil.ParseDate(req.EndDate, "endDate")
	if err != nil {
		return dbgen.CreateLeagueParams{}, fieldErrorFrom("endDate", err)
	}
	deadline, err := apiutil.ParseDate(req.RegistrationDeadline, "registrationDeadline")
	if err != nil {
		return dbgen.CreateLeagueParams{}, fieldErrorFrom("registrationDeadline", err)
	}
	if err := checkDates(start, end, deadline); err != nil {
		return dbgen.CreateLeagueParams{}, err
	}

	params := dbgen.CreateLeagueParams{
		Name:                 req.Name,
		Division:             req.Division,
		Season:               req.Season,
		StartDate:            start,
		EndDate:              end,
		RegistrationDeadline: deadline,
		MaxTeams:             domain.DefaultMaxTeams,
		RegistrationFeeCents: *req.RegistrationFeeCents,
		Status:               domain.LeagueStatusDraft,
		IsActive:             true,
	}
	if req.MaxTeams != nil {
		params.MaxTeams = *req.MaxTeams
	}
	if req.Rules != nil {
		params.Rules = strings.TrimSpace(*req.Rules)
	}
	if req.Status != nil {
		params.Status = *req.Status
	}
	if req.IsActive != nil {
		params.IsActive = *req.IsActive
	}
	return params, nil
}

func applyLeagueUpdate(current dbgen.League, req leagueUpdate) (dbgen.UpdateLeagueParams, error) {
	params := dbgen.UpdateLeagueParams{
		Name:                 current.Name,
		Division:             current.Division,
		Season:               current.Season,
		StartDate:            current.StartDate,
		EndDate:              current.EndDate,
		RegistrationDeadline: current.RegistrationDeadline,
		MaxTeams:             current.MaxTeams,
		RegistrationFeeCents: current.RegistrationFeeCents,
		Rules:                current.Rules,
		Status:               current.Status,
		IsActive:             current.IsActive,
		ID:                   current.ID,
	}

	if req.Name != nil {
		params.Name = strings.TrimSpace(*req.Name)
		if params.Name == "" {
			return params, apiutil.FieldError{Field: "name", Reason: "is required"}
		}
	}
	if req.Division != nil {
		params.Division = *req.Division
	}
	if req.Season != nil {
		params.Season = strings.TrimSpace(*req.Season)
		if params.Season == "" {
			return params, apiutil.FieldError{Field: "season", Reason: "is required"}
		}
	}
	if req.StartDate != nil {
		start, err := apiutil.ParseDate(*req.StartDate, "startDate")
		if err != nil {
			return params, fieldErrorFrom("startDate", err)
		}
		params.StartDate = start
	}
	if req.EndDate != nil {
		end, err := apiutil.ParseDate(*req.EndDate, "endDate")
		if err != nil {
			return params, fieldErrorFrom("endDate", err)
		}
		params.EndDate = end
	}
	if req.RegistrationDeadline != nil {
		deadline, err := apiutil.ParseDate(*req.RegistrationDeadline, "registrationDeadline")
		if err != nil {
			return params, fieldErrorFrom("registrationDeadline", err)
		}
		params.RegistrationDeadline = deadline
	}
	if err := checkDates(params.StartDate, params.EndDate, params.RegistrationDeadline); err != nil {
		return params, err
	}
	if req.MaxTeams != nil {
		params.MaxTeams = *req.MaxTeams
	}
	if req.RegistrationFeeCents != nil {
		params.RegistrationFeeCents = *req.RegistrationFeeCents
	}
	if req.Rules != nil {
		params.Rules = strings.TrimSpace(*req.Rules)
	}
	if req.Status != nil {
		params.Status = *req.Status
	}
	if req.IsActive != nil {
		params.IsActive = *req.IsActive
	}
	return params, nil
}

func checkDates(start, end, deadline time.Time) error {
	err := domain.CheckLeagueDates(start, end, deadline)
	switch {
	case errors.Is(err, domain.ErrEndBeforeStart):
		return apiutil.FieldError{Field: "endDate", Reason: "must be on or after startDate"}
	case errors.Is(err, domain.ErrDeadlineAfterEnd):
		return apiutil.FieldError{Field: "registrationDeadline", Reason: "must be on or before endDate"}
	}
	return err
}

func fieldErrorFrom(field string, err error) error {
	return apiutil.FieldError{Field: field, Reason: strings.TrimPrefix(err.Error(), field+" ")}
}

func newLeagueResponse(league dbgen.League) leagueResponse {
	return leagueResponse{
		ID:                   league.ID,
		Name:                 league.Name,
		Division:             league.Division,
		Season:               league.Season,
		StartDate:            league.StartDate,
		EndDate:              league.EndDate,
		RegistrationDeadline: league.RegistrationDeadline,
		MaxTeams:             league.MaxTeams,
		RegistrationFeeCents: league.RegistrationFeeCents,
		RegistrationFee:      apiutil.FormatPriceCents(league.RegistrationFeeCents),
		Rules:                league.Rules,
		Status:               league.Status,
		IsActive:             league.IsActive,
		CreatedAt:            league.CreatedAt,
		UpdatedAt:            league.UpdatedAt,
	}
}

func writeLeagueLoadError(w http.ResponseWriter, r *http.Request, leagueID int64, err error) {
	if errors.Is(err, sql.ErrNoRows) {
		apiutil.WriteError(w, http.StatusNotFound, "League not found", nil)
		return
	}
	log.Ctx(r.Context()).Error().Err(err).Int64("league_id", leagueID).Msg("Failed to load league")
	apiutil.WriteError(w, http.StatusInternalServerError, "Failed to load league", err)
}

func loadQueries() *dbgen.Queries {
	return queries
}
