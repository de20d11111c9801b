// internal/api/teams/handlers.go
package teams

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
	teamQueryTimeout = 5 * time.Second
	teamIDPathKey    = "id"
	playerIDPathKey  = "player_id"
)

var (
	queries  *dbgen.Queries
	database *appdb.DB
)

type teamRequest struct {
	Name             string  `json:"name" validate:"required,max=100"`
	LeagueID         int64   `json:"leagueId" validate:"required,gt=0"`
	CoachID          *int64  `json:"coachId" validate:"omitempty,gt=0"`
	Logo             *string `json:"logo" validate:"omitempty,max=500"`
	PrimaryColor     *string `json:"primaryColor" validate:"omitempty,hexcolor"`
	SecondaryColor   *string `json:"secondaryColor" validate:"omitempty,hexcolor"`
	HomeVenue        *string `json:"homeVenue" validate:"omitempty,max=200"`
	MaxPlayers       *int64  `json:"maxPlayers" validate:"omitempty,gt=0,max=50"`
	AssistantCoaches []int64 `json:"assistantCoaches" validate:"max=5,dive,gt=0"`
}

// teamUpdate is the set of team fields a coach or admin may change. Wins and
// losses only move through game results.
type teamUpdate struct {
	Name             *string  `json:"name" validate:"omitempty,min=1,max=100"`
	Logo             *string  `json:"logo" validate:"omitempty,max=500"`
	PrimaryColor     *string  `json:"primaryColor" validate:"omitempty,hexcolor"`
	SecondaryColor   *string  `json:"secondaryColor" validate:"omitempty,hexcolor"`
	HomeVenue        *string  `json:"homeVenue" validate:"omitempty,max=200"`
	MaxPlayers       *int64   `json:"maxPlayers" validate:"omitempty,gt=0,max=50"`
	AssistantCoaches *[]int64 `json:"assistantCoaches" validate:"omitempty,max=5,dive,gt=0"`
	IsActive         *bool    `json:"isActive"`
}

type addPlayerRequest struct {
	PlayerID     int64  `json:"playerId" validate:"required,gt=0"`
	JerseyNumber *int64 `json:"jerseyNumber" validate:"omitempty,gte=0,max=99"`
	Position     string `json:"position" validate:"max=50"`
}

type personResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type rosterEntryResponse struct {
	Player       personResponse `json:"player"`
	JerseyNumber *int64         `json:"jerseyNumber,omitempty"`
	Position     string         `json:"position,omitempty"`
	Status       string         `json:"status"`
	JoinedAt     time.Time      `json:"joinedAt"`
}

type teamResponse struct {
	ID               int64                 `json:"id"`
	Name             string                `json:"name"`
	LeagueID         int64                 `json:"leagueId"`
	CoachID          int64                 `json:"coachId"`
	Wins             int64                 `json:"wins"`
	Losses           int64                 `json:"losses"`
	WinPercentage    float64               `json:"winPercentage"`
	GamesPlayed      int64                 `json:"gamesPlayed"`
	Logo             string                `json:"logo,omitempty"`
	PrimaryColor     *string               `json:"primaryColor,omitempty"`
	SecondaryColor   *string               `json:"secondaryColor,omitempty"`
	HomeVenue        *string               `json:"homeVenue,omitempty"`
	MaxPlayers       int64                 `json:"maxPlayers"`
	IsActive         bool                  `json:"isActive"`
	Players          []rosterEntryResponse `json:"players"`
	AssistantCoaches []personResponse      `json:"assistantCoaches"`
	CreatedAt        time.Time             `json:"createdAt"`
	UpdatedAt        time.Time             `json:"updatedAt"`
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

// GET /api/v1/teams
func HandleListTeams(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal Server Error", nil)
		return
	}

	leagueID, err := apiutil.OptionalQueryInt64(r, "league")
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Invalid league filter", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), teamQueryTimeout)
	defer cancel()

	rows, err := q.ListTeams(ctx, leagueID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list teams")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to list teams", err)
		return
	}

	resp := make([]teamResponse, 0, len(rows))
	for _, team := range rows {
		detail, err := loadTeamResponse(ctx, q, team)
		if err != nil {
			logger.Error().Err(err).Int64("team_id", team.ID).Msg("Failed to load team roster")
			apiutil.WriteError(w, http.StatusInternalServerError, "Failed to list teams", err)
			return
		}
		resp = append(resp, detail)
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, resp); err != nil {
		logger.Error().Err(err).Msg("Failed to write teams response")
	}
}

// GET /api/v1/teams/{id}
func HandleGetTeam(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal Server Error", nil)
		return
	}

	teamID, err := apiutil.PathID(r, teamIDPathKey)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Invalid team ID", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), teamQueryTimeout)
	defer cancel()

	team, err := q.GetTeam(ctx, teamID)
	if err != nil {
		writeTeamLoadError(w, r, teamID, err)
		return
	}
	writeTeam(ctx, w, r, q, http.StatusOK, team)
}

// POST /api/v1/teams
func HandleCreateTeam(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if !apiutil.RequireRole(w, r, authz.RoleCoach, authz.RoleAdmin) {
		return
	}
	if loadQueries() == nil || database == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal Server Error", nil)
		return
	}

	var req teamRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Invalid JSON", err)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := apiutil.ValidateStruct(req); err != nil {
		apiutil.WriteHandlerError(w, err)
		return
	}

	user := authz.UserFromContext(r.Context())
	coachID := user.ID
	if req.CoachID != nil {
		coachID = *req.CoachID
	}
	// Coaches may only create teams they coach.
	if !apiutil.RequireOwnerOrAdmin(w, r, coachID) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), teamQueryTimeout)
	defer cancel()

	var team dbgen.Team
	err := database.RunInTx(ctx, func(tx *appdb.DB) error {
		league, err := tx.Queries.GetLeague(ctx, req.LeagueID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apiutil.HandlerError{Status: http.StatusNotFound, Message: "League not found"}
			}
			return err
		}
		if _, err := tx.Queries.GetUserByID(ctx, coachID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apiutil.HandlerError{Status: http.StatusNotFound, Message: "Coach not found"}
			}
			return err
		}
		existing, err := tx.Queries.ListTeamsByLeague(ctx, league.ID)
		if err != nil {
			return err
		}
		if int64(len(existing)) >= league.MaxTeams {
			return apiutil.HandlerError{Status: http.StatusBadRequest, Message: "League is full"}
		}

		params := dbgen.CreateTeamParams{
			Name:           req.Name,
			LeagueID:       league.ID,
			CoachID:        coachID,
			PrimaryColor:   apiutil.ToNullString(req.PrimaryColor),
			SecondaryColor: apiutil.ToNullString(req.SecondaryColor),
			HomeVenue:      apiutil.ToNullString(req.HomeVenue),
			MaxPlayers:     domain.DefaultMaxPlayers,
			IsActive:       true,
		}
		if req.Logo != nil {
			params.Logo = strings.TrimSpace(*req.Logo)
		}
		if req.MaxPlayers != nil {
			params.MaxPlayers = *req.MaxPlayers
		}
		team, err = tx.Queries.CreateTeam(ctx, params)
		if err != nil {
			return err
		}
		return replaceAssistantCoaches(ctx, tx.Queries, team.ID, req.AssistantCoaches)
	})
	if err != nil {
		writeTeamWriteError(w, r, "Failed to create team", err)
		return
	}

	logger.Info().Int64("team_id", team.ID).Int64("league_id", team.LeagueID).Msg("Team created")
	writeTeam(ctx, w, r, loadQueries(), http.StatusCreated, team)
}

// PUT /api/v1/teams/{id}
func HandleUpdateTeam(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if !apiutil.RequireRole(w, r, authz.RoleCoach, authz.RoleAdmin) {
		return
	}
	q := loadQueries()
	if q == nil || database == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal Server Error", nil)
		return
	}

	teamID, err := apiutil.PathID(r, teamIDPathKey)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Invalid team ID", err)
		return
	}

	var req teamUpdate
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Invalid JSON", err)
		return
	}
	if err := apiutil.ValidateStruct(req); err != nil {
		apiutil.WriteHandlerError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), teamQueryTimeout)
	defer cancel()

	current, err := q.GetTeam(ctx, teamID)
	if err != nil {
		writeTeamLoadError(w, r, teamID, err)
		return
	}
	if !apiutil.RequireOwnerOrAdmin(w, r, current.CoachID) {
		return
	}

	var updated dbgen.Team
	err = database.RunInTx(ctx, func(tx *appdb.DB) error {
		current, err := tx.Queries.GetTeam(ctx, teamID)
		if err != nil {
			return err
		}
		rosterSize, err := tx.Queries.CountTeamPlayers(ctx, teamID)
		if err != nil {
			return err
		}
		params, err := applyTeamUpdate(current, req, rosterSize)
		if err != nil {
			return err
		}
		updated, err = tx.Queries.UpdateTeam(ctx, params)
		if err != nil {
			return err
		}
		if req.AssistantCoaches != nil {
			return replaceAssistantCoaches(ctx, tx.Queries, teamID, *req.AssistantCoaches)
		}
		return nil
	})
	if err != nil {
		writeTeamWriteError(w, r, "Failed to update team", err)
		return
	}

	logger.Info().Int64("team_id", teamID).Msg("Team updated")
	writeTeam(ctx, w, r, q, http.StatusOK, updated)
}

// DELETE /api/v1/teams/{id}
func HandleDeleteTeam(w http.ResponseWriter, r *http.Request) {
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

	teamID, err := apiutil.PathID(r, teamIDPathKey)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Invalid team ID", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), teamQueryTimeout)
	defer cancel()

	deleted, err := q.DeleteTeam(ctx, teamID)
	if err != nil {
		if apiutil.IsSQLiteForeignKeyViolation(err) {
			apiutil.WriteError(w, http.StatusConflict, "Team has scheduled games; delete them first", nil)
			return
		}
		logger.Error().Err(err).Int64("team_id", teamID).Msg("Failed to delete team")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to delete team", err)
		return
	}
	if deleted == 0 {
		apiutil.WriteError(w, http.StatusNotFound, "Team not found", nil)
		return
	}

	logger.Info().Int64("team_id", teamID).Msg("Team deleted")
	if err := apiutil.WriteJSON(w, http.StatusOK, messageResponse{Message: "Team removed"}); err != nil {
		logger.Error().Err(err).Msg("Failed to write delete response")
	}
}

func applyTeamUpdate(current dbgen.Team, req teamUpdate, rosterSize int64) (dbgen.UpdateTeamParams, error) {
	params := dbgen.UpdateTeamParams{
		Name:           current.Name,
		Logo:           current.Logo,
		PrimaryColor:   current.PrimaryColor,
		SecondaryColor: current.SecondaryColor,
		HomeVenue:      current.HomeVenue,
		MaxPlayers:     current.MaxPlayers,
		IsActive:       current.IsActive,
		ID:             current.ID,
	}

	if req.Name != nil {
		params.Name = strings.TrimSpace(*req.Name)
		if params.Name == "" {
			return params, apiutil.FieldError{Field: "name", Reason: "is required"}
		}
	}
	if req.Logo != nil {
		params.Logo = strings.TrimSpace(*req.Logo)
	}
	if req.PrimaryColor != nil {
		params.PrimaryColor = apiutil.ToNullString(req.PrimaryColor)
	}
	if req.SecondaryColor != nil {
		params.SecondaryColor = apiutil.ToNullString(req.SecondaryColor)
	}
	if req.HomeVenue != nil {
		params.HomeVenue = apiutil.ToNullString(req.HomeVenue)
	}
	if req.MaxPlayers != nil {
		if *req.MaxPlayers < rosterSize {
			return params, apiutil.FieldError{Field: "maxPlayers", Reason: "must be at least the current roster size"}
		}
		params.MaxPlayers = *req.MaxPlayers
	}
	if req.IsActive != nil {
		params.IsActive = *req.IsActive
	}
	return params, nil
}

func replaceAssistantCoaches(ctx context.Context, q *dbgen.Queries, teamID int64, userIDs []int64) error {
	if err := q.DeleteAssistantCoaches(ctx, teamID); err != nil {
		return err
	}
	for idx, userID := range userIDs {
		err := q.AddAssistantCoach(ctx, dbgen.AddAssistantCoachParams{
			TeamID:    teamID,
			UserID:    userID,
			SortOrder: int64(idx),
		})
		if err != nil {
			if apiutil.IsSQLiteForeignKeyViolation(err) {
				return apiutil.FieldError{Field: "assistantCoaches", Reason: "must reference existing users"}
			}
			if apiutil.IsSQLiteUniqueViolation(err) {
				return apiutil.FieldError{Field: "assistantCoaches", Reason: "must not repeat a coach"}
			}
			return err
		}
	}
	return nil
}

func loadTeamResponse(ctx context.Context, q *dbgen.Queries, team dbgen.Team) (teamResponse, error) {
	players, err := q.ListTeamPlayers(ctx, team.ID)
	if err != nil {
		return teamResponse{}, err
	}
	assistants, err := q.ListAssistantCoaches(ctx, team.ID)
	if err != nil {
		return teamResponse{}, err
	}

	resp := teamResponse{
		ID:               team.ID,
		Name:             team.Name,
		LeagueID:         team.LeagueID,
		CoachID:          team.CoachID,
		Wins:             team.Wins,
		Losses:           team.Losses,
		WinPercentage:    domain.WinPercentage(team.Wins, team.Losses),
		GamesPlayed:      team.Wins + team.Losses,
		Logo:             team.Logo,
		PrimaryColor:     apiutil.NullStringPtr(team.PrimaryColor),
		SecondaryColor:   apiutil.NullStringPtr(team.SecondaryColor),
		HomeVenue:        apiutil.NullStringPtr(team.HomeVenue),
		MaxPlayers:       team.MaxPlayers,
		IsActive:         team.IsActive,
		Players:          make([]rosterEntryResponse, 0, len(players)),
		AssistantCoaches: make([]personResponse, 0, len(assistants)),
		CreatedAt:        team.CreatedAt,
		UpdatedAt:        team.UpdatedAt,
	}
	for _, player := range players {
		resp.Players = append(resp.Players, rosterEntryResponse{
			Player: personResponse{
				ID:        player.PlayerID,
				FirstName: player.FirstName,
				LastName:  player.LastName,
				Email:     player.Email,
			},
			JerseyNumber: apiutil.NullInt64Ptr(player.JerseyNumber),
			Position:     player.Position,
			Status:       player.Status,
			JoinedAt:     player.CreatedAt,
		})
	}
	for _, coach := range assistants {
		resp.AssistantCoaches = append(resp.AssistantCoaches, personResponse{
			ID:        coach.UserID,
			FirstName: coach.FirstName,
			LastName:  coach.LastName,
			Email:     coach.Email,
		})
	}
	return resp, nil
}

func writeTeam(ctx context.Context, w http.ResponseWriter, r *http.Request, q *dbgen.Queries, status int, team dbgen.Team) {
	logger := log.Ctx(r.Context())
	resp, err := loadTeamResponse(ctx, q, team)
	if err != nil {
		logger.Error().Err(err).Int64("team_id", team.ID).Msg("Failed to load team details")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to load team", err)
		return
	}
	if err := apiutil.WriteJSON(w, status, resp); err != nil {
		logger.Error().Err(err).Msg("Failed to write team response")
	}
}

func writeTeamLoadError(w http.ResponseWriter, r *http.Request, teamID int64, err error) {
	if errors.Is(err, sql.ErrNoRows) {
		apiutil.WriteError(w, http.StatusNotFound, "Team not found", nil)
		return
	}
	log.Ctx(r.Context()).Error().Err(err).Int64("team_id", teamID).Msg("Failed to load team")
	apiutil.WriteError(w, http.StatusInternalServerError, "Failed to load team", err)
}

func writeTeamWriteError(w http.ResponseWriter, r *http.Request, message string, err error) {
	var handlerErr apiutil.HandlerError
	var fieldErr apiutil.FieldError
	switch {
	case errors.As(err, &handlerErr), errors.As(err, &fieldErr):
		apiutil.WriteHandlerError(w, err)
	case errors.Is(err, sql.ErrNoRows):
		apiutil.WriteError(w, http.StatusNotFound, "Team not found", nil)
	default:
		log.Ctx(r.Context()).Error().Err(err).Msg(message)
		apiutil.WriteError(w, http.StatusInternalServerError, message, err)
	}
}

func loadQueries() *dbgen.Queries {
	return queries
}
