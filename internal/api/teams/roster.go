package teams

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/codr1/CopticLeague/internal/api/apiutil"
	"github.com/codr1/CopticLeague/internal/api/authz"
	appdb "github.com/codr1/CopticLeague/internal/db"
	dbgen "github.com/codr1/CopticLeague/internal/db/generated"
	domain "github.com/codr1/CopticLeague/internal/leagues"
)

// POST /api/v1/teams/{id}/players
func HandleAddPlayer(w http.ResponseWriter, r *http.Request) {
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

	var req addPlayerRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Invalid JSON", err)
		return
	}
	req.Position = strings.TrimSpace(req.Position)
	if err := apiutil.ValidateStruct(req); err != nil {
		apiutil.WriteHandlerError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), teamQueryTimeout)
	defer cancel()

	team, err := q.GetTeam(ctx, teamID)
	if err != nil {
		writeTeamLoadError(w, r, teamID, err)
		return
	}
	if !apiutil.RequireOwnerOrAdmin(w, r, team.CoachID) {
		return
	}

	err = database.RunInTx(ctx, func(tx *appdb.DB) error {
		team, err := tx.Queries.GetTeam(ctx, teamID)
		if err != nil {
			return err
		}
		if _, err := tx.Queries.GetUserByID(ctx, req.PlayerID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apiutil.HandlerError{Status: http.StatusNotFound, Message: "Player not found"}
			}
			return err
		}

		roster, err := loadRoster(ctx, tx.Queries, team)
		if err != nil {
			return err
		}
		entry, err := roster.AddPlayer(req.PlayerID, req.JerseyNumber, req.Position)
		switch {
		case errors.Is(err, domain.ErrCapacityExceeded):
			return apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Team is full", Err: err}
		case errors.Is(err, domain.ErrDuplicateMember):
			return apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Player already on this team", Err: err}
		case err != nil:
			return err
		}

		_, err = tx.Queries.AddTeamPlayer(ctx, dbgen.AddTeamPlayerParams{
			TeamID:       teamID,
			PlayerID:     entry.PlayerID,
			JerseyNumber: apiutil.ToNullInt64(entry.JerseyNumber),
			Position:     entry.Position,
			Status:       entry.Status,
		})
		if apiutil.IsSQLiteUniqueViolation(err) {
			return apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Player already on this team", Err: err}
		}
		return err
	})
	if err != nil {
		writeTeamWriteError(w, r, "Failed to add player", err)
		return
	}

	logger.Info().Int64("team_id", teamID).Int64("player_id", req.PlayerID).Msg("Player added to team")
	writeTeam(ctx, w, r, q, http.StatusOK, team)
}

// DELETE /api/v1/teams/{id}/players/{player_id}
func HandleRemovePlayer(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if !apiutil.RequireRole(w, r, authz.RoleCoach, authz.RoleAdmin) {
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
	playerID, err := apiutil.PathID(r, playerIDPathKey)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Invalid player ID", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), teamQueryTimeout)
	defer cancel()

	team, err := q.GetTeam(ctx, teamID)
	if err != nil {
		writeTeamLoadError(w, r, teamID, err)
		return
	}
	if !apiutil.RequireOwnerOrAdmin(w, r, team.CoachID) {
		return
	}

	removed, err := q.RemoveTeamPlayer(ctx, dbgen.RemoveTeamPlayerParams{TeamID: teamID, PlayerID: playerID})
	if err != nil {
		logger.Error().Err(err).Int64("team_id", teamID).Int64("player_id", playerID).Msg("Failed to remove player")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to remove player", err)
		return
	}

	logger.Info().
		Int64("team_id", teamID).
		Int64("player_id", playerID).
		Int64("removed", removed).
		Msg("Player removed from team")
	if err := apiutil.WriteJSON(w, http.StatusOK, messageResponse{Message: "Player removed from team"}); err != nil {
		logger.Error().Err(err).Msg("Failed to write remove response")
	}
}

func loadRoster(ctx context.Context, q *dbgen.Queries, team dbgen.Team) (*domain.Roster, error) {
	players, err := q.ListTeamPlayers(ctx, team.ID)
	if err != nil {
		return nil, err
	}
	roster := &domain.Roster{
		MaxPlayers: team.MaxPlayers,
		Entries:    make([]domain.RosterEntry, 0, len(players)),
	}
	for _, player := range players {
		roster.Entries = append(roster.Entries, domain.RosterEntry{
			PlayerID:     player.PlayerID,
			JerseyNumber: apiutil.NullInt64Ptr(player.JerseyNumber),
			Position:     player.Position,
			Status:       player.Status,
		})
	}
	return roster, nil
}
