package teams

// NOTE: Tests cannot use t.Parallel() due to shared package state.

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/codr1/CopticLeague/internal/api/authz"
	appdb "github.com/codr1/CopticLeague/internal/db"
	dbgen "github.com/codr1/CopticLeague/internal/db/generated"
	"github.com/codr1/CopticLeague/internal/testutil"
)

type teamFixture struct {
	db     *appdb.DB
	admin  dbgen.User
	coach  dbgen.User
	league dbgen.League
	team   dbgen.Team
}

func setupTeamsTest(t *testing.T) teamFixture {
	t.Helper()

	db := testutil.NewTestDB(t)
	prevQueries, prevDatabase := queries, database
	t.Cleanup(func() {
		queries, database = prevQueries, prevDatabase
	})
	InitHandlers(db)

	f := teamFixture{db: db}
	f.admin = testutil.SeedUser(t, db, "admin@example.com", authz.RoleAdmin)
	f.coach = testutil.SeedUser(t, db, "coach@example.com", authz.RoleCoach)
	f.league = testutil.SeedLeague(t, db, "Fall Mens", time.Date(2025, 8, 30, 0, 0, 0, 0, time.UTC))
	f.team = testutil.SeedTeam(t, db, f.league.ID, f.coach.ID, "Lions")
	return f
}

func teamRequestFor(method, body string, teamID int64) *http.Request {
	req := httptest.NewRequest(method, "/api/v1/teams", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if teamID > 0 {
		req.SetPathValue(teamIDPathKey, strconv.FormatInt(teamID, 10))
	}
	return req
}

func decodeTeam(t *testing.T, rec *httptest.ResponseRecorder) teamResponse {
	t.Helper()
	var resp teamResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode team: %v", err)
	}
	return resp
}

func TestHandleCreateTeamDefaultsCoachToCaller(t *testing.T) {
	f := setupTeamsTest(t)

	body := fmt.Sprintf(`{"name": "Eagles", "leagueId": %d, "primaryColor": "#1a2b3c"}`, f.league.ID)
	rec := httptest.NewRecorder()
	HandleCreateTeam(rec, testutil.WithUser(teamRequestFor(http.MethodPost, body, 0), f.coach.ID, authz.RoleCoach))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	resp := decodeTeam(t, rec)
	if resp.CoachID != f.coach.ID || resp.MaxPlayers != 15 || resp.Wins != 0 || resp.Losses != 0 {
		t.Fatalf("unexpected team: %+v", resp)
	}
	if resp.PrimaryColor == nil || *resp.PrimaryColor != "#1a2b3c" {
		t.Fatalf("expected primary color stored, got %v", resp.PrimaryColor)
	}
}

func TestHandleCreateTeamChecks(t *testing.T) {
	f := setupTeamsTest(t)
	player := testutil.SeedUser(t, f.db, "player@example.com", authz.RolePlayer)

	tests := []struct {
		name   string
		body   string
		userID int64
		role   authz.Role
		want   int
	}{
		{"player forbidden", fmt.Sprintf(`{"name": "X", "leagueId": %d}`, f.league.ID), player.ID, authz.RolePlayer, http.StatusForbidden},
		{"coach for another coach", fmt.Sprintf(`{"name": "X", "leagueId": %d, "coachId": %d}`, f.league.ID, f.admin.ID), f.coach.ID, authz.RoleCoach, http.StatusForbidden},
		{"unknown league", `{"name": "X", "leagueId": 999}`, f.admin.ID, authz.RoleAdmin, http.StatusNotFound},
		{"unknown coach", fmt.Sprintf(`{"name": "X", "leagueId": %d, "coachId": 999}`, f.league.ID), f.admin.ID, authz.RoleAdmin, http.StatusNotFound},
		{"bad color", fmt.Sprintf(`{"name": "X", "leagueId": %d, "primaryColor": "blue"}`, f.league.ID), f.admin.ID, authz.RoleAdmin, http.StatusBadRequest},
		{"wins not accepted", fmt.Sprintf(`{"name": "X", "leagueId": %d, "wins": 4}`, f.league.ID), f.admin.ID, authz.RoleAdmin, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleCreateTeam(rec, testutil.WithUser(teamRequestFor(http.MethodPost, tt.body, 0), tt.userID, tt.role))
			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestHandleUpdateTeamRejectsRecordFields(t *testing.T) {
	f := setupTeamsTest(t)

	rec := httptest.NewRecorder()
	req := testutil.WithUser(teamRequestFor(http.MethodPut, `{"wins": 10, "losses": 0}`, f.team.ID), f.admin.ID, authz.RoleAdmin)
	HandleUpdateTeam(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}

	stored, err := f.db.Queries.GetTeam(context.Background(), f.team.ID)
	if err != nil {
		t.Fatalf("get team: %v", err)
	}
	if stored.Wins != 0 || stored.Losses != 0 {
		t.Fatalf("expected record untouched, got %d-%d", stored.Wins, stored.Losses)
	}
}

func TestHandleUpdateTeamAllowListedFields(t *testing.T) {
	f := setupTeamsTest(t)
	assistant := testutil.SeedUser(t, f.db, "assistant@example.com", authz.RoleCoach)

	body := fmt.Sprintf(`{"name": "Lions FC", "homeVenue": "St. Mark Gym", "assistantCoaches": [%d], "isActive": false}`, assistant.ID)
	rec := httptest.NewRecorder()
	HandleUpdateTeam(rec, testutil.WithUser(teamRequestFor(http.MethodPut, body, f.team.ID), f.coach.ID, authz.RoleCoach))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	resp := decodeTeam(t, rec)
	if resp.Name != "Lions FC" || resp.IsActive || resp.HomeVenue == nil || *resp.HomeVenue != "St. Mark Gym" {
		t.Fatalf("unexpected team after update: %+v", resp)
	}
	if len(resp.AssistantCoaches) != 1 || resp.AssistantCoaches[0].ID != assistant.ID {
		t.Fatalf("expected assistant coach, got %+v", resp.AssistantCoaches)
	}

	other := testutil.SeedUser(t, f.db, "other@example.com", authz.RoleCoach)
	rec = httptest.NewRecorder()
	HandleUpdateTeam(rec, testutil.WithUser(teamRequestFor(http.MethodPut, `{"name": "Stolen"}`, f.team.ID), other.ID, authz.RoleCoach))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for another coach, got %d", rec.Code)
	}
}

func TestHandleUpdateTeamMaxPlayersBelowRoster(t *testing.T) {
	f := setupTeamsTest(t)
	for i := 0; i < 3; i++ {
		player := testutil.SeedUser(t, f.db, fmt.Sprintf("p%d@example.com", i), authz.RolePlayer)
		addPlayer(t, f, player.ID, http.StatusOK)
	}

	rec := httptest.NewRecorder()
	HandleUpdateTeam(rec, testutil.WithUser(teamRequestFor(http.MethodPut, `{"maxPlayers": 2}`, f.team.ID), f.admin.ID, authz.RoleAdmin))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func addPlayer(t *testing.T, f teamFixture, playerID int64, want int) *httptest.ResponseRecorder {
	t.Helper()
	body := fmt.Sprintf(`{"playerId": %d, "jerseyNumber": 7, "position": "guard"}`, playerID)
	rec := httptest.NewRecorder()
	HandleAddPlayer(rec, testutil.WithUser(teamRequestFor(http.MethodPost, body, f.team.ID), f.coach.ID, authz.RoleCoach))
	if rec.Code != want {
		t.Fatalf("add player %d: expected %d, got %d: %s", playerID, want, rec.Code, rec.Body.String())
	}
	return rec
}

func TestHandleAddPlayerCapacity(t *testing.T) {
	f := setupTeamsTest(t)

	for i := 0; i < 15; i++ {
		player := testutil.SeedUser(t, f.db, fmt.Sprintf("player%d@example.com", i), authz.RolePlayer)
		addPlayer(t, f, player.ID, http.StatusOK)
	}
	extra := testutil.SeedUser(t, f.db, "extra@example.com", authz.RolePlayer)
	addPlayer(t, f, extra.ID, http.StatusBadRequest)

	count, err := f.db.Queries.CountTeamPlayers(context.Background(), f.team.ID)
	if err != nil {
		t.Fatalf("count players: %v", err)
	}
	if count != 15 {
		t.Fatalf("expected roster to stay at 15, got %d", count)
	}
}

func TestHandleAddPlayerDuplicateAndMissing(t *testing.T) {
	f := setupTeamsTest(t)
	player := testutil.SeedUser(t, f.db, "player@example.com", authz.RolePlayer)

	resp := decodeTeam(t, addPlayer(t, f, player.ID, http.StatusOK))
	if len(resp.Players) != 1 || resp.Players[0].Status != "active" || *resp.Players[0].JerseyNumber != 7 {
		t.Fatalf("unexpected roster: %+v", resp.Players)
	}

	addPlayer(t, f, player.ID, http.StatusBadRequest)
	addPlayer(t, f, 999, http.StatusNotFound)
}

func TestHandleRemovePlayerIsIdempotent(t *testing.T) {
	f := setupTeamsTest(t)
	player := testutil.SeedUser(t, f.db, "player@example.com", authz.RolePlayer)
	addPlayer(t, f, player.ID, http.StatusOK)

	for i := 0; i < 2; i++ {
		req := testutil.WithUser(teamRequestFor(http.MethodDelete, "", f.team.ID), f.coach.ID, authz.RoleCoach)
		req.SetPathValue(playerIDPathKey, strconv.FormatInt(player.ID, 10))
		rec := httptest.NewRecorder()
		HandleRemovePlayer(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("removal %d: expected 200, got %d", i+1, rec.Code)
		}
	}

	count, err := f.db.Queries.CountTeamPlayers(context.Background(), f.team.ID)
	if err != nil {
		t.Fatalf("count players: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected empty roster, got %d", count)
	}
}

func TestHandleDeleteTeamWithGamesConflicts(t *testing.T) {
	f := setupTeamsTest(t)
	rival := testutil.SeedTeam(t, f.db, f.league.ID, f.coach.ID, "Bears")
	_, err := f.db.Queries.CreateGame(context.Background(), dbgen.CreateGameParams{
		LeagueID:      f.league.ID,
		HomeTeamID:    f.team.ID,
		AwayTeamID:    rival.ID,
		ScheduledDate: f.league.StartDate,
		ScheduledTime: "18:00",
		Venue:         "Main Court",
	})
	if err != nil {
		t.Fatalf("create game: %v", err)
	}

	rec := httptest.NewRecorder()
	HandleDeleteTeam(rec, testutil.WithUser(teamRequestFor(http.MethodDelete, "", f.team.ID), f.admin.ID, authz.RoleAdmin))
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}

	empty := testutil.SeedTeam(t, f.db, f.league.ID, f.coach.ID, "Idle")
	rec = httptest.NewRecorder()
	HandleDeleteTeam(rec, testutil.WithUser(teamRequestFor(http.MethodDelete, "", empty.ID), f.admin.ID, authz.RoleAdmin))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleListTeamsByLeague(t *testing.T) {
	f := setupTeamsTest(t)
	other := testutil.SeedLeague(t, f.db, "Womens", time.Date(2025, 8, 30, 0, 0, 0, 0, time.UTC))
	testutil.SeedTeam(t, f.db, other.ID, f.coach.ID, "Falcons")

	rec := httptest.NewRecorder()
	HandleListTeams(rec, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/teams?league=%d", f.league.ID), nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp []teamResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode teams: %v", err)
	}
	if len(resp) != 1 || resp[0].Name != "Lions" {
		t.Fatalf("expected only Lions, got %+v", resp)
	}
}
