package leagues

// NOTE: Tests cannot use t.Parallel() due to shared package state.

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/codr1/CopticLeague/internal/api/authz"
	appdb "github.com/codr1/CopticLeague/internal/db"
	dbgen "github.com/codr1/CopticLeague/internal/db/generated"
	domain "github.com/codr1/CopticLeague/internal/leagues"
	"github.com/codr1/CopticLeague/internal/testutil"
)

func setupLeaguesTest(t *testing.T) *appdb.DB {
	t.Helper()

	db := testutil.NewTestDB(t)
	prevQueries, prevDatabase := queries, database
	t.Cleanup(func() {
		queries, database = prevQueries, prevDatabase
	})
	InitHandlers(db)
	return db
}

func newRequest(method, path, body string, leagueID int64) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if leagueID > 0 {
		req.SetPathValue(leagueIDPathKey, strconv.FormatInt(leagueID, 10))
	}
	return req
}

func asAdmin(r *http.Request) *http.Request {
	return testutil.WithUser(r, 1, authz.RoleAdmin)
}

const createBody = `{
	"name": "Fall Mens Basketball",
	"division": "Mens",
	"season": "Fall 2025",
	"startDate": "2025-09-06",
	"endDate": "2025-12-13",
	"registrationDeadline": "2025-08-30",
	"registrationFeeCents": 7500
}`

func TestHandleCreateLeagueDefaults(t *testing.T) {
	setupLeaguesTest(t)

	rec := httptest.NewRecorder()
	HandleCreateLeague(rec, asAdmin(newRequest(http.MethodPost, "/api/v1/leagues", createBody, 0)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp leagueResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != domain.LeagueStatusDraft || resp.MaxTeams != domain.DefaultMaxTeams || !resp.IsActive {
		t.Fatalf("expected draft league with defaults, got %+v", resp)
	}
	if resp.RegistrationFee != "$75.00" {
		t.Fatalf("expected formatted fee, got %q", resp.RegistrationFee)
	}
}

func TestHandleCreateLeagueRequiresAdmin(t *testing.T) {
	setupLeaguesTest(t)

	rec := httptest.NewRecorder()
	HandleCreateLeague(rec, newRequest(http.MethodPost, "/api/v1/leagues", createBody, 0))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req := testutil.WithUser(newRequest(http.MethodPost, "/api/v1/leagues", createBody, 0), 2, authz.RoleCoach)
	HandleCreateLeague(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestHandleCreateLeagueValidation(t *testing.T) {
	setupLeaguesTest(t)

	tests := []struct {
		name string
		body string
	}{
		{"unknown division", strings.Replace(createBody, `"Mens"`, `"Coed"`, 1)},
		{"end before start", strings.Replace(createBody, `"2025-12-13"`, `"2025-09-01"`, 1)},
		{"deadline after end", strings.Replace(createBody, `"2025-08-30"`, `"2026-01-01"`, 1)},
		{"missing fee", strings.Replace(createBody, `,
	"registrationFeeCents": 7500`, "", 1)},
		{"unknown field", strings.Replace(createBody, `"season"`, `"wins": 3, "season"`, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleCreateLeague(rec, asAdmin(newRequest(http.MethodPost, "/api/v1/leagues", tt.body, 0)))
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestHandleCreateLeagueAcceptsDivisionWithSpaces(t *testing.T) {
	setupLeaguesTest(t)

	body := strings.Replace(createBody, `"Mens"`, `"Geezers (35+)"`, 1)
	rec := httptest.NewRecorder()
	HandleCreateLeague(rec, asAdmin(newRequest(http.MethodPost, "/api/v1/leagues", body, 0)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleUpdateLeagueRechecksDates(t *testing.T) {
	db := setupLeaguesTest(t)
	league := testutil.SeedLeague(t, db, "Winter", time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC))

	rec := httptest.NewRecorder()
	body := `{"endDate": "2025-10-01"}`
	HandleUpdateLeague(rec, asAdmin(newRequest(http.MethodPut, "/api/v1/leagues/x", body, league.ID)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	body = `{"name": "Winter Mens", "status": "in-progress"}`
	HandleUpdateLeague(rec, asAdmin(newRequest(http.MethodPut, "/api/v1/leagues/x", body, league.ID)))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp leagueResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Name != "Winter Mens" || resp.Status != domain.LeagueStatusInProgress || resp.Season != league.Season {
		t.Fatalf("unexpected league after update: %+v", resp)
	}
}

func TestHandleGetLeagueIncludesTeams(t *testing.T) {
	db := setupLeaguesTest(t)
	coach := testutil.SeedUser(t, db, "coach@example.com", authz.RoleCoach)
	league := testutil.SeedLeague(t, db, "Spring", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	testutil.SeedTeam(t, db, league.ID, coach.ID, "Lions")
	testutil.SeedTeam(t, db, league.ID, coach.ID, "Eagles")

	rec := httptest.NewRecorder()
	HandleGetLeague(rec, newRequest(http.MethodGet, "/api/v1/leagues/x", "", league.ID))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp leagueResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Teams) != 2 || resp.Teams[0].Name != "Eagles" {
		t.Fatalf("expected two teams sorted by name, got %+v", resp.Teams)
	}

	rec = httptest.NewRecorder()
	HandleGetLeague(rec, newRequest(http.MethodGet, "/api/v1/leagues/x", "", league.ID+100))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestHandleListLeaguesFilters(t *testing.T) {
	db := setupLeaguesTest(t)
	testutil.SeedLeague(t, db, "Older", time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC))
	testutil.SeedLeague(t, db, "Newer", time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC))

	rec := httptest.NewRecorder()
	HandleListLeagues(rec, httptest.NewRequest(http.MethodGet, "/api/v1/leagues?division=Mens", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp []leagueResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp) != 2 || resp[0].Name != "Newer" {
		t.Fatalf("expected leagues newest first, got %+v", resp)
	}

	rec = httptest.NewRecorder()
	HandleListLeagues(rec, httptest.NewRequest(http.MethodGet, "/api/v1/leagues?division=Womens", nil))
	resp = nil
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp) != 0 {
		t.Fatalf("expected no Womens leagues, got %d", len(resp))
	}
}

func TestHandleLeagueStandings(t *testing.T) {
	db := setupLeaguesTest(t)
	coach := testutil.SeedUser(t, db, "coach@example.com", authz.RoleCoach)
	league := testutil.SeedLeague(t, db, "Standings", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))

	records := map[string][2]int64{"A": {5, 2}, "B": {5, 1}, "C": {4, 2}}
	for name, record := range records {
		team := testutil.SeedTeam(t, db, league.ID, coach.ID, name)
		if _, err := db.Queries.SaveTeamRecord(context.Background(), dbgen.SaveTeamRecordParams{
			Wins: record[0], Losses: record[1], ID: team.ID,
		}); err != nil {
			t.Fatalf("save record: %v", err)
		}
	}

	rec := httptest.NewRecorder()
	HandleLeagueStandings(rec, newRequest(http.MethodGet, "/api/v1/leagues/x/standings", "", league.ID))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var standings []domain.TeamStanding
	if err := json.NewDecoder(rec.Body).Decode(&standings); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(standings) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(standings))
	}
	want := []struct {
		team string
		pct  float64
	}{{"B", 83.3}, {"A", 71.4}, {"C", 66.7}}
	for i, row := range standings {
		if row.Team != want[i].team || row.Rank != i+1 || row.WinPercentage != want[i].pct {
			t.Fatalf("row %d: unexpected standing %+v", i, row)
		}
	}

	rec = httptest.NewRecorder()
	HandleLeagueStandings(rec, newRequest(http.MethodGet, "/api/v1/leagues/x/standings", "", league.ID+1))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown league, got %d", rec.Code)
	}
}

func TestHandleDeleteLeague(t *testing.T) {
	db := setupLeaguesTest(t)
	league := testutil.SeedLeague(t, db, "Doomed", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))

	rec := httptest.NewRecorder()
	HandleDeleteLeague(rec, asAdmin(newRequest(http.MethodDelete, "/api/v1/leagues/x", "", league.ID)))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	HandleDeleteLeague(rec, asAdmin(newRequest(http.MethodDelete, "/api/v1/leagues/x", "", league.ID)))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", rec.Code)
	}
}

func TestHandleGenerateSchedule(t *testing.T) {
	db := setupLeaguesTest(t)
	coach := testutil.SeedUser(t, db, "coach@example.com", authz.RoleCoach)
	league := testutil.SeedLeague(t, db, "Round Robin", time.Date(2025, 8, 16, 0, 0, 0, 0, time.UTC))
	for _, name := range []string{"Lions", "Eagles", "Bears", "Wolves"} {
		testutil.SeedTeam(t, db, league.ID, coach.ID, name)
	}

	body := `{"venue": "St. Mark Gym", "firstGameTime": "18:00"}`
	rec := httptest.NewRecorder()
	HandleGenerateSchedule(rec, asAdmin(newRequest(http.MethodPost, "/api/v1/leagues/x/schedule/generate", body, league.ID)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var games []scheduledGameResponse
	if err := json.NewDecoder(rec.Body).Decode(&games); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(games) != 6 {
		t.Fatalf("expected 6 games, got %d", len(games))
	}

	stored, err := db.Queries.ListGames(context.Background(), dbgen.ListGamesParams{})
	if err != nil {
		t.Fatalf("list games: %v", err)
	}
	if len(stored) != 6 {
		t.Fatalf("expected 6 stored games, got %d", len(stored))
	}

	rec = httptest.NewRecorder()
	HandleGenerateSchedule(rec, asAdmin(newRequest(http.MethodPost, "/api/v1/leagues/x/schedule/generate", body, league.ID)))
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 when games already exist, got %d", rec.Code)
	}
}
