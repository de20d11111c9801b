package leagues

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/codr1/CopticLeague/internal/api/authz"
	dbgen "github.com/codr1/CopticLeague/internal/db/generated"
	"github.com/codr1/CopticLeague/internal/testutil"
)

func TestHandleRecordAudit(t *testing.T) {
	db := setupLeaguesTest(t)
	ctx := context.Background()
	coach := testutil.SeedUser(t, db, "coach@example.com", authz.RoleCoach)
	league := testutil.SeedLeague(t, db, "Audit", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	home := testutil.SeedTeam(t, db, league.ID, coach.ID, "Lions")
	away := testutil.SeedTeam(t, db, league.ID, coach.ID, "Eagles")

	game, err := db.Queries.CreateGame(ctx, dbgen.CreateGameParams{
		LeagueID:      league.ID,
		HomeTeamID:    home.ID,
		AwayTeamID:    away.ID,
		ScheduledDate: league.StartDate,
		ScheduledTime: "18:00",
		Venue:         "Main Court",
	})
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	if _, err := db.Queries.UpdateGame(ctx, dbgen.UpdateGameParams{
		ScheduledDate: game.ScheduledDate,
		ScheduledTime: game.ScheduledTime,
		Venue:         game.Venue,
		Status:        "completed",
		HomeScore:     30,
		AwayScore:     20,
		Quarter:       4,
		ID:            game.ID,
		Version:       game.Version,
	}); err != nil {
		t.Fatalf("complete game: %v", err)
	}
	// Only the home side was credited.
	if _, err := db.Queries.SaveTeamRecord(ctx, dbgen.SaveTeamRecordParams{Wins: 1, ID: home.ID}); err != nil {
		t.Fatalf("save record: %v", err)
	}

	rec := httptest.NewRecorder()
	HandleRecordAudit(rec, asAdmin(newRequest(http.MethodGet, "/api/v1/admin/records/audit", "", 0)))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp auditResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.TeamsChecked != 2 || resp.GamesCompleted != 1 {
		t.Fatalf("unexpected totals: %+v", resp)
	}
	if len(resp.Drift) != 1 || resp.Drift[0].TeamID != away.ID || resp.Drift[0].DerivedLosses != 1 || resp.Drift[0].StoredLosses != 0 {
		t.Fatalf("unexpected drift: %+v", resp.Drift)
	}

	stored, err := db.Queries.GetTeam(ctx, away.ID)
	if err != nil {
		t.Fatalf("get team: %v", err)
	}
	if stored.Losses != 0 {
		t.Fatalf("audit must not write records, got %d losses", stored.Losses)
	}

	rec = httptest.NewRecorder()
	HandleRecordAudit(rec, testutil.WithUser(newRequest(http.MethodGet, "/api/v1/admin/records/audit", "", 0), coach.ID, authz.RoleCoach))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for coach, got %d", rec.Code)
	}
}
