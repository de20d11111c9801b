package pages

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/codr1/CopticLeague/internal/api/authz"
	"github.com/codr1/CopticLeague/internal/api/htmx"
	dbgen "github.com/codr1/CopticLeague/internal/db/generated"
	"github.com/codr1/CopticLeague/internal/templates/layouts"
	"github.com/codr1/CopticLeague/internal/testutil"
)

func setupPagesTest(t *testing.T) (*dbgen.Queries, dbgen.League) {
	t.Helper()

	db := testutil.NewTestDB(t)
	prevQueries, prevClock := queries, clock
	t.Cleanup(func() {
		queries, clock = prevQueries, prevClock
	})
	InitHandlers(db.Queries, clockwork.NewFakeClockAt(time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)))

	coach := testutil.SeedUser(t, db, "coach@example.com", authz.RoleCoach)
	league := testutil.SeedLeague(t, db, "Fall <Mens>", time.Date(2025, 8, 30, 0, 0, 0, 0, time.UTC))
	home := testutil.SeedTeam(t, db, league.ID, coach.ID, "Lions")
	away := testutil.SeedTeam(t, db, league.ID, coach.ID, "Eagles")
	if _, err := db.Queries.SaveTeamRecord(context.Background(), dbgen.SaveTeamRecordParams{Wins: 3, Losses: 1, ID: away.ID}); err != nil {
		t.Fatalf("save record: %v", err)
	}
	if _, err := db.Queries.CreateGame(context.Background(), dbgen.CreateGameParams{
		LeagueID:      league.ID,
		HomeTeamID:    home.ID,
		AwayTeamID:    away.ID,
		ScheduledDate: league.StartDate,
		ScheduledTime: "18:30",
		Venue:         "St. Mark Gym",
	}); err != nil {
		t.Fatalf("create game: %v", err)
	}
	return db.Queries, league
}

func pageRequest(path string, leagueID int64, hx bool) *http.Request {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if leagueID > 0 {
		req.SetPathValue(leagueIDPathKey, strconv.FormatInt(leagueID, 10))
	}
	if hx {
		req.Header.Set("HX-Request", "true")
	}
	return req
}

func TestHandleHomeListsLeagues(t *testing.T) {
	_, league := setupPagesTest(t)

	rec := httptest.NewRecorder()
	HandleHome(rec, pageRequest("/", 0, false))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "<!DOCTYPE html>") {
		t.Fatal("expected full page")
	}
	if !strings.Contains(body, "Fall &lt;Mens&gt;") || strings.Contains(body, "Fall <Mens>") {
		t.Fatal("expected escaped league name")
	}
	if !strings.Contains(body, "Register by Aug 30, 2025") || !strings.Contains(body, "$75.00") {
		t.Fatalf("expected registration details, got %s", body)
	}
	if !strings.Contains(body, "/leagues/"+strconv.FormatInt(league.ID, 10)+"/standings") {
		t.Fatal("expected standings link")
	}
}

func TestHandleStandingsPage(t *testing.T) {
	_, league := setupPagesTest(t)

	rec := httptest.NewRecorder()
	HandleStandingsPage(rec, pageRequest("/leagues/x/standings", league.ID, false))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `id="standings-table"`) {
		t.Fatal("expected standings container")
	}
	if strings.Index(body, "Eagles") > strings.Index(body, "Lions") {
		t.Fatal("expected Eagles ranked above Lions")
	}

	rec = httptest.NewRecorder()
	HandleStandingsPage(rec, pageRequest("/leagues/x/standings", league.ID, true))
	body = rec.Body.String()
	if strings.Contains(body, "<html") || strings.Contains(body, "standings-table") || !strings.HasPrefix(body, "<table") {
		t.Fatalf("expected bare table fragment, got %s", body)
	}

	rec = httptest.NewRecorder()
	HandleStandingsPage(rec, pageRequest("/leagues/x/standings", league.ID+100, false))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestHandleSchedulePage(t *testing.T) {
	_, league := setupPagesTest(t)

	rec := httptest.NewRecorder()
	HandleSchedulePage(rec, pageRequest("/leagues/x/schedule", league.ID, true))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Lions vs Eagles") || !strings.Contains(body, "18:30") || !strings.Contains(body, "scheduled") {
		t.Fatalf("unexpected schedule fragment %s", body)
	}
}

func TestRenderChoosesByHTMXHeaders(t *testing.T) {
	_, league := setupPagesTest(t)

	boosted := pageRequest("/leagues/x/standings", league.ID, true)
	boosted.Header.Set(htmx.HeaderBoosted, "true")
	rec := httptest.NewRecorder()
	HandleStandingsPage(rec, boosted)
	if !strings.Contains(rec.Body.String(), "<html") {
		t.Fatalf("expected full document for boosted navigation, got %s", rec.Body.String())
	}

	mainSwap := pageRequest("/leagues/x/standings", league.ID, true)
	mainSwap.Header.Set(htmx.HeaderTarget, layouts.MainContentID)
	rec = httptest.NewRecorder()
	HandleStandingsPage(rec, mainSwap)
	body := rec.Body.String()
	if strings.Contains(body, "<html") || !strings.Contains(body, `id="standings-table"`) {
		t.Fatalf("expected page without layout, got %s", body)
	}
	if rec.Header().Get("Vary") != htmx.HeaderRequest {
		t.Fatalf("expected Vary: %s, got %q", htmx.HeaderRequest, rec.Header().Get("Vary"))
	}
}
