package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/codr1/CopticLeague/internal/api/authz"
	"github.com/codr1/CopticLeague/internal/config"
	dbgen "github.com/codr1/CopticLeague/internal/db/generated"
	"github.com/codr1/CopticLeague/internal/testutil"
)

func TestCloseRegistrations(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	now := time.Date(2025, 9, 20, 8, 0, 0, 0, time.UTC)

	// SeedLeague starts the season two weeks after the deadline.
	started := testutil.SeedLeague(t, database, "Started", now.AddDate(0, 0, -20))
	notStarted := testutil.SeedLeague(t, database, "Not Started", now.AddDate(0, 0, -3))
	stillOpen := testutil.SeedLeague(t, database, "Still Open", now.AddDate(0, 0, 5))

	closed, err := CloseRegistrations(ctx, database, now)
	if err != nil {
		t.Fatalf("close registrations: %v", err)
	}
	if closed != 1 {
		t.Fatalf("expected 1 league closed, got %d", closed)
	}

	want := map[int64]string{
		started.ID:    "in-progress",
		notStarted.ID: "open",
		stillOpen.ID:  "open",
	}
	for id, status := range want {
		league, err := database.Queries.GetLeague(ctx, id)
		if err != nil {
			t.Fatalf("get league %d: %v", id, err)
		}
		if league.Status != status {
			t.Fatalf("league %s: expected %s, got %s", league.Name, status, league.Status)
		}
	}

	closed, err = CloseRegistrations(ctx, database, now)
	if err != nil || closed != 0 {
		t.Fatalf("expected second run to close nothing, got %d, %v", closed, err)
	}
}

func TestRunRecordAudit(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	coach := testutil.SeedUser(t, database, "coach@example.com", authz.RoleCoach)
	league := testutil.SeedLeague(t, database, "Audit", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	team := testutil.SeedTeam(t, database, league.ID, coach.ID, "Lions")
	testutil.SeedTeam(t, database, league.ID, coach.ID, "Eagles")

	drifted, err := RunRecordAudit(ctx, database)
	if err != nil || drifted != 0 {
		t.Fatalf("expected clean audit, got %d, %v", drifted, err)
	}

	if _, err := database.Queries.SaveTeamRecord(ctx, dbgen.SaveTeamRecordParams{Wins: 2, Losses: 1, ID: team.ID}); err != nil {
		t.Fatalf("save record: %v", err)
	}
	drifted, err = RunRecordAudit(ctx, database)
	if err != nil || drifted != 1 {
		t.Fatalf("expected one drifted team, got %d, %v", drifted, err)
	}
}

func noop(context.Context) error { return nil }

func TestServiceRequiresInitialization(t *testing.T) {
	var svc *Service
	if _, err := svc.AddJob(Job{Name: "audit", Cron: "* * * * *", Task: noop}); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}
	if err := svc.Stop(); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized from Stop, got %v", err)
	}
}

func TestAddJobValidatesArguments(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("init scheduler: %v", err)
	}
	svc, err := ServiceInstance()
	if err != nil {
		t.Fatalf("service instance: %v", err)
	}

	tests := []struct {
		name string
		job  Job
		want error
	}{
		{"blank name", Job{Name: " ", Cron: "* * * * *", Task: noop}, ErrEmptyJobName},
		{"blank cron", Job{Name: "audit", Task: noop}, ErrEmptyCronExpr},
		{"no task", Job{Name: "audit", Cron: "* * * * *"}, ErrNoTask},
	}
	for _, tt := range tests {
		if _, err := svc.AddJob(tt.job); !errors.Is(err, tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, err)
		}
	}
	if _, err := svc.AddJob(Job{Name: "audit", Cron: "not a cron", Task: noop}); err == nil {
		t.Fatal("expected invalid cron expression to fail")
	}
}

func TestRegisterJobs(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("init scheduler: %v", err)
	}
	database := testutil.NewTestDB(t)

	err := RegisterJobs(database, config.JobsConfig{
		RecordAudit:       "0 3 * * *",
		RegistrationClose: "*/15 * * * *",
	}, clockwork.NewFakeClock())
	if err != nil {
		t.Fatalf("register jobs: %v", err)
	}

	if err := RegisterJobs(nil, config.JobsConfig{}, nil); err == nil {
		t.Fatal("expected error without database")
	}
}
