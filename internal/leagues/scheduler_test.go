package leagues

import (
	"testing"
	"time"
)

func TestGenerateRoundRobinScheduleEvenTeams(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	schedule, err := GenerateRoundRobinSchedule(1, []int64{10, 20, 30, 40}, ScheduleOptions{
		StartDate:     start,
		EndDate:       start.AddDate(0, 2, 0),
		FirstGameTime: "18:00",
		Venue:         "St. Mark Gym",
	})
	if err != nil {
		t.Fatalf("generate schedule: %v", err)
	}
	if len(schedule) != 6 {
		t.Fatalf("expected 6 games, got %d", len(schedule))
	}

	seen := make(map[[2]int64]bool)
	for _, game := range schedule {
		if game.HomeTeamID == game.AwayTeamID {
			t.Fatalf("team %d scheduled against itself", game.HomeTeamID)
		}
		key := [2]int64{min(game.HomeTeamID, game.AwayTeamID), max(game.HomeTeamID, game.AwayTeamID)}
		if seen[key] {
			t.Fatalf("pairing %v scheduled twice", key)
		}
		seen[key] = true

		wantDate := start.AddDate(0, 0, (game.Round-1)*7)
		if !game.ScheduledDate.Equal(wantDate) {
			t.Fatalf("round %d: expected date %s, got %s", game.Round, wantDate, game.ScheduledDate)
		}
	}

	if schedule[0].ScheduledTime != "18:00" || schedule[1].ScheduledTime != "19:00" {
		t.Fatalf("expected staggered kickoffs, got %s and %s", schedule[0].ScheduledTime, schedule[1].ScheduledTime)
	}
}

func TestGenerateRoundRobinScheduleOddTeamsSkipsBye(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	schedule, err := GenerateRoundRobinSchedule(1, []int64{1, 2, 3}, ScheduleOptions{
		StartDate:     start,
		EndDate:       start.AddDate(0, 1, 0),
		FirstGameTime: "6:30 PM",
		Venue:         "Main Court",
	})
	if err != nil {
		t.Fatalf("generate schedule: %v", err)
	}
	if len(schedule) != 3 {
		t.Fatalf("expected 3 games, got %d", len(schedule))
	}
	if schedule[0].ScheduledTime != "18:30" {
		t.Fatalf("expected 18:30 kickoff, got %s", schedule[0].ScheduledTime)
	}
}

func TestGenerateRoundRobinScheduleInsufficientDates(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	_, err := GenerateRoundRobinSchedule(1, []int64{1, 2, 3, 4}, ScheduleOptions{
		StartDate:     start,
		EndDate:       start.AddDate(0, 0, 7),
		FirstGameTime: "18:00",
		Venue:         "Main Court",
	})
	if err == nil {
		t.Fatal("expected error when rounds do not fit in the date range")
	}
}

func TestGenerateRoundRobinScheduleValidation(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	opts := ScheduleOptions{StartDate: start, EndDate: start.AddDate(0, 1, 0), FirstGameTime: "18:00", Venue: "Gym"}

	if _, err := GenerateRoundRobinSchedule(1, []int64{1}, opts); err == nil {
		t.Fatal("expected error for a single team")
	}
	if _, err := GenerateRoundRobinSchedule(1, []int64{1, 1}, opts); err == nil {
		t.Fatal("expected error for duplicate teams")
	}
	bad := opts
	bad.FirstGameTime = "late"
	if _, err := GenerateRoundRobinSchedule(1, []int64{1, 2}, bad); err == nil {
		t.Fatal("expected error for invalid time")
	}
	bad = opts
	bad.Venue = " "
	if _, err := GenerateRoundRobinSchedule(1, []int64{1, 2}, bad); err == nil {
		t.Fatal("expected error for missing venue")
	}
}

func TestNormalizeTimeOfDay(t *testing.T) {
	tests := map[string]string{
		"18:00":   "18:00",
		"6:30 PM": "18:30",
		"9:05am":  "09:05",
	}
	for raw, want := range tests {
		got, err := NormalizeTimeOfDay(raw)
		if err != nil || got != want {
			t.Fatalf("NormalizeTimeOfDay(%q) = %q, %v; want %q", raw, got, err, want)
		}
	}
	if _, err := NormalizeTimeOfDay("noon"); err == nil {
		t.Fatal("expected error for unparseable time")
	}
}
