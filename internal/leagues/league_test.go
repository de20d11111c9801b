package leagues

import (
	"errors"
	"testing"
	"time"
)

func TestCheckLeagueDates(t *testing.T) {
	start := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		deadline time.Time
		want     error
	}{
		{"valid", start, end, start.AddDate(0, 0, -7), nil},
		{"single day", start, start, start, nil},
		{"deadline on end date", start, end, end, nil},
		{"end before start", end, start, start, ErrEndBeforeStart},
		{"deadline after end", start, end, end.AddDate(0, 0, 1), ErrDeadlineAfterEnd},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := CheckLeagueDates(tt.start, tt.end, tt.deadline); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestRegistrationOpen(t *testing.T) {
	deadline := time.Date(2025, 8, 15, 23, 59, 0, 0, time.UTC)
	if !RegistrationOpen(deadline, deadline) {
		t.Fatal("expected registration open at the deadline")
	}
	if !RegistrationOpen(deadline, deadline.Add(-time.Hour)) {
		t.Fatal("expected registration open before the deadline")
	}
	if RegistrationOpen(deadline, deadline.Add(time.Second)) {
		t.Fatal("expected registration closed after the deadline")
	}
}

func TestShouldCloseRegistration(t *testing.T) {
	deadline := time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)
	start := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

	if ShouldCloseRegistration(LeagueStatusOpen, deadline, start, deadline.AddDate(0, 0, 1)) {
		t.Fatal("expected league to stay open before start date")
	}
	if !ShouldCloseRegistration(LeagueStatusOpen, deadline, start, start) {
		t.Fatal("expected league to close once start date is reached")
	}
	if ShouldCloseRegistration(LeagueStatusDraft, deadline, start, start.AddDate(0, 1, 0)) {
		t.Fatal("expected draft league to be left alone")
	}
}
