package leagues

import (
	"errors"
	"time"
)

// Divisions a league can run in.
var Divisions = []string{
	"High School Boys",
	"High School Girls",
	"Junior High",
	"Mens",
	"Womens",
	"Geezers (35+)",
}

// League statuses.
const (
	LeagueStatusDraft      = "draft"
	LeagueStatusOpen       = "open"
	LeagueStatusInProgress = "in-progress"
	LeagueStatusCompleted  = "completed"
)

const (
	DefaultMaxTeams   = 12
	DefaultMaxPlayers = 15
)

var (
	ErrEndBeforeStart     = errors.New("end date must be on or after start date")
	ErrDeadlineAfterEnd   = errors.New("registration deadline must be on or before end date")
	ErrRegistrationClosed = errors.New("registration deadline has passed")
)

// CheckLeagueDates validates the ordering of a league's calendar.
func CheckLeagueDates(start, end, deadline time.Time) error {
	if end.Before(start) {
		return ErrEndBeforeStart
	}
	if deadline.After(end) {
		return ErrDeadlineAfterEnd
	}
	return nil
}

// RegistrationOpen reports whether a registration submitted at now is still
// accepted. The deadline instant itself is accepted.
func RegistrationOpen(deadline, now time.Time) bool {
	return !now.After(deadline)
}

// ShouldCloseRegistration reports whether an open league has passed both its
// registration deadline and its start date.
func ShouldCloseRegistration(status string, deadline, start, now time.Time) bool {
	return status == LeagueStatusOpen && now.After(deadline) && !now.Before(start)
}
