package leagues

import (
	"errors"
	"fmt"
)

var (
	ErrCapacityExceeded = errors.New("team roster is full")
	ErrDuplicateMember  = errors.New("player already on this team")
)

// Roster entry statuses.
const (
	PlayerStatusActive    = "active"
	PlayerStatusInjured   = "injured"
	PlayerStatusSuspended = "suspended"
	PlayerStatusInactive  = "inactive"
)

type RosterEntry struct {
	PlayerID     int64
	JerseyNumber *int64
	Position     string
	Status       string
}

// Roster is a team's player list bounded by MaxPlayers.
type Roster struct {
	MaxPlayers int64
	Entries    []RosterEntry
}

// AddPlayer appends an active entry for playerID.
func (r *Roster) AddPlayer(playerID int64, jerseyNumber *int64, position string) (RosterEntry, error) {
	if int64(len(r.Entries)) >= r.MaxPlayers {
		return RosterEntry{}, fmt.Errorf("%w: %d of %d players", ErrCapacityExceeded, len(r.Entries), r.MaxPlayers)
	}
	if r.Contains(playerID) {
		return RosterEntry{}, ErrDuplicateMember
	}

	entry := RosterEntry{
		PlayerID:     playerID,
		JerseyNumber: jerseyNumber,
		Position:     position,
		Status:       PlayerStatusActive,
	}
	r.Entries = append(r.Entries, entry)
	return entry, nil
}

// RemovePlayer drops every entry for playerID and returns how many were
// removed. Removing an absent player is not an error.
func (r *Roster) RemovePlayer(playerID int64) int {
	kept := r.Entries[:0]
	removed := 0
	for _, entry := range r.Entries {
		if entry.PlayerID == playerID {
			removed++
			continue
		}
		kept = append(kept, entry)
	}
	r.Entries = kept
	return removed
}

func (r *Roster) Contains(playerID int64) bool {
	for _, entry := range r.Entries {
		if entry.PlayerID == playerID {
			return true
		}
	}
	return false
}
