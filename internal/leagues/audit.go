package leagues

import "sort"

// CompletedGame is a game whose status is completed.
type CompletedGame struct {
	GameID     int64
	HomeTeamID int64
	AwayTeamID int64
	HomeScore  int64
	AwayScore  int64
}

// RecordDrift is a team whose stored counters disagree with its game log.
type RecordDrift struct {
	TeamID        int64  `json:"teamId"`
	TeamName      string `json:"teamName"`
	StoredWins    int64  `json:"storedWins"`
	StoredLosses  int64  `json:"storedLosses"`
	DerivedWins   int64  `json:"derivedWins"`
	DerivedLosses int64  `json:"derivedLosses"`
}

// DeriveRecords rebuilds team records from scratch by applying every
// completed game once.
func DeriveRecords(games []CompletedGame) map[int64]*TeamRecord {
	records := make(map[int64]*TeamRecord)
	recordFor := func(teamID int64) *TeamRecord {
		record, ok := records[teamID]
		if !ok {
			record = NewTeamRecord(teamID, 0, 0)
			records[teamID] = record
		}
		return record
	}

	for _, game := range games {
		home := recordFor(game.HomeTeamID)
		away := recordFor(game.AwayTeamID)
		applyOutcome(OutcomeFromScores(game.HomeScore, game.AwayScore), home, away)
	}
	return records
}

// AuditRecords compares stored counters with DeriveRecords and returns the
// teams that drifted, ordered by team ID.
func AuditRecords(teams []StandingsInput, games []CompletedGame) []RecordDrift {
	derived := DeriveRecords(games)

	var drift []RecordDrift
	for _, team := range teams {
		var derivedWins, derivedLosses int64
		if record, ok := derived[team.TeamID]; ok {
			derivedWins = record.Wins()
			derivedLosses = record.Losses()
		}
		if derivedWins == team.Wins && derivedLosses == team.Losses {
			continue
		}
		drift = append(drift, RecordDrift{
			TeamID:        team.TeamID,
			TeamName:      team.TeamName,
			StoredWins:    team.Wins,
			StoredLosses:  team.Losses,
			DerivedWins:   derivedWins,
			DerivedLosses: derivedLosses,
		})
	}

	sort.Slice(drift, func(i, j int) bool {
		return drift[i].TeamID < drift[j].TeamID
	})
	return drift
}
