package leagues

import (
	"sort"
)

// TeamStanding is one row of a league table.
type TeamStanding struct {
	Rank          int     `json:"rank"`
	TeamID        int64   `json:"teamId"`
	Team          string  `json:"team"`
	Wins          int64   `json:"wins"`
	Losses        int64   `json:"losses"`
	WinPercentage float64 `json:"winPercentage"`
	GamesPlayed   int64   `json:"gamesPlayed"`
}

// StandingsInput is the stored record of one team.
type StandingsInput struct {
	TeamID   int64
	TeamName string
	Wins     int64
	Losses   int64
}

// CalculateStandings ranks teams by wins descending, then losses ascending,
// then name ascending. Ranks are 1-based positions and are never shared.
// The input slice is not modified.
func CalculateStandings(teams []StandingsInput) []TeamStanding {
	ordered := make([]StandingsInput, len(teams))
	copy(ordered, teams)

	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Wins != ordered[j].Wins {
			return ordered[i].Wins > ordered[j].Wins
		}
		if ordered[i].Losses != ordered[j].Losses {
			return ordered[i].Losses < ordered[j].Losses
		}
		return ordered[i].TeamName < ordered[j].TeamName
	})

	standings := make([]TeamStanding, 0, len(ordered))
	for idx, team := range ordered {
		standings = append(standings, TeamStanding{
			Rank:          idx + 1,
			TeamID:        team.TeamID,
			Team:          team.TeamName,
			Wins:          team.Wins,
			Losses:        team.Losses,
			WinPercentage: WinPercentage(team.Wins, team.Losses),
			GamesPlayed:   team.Wins + team.Losses,
		})
	}
	return standings
}
