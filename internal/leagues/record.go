package leagues

import "math"

// Game statuses.
const (
	StatusScheduled  = "scheduled"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusPostponed  = "postponed"
	StatusCancelled  = "cancelled"
)

// GameStatusAllowed reports whether status is a known game status.
func GameStatusAllowed(status string) bool {
	switch status {
	case StatusScheduled, StatusInProgress, StatusCompleted, StatusPostponed, StatusCancelled:
		return true
	default:
		return false
	}
}

// Result is a single team's result in one game.
type Result int

const (
	ResultWin Result = iota + 1
	ResultLoss
)

// Outcome is the result of a game from the home team's point of view.
type Outcome int

const (
	// OutcomeNone covers ties and games without a recorded result.
	OutcomeNone Outcome = iota
	OutcomeHomeWin
	OutcomeAwayWin
)

func (o Outcome) String() string {
	switch o {
	case OutcomeHomeWin:
		return "home_win"
	case OutcomeAwayWin:
		return "away_win"
	default:
		return "none"
	}
}

// OutcomeFromScores compares the two scores. Equal scores produce OutcomeNone.
func OutcomeFromScores(homeScore, awayScore int64) Outcome {
	switch {
	case homeScore > awayScore:
		return OutcomeHomeWin
	case awayScore > homeScore:
		return OutcomeAwayWin
	default:
		return OutcomeNone
	}
}

// TeamRecord holds the derived win/loss counters of a team. The counters have
// no setters; they move only through ApplyResult and ReverseResult.
type TeamRecord struct {
	teamID int64
	wins   int64
	losses int64
}

// NewTeamRecord loads persisted counters. Negative values are clamped to zero.
func NewTeamRecord(teamID, wins, losses int64) *TeamRecord {
	return &TeamRecord{
		teamID: teamID,
		wins:   max(wins, 0),
		losses: max(losses, 0),
	}
}

func (r *TeamRecord) TeamID() int64 { return r.teamID }
func (r *TeamRecord) Wins() int64   { return r.wins }
func (r *TeamRecord) Losses() int64 { return r.losses }

// GamesPlayed counts decided games only; ties are not recorded.
func (r *TeamRecord) GamesPlayed() int64 { return r.wins + r.losses }

// WinPercentage returns wins / (wins + losses) * 100 rounded to one decimal,
// or 0 when no decided games exist.
func (r *TeamRecord) WinPercentage() float64 {
	return WinPercentage(r.wins, r.losses)
}

// ApplyResult records one win or loss.
func (r *TeamRecord) ApplyResult(result Result) {
	switch result {
	case ResultWin:
		r.wins++
	case ResultLoss:
		r.losses++
	}
}

// ReverseResult removes one win or loss, never going below zero.
func (r *TeamRecord) ReverseResult(result Result) {
	switch result {
	case ResultWin:
		r.wins = max(r.wins-1, 0)
	case ResultLoss:
		r.losses = max(r.losses-1, 0)
	}
}

// WinPercentage is the percentage of decided games won, rounded to one decimal.
func WinPercentage(wins, losses int64) float64 {
	total := wins + losses
	if total <= 0 {
		return 0
	}
	return math.Round(float64(wins)/float64(total)*1000) / 10
}
