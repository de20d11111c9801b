package leagues

import "errors"

var ErrRecordMismatch = errors.New("team record does not belong to game")

// GameState is the part of a game that drives team records. A nil score is
// an undefined score.
type GameState struct {
	Status    string
	HomeScore *int64
	AwayScore *int64
}

// Outcome returns the result implied by the scores, or OutcomeNone when
// either score is undefined.
func (s GameState) Outcome() Outcome {
	if s.HomeScore == nil || s.AwayScore == nil {
		return OutcomeNone
	}
	return OutcomeFromScores(*s.HomeScore, *s.AwayScore)
}

func (s GameState) scoresDefined() bool {
	return s.HomeScore != nil && s.AwayScore != nil
}

// Reconciliation describes what Reconcile did to the two team records.
type Reconciliation struct {
	// Reversed is the stale result that was undone.
	Reversed Outcome
	// Applied is the new result that was recorded.
	Applied Outcome
	// ReversalRan and ApplyRan report whether each step fired, including
	// steps that ran on a tie and therefore changed nothing.
	ReversalRan bool
	ApplyRan    bool
	// RetainedResult is set when a completed game left the completed status
	// and its earlier result stays on both teams' records.
	RetainedResult bool
}

// Changed reports whether either record was mutated.
func (r Reconciliation) Changed() bool {
	return r.Reversed != OutcomeNone || r.Applied != OutcomeNone
}

// Reconcile brings home and away records in line with a game update from prev
// to next. When the game stays completed and its scores change, the previous
// result is reversed before the new one is applied. A game moving among
// non-completed statuses never touches the records, and leaving the completed
// status does not reverse the earlier result.
func Reconcile(prev, next GameState, home, away *TeamRecord) Reconciliation {
	var rec Reconciliation

	wasCompleted := prev.Status == StatusCompleted
	nowCompleted := next.Status == StatusCompleted
	scoresChanged := !sameScore(prev.HomeScore, next.HomeScore) || !sameScore(prev.AwayScore, next.AwayScore)

	if !nowCompleted || !next.scoresDefined() {
		rec.RetainedResult = wasCompleted && !nowCompleted && prev.Outcome() != OutcomeNone
		return rec
	}

	if wasCompleted && scoresChanged && prev.scoresDefined() {
		rec.ReversalRan = true
		rec.Reversed = prev.Outcome()
		reverseOutcome(rec.Reversed, home, away)
	}

	if !wasCompleted || scoresChanged {
		rec.ApplyRan = true
		rec.Applied = next.Outcome()
		applyOutcome(rec.Applied, home, away)
	}

	return rec
}

func applyOutcome(outcome Outcome, home, away *TeamRecord) {
	switch outcome {
	case OutcomeHomeWin:
		home.ApplyResult(ResultWin)
		away.ApplyResult(ResultLoss)
	case OutcomeAwayWin:
		away.ApplyResult(ResultWin)
		home.ApplyResult(ResultLoss)
	}
}

func reverseOutcome(outcome Outcome, home, away *TeamRecord) {
	switch outcome {
	case OutcomeHomeWin:
		home.ReverseResult(ResultWin)
		away.ReverseResult(ResultLoss)
	case OutcomeAwayWin:
		away.ReverseResult(ResultWin)
		home.ReverseResult(ResultLoss)
	}
}

func sameScore(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// CheckRecords verifies that the two records belong to the game's teams.
func CheckRecords(homeTeamID, awayTeamID int64, home, away *TeamRecord) error {
	if home == nil || away == nil {
		return ErrRecordMismatch
	}
	if home.TeamID() != homeTeamID || away.TeamID() != awayTeamID {
		return ErrRecordMismatch
	}
	return nil
}
