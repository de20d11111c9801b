package leagues

import "testing"

func score(v int64) *int64 {
	return &v
}

func completed(home, away int64) GameState {
	return GameState{Status: StatusCompleted, HomeScore: score(home), AwayScore: score(away)}
}

func assertRecord(t *testing.T, label string, record *TeamRecord, wins, losses int64) {
	t.Helper()
	if record.Wins() != wins || record.Losses() != losses {
		t.Fatalf("%s: expected %d-%d, got %d-%d", label, wins, losses, record.Wins(), record.Losses())
	}
}

func TestReconcileUnchangedCompletedGameIsNoop(t *testing.T) {
	home := NewTeamRecord(1, 3, 1)
	away := NewTeamRecord(2, 1, 3)

	rec := Reconcile(completed(10, 8), completed(10, 8), home, away)

	if rec.ReversalRan || rec.ApplyRan || rec.Changed() {
		t.Fatalf("expected no reconciliation, got %+v", rec)
	}
	assertRecord(t, "home", home, 3, 1)
	assertRecord(t, "away", away, 1, 3)
}

func TestReconcileFirstCompletionAppliesOnce(t *testing.T) {
	home := NewTeamRecord(1, 0, 0)
	away := NewTeamRecord(2, 0, 0)

	prev := GameState{Status: StatusScheduled}
	rec := Reconcile(prev, completed(21, 15), home, away)

	if rec.ReversalRan {
		t.Fatal("expected no reversal on first completion")
	}
	if rec.Applied != OutcomeHomeWin {
		t.Fatalf("expected home win applied, got %s", rec.Applied)
	}
	assertRecord(t, "home", home, 1, 0)
	assertRecord(t, "away", away, 0, 1)
}

func TestReconcileFirstCompletionFromDefaultScores(t *testing.T) {
	home := NewTeamRecord(1, 0, 0)
	away := NewTeamRecord(2, 0, 0)

	prev := GameState{Status: StatusInProgress, HomeScore: score(0), AwayScore: score(0)}
	Reconcile(prev, completed(3, 7), home, away)

	assertRecord(t, "home", home, 0, 1)
	assertRecord(t, "away", away, 1, 0)
}

func TestReconcileScoreCorrectionFlipsResult(t *testing.T) {
	home := NewTeamRecord(1, 5, 2)
	away := NewTeamRecord(2, 3, 4)

	rec := Reconcile(completed(20, 18), completed(18, 20), home, away)

	if rec.Reversed != OutcomeHomeWin || rec.Applied != OutcomeAwayWin {
		t.Fatalf("expected home win reversed and away win applied, got %+v", rec)
	}
	assertRecord(t, "home", home, 4, 3)
	assertRecord(t, "away", away, 4, 3)
}

func TestReconcileRepeatedCorrectionsStayConsistent(t *testing.T) {
	home := NewTeamRecord(1, 0, 0)
	away := NewTeamRecord(2, 0, 0)

	Reconcile(GameState{Status: StatusScheduled}, completed(10, 5), home, away)
	Reconcile(completed(10, 5), completed(10, 12), home, away)
	Reconcile(completed(10, 12), completed(14, 12), home, away)

	assertRecord(t, "home", home, 1, 0)
	assertRecord(t, "away", away, 0, 1)
}

func TestReconcileReversalFloorsAtZero(t *testing.T) {
	home := NewTeamRecord(1, 0, 0)
	away := NewTeamRecord(2, 0, 0)

	Reconcile(completed(20, 18), completed(20, 25), home, away)

	// The reversal finds nothing to remove; only the new away win lands.
	assertRecord(t, "home", home, 0, 1)
	assertRecord(t, "away", away, 1, 0)
}

func TestReconcileTieChangesNothing(t *testing.T) {
	home := NewTeamRecord(1, 2, 2)
	away := NewTeamRecord(2, 2, 2)

	rec := Reconcile(GameState{Status: StatusScheduled}, completed(10, 10), home, away)

	if !rec.ApplyRan {
		t.Fatal("expected apply step to run")
	}
	if rec.Changed() {
		t.Fatalf("expected tie to leave records unchanged, got %+v", rec)
	}
	assertRecord(t, "home", home, 2, 2)
	assertRecord(t, "away", away, 2, 2)
}

func TestReconcileCorrectionFromTieOnlyApplies(t *testing.T) {
	home := NewTeamRecord(1, 1, 1)
	away := NewTeamRecord(2, 1, 1)

	rec := Reconcile(completed(7, 7), completed(9, 7), home, away)

	if !rec.ReversalRan || rec.Reversed != OutcomeNone {
		t.Fatalf("expected reversal of a tie to be a no-op, got %+v", rec)
	}
	assertRecord(t, "home", home, 2, 1)
	assertRecord(t, "away", away, 1, 2)
}

func TestReconcileNonCompletedTransitionsHaveNoEffect(t *testing.T) {
	home := NewTeamRecord(1, 4, 4)
	away := NewTeamRecord(2, 4, 4)

	transitions := []struct {
		from GameState
		to   GameState
	}{
		{GameState{Status: StatusScheduled}, GameState{Status: StatusInProgress, HomeScore: score(3), AwayScore: score(1)}},
		{GameState{Status: StatusInProgress}, GameState{Status: StatusPostponed}},
		{GameState{Status: StatusPostponed}, GameState{Status: StatusCancelled}},
		{GameState{Status: StatusScheduled}, GameState{Status: StatusCompleted}},
	}
	for _, tt := range transitions {
		rec := Reconcile(tt.from, tt.to, home, away)
		if rec.Changed() || rec.ApplyRan || rec.ReversalRan {
			t.Fatalf("transition %s -> %s: expected no effect, got %+v", tt.from.Status, tt.to.Status, rec)
		}
	}
	assertRecord(t, "home", home, 4, 4)
	assertRecord(t, "away", away, 4, 4)
}

func TestReconcileUncompletingRetainsResult(t *testing.T) {
	home := NewTeamRecord(1, 1, 0)
	away := NewTeamRecord(2, 0, 1)

	next := GameState{Status: StatusScheduled, HomeScore: score(21), AwayScore: score(15)}
	rec := Reconcile(completed(21, 15), next, home, away)

	if !rec.RetainedResult {
		t.Fatal("expected retained result to be reported")
	}
	assertRecord(t, "home", home, 1, 0)
	assertRecord(t, "away", away, 0, 1)

	// Completing again with the same score counts the game a second time.
	Reconcile(next, completed(21, 15), home, away)
	assertRecord(t, "home", home, 2, 0)
	assertRecord(t, "away", away, 0, 2)
}

func TestCheckRecords(t *testing.T) {
	home := NewTeamRecord(1, 0, 0)
	away := NewTeamRecord(2, 0, 0)
	if err := CheckRecords(1, 2, home, away); err != nil {
		t.Fatalf("expected records to match, got %v", err)
	}
	if err := CheckRecords(2, 1, home, away); err == nil {
		t.Fatal("expected mismatch error for swapped records")
	}
	if err := CheckRecords(1, 2, home, nil); err == nil {
		t.Fatal("expected mismatch error for missing record")
	}
}
