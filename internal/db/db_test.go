package db

import "testing"

func TestPrepareDSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"league.db", "league.db?_fk=1&_txlock=immediate"},
		{"league.db?cache=shared", "league.db?cache=shared&_fk=1&_txlock=immediate"},
		{"league.db?_fk=0", "league.db?_fk=0&_txlock=immediate"},
		{"league.db?_txlock=deferred&_fk=1", "league.db?_txlock=deferred&_fk=1"},
	}
	for _, tt := range tests {
		if got := prepareDSN(tt.in); got != tt.want {
			t.Errorf("prepareDSN(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
