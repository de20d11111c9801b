package testutil

import (
	"path/filepath"
	"testing"

	"github.com/codr1/CopticLeague/internal/db"
)

// NewTestDB opens a migrated league database in the test's temp dir and
// closes it when the test ends.
func NewTestDB(t *testing.T) *db.DB {
	t.Helper()

	database, err := db.New(filepath.Join(t.TempDir(), "league.db"))
	if err != nil {
		t.Fatalf("open league test db: %v", err)
	}
	t.Cleanup(func() {
		if err := database.Close(); err != nil {
			t.Logf("close league test db: %v", err)
		}
	})

	return database
}
