package testutil

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/codr1/CopticLeague/internal/api/authz"
	"github.com/codr1/CopticLeague/internal/db"
	dbgen "github.com/codr1/CopticLeague/internal/db/generated"
)

// SeedUser inserts a user with a placeholder password hash.
func SeedUser(t *testing.T, database *db.DB, email string, role authz.Role) dbgen.User {
	t.Helper()

	user, err := database.Queries.CreateUser(context.Background(), dbgen.CreateUserParams{
		Email:        email,
		PasswordHash: "not-a-real-hash",
		FirstName:    "Test",
		LastName:     fmt.Sprintf("User %s", role),
		Role:         string(role),
	})
	if err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return user
}

// SeedLeague inserts an open Mens league whose registration closes at
// deadline. The season starts two weeks after the deadline and runs three
// months.
func SeedLeague(t *testing.T, database *db.DB, name string, deadline time.Time) dbgen.League {
	t.Helper()

	start := deadline.UTC().AddDate(0, 0, 14)
	league, err := database.Queries.CreateLeague(context.Background(), dbgen.CreateLeagueParams{
		Name:                 name,
		Division:             "Mens",
		Season:               "Fall 2025",
		StartDate:            start,
		EndDate:              start.AddDate(0, 3, 0),
		RegistrationDeadline: deadline.UTC(),
		MaxTeams:             12,
		RegistrationFeeCents: 7500,
		Status:               "open",
		IsActive:             true,
	})
	if err != nil {
		t.Fatalf("seed league %s: %v", name, err)
	}
	return league
}

// SeedTeam inserts an active team with the default roster capacity.
func SeedTeam(t *testing.T, database *db.DB, leagueID, coachID int64, name string) dbgen.Team {
	t.Helper()

	team, err := database.Queries.CreateTeam(context.Background(), dbgen.CreateTeamParams{
		Name:       name,
		LeagueID:   leagueID,
		CoachID:    coachID,
		MaxPlayers: 15,
		IsActive:   true,
	})
	if err != nil {
		t.Fatalf("seed team %s: %v", name, err)
	}
	return team
}

// WithUser returns r carrying an authenticated user in its context.
func WithUser(r *http.Request, userID int64, role authz.Role) *http.Request {
	return r.WithContext(authz.ContextWithUser(r.Context(), &authz.AuthUser{ID: userID, Role: role}))
}
