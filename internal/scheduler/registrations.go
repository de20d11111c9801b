package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/codr1/CopticLeague/internal/db"
	dbgen "github.com/codr1/CopticLeague/internal/db/generated"
	domain "github.com/codr1/CopticLeague/internal/leagues"
)

// CloseRegistrations moves open leagues whose registration deadline and start
// date have both passed to in-progress. It returns the number of leagues moved.
func CloseRegistrations(ctx context.Context, database *db.DB, now time.Time) (int, error) {
	if database == nil {
		return 0, fmt.Errorf("registration close requires database")
	}

	leagues, err := database.Queries.ListLeaguesByStatus(ctx, domain.LeagueStatusOpen)
	if err != nil {
		return 0, fmt.Errorf("list open leagues: %w", err)
	}

	logger := log.Ctx(ctx)
	closed := 0
	for _, league := range leagues {
		if !domain.ShouldCloseRegistration(league.Status, league.RegistrationDeadline, league.StartDate, now) {
			continue
		}
		updated, err := database.Queries.UpdateLeagueStatus(ctx, dbgen.UpdateLeagueStatusParams{
			Status:         domain.LeagueStatusInProgress,
			ID:             league.ID,
			ExpectedStatus: domain.LeagueStatusOpen,
		})
		if err != nil {
			logger.Error().Err(err).Int64("league_id", league.ID).Msg("Failed to close league registration")
			continue
		}
		if updated == 0 {
			// Status changed since the list query.
			continue
		}
		closed++
		logger.Info().
			Int64("league_id", league.ID).
			Str("league_name", league.Name).
			Time("registration_deadline", league.RegistrationDeadline).
			Msg("League registration closed; league in progress")
	}
	return closed, nil
}

// RegisterRegistrationCloseJob schedules CloseRegistrations against clk. A
// run due while the previous one is still going waits for it.
func RegisterRegistrationCloseJob(database *db.DB, cronExpr string, clk clockwork.Clock) error {
	if database == nil {
		return fmt.Errorf("registration close job requires database")
	}
	if clk == nil {
		clk = clockwork.NewRealClock()
	}

	_, err := AddJob(Job{
		Name:    "registration_close",
		Cron:    cronExpr,
		Timeout: time.Minute,
		Mode:    gocron.LimitModeWait,
		Task: func(ctx context.Context) error {
			_, err := CloseRegistrations(ctx, database, clk.Now().UTC())
			return err
		},
	})
	return err
}
