package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"

	leagueapi "github.com/codr1/CopticLeague/internal/api/leagues"
	"github.com/codr1/CopticLeague/internal/db"
	"github.com/codr1/CopticLeague/internal/metrics"
)

// RunRecordAudit compares stored team records against completed games and
// logs every team that drifted. It returns the number of drifted teams.
func RunRecordAudit(ctx context.Context, database *db.DB) (int, error) {
	if database == nil {
		return 0, fmt.Errorf("record audit requires database")
	}

	audit, err := leagueapi.LoadRecordAudit(ctx, database.Queries)
	if err != nil {
		return 0, fmt.Errorf("load record audit: %w", err)
	}
	metrics.SetRecordDrift(len(audit.Drift))

	logger := log.Ctx(ctx)
	for _, drift := range audit.Drift {
		logger.Warn().
			Int64("team_id", drift.TeamID).
			Str("team_name", drift.TeamName).
			Int64("stored_wins", drift.StoredWins).
			Int64("stored_losses", drift.StoredLosses).
			Int64("derived_wins", drift.DerivedWins).
			Int64("derived_losses", drift.DerivedLosses).
			Msg("Team record differs from completed games")
	}
	logger.Info().
		Int("teams_checked", audit.Teams).
		Int("games_completed", audit.Games).
		Int("teams_with_drift", len(audit.Drift)).
		Msg("Record audit finished")
	return len(audit.Drift), nil
}

// RegisterRecordAuditJob schedules RunRecordAudit. A run still going when the
// next one is due skips that tick.
func RegisterRecordAuditJob(database *db.DB, cronExpr string) error {
	if database == nil {
		return fmt.Errorf("record audit job requires database")
	}

	_, err := AddJob(Job{
		Name:    "record_audit",
		Cron:    cronExpr,
		Timeout: 2 * time.Minute,
		Mode:    gocron.LimitModeReschedule,
		Task: func(ctx context.Context) error {
			_, err := RunRecordAudit(ctx, database)
			return err
		},
	})
	return err
}
