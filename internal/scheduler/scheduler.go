// Package scheduler runs the league's background jobs on a process-wide
// gocron scheduler.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/codr1/CopticLeague/internal/config"
	"github.com/codr1/CopticLeague/internal/db"
	"github.com/codr1/CopticLeague/internal/metrics"
)

var (
	service     *Service
	serviceOnce sync.Once
	serviceErr  error
)

var (
	ErrNotInitialized = errors.New("scheduler not initialized")
	ErrEmptyJobName   = errors.New("job name is required")
	ErrEmptyCronExpr  = errors.New("cron expression is required")
	ErrNoTask         = errors.New("job task is required")
)

const defaultJobTimeout = time.Minute

// Task is one run of a job. ctx carries the job's logger and deadline.
type Task func(ctx context.Context) error

// Job describes a cron-scheduled task. Runs of the same job never overlap;
// Mode picks whether a run due while the previous one is still going waits
// or is dropped until the next tick.
type Job struct {
	Name    string
	Cron    string
	Timeout time.Duration
	Mode    gocron.LimitMode
	Task    Task
}

// Service wraps a gocron scheduler for app-wide scheduling.
type Service struct {
	scheduler gocron.Scheduler
	stopOnce  sync.Once
	stopErr   error
}

// Init initializes the scheduler singleton.
func Init() error {
	serviceOnce.Do(func() {
		sched, err := gocron.NewScheduler(
			gocron.WithGlobalJobOptions(
				gocron.WithEventListeners(
					gocron.AfterJobRunsWithPanic(func(jobID uuid.UUID, jobName string, recoverData any) {
						log.Error().
							Str("job_id", jobID.String()).
							Str("job_name", jobName).
							Interface("panic", recoverData).
							Msg("Scheduler job panicked")
					}),
				),
			),
		)
		if err != nil {
			serviceErr = err
			return
		}
		service = &Service{scheduler: sched}
		log.Info().Msg("Scheduler initialized")
	})
	return serviceErr
}

// ServiceInstance returns the initialized scheduler singleton.
func ServiceInstance() (*Service, error) {
	if service == nil && serviceErr == nil {
		return nil, ErrNotInitialized
	}
	return service, serviceErr
}

// RegisterJobs schedules the record audit and registration close jobs from
// the configured cron expressions.
func RegisterJobs(database *db.DB, jobs config.JobsConfig, clk clockwork.Clock) error {
	if err := RegisterRecordAuditJob(database, jobs.RecordAudit); err != nil {
		return err
	}
	return RegisterRegistrationCloseJob(database, jobs.RegistrationClose, clk)
}

// Start begins running scheduled jobs on the singleton scheduler.
func Start() error {
	svc, err := ServiceInstance()
	if err != nil {
		return err
	}
	svc.Start()
	return nil
}

// Stop shuts down the singleton scheduler.
func Stop() error {
	svc, err := ServiceInstance()
	if err != nil {
		return err
	}
	return svc.Stop()
}

// AddJob registers job with the singleton scheduler.
func AddJob(job Job) (gocron.Job, error) {
	svc, err := ServiceInstance()
	if err != nil {
		return nil, err
	}
	return svc.AddJob(job)
}

// Start begins running scheduled jobs.
func (s *Service) Start() {
	if s == nil {
		log.Error().Msg("Scheduler start requested before initialization")
		return
	}
	log.Info().Msg("Scheduler starting")
	s.scheduler.Start()
}

// Stop shuts down the scheduler and waits for running jobs to return.
func (s *Service) Stop() error {
	if s == nil {
		return ErrNotInitialized
	}
	s.stopOnce.Do(func() {
		log.Info().Msg("Scheduler stopping")
		s.stopErr = s.scheduler.Shutdown()
	})
	return s.stopErr
}

// AddJob registers job with the scheduler.
func (s *Service) AddJob(job Job) (gocron.Job, error) {
	if s == nil {
		return nil, ErrNotInitialized
	}
	if strings.TrimSpace(job.Name) == "" {
		return nil, ErrEmptyJobName
	}
	if strings.TrimSpace(job.Cron) == "" {
		return nil, ErrEmptyCronExpr
	}
	if job.Task == nil {
		return nil, ErrNoTask
	}
	if job.Timeout <= 0 {
		job.Timeout = defaultJobTimeout
	}
	if job.Mode == 0 {
		job.Mode = gocron.LimitModeReschedule
	}

	jobLogger := log.With().Str("job_name", job.Name).Str("cron", job.Cron).Logger()
	jobLogger.Info().Msg("Registering scheduler job")

	run := func() {
		ctx, cancel := context.WithTimeout(context.Background(), job.Timeout)
		defer cancel()
		ctx = jobLogger.WithContext(ctx)

		start := time.Now()
		jobLogger.Debug().Msg("Scheduler job started")
		err := job.Task(ctx)
		metrics.ObserveJobRun(job.Name, time.Since(start), err)
		if err != nil {
			jobLogger.Error().Err(err).Dur("duration", time.Since(start)).Msg("Scheduler job failed")
			return
		}
		jobLogger.Debug().Dur("duration", time.Since(start)).Msg("Scheduler job completed")
	}

	registered, err := s.scheduler.NewJob(
		gocron.CronJob(job.Cron, false),
		gocron.NewTask(run),
		gocron.WithName(job.Name),
		gocron.WithSingletonMode(job.Mode),
	)
	if err != nil {
		jobLogger.Error().Err(err).Msg("Failed to register scheduler job")
		return nil, fmt.Errorf("add %s job: %w", job.Name, err)
	}
	jobLogger.Info().Msg("Scheduler job registered")
	return registered, nil
}
