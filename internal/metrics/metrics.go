// Package metrics holds the Prometheus collectors for the league service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// httpRequests counts served requests.
	// Labels: method, status_class (2xx, 4xx, ...)
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "coptic_league",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by method and status class",
	}, []string{"method", "status_class"})

	// reconciliations counts game updates that ran the reconciliation engine.
	// Labels: reversed, applied (none, home_win, away_win)
	reconciliations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "coptic_league",
		Subsystem: "games",
		Name:      "reconciliations_total",
		Help:      "Win/loss reconciliations by reversed and applied outcome",
	}, []string{"reversed", "applied"})

	retainedResults = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "coptic_league",
		Subsystem: "games",
		Name:      "retained_results_total",
		Help:      "Games moved out of completed while their result stayed counted",
	})

	versionConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "coptic_league",
		Subsystem: "games",
		Name:      "version_conflicts_total",
		Help:      "Game updates rejected because another update won the race",
	})

	registrationsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "coptic_league",
		Subsystem: "registrations",
		Name:      "created_total",
		Help:      "Registrations created by type",
	}, []string{"type"})

	// jobRuns counts scheduled job runs.
	// Labels: job, result (ok, error)
	jobRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "coptic_league",
		Subsystem: "jobs",
		Name:      "runs_total",
		Help:      "Scheduled job runs by job name and result",
	}, []string{"job", "result"})

	jobDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "coptic_league",
		Subsystem: "jobs",
		Name:      "run_duration_seconds",
		Help:      "Scheduled job run time",
		Buckets:   prometheus.DefBuckets,
	}, []string{"job"})

	recordDrift = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "coptic_league",
		Subsystem: "audit",
		Name:      "teams_with_record_drift",
		Help:      "Teams whose stored wins/losses differ from completed games, as of the last audit",
	})
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

func ObserveHTTPRequest(method string, status int) {
	if status == 0 {
		status = http.StatusOK
	}
	httpRequests.WithLabelValues(method, strconv.Itoa(status/100)+"xx").Inc()
}

func ObserveReconciliation(reversed, applied string) {
	reconciliations.WithLabelValues(reversed, applied).Inc()
}

func ObserveRetainedResult() {
	retainedResults.Inc()
}

func ObserveVersionConflict() {
	versionConflicts.Inc()
}

func ObserveRegistrationCreated(registrationType string) {
	registrationsCreated.WithLabelValues(registrationType).Inc()
}

func ObserveJobRun(job string, duration time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	jobRuns.WithLabelValues(job, result).Inc()
	jobDuration.WithLabelValues(job).Observe(duration.Seconds())
}

func SetRecordDrift(teams int) {
	recordDrift.Set(float64(teams))
}
