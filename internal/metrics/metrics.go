// Package metrics counts what a report run did and can dump the counters in
// the node_exporter textfile format.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"stackstats/internal/stats"
)

// Run holds the metrics of a single report run on its own registry.
type Run struct {
	registry *prometheus.Registry

	FetchAttempts prometheus.Counter
	FetchFailures *prometheus.CounterVec
	ReportRows    prometheus.Gauge
	Duration      prometheus.Gauge
}

func New() *Run {
	r := &Run{
		registry: prometheus.NewRegistry(),
		FetchAttempts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stackstats_fetch_attempts_total",
			Help: "Total number of contribution lookups attempted",
		}),
		FetchFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stackstats_fetch_failures_total",
			Help: "Total number of failed contribution lookups",
		}, []string{"severity"}),
		ReportRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "stackstats_report_rows",
			Help: "Number of data rows in the last report",
		}),
		Duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "stackstats_run_duration_seconds",
			Help: "Wall time of the last run",
		}),
	}
	r.registry.MustRegister(r.FetchAttempts, r.FetchFailures, r.ReportRows, r.Duration)
	return r
}

func (r *Run) Attempt() {
	r.FetchAttempts.Inc()
}

func (r *Run) Failure(s stats.Severity) {
	r.FetchFailures.WithLabelValues(s.String()).Inc()
}

// Observe records the outcome of a finished run.
func (r *Run) Observe(rows int, elapsed time.Duration) {
	r.ReportRows.Set(float64(rows))
	r.Duration.Set(elapsed.Seconds())
}

// WriteTextfile writes the registry to path atomically.
func (r *Run) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
