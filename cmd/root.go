package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	naturaldate "github.com/tj/go-naturaldate"
	"go.uber.org/zap"

	"stackstats/internal/config"
	"stackstats/internal/logger"
	"stackstats/internal/metrics"
	"stackstats/internal/progress"
	"stackstats/internal/report"
	"stackstats/internal/stats"
)

const progressLabel = "Retrieve Stackalytics data"

// NewRootCmd builds the stackstats command.
func NewRootCmd() *cobra.Command {
	var (
		configPath string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:           "stackstats",
		Short:         "Stackalytics data retriever",
		Long:          "Query Stackalytics contribution statistics for every release, module and company combination and write them as a CSV grid.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load .env file without overriding existing env vars.
			// Precedence: flags > real env vars > .env file values > config file.
			_ = godotenv.Load()

			cfg, err := config.Load(configPath, cmd.Flags())
			if err != nil {
				return err
			}
			if verbose {
				cfg.LogLevel = "debug"
			}
			return run(cmd.Context(), cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	f := cmd.Flags()
	f.StringVar(&configPath, "config", "", "config file (default ./stackstats.yaml if present)")
	f.StringP("project", "p", "", `project name (default "openstack")`)
	f.StringP("releases", "r", "", "comma separated OpenStack release names")
	f.StringP("modules", "m", "", "comma separated OpenStack module names")
	f.BoolP("coremodules", "C", false, "get OpenStack core (mature) modules")
	f.BoolP("extramodules", "E", false, "get some less mature OpenStack modules")
	f.StringP("companies", "c", "", "comma separated company names")
	f.StringP("output", "o", "", "output file name (defaults to stdout)")
	f.String("format", "", `output format, "csv" or "table" (default "csv")`)
	f.String("base-url", "", "contribution API endpoint")
	f.Duration("timeout", 0, "per-request timeout (default 30s)")
	f.Float64("rate", 0, "maximum requests per second, 0 for unlimited")
	f.String("since", "", `start date inclusive, e.g. "2017-02-22", "6 months ago"`)
	f.String("until", "", `end date inclusive, e.g. "2017-08-30", "yesterday"`)
	f.String("metrics-file", "", "write run metrics in Prometheus textfile format to this path")
	f.String("log-level", "", `log level (default "info")`)
	f.BoolP("quiet", "q", false, "disable progress output")
	f.BoolVarP(&verbose, "verbose", "v", false, "log every request")
	cmd.MarkFlagsMutuallyExclusive("modules", "coremodules", "extramodules")

	return cmd
}

// Execute runs the root command.
func Execute() error {
	cmd := NewRootCmd()
	err := cmd.Execute()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
	}
	return err
}

func run(ctx context.Context, cfg *config.Config, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	window, err := parseWindow(cfg.Since, cfg.Until, time.Now())
	if err != nil {
		return err
	}

	filters, err := cfg.FilterSet()
	if err != nil {
		return err
	}

	log, err := logger.New(stderr, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	var bar stats.Progress = progress.Nop{}
	if !cfg.Quiet {
		bar = progress.NewBar(stderr, progressLabel)
	}

	runMetrics := metrics.New()
	collector := &stats.Collector{
		Fetcher:  stats.NewClient(cfg.BaseURL, stats.WithTimeout(cfg.Timeout), stats.WithRate(cfg.Rate)),
		Window:   window,
		Logger:   log,
		Progress: bar,
		Recorder: runMetrics,
	}

	log.Debug("starting run",
		zap.String("project", filters.Project),
		zap.Int("combinations", filters.Total()),
	)

	started := time.Now()
	table, err := collector.Collect(ctx, filters)
	runMetrics.Observe(len(table), time.Since(started))
	if cfg.MetricsFile != "" {
		if merr := runMetrics.WriteTextfile(cfg.MetricsFile); merr != nil {
			log.Warn("couldn't write metrics", zap.Error(merr))
		}
	}
	if err != nil {
		return err
	}

	log.Info("writing output file", zap.String("output", outputName(cfg.Output)), zap.Int("rows", len(table)))
	return report.WriteTo(cfg.Output, stdout, func(w io.Writer) error {
		return report.Write(w, format, table, filters.Companies)
	})
}

func outputName(path string) string {
	if path == "" {
		return "stdout"
	}
	return path
}

const dateFormat = "2006-01-02"

// parseWindow resolves the --since and --until values into a date window.
//
// Both accept either an exact date (YYYY-MM-DD) or a natural language
// expression such as "yesterday", "6 months ago", or "last monday". Exact
// dates are tried first; if parsing fails, the input is interpreted relative
// to now.
//
// Both boundaries are inclusive:
//   - since is normalized to the start of the resolved day (00:00:00).
//   - until is normalized to the end of the resolved day (23:59:59).
//
// An empty value leaves that side of the window open.
func parseWindow(sinceStr, untilStr string, now time.Time) (stats.Window, error) {
	var w stats.Window

	if sinceStr != "" {
		t, err := parseDate(sinceStr, now)
		if err != nil {
			return stats.Window{}, fmt.Errorf("invalid --since value %q: %w", sinceStr, err)
		}
		w.Since = startOfDay(t)
	}

	if untilStr != "" {
		t, err := parseDate(untilStr, now)
		if err != nil {
			return stats.Window{}, fmt.Errorf("invalid --until value %q: %w", untilStr, err)
		}
		w.Until = endOfDay(t)
	}

	if !w.Since.IsZero() && !w.Until.IsZero() && w.Since.After(w.Until) {
		return stats.Window{}, fmt.Errorf("--since (%s) must be before --until (%s)",
			w.Since.Format(dateFormat), w.Until.Format(dateFormat))
	}

	return w, nil
}

// parseDate tries YYYY-MM-DD first, then falls back to natural language parsing
// via go-naturaldate. The ref time is used as the reference point for relative
// expressions (e.g. "2 weeks ago" is relative to ref).
func parseDate(s string, ref time.Time) (time.Time, error) {
	if t, err := time.ParseInLocation(dateFormat, s, ref.Location()); err == nil {
		return t, nil
	}
	return naturaldate.Parse(s, ref)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
