package stats

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Progress receives one tick per attempted combination.
type Progress interface {
	Start(total int)
	Increment()
	Finish()
}

// Recorder counts lookups for the run metrics.
type Recorder interface {
	Attempt()
	Failure(s Severity)
}

// Collector runs the lookups for a FilterSet one at a time and builds the
// report table.
type Collector struct {
	Fetcher  Fetcher
	Window   Window
	Logger   *zap.Logger
	Progress Progress
	Recorder Recorder
}

// Collect fetches every combination in order. Recoverable failures are logged
// and skipped; the first fatal failure is returned.
func (c *Collector) Collect(ctx context.Context, filters FilterSet) (Table, error) {
	log := c.Logger
	if log == nil {
		log = zap.NewNop()
	}
	progress := c.Progress
	if progress == nil {
		progress = nopProgress{}
	}
	recorder := c.Recorder
	if recorder == nil {
		recorder = nopRecorder{}
	}

	var b Builder
	progress.Start(filters.Total())
	for comb := range filters.Combinations() {
		b.Observe(comb)

		params := filters.Params(comb, c.Window)
		log.Debug("fetching contribution",
			zap.String("release", params.Release),
			zap.String("module", params.Module),
			zap.String("company", params.Company),
		)

		recorder.Attempt()
		contribution, err := c.Fetcher.Fetch(ctx, comb, params)
		if err != nil {
			var fe *FetchError
			if !errors.As(err, &fe) {
				return nil, fmt.Errorf("fetching contribution: %w", err)
			}
			recorder.Failure(fe.Severity)
			switch fe.Severity {
			case Recoverable:
				log.Warn("couldn't retrieve data",
					zap.String("release", comb.Release),
					zap.String("module", comb.Module),
					zap.String("company", comb.Company),
					zap.Error(fe.Err),
				)
			case Fatal:
				return nil, fe
			default:
				return nil, fmt.Errorf("unknown severity %s: %w", fe.Severity, fe)
			}
		} else {
			b.Append(comb, contribution.Cells())
		}
		progress.Increment()
	}
	progress.Finish()

	return b.Finish(), nil
}

type nopProgress struct{}

func (nopProgress) Start(int)  {}
func (nopProgress) Increment() {}
func (nopProgress) Finish()    {}

type nopRecorder struct{}

func (nopRecorder) Attempt()         {}
func (nopRecorder) Failure(Severity) {}
