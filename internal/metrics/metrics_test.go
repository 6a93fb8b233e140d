package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stackstats/internal/stats"
)

func TestRun_Counters(t *testing.T) {
	r := New()
	r.Attempt()
	r.Attempt()
	r.Attempt()
	r.Failure(stats.Recoverable)
	r.Failure(stats.Recoverable)
	r.Failure(stats.Fatal)

	assert.InDelta(t, 3, testutil.ToFloat64(r.FetchAttempts), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(r.FetchFailures.WithLabelValues("recoverable")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(r.FetchFailures.WithLabelValues("fatal")), 0)
}

func TestRun_WriteTextfile(t *testing.T) {
	r := New()
	r.Attempt()
	r.Observe(4, 1500*time.Millisecond)

	path := filepath.Join(t.TempDir(), "stackstats.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "stackstats_fetch_attempts_total 1")
	assert.Contains(t, out, "stackstats_report_rows 4")
	assert.Contains(t, out, "stackstats_run_duration_seconds 1.5")
}

func TestRun_WriteTextfile_BadPath(t *testing.T) {
	err := New().WriteTextfile(filepath.Join(t.TempDir(), "nope", "x.prom"))
	assert.Error(t, err)
}
