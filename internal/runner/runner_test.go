package runner

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creator-store-check/internal/compare"
	"creator-store-check/internal/history"
	"creator-store-check/internal/model"
	"creator-store-check/internal/storetest"
)

func init() {
	color.NoColor = true
}

func fixedClock(start time.Time) func() time.Time {
	t := start
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func TestRun_WritesReportsAndHistory(t *testing.T) {
	cfg := storetest.Complete(t)
	cfg.OutDir = filepath.Join(t.TempDir(), "out")

	r := New(cfg, nil)
	r.now = fixedClock(time.Unix(1700000000, 0))

	var console bytes.Buffer
	res, err := r.Run(context.Background(), Options{Markdown: true, CSV: true, Console: &console})
	require.NoError(t, err)

	assert.True(t, res.Report.AllPassed())
	assert.Equal(t, filepath.Join(cfg.OutDir, "test_results_1700000001.json"), res.JSONPath)
	assert.FileExists(t, res.JSONPath)
	assert.FileExists(t, res.MDPath)
	assert.FileExists(t, filepath.Join(res.CSVDir, "checks.csv"))
	assert.Equal(t, "FIRST_RUN", res.Trend.Label)
	assert.Same(t, res, r.Latest())

	out := console.String()
	assert.Contains(t, out, "Tests Passed: 6/6")
	assert.Contains(t, out, "STATUS: READY FOR DEPLOYMENT")
	assert.Contains(t, out, "Detailed results saved: "+res.JSONPath)

	loaded, err := compare.LoadReport(res.JSONPath)
	require.NoError(t, err)
	assert.Equal(t, res.Report.TestResults, loaded.TestResults)

	idx, err := history.Load(cfg.HistoryDir())
	require.NoError(t, err)
	require.Len(t, idx.Entries, 1)
	assert.Equal(t, 6, idx.Entries[0].Passed)
}

func TestRun_CompareAndTrend(t *testing.T) {
	cfg := storetest.Complete(t)
	r := New(cfg, nil)
	r.now = fixedClock(time.Unix(1700000000, 0))

	first, err := r.Run(context.Background(), Options{})
	require.NoError(t, err)

	require.NoError(t, os.Remove(cfg.StorePath("deploy-to-domain.md")))
	second, err := r.Run(context.Background(), Options{Compare: first.JSONPath})
	require.NoError(t, err)

	assert.False(t, second.Report.AllPassed())
	assert.Equal(t, "DECLINING", second.Trend.Label)
	assert.Equal(t, -2, second.Trend.Delta)

	require.NotNil(t, second.Report.Comparison)
	assert.Equal(t, []string{"Deployment Readiness", "Store Infrastructure"}, second.Report.Comparison.NewlyFailing)
	assert.Equal(t, first.Report.RunID, second.Report.Comparison.PreviousRunID)

	ci := CISummary(second, time.Unix(1700000100, 0))
	assert.Equal(t, "FAILED", ci.Status)
	assert.Equal(t, "DECLINING", ci.Trend)
	assert.Equal(t, 4, ci.Passed)
	assert.Equal(t, model.VerdictNeedsWork, ci.Verdict)
}

func TestRun_MissingCompareIsSkipped(t *testing.T) {
	cfg := storetest.Complete(t)
	cfg.History.Enabled = false

	res, err := New(cfg, nil).Run(context.Background(), Options{Compare: filepath.Join(t.TempDir(), "missing.json")})
	require.NoError(t, err)
	assert.Nil(t, res.Report.Comparison)
	assert.Equal(t, TrendSkipped, res.Trend.Label)
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(storetest.Complete(t), nil).Run(ctx, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_UnwritableOutDir(t *testing.T) {
	cfg := storetest.Complete(t)
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))
	cfg.OutDir = filepath.Join(blocker, "out")

	_, err := New(cfg, nil).Run(context.Background(), Options{})
	assert.Error(t, err)
}
