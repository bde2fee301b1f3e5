package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creator-store-check/internal/model"
)

func reportWith(passed, total int) *model.Report {
	r := model.NewReport(model.NewRunID(), time.Now())
	for i := 0; i < total; i++ {
		r.Checks = append(r.Checks, model.CheckResult{ID: string(rune('a' + i)), Passed: i < passed})
	}
	r.Summary = model.Summary{Passed: passed, Total: total}
	return &r
}

func TestRecord_TrendLabels(t *testing.T) {
	out := t.TempDir()
	opts := Options{
		Dir:      filepath.Join(out, "history"),
		JSONPath: filepath.Join(out, "test_results_1.json"),
	}

	tr, err := Record(opts, reportWith(3, 6))
	require.NoError(t, err)
	assert.Equal(t, "FIRST_RUN", tr.Label)
	assert.Equal(t, -1, tr.Previous)

	tr, err = Record(opts, reportWith(5, 6))
	require.NoError(t, err)
	assert.Equal(t, "IMPROVING", tr.Label)
	assert.Equal(t, 2, tr.Delta)

	tr, err = Record(opts, reportWith(5, 6))
	require.NoError(t, err)
	assert.Equal(t, "SAME", tr.Label)

	tr, err = Record(opts, reportWith(1, 6))
	require.NoError(t, err)
	assert.Equal(t, "DECLINING", tr.Label)
	assert.Equal(t, -4, tr.Delta)

	idx, err := Load(opts.Dir)
	require.NoError(t, err)
	require.Len(t, idx.Entries, 4)

	last, ok := idx.Latest()
	require.True(t, ok)
	assert.Equal(t, 1, last.Passed)
	assert.Equal(t, []string{"b", "c", "d", "e", "f"}, last.Failed)
	assert.Equal(t, "../test_results_1.json", last.JSONFile)
	assert.Equal(t, opts.JSONPath, Resolve(opts.Dir, last.JSONFile))
}

func TestRecord_TrimsToMaxEntries(t *testing.T) {
	opts := Options{Dir: t.TempDir(), MaxEntries: 2}
	for i := 0; i < 5; i++ {
		_, err := Record(opts, reportWith(i, 6))
		require.NoError(t, err)
	}

	idx, err := Load(opts.Dir)
	require.NoError(t, err)
	require.Len(t, idx.Entries, 2)
	assert.Equal(t, 3, idx.Entries[0].Passed)
	assert.Equal(t, 4, idx.Entries[1].Passed)
}

func TestLoad_MissingAndCorrupt(t *testing.T) {
	dir := t.TempDir()

	idx, err := Load(dir)
	require.NoError(t, err)
	assert.Empty(t, idx.Entries)
	_, ok := idx.Latest()
	assert.False(t, ok)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.json"), []byte("{nope"), 0644))
	_, err = Load(dir)
	assert.Error(t, err)
}
