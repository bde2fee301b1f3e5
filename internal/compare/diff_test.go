package compare

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"creator-store-check/internal/model"
)

func TestDiff(t *testing.T) {
	prev := &model.Report{
		RunID:     "prev",
		Timestamp: "2026-01-01 10:00:00",
		TestResults: map[string]bool{
			"Store Infrastructure": true,
			"Book Catalog":         false,
			"Revenue Potential":    false,
			"Legacy Check":         true,
		},
	}
	curr := &model.Report{
		TestResults: map[string]bool{
			"Store Infrastructure": false,
			"Book Catalog":         true,
			"Revenue Potential":    true,
			"Anti-ISBN Compliance": true,
		},
	}

	got := Diff(prev, curr)
	want := model.ComparisonSummary{
		PreviousRunID:     "prev",
		PreviousTimestamp: "2026-01-01 10:00:00",
		PreviousPassed:    2,
		PassedDelta:       1,
		NewlyFailing:      []string{"Store Infrastructure"},
		NewlyPassing:      []string{"Book Catalog", "Revenue Potential"},
		Added:             []string{"Anti-ISBN Compliance"},
		Removed:           []string{"Legacy Check"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Diff() mismatch (-want +got):\n%s", diff)
	}
}

// Reports from the Python smoke test have only three top-level keys.
func TestLoadReport_LegacyShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test_results_1700000000.json")
	legacy := `{
  "test_results": {"Store Infrastructure": true, "Book Catalog": false},
  "detailed_data": {
    "store_files": {"index.html": {"exists": true, "size": 12}},
    "payment_system": {},
    "book_catalog": {},
    "infrastructure": {"conservative_monthly": 174.45, "conservative_annual": 2093.4, "deployment": {"store_html": true}}
  },
  "timestamp": "2023-11-14 22:13:20"
}`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0644))

	r, err := LoadReport(path)
	require.NoError(t, err)

	if diff := cmp.Diff(map[string]bool{"Store Infrastructure": true, "Book Catalog": false}, r.TestResults); diff != "" {
		t.Errorf("test_results mismatch (-want +got):\n%s", diff)
	}
	if r.Timestamp != "2023-11-14 22:13:20" {
		t.Errorf("timestamp = %q", r.Timestamp)
	}
	p, ok := r.Details.Infrastructure.Projection("conservative")
	if !ok || p.MonthlyNet != 174.45 || p.AnnualNet != 2093.4 {
		t.Errorf("conservative projection = %+v, %v", p, ok)
	}
	if !r.Details.Infrastructure.Deployment["store_html"] {
		t.Errorf("deployment not restored: %+v", r.Details.Infrastructure.Deployment)
	}
}

func TestLoadReport_Missing(t *testing.T) {
	_, err := LoadReport(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}
