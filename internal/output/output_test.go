package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creator-store-check/internal/model"
)

func init() {
	color.NoColor = true
}

func sampleReport() *model.Report {
	r := model.NewReport("run-1", time.Unix(1700000000, 0))
	r.StoreDir = "/srv/store"
	r.Checks = []model.CheckResult{
		{
			ID: "store_infrastructure", Name: "Store Infrastructure", Passed: true, Status: model.StatusPass,
			Lines: []model.Line{{Label: "index.html", Status: model.StatusPass}},
		},
		{
			ID: "book_catalog", Name: "Book Catalog", Status: model.StatusFail,
			Lines: []model.Line{
				{Label: "Total Books", Value: "3", Status: model.StatusPass},
				{Label: "Catalog JSON", Status: model.StatusFail, Note: "invalid format"},
			},
		},
		{
			ID: "revenue_potential", Name: "Revenue Potential", Status: model.StatusError,
			Error: "catalog has no books",
			Lines: []model.Line{{Label: "Revenue Scenarios:"}},
		},
	}
	r.TestResults = map[string]bool{"Store Infrastructure": true, "Book Catalog": false, "Revenue Potential": false}
	r.Details.Infrastructure.Projections = []model.Projection{
		{Name: "conservative", SalesPerMonth: 10, MonthlyNet: 174.45, AnnualNet: 2093.4},
	}
	r.Summary = model.Summary{
		Passed: 1, Total: 3, SuccessRate: 33.33,
		Verdict: model.VerdictNeedsWork, Recommendation: "Address critical issues before deployment",
	}
	r.NextSteps = []model.RemediationStep{
		{Priority: 1, Title: "Fix the error in Revenue Potential", Detail: "catalog has no books"},
		{Priority: 3, Title: "Launch marketing campaign"},
	}
	return &r
}

func TestConsoleReport(t *testing.T) {
	var buf bytes.Buffer
	NewConsole(&buf).Report(sampleReport())
	out := buf.String()

	for _, want := range []string{
		strings.Repeat("=", 60) + "\nCREATOR MARKET LIBERATION PLATFORM TEST\n",
		"Testing Store Infrastructure...\n  index.html: PASS\n",
		"  Total Books: 3 PASS\n",
		"  Catalog JSON: FAIL (invalid format)\n",
		"ERROR in Revenue Potential: catalog has no books\n",
		"Tests Passed: 1/3\n",
		"Success Rate: 33.3%\n",
		"STATUS: NEEDS WORK\n",
		"REVENUE PROJECTIONS:\n  Conservative: $174/month\n",
		"NEXT STEPS:\n  1. Fix the error in Revenue Potential\n     catalog has no books\n  2. Launch marketing campaign\n",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "REVENUE POTENTIAL:")
}

func TestConsoleComparisonAndTrend(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)
	c.Comparison(&model.ComparisonSummary{
		PreviousTimestamp: "2026-01-01 10:00:00",
		PreviousPassed:    4,
		PassedDelta:       -1,
		NewlyFailing:      []string{"Book Catalog"},
	})
	c.Trend("FIRST_RUN", -1, 3, 0)
	c.Trend("IMPROVING", 3, 5, 2)

	out := buf.String()
	assert.Contains(t, out, "COMPARED TO 2026-01-01 10:00:00: 4 -> 3 passed")
	assert.Contains(t, out, "newly failing: Book Catalog")
	assert.Contains(t, out, "Trend: FIRST RUN")
	assert.Contains(t, out, "Trend: IMPROVING (+2) Previous: 3, Current: 5")
}

func TestWriteJSON(t *testing.T) {
	dir := t.TempDir()
	r := sampleReport()
	path := ReportPath(filepath.Join(dir, "out"), r.StartedAt, ".json")
	assert.Equal(t, "test_results_1700000000.json", filepath.Base(path))

	require.NoError(t, WriteJSON(path, r))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"test_results", "detailed_data", "timestamp"} {
		assert.Contains(t, raw, key)
	}

	var infra map[string]any
	var details map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw["detailed_data"], &details))
	require.NoError(t, json.Unmarshal(details["infrastructure"], &infra))
	assert.InDelta(t, 174.45, infra["conservative_monthly"], 1e-9)
	assert.InDelta(t, 2093.4, infra["conservative_annual"], 1e-9)
}

func TestRenderMarkdown(t *testing.T) {
	r := sampleReport()
	r.Comparison = &model.ComparisonSummary{PreviousTimestamp: "earlier", PreviousPassed: 2, PassedDelta: -1, NewlyFailing: []string{"Book Catalog"}}
	md := string(RenderMarkdown(r))

	assert.Contains(t, md, "# Creator Store Test Report")
	assert.Contains(t, md, "## NEEDS WORK")
	assert.Contains(t, md, "**1/3** checks passed (33.3%)")
	assert.Contains(t, md, "| 2 | Book Catalog | FAIL | 1/2 passed |")
	assert.Contains(t, md, "| 3 | Revenue Potential | ERROR | catalog has no books |")
	assert.Contains(t, md, "- Catalog JSON: FAIL (invalid format)")
	assert.Contains(t, md, "- **ERROR:** catalog has no books")
	assert.Contains(t, md, "| Conservative |")
	assert.Contains(t, md, "- Newly failing: `Book Catalog`")
	assert.Contains(t, md, "1. **Fix the error in Revenue Potential**: catalog has no books")
}

func TestLineTally(t *testing.T) {
	assert.Equal(t, "-", lineTally([]model.Line{{Label: "note"}}))
	assert.Equal(t, "1/2 passed", lineTally([]model.Line{
		{Label: "a", Status: model.StatusPass},
		{Label: "b", Status: model.StatusFail},
		{Label: "c"},
	}))
}

func TestWriteCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "csv")
	require.NoError(t, WriteCSV(dir, sampleReport()))

	data, err := os.ReadFile(filepath.Join(dir, "checks.csv"))
	require.NoError(t, err)
	body := strings.TrimPrefix(string(data), "\xEF\xBB\xBF")
	assert.True(t, strings.HasPrefix(body, "Check ID,Check,Check Status,Line,Value,Line Status,Note\n"))
	assert.Contains(t, body, "book_catalog,Book Catalog,FAIL,Catalog JSON,,FAIL,invalid format\n")
	assert.Contains(t, body, "revenue_potential,Revenue Potential,ERROR,error,,ERROR,catalog has no books\n")

	data, err = os.ReadFile(filepath.Join(dir, "projections.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "conservative,10,0.00,0.00,0.00,174.45,2093.40\n")

	data, err = os.ReadFile(filepath.Join(dir, "next_steps.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "3,,Launch marketing campaign,,\n")
}
