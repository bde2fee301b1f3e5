package compare

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"creator-store-check/internal/model"
)

// Diff compares prev against curr by check name. Reports written by older
// tools only carry test_results, which is all Diff needs.
func Diff(prev, curr *model.Report) model.ComparisonSummary {
	prevPassed := passedCount(prev.TestResults)
	r := model.ComparisonSummary{
		PreviousRunID:     prev.RunID,
		PreviousTimestamp: prev.Timestamp,
		PreviousPassed:    prevPassed,
		PassedDelta:       passedCount(curr.TestResults) - prevPassed,
	}

	for name, ok := range curr.TestResults {
		was, existed := prev.TestResults[name]
		switch {
		case !existed:
			r.Added = append(r.Added, name)
		case was && !ok:
			r.NewlyFailing = append(r.NewlyFailing, name)
		case !was && ok:
			r.NewlyPassing = append(r.NewlyPassing, name)
		}
	}
	for name := range prev.TestResults {
		if _, ok := curr.TestResults[name]; !ok {
			r.Removed = append(r.Removed, name)
		}
	}

	sort.Strings(r.Added)
	sort.Strings(r.Removed)
	sort.Strings(r.NewlyFailing)
	sort.Strings(r.NewlyPassing)
	return r
}

// LoadReport reads and decodes a JSON report.
func LoadReport(path string) (*model.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r model.Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode report %s: %w", path, err)
	}
	return &r, nil
}

func passedCount(m map[string]bool) int {
	n := 0
	for _, ok := range m {
		if ok {
			n++
		}
	}
	return n
}
