package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	SchemaVersion = "1.0.0"
	ToolName      = "storecheck"
	ToolVersion   = "0.3.0"

	// TimestampLayout is the human timestamp written at the top level of a report.
	TimestampLayout = "2006-01-02 15:04:05"
)

type Report struct {
	SchemaVersion string    `json:"schema_version"`
	RunID         string    `json:"run_id"`
	Tool          Tool      `json:"tool"`
	StoreDir      string    `json:"store_dir"`
	CatalogPath   string    `json:"catalog_path"`
	StartedAt     time.Time `json:"started_at"`
	EndedAt       time.Time `json:"ended_at"`
	Timestamp     string    `json:"timestamp"`

	// TestResults maps check name to outcome, e.g. "Book Catalog": true.
	TestResults map[string]bool `json:"test_results"`
	// Checks keeps the same outcomes in execution order with their console lines.
	Checks  []CheckResult `json:"checks"`
	Details Details       `json:"detailed_data"`
	Summary Summary       `json:"summary"`

	NextSteps []RemediationStep `json:"next_steps,omitempty"`
	// Comparison holds the diff against a previous report when --compare is used.
	Comparison *ComparisonSummary `json:"comparison,omitempty"`
}

type Tool struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// RemediationStep is one entry of the NEXT STEPS list.
type RemediationStep struct {
	Priority int    `json:"priority"` // 1 = blocking, 2 = before launch, 3 = launch
	Category string `json:"category"`
	Title    string `json:"title"`
	Detail   string `json:"detail,omitempty"`
	CheckID  string `json:"check_id,omitempty"`
}

// ComparisonSummary is the diff of this run against a previous report.
type ComparisonSummary struct {
	PreviousRunID     string   `json:"previous_run_id,omitempty"`
	PreviousTimestamp string   `json:"previous_timestamp"`
	PreviousPassed    int      `json:"previous_passed"`
	PassedDelta       int      `json:"passed_delta"`
	NewlyFailing      []string `json:"newly_failing,omitempty"`
	NewlyPassing      []string `json:"newly_passing,omitempty"`
	Added             []string `json:"added,omitempty"`
	Removed           []string `json:"removed,omitempty"`
}

// NewRunID returns a random identifier for one suite run.
func NewRunID() string {
	return uuid.NewString()
}

func NewReport(runID string, started time.Time) Report {
	return Report{
		SchemaVersion: SchemaVersion,
		RunID:         runID,
		Tool: Tool{
			Name:    ToolName,
			Version: ToolVersion,
		},
		StartedAt:   started,
		Timestamp:   started.Format(TimestampLayout),
		TestResults: map[string]bool{},
		Checks:      []CheckResult{},
		Details: Details{
			StoreFiles:    map[string]FileFact{},
			PaymentSystem: map[string]bool{},
		},
	}
}

// AllPassed reports whether every check in the run passed.
func (r *Report) AllPassed() bool {
	if len(r.Checks) == 0 {
		return false
	}
	for _, c := range r.Checks {
		if !c.Passed {
			return false
		}
	}
	return true
}

// Check returns the result with the given ID, or nil.
func (r *Report) Check(id string) *CheckResult {
	for i := range r.Checks {
		if r.Checks[i].ID == id {
			return &r.Checks[i]
		}
	}
	return nil
}
