package model

// Verdict is the deployment readiness label derived from the success rate.
type Verdict string

const (
	VerdictReady     Verdict = "READY FOR DEPLOYMENT"
	VerdictMostly    Verdict = "MOSTLY READY"
	VerdictNeedsWork Verdict = "NEEDS WORK"
)

type Summary struct {
	Passed         int     `json:"passed"`
	Total          int     `json:"total"`
	SuccessRate    float64 `json:"success_rate"`
	Verdict        Verdict `json:"verdict"`
	Recommendation string  `json:"recommendation"`
	// Potential is only set for a READY verdict.
	Potential string `json:"revenue_potential,omitempty"`
}

// RunSummary is the single machine-readable line printed in CI mode.
type RunSummary struct {
	RunID        string  `json:"run_id"`
	TimestampUtc string  `json:"timestamp_utc"`
	Passed       int     `json:"passed"`
	Total        int     `json:"total"`
	SuccessRate  float64 `json:"success_rate"`
	Verdict      Verdict `json:"verdict"`
	Status       string  `json:"status"` // PASSED/FAILED
	Report       string  `json:"report"`
	Trend        string  `json:"trend"`
	Delta        int     `json:"delta"`
}
