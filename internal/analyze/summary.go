package analyze

import (
	"creator-store-check/internal/config"
	"creator-store-check/internal/model"
)

// Summarize counts passed checks and derives the readiness verdict.
func Summarize(checks []model.CheckResult, th config.SummaryConfig, domain string) model.Summary {
	s := model.Summary{Total: len(checks)}
	for _, c := range checks {
		if c.Passed {
			s.Passed++
		}
	}
	if s.Total > 0 {
		s.SuccessRate = float64(s.Passed) / float64(s.Total) * 100
	}

	switch {
	case s.SuccessRate >= th.ReadyRate:
		s.Verdict = model.VerdictReady
		s.Recommendation = "Deploy to " + domain + " immediately"
		s.Potential = "HIGH"
	case s.SuccessRate >= th.MostlyRate:
		s.Verdict = model.VerdictMostly
		s.Recommendation = "Fix remaining issues then deploy"
	default:
		s.Verdict = model.VerdictNeedsWork
		s.Recommendation = "Address critical issues before deployment"
	}
	return s
}
