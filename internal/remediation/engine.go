// Package remediation turns failed checks into a prioritized next-steps list.
package remediation

import (
	"fmt"
	"sort"
	"strings"

	"creator-store-check/internal/analyze"
	"creator-store-check/internal/config"
	"creator-store-check/internal/model"
)

// Generate produces remediation steps for every failed check followed by
// the configured launch steps.
func Generate(r *model.Report, cfg *config.Config) []model.RemediationStep {
	var steps []model.RemediationStep

	for _, c := range r.Checks {
		if c.Passed {
			continue
		}
		if s := stepForCheck(c, r, cfg); s != nil {
			steps = append(steps, *s)
		}
	}

	for _, title := range cfg.NextSteps {
		steps = append(steps, model.RemediationStep{
			Priority: 3,
			Category: "Launch",
			Title:    title,
		})
	}

	sort.SliceStable(steps, func(i, j int) bool {
		return steps[i].Priority < steps[j].Priority
	})
	return steps
}

func stepForCheck(c model.CheckResult, r *model.Report, cfg *config.Config) *model.RemediationStep {
	if c.Status == model.StatusError {
		return &model.RemediationStep{
			Priority: 1,
			Category: "Error",
			Title:    fmt.Sprintf("Fix the error in %s", c.Name),
			Detail:   c.Error,
			CheckID:  c.ID,
		}
	}

	switch c.ID {
	case analyze.IDStoreInfrastructure:
		return &model.RemediationStep{
			Priority: 1,
			Category: "Files",
			Title:    "Create missing store files",
			Detail:   joinFirst(missingFiles(r, cfg), 5),
			CheckID:  c.ID,
		}

	case analyze.IDPaymentProcessing:
		if len(r.Details.PaymentSystem) == 0 {
			return &model.RemediationStep{
				Priority: 1,
				Category: "Payments",
				Title:    fmt.Sprintf("Add %s", cfg.Files.PaymentSystem),
				Detail:   "The payment system script is required to sell books.",
				CheckID:  c.ID,
			}
		}
		return &model.RemediationStep{
			Priority: 1,
			Category: "Payments",
			Title:    fmt.Sprintf("Complete payment features in %s", cfg.Files.PaymentSystem),
			Detail:   "Missing: " + joinFirst(failing(r.Details.PaymentSystem), 5),
			CheckID:  c.ID,
		}

	case analyze.IDBookCatalog:
		sum := r.Details.BookCatalog
		if sum == nil {
			return &model.RemediationStep{
				Priority: 1,
				Category: "Catalog",
				Title:    "Publish a valid book catalog",
				Detail:   fmt.Sprintf("Expected readable JSON at %s", r.CatalogPath),
				CheckID:  c.ID,
			}
		}
		return &model.RemediationStep{
			Priority: 2,
			Category: "Catalog",
			Title:    "Grow the catalog",
			Detail: fmt.Sprintf("Catalog has %d books worth $%.2f; need at least %d books worth more than $%.2f",
				sum.TotalBooks, sum.TotalCatalogValue, cfg.Catalog.MinBooks, cfg.Catalog.MinValue),
			CheckID: c.ID,
		}

	case analyze.IDRevenuePotential:
		return &model.RemediationStep{
			Priority: 2,
			Category: "Catalog",
			Title:    "Fix the book catalog so revenue can be projected",
			CheckID:  c.ID,
		}

	case analyze.IDDeploymentReadiness:
		return &model.RemediationStep{
			Priority: 1,
			Category: "Deployment",
			Title:    "Complete deployment prerequisites",
			Detail:   "Failing: " + joinFirst(failing(r.Details.Infrastructure.Deployment), 5),
			CheckID:  c.ID,
		}

	case analyze.IDAntiISBNCompliance:
		detail := fmt.Sprintf("%s is missing", cfg.Files.StoreHTML)
		if m := r.Details.Infrastructure.AntiISBN; len(m) > 0 {
			detail = fmt.Sprintf("%d of %d messages present, need %d; missing: %s",
				len(m)-len(failing(m)), len(m), cfg.Compliance.MinPassing, joinFirst(failing(m), 5))
		}
		return &model.RemediationStep{
			Priority: 2,
			Category: "Messaging",
			Title:    fmt.Sprintf("Strengthen store messaging in %s", cfg.Files.StoreHTML),
			Detail:   detail,
			CheckID:  c.ID,
		}
	}
	return nil
}

func missingFiles(r *model.Report, cfg *config.Config) []string {
	var out []string
	for _, name := range cfg.Files.Required {
		if f, ok := r.Details.StoreFiles[name]; ok && !f.Exists {
			out = append(out, name)
		}
	}
	return out
}

// failing returns the sorted names of false entries.
func failing(m map[string]bool) []string {
	var out []string
	for k, ok := range m {
		if !ok {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// joinFirst joins up to max items with ", " and marks truncation.
func joinFirst(items []string, max int) string {
	if len(items) <= max {
		return strings.Join(items, ", ")
	}
	return strings.Join(items[:max], ", ") + "..."
}
