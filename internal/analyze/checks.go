package analyze

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"creator-store-check/internal/catalog"
	"creator-store-check/internal/match"
	"creator-store-check/internal/model"
	"creator-store-check/internal/revenue"
	"creator-store-check/internal/storefile"
)

// Check IDs, stable across releases; history and comparisons key on them.
const (
	IDStoreInfrastructure = "store_infrastructure"
	IDPaymentProcessing   = "payment_processing"
	IDBookCatalog         = "book_catalog"
	IDRevenuePotential    = "revenue_potential"
	IDDeploymentReadiness = "deployment_readiness"
	IDAntiISBNCompliance  = "anti_isbn_compliance"
)

// ErrNoCatalogData is reported when revenue is projected without a catalog summary.
var ErrNoCatalogData = errors.New("missing catalog data")

// DefaultChecks returns the storefront checks in execution order. Revenue
// Potential reads the summary written by Book Catalog, so order matters.
func DefaultChecks() []Check {
	return []Check{
		{ID: IDStoreInfrastructure, Name: "Store Infrastructure", Run: checkStoreInfrastructure},
		{ID: IDPaymentProcessing, Name: "Payment Processing", Run: checkPaymentProcessing},
		{ID: IDBookCatalog, Name: "Book Catalog", Run: checkBookCatalog},
		{ID: IDRevenuePotential, Name: "Revenue Potential", Run: checkRevenuePotential},
		{ID: IDDeploymentReadiness, Name: "Deployment Readiness", Run: checkDeploymentReadiness},
		{ID: IDAntiISBNCompliance, Name: "Anti-ISBN Compliance", Run: checkAntiISBNCompliance},
	}
}

func checkStoreInfrastructure(s *Suite) (bool, error) {
	order, facts := storefile.StatAll(s.cfg.StorePath, s.cfg.Files.Required)
	s.report.Details.StoreFiles = facts

	all := true
	for _, name := range order {
		ok := facts[name].Exists
		s.status(name, ok)
		all = all && ok
	}
	return all, nil
}

func checkPaymentProcessing(s *Suite) (bool, error) {
	name := s.cfg.Files.PaymentSystem
	text, ok, err := storefile.ReadText(s.cfg.StorePath(name))
	if err != nil {
		return false, err
	}
	if !ok {
		s.add(model.Line{Label: name, Value: "MISSING"})
		return false, nil
	}

	results := match.Evaluate(text, s.cfg.Payment.Rules)
	s.report.Details.PaymentSystem = model.ResultMap(results)
	for _, r := range results {
		s.status(r.Name, r.Passed)
	}
	return model.CountPassed(results) == len(results), nil
}

func checkBookCatalog(s *Suite) (bool, error) {
	path := s.cfg.ResolvedCatalogPath()
	doc, err := catalog.Load(path)
	if err != nil {
		var syn *catalog.SyntaxError
		switch {
		case errors.Is(err, fs.ErrNotExist):
			s.add(model.Line{Label: filepath.Base(path), Value: "MISSING"})
			return false, nil
		case errors.As(err, &syn):
			s.add(model.Line{Label: "Catalog JSON", Status: model.StatusFail, Note: "invalid format"})
			return false, nil
		default:
			return false, err
		}
	}

	sum, err := doc.Summarize(s.cfg.Catalog.Sections)
	if err != nil {
		return false, err
	}
	s.report.Details.BookCatalog = &sum

	s.add(model.Line{Label: "Total Books", Value: strconv.Itoa(sum.TotalBooks), Status: model.StatusPass})
	s.add(model.Line{Label: "Catalog Value", Value: fmt.Sprintf("$%.2f", sum.TotalCatalogValue), Status: model.StatusPass})
	s.status("Creator Sovereignty", sum.CreatorSovereignty)
	s.status("Werner Health", sum.WernerHealth)
	s.status("SpiralLogic", sum.SpiralLogic)

	return sum.TotalBooks >= s.cfg.Catalog.MinBooks && sum.TotalCatalogValue > s.cfg.Catalog.MinValue, nil
}

func checkRevenuePotential(s *Suite) (bool, error) {
	sum := s.report.Details.BookCatalog
	if sum == nil {
		s.note("Cannot calculate - " + ErrNoCatalogData.Error())
		return false, nil
	}
	avg, err := catalog.AveragePrice(*sum)
	if err != nil {
		return false, err
	}

	rc := s.cfg.Revenue
	projections := revenue.Project(revenue.FromConfig(rc), rc.Scenarios, avg, rc.MonthsPerYear)
	s.report.Details.Infrastructure.Projections = projections

	s.note("Revenue Scenarios:")
	titler := cases.Title(language.English)
	for _, p := range projections {
		s.add(model.Line{
			Label:  titler.String(p.Name),
			Value:  fmt.Sprintf("$%.0f/month ($%.0f/year)", p.MonthlyNet, p.AnnualNet),
			Indent: 1,
		})
	}
	return true, nil
}

func checkDeploymentReadiness(s *Suite) (bool, error) {
	f := s.cfg.Files
	checks := []model.NamedResult{
		{Name: "deployment_guide", Passed: storefile.Exists(s.cfg.StorePath(f.DeployGuide))},
		{Name: "domain_configuration", Passed: storefile.Exists(s.cfg.StorePath(f.DomainConfig))},
		{Name: "store_html", Passed: storefile.Exists(s.cfg.StorePath(f.StoreHTML))},
		{Name: "payment_system", Passed: storefile.Exists(s.cfg.StorePath(f.PaymentSystem))},
	}
	for _, c := range checks {
		s.status(c.Name, c.Passed)
	}

	text, ok, err := storefile.ReadText(s.cfg.StorePath(f.DomainConfig))
	if err != nil {
		return false, err
	}
	if ok {
		hasDomain := s.cfg.Domain != "" && strings.Contains(text, s.cfg.Domain)
		s.status(s.cfg.Domain+" domain", hasDomain)
		checks = append(checks, model.NamedResult{Name: "domain_ready", Passed: hasDomain})
	}

	s.report.Details.Infrastructure.Deployment = model.ResultMap(checks)
	return model.CountPassed(checks) == len(checks), nil
}

func checkAntiISBNCompliance(s *Suite) (bool, error) {
	text, ok, err := storefile.ReadText(s.cfg.StorePath(s.cfg.Files.StoreHTML))
	if err != nil {
		return false, err
	}
	if !ok {
		s.note("Store HTML missing")
		return false, nil
	}

	results := match.Evaluate(text, s.cfg.Compliance.Rules)
	for _, r := range results {
		s.status(r.Name, r.Passed)
	}
	s.report.Details.Infrastructure.AntiISBN = model.ResultMap(results)
	return model.CountPassed(results) >= s.cfg.Compliance.MinPassing, nil
}
