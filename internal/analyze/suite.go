// Package analyze runs the storefront checks and scores the run.
package analyze

import (
	"fmt"

	"go.uber.org/zap"

	"creator-store-check/internal/config"
	"creator-store-check/internal/model"
)

// Check is one top-level, independently guarded check.
type Check struct {
	ID   string
	Name string
	Run  func(s *Suite) (bool, error)
}

// Suite carries the state shared by checks during one run. Checks append
// console lines through the helper methods and write their detail data into
// the report.
type Suite struct {
	cfg    *config.Config
	report *model.Report
	log    *zap.Logger
	lines  []model.Line
}

func NewSuite(cfg *config.Config, report *model.Report, log *zap.Logger) *Suite {
	if log == nil {
		log = zap.NewNop()
	}
	return &Suite{cfg: cfg, report: report, log: log}
}

// Run executes checks in order and records their results in the report.
func (s *Suite) Run(checks []Check) {
	for _, c := range checks {
		res := s.guard(c)
		s.report.Checks = append(s.report.Checks, res)
		s.report.TestResults[c.Name] = res.Passed

		fields := []zap.Field{zap.String("check", c.ID), zap.String("status", string(res.Status))}
		if res.Error != "" {
			s.log.Warn("check errored", append(fields, zap.String("error", res.Error))...)
			continue
		}
		s.log.Debug("check finished", fields...)
	}
}

// guard turns a returned error or a panic into an ERROR result. Lines
// emitted before the failure are kept.
func (s *Suite) guard(c Check) (res model.CheckResult) {
	s.lines = nil
	res = model.CheckResult{ID: c.ID, Name: c.Name}

	defer func() {
		if r := recover(); r != nil {
			res = s.errored(res, fmt.Errorf("panic: %v", r))
		}
	}()

	ok, err := c.Run(s)
	if err != nil {
		return s.errored(res, err)
	}
	res.Passed = ok
	res.Status = model.StatusOf(ok)
	res.Lines = s.lines
	return res
}

func (s *Suite) errored(res model.CheckResult, err error) model.CheckResult {
	res.Passed = false
	res.Status = model.StatusError
	res.Error = err.Error()
	res.Lines = s.lines
	return res
}

func (s *Suite) add(l model.Line) {
	s.lines = append(s.lines, l)
}

// status emits "label: PASS|FAIL".
func (s *Suite) status(label string, ok bool) {
	s.add(model.Line{Label: label, Status: model.StatusOf(ok)})
}

// note emits a bare message line.
func (s *Suite) note(msg string) {
	s.add(model.Line{Label: msg})
}

// RunAll runs the default checks against cfg and fills report.
func RunAll(cfg *config.Config, report *model.Report, log *zap.Logger) {
	report.StoreDir = cfg.StoreDir
	report.CatalogPath = cfg.ResolvedCatalogPath()
	NewSuite(cfg, report, log).Run(DefaultChecks())
	report.Summary = Summarize(report.Checks, cfg.Summary, cfg.Domain)
}
