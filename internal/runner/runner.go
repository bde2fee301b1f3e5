// Package runner executes one full storefront test run: checks, remediation,
// reports, history and the optional comparison.
package runner

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"

	"creator-store-check/internal/analyze"
	"creator-store-check/internal/compare"
	"creator-store-check/internal/config"
	"creator-store-check/internal/history"
	"creator-store-check/internal/model"
	"creator-store-check/internal/output"
	"creator-store-check/internal/remediation"
)

// TrendSkipped labels a run whose history could not be recorded.
const TrendSkipped = "HISTORY_SKIPPED"

// Options select the optional outputs of a run.
type Options struct {
	Markdown bool
	// CSV writes checks, projections and next steps as CSV files.
	CSV bool
	// Compare is the path of a previous JSON report to diff against.
	Compare string
	// Console receives the human-readable report; nil prints nothing.
	Console io.Writer
}

// Result is a finished run.
type Result struct {
	Report   *model.Report
	JSONPath string
	MDPath   string
	CSVDir   string
	Trend    history.Trend
}

// Runner serializes runs; watch and HTTP triggers share one Runner.
type Runner struct {
	cfg *config.Config
	log *zap.Logger
	now func() time.Time

	mu     sync.Mutex
	latest *Result
}

func New(cfg *config.Config, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{cfg: cfg, log: log, now: time.Now}
}

// Config returns the configuration runs are made with.
func (r *Runner) Config() *config.Config {
	return r.cfg
}

// Latest returns the most recent finished run, or nil.
func (r *Runner) Latest() *Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.latest
}

// Run executes the checks once and writes the reports. Only failing to write
// a report file is an error; check failures are in the report.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	started := r.now()
	rep := model.NewReport(model.NewRunID(), started)
	log := r.log.With(zap.String("run_id", rep.RunID))
	log.Debug("run started", zap.String("store", r.cfg.StoreDir))

	analyze.RunAll(r.cfg, &rep, log)
	rep.NextSteps = remediation.Generate(&rep, r.cfg)

	if opts.Compare != "" {
		prev, err := compare.LoadReport(opts.Compare)
		if err != nil {
			log.Warn("compare skipped", zap.String("path", opts.Compare), zap.Error(err))
		} else {
			d := compare.Diff(prev, &rep)
			rep.Comparison = &d
		}
	}
	rep.EndedAt = r.now()

	res := &Result{Report: &rep}
	outDir := r.cfg.ResolvedOutDir()

	res.JSONPath = output.ReportPath(outDir, started, ".json")
	if err := output.WriteJSON(res.JSONPath, &rep); err != nil {
		return nil, fmt.Errorf("write json report: %w", err)
	}
	if opts.Markdown {
		res.MDPath = output.ReportPath(outDir, started, ".md")
		if err := output.WriteMarkdown(res.MDPath, &rep); err != nil {
			return nil, fmt.Errorf("write markdown report: %w", err)
		}
	}

	if opts.CSV {
		res.CSVDir = output.ReportPath(outDir, started, "_csv")
		if err := output.WriteCSV(res.CSVDir, &rep); err != nil {
			return nil, fmt.Errorf("write csv: %w", err)
		}
	}

	res.Trend = history.Trend{Previous: -1, Current: rep.Summary.Passed, Label: TrendSkipped}
	if r.cfg.History.Enabled {
		tr, err := history.Record(history.Options{
			Dir:        r.cfg.HistoryDir(),
			MaxEntries: r.cfg.History.MaxEntries,
			JSONPath:   res.JSONPath,
			MDPath:     res.MDPath,
		}, &rep)
		if err != nil {
			log.Warn("history not recorded", zap.Error(err))
		} else {
			res.Trend = tr
		}
	}

	if opts.Console != nil {
		c := output.NewConsole(opts.Console)
		c.Report(&rep)
		if res.Trend.Label != TrendSkipped {
			fmt.Fprintln(opts.Console)
			c.Trend(res.Trend.Label, res.Trend.Previous, res.Trend.Current, res.Trend.Delta)
		}
		c.Saved(res.JSONPath, res.MDPath, res.CSVDir)
	}

	log.Info("run finished",
		zap.Int("passed", rep.Summary.Passed),
		zap.Int("total", rep.Summary.Total),
		zap.String("verdict", string(rep.Summary.Verdict)),
		zap.String("report", res.JSONPath))

	r.latest = res
	return res, nil
}

// CISummary builds the one-line machine-readable summary of a run.
func CISummary(res *Result, now time.Time) model.RunSummary {
	rep := res.Report
	s := model.RunSummary{
		RunID:        rep.RunID,
		TimestampUtc: now.UTC().Format(time.RFC3339),
		Passed:       rep.Summary.Passed,
		Total:        rep.Summary.Total,
		SuccessRate:  rep.Summary.SuccessRate,
		Verdict:      rep.Summary.Verdict,
		Status:       "PASSED",
		Report:       res.JSONPath,
		Trend:        res.Trend.Label,
		Delta:        res.Trend.Delta,
	}
	if !rep.AllPassed() {
		s.Status = "FAILED"
	}
	return s
}
