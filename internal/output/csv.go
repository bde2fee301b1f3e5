package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"creator-store-check/internal/model"
)

// WriteCSV writes checks.csv, projections.csv and next_steps.csv into dir.
// Files are UTF-8 with BOM for clean Excel opening on Windows.
func WriteCSV(dir string, r *model.Report) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("csv: mkdir: %w", err)
	}
	writers := []func(string, *model.Report) error{
		writeChecksCSV,
		writeProjectionsCSV,
		writeNextStepsCSV,
	}
	for _, fn := range writers {
		if err := fn(dir, r); err != nil {
			return err
		}
	}
	return nil
}

func csvFile(dir, name string) (*os.File, *csv.Writer, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, nil, err
	}
	// UTF-8 BOM for Excel
	_, _ = f.Write([]byte{0xEF, 0xBB, 0xBF})
	return f, csv.NewWriter(f), nil
}

// writeChecksCSV writes one row per console line, and one row for a check
// with no lines or an error.
func writeChecksCSV(dir string, r *model.Report) error {
	f, w, err := csvFile(dir, "checks.csv")
	if err != nil {
		return err
	}
	defer f.Close()
	_ = w.Write([]string{"Check ID", "Check", "Check Status", "Line", "Value", "Line Status", "Note"})
	for _, c := range r.Checks {
		for _, l := range c.Lines {
			_ = w.Write([]string{c.ID, c.Name, string(c.Status), l.Label, l.Value, string(l.Status), l.Note})
		}
		if c.Error != "" {
			_ = w.Write([]string{c.ID, c.Name, string(c.Status), "error", "", string(model.StatusError), c.Error})
		} else if len(c.Lines) == 0 {
			_ = w.Write([]string{c.ID, c.Name, string(c.Status), "", "", "", ""})
		}
	}
	w.Flush()
	return w.Error()
}

func writeProjectionsCSV(dir string, r *model.Report) error {
	f, w, err := csvFile(dir, "projections.csv")
	if err != nil {
		return err
	}
	defer f.Close()
	_ = w.Write([]string{"Scenario", "Sales Per Month", "Avg Price", "Monthly Gross", "Fees", "Monthly Net", "Annual Net"})
	for _, p := range r.Details.Infrastructure.Projections {
		_ = w.Write([]string{
			p.Name,
			strconv.Itoa(p.SalesPerMonth),
			money(p.AvgPrice),
			money(p.MonthlyGross),
			money(p.Fees),
			money(p.MonthlyNet),
			money(p.AnnualNet),
		})
	}
	w.Flush()
	return w.Error()
}

func writeNextStepsCSV(dir string, r *model.Report) error {
	f, w, err := csvFile(dir, "next_steps.csv")
	if err != nil {
		return err
	}
	defer f.Close()
	_ = w.Write([]string{"Priority", "Category", "Title", "Detail", "Check ID"})
	for _, s := range r.NextSteps {
		_ = w.Write([]string{strconv.Itoa(s.Priority), s.Category, s.Title, s.Detail, s.CheckID})
	}
	w.Flush()
	return w.Error()
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
