package output

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"creator-store-check/internal/model"
)

func WriteMarkdown(path string, r *model.Report) error {
	return os.WriteFile(path, RenderMarkdown(r), 0o644)
}

// RenderMarkdown renders the report as a standalone markdown document.
func RenderMarkdown(r *model.Report) []byte {
	var b bytes.Buffer

	fmt.Fprintf(&b, "# Creator Store Test Report\n\n")
	fmt.Fprintf(&b, "- Run: `%s`\n", r.RunID)
	fmt.Fprintf(&b, "- Timestamp: %s\n", r.Timestamp)
	fmt.Fprintf(&b, "- Store: `%s`\n", r.StoreDir)
	fmt.Fprintf(&b, "- Catalog: `%s`\n\n", r.CatalogPath)

	s := r.Summary
	fmt.Fprintf(&b, "## %s\n\n", s.Verdict)
	fmt.Fprintf(&b, "**%d/%d** checks passed (%.1f%%). %s.\n\n", s.Passed, s.Total, s.SuccessRate, s.Recommendation)

	fmt.Fprintf(&b, "## Checks\n\n")
	b.WriteString(checksTable(r, Markdown).String())
	b.WriteString("\n\n")

	for _, c := range r.Checks {
		if len(c.Lines) == 0 && c.Error == "" {
			continue
		}
		fmt.Fprintf(&b, "### %s\n\n", c.Name)
		for _, l := range c.Lines {
			fmt.Fprintf(&b, "%*s- %s\n", 2*l.Indent, "", l.String())
		}
		if c.Error != "" {
			fmt.Fprintf(&b, "- **ERROR:** %s\n", c.Error)
		}
		b.WriteString("\n")
	}

	if t := projectionsTable(r.Details.Infrastructure.Projections, Markdown); t.Len() > 0 {
		fmt.Fprintf(&b, "## Revenue Projections\n\n")
		b.WriteString(t.String())
		b.WriteString("\n\n")
	}

	if c := r.Comparison; c != nil {
		fmt.Fprintf(&b, "## Compared to %s\n\n", c.PreviousTimestamp)
		fmt.Fprintf(&b, "- Passed: %d (%+d)\n", c.PreviousPassed+c.PassedDelta, c.PassedDelta)
		writeList(&b, "Newly failing", c.NewlyFailing)
		writeList(&b, "Newly passing", c.NewlyPassing)
		writeList(&b, "Added", c.Added)
		writeList(&b, "Removed", c.Removed)
		b.WriteString("\n")
	}

	if len(r.NextSteps) > 0 {
		fmt.Fprintf(&b, "## Next Steps\n\n")
		steps := append([]model.RemediationStep(nil), r.NextSteps...)
		sort.SliceStable(steps, func(i, j int) bool { return steps[i].Priority < steps[j].Priority })
		for i, st := range steps {
			fmt.Fprintf(&b, "%d. **%s**", i+1, st.Title)
			if st.Detail != "" {
				fmt.Fprintf(&b, ": %s", st.Detail)
			}
			b.WriteString("\n")
		}
	}
	return b.Bytes()
}

func writeList(b *bytes.Buffer, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "- %s:", label)
	for _, it := range items {
		fmt.Fprintf(b, " `%s`", it)
	}
	b.WriteString("\n")
}

func checksTable(r *model.Report, m Mode) *Table {
	t := NewTable(m)
	t.Header("#", "Check", "Status", "Detail")
	for i, c := range r.Checks {
		detail := c.Error
		if detail == "" {
			detail = lineTally(c.Lines)
		}
		t.Row(i+1, c.Name, string(c.Status), detail)
	}
	t.Footer("", "Passed", fmt.Sprintf("%d/%d", r.Summary.Passed, r.Summary.Total), fmt.Sprintf("%.1f%%", r.Summary.SuccessRate))
	return t
}

func projectionsTable(ps []model.Projection, m Mode) *Table {
	t := NewTable(m)
	t.Header("Scenario", "Sales/mo", "Gross/mo", "Fees/mo", "Net/mo", "Net/yr")
	t.AlignRight(2, 3, 4, 5, 6)
	for _, p := range ps {
		t.Row(titleCase(p.Name), p.SalesPerMonth,
			fmt.Sprintf("$%.2f", p.MonthlyGross),
			fmt.Sprintf("$%.2f", p.Fees),
			fmt.Sprintf("$%.0f", p.MonthlyNet),
			fmt.Sprintf("$%.0f", p.AnnualNet))
	}
	return t
}

// lineTally summarizes the PASS/FAIL lines of a check, e.g. "3/4 passed".
func lineTally(lines []model.Line) string {
	var pass, total int
	for _, l := range lines {
		if l.Status == "" {
			continue
		}
		total++
		if l.Status == model.StatusPass {
			pass++
		}
	}
	if total == 0 {
		return "-"
	}
	return fmt.Sprintf("%d/%d passed", pass, total)
}
