package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"creator-store-check/internal/model"
)

const ruleWidth = 60

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	faint  = color.New(color.Faint).FprintfFunc()
)

// Console prints the human-readable report. Colour follows color.NoColor.
type Console struct {
	w io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) rule() {
	fmt.Fprintln(c.w, strings.Repeat("=", ruleWidth))
}

// Header prints the banner shown before the first check.
func (c *Console) Header() {
	c.rule()
	fmt.Fprintln(c.w, bold("CREATOR MARKET LIBERATION PLATFORM TEST"))
	fmt.Fprintln(c.w, "Jimmy Thornburg's Sovereign Creator Store")
	c.rule()
}

// Check prints one check heading followed by its lines.
func (c *Console) Check(i int, r model.CheckResult) {
	if i > 0 {
		fmt.Fprintln(c.w)
	}
	fmt.Fprintf(c.w, "Testing %s...\n", r.Name)
	for _, l := range r.Lines {
		fmt.Fprintf(c.w, "%s%s\n", strings.Repeat("  ", l.Indent+1), colorLine(l))
	}
	if r.Status == model.StatusError {
		fmt.Fprintf(c.w, "%s\n", red(fmt.Sprintf("ERROR in %s: %s", r.Name, r.Error)))
	}
}

// Summary prints the TEST SUMMARY block, revenue projections and next steps.
func (c *Console) Summary(r *model.Report) {
	s := r.Summary
	fmt.Fprintln(c.w)
	c.rule()
	fmt.Fprintln(c.w, bold("TEST SUMMARY"))
	c.rule()
	fmt.Fprintf(c.w, "Tests Passed: %d/%d\n", s.Passed, s.Total)
	fmt.Fprintf(c.w, "Success Rate: %.1f%%\n", s.SuccessRate)

	fmt.Fprintf(c.w, "\nSTATUS: %s\n", verdictColor(s.Verdict))
	fmt.Fprintf(c.w, "RECOMMENDATION: %s\n", s.Recommendation)
	if s.Potential != "" {
		fmt.Fprintf(c.w, "REVENUE POTENTIAL: %s\n", s.Potential)
	}

	fmt.Fprintln(c.w)
	fmt.Fprintln(c.w, checksTable(r, ASCII).String())

	if ps := r.Details.Infrastructure.Projections; len(ps) > 0 {
		fmt.Fprintln(c.w, "\nREVENUE PROJECTIONS:")
		for _, p := range ps {
			fmt.Fprintf(c.w, "  %s: $%.0f/month\n", titleCase(p.Name), p.MonthlyNet)
		}
	}

	if cmp := r.Comparison; cmp != nil {
		c.Comparison(cmp)
	}

	if len(r.NextSteps) > 0 {
		fmt.Fprintln(c.w, "\nNEXT STEPS:")
		for i, st := range r.NextSteps {
			fmt.Fprintf(c.w, "  %d. %s\n", i+1, st.Title)
			if st.Detail != "" {
				faint(c.w, "     %s\n", st.Detail)
			}
		}
	}
}

// Comparison prints the diff against a previous report.
func (c *Console) Comparison(d *model.ComparisonSummary) {
	fmt.Fprintf(c.w, "\nCOMPARED TO %s: %d -> %d passed\n",
		d.PreviousTimestamp, d.PreviousPassed, d.PreviousPassed+d.PassedDelta)
	for _, n := range d.NewlyFailing {
		fmt.Fprintf(c.w, "  %s %s\n", red("newly failing:"), n)
	}
	for _, n := range d.NewlyPassing {
		fmt.Fprintf(c.w, "  %s %s\n", green("newly passing:"), n)
	}
	for _, n := range d.Added {
		fmt.Fprintf(c.w, "  added: %s\n", n)
	}
	for _, n := range d.Removed {
		fmt.Fprintf(c.w, "  removed: %s\n", n)
	}
}

// Trend prints the history trend line.
func (c *Console) Trend(label string, previous, current, delta int) {
	if label == "FIRST_RUN" {
		fmt.Fprintln(c.w, "Trend: FIRST RUN (no previous run recorded)")
		return
	}
	fmt.Fprintf(c.w, "Trend: %s (%+d) Previous: %d, Current: %d\n", label, delta, previous, current)
}

// Saved prints the report locations.
func (c *Console) Saved(paths ...string) {
	fmt.Fprintln(c.w)
	for _, p := range paths {
		if p != "" {
			fmt.Fprintf(c.w, "Detailed results saved: %s\n", p)
		}
	}
}

// Report prints a complete run: banner, every check and the summary.
func (c *Console) Report(r *model.Report) {
	c.Header()
	for i, ch := range r.Checks {
		c.Check(i, ch)
	}
	c.Summary(r)
}

func colorLine(l model.Line) string {
	if l.Status == "" {
		return l.String()
	}
	plain := l
	plain.Status, plain.Note = "", ""
	var b strings.Builder
	b.WriteString(plain.String())
	if l.Value == "" {
		b.WriteString(":")
	}
	b.WriteString(" ")
	b.WriteString(statusColor(l.Status))
	if l.Note != "" {
		b.WriteString(" (" + l.Note + ")")
	}
	return b.String()
}

func statusColor(s model.Status) string {
	if s == model.StatusPass {
		return green(string(s))
	}
	return red(string(s))
}

func verdictColor(v model.Verdict) string {
	switch v {
	case model.VerdictReady:
		return green(string(v))
	case model.VerdictMostly:
		return yellow(string(v))
	default:
		return red(string(v))
	}
}

// titleCase renders scenario names the way they are labelled on screen.
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}
