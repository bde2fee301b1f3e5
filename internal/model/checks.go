package model

import "strings"

// Status is the outcome label printed next to a check line.
type Status string

const (
	StatusPass  Status = "PASS"
	StatusFail  Status = "FAIL"
	StatusError Status = "ERROR"
)

// StatusOf maps a boolean outcome to PASS/FAIL.
func StatusOf(ok bool) Status {
	if ok {
		return StatusPass
	}
	return StatusFail
}

// Line is one console line produced by a check, e.g. "index.html: PASS"
// or "Catalog Value: $253.86 PASS". Value is printed before Status when set.
type Line struct {
	Label  string `json:"label"`
	Value  string `json:"value,omitempty"`
	Status Status `json:"status,omitempty"`
	Note   string `json:"note,omitempty"`
	Indent int    `json:"indent,omitempty"`
}

// String renders the line without indentation or colour.
func (l Line) String() string {
	var b strings.Builder
	b.WriteString(l.Label)
	if l.Value != "" || l.Status != "" {
		b.WriteString(":")
	}
	if l.Value != "" {
		b.WriteString(" ")
		b.WriteString(l.Value)
	}
	if l.Status != "" {
		b.WriteString(" ")
		b.WriteString(string(l.Status))
	}
	if l.Note != "" {
		b.WriteString(" (")
		b.WriteString(l.Note)
		b.WriteString(")")
	}
	return b.String()
}

// CheckResult is the outcome of one top-level check.
// Keep it simple: this is meant to be shown directly in reports.
type CheckResult struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Status Status `json:"status"` // PASS/FAIL/ERROR
	Error  string `json:"error,omitempty"`
	Lines  []Line `json:"lines,omitempty"`
}

// NamedResult is an ordered name/outcome pair. Rule results are kept in
// declaration order for printing and flattened to maps for the JSON report.
type NamedResult struct {
	Name   string
	Passed bool
}

// ResultMap flattens ordered results into the map shape of the JSON report.
func ResultMap(rs []NamedResult) map[string]bool {
	out := make(map[string]bool, len(rs))
	for _, r := range rs {
		out[r.Name] = r.Passed
	}
	return out
}

// CountPassed returns how many results passed.
func CountPassed(rs []NamedResult) int {
	n := 0
	for _, r := range rs {
		if r.Passed {
			n++
		}
	}
	return n
}
