// Package match evaluates keyword rules against text content.
package match

import (
	"strings"

	"creator-store-check/internal/model"
)

// Term is a substring that must appear in the content. Fold makes the
// comparison case-insensitive.
type Term struct {
	Text string `yaml:"text" json:"text"`
	Fold bool   `yaml:"fold,omitempty" json:"fold,omitempty"`
}

// Rule passes when every All term matches and, if Any is non-empty, at
// least one Any term matches. A rule with no terms never passes.
type Rule struct {
	Name string `yaml:"name" json:"name"`
	All  []Term `yaml:"all,omitempty" json:"all,omitempty"`
	Any  []Term `yaml:"any,omitempty" json:"any,omitempty"`
}

// Exact and Folded are shorthands used when declaring rule sets in code.
func Exact(s string) Term  { return Term{Text: s} }
func Folded(s string) Term { return Term{Text: s, Fold: true} }

// Content wraps text with a lazily computed lower-case copy.
type Content struct {
	raw   string
	lower string
	init  bool
}

func NewContent(s string) *Content {
	return &Content{raw: s}
}

func (c *Content) Contains(t Term) bool {
	if !t.Fold {
		return strings.Contains(c.raw, t.Text)
	}
	if !c.init {
		c.lower = strings.ToLower(c.raw)
		c.init = true
	}
	return strings.Contains(c.lower, strings.ToLower(t.Text))
}

func (r Rule) Match(c *Content) bool {
	if len(r.All) == 0 && len(r.Any) == 0 {
		return false
	}
	for _, t := range r.All {
		if !c.Contains(t) {
			return false
		}
	}
	if len(r.Any) == 0 {
		return true
	}
	for _, t := range r.Any {
		if c.Contains(t) {
			return true
		}
	}
	return false
}

// Evaluate runs every rule against text, preserving rule order.
func Evaluate(text string, rules []Rule) []model.NamedResult {
	c := NewContent(text)
	out := make([]model.NamedResult, 0, len(rules))
	for _, r := range rules {
		out = append(out, model.NamedResult{Name: r.Name, Passed: r.Match(c)})
	}
	return out
}
