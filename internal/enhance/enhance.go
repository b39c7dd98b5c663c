// Package enhance implements the post-processing passes applied to SSKJ
// dictionary pages once they are parsed: the example semicolon fixer and the
// headword diacritic normalizer.
//
// Both passes mutate the document in place and return the edits they made.
// Neither pass fails; a node that does not qualify is simply skipped.
package enhance

import (
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Pass names used in Edit.Pass.
const (
	PassSemicolons = "semicolons"
	PassDiacritics = "diacritics"
)

// Default selectors used by dictionary pages.
const (
	DefaultExampleSelector   = `[data-group="example"]`
	DefaultHighlightSelector = "span.font_xlarge a, .color_orange"
)

// Rules selects which nodes the passes look at. The zero value runs both
// passes with the default selectors.
type Rules struct {
	ExampleSelector   string `yaml:"example_selector,omitempty"`
	HighlightSelector string `yaml:"highlight_selector,omitempty"`
	SkipSemicolons    bool   `yaml:"skip_semicolons,omitempty"`
	SkipDiacritics    bool   `yaml:"skip_diacritics,omitempty"`
}

// WithDefaults returns r with empty selectors replaced by the defaults.
func (r Rules) WithDefaults() Rules {
	if r.ExampleSelector == "" {
		r.ExampleSelector = DefaultExampleSelector
	}
	if r.HighlightSelector == "" {
		r.HighlightSelector = DefaultHighlightSelector
	}
	return r
}

// Edit records one text change made by a pass.
//
// For PassSemicolons Node is the rewritten text node; for PassDiacritics it is
// the element whose text content was replaced.
type Edit struct {
	Pass   string
	Node   *html.Node
	Before string
	After  string
}

// Report is the outcome of one OnReady call.
type Report struct {
	Edits []Edit
}

// Count returns the number of edits made by pass.
func (r Report) Count(pass string) int {
	n := 0
	for _, e := range r.Edits {
		if e.Pass == pass {
			n++
		}
	}
	return n
}

// OnReady runs the enabled passes once over doc. It is meant to be called by
// the host as soon as the document tree is available.
//
// The passes touch disjoint nodes, so their order does not matter.
func OnReady(doc *goquery.Document, rules Rules) Report {
	rules = rules.WithDefaults()

	var rep Report
	if !rules.SkipSemicolons {
		rep.Edits = append(rep.Edits, FixExampleSemicolons(doc, rules.ExampleSelector)...)
	}
	if !rules.SkipDiacritics {
		rep.Edits = append(rep.Edits, NormalizeHighlights(doc, rules.HighlightSelector)...)
	}
	return rep
}
