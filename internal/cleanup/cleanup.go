// Package cleanup removes scraping leftovers from exported dictionary pages
// before the enhancement passes run.
package cleanup

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Options toggles the individual cleanup steps. All steps are off by default.
type Options struct {
	RemoveCitations  bool `yaml:"remove_citations,omitempty"`
	RemoveBadges     bool `yaml:"remove_badges,omitempty"`
	UnwrapEntries    bool `yaml:"unwrap_entries,omitempty"`
	UnwrapFont       bool `yaml:"unwrap_font,omitempty"`
	RemoveBlankLines bool `yaml:"remove_blank_lines,omitempty"`
}

// Stats counts the nodes touched by Apply.
type Stats struct {
	Citations int
	Badges    int
	Entries   int
	Fonts     int
}

// Total returns the number of touched nodes across all steps.
func (s Stats) Total() int {
	return s.Citations + s.Badges + s.Entries + s.Fonts
}

// Apply runs the enabled tree steps on doc. RemoveBlankLines works on the
// rendered page and is left to the caller.
func Apply(doc *goquery.Document, opts Options) Stats {
	var st Stats
	if opts.RemoveCitations {
		st.Citations = RemoveCitations(doc)
	}
	if opts.RemoveBadges {
		st.Badges = RemoveBadges(doc)
	}
	if opts.UnwrapEntries {
		st.Entries = UnwrapEntries(doc)
	}
	if opts.UnwrapFont {
		st.Fonts = UnwrapFont(doc)
	}
	return st
}

// RemoveCitations deletes every <p class="entry-citation">.
func RemoveCitations(doc *goquery.Document) int {
	sel := doc.Find("p.entry-citation")
	n := sel.Length()
	sel.Remove()
	return n
}

// RemoveBadges deletes the badge block rendered next to each entry.
func RemoveBadges(doc *goquery.Document) int {
	sel := doc.Find("div.badges.pull-right")
	n := sel.Length()
	sel.Remove()
	return n
}

// UnwrapEntries replaces each entry wrapper with its inner
// <div class="entry-content">. Wrappers without one are kept.
func UnwrapEntries(doc *goquery.Document) int {
	n := 0
	doc.Find("div.list-group-item.entry").Each(func(_ int, wrapper *goquery.Selection) {
		inner := wrapper.Find("div.entry-content").First()
		if inner.Length() == 0 {
			return
		}
		wrapper.ReplaceWithSelection(inner)
		n++
	})
	return n
}

// UnwrapFont removes every <font> element and keeps its children in place.
func UnwrapFont(doc *goquery.Document) int {
	n := 0
	doc.Find("font").Each(func(_ int, font *goquery.Selection) {
		if contents := font.Contents(); contents.Length() > 0 {
			contents.Unwrap()
		} else {
			font.Remove()
		}
		n++
	})
	return n
}

// RemoveBlankLines drops every line that holds only white space. A trailing
// newline is kept when the input had one.
func RemoveBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		kept = append(kept, line)
	}

	out := strings.Join(kept, "\n")
	if len(kept) > 0 && strings.HasSuffix(s, "\n") {
		out += "\n"
	}
	return out
}
