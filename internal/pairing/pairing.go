// Package pairing matches the Slovenian and English exports of the same
// dictionary entry by their headword link and stores the pairs.
package pairing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Selectors used to find entries and their headword link.
const (
	EntrySelector    = "div.entry-content"
	HeadwordSelector = "span.font_xlarge a"
)

var (
	ErrLinkMismatch = errors.New("pairing: headword links differ")
	ErrMissingLink  = errors.New("pairing: entry has no headword link")
)

// Entry is one dictionary entry of an exported page.
type Entry struct {
	Link string
	HTML string
}

// Pair holds both language versions of an entry.
type Pair struct {
	Link      string
	Slovenian string
	English   string
}

// Entries returns every entry of doc in document order. Entries without a
// headword link are kept with an empty Link so both exports stay aligned.
func Entries(doc *goquery.Document) ([]Entry, error) {
	var (
		out  []Entry
		rerr error
	)
	doc.Find(EntrySelector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		h, err := goquery.OuterHtml(s)
		if err != nil {
			rerr = fmt.Errorf("render entry %d: %w", len(out), err)
			return false
		}
		href, _ := s.Find(HeadwordSelector).First().Attr("href")
		out = append(out, Entry{Link: strings.TrimSpace(href), HTML: h})
		return true
	})
	return out, rerr
}

// Match zips slo and eng in order. Each position must carry the same,
// non-empty link. Pairing stops at the first bad position; the pairs built
// so far are returned along with the error.
//
// When the inputs differ in length the extra entries are ignored.
func Match(slo, eng []Entry) ([]Pair, error) {
	n := min(len(slo), len(eng))
	pairs := make([]Pair, 0, n)

	for i := range n {
		s, e := slo[i], eng[i]
		if s.Link == "" || e.Link == "" {
			return pairs, fmt.Errorf("%w: position %d", ErrMissingLink, i)
		}
		if s.Link != e.Link {
			return pairs, fmt.Errorf("%w: position %d: %s (slo) is not %s (eng)", ErrLinkMismatch, i, shortLink(s.Link), shortLink(e.Link))
		}
		pairs = append(pairs, Pair{Link: s.Link, Slovenian: s.HTML, English: e.HTML})
	}
	return pairs, nil
}

// shortLink keeps the last two path segments of a link, without the page
// query, which is enough to identify an entry in messages.
func shortLink(link string) string {
	parts := strings.Split(link, "/")
	if len(parts) > 2 {
		parts = parts[len(parts)-2:]
	}
	short := strings.Join(parts, "/")
	if i := strings.Index(short, "?page="); i >= 0 {
		short = short[:i]
	}
	return short
}
