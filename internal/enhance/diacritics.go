package enhance

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// carons are the letters kept verbatim by RemoveDiacriticsExceptCarons.
const carons = "čžšČŽŠ"

// combiningMarks is the Combining Diacritical Marks block, U+0300..U+036F.
// Marks outside this block survive normalization.
var combiningMarks = &unicode.RangeTable{
	R16: []unicode.Range16{{Lo: 0x0300, Hi: 0x036f, Stride: 1}},
}

// RemoveDiacriticsExceptCarons strips accents from text one code point at a
// time. Each rune other than č, ž, š (and their capitals) is decomposed to NFD
// and loses every mark in U+0300..U+036F. The result is not recomposed.
//
// The function is pure and total. Invalid UTF-8 bytes come out as U+FFFD.
func RemoveDiacriticsExceptCarons(text string) string {
	if text == "" {
		return ""
	}

	// Chains are stateful; one per call.
	strip := transform.Chain(norm.NFD, runes.Remove(runes.In(combiningMarks)))

	var b strings.Builder
	b.Grow(len(text))

	var buf [utf8.UTFMax]byte
	for _, r := range text {
		switch {
		case r < utf8.RuneSelf:
			b.WriteByte(byte(r))
		case strings.ContainsRune(carons, r):
			b.WriteRune(r)
		default:
			n := utf8.EncodeRune(buf[:], r)
			out, _, err := transform.String(strip, string(buf[:n]))
			if err != nil {
				out = string(buf[:n])
			}
			b.WriteString(out)
		}
	}
	return b.String()
}

// NormalizeHighlights rewrites the text content of every element matched by
// selector with RemoveDiacriticsExceptCarons. Rewriting replaces the
// element's children with a single text node. Elements whose text would not
// change are left untouched and produce no Edit.
func NormalizeHighlights(doc *goquery.Document, selector string) []Edit {
	var edits []Edit

	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		before := s.Text()
		after := RemoveDiacriticsExceptCarons(before)
		if after == before {
			return
		}
		s.SetText(after)
		edits = append(edits, Edit{
			Pass:   PassDiacritics,
			Node:   s.Get(0),
			Before: before,
			After:  after,
		})
	})

	return edits
}
