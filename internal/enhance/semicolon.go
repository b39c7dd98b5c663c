package enhance

import (
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// FixExampleSemicolons removes a stray ";" that follows example markup.
//
// For every node matched by selector it looks at the next sibling of the
// node's parent. When that sibling is a text node whose trimmed content is
// exactly ";", the first ";" of the untrimmed content is removed and the
// surrounding whitespace is kept. Anything else is left alone.
func FixExampleSemicolons(doc *goquery.Document, selector string) []Edit {
	var edits []Edit

	for _, n := range doc.Find(selector).Nodes {
		if n.Parent == nil {
			continue
		}
		next := n.Parent.NextSibling
		if next == nil || next.Type != html.TextNode {
			continue
		}
		if trimSpace(next.Data) != ";" {
			continue
		}

		before := next.Data
		next.Data = strings.Replace(before, ";", "", 1)
		edits = append(edits, Edit{
			Pass:   PassSemicolons,
			Node:   next,
			Before: before,
			After:  next.Data,
		})
	}

	return edits
}

// trimSpace trims Unicode white space plus the byte order mark. U+0085 is
// not treated as space.
func trimSpace(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		switch r {
		case '\uFEFF':
			return true
		case '\u0085':
			return false
		}
		return unicode.IsSpace(r)
	})
}
