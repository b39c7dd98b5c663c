// Package htmlio reads dictionary pages into goquery documents and writes
// them back, either one at a time or for a whole directory.
package htmlio

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Parse parses an HTML page into a document.
func Parse(src string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

// Render writes the whole document, doctype included, to w.
func Render(w io.Writer, doc *goquery.Document) error {
	for _, n := range doc.Nodes {
		if err := html.Render(w, n); err != nil {
			return fmt.Errorf("render html: %w", err)
		}
	}
	return nil
}

// RenderString is Render into a string.
func RenderString(doc *goquery.Document) (string, error) {
	var b strings.Builder
	if err := Render(&b, doc); err != nil {
		return "", err
	}
	return b.String(), nil
}
