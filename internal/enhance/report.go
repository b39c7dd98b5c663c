package enhance

import (
	"fmt"
	"io"

	"golang.org/x/net/html"
)

// WriteEdits prints one line per edit. It is used by the command's -dry-run
// mode, where the page itself is not written.
//
// Line format: [source<TAB>]pass<TAB>node<TAB>"before" -> "after"
func WriteEdits(w io.Writer, source string, edits []Edit) error {
	for _, e := range edits {
		prefix := ""
		if source != "" {
			prefix = source + "\t"
		}
		if _, err := fmt.Fprintf(w, "%s%s\t%s\t%q -> %q\n", prefix, e.Pass, nodeLabel(e.Node), e.Before, e.After); err != nil {
			return fmt.Errorf("write edit: %w", err)
		}
	}
	return nil
}

func nodeLabel(n *html.Node) string {
	if n == nil {
		return "-"
	}
	switch n.Type {
	case html.TextNode:
		return "#text"
	case html.ElementNode:
		return n.Data
	default:
		return "#node"
	}
}
