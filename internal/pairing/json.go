package pairing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

type jsonContent struct {
	Slovenian string `json:"slovenian_content"`
	English   string `json:"english_content"`
}

// WriteJSON writes pairs as one JSON object keyed by link, indented by four
// spaces and without HTML escaping.
//
// Keys keep the order of first appearance; a repeated link keeps its first
// position and takes the content of its last occurrence.
func WriteJSON(w io.Writer, pairs []Pair) error {
	var order []string
	byLink := make(map[string]Pair, len(pairs))
	for _, p := range pairs {
		if _, ok := byLink[p.Link]; !ok {
			order = append(order, p.Link)
		}
		byLink[p.Link] = p
	}

	var buf bytes.Buffer
	buf.WriteString("{")
	for i, link := range order {
		if i > 0 {
			buf.WriteString(",")
		}
		buf.WriteString("\n    ")

		key, err := encode(link, "")
		if err != nil {
			return fmt.Errorf("encode key %q: %w", link, err)
		}
		p := byLink[link]
		val, err := encode(jsonContent{Slovenian: p.Slovenian, English: p.English}, "    ")
		if err != nil {
			return fmt.Errorf("encode pair %q: %w", link, err)
		}

		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(val)
	}
	if len(order) > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

func encode(v any, prefix string) ([]byte, error) {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	enc.SetIndent(prefix, "    ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(b.Bytes(), "\n"), nil
}
