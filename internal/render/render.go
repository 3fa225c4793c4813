// Package render exports an outline forest as markdown or HTML.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/Ev2geny/beanoutline/internal/outline"
	"github.com/yuin/goldmark"
)

// Markdown renders the forest as a markdown document, one heading per
// node with `#` depth mirroring the outline level.
func Markdown(roots []*outline.Node) []byte {
	var buf bytes.Buffer
	var walk func(nodes []*outline.Node)
	walk = func(nodes []*outline.Node) {
		for _, n := range nodes {
			fmt.Fprintf(&buf, "%s %s\n\n", strings.Repeat("#", n.Level), n.Label)
			walk(n.Children)
		}
	}
	walk(roots)
	return buf.Bytes()
}

// HTML renders the forest by converting its markdown form with goldmark.
func HTML(roots []*outline.Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := goldmark.New().Convert(Markdown(roots), &buf); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return buf.Bytes(), nil
}
