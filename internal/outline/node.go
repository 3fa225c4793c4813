// Package outline builds the section forest of a beancount ledger from the
// org-style `*` headings in a single top-to-bottom scan.
package outline

import "github.com/Ev2geny/beanoutline/internal/document"

// Kind is a presentation tag derived purely from the heading level. It has
// no structural meaning.
type Kind string

const (
	KindClass    Kind = "class"    // top-level sections
	KindFunction Kind = "function" // everything nested deeper
)

func kindForLevel(level int) Kind {
	if level == 1 {
		return KindClass
	}
	return KindFunction
}

// Node is one section of the outline forest. Span covers the heading line
// through the last line before the next heading; Highlight covers just the
// label portion of the heading line, skipping the marker run.
type Node struct {
	Label     string         `json:"label"`
	Detail    string         `json:"detail"`
	Level     int            `json:"level"`
	Kind      Kind           `json:"kind"`
	Span      document.Range `json:"span"`
	Highlight document.Range `json:"highlight"`
	Children  []*Node        `json:"children,omitempty"`
}
