// Package document provides the line-oriented view of a ledger that the
// outline builder scans. It is deliberately dumb: no syntax knowledge, just
// indexed access to lines and their positions.
package document

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// Position is a 0-based line/column location. Columns count bytes within
// the line's text.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Range spans from Start to End, end-exclusive in the column dimension.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Line is one line of the document together with the range it occupies.
type Line struct {
	Text  string
	Range Range
}

// LineSource is the host abstraction the outline builder consumes: indexed
// line access with no other document knowledge.
type LineSource interface {
	LineCount() int
	LineAt(i int) Line
}

// Document is an in-memory LineSource built from raw file bytes.
type Document struct {
	lines []Line
	hash  string
}

// New splits data into lines. A trailing newline does not produce an empty
// final line, and Windows line endings are tolerated.
func New(data []byte) *Document {
	d := &Document{hash: Hash(data)}
	if len(data) == 0 {
		return d
	}
	raw := strings.Split(string(data), "\n")
	if raw[len(raw)-1] == "" {
		raw = raw[:len(raw)-1]
	}
	d.lines = make([]Line, len(raw))
	for i, text := range raw {
		text = strings.TrimSuffix(text, "\r")
		d.lines[i] = Line{
			Text: text,
			Range: Range{
				Start: Position{Line: i, Column: 0},
				End:   Position{Line: i, Column: len(text)},
			},
		}
	}
	return d
}

func (d *Document) LineCount() int {
	return len(d.lines)
}

func (d *Document) LineAt(i int) Line {
	return d.lines[i]
}

// ContentHash returns the SHA-256 hex digest of the original bytes.
func (d *Document) ContentHash() string {
	return d.hash
}

// Hash computes the SHA-256 hex digest of content, used for document IDs
// and duplicate detection.
func Hash(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
