package outline

import (
	"context"

	"github.com/Ev2geny/beanoutline/internal/document"
)

// builderState lives for exactly one scan. path[i] is the most recently
// inserted node at level i+1, forming the current root-to-frontier path.
type builderState struct {
	roots []*Node
	path  []*Node
}

// insert attaches n to the forest according to its level relative to the
// currently open depth.
func (s *builderState) insert(n *Node, line int) error {
	depth := len(s.path)

	switch {
	case n.Level < 1:
		return &StructureError{Line: line, Level: n.Level, Depth: depth}

	case n.Level == 1:
		// A new top-level section closes all open descendants.
		s.roots = append(s.roots, n)
		s.path = append(s.path[:0], n)

	case n.Level-depth > 1:
		// Skipping forward past an unopened level has no defined parent.
		return &StructureError{Line: line, Level: n.Level, Depth: depth}

	case n.Level <= depth:
		// Return to a shallower or sibling level: attach under the node one
		// level up, then truncate the frontier so deeper nodes are closed.
		parent := s.path[n.Level-2]
		parent.Children = append(parent.Children, n)
		s.path = append(s.path[:n.Level-1], n)

	default:
		// Exactly one level deeper than the frontier.
		parent := s.path[depth-1]
		parent.Children = append(parent.Children, n)
		s.path = append(s.path, n)
	}

	return nil
}

// Build scans src top to bottom exactly once and returns the outline
// forest (root nodes with fully populated subtrees). A document with no
// headings yields an empty forest. Invalid level transitions return a
// *StructureError and no result.
//
// Cancellation is checked between blocks: an interrupted scan returns the
// partial forest built so far together with ctx.Err(), which callers
// should treat as early termination rather than a structural failure.
func Build(ctx context.Context, src document.LineSource) ([]*Node, error) {
	st := &builderState{}
	count := src.LineCount()

	i := 0
	for i < count {
		if err := ctx.Err(); err != nil {
			return st.roots, err
		}

		line := src.LineAt(i)
		if len(line.Text) == 0 || line.Text[0] != Marker {
			i++
			continue
		}

		h, ok := extractHeading(line.Text)
		if !ok {
			// Marker run with an empty label: not a block start.
			i++
			continue
		}

		// Absorb following non-marker lines into this block's span. Any
		// marker-prefixed line ends the span, valid heading or not.
		end := i
		j := i + 1
		for j < count {
			next := src.LineAt(j)
			if len(next.Text) > 0 && next.Text[0] == Marker {
				break
			}
			end = j
			j++
		}

		n := &Node{
			Label: h.label,
			Level: h.level,
			Kind:  kindForLevel(h.level),
			Span: document.Range{
				Start: line.Range.Start,
				End:   src.LineAt(end).Range.End,
			},
			Highlight: document.Range{
				Start: document.Position{Line: i, Column: h.level + 1},
				End:   document.Position{Line: i, Column: len(line.Text)},
			},
		}
		if err := st.insert(n, i); err != nil {
			return nil, err
		}

		i = j
	}

	return st.roots, nil
}
