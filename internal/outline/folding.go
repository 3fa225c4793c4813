package outline

// Folding is a collapsible line range derived from a section span.
type Folding struct {
	StartLine int `json:"start_line"`
	EndLine   int `json:"end_line"`
}

// FoldingRanges returns one range per node whose span extends past its own
// heading line, depth-first in document order.
func FoldingRanges(roots []*Node) []Folding {
	var folds []Folding
	var walk func(nodes []*Node)
	walk = func(nodes []*Node) {
		for _, n := range nodes {
			if n.Span.End.Line > n.Span.Start.Line {
				folds = append(folds, Folding{
					StartLine: n.Span.Start.Line,
					EndLine:   n.Span.End.Line,
				})
			}
			walk(n.Children)
		}
	}
	walk(roots)
	return folds
}
