package outline

// Entry is a flattened outline row with the heading hierarchy that leads
// to it, e.g. ["Assets", "Brokerage", "2024"].
type Entry struct {
	Label      string   `json:"label"`
	Level      int      `json:"level"`
	Kind       Kind     `json:"kind"`
	Breadcrumb []string `json:"breadcrumb,omitempty"`
	StartLine  int      `json:"start_line"`
	EndLine    int      `json:"end_line"`
}

// Flatten walks the forest depth-first in document order and returns one
// entry per node.
func Flatten(roots []*Node) []Entry {
	var entries []Entry
	for _, root := range roots {
		entries = walkNode(root, nil, entries)
	}
	return entries
}

func walkNode(node *Node, breadcrumb []string, entries []Entry) []Entry {
	entries = append(entries, Entry{
		Label:      node.Label,
		Level:      node.Level,
		Kind:       node.Kind,
		Breadcrumb: copyBreadcrumb(breadcrumb),
		StartLine:  node.Span.Start.Line,
		EndLine:    node.Span.End.Line,
	})

	bc := append(copyBreadcrumb(breadcrumb), node.Label)
	for _, child := range node.Children {
		entries = walkNode(child, bc, entries)
	}
	return entries
}

func copyBreadcrumb(bc []string) []string {
	if len(bc) == 0 {
		return nil
	}
	out := make([]string, len(bc))
	copy(out, bc)
	return out
}
