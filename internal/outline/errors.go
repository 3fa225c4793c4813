package outline

import "fmt"

// StructureError reports an invalid level transition during tree insertion:
// either a heading level below 1, or a forward skip of more than one level
// (e.g. a level-3 heading while only level 1 is open). Both abort the scan;
// guessing a parent would silently corrupt the tree.
type StructureError struct {
	Line  int // 0-based line index of the offending heading
	Level int // level of the block being inserted
	Depth int // open depth at the time of insertion
}

func (e *StructureError) Error() string {
	if e.Level < 1 {
		return fmt.Sprintf("outline: invalid heading level %d at line %d", e.Level, e.Line)
	}
	return fmt.Sprintf("outline: heading at line %d jumps to level %d with only %d level(s) open", e.Line, e.Level, e.Depth)
}
