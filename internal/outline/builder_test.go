package outline

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/Ev2geny/beanoutline/internal/document"
)

func docFromLines(lines ...string) *document.Document {
	return document.New([]byte(strings.Join(lines, "\n")))
}

func mustBuild(t *testing.T, lines ...string) []*Node {
	t.Helper()
	roots, err := Build(context.Background(), docFromLines(lines...))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return roots
}

func TestBuildNoHeadingsYieldsEmptyForest(t *testing.T) {
	inputs := [][]string{
		{},
		{""},
		{"2024-01-01 open Assets:Cash", "", "plain text"},
		{"; a comment line", "another line"},
	}
	for _, lines := range inputs {
		roots := mustBuild(t, lines...)
		if len(roots) != 0 {
			t.Errorf("%q: expected empty forest, got %d roots", lines, len(roots))
		}
	}
}

func TestBuildSiblingAndChildSpans(t *testing.T) {
	// "* A", "text1", "** B", "text2", "* C"
	roots := mustBuild(t, "* A", "text1", "** B", "text2", "* C")

	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(roots))
	}

	a := roots[0]
	if a.Label != "A" || a.Level != 1 {
		t.Errorf("expected root A level 1, got %q level %d", a.Label, a.Level)
	}
	if a.Span.Start.Line != 0 || a.Span.End.Line != 1 {
		t.Errorf("A: expected span lines 0-1, got %d-%d", a.Span.Start.Line, a.Span.End.Line)
	}
	if len(a.Children) != 1 {
		t.Fatalf("expected A to have 1 child, got %d", len(a.Children))
	}

	b := a.Children[0]
	if b.Label != "B" || b.Level != 2 {
		t.Errorf("expected child B level 2, got %q level %d", b.Label, b.Level)
	}
	if b.Span.Start.Line != 2 || b.Span.End.Line != 3 {
		t.Errorf("B: expected span lines 2-3, got %d-%d", b.Span.Start.Line, b.Span.End.Line)
	}

	c := roots[1]
	if c.Label != "C" {
		t.Errorf("expected second root C, got %q", c.Label)
	}
	if c.Span.Start.Line != 4 || c.Span.End.Line != 4 {
		t.Errorf("C: expected span lines 4-4, got %d-%d", c.Span.Start.Line, c.Span.End.Line)
	}
}

func TestBuildBackwardJumpClosesDeeperLevels(t *testing.T) {
	// D returns to level 2 and becomes a sibling of B; C is closed.
	roots := mustBuild(t, "* A", "** B", "*** C", "** D")

	if len(roots) != 1 {
		t.Fatalf("expected 1 root, got %d", len(roots))
	}
	a := roots[0]
	if len(a.Children) != 2 {
		t.Fatalf("expected A to have 2 children, got %d", len(a.Children))
	}
	if a.Children[0].Label != "B" || a.Children[1].Label != "D" {
		t.Errorf("expected children B, D; got %q, %q", a.Children[0].Label, a.Children[1].Label)
	}
	b := a.Children[0]
	if len(b.Children) != 1 || b.Children[0].Label != "C" {
		t.Fatalf("expected B to have single child C, got %v", b.Children)
	}
	if len(a.Children[1].Children) != 0 {
		t.Errorf("expected D to have no children")
	}
}

func TestBuildDeepBackwardJumpToRoot(t *testing.T) {
	// Dropping from level 3 straight back to level 1 closes everything
	// without error.
	roots := mustBuild(t, "* A", "** B", "*** C", "* E", "** F")

	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(roots))
	}
	e := roots[1]
	if e.Label != "E" {
		t.Fatalf("expected second root E, got %q", e.Label)
	}
	if len(e.Children) != 1 || e.Children[0].Label != "F" {
		t.Errorf("expected E to have single child F, got %v", e.Children)
	}
}

func TestBuildForwardSkipFails(t *testing.T) {
	_, err := Build(context.Background(), docFromLines("* A", "*** C"))
	var serr *StructureError
	if !errors.As(err, &serr) {
		t.Fatalf("expected StructureError, got %v", err)
	}
	if serr.Line != 1 || serr.Level != 3 || serr.Depth != 1 {
		t.Errorf("unexpected error detail: line=%d level=%d depth=%d", serr.Line, serr.Level, serr.Depth)
	}
}

func TestBuildFirstHeadingMustBeTopLevel(t *testing.T) {
	_, err := Build(context.Background(), docFromLines("** B", "* A"))
	var serr *StructureError
	if !errors.As(err, &serr) {
		t.Fatalf("expected StructureError, got %v", err)
	}
	if serr.Depth != 0 || serr.Level != 2 {
		t.Errorf("unexpected error detail: level=%d depth=%d", serr.Level, serr.Depth)
	}

	// A level-1 first heading is fine.
	roots := mustBuild(t, "* A")
	if len(roots) != 1 {
		t.Fatalf("expected 1 root, got %d", len(roots))
	}
}

func TestBuildSkipsMarkerOnlyLines(t *testing.T) {
	// The bare "*" line is not a heading, but it still terminates the
	// span of the block before it and belongs to no block.
	roots := mustBuild(t, "* A", "text", "*", "more text", "* B")

	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(roots))
	}
	a := roots[0]
	if a.Span.End.Line != 1 {
		t.Errorf("expected A span to end at line 1, got %d", a.Span.End.Line)
	}
}

func TestBuildHighlightSkipsMarkerRun(t *testing.T) {
	roots := mustBuild(t, "** Brokerage")
	hl := roots[0].Highlight
	if hl.Start.Line != 0 || hl.Start.Column != 3 {
		t.Errorf("expected highlight start (0,3), got (%d,%d)", hl.Start.Line, hl.Start.Column)
	}
	if hl.End.Column != len("** Brokerage") {
		t.Errorf("expected highlight end column %d, got %d", len("** Brokerage"), hl.End.Column)
	}
}

func TestBuildKindsFollowLevel(t *testing.T) {
	roots := mustBuild(t, "* A", "** B")
	if roots[0].Kind != KindClass {
		t.Errorf("expected level-1 kind %q, got %q", KindClass, roots[0].Kind)
	}
	if roots[0].Children[0].Kind != KindFunction {
		t.Errorf("expected level-2 kind %q, got %q", KindFunction, roots[0].Children[0].Kind)
	}
}

func TestBuildSpanExtendsToEndOfDocument(t *testing.T) {
	roots := mustBuild(t, "* A", "line1", "line2", "line3")
	if got := roots[0].Span.End.Line; got != 3 {
		t.Errorf("expected span end line 3, got %d", got)
	}
}

func TestBuildIsIdempotent(t *testing.T) {
	lines := []string{"* A", "text1", "** B", "*** C", "** D", "* E  ;trailing", "body"}
	first := mustBuild(t, lines...)
	second := mustBuild(t, lines...)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("two builds of the same input differ:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestBuildCancellationReturnsPartialResult(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	roots, err := Build(ctx, docFromLines("* A", "* B"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(roots) != 0 {
		t.Errorf("expected no roots from an immediately cancelled scan, got %d", len(roots))
	}
}
