package document

import "testing"

func TestNewSplitsLines(t *testing.T) {
	d := New([]byte("* A\ntext\n* B"))
	if d.LineCount() != 3 {
		t.Fatalf("expected 3 lines, got %d", d.LineCount())
	}
	if got := d.LineAt(1).Text; got != "text" {
		t.Errorf("expected line 1 %q, got %q", "text", got)
	}
	r := d.LineAt(2).Range
	if r.Start.Line != 2 || r.Start.Column != 0 {
		t.Errorf("expected range start (2,0), got (%d,%d)", r.Start.Line, r.Start.Column)
	}
	if r.End.Column != len("* B") {
		t.Errorf("expected range end column %d, got %d", len("* B"), r.End.Column)
	}
}

func TestNewTrailingNewlineProducesNoEmptyLine(t *testing.T) {
	d := New([]byte("one\ntwo\n"))
	if d.LineCount() != 2 {
		t.Errorf("expected 2 lines, got %d", d.LineCount())
	}
}

func TestNewEmptyInput(t *testing.T) {
	d := New(nil)
	if d.LineCount() != 0 {
		t.Errorf("expected 0 lines, got %d", d.LineCount())
	}
}

func TestNewStripsCarriageReturns(t *testing.T) {
	d := New([]byte("* A\r\ntext\r\n"))
	if d.LineCount() != 2 {
		t.Fatalf("expected 2 lines, got %d", d.LineCount())
	}
	if got := d.LineAt(0).Text; got != "* A" {
		t.Errorf("expected %q, got %q", "* A", got)
	}
	if got := d.LineAt(0).Range.End.Column; got != 3 {
		t.Errorf("expected end column 3, got %d", got)
	}
}

func TestHashIsStable(t *testing.T) {
	a := Hash([]byte("content"))
	b := Hash([]byte("content"))
	if a != b {
		t.Errorf("expected identical hashes, got %q and %q", a, b)
	}
	if len(a) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(a))
	}
	if a == Hash([]byte("other")) {
		t.Error("expected different content to hash differently")
	}
}
