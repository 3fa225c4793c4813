package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Ev2geny/beanoutline/internal/document"
	"github.com/Ev2geny/beanoutline/internal/outline"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "outlines.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testRecord(t *testing.T, docID, src string) Record {
	t.Helper()
	data := []byte(src)
	roots, err := outline.Build(context.Background(), document.New(data))
	if err != nil {
		t.Fatalf("build outline: %v", err)
	}
	return Record{
		DocID:       docID,
		Filename:    docID + ".beancount",
		ContentHash: document.Hash(data),
		Headings:    len(outline.Flatten(roots)),
		Outline:     roots,
		CreatedAt:   time.Now().UTC(),
	}
}

func TestSaveAndGetRecord(t *testing.T) {
	s := openTestStore(t)
	rec := testRecord(t, "doc1", "* Assets\n** Brokerage\n* Expenses")

	if err := s.SaveRecord(rec); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.GetRecord("doc1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected record, got nil")
	}
	if got.Headings != 3 {
		t.Errorf("expected 3 headings, got %d", got.Headings)
	}
	if len(got.Outline) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(got.Outline))
	}
	if got.Outline[0].Children[0].Label != "Brokerage" {
		t.Errorf("expected nested label to survive round-trip, got %q", got.Outline[0].Children[0].Label)
	}
}

func TestGetRecordMissingReturnsNil(t *testing.T) {
	s := openTestStore(t)
	got, err := s.GetRecord("nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing record, got %+v", got)
	}
}

func TestLookupHashAfterSaveAndDelete(t *testing.T) {
	s := openTestStore(t)
	rec := testRecord(t, "doc1", "* Assets")

	if err := s.SaveRecord(rec); err != nil {
		t.Fatalf("save: %v", err)
	}

	docID, err := s.LookupHash(rec.ContentHash)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if docID != "doc1" {
		t.Errorf("expected doc1, got %q", docID)
	}

	if err := s.DeleteRecord("doc1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	docID, err = s.LookupHash(rec.ContentHash)
	if err != nil {
		t.Fatalf("lookup after delete: %v", err)
	}
	if docID != "" {
		t.Errorf("expected hash entry removed, got %q", docID)
	}
	if got, _ := s.GetRecord("doc1"); got != nil {
		t.Errorf("expected record removed, got %+v", got)
	}
}

func TestListRecords(t *testing.T) {
	s := openTestStore(t)
	for _, id := range []string{"a", "b", "c"} {
		if err := s.SaveRecord(testRecord(t, id, "* Section "+id)); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}
	recs, err := s.ListRecords()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected 3 records, got %d", len(recs))
	}
	if recs[0].DocID != "a" || recs[2].DocID != "c" {
		t.Errorf("expected key order a..c, got %q..%q", recs[0].DocID, recs[2].DocID)
	}
}

func TestDeleteUnknownIsNoOp(t *testing.T) {
	s := openTestStore(t)
	if err := s.DeleteRecord("ghost"); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}
