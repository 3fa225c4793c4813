package pipeline

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/Ev2geny/beanoutline/internal/stats"
	"github.com/Ev2geny/beanoutline/internal/store"
)

func newTestWorker(t *testing.T) (*Worker, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "outlines.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewWorker(st, stats.NewScanStats(time.Hour), log), st
}

func newTestJob(id, docID string, data []byte) *Job {
	now := time.Now()
	job := &Job{
		ID:        id,
		DocID:     docID,
		Status:    StatusQueued,
		Phase:     "queued",
		Filename:  docID + ".beancount",
		CreatedAt: now,
		UpdatedAt: now,
	}
	job.SetFileData(data)
	return job
}

func TestWorkerProcessStoresOutline(t *testing.T) {
	w, st := newTestWorker(t)
	job := newTestJob("j1", "doc1", []byte("* Assets\n** Brokerage\ntext\n* Expenses\n"))

	w.Process(context.Background(), job)

	if job.Status != StatusCompleted {
		t.Fatalf("expected status %q, got %q (phase %q)", StatusCompleted, job.Status, job.Phase)
	}
	snap := job.Snapshot()
	if snap.Progress.Headings != 3 || snap.Progress.Roots != 2 {
		t.Errorf("expected 3 headings / 2 roots, got %d / %d", snap.Progress.Headings, snap.Progress.Roots)
	}

	rec, err := st.GetRecord("doc1")
	if err != nil {
		t.Fatalf("get record: %v", err)
	}
	if rec == nil {
		t.Fatal("expected stored record")
	}
	if len(rec.Outline) != 2 {
		t.Errorf("expected 2 roots in stored outline, got %d", len(rec.Outline))
	}
}

func TestWorkerProcessStructureErrorFailsJob(t *testing.T) {
	w, st := newTestWorker(t)
	job := newTestJob("j1", "doc1", []byte("* A\n*** C\n"))

	w.Process(context.Background(), job)

	if job.Status != StatusFailed {
		t.Fatalf("expected status %q, got %q", StatusFailed, job.Status)
	}
	snap := job.Snapshot()
	if len(snap.Progress.Errors) == 0 {
		t.Fatal("expected a recorded error")
	}

	if rec, _ := st.GetRecord("doc1"); rec != nil {
		t.Error("a failed build must not store a record")
	}
}

func TestWorkerProcessSkipsDuplicate(t *testing.T) {
	w, _ := newTestWorker(t)
	data := []byte("* Assets\n")

	first := newTestJob("j1", "doc1", data)
	w.Process(context.Background(), first)
	if first.Status != StatusCompleted {
		t.Fatalf("expected first job completed, got %q", first.Status)
	}

	second := newTestJob("j2", "doc2", data)
	w.Process(context.Background(), second)
	if second.Status != StatusDupSkipped {
		t.Errorf("expected duplicate job skipped, got %q", second.Status)
	}
}

func TestWorkerProcessCancelledContext(t *testing.T) {
	w, st := newTestWorker(t)
	job := newTestJob("j1", "doc1", []byte("* Assets\n"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w.Process(ctx, job)

	if job.Status != StatusFailed || job.Phase != "cancelled" {
		t.Errorf("expected failed/cancelled, got %q/%q", job.Status, job.Phase)
	}
	if rec, _ := st.GetRecord("doc1"); rec != nil {
		t.Error("a cancelled scan must not store a record")
	}
}
