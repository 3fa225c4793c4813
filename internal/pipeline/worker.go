package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Ev2geny/beanoutline/internal/document"
	"github.com/Ev2geny/beanoutline/internal/outline"
	"github.com/Ev2geny/beanoutline/internal/stats"
	"github.com/Ev2geny/beanoutline/internal/store"
)

// Worker processes a single ingestion job.
type Worker struct {
	st    *store.Store
	scans *stats.ScanStats
	log   *slog.Logger
}

func NewWorker(st *store.Store, scans *stats.ScanStats, log *slog.Logger) *Worker {
	return &Worker{st: st, scans: scans, log: log}
}

// Process runs the full ingest pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "doc_id", job.DocID)

	// Phase 1: Parse into lines.
	job.SetStatus(StatusParsing, "parsing")
	doc := document.New(job.FileData())
	job.SetContentHash(doc.ContentHash())

	// Phase 1.5: Dedup check.
	existing, err := w.st.LookupHash(doc.ContentHash())
	if err != nil {
		log.Warn("dedup check failed, proceeding", "error", err)
	} else if existing != "" && existing != job.DocID {
		log.Info("duplicate document, skipping", "existing_doc_id", existing)
		job.SetStatus(StatusDupSkipped, "dedup")
		return
	}

	// Phase 2: Build the outline forest.
	job.SetStatus(StatusBuilding, "building")
	start := time.Now()
	roots, err := outline.Build(ctx, doc)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			w.scans.RecordCancelled()
			log.Info("scan abandoned", "reason", err)
			job.SetStatus(StatusFailed, "cancelled")
			return
		}
		var serr *outline.StructureError
		if errors.As(err, &serr) {
			w.scans.RecordStructureError()
		}
		log.Error("outline build failed", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "building")
		return
	}

	headings := len(outline.Flatten(roots))
	job.SetCounts(doc.LineCount(), headings, len(roots))
	w.scans.RecordScan(headings, time.Since(start))
	log.Info("outline built", "lines", doc.LineCount(), "headings", headings, "roots", len(roots))

	// Phase 3: Persist.
	job.SetStatus(StatusStoring, "storing")
	rec := store.Record{
		DocID:       job.DocID,
		Filename:    job.Filename,
		ContentHash: doc.ContentHash(),
		Headings:    headings,
		Outline:     roots,
		CreatedAt:   job.CreatedAt,
	}
	if err := w.st.SaveRecord(rec); err != nil {
		log.Error("store failed", "error", err)
		job.AddError(fmt.Sprintf("store: %s", err))
		job.SetStatus(StatusFailed, "storing")
		return
	}

	job.SetStatus(StatusCompleted, "done")
}
