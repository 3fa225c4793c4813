package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/Ev2geny/beanoutline/internal/document"
	"github.com/Ev2geny/beanoutline/internal/outline"
)

// handleOutline builds an outline synchronously from the request body.
// The body is the raw ledger text; nothing is persisted.
func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		jsonError(w, "failed to read body: "+err.Error(), http.StatusRequestEntityTooLarge)
		return
	}

	doc := document.New(data)
	start := time.Now()
	roots, err := outline.Build(r.Context(), doc)
	if err != nil {
		var serr *outline.StructureError
		if errors.As(err, &serr) {
			s.scans.RecordStructureError()
			jsonError(w, serr.Error(), http.StatusUnprocessableEntity)
			return
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			s.scans.RecordCancelled()
		}
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	headings := len(outline.Flatten(roots))
	s.scans.RecordScan(headings, time.Since(start))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"content_hash": doc.ContentHash(),
		"lines":        doc.LineCount(),
		"headings":     headings,
		"outline":      roots,
	})
}
