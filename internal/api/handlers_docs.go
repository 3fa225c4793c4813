package api

import (
	"encoding/json"
	"net/http"

	"github.com/Ev2geny/beanoutline/internal/render"
	"github.com/go-chi/chi/v5"
)

// handleListDocuments lists all stored document outlines.
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	recs, err := s.orchestrator.Store().ListRecords()
	if err != nil {
		jsonError(w, "failed to list documents: "+err.Error(), http.StatusInternalServerError)
		return
	}

	docs := make([]map[string]any, 0, len(recs))
	for _, rec := range recs {
		docs = append(docs, map[string]any{
			"doc_id":       rec.DocID,
			"filename":     rec.Filename,
			"content_hash": rec.ContentHash,
			"headings":     rec.Headings,
			"created_at":   rec.CreatedAt,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"documents": docs})
}

// handleGetDocument returns the full stored record, outline included.
func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	rec, err := s.orchestrator.Store().GetRecord(docID)
	if err != nil {
		jsonError(w, "failed to read document: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if rec == nil {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rec)
}

// handleDocumentOutline returns the stored outline in the requested format:
// json (default), markdown, or html.
func (s *Server) handleDocumentOutline(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	rec, err := s.orchestrator.Store().GetRecord(docID)
	if err != nil {
		jsonError(w, "failed to read document: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if rec == nil {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}

	switch format := r.URL.Query().Get("format"); format {
	case "", "json":
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"doc_id":  rec.DocID,
			"outline": rec.Outline,
		})
	case "markdown":
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.Write(render.Markdown(rec.Outline))
	case "html":
		html, err := render.HTML(rec.Outline)
		if err != nil {
			jsonError(w, "failed to render html: "+err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(html)
	default:
		jsonError(w, "unknown format: "+format, http.StatusBadRequest)
	}
}

// handleDeleteDocument deletes a stored outline and its hash index entry.
func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	if err := s.orchestrator.Store().DeleteRecord(docID); err != nil {
		jsonError(w, "failed to delete document: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"doc_id": docID, "deleted": true})
}
