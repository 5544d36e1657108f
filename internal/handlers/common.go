// Package handlers exposes the scanning flow over HTTP for the mobile
// clients. One scan session maps onto one session controller; the store
// enforces the single-outstanding-call rule per session.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/jinhuihu/orc-book/internal/config"
	"github.com/jinhuihu/orc-book/internal/library"
	"github.com/jinhuihu/orc-book/internal/lookup"
	"github.com/jinhuihu/orc-book/internal/recognize"
	"github.com/jinhuihu/orc-book/internal/storage"
)

type Handler struct {
	sessions   *storage.SessionStore
	library    *library.Store
	recognizer recognize.Provider
	lookup     lookup.Service
	exportDir  string
}

// New wires a handler from configuration.
func New(cfg *config.Config) *Handler {
	rec := recognize.NewFromSettings(
		cfg.Recognizer.Engine,
		cfg.Recognizer.Languages,
		cfg.Recognizer.Model,
		cfg.Recognizer.OllamaHost,
	)
	svc := lookup.NewGoogleBooks(cfg.GoogleBooks.BaseURL, cfg.GoogleBooks.APIKey)
	return NewWith(rec, svc, library.NewStore(cfg.LibraryPath), cfg.ExportDir)
}

// NewWith wires a handler from explicit collaborators, mainly for tests.
func NewWith(rec recognize.Provider, svc lookup.Service, lib *library.Store, exportDir string) *Handler {
	return &Handler{
		sessions:   storage.New(),
		library:    lib,
		recognizer: rec,
		lookup:     svc,
		exportDir:  exportDir,
	}
}

// Routes registers every endpoint on mux.
func (h *Handler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/api/sessions", h.HandleSessions)
	mux.HandleFunc("/api/sessions/", h.HandleSessionDetail)
	mux.HandleFunc("/api/books", h.HandleBooks)
	mux.HandleFunc("/api/books/", h.HandleBookDetail)
	mux.HandleFunc("/api/export", h.HandleExport)
	mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			slog.Error("Unable to write healthcheck", "err", err)
		}
	})
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}

// Session helpers
func (h *Handler) getSessionOrError(w http.ResponseWriter, sessionID string) (*storage.ScanSession, bool) {
	sess, exists := h.sessions.Get(sessionID)
	if !exists {
		h.writeError(w, "Session not found", http.StatusNotFound)
		return nil, false
	}
	return sess, true
}
