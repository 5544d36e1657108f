package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/jinhuihu/orc-book/internal/export"
)

func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var request struct {
		Format string `json:"format"`
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
	}
	if request.Format == "" {
		request.Format = "csv"
	}

	books, err := h.library.Load()
	if err != nil {
		h.writeError(w, "Failed to load books: "+err.Error(), http.StatusInternalServerError)
		return
	}

	path, err := export.ToFile(h.exportDir, request.Format, books)
	if err != nil {
		h.writeError(w, "Export failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	h.writeJSON(w, map[string]any{
		"path":  path,
		"books": len(books),
	})
}
