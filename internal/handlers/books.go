package handlers

import (
	"net/http"
	"strconv"
	"strings"
)

func (h *Handler) HandleBooks(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		books, err := h.library.Load()
		if err != nil {
			h.writeError(w, "Failed to load books: "+err.Error(), http.StatusInternalServerError)
			return
		}
		h.writeJSON(w, books)
	case "DELETE":
		if err := h.library.Clear(); err != nil {
			h.writeError(w, "Failed to clear books: "+err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) HandleBookDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != "DELETE" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	raw := strings.TrimPrefix(r.URL.Path, "/api/books/")
	index, err := strconv.Atoi(raw)
	if err != nil {
		h.writeError(w, "Invalid book index: "+raw, http.StatusBadRequest)
		return
	}

	if err := h.library.Remove(index); err != nil {
		h.writeError(w, err.Error(), http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
