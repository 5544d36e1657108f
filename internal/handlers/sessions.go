package handlers

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jinhuihu/orc-book/internal/extract"
	"github.com/jinhuihu/orc-book/internal/recognize"
	"github.com/jinhuihu/orc-book/internal/session"
	"github.com/jinhuihu/orc-book/internal/storage"
)

const maxImageBytes = 10 * 1024 * 1024

type sessionInfo struct {
	ID        string `json:"session_id"`
	Step      string `json:"step"`
	Prompt    string `json:"prompt"`
	CreatedAt string `json:"created_at"`
}

func newSessionInfo(sess *storage.ScanSession) sessionInfo {
	step := sess.Controller.Step()
	return sessionInfo{
		ID:        sess.ID,
		Step:      step.String(),
		Prompt:    step.Prompt(),
		CreatedAt: sess.CreatedAt.Format(time.RFC3339),
	}
}

func (h *Handler) HandleSessions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "POST":
		sessionID := uuid.NewString()
		sess := &storage.ScanSession{
			ID:         sessionID,
			Controller: session.New(h.lookup),
			CreatedAt:  time.Now(),
		}
		h.sessions.Set(sessionID, sess)
		h.writeJSON(w, newSessionInfo(sess))
	case "GET":
		sessions := h.sessions.GetAll()
		sessionList := make([]sessionInfo, 0, len(sessions))
		for _, sess := range sessions {
			sessionList = append(sessionList, newSessionInfo(sess))
		}
		h.writeJSON(w, sessionList)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) HandleSessionDetail(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/sessions/")
	sessionID, action, _ := strings.Cut(rest, "/")

	sess, ok := h.getSessionOrError(w, sessionID)
	if !ok {
		return
	}

	switch action {
	case "scan":
		h.handleScan(w, r, sess)
	case "skip":
		h.handleSkip(w, r, sess)
	case "":
		switch r.Method {
		case "GET":
			h.writeJSON(w, newSessionInfo(sess))
		case "DELETE":
			sess.Controller.Cancel()
			h.sessions.Delete(sessionID)
			w.WriteHeader(http.StatusNoContent)
		default:
			h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	default:
		h.writeError(w, "Not found", http.StatusNotFound)
	}
}

// handleScan runs one recognition pass against the session. A session
// accepts one pass at a time; concurrent calls get 409.
func (h *Handler) handleScan(w http.ResponseWriter, r *http.Request, sess *storage.ScanSession) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if !sess.TryAcquire() {
		h.writeError(w, "Session is busy with another scan", http.StatusConflict)
		return
	}
	defer sess.Release()

	img, err := readImage(r)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	prepared, err := recognize.PrepareBytes(img)
	if err != nil {
		h.writeError(w, "Failed to decode image: "+err.Error(), http.StatusBadRequest)
		return
	}

	res, err := h.recognizer.Recognize(r.Context(), prepared)
	if err != nil {
		h.writeError(w, "Recognition failed: "+err.Error(), http.StatusBadGateway)
		return
	}

	outcome := sess.Controller.HandlePass(r.Context(), extract.Fields(res))
	h.finishPass(w, sess, outcome)
}

func (h *Handler) handleSkip(w http.ResponseWriter, r *http.Request, sess *storage.ScanSession) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if !sess.TryAcquire() {
		h.writeError(w, "Session is busy with another scan", http.StatusConflict)
		return
	}
	defer sess.Release()

	h.finishPass(w, sess, sess.Controller.Skip())
}

// finishPass persists a finalized book and tears the session down, or
// reports the next step to the client.
func (h *Handler) finishPass(w http.ResponseWriter, sess *storage.ScanSession, outcome session.Outcome) {
	if outcome.Book != nil {
		if err := h.library.Add(*outcome.Book); err != nil {
			h.writeError(w, "Failed to save book: "+err.Error(), http.StatusInternalServerError)
			return
		}
		h.sessions.Delete(sess.ID)
	}
	h.writeJSON(w, outcome)
}

// readImage accepts either a multipart form with an "image" (or "file")
// part, or a raw image body.
func readImage(r *http.Request) ([]byte, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.Contains(contentType, "multipart/form-data") {
		file, _, err := r.FormFile("image")
		if err != nil {
			file, _, err = r.FormFile("file")
			if err != nil {
				return nil, err
			}
		}
		defer file.Close()
		return io.ReadAll(io.LimitReader(file, maxImageBytes))
	}
	return io.ReadAll(io.LimitReader(r.Body, maxImageBytes))
}
