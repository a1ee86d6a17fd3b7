package webserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/anatolykoptev/go_tube/internal/engine"
)

// Handler serves the video summary + chat API.
type Handler struct{}

type summarizeRequest struct {
	VideoURL string `json:"video_url"`
}

type summarizeResponse struct {
	Summary          string `json:"summary"`
	SessionID        string `json:"session_id"`
	VideoID          string `json:"video_id"`
	TranscriptLength int    `json:"transcript_length"`
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	Question  string `json:"question"`
}

type chatResponse struct {
	Answer    string `json:"answer"`
	SessionID string `json:"session_id"`
}

// Root returns the service banner.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "go_tube video summarizer API",
		"status":  "active",
	})
}

// Summarize ingests a video: transcript, summary, and a fresh chat session.
func (h *Handler) Summarize(w http.ResponseWriter, r *http.Request) {
	var req summarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.VideoURL) == "" {
		writeError(w, http.StatusBadRequest, "video_url is required")
		return
	}

	result, err := engine.ProcessVideo(r.Context(), req.VideoURL)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summarizeResponse{
		Summary:          result.Summary,
		SessionID:        result.SessionID,
		VideoID:          result.VideoID,
		TranscriptLength: result.TranscriptLength,
	})
}

// Chat answers a question against an existing session.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeError(w, http.StatusBadRequest, "question is required")
		return
	}

	session, err := engine.GetSession(req.SessionID)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	answer, err := engine.Ask(r.Context(), session, req.Question)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{Answer: answer, SessionID: session.ID})
}

// DeleteSession removes a session.
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := engine.DeleteSession(id); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "session cleared successfully"})
}

// Health reports liveness and the live session count.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":          "healthy",
		"active_sessions": engine.ActiveSessions(),
	})
}

// Metrics serves engine counters as plain text.
func (h *Handler) Metrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(engine.FormatMetrics()))
}

// writeEngineError maps the engine error taxonomy onto HTTP statuses:
// caller-input errors → 400, unknown session → 404, provider failures → 500.
func writeEngineError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, engine.ErrSessionNotFound):
		status = http.StatusNotFound
	case engine.CallerError(err):
		status = http.StatusBadRequest
	}
	writeError(w, status, err.Error())
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(payload)
}
