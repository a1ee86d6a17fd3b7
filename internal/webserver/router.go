package webserver

import (
	"net/http"
)

// NewRouter wires the HTTP surface. Method-qualified patterns keep the
// handlers free of method dispatch.
func NewRouter(h *Handler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", h.Root)
	mux.HandleFunc("POST /api/summarize", h.Summarize)
	mux.HandleFunc("POST /api/chat", h.Chat)
	mux.HandleFunc("DELETE /api/session/{id}", h.DeleteSession)
	mux.HandleFunc("GET /api/health", h.Health)
	mux.HandleFunc("GET /metrics", h.Metrics)

	return withCORS(withRequestID(withAccessLog(mux)))
}
