package engine

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	TranscriptRequests atomic.Int64
	TranscriptErrors   atomic.Int64
	LLMCalls           atomic.Int64
	LLMErrors          atomic.Int64
	EmbedCalls         atomic.Int64
	EmbedErrors        atomic.Int64
	SessionsCreated    atomic.Int64
	SessionsDeleted    atomic.Int64
	QuestionsAsked     atomic.Int64
}

// GetMetrics returns a snapshot of all metrics including cache stats.
func GetMetrics() map[string]int64 {
	hits, misses := CacheStats()
	return map[string]int64{
		"transcript_requests": metrics.TranscriptRequests.Load(),
		"transcript_errors":   metrics.TranscriptErrors.Load(),
		"llm_calls":           metrics.LLMCalls.Load(),
		"llm_errors":          metrics.LLMErrors.Load(),
		"embed_calls":         metrics.EmbedCalls.Load(),
		"embed_errors":        metrics.EmbedErrors.Load(),
		"sessions_created":    metrics.SessionsCreated.Load(),
		"sessions_deleted":    metrics.SessionsDeleted.Load(),
		"questions_asked":     metrics.QuestionsAsked.Load(),
		"cache_hits":          hits,
		"cache_misses":        misses,
	}
}

// FormatMetrics returns metrics as a simple text format for the HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	keys := []string{
		"transcript_requests", "transcript_errors",
		"llm_calls", "llm_errors",
		"embed_calls", "embed_errors",
		"sessions_created", "sessions_deleted", "questions_asked",
		"cache_hits", "cache_misses",
	}
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors for the transcript acquisition path.
func incrTranscriptRequests() { metrics.TranscriptRequests.Add(1) }
func incrTranscriptErrors()   { metrics.TranscriptErrors.Add(1) }
