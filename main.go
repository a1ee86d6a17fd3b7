// go_tube — video summary + conversational Q&A server.
//
// POST /api/summarize ingests a video: caption transcript (multi-language
// fallback), LLM summary, and a retrieval index over transcript chunks.
// POST /api/chat answers follow-up questions against that index with
// conversational memory. Sessions are in-memory for the process lifetime.
package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go_tube/internal/engine"
	"github.com/anatolykoptev/go_tube/internal/engine/sources"
	"github.com/anatolykoptev/go_tube/internal/webserver"
)

var (
	version = "dev"
	port    = env.Str("PORT", "8000")
)

func main() {
	initEngine()

	slog.Info("starting go_tube",
		slog.String("version", version),
		slog.String("port", port),
	)

	handler := webserver.NewRouter(&webserver.Handler{})
	if err := webserver.Run(port, handler); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}

func initEngine() {
	c := engine.Config{
		LLMAPIKey:            env.Str("LLM_API_KEY", ""),
		LLMAPIBase:           env.Str("LLM_API_BASE", "https://api.openai.com/v1"),
		LLMModel:             env.Str("LLM_MODEL", "gpt-4o-mini"),
		LLMTemperature:       env.Float("LLM_TEMPERATURE", 0.7),
		LLMMaxTokens:         env.Int("LLM_MAX_TOKENS", 800),
		EmbedModel:           env.Str("EMBED_MODEL", "text-embedding-3-small"),
		SummaryInputLimit:    env.Int("SUMMARY_INPUT_LIMIT", 12000),
		ChunkSize:            env.Int("CHUNK_SIZE", 1000),
		ChunkOverlap:         env.Int("CHUNK_OVERLAP", 200),
		RetrievalTopK:        env.Int("RETRIEVAL_TOP_K", 5),
		FetchTimeout:         env.Duration("FETCH_TIMEOUT", 10*time.Second),
		CacheMaxEntries:      env.Int("CACHE_MAX_ENTRIES", 1000),
		CacheCleanupInterval: env.Duration("CACHE_CLEANUP_INTERVAL", 300*time.Second),
		Captions:             sources.NewYouTubeSource(),
	}
	c.HTTPClient = &http.Client{
		Timeout: c.FetchTimeout + 5*time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        20,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     60 * time.Second,
		},
	}

	provider := engine.NewOpenAIClient(c.LLMAPIBase, c.LLMAPIKey, c.LLMModel,
		c.EmbedModel, c.LLMTemperature, c.LLMMaxTokens)
	c.Completer = provider
	c.Embedder = provider

	engine.Init(c)

	cacheTTL := env.Duration("CACHE_TTL", 24*time.Hour)
	engine.InitCache(env.Str("REDIS_URL", ""), cacheTTL, c.CacheMaxEntries, c.CacheCleanupInterval)
}
