package engine

import (
	"context"
	"net/http"
	"time"
)

// Completer is the text-generation capability. The default implementation is
// OpenAIClient; tests install fakes.
type Completer interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// Embedder produces fixed-dimension vector embeddings for a batch of texts,
// one vector per input, in input order.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// CaptionTrack describes one available caption track for a video.
type CaptionTrack struct {
	Language string // BCP-47 language code, e.g. "en", "en-US"
	Kind     string // "asr" = auto-generated
	BaseURL  string
}

// CaptionSource lists and fetches caption tracks for a video.
// The production implementation is sources.YouTubeSource.
type CaptionSource interface {
	Tracks(ctx context.Context, videoID string) ([]CaptionTrack, error)
	Fetch(ctx context.Context, track CaptionTrack) (string, error)
}

// Config holds all engine configuration, injected from main.
type Config struct {
	LLMAPIKey      string
	LLMAPIBase     string
	LLMModel       string
	LLMTemperature float64
	LLMMaxTokens   int
	EmbedModel     string

	SummaryInputLimit int // max chars handed to the summarizer LLM call
	ChunkSize         int
	ChunkOverlap      int
	RetrievalTopK     int

	FetchTimeout         time.Duration
	CacheMaxEntries      int
	CacheCleanupInterval time.Duration

	HTTPClient *http.Client
	Completer  Completer
	Embedder   Embedder
	Captions   CaptionSource
}

var cfg Config

// Cfg exposes the engine configuration for sub-packages (sources).
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
func Init(c Config) {
	cfg = c
	Cfg = &cfg
}
