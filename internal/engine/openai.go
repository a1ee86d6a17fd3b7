package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// OpenAIClient talks to an OpenAI-compatible API (chat completions and
// embeddings share the same base URL and key). It is the default Completer
// and Embedder implementation.
type OpenAIClient struct {
	baseURL     string
	apiKey      string
	model       string
	embedModel  string
	temperature float64
	maxTokens   int
	http        *http.Client
}

// NewOpenAIClient creates a provider client for the given base URL and key.
func NewOpenAIClient(baseURL, apiKey, model, embedModel string, temperature float64, maxTokens int) *OpenAIClient {
	return &OpenAIClient{
		baseURL:     baseURL,
		apiKey:      apiKey,
		model:       model,
		embedModel:  embedModel,
		temperature: temperature,
		maxTokens:   maxTokens,
		http:        &http.Client{Timeout: 60 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// apiError is the provider's error envelope. Message is surfaced verbatim so
// callers can classify input-too-large conditions.
type apiError struct {
	Error struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

// Complete sends a chat completion request and returns the response text.
func (c *OpenAIClient) Complete(ctx context.Context, system, prompt string) (string, error) {
	metrics.LLMCalls.Add(1)

	messages := make([]chatMessage, 0, 2)
	if system != "" {
		messages = append(messages, chatMessage{Role: "system", Content: system})
	}
	messages = append(messages, chatMessage{Role: "user", Content: prompt})

	body := map[string]any{
		"model":       c.model,
		"messages":    messages,
		"temperature": c.temperature,
		"max_tokens":  c.maxTokens,
	}

	var out struct {
		Choices []struct {
			Message chatMessage `json:"message"`
		} `json:"choices"`
	}
	if err := c.post(ctx, "/chat/completions", body, &out); err != nil {
		metrics.LLMErrors.Add(1)
		return "", err
	}
	if len(out.Choices) == 0 {
		metrics.LLMErrors.Add(1)
		return "", errors.New("chat: empty choices in response")
	}
	return out.Choices[0].Message.Content, nil
}

// Embed returns one embedding vector per input text, in input order.
func (c *OpenAIClient) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	metrics.EmbedCalls.Add(1)

	body := map[string]any{
		"model": c.embedModel,
		"input": texts,
	}

	var out struct {
		Data []struct {
			Index     int       `json:"index"`
			Embedding []float32 `json:"embedding"`
		} `json:"data"`
	}
	if err := c.post(ctx, "/embeddings", body, &out); err != nil {
		metrics.EmbedErrors.Add(1)
		return nil, err
	}
	if len(out.Data) != len(texts) {
		metrics.EmbedErrors.Add(1)
		return nil, fmt.Errorf("embeddings: got %d vectors for %d inputs", len(out.Data), len(texts))
	}

	vectors := make([][]float32, len(texts))
	for _, d := range out.Data {
		if d.Index < 0 || d.Index >= len(vectors) {
			metrics.EmbedErrors.Add(1)
			return nil, fmt.Errorf("embeddings: index %d out of range", d.Index)
		}
		vectors[d.Index] = d.Embedding
	}
	return vectors, nil
}

func (c *OpenAIClient) post(ctx context.Context, path string, body, dst any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	resp, err := RetryHTTP(ctx, DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		if c.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.apiKey)
		}
		return c.http.Do(req)
	})
	if err != nil {
		return fmt.Errorf("provider %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var ae apiError
		if json.Unmarshal(b, &ae) == nil && ae.Error.Message != "" {
			return fmt.Errorf("provider %s: status %d: %s", path, resp.StatusCode, ae.Error.Message)
		}
		return fmt.Errorf("provider %s: status %d: %s", path, resp.StatusCode, b)
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}
