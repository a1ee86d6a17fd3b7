package engine

import (
	"context"
	"fmt"
)

// Capability fakes shared across engine tests.

type fakeCompleter struct {
	reply      string
	err        error
	calls      int
	lastSystem string
	lastPrompt string
}

func (f *fakeCompleter) Complete(_ context.Context, system, prompt string) (string, error) {
	f.calls++
	f.lastSystem = system
	f.lastPrompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

// fakeEmbedder returns vectors from a lookup table, falling back to a
// deterministic unit vector so unknown texts still embed.
type fakeEmbedder struct {
	vecs  map[string][]float32
	dim   int
	err   error
	calls int
}

func (f *fakeEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	dim := f.dim
	if dim == 0 {
		dim = 3
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		if v, ok := f.vecs[t]; ok {
			out[i] = v
			continue
		}
		v := make([]float32, dim)
		v[0] = 1
		out[i] = v
	}
	return out, nil
}

// fakeCaptions serves canned tracks and per-language transcripts, recording
// the fetch order.
type fakeCaptions struct {
	tracks    []CaptionTrack
	tracksErr error
	texts     map[string]string // language → transcript
	failLangs map[string]bool   // language → fetch fails
	failMsg   string            // fetch error text, defaults to "fetch failed for <lang>"
	fetched   []string          // languages fetched, in order
}

func (f *fakeCaptions) Tracks(_ context.Context, _ string) ([]CaptionTrack, error) {
	if f.tracksErr != nil {
		return nil, f.tracksErr
	}
	return f.tracks, nil
}

func (f *fakeCaptions) Fetch(_ context.Context, track CaptionTrack) (string, error) {
	f.fetched = append(f.fetched, track.Language)
	if f.failLangs[track.Language] {
		if f.failMsg != "" {
			return "", fmt.Errorf("%s", f.failMsg)
		}
		return "", fmt.Errorf("fetch failed for %s", track.Language)
	}
	return f.texts[track.Language], nil
}

// initTestConfig installs a config with the given fakes and reference knobs.
func initTestConfig(completer Completer, embedder Embedder, captions CaptionSource) {
	Init(Config{
		SummaryInputLimit: 12000,
		ChunkSize:         1000,
		ChunkOverlap:      200,
		RetrievalTopK:     5,
		Completer:         completer,
		Embedder:          embedder,
		Captions:          captions,
	})
}
