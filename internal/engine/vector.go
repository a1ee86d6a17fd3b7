package engine

import (
	"context"
	"fmt"
	"math"
	"sort"
)

// VectorIndex is an in-memory similarity index over (embedding, chunk) pairs.
// Vectors are normalized at insert, so cosine similarity reduces to a dot
// product at query time. Built once from the full chunk set, never updated.
type VectorIndex struct {
	dim     int
	entries []indexEntry
}

type indexEntry struct {
	vec   []float32
	chunk Chunk
}

// ScoredChunk is a retrieval hit with its cosine similarity to the query.
type ScoredChunk struct {
	Chunk Chunk
	Score float32
}

// newVectorIndex builds an index from parallel chunk and vector slices.
func newVectorIndex(chunks []Chunk, vectors [][]float32) (*VectorIndex, error) {
	if len(chunks) != len(vectors) {
		return nil, fmt.Errorf("index: %d chunks but %d vectors", len(chunks), len(vectors))
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("index: no chunks")
	}

	idx := &VectorIndex{dim: len(vectors[0]), entries: make([]indexEntry, 0, len(chunks))}
	for i, v := range vectors {
		if len(v) != idx.dim {
			return nil, fmt.Errorf("index: vector %d has dim %d, want %d", i, len(v), idx.dim)
		}
		idx.entries = append(idx.entries, indexEntry{vec: normalize(v), chunk: chunks[i]})
	}
	return idx, nil
}

// Search returns the k entries most similar to vec, best first.
// k larger than the index size returns every entry.
func (idx *VectorIndex) Search(vec []float32, k int) []ScoredChunk {
	if k <= 0 || len(vec) != idx.dim {
		return nil
	}

	q := normalize(vec)
	scored := make([]ScoredChunk, 0, len(idx.entries))
	for _, e := range idx.entries {
		scored = append(scored, ScoredChunk{Chunk: e.chunk, Score: dot(q, e.vec)})
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })

	if k > len(scored) {
		k = len(scored)
	}
	return scored[:k]
}

// Len returns the number of indexed chunks.
func (idx *VectorIndex) Len() int { return len(idx.entries) }

// BuildIndex chunks a transcript, embeds every chunk in one batched call, and
// builds the session's vector index. Any embedding failure aborts the whole
// build; a partial index is never returned.
func BuildIndex(ctx context.Context, text string) (*VectorIndex, error) {
	chunks := SplitText(text, cfg.ChunkSize, cfg.ChunkOverlap)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: nothing to index", ErrIndexingFailed)
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	vectors, err := cfg.Embedder.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIndexingFailed, err)
	}

	idx, err := newVectorIndex(chunks, vectors)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIndexingFailed, err)
	}
	return idx, nil
}

// normalize returns v scaled to unit length. Zero vectors are returned as-is.
func normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return v
	}
	norm := float32(math.Sqrt(sum))
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = x / norm
	}
	return out
}

func dot(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
