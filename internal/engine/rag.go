package engine

import (
	"context"
	"fmt"
	"strings"
)

// Ask answers a question about a session's video using retrieval-augmented
// generation: the question is embedded, the top-k most similar transcript
// chunks are retrieved, and the answer is generated from those chunks plus
// the full conversation memory. There is no retrieval-skip path — every
// answer is grounded in the session's own transcript.
//
// A per-session lock serializes turns: concurrent questions to one session
// are answered one at a time, and memory order equals answer order. On
// success exactly one turn is appended; on any provider failure memory is
// left untouched.
func Ask(ctx context.Context, s *Session, question string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	metrics.QuestionsAsked.Add(1)

	vecs, err := cfg.Embedder.Embed(ctx, []string{question})
	if err != nil {
		return "", fmt.Errorf("%w: embed question: %v", ErrAnswerGenerationFailed, err)
	}
	if len(vecs) != 1 {
		return "", fmt.Errorf("%w: embed question: got %d vectors", ErrAnswerGenerationFailed, len(vecs))
	}

	hits := s.Index.Search(vecs[0], cfg.RetrievalTopK)

	prompt := fmt.Sprintf(answerPrompt, formatExcerpts(hits), formatHistory(s.memory), question)
	answer, err := cfg.Completer.Complete(ctx, answerSystem, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAnswerGenerationFailed, err)
	}

	s.memory = append(s.memory, Turn{Question: question, Answer: answer})
	return answer, nil
}

// formatExcerpts renders retrieved chunks as a numbered source list.
func formatExcerpts(hits []ScoredChunk) string {
	if len(hits) == 0 {
		return "(no relevant excerpts found)\n"
	}
	var sb strings.Builder
	for i, h := range hits {
		fmt.Fprintf(&sb, "[%d] %s\n", i+1, h.Chunk.Text)
	}
	return sb.String()
}

// formatHistory renders prior turns as conversational context.
// Empty history renders as nothing so the prompt stays compact on turn one.
func formatHistory(memory []Turn) string {
	if len(memory) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("\nConversation so far:\n")
	for _, t := range memory {
		fmt.Fprintf(&sb, "Q: %s\nA: %s\n", t.Question, t.Answer)
	}
	sb.WriteString("\n")
	return sb.String()
}
