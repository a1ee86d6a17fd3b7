package engine

import (
	"context"
	"fmt"
	"strings"
)

// omissionMarker separates the sampled windows of an over-budget transcript.
const omissionMarker = "\n\n[...content omitted...]\n\n"

// reduceTranscript caps text at limit characters. Under the limit it is a
// no-op. Over the limit it samples three equal windows — prefix, a window
// centered on the midpoint, and suffix — joined by omission markers, so the
// summary still sees the narrative's beginning, middle and end instead of a
// head-truncated fragment. Window size accounts for the marker bytes: the
// returned string never exceeds limit.
func reduceTranscript(text string, limit int) (reduced string, truncated bool) {
	if limit <= 0 || len(text) <= limit {
		return text, false
	}

	window := (limit - 2*len(omissionMarker)) / 3
	if window <= 0 {
		return text[:limit], true
	}

	beginning := text[:window]
	middleStart := (len(text) - window) / 2
	middle := text[middleStart : middleStart+window]
	end := text[len(text)-window:]

	return beginning + omissionMarker + middle + omissionMarker + end, true
}

// Summarize produces a bounded abstractive summary of a transcript.
// Over-budget input is reduced first (see reduceTranscript); in that case the
// returned summary carries a note naming the original length.
func Summarize(ctx context.Context, text string) (string, error) {
	reduced, truncated := reduceTranscript(text, cfg.SummaryInputLimit)

	summary, err := cfg.Completer.Complete(ctx, summarySystem, fmt.Sprintf(summaryPrompt, reduced))
	if err != nil {
		if inputTooLarge(err) {
			return "", fmt.Errorf("%w: %v", ErrContentTooLong, err)
		}
		return "", fmt.Errorf("%w: %v", ErrSummarizationFailed, err)
	}

	if truncated {
		summary += fmt.Sprintf(
			"\n\nNote: This is a long video (%s characters). Summary based on key sections.",
			GroupDigits(len(text)))
	}
	return summary, nil
}

// inputTooLarge reports whether a provider error is an input-budget rejection
// rather than a generic failure.
func inputTooLarge(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "maximum context length") ||
		strings.Contains(msg, "context_length_exceeded") ||
		strings.Contains(msg, "too large")
}
