package engine

import "errors"

// Error taxonomy. Every request-level failure wraps exactly one of these
// sentinels so the web layer can classify without string matching.
var (
	ErrInvalidReference       = errors.New("invalid video reference")
	ErrNoCaptionMetadata      = errors.New("could not retrieve caption metadata")
	ErrNoTranscriptAvailable  = errors.New("no transcript available")
	ErrEmptyTranscript        = errors.New("transcript is empty")
	ErrContentTooLong         = errors.New("video content too long to summarize")
	ErrSummarizationFailed    = errors.New("summarization failed")
	ErrIndexingFailed         = errors.New("index construction failed")
	ErrSessionNotFound        = errors.New("session not found")
	ErrAnswerGenerationFailed = errors.New("answer generation failed")
)

// CallerError reports whether err stems from the caller's input (bad URL,
// video without usable captions, over-long content) as opposed to a
// provider/service failure on our side.
func CallerError(err error) bool {
	return errors.Is(err, ErrInvalidReference) ||
		errors.Is(err, ErrNoCaptionMetadata) ||
		errors.Is(err, ErrNoTranscriptAvailable) ||
		errors.Is(err, ErrEmptyTranscript) ||
		errors.Is(err, ErrContentTooLong)
}
