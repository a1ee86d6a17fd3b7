package engine

import (
	"context"
	"log/slog"
	"time"
)

// ProcessResult is the outcome of summarizing and indexing one video.
type ProcessResult struct {
	Summary          string
	SessionID        string
	VideoID          string
	TranscriptLength int
}

// ProcessVideo runs the full ingest pipeline for a video reference:
// resolve → transcript (cache first) → summary, and independently
// transcript → chunks → index → session. The returned session is ready for
// Ask calls; the summary is the immediate reply.
func ProcessVideo(ctx context.Context, videoURL string) (ProcessResult, error) {
	start := time.Now()

	videoID, err := ResolveVideoID(videoURL)
	if err != nil {
		return ProcessResult{}, err
	}

	transcript, cached := CacheGetTranscript(ctx, videoID)
	if !cached {
		transcript, err = AcquireTranscript(ctx, videoID)
		if err != nil {
			return ProcessResult{}, err
		}
		CacheSetTranscript(ctx, videoID, transcript)
	}

	summary, err := Summarize(ctx, transcript)
	if err != nil {
		return ProcessResult{}, err
	}

	index, err := BuildIndex(ctx, transcript)
	if err != nil {
		return ProcessResult{}, err
	}

	session := CreateSession(videoID, transcript, index)

	slog.Info("video processed",
		slog.String("video", videoID),
		slog.String("session", session.ID),
		slog.Int("transcript_chars", len(transcript)),
		slog.Int("chunks", index.Len()),
		slog.Bool("cached_transcript", cached),
		slog.Duration("elapsed", time.Since(start)))

	return ProcessResult{
		Summary:          summary,
		SessionID:        session.ID,
		VideoID:          videoID,
		TranscriptLength: len(transcript),
	}, nil
}
