package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// transcriptLanguages is the fixed fetch priority: English variants first,
// then major world languages. The first successful fetch wins.
var transcriptLanguages = []string{
	"en", "en-US", "en-GB", "hi", "es", "fr", "de", "pt", "ja", "ko", "zh", "ar",
}

// maxCauseLen caps each collected failure cause: provider errors can embed
// whole response bodies, and the causes end up inside one error string.
const maxCauseLen = 200

// AcquireTranscript fetches the caption text for a video.
//
// The caption listing is queried once; a listing failure is terminal and not
// retried. Fetching then walks the language priority list — each per-language
// failure is swallowed (but collected for the final error) and the next
// language is tried. If no preferred language succeeds, any available track
// whose language has not already failed is attempted. The language ladder is
// the only retry mechanism: a provider outage is indistinguishable from "no
// captions in this language" by design.
func AcquireTranscript(ctx context.Context, videoID string) (string, error) {
	incrTranscriptRequests()

	tracks, err := cfg.Captions.Tracks(ctx, videoID)
	if err != nil {
		incrTranscriptErrors()
		return "", fmt.Errorf("%w: %v", ErrNoCaptionMetadata, err)
	}

	var causes []string
	failed := make(map[string]bool)
	for _, lang := range transcriptLanguages {
		track, ok := trackForLanguage(tracks, lang)
		if !ok {
			continue
		}
		text, err := cfg.Captions.Fetch(ctx, track)
		if err != nil {
			slog.Warn("transcript: language fetch failed, trying next",
				slog.String("video", videoID), slog.String("lang", lang), slog.Any("error", err))
			causes = append(causes, lang+": "+TruncateRunes(err.Error(), maxCauseLen, "..."))
			failed[lang] = true
			continue
		}
		return finishTranscript(text)
	}

	// No preferred language worked: take any remaining track. Languages that
	// already failed above are not retried.
	for _, track := range tracks {
		if failed[track.Language] {
			continue
		}
		text, err := cfg.Captions.Fetch(ctx, track)
		if err != nil {
			causes = append(causes, track.Language+": "+TruncateRunes(err.Error(), maxCauseLen, "..."))
			failed[track.Language] = true
			continue
		}
		return finishTranscript(text)
	}

	incrTranscriptErrors()
	return "", fmt.Errorf("%w for video %s (tracks: %s; causes: %s)",
		ErrNoTranscriptAvailable, videoID, describeTracks(tracks), strings.Join(causes, "; "))
}

// trackForLanguage picks the track for a language code, preferring manual
// captions over auto-generated ("asr") ones.
func trackForLanguage(tracks []CaptionTrack, lang string) (CaptionTrack, bool) {
	for _, t := range tracks {
		if t.Language == lang && t.Kind != "asr" {
			return t, true
		}
	}
	for _, t := range tracks {
		if t.Language == lang {
			return t, true
		}
	}
	return CaptionTrack{}, false
}

// finishTranscript validates fetched caption text. Sources join fragments
// with single spaces, so only emptiness is checked here.
func finishTranscript(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		incrTranscriptErrors()
		return "", ErrEmptyTranscript
	}
	return text, nil
}

// describeTracks summarizes available tracks for error reporting.
func describeTracks(tracks []CaptionTrack) string {
	if len(tracks) == 0 {
		return "none"
	}
	langs := make([]string, len(tracks))
	for i, t := range tracks {
		langs[i] = t.Language
		if t.Kind == "asr" {
			langs[i] += " (auto)"
		}
	}
	return strings.Join(langs, ", ")
}
