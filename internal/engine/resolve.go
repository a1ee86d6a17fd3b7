package engine

import (
	"fmt"
	"net/url"
	"strings"
)

// ResolveVideoID extracts the canonical video identifier from a YouTube URL.
// Supported shapes:
//
//	https://youtu.be/<id>[?query]
//	https://www.youtube.com/watch?v=<id>
//	https://www.youtube.com/embed/<id>[?query]
//
// Pure function, no side effects.
func ResolveVideoID(reference string) (string, error) {
	switch {
	case strings.Contains(reference, "youtu.be"):
		// Short link: last path segment, query stripped.
		id := reference[strings.LastIndex(reference, "/")+1:]
		if i := strings.IndexByte(id, '?'); i >= 0 {
			id = id[:i]
		}
		if id == "" {
			return "", fmt.Errorf("%w: %q", ErrInvalidReference, reference)
		}
		return id, nil

	case strings.Contains(reference, "youtube.com"):
		u, err := url.Parse(reference)
		if err != nil {
			return "", fmt.Errorf("%w: %q", ErrInvalidReference, reference)
		}
		if u.Path == "/watch" {
			if id := u.Query().Get("v"); id != "" {
				return id, nil
			}
		}
		if rest, ok := strings.CutPrefix(u.Path, "/embed/"); ok {
			if id, _, _ := strings.Cut(rest, "/"); id != "" {
				return id, nil
			}
		}
		return "", fmt.Errorf("%w: %q", ErrInvalidReference, reference)
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidReference, reference)
}
