package engine

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Turn is one completed question/answer exchange.
type Turn struct {
	Question string
	Answer   string
}

// Session is the unit of conversational state: one video's transcript, its
// vector index, and the running conversation memory. Memory is append-only
// for the session's lifetime and only Ask writes to it.
type Session struct {
	ID         string
	VideoID    string
	Transcript string
	Index      *VectorIndex

	mu     sync.Mutex // serializes turns on this session
	memory []Turn
}

// Memory returns a copy of the conversation history in turn order.
func (s *Session) Memory() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Turn, len(s.memory))
	copy(out, s.memory)
	return out
}

// sessionStore is the process-wide session mapping. Sessions live until
// explicitly deleted or the process ends; there is no eviction, so the map
// grows with every summarized video (documented design gap).
type sessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	counter  atomic.Int64 // monotonic; IDs are never reused after deletion
}

var store = &sessionStore{sessions: make(map[string]*Session)}

// CreateSession registers a new session for a video and returns it.
// The ID combines the video ID with a process-wide monotonic counter.
func CreateSession(videoID, transcript string, index *VectorIndex) *Session {
	s := &Session{
		ID:         fmt.Sprintf("session_%s_%d", videoID, store.counter.Add(1)),
		VideoID:    videoID,
		Transcript: transcript,
		Index:      index,
	}

	store.mu.Lock()
	store.sessions[s.ID] = s
	store.mu.Unlock()

	metrics.SessionsCreated.Add(1)
	return s
}

// GetSession looks up a session by ID.
func GetSession(id string) (*Session, error) {
	store.mu.RLock()
	s, ok := store.sessions[id]
	store.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSessionNotFound, id)
	}
	return s, nil
}

// DeleteSession removes a session. Deleting an unknown or already-deleted ID
// reports ErrSessionNotFound.
func DeleteSession(id string) error {
	store.mu.Lock()
	_, ok := store.sessions[id]
	if ok {
		delete(store.sessions, id)
	}
	store.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %q", ErrSessionNotFound, id)
	}
	metrics.SessionsDeleted.Add(1)
	return nil
}

// ActiveSessions returns the number of live sessions.
func ActiveSessions() int {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return len(store.sessions)
}
