// In-memory session storage.
//
// Information Hiding:
// - Map storage structure hidden from users
// - Thread-safe access via RWMutex hidden behind the interface
// - Suitable for testing and ephemeral sessions

package storage

import (
	"context"
	"sync"

	"github.com/redpen/redpen/model"
)

type memorySession struct {
	document string
	history  []model.Message
}

// InMemoryStorage implements SessionStorage using an in-memory map.
// Data is lost when the process terminates.
type InMemoryStorage struct {
	mu       sync.RWMutex
	sessions map[string]*memorySession
}

// NewInMemoryStorage creates a new in-memory storage.
func NewInMemoryStorage() *InMemoryStorage {
	return &InMemoryStorage{
		sessions: make(map[string]*memorySession),
	}
}

func (s *InMemoryStorage) session(id string) *memorySession {
	sess, ok := s.sessions[id]
	if !ok {
		sess = &memorySession{}
		s.sessions[id] = sess
	}
	return sess
}

// SaveTranscript replaces the stored transcript for a session.
func (s *InMemoryStorage) SaveTranscript(ctx context.Context, sessionID string, history []model.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Copy to avoid external mutations
	copied := make([]model.Message, len(history))
	copy(copied, history)
	s.session(sessionID).history = copied

	return nil
}

// LoadTranscript loads the transcript for a session.
// Returns an empty slice when the session doesn't exist.
func (s *InMemoryStorage) LoadTranscript(ctx context.Context, sessionID string) ([]model.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return []model.Message{}, nil
	}

	copied := make([]model.Message, len(sess.history))
	copy(copied, sess.history)
	return copied, nil
}

// SaveDocument replaces the stored document for a session.
func (s *InMemoryStorage) SaveDocument(ctx context.Context, sessionID, document string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session(sessionID).document = document
	return nil
}

// LoadDocument loads the document for a session.
func (s *InMemoryStorage) LoadDocument(ctx context.Context, sessionID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return "", nil
	}
	return sess.document, nil
}

// Delete removes a session.
func (s *InMemoryStorage) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
	return nil
}

// ListSessions lists all session IDs.
func (s *InMemoryStorage) ListSessions(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]string, 0, len(s.sessions))
	for sessionID := range s.sessions {
		sessions = append(sessions, sessionID)
	}
	return sessions, nil
}

// Exists checks if a session exists.
func (s *InMemoryStorage) Exists(ctx context.Context, sessionID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.sessions[sessionID]
	return ok, nil
}

// Verify InMemoryStorage implements SessionStorage
var _ SessionStorage = (*InMemoryStorage)(nil)
