// Package storage provides in-memory conversation storage.
//
// Information Hiding:
// - Map storage structure hidden from users
// - Thread-safe access via RWMutex hidden behind interface
// - Suitable for testing and ephemeral sessions

package storage

import (
	"context"
	"sync"

	"github.com/serenityspa/concierge/model"
)

// InMemoryStore implements ConversationStore using an in-memory map.
// Data is lost when process terminates.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]model.Message
}

// NewInMemoryStore creates a new in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		sessions: make(map[string][]model.Message),
	}
}

// Load loads the transcript and its version for a session.
// Returns empty slice and version 0 if the session doesn't exist.
func (s *InMemoryStore) Load(ctx context.Context, sessionID string) ([]model.Message, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.sessions[sessionID]
	if !ok {
		return []model.Message{}, 0, nil
	}

	// Return a copy to avoid external mutations
	copied := make([]model.Message, len(history))
	copy(copied, history)
	return copied, int64(len(history)), nil
}

// Append atomically appends messages when expectedVersion matches.
func (s *InMemoryStore) Append(ctx context.Context, sessionID string, msgs []model.Message, expectedVersion int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.sessions[sessionID]
	if int64(len(history)) != expectedVersion {
		return ErrVersionConflict
	}

	updated := make([]model.Message, 0, len(history)+len(msgs))
	updated = append(updated, history...)
	updated = append(updated, msgs...)
	s.sessions[sessionID] = updated

	return nil
}

// Delete deletes the transcript for a session.
func (s *InMemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
	return nil
}

// ListSessions lists all session IDs.
func (s *InMemoryStore) ListSessions(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]string, 0, len(s.sessions))
	for sessionID := range s.sessions {
		sessions = append(sessions, sessionID)
	}
	return sessions, nil
}

// Exists checks if a session exists.
func (s *InMemoryStore) Exists(ctx context.Context, sessionID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.sessions[sessionID]
	return ok, nil
}

// Verify InMemoryStore implements ConversationStore
var _ ConversationStore = (*InMemoryStore)(nil)
