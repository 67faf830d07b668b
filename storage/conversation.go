// Package storage provides conversation storage abstraction.
//
// Information Hiding:
// - Storage backend implementation details hidden behind interface
// - Allows swapping between memory and SQLite without API changes
// - Optimistic concurrency via version tokens; version = message count

package storage

import (
	"context"
	"errors"

	"github.com/serenityspa/concierge/model"
)

// ErrVersionConflict indicates a concurrent append invalidated the caller's
// version token. Reload and retry.
var ErrVersionConflict = errors.New("storage: version conflict")

// ConversationStore defines the interface for storing conversation
// transcripts with optimistic concurrency control.
type ConversationStore interface {
	// Load loads the transcript and its version for a session.
	// Returns an empty slice and version 0 if the session doesn't exist.
	// Returns error only for storage failures, not missing sessions.
	Load(ctx context.Context, sessionID string) ([]model.Message, int64, error)

	// Append atomically appends messages to a session's transcript.
	// expectedVersion must match the current version (message count) or the
	// append fails with ErrVersionConflict and the transcript is unchanged.
	// All messages land or none do.
	Append(ctx context.Context, sessionID string, msgs []model.Message, expectedVersion int64) error

	// Delete deletes the transcript for a session.
	Delete(ctx context.Context, sessionID string) error

	// ListSessions lists all session IDs.
	ListSessions(ctx context.Context) ([]string, error)

	// Exists checks if a session exists.
	Exists(ctx context.Context, sessionID string) (bool, error)
}
