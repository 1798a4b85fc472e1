// Package storage persists editing sessions: the working document and
// the conversation transcript.
//
// Information Hiding:
// - Storage backend implementation details hidden behind the interface
// - Allows swapping between memory and SQLite without API changes
// - Each implementation encapsulates its own data structures

package storage

import (
	"context"

	"github.com/redpen/redpen/model"
)

// SessionStorage persists per-session documents and transcripts.
// Implementations can use different backends (memory, database).
type SessionStorage interface {
	// SaveTranscript replaces the stored transcript for a session.
	SaveTranscript(ctx context.Context, sessionID string, history []model.Message) error

	// LoadTranscript loads the transcript for a session.
	// Returns an empty slice (not nil) when the session doesn't exist.
	// Returns an error only for storage failures, not missing sessions.
	LoadTranscript(ctx context.Context, sessionID string) ([]model.Message, error)

	// SaveDocument replaces the stored document text for a session.
	SaveDocument(ctx context.Context, sessionID, document string) error

	// LoadDocument loads the document text for a session.
	// Returns "" when the session doesn't exist.
	LoadDocument(ctx context.Context, sessionID string) (string, error)

	// Delete removes a session, its document, and its transcript.
	Delete(ctx context.Context, sessionID string) error

	// ListSessions lists all session IDs.
	ListSessions(ctx context.Context) ([]string, error)

	// Exists checks if a session exists.
	Exists(ctx context.Context, sessionID string) (bool, error)
}
