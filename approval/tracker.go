// Package approval tracks the lifecycle of edit suggestions.
//
// At most one suggestion is pending at a time. Proposing a new candidate
// while one is pending supersedes the old one; approving merges the
// candidate into the document and rejecting discards it. Both decisions
// are terminal for that suggestion.
package approval

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// State is the lifecycle stage of a suggestion.
type State string

const (
	StatePending  State = "pending"
	StateApproved State = "approved"
	StateRejected State = "rejected"
	// StateSuperseded marks a pending suggestion displaced by a newer one.
	StateSuperseded State = "superseded"
)

// Suggestion is one proposed edit with its provenance.
type Suggestion struct {
	ID          string
	Original    string // document snapshot the candidate was computed from
	Candidate   string
	Explanation string
	State       State
	CreatedAt   time.Time
}

// Tracker holds the single pending slot and the decision history.
// Not safe for concurrent use; each session owns one tracker.
type Tracker struct {
	pending *Suggestion
	decided []*Suggestion
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Propose registers a new pending suggestion. An existing pending
// suggestion with the same candidate is kept as is; a differing one is
// superseded. Returns the now-pending suggestion.
func (t *Tracker) Propose(original, candidate, explanation string) *Suggestion {
	if t.pending != nil {
		if t.pending.Candidate == candidate && t.pending.Original == original {
			return t.pending
		}
		t.pending.State = StateSuperseded
		t.decided = append(t.decided, t.pending)
	}

	t.pending = &Suggestion{
		ID:          uuid.NewString(),
		Original:    original,
		Candidate:   candidate,
		Explanation: explanation,
		State:       StatePending,
		CreatedAt:   time.Now().UTC(),
	}
	return t.pending
}

// Pending returns the pending suggestion, or nil.
func (t *Tracker) Pending() *Suggestion {
	return t.pending
}

// Approve resolves the pending suggestion and merges its candidate into
// current, replacing the first occurrence of the suggestion's original
// snapshot. When the snapshot no longer appears (the document moved on),
// the candidate replaces the document wholesale only if the snapshot was
// the whole document; otherwise current is returned unchanged with
// ok=false.
func (t *Tracker) Approve(current string) (merged string, s *Suggestion, ok bool) {
	if t.pending == nil {
		return current, nil, false
	}

	s = t.pending
	s.State = StateApproved
	t.decided = append(t.decided, s)
	t.pending = nil

	if s.Original == current {
		return s.Candidate, s, true
	}
	if s.Original != "" && strings.Contains(current, s.Original) {
		return strings.Replace(current, s.Original, s.Candidate, 1), s, true
	}
	if s.Original == "" {
		// Suggestion against an empty document: the candidate is new content.
		return s.Candidate, s, true
	}
	return current, s, false
}

// Reject resolves the pending suggestion without applying it.
// Returns nil when nothing is pending.
func (t *Tracker) Reject() *Suggestion {
	if t.pending == nil {
		return nil
	}
	s := t.pending
	s.State = StateRejected
	t.decided = append(t.decided, s)
	t.pending = nil
	return s
}

// History returns resolved suggestions oldest first.
func (t *Tracker) History() []*Suggestion {
	return t.decided
}
