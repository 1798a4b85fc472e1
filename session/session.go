// Package session holds per-conversation state: the working document,
// its metadata snapshot, preferences, and a bounded message history.
//
// A session is single-owner state. Callers serialize access; nothing in
// this package locks.
package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/redpen/redpen/model"
)

// DefaultHistoryBound caps retained messages when no bound is configured.
const DefaultHistoryBound = 50

// Focus marks the half-open character span [Start, End) the user is
// currently working on, or is inactive when Active is false.
type Focus struct {
	Start  int
	End    int
	Active bool
}

// Context is the mutable state of one editing conversation.
type Context struct {
	ID          string
	Document    string
	Metadata    model.DocumentMetadata
	Preferences model.Preferences
	CreatedAt   time.Time

	focus   Focus
	history []model.Message
	bound   int
}

// New creates a session with the given history bound. Bounds below one
// fall back to DefaultHistoryBound.
func New(bound int) *Context {
	if bound < 1 {
		bound = DefaultHistoryBound
	}
	return &Context{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		bound:     bound,
	}
}

// SetDocument replaces the working document and its metadata snapshot
// together. Metadata is never patched piecemeal; the snapshot always
// describes the current document.
func (c *Context) SetDocument(text string, meta model.DocumentMetadata) {
	c.Document = text
	c.Metadata = meta
	c.focus = Focus{}
}

// Append adds a message to the history, evicting the oldest entries
// beyond the bound. Returns the stored message with its assigned ID.
func (c *Context) Append(role model.Role, content string, meta *model.MessageMeta) model.Message {
	msg := model.Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
		Meta:      meta,
	}
	c.history = append(c.history, msg)
	if len(c.history) > c.bound {
		c.history = c.history[len(c.history)-c.bound:]
	}
	return msg
}

// Restore replaces the history wholesale, keeping only the newest
// messages within the bound. Used when resuming a persisted session.
func (c *Context) Restore(msgs []model.Message) {
	if len(msgs) > c.bound {
		msgs = msgs[len(msgs)-c.bound:]
	}
	c.history = append([]model.Message(nil), msgs...)
}

// History returns the retained messages oldest first. The returned slice
// is the session's own backing store; callers must not mutate it.
func (c *Context) History() []model.Message {
	return c.history
}

// LastAssistant returns the most recent assistant message, or nil.
func (c *Context) LastAssistant() *model.Message {
	for i := len(c.history) - 1; i >= 0; i-- {
		if c.history[i].Role == model.RoleAssistant {
			return &c.history[i]
		}
	}
	return nil
}

// MarkEditStatus updates the edit status on the message with the given
// ID. EditStatus is the only message field that mutates after append.
func (c *Context) MarkEditStatus(messageID string, status model.EditStatus) bool {
	for i := range c.history {
		if c.history[i].ID != messageID {
			continue
		}
		if c.history[i].Meta == nil {
			c.history[i].Meta = &model.MessageMeta{}
		}
		c.history[i].Meta.EditStatus = status
		return true
	}
	return false
}

// SetFocus activates a focus span, clamped to the document bounds.
func (c *Context) SetFocus(start, end int) {
	if start < 0 {
		start = 0
	}
	if end > len(c.Document) {
		end = len(c.Document)
	}
	if start >= end {
		c.focus = Focus{}
		return
	}
	c.focus = Focus{Start: start, End: end, Active: true}
}

// ClearFocus deactivates the focus span.
func (c *Context) ClearFocus() {
	c.focus = Focus{}
}

// Focus returns the current focus span.
func (c *Context) Focus() Focus {
	return c.focus
}

// FocusedText returns the focused slice of the document, or the whole
// document when no focus is active.
func (c *Context) FocusedText() string {
	if !c.focus.Active {
		return c.Document
	}
	return c.Document[c.focus.Start:c.focus.End]
}
