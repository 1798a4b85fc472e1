package approval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProposeSetsPending(t *testing.T) {
	tr := NewTracker()
	s := tr.Propose("old", "new", "changed a word")

	require.NotNil(t, s)
	assert.Equal(t, StatePending, s.State)
	assert.NotEmpty(t, s.ID)
	assert.Same(t, s, tr.Pending())
}

func TestProposeSupersedesDifferingCandidate(t *testing.T) {
	tr := NewTracker()
	first := tr.Propose("old", "new one", "first")
	second := tr.Propose("old", "new two", "second")

	assert.Equal(t, StateSuperseded, first.State)
	assert.Equal(t, StatePending, second.State)
	assert.Same(t, second, tr.Pending())
	require.Len(t, tr.History(), 1)
	assert.Same(t, first, tr.History()[0])
}

func TestProposeSameCandidateKeepsPending(t *testing.T) {
	tr := NewTracker()
	first := tr.Propose("old", "new", "first")
	second := tr.Propose("old", "new", "again")

	assert.Same(t, first, second)
	assert.Empty(t, tr.History())
}

func TestApproveMergesWholeDocument(t *testing.T) {
	tr := NewTracker()
	tr.Propose("old text", "new text", "rewrite")

	merged, s, ok := tr.Approve("old text")
	require.True(t, ok)
	assert.Equal(t, "new text", merged)
	assert.Equal(t, StateApproved, s.State)
	assert.Nil(t, tr.Pending())
}

func TestApproveReplacesFirstOccurrence(t *testing.T) {
	tr := NewTracker()
	tr.Propose("middle", "MIDDLE", "uppercase")

	merged, _, ok := tr.Approve("start middle end middle")
	require.True(t, ok)
	assert.Equal(t, "start MIDDLE end middle", merged)
}

func TestApproveStaleSnapshotFails(t *testing.T) {
	tr := NewTracker()
	tr.Propose("vanished text", "replacement", "edit")

	merged, s, ok := tr.Approve("the document moved on")
	assert.False(t, ok)
	assert.Equal(t, "the document moved on", merged)
	// The decision is still terminal even though the merge failed.
	assert.Equal(t, StateApproved, s.State)
	assert.Nil(t, tr.Pending())
}

func TestApproveAgainstEmptyDocument(t *testing.T) {
	tr := NewTracker()
	tr.Propose("", "brand new content", "created")

	merged, _, ok := tr.Approve("")
	require.True(t, ok)
	assert.Equal(t, "brand new content", merged)
}

func TestApproveWithoutPendingIsNoop(t *testing.T) {
	tr := NewTracker()
	merged, s, ok := tr.Approve("doc")

	assert.False(t, ok)
	assert.Nil(t, s)
	assert.Equal(t, "doc", merged)
}

func TestRejectDiscardsPending(t *testing.T) {
	tr := NewTracker()
	tr.Propose("old", "new", "edit")

	s := tr.Reject()
	require.NotNil(t, s)
	assert.Equal(t, StateRejected, s.State)
	assert.Nil(t, tr.Pending())
	assert.Len(t, tr.History(), 1)
}

func TestRejectWithoutPendingIsNoop(t *testing.T) {
	tr := NewTracker()
	assert.Nil(t, tr.Reject())
	assert.Empty(t, tr.History())
}

func TestDecisionsAreTerminal(t *testing.T) {
	tr := NewTracker()
	tr.Propose("old", "new", "edit")
	tr.Reject()

	// A second decision finds nothing pending.
	_, s, ok := tr.Approve("old")
	assert.False(t, ok)
	assert.Nil(t, s)
	assert.Nil(t, tr.Reject())
}
