package orchestrator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redpen/redpen/intent"
	"github.com/redpen/redpen/llm"
	"github.com/redpen/redpen/model"
	"github.com/redpen/redpen/storage"
)

// fakeProvider returns a canned reply, or a canned error.
type fakeProvider struct {
	reply string
	err   error
	calls int
}

func (f *fakeProvider) Name() string  { return "fake" }
func (f *fakeProvider) Model() string { return "fake-model" }

func (f *fakeProvider) Chat(ctx context.Context, messages []llm.ChatMessage) (llm.LLMResponse, error) {
	return f.ChatWithFormat(ctx, messages, nil)
}

func (f *fakeProvider) ChatWithFormat(ctx context.Context, messages []llm.ChatMessage, format *llm.ResponseFormat) (llm.LLMResponse, error) {
	f.calls++
	if f.err != nil {
		return llm.LLMResponse{}, f.err
	}
	return llm.LLMResponse{Content: f.reply}, nil
}

func newTestOrchestrator(t *testing.T) *Orchestrator {
	t.Helper()
	return New(Options{})
}

func TestAddQuotedTextProposesAndApproves(t *testing.T) {
	o := newTestOrchestrator(t)
	o.SetDocument("Hello world.")

	resp, err := o.HandleInstruction(context.Background(), `add "Goodbye"`)
	require.NoError(t, err)
	require.True(t, resp.HasSuggestion)
	assert.Equal(t, "Hello world.\n\nGoodbye", resp.SuggestedContent)
	assert.Contains(t, resp.Message, "approve")
	assert.NotEmpty(t, resp.SuggestionID)

	decided, err := o.Decide(context.Background(), true)
	require.NoError(t, err)
	assert.Contains(t, decided.Message, "Applied")
	assert.Equal(t, "Hello world.\n\nGoodbye", o.Document())
	assert.Nil(t, o.Pending())

	// Metadata was re-analyzed against the merged document.
	assert.Equal(t, 3, o.Metadata().WordCount)
}

func TestRejectLeavesDocumentUnchanged(t *testing.T) {
	o := newTestOrchestrator(t)
	o.SetDocument("We can't ship this week.")

	resp, err := o.HandleInstruction(context.Background(), "make it more formal")
	require.NoError(t, err)
	require.True(t, resp.HasSuggestion)
	assert.Contains(t, resp.SuggestedContent, "cannot")

	decided, err := o.Decide(context.Background(), false)
	require.NoError(t, err)
	assert.Contains(t, decided.Message, "Discarded")
	assert.Equal(t, "We can't ship this week.", o.Document())
	assert.Nil(t, o.Pending())
}

func TestAnalyzeProducesNoSuggestion(t *testing.T) {
	o := newTestOrchestrator(t)
	o.SetDocument("One sentence here. Another sentence follows.")

	resp, err := o.HandleInstruction(context.Background(), "analyze this document")
	require.NoError(t, err)
	assert.False(t, resp.HasSuggestion)
	assert.Contains(t, resp.Message, "6 words, 2 sentences")
	assert.Equal(t, "One sentence here. Another sentence follows.", o.Document())
}

func TestDecideWithoutPending(t *testing.T) {
	o := newTestOrchestrator(t)
	o.SetDocument("Some text.")

	resp, err := o.Decide(context.Background(), true)
	require.NoError(t, err)
	assert.Contains(t, resp.Message, "no suggestion")
}

func TestNewSuggestionSupersedesPending(t *testing.T) {
	o := newTestOrchestrator(t)
	o.SetDocument("Hello world.")

	_, err := o.HandleInstruction(context.Background(), `add "First"`)
	require.NoError(t, err)
	first := o.Pending()
	require.NotNil(t, first)

	_, err = o.HandleInstruction(context.Background(), `add "Second"`)
	require.NoError(t, err)
	second := o.Pending()
	require.NotNil(t, second)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Contains(t, second.Candidate, "Second")
}

func TestRemoteFallbackRefinesLowConfidence(t *testing.T) {
	client := &fakeProvider{
		reply: `{"action": "tone", "params": {"tone": "formal"}, "confidence": 0.95, "reasoning": "tone request"}`,
	}
	o := New(Options{Client: client})
	o.SetDocument("We can't ship this week.")

	// No pattern or keyword matches, so the heuristic parse is a generic
	// low-confidence enhance and the remote model is consulted.
	resp, err := o.HandleInstruction(context.Background(), "zhuzh it up")
	require.NoError(t, err)
	assert.Equal(t, 1, client.calls)
	require.True(t, resp.HasSuggestion)
	assert.Contains(t, resp.SuggestedContent, "cannot")
	assert.Equal(t, 0.95, resp.Metadata.Confidence)
}

func TestRemoteFallbackClassifiesReplace(t *testing.T) {
	client := &fakeProvider{
		reply: `{"action": "replace", "params": {"search": "cat", "replacement": "dog"}, "confidence": 0.9, "reasoning": "substitution"}`,
	}
	o := New(Options{Client: client})
	o.SetDocument("The cat sat.")

	resp, err := o.HandleInstruction(context.Background(), "zhuzh it up")
	require.NoError(t, err)
	assert.Equal(t, 1, client.calls)
	require.True(t, resp.HasSuggestion)
	assert.Equal(t, "The dog sat.", resp.SuggestedContent)
}

func TestRemoteGenericParamKeysAreCanonicalized(t *testing.T) {
	// Remote models tend to emit generic key names; those must still
	// reach the generator under the keys it reads.
	client := &fakeProvider{
		reply: `{"action": "replace", "params": {"target": "cat", "replacement": "dog"}, "confidence": 0.9}`,
	}
	o := New(Options{Client: client})
	o.SetDocument("The cat sat.")

	resp, err := o.HandleInstruction(context.Background(), "zhuzh it up")
	require.NoError(t, err)
	require.True(t, resp.HasSuggestion)
	assert.Equal(t, "The dog sat.", resp.SuggestedContent)
}

func TestCanonicalParamsMapsAliases(t *testing.T) {
	got := canonicalParams(intent.ActionAdd, map[string]string{"Content": "Hello"})
	assert.Equal(t, "Hello", got["text"])

	got = canonicalParams(intent.ActionRemove, map[string]string{"target": "pricing"})
	assert.Equal(t, "pricing", got["match"])

	// An explicit canonical key wins over its alias.
	got = canonicalParams(intent.ActionReplace, map[string]string{"target": "a", "search": "b"})
	assert.Equal(t, "b", got["search"])
}

func TestRemoteFailureFallsBackToHeuristics(t *testing.T) {
	client := &fakeProvider{err: errors.New("boom")}
	o := New(Options{Client: client})
	o.SetDocument("Hello world. More text here.")

	resp, err := o.HandleInstruction(context.Background(), "zhuzh it up")
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 1, client.calls)
	// The heuristic enhance command still produced an answer.
	assert.NotEmpty(t, resp.Message)
}

func TestRemoteGarbageResponseFallsBack(t *testing.T) {
	client := &fakeProvider{reply: "sorry, I cannot help with that"}
	o := New(Options{Client: client})
	o.SetDocument("Hello world.")

	resp, err := o.HandleInstruction(context.Background(), "zhuzh it up")
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.NotEmpty(t, resp.Message)
}

func TestHighConfidenceSkipsRemote(t *testing.T) {
	client := &fakeProvider{reply: `{"action": "remove", "confidence": 1.0}`}
	o := New(Options{Client: client})
	o.SetDocument("Hello world.")

	_, err := o.HandleInstruction(context.Background(), `add "Goodbye"`)
	require.NoError(t, err)
	assert.Zero(t, client.calls)
}

func TestRefineRemotelyWrapsErrors(t *testing.T) {
	client := &fakeProvider{err: errors.New("boom")}
	o := New(Options{Client: client})

	_, err := o.refineRemotely(context.Background(), "anything")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExternalService))
}

func TestRefineRemotelyRejectsUnknownAction(t *testing.T) {
	client := &fakeProvider{reply: `{"action": "teleport", "confidence": 0.9}`}
	o := New(Options{Client: client})

	_, err := o.refineRemotely(context.Background(), "anything")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExternalService))
}

func TestPendingDiffShowsChange(t *testing.T) {
	o := newTestOrchestrator(t)
	o.SetDocument("line one\nline two\nline three")

	_, err := o.HandleInstruction(context.Background(), `replace "two" with "2"`)
	require.NoError(t, err)
	require.NotNil(t, o.Pending())

	diff := o.PendingDiff()
	assert.Contains(t, diff, "- line two")
	assert.Contains(t, diff, "+ line 2")
}

func TestPendingDiffEmptyWithoutPending(t *testing.T) {
	o := newTestOrchestrator(t)
	assert.Empty(t, o.PendingDiff())
}

func TestTurnsPersistToStore(t *testing.T) {
	store := storage.NewInMemoryStorage()
	o := New(Options{Store: store})
	o.SetDocument("Hello world.")

	_, err := o.HandleInstruction(context.Background(), `add "Goodbye"`)
	require.NoError(t, err)
	_, err = o.Decide(context.Background(), true)
	require.NoError(t, err)

	ctx := context.Background()
	exists, err := store.Exists(ctx, o.Session().ID)
	require.NoError(t, err)
	assert.True(t, exists)

	doc, err := store.LoadDocument(ctx, o.Session().ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello world.\n\nGoodbye", doc)

	transcript, err := store.LoadTranscript(ctx, o.Session().ID)
	require.NoError(t, err)
	// user turn, suggestion reply, decision reply
	require.Len(t, transcript, 3)
	assert.Equal(t, model.RoleUser, transcript[0].Role)
}

func TestResumeRestoresPersistedSession(t *testing.T) {
	store := storage.NewInMemoryStorage()
	first := New(Options{Store: store})
	first.SetDocument("Hello world.")

	_, err := first.HandleInstruction(context.Background(), `add "Goodbye"`)
	require.NoError(t, err)
	_, err = first.Decide(context.Background(), true)
	require.NoError(t, err)
	sessionID := first.Session().ID

	second := New(Options{Store: store})
	require.NoError(t, second.Resume(context.Background(), sessionID))
	assert.Equal(t, sessionID, second.Session().ID)
	assert.Equal(t, "Hello world.\n\nGoodbye", second.Document())
	assert.Len(t, second.Session().History(), 3)
}

func TestResumeUnknownSessionStartsFresh(t *testing.T) {
	store := storage.NewInMemoryStorage()
	o := New(Options{Store: store})
	require.NoError(t, o.Resume(context.Background(), "brand-new"))
	assert.Equal(t, "brand-new", o.Session().ID)
	assert.Empty(t, o.Document())
}

func TestResumeWithoutStoreErrors(t *testing.T) {
	o := New(Options{})
	require.Error(t, o.Resume(context.Background(), "any"))
}

func TestApprovalUpdatesEditStatus(t *testing.T) {
	o := newTestOrchestrator(t)
	o.SetDocument("Hello world.")

	resp, err := o.HandleInstruction(context.Background(), `add "Goodbye"`)
	require.NoError(t, err)
	_, err = o.Decide(context.Background(), true)
	require.NoError(t, err)

	var found bool
	for _, m := range o.Session().History() {
		if m.ID == resp.MessageID {
			found = true
			require.NotNil(t, m.Meta)
			assert.Equal(t, model.EditApproved, m.Meta.EditStatus)
		}
	}
	assert.True(t, found)
}

func TestCompoundInstructionReportsAllCommands(t *testing.T) {
	o := newTestOrchestrator(t)
	o.SetDocument("Hello world.")

	resp, err := o.HandleInstruction(context.Background(), `add "Goodbye" and replace "Hello" with "Hi"`)
	require.NoError(t, err)
	require.True(t, resp.HasSuggestion)
	assert.Equal(t, "Hi world.\n\nGoodbye", resp.SuggestedContent)
	require.Len(t, resp.Commands, 2)
	assert.Equal(t, "add", resp.Commands[0].Action)
	assert.Equal(t, "replace", resp.Commands[1].Action)
}

func TestEmptyInstruction(t *testing.T) {
	o := newTestOrchestrator(t)
	resp, err := o.HandleInstruction(context.Background(), "   ")
	require.NoError(t, err)
	assert.False(t, resp.HasSuggestion)
	assert.Empty(t, o.Session().History())
}

func TestImpactScalesWithChange(t *testing.T) {
	o := newTestOrchestrator(t)

	lines := make([]string, 20)
	for i := range lines {
		lines[i] = "a stable line of text"
	}
	lines[3] = "the word target sits here"
	o.SetDocument(strings.Join(lines, "\n"))

	resp, err := o.HandleInstruction(context.Background(), `replace "target" with "goal"`)
	require.NoError(t, err)
	require.True(t, resp.HasSuggestion)
	assert.Equal(t, model.ImpactLow, resp.Metadata.EstimatedImpact)

	// Replacing the whole document is high impact.
	o2 := newTestOrchestrator(t)
	o2.SetDocument("old")
	resp2, err := o2.HandleInstruction(context.Background(), `replace "old" with "new"`)
	require.NoError(t, err)
	require.True(t, resp2.HasSuggestion)
	assert.Equal(t, model.ImpactHigh, resp2.Metadata.EstimatedImpact)
}
