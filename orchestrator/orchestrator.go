// Package orchestrator coordinates one editing conversation: it parses
// instructions, generates suggestions, tracks approvals, and keeps the
// session state consistent.
//
// Information Hiding:
// - Turn sequencing (parse, generate, diff, propose) behind HandleInstruction
// - Remote fallback and its failure handling
// - Persistence scheduling against the session store
//
// The orchestrator degrades rather than fails: heuristics always produce
// an answer, and remote errors become conversational messages instead of
// surfacing to the caller.
package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/redpen/redpen/analysis"
	"github.com/redpen/redpen/approval"
	"github.com/redpen/redpen/config"
	"github.com/redpen/redpen/intent"
	"github.com/redpen/redpen/llm"
	"github.com/redpen/redpen/model"
	"github.com/redpen/redpen/session"
	"github.com/redpen/redpen/storage"
	"github.com/redpen/redpen/suggest"
	"github.com/redpen/redpen/textdiff"
)

// Options configures an Orchestrator. Client, Store, and Logger are all
// optional; a nil Client disables the remote fallback entirely.
type Options struct {
	Client llm.Provider
	Store  storage.SessionStorage
	Logger *zap.Logger
	Config config.AssistantConfig
}

// Orchestrator owns one editing session end to end.
// Not safe for concurrent use; callers serialize turns.
type Orchestrator struct {
	parser  *intent.Parser
	gen     *suggest.Generator
	tracker *approval.Tracker
	sess    *session.Context
	client  *llm.Client
	store   storage.SessionStorage
	logger  *zap.Logger
	cfg     config.AssistantConfig
}

// New creates an orchestrator with a fresh session.
func New(opts Options) *Orchestrator {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg := opts.Config
	if cfg.ConfidenceThreshold <= 0 {
		cfg.ConfidenceThreshold = 0.5
	}
	if cfg.DiffContextLines <= 0 {
		cfg.DiffContextLines = textdiff.DefaultContext
	}
	var client *llm.Client
	if opts.Client != nil {
		client = llm.NewClient(opts.Client)
	}

	return &Orchestrator{
		parser:  intent.NewParser(),
		gen:     suggest.NewGenerator(),
		tracker: approval.NewTracker(),
		sess:    session.New(cfg.HistoryBound),
		client:  client,
		store:   opts.Store,
		logger:  logger,
		cfg:     cfg,
	}
}

// SetDocument loads a document into the session, analyzing it first.
func (o *Orchestrator) SetDocument(text string) {
	o.sess.SetDocument(text, analysis.Analyze(text))
}

// Document returns the current document text.
func (o *Orchestrator) Document() string {
	return o.sess.Document
}

// Metadata returns the current document metadata snapshot.
func (o *Orchestrator) Metadata() model.DocumentMetadata {
	return o.sess.Metadata
}

// Session exposes the underlying session state.
func (o *Orchestrator) Session() *session.Context {
	return o.sess
}

// SetPreferences updates the session preferences.
func (o *Orchestrator) SetPreferences(prefs model.Preferences) {
	o.sess.Preferences = prefs
}

// HandleInstruction runs one conversational turn. It always returns a
// response for well-formed input; degraded paths (remote failure, vague
// instructions) produce a conversational message rather than an error.
func (o *Orchestrator) HandleInstruction(ctx context.Context, instruction string) (*TurnResponse, error) {
	instruction = strings.TrimSpace(instruction)
	if instruction == "" {
		return &TurnResponse{
			Message: "Tell me what you'd like to change, for example: make it more formal.",
		}, nil
	}

	o.sess.Append(model.RoleUser, instruction, nil)

	cmd := o.parser.Parse(instruction)
	if cmd == nil {
		return o.finishTurn(&TurnResponse{
			Message: "I didn't catch an instruction there. What would you like to change?",
		}, nil)
	}

	// Low heuristic confidence consults the remote model when one is
	// configured. A failure there is logged and the heuristic command
	// stands; the user still gets an answer.
	if cmd.Confidence < o.cfg.ConfidenceThreshold && o.client != nil {
		refined, err := o.refineRemotely(ctx, instruction)
		switch {
		case err != nil:
			o.logger.Warn("remote intent refinement failed, using heuristic parse",
				zap.String("instruction", instruction),
				zap.Error(err))
		case refined != nil && refined.Confidence > cmd.Confidence:
			cmd = refined
		}
	}

	res, err := o.gen.Apply(cmd, o.sess.Document, o.sess.Metadata, o.sess.Preferences)
	if err != nil {
		return nil, fmt.Errorf("apply command: %w", err)
	}

	resp := o.buildResponse(cmd, res)
	return o.finishTurn(resp, cmd)
}

// buildResponse assembles the turn response, proposing a suggestion when
// the candidate differs from the document.
func (o *Orchestrator) buildResponse(cmd *intent.Command, res suggest.Result) *TurnResponse {
	resp := &TurnResponse{
		Message:  res.Explanation,
		Commands: describeCommands(cmd),
		Metadata: ResponseMetadata{
			Confidence:      cmd.Confidence,
			Reasoning:       fmt.Sprintf("Interpreted as a %s command (%s).", cmd.Kind, cmd.Action),
			EstimatedImpact: model.ImpactLow,
		},
	}

	if res.Changed {
		diff := textdiff.Compare(o.sess.Document, res.Candidate)
		sugg := o.tracker.Propose(o.sess.Document, res.Candidate, res.Explanation)

		resp.HasSuggestion = true
		resp.SuggestedContent = res.Candidate
		resp.SuggestionID = sugg.ID
		resp.Metadata.EstimatedImpact = estimateImpact(diff)
		resp.Message = res.Explanation + "\n\nReply approve to apply this change, or reject to discard it."
	}

	resp.Analysis = o.buildAnalysis(res)
	return resp
}

// finishTurn records the assistant message and persists the session.
func (o *Orchestrator) finishTurn(resp *TurnResponse, cmd *intent.Command) (*TurnResponse, error) {
	meta := &model.MessageMeta{}
	if cmd != nil {
		meta.Action = cmd.Action.String()
		meta.Confidence = cmd.Confidence
	}
	if resp.HasSuggestion {
		meta.EditStatus = model.EditPending
	}

	msg := o.sess.Append(model.RoleAssistant, resp.Message, meta)
	resp.MessageID = msg.ID

	o.persist(context.Background())
	return resp, nil
}

// Resume attaches the session to a persisted session ID, loading its
// document and transcript when they exist. A never-seen ID simply names
// the new session, so resuming is idempotent across runs.
func (o *Orchestrator) Resume(ctx context.Context, sessionID string) error {
	if o.store == nil {
		return fmt.Errorf("no session store configured")
	}
	o.sess.ID = sessionID

	exists, err := o.store.Exists(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to check session: %w", err)
	}
	if !exists {
		return nil
	}

	doc, err := o.store.LoadDocument(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}
	o.SetDocument(doc)

	msgs, err := o.store.LoadTranscript(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to load transcript: %w", err)
	}
	o.sess.Restore(msgs)
	return nil
}

// Decide resolves the pending suggestion. Approving merges the candidate
// and re-analyzes the document; rejecting discards it. Either way the
// originating assistant message's edit status is updated.
func (o *Orchestrator) Decide(ctx context.Context, approve bool) (*TurnResponse, error) {
	pending := o.tracker.Pending()
	if pending == nil {
		return &TurnResponse{
			Message: "There's no suggestion waiting for a decision.",
		}, nil
	}

	var resp *TurnResponse
	if approve {
		merged, _, ok := o.tracker.Approve(o.sess.Document)
		if !ok {
			resp = &TurnResponse{
				Message: "The document changed since that suggestion was made, so it no longer applies cleanly. Ask for the edit again.",
			}
		} else {
			o.SetDocument(merged)
			o.markLastPending(model.EditApproved)
			resp = &TurnResponse{
				Message: "Applied the suggestion. The document has been updated and re-analyzed.",
			}
		}
	} else {
		o.tracker.Reject()
		o.markLastPending(model.EditRejected)
		resp = &TurnResponse{
			Message: "Discarded the suggestion. The document is unchanged.",
		}
	}

	msg := o.sess.Append(model.RoleAssistant, resp.Message, nil)
	resp.MessageID = msg.ID
	o.persist(ctx)
	return resp, nil
}

// markLastPending updates the newest assistant message still marked
// pending.
func (o *Orchestrator) markLastPending(status model.EditStatus) {
	history := o.sess.History()
	for i := len(history) - 1; i >= 0; i-- {
		m := history[i]
		if m.Role == model.RoleAssistant && m.Meta != nil && m.Meta.EditStatus == model.EditPending {
			o.sess.MarkEditStatus(m.ID, status)
			return
		}
	}
}

// PendingDiff renders the pending suggestion as a unified diff, or ""
// when nothing is pending.
func (o *Orchestrator) PendingDiff() string {
	pending := o.tracker.Pending()
	if pending == nil {
		return ""
	}
	diff := textdiff.Compare(pending.Original, pending.Candidate)
	return textdiff.Format(diff, o.cfg.DiffContextLines)
}

// Pending returns the pending suggestion, or nil.
func (o *Orchestrator) Pending() *approval.Suggestion {
	return o.tracker.Pending()
}

// persist saves the session to the configured store, logging failures
// rather than surfacing them; persistence is best-effort.
func (o *Orchestrator) persist(ctx context.Context) {
	if o.store == nil {
		return
	}
	if err := o.store.SaveDocument(ctx, o.sess.ID, o.sess.Document); err != nil {
		o.logger.Warn("failed to persist document", zap.String("session", o.sess.ID), zap.Error(err))
		return
	}
	if err := o.store.SaveTranscript(ctx, o.sess.ID, o.sess.History()); err != nil {
		o.logger.Warn("failed to persist transcript", zap.String("session", o.sess.ID), zap.Error(err))
	}
}

// estimateImpact grades a diff by the share of lines it touches.
func estimateImpact(diff textdiff.Result) model.Impact {
	changed := diff.AddedN + diff.RemovedN
	if changed == 0 {
		return model.ImpactLow
	}
	total := diff.Unchanged + diff.RemovedN
	if total < 1 {
		total = 1
	}
	ratio := float64(changed) / float64(total)
	switch {
	case ratio < 0.25:
		return model.ImpactLow
	case ratio < 0.75:
		return model.ImpactMedium
	default:
		return model.ImpactHigh
	}
}

// describeCommands flattens a command tree into wire descriptions.
func describeCommands(cmd *intent.Command) []CommandInfo {
	if cmd == nil {
		return nil
	}
	if len(cmd.Sub) == 0 {
		return []CommandInfo{{
			Kind:       cmd.Kind.String(),
			Action:     cmd.Action.String(),
			Params:     cmd.Params,
			Confidence: cmd.Confidence,
		}}
	}

	infos := make([]CommandInfo, 0, len(cmd.Sub))
	for _, sub := range cmd.Sub {
		infos = append(infos, describeCommands(sub)...)
	}
	return infos
}

// buildAnalysis derives improvement notes, warnings, and opportunities
// from the current metadata and this turn's outcome.
func (o *Orchestrator) buildAnalysis(res suggest.Result) AnalysisReport {
	var report AnalysisReport
	meta := o.sess.Metadata

	if res.Changed {
		report.Improvements = append(report.Improvements, "A revised draft is ready for review.")
	}

	if meta.WordCount > 0 {
		if meta.Readability.Flesch < 40 {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("The text is hard to read (reading ease %.0f). Consider simplifying.", meta.Readability.Flesch))
		}
		if meta.SentenceCount > 0 && meta.WordCount/meta.SentenceCount > 28 {
			report.Warnings = append(report.Warnings, "Sentences average very long; splitting them would help.")
		}
		if !meta.Structure.HasHeadings && meta.WordCount > 400 {
			report.Opportunities = append(report.Opportunities, "A document this long would benefit from headings.")
		}
		if o.sess.Preferences.PreferredTone != "" && meta.Tone != o.sess.Preferences.PreferredTone {
			report.Opportunities = append(report.Opportunities,
				fmt.Sprintf("The tone reads as %s but your preference is %s.", meta.Tone, o.sess.Preferences.PreferredTone))
		}
	}

	return report
}
