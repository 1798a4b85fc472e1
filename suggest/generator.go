// Package suggest executes typed editing commands against document text,
// producing candidate text plus a human-readable explanation.
//
// Information Hiding:
// - Per-action rewrite strategies hidden behind Generator.Apply
// - Phrase and substitution tables are package-private
// - Recursive compound/conditional/batch execution hidden
//
// Apply never fails for a recognized action: empty matches and no-op
// outcomes are reported through the explanation, not through errors.
package suggest

import (
	"fmt"
	"strings"

	"github.com/redpen/redpen/analysis"
	"github.com/redpen/redpen/intent"
	"github.com/redpen/redpen/model"
)

// Result is the outcome of executing one command.
type Result struct {
	Candidate   string // proposed text; equals the input when nothing changed
	Explanation string
	Changed     bool
	Clarify     bool // the explanation is a clarifying question
}

// Generator executes commands. Stateless and safe for concurrent use.
type Generator struct{}

// NewGenerator creates a suggestion generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Apply executes cmd against text. The only error condition is a malformed
// command (nil, or an action outside the closed set); every recognized
// action yields a Result.
func (g *Generator) Apply(cmd *intent.Command, text string, meta model.DocumentMetadata, prefs model.Preferences) (Result, error) {
	if cmd == nil {
		return Result{}, fmt.Errorf("nil command")
	}

	switch cmd.Kind {
	case intent.KindCompound:
		return g.applySequence(cmd.Sub, text, meta, prefs)
	case intent.KindConditional:
		return g.applyConditional(cmd, text, meta, prefs)
	case intent.KindBatch:
		return g.applySequence(cmd.Sub, text, meta, prefs)
	case intent.KindSimple:
		return g.applySimple(cmd, text, meta, prefs)
	default:
		return Result{}, fmt.Errorf("unknown command kind %v", cmd.Kind)
	}
}

// applySimple dispatches over the closed action set. Every case is listed
// so an unhandled action is a compile-visible gap, not a silent fallthrough.
func (g *Generator) applySimple(cmd *intent.Command, text string, meta model.DocumentMetadata, prefs model.Preferences) (Result, error) {
	switch cmd.Action {
	case intent.ActionAdd:
		return g.add(cmd, text, meta, prefs), nil
	case intent.ActionRemove:
		return g.remove(cmd, text), nil
	case intent.ActionReplace:
		return g.replace(cmd, text), nil
	case intent.ActionMove:
		return Result{
			Candidate:   text,
			Explanation: "Moving content is recognized but not supported yet; nothing was changed. Try removing the passage and adding it where you want it.",
		}, nil
	case intent.ActionFormat:
		return g.fix(cmd, text), nil
	case intent.ActionStructure:
		return g.structure(cmd, text, meta), nil
	case intent.ActionTone:
		return g.adjustTone(cmd, text, meta, prefs), nil
	case intent.ActionSimplify:
		return g.simplify(cmd, text), nil
	case intent.ActionEnhance:
		return g.enhance(cmd, text, meta), nil
	case intent.ActionAnalyze:
		return g.analyze(text, meta), nil
	case intent.ActionSummarize:
		return g.summarize(text, meta), nil
	case intent.ActionCustom:
		return Result{
			Candidate:   text,
			Explanation: fmt.Sprintf("I'm not sure how to apply %q. Could you rephrase what you want changed? For example, say what to add, remove, or rewrite.", cmd.Param("instruction")),
			Clarify:     true,
		}, nil
	default:
		return Result{}, fmt.Errorf("unknown action %v", cmd.Action)
	}
}

// applySequence executes ordered sub-commands, threading each candidate
// into the next command and concatenating explanations.
func (g *Generator) applySequence(sub []*intent.Command, text string, meta model.DocumentMetadata, prefs model.Preferences) (Result, error) {
	if len(sub) == 0 {
		return Result{Candidate: text, Explanation: "The instruction split into no executable steps."}, nil
	}

	current := text
	currentMeta := meta
	var explanations []string
	changed := false

	for i, c := range sub {
		res, err := g.Apply(c, current, currentMeta, prefs)
		if err != nil {
			return Result{}, fmt.Errorf("step %d: %w", i+1, err)
		}
		explanations = append(explanations, fmt.Sprintf("Step %d: %s", i+1, res.Explanation))
		if res.Changed {
			current = res.Candidate
			currentMeta = analysis.Analyze(current)
			changed = true
		}
	}

	return Result{
		Candidate:   current,
		Explanation: strings.Join(explanations, "\n"),
		Changed:     changed,
	}, nil
}

// applyConditional evaluates the predicate and runs the guarded
// sub-command only on a true evaluation.
func (g *Generator) applyConditional(cmd *intent.Command, text string, meta model.DocumentMetadata, prefs model.Preferences) (Result, error) {
	if len(cmd.Sub) == 0 {
		return Result{}, fmt.Errorf("conditional command without sub-command")
	}

	if !intent.EvaluateCondition(cmd.Condition, text, meta) {
		return Result{
			Candidate:   text,
			Explanation: fmt.Sprintf("The condition %q does not hold for this document, so nothing was changed.", cmd.Condition),
		}, nil
	}

	res, err := g.Apply(cmd.Sub[0], text, meta, prefs)
	if err != nil {
		return Result{}, err
	}
	res.Explanation = fmt.Sprintf("The condition %q holds. %s", cmd.Condition, res.Explanation)
	return res, nil
}
