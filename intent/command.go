// Package intent converts free-text editing instructions into typed commands.
//
// Resolution is deterministic and rule-based: connector splitting, a
// fixed-priority canonical pattern library, and a keyword-class fallback.
// There is no statistical classification anywhere in this package.
package intent

import "fmt"

// ActionKind is the closed set of editing actions a command can carry.
type ActionKind int

const (
	ActionAdd ActionKind = iota
	ActionRemove
	ActionReplace
	ActionMove
	ActionFormat
	ActionStructure
	ActionTone
	ActionSimplify
	ActionEnhance
	ActionAnalyze
	ActionSummarize
	ActionCustom
)

// String returns the wire name of the action.
func (a ActionKind) String() string {
	switch a {
	case ActionAdd:
		return "add"
	case ActionRemove:
		return "remove"
	case ActionReplace:
		return "replace"
	case ActionMove:
		return "move"
	case ActionFormat:
		return "format"
	case ActionStructure:
		return "structure"
	case ActionTone:
		return "tone"
	case ActionSimplify:
		return "simplify"
	case ActionEnhance:
		return "enhance"
	case ActionAnalyze:
		return "analyze"
	case ActionSummarize:
		return "summarize"
	case ActionCustom:
		return "custom"
	default:
		return fmt.Sprintf("unknown(%d)", int(a))
	}
}

// ParseAction converts a wire name back to an ActionKind.
func ParseAction(s string) (ActionKind, error) {
	for a := ActionAdd; a <= ActionCustom; a++ {
		if a.String() == s {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown action %q", s)
}

// CommandKind distinguishes the command variants.
type CommandKind int

const (
	// KindSimple is a single action with parameters.
	KindSimple CommandKind = iota
	// KindCompound is two or more ordered sub-commands executed sequentially,
	// each seeing the previous one's output.
	KindCompound
	// KindConditional guards one sub-command behind a predicate evaluated
	// against the current text and metadata.
	KindConditional
	// KindBatch is an explicitly enumerated list of sub-commands.
	KindBatch
)

func (k CommandKind) String() string {
	switch k {
	case KindSimple:
		return "simple"
	case KindCompound:
		return "compound"
	case KindConditional:
		return "conditional"
	case KindBatch:
		return "batch"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Command is the typed representation of one editing instruction.
// Created per turn, consumed immediately, never persisted.
type Command struct {
	Kind       CommandKind
	Action     ActionKind
	Params     map[string]string
	Sub        []*Command // ordered, for compound/conditional/batch
	Condition  string     // predicate text, for conditional
	Confidence float64    // parser certainty in [0,1]
}

// Param returns a parameter value, or "" when absent.
func (c *Command) Param(key string) string {
	if c == nil || c.Params == nil {
		return ""
	}
	return c.Params[key]
}

// newCommand builds a simple command with the given action and confidence.
func newCommand(action ActionKind, confidence float64) *Command {
	return &Command{
		Kind:       KindSimple,
		Action:     action,
		Params:     map[string]string{},
		Confidence: confidence,
	}
}
