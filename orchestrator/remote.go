package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/redpen/redpen/intent"
	ijson "github.com/redpen/redpen/internal/json"
	"github.com/redpen/redpen/llm"
)

// remoteIntent is the JSON envelope the remote model returns when asked
// to classify an instruction.
type remoteIntent struct {
	Action     string            `json:"action"`
	Params     map[string]string `json:"params"`
	Confidence float64           `json:"confidence"`
	Reasoning  string            `json:"reasoning"`
}

const intentSystemPrompt = `You classify document-editing instructions.
Respond with a JSON object of the form:
{"action": "<action>", "params": {...}, "confidence": 0.0-1.0, "reasoning": "<why>"}
The action must be one of: add, remove, replace, move, format, structure,
tone, simplify, enhance, analyze, summarize, custom.
Params by action:
  add: "text" (exact text to insert), "topic", "unit" (paragraph, sentence, heading, list, quote)
  remove: "match" (content to remove), "position" (first or last), "unit"
  replace: "search" (text to find) and "replacement"
  tone: "tone" (formal, casual, professional, academic, creative)
  format: "focus" (grammar, punctuation, spelling, typos, whitespace)
  enhance: "topic"
Use "custom" when the instruction does not fit any action.`

// refineRemotely asks the configured provider to classify an instruction
// the heuristics were unsure about. All failures are wrapped in
// ErrExternalService so the caller can treat them uniformly.
func (o *Orchestrator) refineRemotely(ctx context.Context, instruction string) (*intent.Command, error) {
	messages := []llm.ChatMessage{
		llm.SystemMessage(intentSystemPrompt),
		llm.UserMessage(fmt.Sprintf("Instruction: %s", instruction)),
	}

	content, usage, err := o.client.ChatWithFormat(ctx, messages, llm.NewJSONObjectFormat())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExternalService, err)
	}
	if usage != nil {
		o.logger.Debug("remote intent classification",
			zap.String("provider", o.client.Provider().Name()),
			zap.Uint32("prompt_tokens", usage.PromptTokens),
			zap.Uint32("completion_tokens", usage.CompletionTokens))
	}

	envelope, err := ijson.Decode[remoteIntent](content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExternalService, err)
	}

	action, err := intent.ParseAction(strings.ToLower(strings.TrimSpace(envelope.Action)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExternalService, err)
	}

	confidence := envelope.Confidence
	if confidence < 0 || confidence > 1 {
		return nil, fmt.Errorf("%w: confidence %v out of range", ErrExternalService, envelope.Confidence)
	}

	return &intent.Command{
		Kind:       intent.KindSimple,
		Action:     action,
		Params:     canonicalParams(action, envelope.Params),
		Confidence: confidence,
	}, nil
}

// canonicalParams folds the generic key names remote models drift
// toward onto the keys the suggestion generator reads.
func canonicalParams(action intent.ActionKind, params map[string]string) map[string]string {
	out := make(map[string]string, len(params))
	for k, v := range params {
		out[strings.ToLower(strings.TrimSpace(k))] = v
	}

	alias := func(from, to string) {
		v, ok := out[from]
		if !ok {
			return
		}
		if _, taken := out[to]; !taken {
			out[to] = v
		}
		delete(out, from)
	}

	switch action {
	case intent.ActionAdd:
		alias("content", "text")
	case intent.ActionReplace:
		alias("target", "search")
	case intent.ActionRemove:
		alias("target", "match")
		alias("content", "match")
	}
	return out
}
