// Canonical action pattern library.
//
// Patterns are tried in slice order and the first match wins. The ordering
// is a deliberate, auditable tie-break rather than a best-score selection;
// callers may supply their own ordering via NewParserWithPatterns.
package intent

import (
	"regexp"
	"strings"
)

// ActionPattern recognizes one canonical instruction shape and extracts
// named parameters from it.
type ActionPattern struct {
	Action  ActionKind
	Match   *regexp.Regexp
	Extract func(instruction string, cmd *Command)
}

var (
	quotedText    = regexp.MustCompile(`["“']([^"”']+)["”']`)
	aboutTopic    = regexp.MustCompile(`(?i)\babout\s+(.+?)(?:\.|$)`)
	addUnit       = regexp.MustCompile(`(?i)\badd\b(?:\s+(?:a|an|another|new))?\s*(paragraph|section|sentence|line|list|quote|heading)?`)
	removeScope   = regexp.MustCompile(`(?i)\b(?:remove|delete)\b\s+(?:the\s+)?(first|last)?\s*(paragraph|section|sentence|line)?`)
	replaceParts  = regexp.MustCompile(`(?i)\breplace\s+(?:all\s+)?["“']?(.+?)["”']?\s+with\s+["“']?(.+?)["”']?\s*$`)
	toneTarget    = regexp.MustCompile(`(?i)\b(?:more|less)?\s*(formal|casual|professional|academic|creative)\b`)
	toneDirection = regexp.MustCompile(`(?i)\b(more|less)\s+(formal|casual|professional|academic|creative)\b`)
)

// defaultPatterns returns the canonical library in its declared priority
// order. The concrete ordering is configurable, not semantically load-bearing,
// but must stay fixed for the life of a Parser.
func defaultPatterns() []ActionPattern {
	return []ActionPattern{
		{
			Action: ActionAdd,
			Match:  regexp.MustCompile(`(?i)\b(?:add|insert|append)\b`),
			Extract: func(in string, cmd *Command) {
				if m := addUnit.FindStringSubmatch(in); m != nil && m[1] != "" {
					cmd.Params["unit"] = strings.ToLower(m[1])
				}
				if m := quotedText.FindStringSubmatch(in); m != nil {
					cmd.Params["text"] = m[1]
				}
				if m := aboutTopic.FindStringSubmatch(in); m != nil {
					cmd.Params["topic"] = strings.TrimSpace(m[1])
				}
			},
		},
		{
			Action: ActionRemove,
			Match:  regexp.MustCompile(`(?i)\b(?:remove|delete|take out|get rid of)\b`),
			Extract: func(in string, cmd *Command) {
				if m := removeScope.FindStringSubmatch(in); m != nil {
					if m[1] != "" {
						cmd.Params["position"] = strings.ToLower(m[1])
					}
					if m[2] != "" {
						cmd.Params["unit"] = strings.ToLower(m[2])
					}
				}
				if m := aboutTopic.FindStringSubmatch(in); m != nil {
					cmd.Params["match"] = strings.TrimSpace(m[1])
				} else if m := quotedText.FindStringSubmatch(in); m != nil {
					cmd.Params["match"] = m[1]
				}
			},
		},
		{
			Action: ActionReplace,
			Match:  regexp.MustCompile(`(?i)\breplace\b.+\bwith\b`),
			Extract: func(in string, cmd *Command) {
				if m := replaceParts.FindStringSubmatch(in); m != nil {
					cmd.Params["search"] = strings.TrimSpace(m[1])
					cmd.Params["replacement"] = strings.TrimSpace(m[2])
				}
			},
		},
		{
			// Recognized but unimplemented downstream: the generator emits
			// an explicit no-op explanation for move commands.
			Action:  ActionMove,
			Match:   regexp.MustCompile(`(?i)\bmove\b.+\b(?:to|before|after|up|down)\b`),
			Extract: func(in string, cmd *Command) {},
		},
		{
			Action: ActionFormat,
			Match:  regexp.MustCompile(`(?i)\b(?:fix|correct|clean up|proofread)\b|\bformatting\b`),
			Extract: func(in string, cmd *Command) {
				lower := strings.ToLower(in)
				for _, focus := range []string{"grammar", "punctuation", "spelling", "typos", "whitespace"} {
					if strings.Contains(lower, focus) {
						cmd.Params["focus"] = focus
						break
					}
				}
			},
		},
		{
			Action:  ActionStructure,
			Match:   regexp.MustCompile(`(?i)\b(?:structure|restructure|organi[sz]e|reorgani[sz]e)\b|\badd (?:headings|sections)\b`),
			Extract: func(in string, cmd *Command) {},
		},
		{
			Action: ActionTone,
			Match:  regexp.MustCompile(`(?i)\bmake (?:it|this|the \w+) (?:sound |feel |read )?(?:more |less )?(?:formal|casual|professional|academic|creative)\b|\b(?:formal|casual|professional|academic|creative) tone\b`),
			Extract: func(in string, cmd *Command) {
				if m := toneDirection.FindStringSubmatch(in); m != nil {
					cmd.Params["direction"] = strings.ToLower(m[1])
					cmd.Params["tone"] = strings.ToLower(m[2])
				} else if m := toneTarget.FindStringSubmatch(in); m != nil {
					cmd.Params["tone"] = strings.ToLower(m[1])
				}
			},
		},
		{
			Action:  ActionSimplify,
			Match:   regexp.MustCompile(`(?i)\bsimplify\b|\bmake (?:it |this )?(?:simpler|easier to read|clearer|more readable)\b|\bshorter sentences\b`),
			Extract: func(in string, cmd *Command) {},
		},
		{
			Action: ActionEnhance,
			Match:  regexp.MustCompile(`(?i)\b(?:improve|enhance|polish|elaborate|expand|strengthen)\b`),
			Extract: func(in string, cmd *Command) {
				if m := aboutTopic.FindStringSubmatch(in); m != nil {
					cmd.Params["topic"] = strings.TrimSpace(m[1])
				}
			},
		},
		{
			Action:  ActionAnalyze,
			Match:   regexp.MustCompile(`(?i)\b(?:analy[sz]e|review|assess|evaluate|check)\b`),
			Extract: func(in string, cmd *Command) {},
		},
		{
			Action:  ActionSummarize,
			Match:   regexp.MustCompile(`(?i)\bsummari[sz]e\b|\bsum up\b|\btl;?dr\b`),
			Extract: func(in string, cmd *Command) {},
		},
	}
}

// fallbackClasses maps instruction keywords to an action for the
// keyword-class fallback. Scores count keyword hits; the highest class wins.
var fallbackClasses = []struct {
	Action   ActionKind
	Keywords []string
}{
	{ActionAdd, []string{"add", "include", "insert", "append", "more content", "write"}},
	{ActionRemove, []string{"remove", "delete", "cut", "drop", "trim"}},
	{ActionEnhance, []string{"improve", "better", "enhance", "polish", "expand", "elaborate"}},
	{ActionSimplify, []string{"simple", "simpler", "simplify", "shorter", "concise", "clear"}},
	{ActionTone, []string{"formal", "casual", "professional", "academic", "creative", "tone", "sound"}},
	{ActionStructure, []string{"structure", "organize", "heading", "section", "outline"}},
	{ActionFormat, []string{"fix", "grammar", "typo", "spelling", "punctuation", "format"}},
}
