// Instruction parser with fixed-priority resolution.
//
// Resolution order (first match wins):
//  1. compound connectors ("and"/"then"/"also"/"plus")
//  2. conditional connectors ("if"/"when" ... "then"/",")
//  3. explicit enumerated batches ("do the following: a; b; c")
//  4. the canonical action pattern library
//  5. keyword-class fallback, defaulting to a low-confidence enhance
package intent

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Parser converts a free-text instruction into a Command.
// A Parser is immutable after construction and safe for concurrent use.
type Parser struct {
	patterns []ActionPattern
}

// NewParser creates a parser with the canonical pattern library.
func NewParser() *Parser {
	return &Parser{patterns: defaultPatterns()}
}

// NewParserWithPatterns creates a parser with a caller-supplied pattern
// ordering. The fixed-priority contract still holds: earlier patterns win.
func NewParserWithPatterns(patterns []ActionPattern) *Parser {
	return &Parser{patterns: patterns}
}

const (
	confidencePattern  = 0.9
	confidenceKeyword  = 0.6
	confidenceGeneric  = 0.3
	confidenceCombined = 0.8
)

var (
	compoundConnector = regexp.MustCompile(`(?i)\s+(?:and then|and|then|also|plus)\s+`)
	conditionalStart  = regexp.MustCompile(`(?i)^\s*(?:if|when)\s+`)
	conditionalSplit  = regexp.MustCompile(`(?i)\s*(?:,\s*then\s+|,\s+|\s+then\s+)`)
	batchMarker       = regexp.MustCompile(`(?i)^\s*(?:please\s+)?do the following\s*:?\s*`)
)

// Parse resolves an instruction into a Command, or nil for blank input.
// It never returns an error: unmatched instructions resolve to a
// low-confidence generic enhance command.
func (p *Parser) Parse(instruction string) *Command {
	instruction = strings.TrimSpace(instruction)
	if instruction == "" {
		return nil
	}

	// 1. Compound: split on the first connector into two ordered parts,
	// each parsed without further compound splitting on the left side.
	if cmd := p.parseCompound(instruction); cmd != nil {
		return cmd
	}

	// 2. Conditional: predicate + guarded sub-command.
	if cmd := p.parseConditional(instruction); cmd != nil {
		return cmd
	}

	// 3. Explicit enumerated batch.
	if cmd := p.parseBatch(instruction); cmd != nil {
		return cmd
	}

	// 4/5. Canonical patterns, then keyword fallback.
	return p.parseSimple(instruction)
}

// parseCompound splits "X and Y" into an ordered pair of sub-commands.
// Connectors inside quoted text do not split.
func (p *Parser) parseCompound(instruction string) *Command {
	loc := compoundConnector.FindStringIndex(maskQuoted(instruction))
	if loc == nil {
		return nil
	}
	left := strings.TrimSpace(instruction[:loc[0]])
	right := strings.TrimSpace(instruction[loc[1]:])
	if left == "" || right == "" {
		return nil
	}

	first := p.parseSimpleOrConditional(left)
	second := p.Parse(right) // right side may itself be compound
	if first == nil || second == nil {
		return nil
	}

	// Splitting on a connector inside a single clause ("pricing and
	// shipping") produces a useless generic pair; require at least one
	// side to resolve with real confidence.
	if first.Confidence <= confidenceGeneric && second.Confidence <= confidenceGeneric {
		return nil
	}

	sub := []*Command{first}
	if second.Kind == KindCompound {
		sub = append(sub, second.Sub...)
	} else {
		sub = append(sub, second)
	}

	return &Command{
		Kind:       KindCompound,
		Action:     ActionCustom,
		Params:     map[string]string{},
		Sub:        sub,
		Confidence: confidenceCombined,
	}
}

// parseConditional extracts "if/when <predicate>, then <command>".
func (p *Parser) parseConditional(instruction string) *Command {
	if !conditionalStart.MatchString(instruction) {
		return nil
	}
	rest := conditionalStart.ReplaceAllString(instruction, "")
	parts := conditionalSplit.Split(rest, 2)
	if len(parts) < 2 {
		return nil
	}
	predicate := strings.TrimSpace(parts[0])
	body := strings.TrimSpace(parts[1])
	if predicate == "" || body == "" {
		return nil
	}

	sub := p.parseSimple(body)
	return &Command{
		Kind:       KindConditional,
		Action:     sub.Action,
		Params:     map[string]string{},
		Sub:        []*Command{sub},
		Condition:  predicate,
		Confidence: sub.Confidence * 0.9,
	}
}

// parseBatch recognizes "do the following: a; b; c" enumerations.
func (p *Parser) parseBatch(instruction string) *Command {
	loc := batchMarker.FindStringIndex(instruction)
	if loc == nil {
		return nil
	}
	body := instruction[loc[1]:]
	items := splitBatchItems(body)
	if len(items) < 2 {
		return nil
	}

	sub := make([]*Command, 0, len(items))
	for _, item := range items {
		sub = append(sub, p.parseSimple(item))
	}

	return &Command{
		Kind:       KindBatch,
		Action:     ActionCustom,
		Params:     map[string]string{},
		Sub:        sub,
		Confidence: confidenceCombined,
	}
}

// parseSimpleOrConditional parses without compound splitting, so the left
// half of a compound can still be a conditional.
func (p *Parser) parseSimpleOrConditional(instruction string) *Command {
	if cmd := p.parseConditional(instruction); cmd != nil {
		return cmd
	}
	return p.parseSimple(instruction)
}

// parseSimple runs the canonical library, then the keyword-class fallback.
func (p *Parser) parseSimple(instruction string) *Command {
	for _, pattern := range p.patterns {
		if pattern.Match.MatchString(instruction) {
			cmd := newCommand(pattern.Action, confidencePattern)
			pattern.Extract(instruction, cmd)
			cmd.Params["instruction"] = instruction
			return cmd
		}
	}

	// Keyword-class fallback: highest-scoring class wins.
	lower := strings.ToLower(instruction)
	bestScore := 0
	bestAction := ActionEnhance
	for _, class := range fallbackClasses {
		score := 0
		for _, kw := range class.Keywords {
			if strings.Contains(lower, kw) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			bestAction = class.Action
		}
	}

	if bestScore > 0 {
		cmd := newCommand(bestAction, confidenceKeyword)
		cmd.Params["instruction"] = instruction
		return cmd
	}

	// Nothing matched: generic low-confidence enhance.
	cmd := newCommand(ActionEnhance, confidenceGeneric)
	cmd.Params["instruction"] = instruction
	cmd.Params["generic"] = "true"
	return cmd
}

// splitBatchItems splits an enumeration body on semicolons, newlines, or
// numbered prefixes.
func splitBatchItems(body string) []string {
	var raw []string
	if strings.Contains(body, ";") {
		raw = strings.Split(body, ";")
	} else if strings.Contains(body, "\n") {
		raw = strings.Split(body, "\n")
	} else {
		raw = regexp.MustCompile(`\s*\d+[.)]\s*`).Split(body, -1)
	}

	items := make([]string, 0, len(raw))
	for _, r := range raw {
		r = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(r), "-*"))
		r = regexp.MustCompile(`^\d+[.)]\s*`).ReplaceAllString(r, "")
		if r != "" {
			items = append(items, r)
		}
	}
	return items
}

// maskQuoted blanks out quoted spans so connector matching ignores them.
// Each masked rune becomes one underscore per byte, so offsets found in
// the mask index the original string exactly.
func maskQuoted(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inQuote := false
	for _, r := range s {
		if r == '"' {
			inQuote = !inQuote
			b.WriteRune(r)
			continue
		}
		if inQuote {
			for i := 0; i < utf8.RuneLen(r); i++ {
				b.WriteByte('_')
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
