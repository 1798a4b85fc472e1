// Tone adjustment via reversible substitution tables.
package suggest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/redpen/redpen/intent"
	"github.com/redpen/redpen/model"
)

// substitution records one applied table entry for the explanation.
type substitution struct {
	From  string
	To    string
	Count int
}

// adjustTone rewrites the text toward the requested tone. Formal-leaning
// targets expand contractions and swap casual vocabulary; casual-leaning
// targets apply the same tables in reverse, so the two directions invert
// each other on table-only text.
func (g *Generator) adjustTone(cmd *intent.Command, text string, meta model.DocumentMetadata, prefs model.Preferences) Result {
	target := cmd.Param("tone")
	if target == "" && prefs.PreferredTone != "" {
		target = string(prefs.PreferredTone)
	}
	if target == "" {
		target = "formal"
	}

	// "less formal" means move toward casual, and vice versa.
	if cmd.Param("direction") == "less" {
		if toneIsFormal(target) {
			target = "casual"
		} else {
			target = "formal"
		}
	}

	formalize := toneIsFormal(target)
	if string(meta.Tone) == target {
		return Result{
			Candidate:   text,
			Explanation: fmt.Sprintf("The document already reads as %s; no changes were needed.", target),
		}
	}

	candidate := text
	var subs []substitution

	candidate, subs = applyPairs(candidate, contractionPairs, formalize, subs)
	if !prefs.PreserveVoice {
		candidate, subs = applyStarters(candidate, formalize, subs)
		candidate, subs = applyPairs(candidate, casualWordPairs, formalize, subs)
	}

	if len(subs) == 0 {
		return Result{
			Candidate:   text,
			Explanation: fmt.Sprintf("No phrasing needed adjustment toward a %s tone.", target),
		}
	}

	return Result{
		Candidate:   candidate,
		Explanation: fmt.Sprintf("Adjusted the tone toward %s. Substitutions: %s.", target, describeSubs(subs)),
		Changed:     true,
	}
}

func toneIsFormal(target string) bool {
	switch target {
	case "formal", "professional", "academic":
		return true
	default:
		return false
	}
}

// applyPairs runs one direction of a pair table, recording every
// substitution. Both the lowercase and the capitalized variant of the
// source form are replaced, keeping capitalization aligned.
func applyPairs(text string, pairs []wordPair, formalize bool, subs []substitution) (string, []substitution) {
	for _, p := range pairs {
		from, to := p.Casual, p.Formal
		if !formalize {
			from, to = p.Formal, p.Casual
		}

		count := 0
		for _, variant := range [][2]string{
			{from, to},
			{capitalizeFirst(from), capitalizeFirst(to)},
		} {
			n := strings.Count(text, variant[0])
			if n == 0 {
				continue
			}
			text = strings.ReplaceAll(text, variant[0], variant[1])
			count += n
		}
		if count > 0 {
			subs = append(subs, substitution{From: from, To: to, Count: count})
		}
	}
	return text, subs
}

// applyStarters swaps sentence-opening connectives. Matches only at the
// start of the text or after terminal punctuation, so mid-sentence
// conjunctions survive.
func applyStarters(text string, formalize bool, subs []substitution) (string, []substitution) {
	for _, p := range starterPairs {
		from, to := p.Casual, p.Formal
		if !formalize {
			from, to = p.Formal, p.Casual
		}

		re := regexp.MustCompile(`(^|[.!?]\s+|\n\s*)` + regexp.QuoteMeta(from) + `\b`)
		count := len(re.FindAllString(text, -1))
		if count == 0 {
			continue
		}
		text = re.ReplaceAllString(text, "${1}"+to)
		subs = append(subs, substitution{From: from, To: to, Count: count})
	}
	return text, subs
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func describeSubs(subs []substitution) string {
	parts := make([]string, 0, len(subs))
	for _, s := range subs {
		if s.Count > 1 {
			parts = append(parts, fmt.Sprintf("%q to %q (x%d)", s.From, s.To, s.Count))
		} else {
			parts = append(parts, fmt.Sprintf("%q to %q", s.From, s.To))
		}
	}
	return strings.Join(parts, ", ")
}
