// Sentence-splitting and vocabulary simplification.
package suggest

import (
	"fmt"
	"strings"

	"github.com/redpen/redpen/analysis"
	"github.com/redpen/redpen/intent"
)

// longSentenceWords is the word count above which a sentence gets split.
const longSentenceWords = 20

var splitConjunctions = []string{", and ", ", but ", ", so ", ", which ", "; ", " and ", " but ", " because "}

// simplify splits long sentences at the conjunction nearest their
// midpoint and swaps complex vocabulary for plainer words, reporting the
// estimated readability change.
func (g *Generator) simplify(cmd *intent.Command, text string) Result {
	before := analysis.Analyze(text).Readability.Flesch

	candidate := text
	splitCount := 0
	for _, sentence := range analysis.Sentences(text) {
		if len(analysis.Words(sentence)) <= longSentenceWords {
			continue
		}
		replacement, ok := splitSentence(sentence)
		if !ok {
			continue
		}
		candidate = strings.Replace(candidate, sentence, replacement, 1)
		splitCount++
	}

	var swaps []substitution
	// complexSimple stores simple first, so this runs it complex-to-simple.
	candidate, swaps = applyPairs(candidate, complexSimple, false, nil)

	if splitCount == 0 && len(swaps) == 0 {
		return Result{
			Candidate:   text,
			Explanation: "The text is already fairly simple; no long sentences or complex phrasing stood out.",
		}
	}

	after := analysis.Analyze(candidate).Readability.Flesch
	explanation := fmt.Sprintf("Simplified the text: split %d long sentence(s)", splitCount)
	if len(swaps) > 0 {
		explanation += fmt.Sprintf(", replaced %s", describeSubs(swaps))
	}
	explanation += fmt.Sprintf(". Estimated reading ease moved from %.1f to %.1f.", before, after)

	return Result{
		Candidate:   candidate,
		Explanation: explanation,
		Changed:     true,
	}
}

// splitSentence breaks one sentence at the conjunction nearest its
// midpoint, producing two sentences. Returns false when no conjunction
// is available.
func splitSentence(sentence string) (string, bool) {
	mid := len(sentence) / 2
	bestIdx := -1
	bestConj := ""
	bestDist := len(sentence)

	for _, conj := range splitConjunctions {
		pos := 0
		for {
			idx := strings.Index(sentence[pos:], conj)
			if idx < 0 {
				break
			}
			idx += pos
			dist := idx - mid
			if dist < 0 {
				dist = -dist
			}
			if dist < bestDist {
				bestDist = dist
				bestIdx = idx
				bestConj = conj
			}
			pos = idx + len(conj)
		}
	}

	if bestIdx <= 0 {
		return "", false
	}

	first := strings.TrimRight(strings.TrimSpace(sentence[:bestIdx]), ",;")
	second := strings.TrimSpace(sentence[bestIdx+len(bestConj):])
	if first == "" || second == "" {
		return "", false
	}

	return first + ". " + capitalizeFirst(second), true
}
