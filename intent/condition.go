// Condition predicate evaluation for conditional commands.
package intent

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/redpen/redpen/model"
)

var wordThreshold = regexp.MustCompile(`(?i)(?:longer|more|over|above)\s+than\s+(\d+)\s+words?|(\d+)\s+words?\s+or\s+(?:more|longer)`)
var shortThreshold = regexp.MustCompile(`(?i)(?:shorter|less|fewer|under|below)\s+than\s+(\d+)\s+words?`)

// longDocumentWords is the word count above which a document counts as
// "long" when the predicate names no explicit threshold.
const longDocumentWords = 300

// EvaluateCondition resolves a predicate against the current text and
// metadata using fixed heuristics: explicit length thresholds, vague
// length terms, structural flags, and substring containment as the
// catch-all.
func EvaluateCondition(predicate, text string, meta model.DocumentMetadata) bool {
	pred := strings.ToLower(strings.TrimSpace(predicate))
	if pred == "" {
		return false
	}

	if m := wordThreshold.FindStringSubmatch(pred); m != nil {
		n := m[1]
		if n == "" {
			n = m[2]
		}
		if threshold, err := strconv.Atoi(n); err == nil {
			return meta.WordCount > threshold
		}
	}
	if m := shortThreshold.FindStringSubmatch(pred); m != nil {
		if threshold, err := strconv.Atoi(m[1]); err == nil {
			return meta.WordCount < threshold
		}
	}

	if strings.Contains(pred, "long") {
		return meta.WordCount > longDocumentWords
	}
	if strings.Contains(pred, "short") {
		return meta.WordCount <= longDocumentWords
	}

	switch {
	case strings.Contains(pred, "heading"):
		return meta.Structure.HasHeadings
	case strings.Contains(pred, "list"):
		return meta.Structure.HasList
	case strings.Contains(pred, "quote"):
		return meta.Structure.HasQuotes
	}

	// "mentions X" / "contains X" / "talks about X": substring containment.
	for _, marker := range []string{"mentions ", "contains ", "talks about ", "includes "} {
		if idx := strings.Index(pred, marker); idx >= 0 {
			needle := strings.Trim(pred[idx+len(marker):], ` "'.`)
			return needle != "" && strings.Contains(strings.ToLower(text), needle)
		}
	}

	// Catch-all: treat the whole predicate as a containment check.
	needle := strings.Trim(pred, ` "'.`)
	needle = strings.TrimPrefix(needle, "the text ")
	needle = strings.TrimPrefix(needle, "the document ")
	return needle != "" && strings.Contains(strings.ToLower(text), needle)
}
