// Mechanical cleanup: whitespace, punctuation, capitalization, typos.
package suggest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/redpen/redpen/intent"
)

var (
	multiSpace      = regexp.MustCompile(`[ \t]{2,}`)
	spaceBeforePunc = regexp.MustCompile(`\s+([.,!?;:])`)
	puncNoSpace     = regexp.MustCompile(`([.,!?;:])([A-Za-z])`)
	repeatedPunc    = regexp.MustCompile(`([.!?]){2,}`)
	manyBlankLines  = regexp.MustCompile(`\n{3,}`)
	sentenceStart   = regexp.MustCompile(`(^|[.!?]\s+)([a-z])`)
	passiveVoice    = regexp.MustCompile(`(?i)\b(?:is|are|was|were|been|being|be)\s+\w+(?:ed|en)\b`)
)

// fix normalizes whitespace and punctuation, capitalizes sentence starts,
// and corrects known typos. Passive constructions are flagged in the
// explanation but left alone; rewording them changes meaning.
func (g *Generator) fix(cmd *intent.Command, text string) Result {
	candidate := text
	var notes []string

	normalized := manyBlankLines.ReplaceAllString(candidate, "\n\n")
	normalized = multiSpace.ReplaceAllString(normalized, " ")
	normalized = spaceBeforePunc.ReplaceAllString(normalized, "$1")
	normalized = puncNoSpace.ReplaceAllString(normalized, "$1 $2")
	normalized = repeatedPunc.ReplaceAllString(normalized, "$1")
	if normalized != candidate {
		candidate = normalized
		notes = append(notes, "normalized spacing and punctuation")
	}

	typosFixed := 0
	for typo, correction := range typoTable {
		for _, variant := range [][2]string{
			{typo, correction},
			{capitalizeFirst(typo), capitalizeFirst(correction)},
		} {
			re := regexp.MustCompile(`\b` + regexp.QuoteMeta(variant[0]) + `\b`)
			n := len(re.FindAllString(candidate, -1))
			if n == 0 {
				continue
			}
			candidate = re.ReplaceAllString(candidate, variant[1])
			typosFixed += n
		}
	}
	if typosFixed > 0 {
		notes = append(notes, fmt.Sprintf("corrected %d typo(s)", typosFixed))
	}

	capitalized := sentenceStart.ReplaceAllStringFunc(candidate, strings.ToUpper)
	if capitalized != candidate {
		candidate = capitalized
		notes = append(notes, "capitalized sentence starts")
	}

	if passive := passiveVoice.FindAllString(candidate, -1); len(passive) > 0 {
		notes = append(notes, fmt.Sprintf("flagged %d possible passive construction(s), left unchanged (e.g. %q)", len(passive), passive[0]))
	}

	if candidate == text {
		if len(notes) > 0 {
			return Result{Candidate: text, Explanation: "No mechanical fixes were needed, but I " + strings.Join(notes, "; ") + "."}
		}
		return Result{Candidate: text, Explanation: "The text is already clean: spacing, punctuation, and spelling look fine."}
	}

	return Result{
		Candidate:   candidate,
		Explanation: "Cleaned up the text: " + strings.Join(notes, "; ") + ".",
		Changed:     true,
	}
}
