// Add, remove, and replace strategies.
package suggest

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/redpen/redpen/analysis"
	"github.com/redpen/redpen/intent"
	"github.com/redpen/redpen/model"
)

// add appends content to the document. Quoted text in the instruction is
// inserted verbatim as a new paragraph; otherwise a unit is synthesized
// from the topic, phrased for the document's tone.
func (g *Generator) add(cmd *intent.Command, text string, meta model.DocumentMetadata, prefs model.Preferences) Result {
	if quoted := cmd.Param("text"); quoted != "" {
		candidate := appendParagraph(text, quoted)
		return Result{
			Candidate:   candidate,
			Explanation: fmt.Sprintf("Added %q as a new paragraph at the end of the document.", quoted),
			Changed:     true,
		}
	}

	topic := cmd.Param("topic")
	unit := cmd.Param("unit")
	if unit == "" {
		unit = "paragraph"
	}

	tone := string(meta.Tone)
	if prefs.PreferredTone != "" {
		tone = string(prefs.PreferredTone)
	}

	synthesized := synthesizeUnit(unit, topic, tone)
	if synthesized == "" {
		return Result{
			Candidate:   text,
			Explanation: "I couldn't tell what to add. Quote the exact text, or name a topic, e.g. add a paragraph about onboarding.",
			Clarify:     true,
		}
	}

	return Result{
		Candidate:   appendParagraph(text, synthesized),
		Explanation: fmt.Sprintf("Added a new %s about %q, phrased to match the document's %s tone. Edit the draft wording as needed.", unit, topic, tone),
		Changed:     true,
	}
}

// appendParagraph joins text and addition with exactly one blank line.
func appendParagraph(text, addition string) string {
	if strings.TrimSpace(text) == "" {
		return addition
	}
	return strings.TrimRight(text, "\n") + "\n\n" + addition
}

// synthesizeUnit drafts placeholder content for the requested unit.
func synthesizeUnit(unit, topic, tone string) string {
	if topic == "" {
		return ""
	}
	opener, ok := toneOpeners[tone]
	if !ok {
		opener = toneOpeners["professional"]
	}

	switch unit {
	case "heading":
		return "## " + titleCase(topic)
	case "list":
		return fmt.Sprintf("Key points about %s:\n- \n- \n- ", topic)
	case "quote":
		return fmt.Sprintf("> A relevant quote about %s.", topic)
	case "sentence", "line":
		return fmt.Sprintf("%s %s deserves attention here.", opener, topic)
	default: // paragraph, section
		return fmt.Sprintf("%s %s plays an important role in this context. Expanding on it here will give readers the background they need.", opener, topic)
	}
}

// remove deletes paragraphs or sentences by position or by content match.
// When nothing matches, the text is returned unchanged with an explanation.
func (g *Generator) remove(cmd *intent.Command, text string) Result {
	position := cmd.Param("position")
	unit := cmd.Param("unit")
	match := cmd.Param("match")

	if unit == "sentence" && position != "" {
		return removeSentence(text, position)
	}

	paragraphs := analysis.Paragraphs(text)
	if len(paragraphs) == 0 {
		return Result{Candidate: text, Explanation: "The document is empty; there is nothing to remove."}
	}

	switch {
	case position == "first":
		return removeParagraphAt(text, paragraphs, 0)
	case position == "last":
		return removeParagraphAt(text, paragraphs, len(paragraphs)-1)
	case match != "":
		return removeMatching(text, paragraphs, match)
	}

	return Result{
		Candidate:   text,
		Explanation: "I couldn't tell which part to remove. Name a position (first or last paragraph) or the content to remove, e.g. remove the paragraph about pricing.",
		Clarify:     true,
	}
}

func removeParagraphAt(text string, paragraphs []string, idx int) Result {
	kept := make([]string, 0, len(paragraphs)-1)
	for i, p := range paragraphs {
		if i != idx {
			kept = append(kept, p)
		}
	}
	label := "first"
	if idx == len(paragraphs)-1 {
		label = "last"
	}
	return Result{
		Candidate:   strings.Join(kept, "\n\n"),
		Explanation: fmt.Sprintf("Removed the %s paragraph (%s).", label, truncate(paragraphs[idx], 60)),
		Changed:     true,
	}
}

func removeMatching(text string, paragraphs []string, match string) Result {
	needle := strings.ToLower(match)
	kept := make([]string, 0, len(paragraphs))
	removed := 0
	for _, p := range paragraphs {
		if strings.Contains(strings.ToLower(p), needle) {
			removed++
			continue
		}
		kept = append(kept, p)
	}

	if removed == 0 {
		return Result{
			Candidate:   text,
			Explanation: fmt.Sprintf("No paragraph mentions %q, so nothing was removed.", match),
		}
	}

	return Result{
		Candidate:   strings.Join(kept, "\n\n"),
		Explanation: fmt.Sprintf("Removed %d paragraph(s) mentioning %q.", removed, match),
		Changed:     true,
	}
}

func removeSentence(text, position string) Result {
	sentences := analysis.Sentences(text)
	if len(sentences) == 0 {
		return Result{Candidate: text, Explanation: "The document has no sentences to remove."}
	}

	target := sentences[0]
	if position == "last" {
		target = sentences[len(sentences)-1]
	}

	idx := strings.Index(text, target)
	if idx < 0 {
		return Result{Candidate: text, Explanation: "Couldn't locate the sentence to remove."}
	}

	// Take the trailing punctuation and whitespace along with the sentence.
	end := idx + len(target)
	for end < len(text) && strings.ContainsRune(".!? \t", rune(text[end])) {
		end++
	}
	candidate := strings.TrimSpace(text[:idx] + text[end:])

	return Result{
		Candidate:   candidate,
		Explanation: fmt.Sprintf("Removed the %s sentence (%s).", position, truncate(target, 60)),
		Changed:     true,
	}
}

// replace substitutes all case-insensitive occurrences of the search
// phrase, reporting the occurrence count.
func (g *Generator) replace(cmd *intent.Command, text string) Result {
	search := cmd.Param("search")
	replacement := cmd.Param("replacement")
	if search == "" {
		return Result{
			Candidate:   text,
			Explanation: "I couldn't tell what to replace. Use the form: replace X with Y.",
			Clarify:     true,
		}
	}

	candidate, count := replaceAllFold(text, search, replacement)
	if count == 0 {
		return Result{
			Candidate:   text,
			Explanation: fmt.Sprintf("%q does not appear in the document, so nothing was replaced.", search),
		}
	}

	return Result{
		Candidate:   candidate,
		Explanation: fmt.Sprintf("Replaced %d occurrence(s) of %q with %q.", count, search, replacement),
		Changed:     true,
	}
}

// replaceAllFold replaces every case-insensitive occurrence of search,
// returning the new text and the occurrence count. Matching scans rune
// by rune rather than lowering a copy of the text, since case mapping
// can change byte lengths and would misalign offsets.
func replaceAllFold(text, search, replacement string) (string, int) {
	if search == "" {
		return text, 0
	}

	var b strings.Builder
	b.Grow(len(text))
	count := 0
	for i := 0; i < len(text); {
		if n, ok := foldPrefixLen(text[i:], search); ok {
			b.WriteString(replacement)
			i += n
			count++
			continue
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		b.WriteString(text[i : i+size])
		i += size
	}
	return b.String(), count
}

// foldPrefixLen reports whether s starts with a case-insensitive match
// of search, and the byte length of the matched prefix in s.
func foldPrefixLen(s, search string) (int, bool) {
	n := 0
	for _, want := range search {
		r, size := utf8.DecodeRuneInString(s[n:])
		if size == 0 {
			return 0, false
		}
		if r != want && unicode.ToLower(r) != unicode.ToLower(want) {
			return 0, false
		}
		n += size
	}
	return n, true
}

// titleCase uppercases the first letter of each word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
