// Enhancement and structural reorganization strategies.
package suggest

import (
	"fmt"
	"strings"

	"github.com/redpen/redpen/analysis"
	"github.com/redpen/redpen/intent"
	"github.com/redpen/redpen/model"
)

// enhance adds flow transitions between paragraphs and, when the command
// names a topic, a short elaboration paragraph about it.
func (g *Generator) enhance(cmd *intent.Command, text string, meta model.DocumentMetadata) Result {
	paragraphs := analysis.Paragraphs(text)
	if len(paragraphs) == 0 {
		return Result{Candidate: text, Explanation: "The document is empty; there is nothing to enhance."}
	}

	changed := false
	var notes []string

	// Connect paragraphs that jump in without a transition.
	transitionsAdded := 0
	for i := 1; i < len(paragraphs); i++ {
		if hasTransitionOpener(paragraphs[i]) || strings.HasPrefix(paragraphs[i], "#") {
			continue
		}
		opener := paragraphTransitions[transitionsAdded%len(paragraphTransitions)]
		paragraphs[i] = opener + " " + lowerFirst(paragraphs[i])
		transitionsAdded++
	}
	if transitionsAdded > 0 {
		changed = true
		notes = append(notes, fmt.Sprintf("added %d transition(s) between paragraphs", transitionsAdded))
	}

	if topic := cmd.Param("topic"); topic != "" {
		elaboration := fmt.Sprintf("On the subject of %s, there is more to say. Consider what readers most need to understand about it and spell that out here.", topic)
		paragraphs = append(paragraphs, elaboration)
		changed = true
		notes = append(notes, fmt.Sprintf("added an elaboration draft about %q", topic))
	}

	if !changed {
		return Result{
			Candidate:   text,
			Explanation: "The paragraphs already flow well; no transitions were needed. Name a topic to expand on if you want new content.",
		}
	}

	return Result{
		Candidate:   strings.Join(paragraphs, "\n\n"),
		Explanation: "Enhanced the document: " + strings.Join(notes, "; ") + ".",
		Changed:     true,
	}
}

// hasTransitionOpener reports whether a paragraph already begins with a
// connective word.
func hasTransitionOpener(p string) bool {
	openers := []string{
		"furthermore", "moreover", "however", "additionally", "in addition",
		"therefore", "consequently", "meanwhile", "similarly", "beyond that",
		"building on", "also", "finally", "first", "second", "next",
	}
	lower := strings.ToLower(p)
	for _, o := range openers {
		if strings.HasPrefix(lower, o) {
			return true
		}
	}
	return false
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// structureParagraphThreshold is the paragraph count above which the
// reorganized document gets a key-points list after the introduction.
const structureParagraphThreshold = 4

// structure reorganizes the document under headings: a title, an
// introduction, the main content, and a conclusion.
func (g *Generator) structure(cmd *intent.Command, text string, meta model.DocumentMetadata) Result {
	paragraphs := analysis.Paragraphs(text)
	if len(paragraphs) == 0 {
		return Result{Candidate: text, Explanation: "The document is empty; there is nothing to restructure."}
	}
	if meta.Structure.HasHeadings {
		return Result{
			Candidate:   text,
			Explanation: "The document already has headings; restructuring it again could discard your existing organization. Tell me which section to reorganize if you want changes.",
		}
	}

	title := "Document"
	if len(meta.Topics) > 0 {
		title = titleCase(meta.Topics[0])
	}

	var b strings.Builder
	b.WriteString("# " + title + "\n\n")
	b.WriteString("## Introduction\n\n")
	b.WriteString(paragraphs[0])

	if len(paragraphs) > structureParagraphThreshold && len(meta.Keywords) > 0 {
		b.WriteString("\n\nKey points:\n")
		limit := min(len(meta.Keywords), 3)
		for _, kw := range meta.Keywords[:limit] {
			b.WriteString("- " + kw + "\n")
		}
	}

	if len(paragraphs) > 2 {
		b.WriteString("\n## Main Content\n\n")
		b.WriteString(strings.Join(paragraphs[1:len(paragraphs)-1], "\n\n"))
		b.WriteString("\n\n## Conclusion\n\n")
		b.WriteString(paragraphs[len(paragraphs)-1])
	} else if len(paragraphs) == 2 {
		b.WriteString("\n\n## Main Content\n\n")
		b.WriteString(paragraphs[1])
	}

	return Result{
		Candidate:   b.String(),
		Explanation: fmt.Sprintf("Reorganized %d paragraph(s) under headings with a title, introduction, and conclusion.", len(paragraphs)),
		Changed:     true,
	}
}
