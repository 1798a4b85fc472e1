// Read-only reporting strategies: analyze and summarize.
package suggest

import (
	"fmt"
	"strings"

	"github.com/redpen/redpen/analysis"
	"github.com/redpen/redpen/model"
)

// analyze reports document metadata without touching the text.
func (g *Generator) analyze(text string, meta model.DocumentMetadata) Result {
	if strings.TrimSpace(text) == "" {
		return Result{Candidate: text, Explanation: "The document is empty; there is nothing to analyze."}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Here's what I see in the document:\n")
	fmt.Fprintf(&b, "- %d words, %d sentences, %d paragraphs\n", meta.WordCount, meta.SentenceCount, meta.ParagraphCount)
	fmt.Fprintf(&b, "- Tone: %s; sentiment: %s (%.2f)\n", meta.Tone, meta.Sentiment.Label, meta.Sentiment.Score)
	fmt.Fprintf(&b, "- Reading ease: %.1f (grade level %.1f)", meta.Readability.Flesch, meta.Readability.FleschKincaid)
	if len(meta.Topics) > 0 {
		fmt.Fprintf(&b, "\n- Main topics: %s", strings.Join(meta.Topics, ", "))
	}
	if len(meta.Keywords) > 0 {
		fmt.Fprintf(&b, "\n- Keywords: %s", strings.Join(meta.Keywords, ", "))
	}

	return Result{Candidate: text, Explanation: b.String()}
}

// summarize appends a summary section built from the lead sentence of
// each paragraph.
func (g *Generator) summarize(text string, meta model.DocumentMetadata) Result {
	paragraphs := analysis.Paragraphs(text)
	if len(paragraphs) == 0 {
		return Result{Candidate: text, Explanation: "The document is empty; there is nothing to summarize."}
	}

	var leads []string
	for _, p := range paragraphs {
		if strings.HasPrefix(p, "#") {
			continue
		}
		sentences := analysis.Sentences(p)
		if len(sentences) == 0 {
			continue
		}
		leads = append(leads, strings.TrimSpace(sentences[0]))
	}
	if len(leads) == 0 {
		return Result{Candidate: text, Explanation: "I couldn't find sentences to build a summary from."}
	}

	// Cap the summary at three lead sentences.
	limit := min(len(leads), 3)
	summary := "## Summary\n\n" + strings.Join(leads[:limit], ". ") + "."

	return Result{
		Candidate:   appendParagraph(text, summary),
		Explanation: fmt.Sprintf("Appended a summary section built from the lead sentences of %d paragraph(s).", limit),
		Changed:     true,
	}
}
