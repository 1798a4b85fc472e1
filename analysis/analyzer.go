// Package analysis derives a structural and statistical snapshot from raw
// document text: readability indices, tone, sentiment, topics, keywords,
// and structure flags.
//
// Information Hiding:
// - Lexicons and scoring tables are package-private
// - Segmentation heuristics (sentences, paragraphs, words) hidden
// - Analyze is a pure function: no I/O, no shared state, safe for concurrent use
package analysis

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/redpen/redpen/model"
)

var sentenceEnd = regexp.MustCompile(`[.!?]+(?:\s+|$)`)

// Analyze computes the full metadata snapshot for text.
// It is deterministic and re-entrant; empty input yields a zero-valued
// snapshot with Tone defaulting to professional.
func Analyze(text string) model.DocumentMetadata {
	words := Words(text)
	sentences := Sentences(text)
	paragraphs := Paragraphs(text)

	return model.DocumentMetadata{
		WordCount:      len(words),
		ParagraphCount: len(paragraphs),
		SentenceCount:  len(sentences),
		Readability:    scoreReadability(words, sentences, text),
		Tone:           DetectTone(text),
		Sentiment:      scoreSentiment(words),
		Topics:         extractTopics(text, words),
		Keywords:       extractKeywords(words),
		Structure:      detectStructure(text),
	}
}

// Words splits text into word tokens, stripping surrounding punctuation.
func Words(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return unicode.IsSpace(r)
	})
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		w := strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '\''
		})
		if w != "" {
			words = append(words, w)
		}
	}
	return words
}

// Sentences splits text into sentences on terminal punctuation.
// A trailing fragment without terminal punctuation counts as a sentence.
func Sentences(text string) []string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	parts := sentenceEnd.Split(trimmed, -1)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// Paragraphs splits text into paragraphs on blank lines.
func Paragraphs(text string) []string {
	blocks := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n")
	paragraphs := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if p := strings.TrimSpace(b); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}

// detectStructure scans line prefixes for headings, lists, and quotes.
func detectStructure(text string) model.StructureFlags {
	var flags model.StructureFlags
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "#"):
			flags.HasHeadings = true
		case strings.HasPrefix(trimmed, "- "),
			strings.HasPrefix(trimmed, "* "),
			listNumberPrefix.MatchString(trimmed):
			flags.HasList = true
		case strings.HasPrefix(trimmed, "> "):
			flags.HasQuotes = true
		}
	}
	if !flags.HasQuotes && strings.Count(text, `"`) >= 2 {
		flags.HasQuotes = true
	}
	return flags
}

var listNumberPrefix = regexp.MustCompile(`^\d+[.)]\s`)
