// Readability indices computed from word, sentence, and syllable counts.
//
// The syllable counter is a heuristic vowel-group count with adjustments for
// trailing silent "e", "-le" endings, and terminal "y". It is intentionally
// approximate; the indices built on it are comparative, not clinical.
package analysis

import (
	"math"
	"strings"

	"github.com/redpen/redpen/model"
)

// CountSyllables estimates the syllable count of a single word.
// Always returns at least 1 for a non-empty word.
func CountSyllables(word string) int {
	w := strings.ToLower(strings.TrimSpace(word))
	if w == "" {
		return 0
	}

	isVowel := func(c byte) bool {
		switch c {
		case 'a', 'e', 'i', 'o', 'u', 'y':
			return true
		}
		return false
	}

	count := 0
	prevVowel := false
	for i := 0; i < len(w); i++ {
		v := isVowel(w[i])
		if v && !prevVowel {
			count++
		}
		prevVowel = v
	}

	// Trailing silent "e": "make" has one syllable, but "-le" after a
	// consonant adds one ("table", "little").
	if strings.HasSuffix(w, "e") && !strings.HasSuffix(w, "le") && count > 1 {
		count--
	}
	if strings.HasSuffix(w, "le") && len(w) > 2 && !isVowel(w[len(w)-3]) {
		count++
	}

	if count < 1 {
		count = 1
	}
	return count
}

// scoreReadability computes all indices from pre-segmented text.
func scoreReadability(words, sentences []string, text string) model.Readability {
	if len(words) == 0 || len(sentences) == 0 {
		return model.Readability{}
	}

	totalSyllables := 0
	complexWords := 0 // 3+ syllables, for Gunning Fog and SMOG
	letters := 0
	for _, w := range words {
		s := CountSyllables(w)
		totalSyllables += s
		if s >= 3 {
			complexWords++
		}
		for i := 0; i < len(w); i++ {
			c := w[i]
			if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
				letters++
			}
		}
	}

	wordCount := float64(len(words))
	sentenceCount := float64(len(sentences))
	wordsPerSentence := wordCount / sentenceCount
	syllablesPerWord := float64(totalSyllables) / wordCount

	flesch := 206.835 - 1.015*wordsPerSentence - 84.6*syllablesPerWord
	flesch = clamp(flesch, 0, 100)

	return model.Readability{
		Flesch:               round1(flesch),
		FleschKincaid:        round1(0.39*wordsPerSentence + 11.8*syllablesPerWord - 15.59),
		GunningFog:           round1(0.4 * (wordsPerSentence + 100*float64(complexWords)/wordCount)),
		SMOG:                 round1(1.043*math.Sqrt(float64(complexWords)*30/sentenceCount) + 3.1291),
		AutomatedReadability: round1(4.71*(float64(letters)/wordCount) + 0.5*wordsPerSentence - 21.43),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
