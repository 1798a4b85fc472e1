// Topic and keyword extraction: headings plus frequency-ranked phrases.
package analysis

import (
	"sort"
	"strings"
)

// stopwords excluded from topics and keywords.
var stopwords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "if": {},
	"of": {}, "to": {}, "in": {}, "on": {}, "at": {}, "for": {}, "with": {},
	"by": {}, "from": {}, "as": {}, "is": {}, "are": {}, "was": {}, "were": {},
	"be": {}, "been": {}, "being": {}, "it": {}, "its": {}, "this": {},
	"that": {}, "these": {}, "those": {}, "we": {}, "you": {}, "they": {},
	"he": {}, "she": {}, "i": {}, "my": {}, "our": {}, "your": {}, "their": {},
	"will": {}, "would": {}, "can": {}, "could": {}, "should": {}, "have": {},
	"has": {}, "had": {}, "do": {}, "does": {}, "did": {}, "not": {}, "no": {},
	"so": {}, "than": {}, "then": {}, "there": {}, "here": {}, "when": {},
	"what": {}, "which": {}, "who": {}, "how": {}, "all": {}, "also": {},
	"more": {}, "most": {}, "some": {}, "such": {}, "into": {}, "about": {},
}

const (
	maxTopics   = 5
	maxKeywords = 10
)

// extractTopics derives topics from heading lines and the most frequent
// stopword-filtered two-word phrases. Results are ordered (headings first,
// then by frequency) and deduplicated.
func extractTopics(text string, words []string) []string {
	var topics []string
	seen := map[string]struct{}{}

	add := func(topic string) {
		key := strings.ToLower(topic)
		if _, dup := seen[key]; dup || topic == "" {
			return
		}
		seen[key] = struct{}{}
		topics = append(topics, topic)
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			add(strings.TrimSpace(strings.TrimLeft(trimmed, "# ")))
		}
	}

	// Frequency-ranked bigrams with both words content-bearing.
	counts := map[string]int{}
	order := map[string]int{}
	for i := 0; i+1 < len(words); i++ {
		w1 := strings.ToLower(words[i])
		w2 := strings.ToLower(words[i+1])
		if isStopword(w1) || isStopword(w2) || len(w1) < 3 || len(w2) < 3 {
			continue
		}
		phrase := w1 + " " + w2
		if _, ok := counts[phrase]; !ok {
			order[phrase] = i
		}
		counts[phrase]++
	}

	phrases := make([]string, 0, len(counts))
	for p, n := range counts {
		if n >= 2 {
			phrases = append(phrases, p)
		}
	}
	sort.Slice(phrases, func(i, j int) bool {
		if counts[phrases[i]] != counts[phrases[j]] {
			return counts[phrases[i]] > counts[phrases[j]]
		}
		return order[phrases[i]] < order[phrases[j]]
	})

	for _, p := range phrases {
		if len(topics) >= maxTopics {
			break
		}
		add(p)
	}
	return topics
}

// extractKeywords ranks single content words by frequency.
func extractKeywords(words []string) []string {
	counts := map[string]int{}
	order := map[string]int{}
	for i, raw := range words {
		w := strings.ToLower(raw)
		if isStopword(w) || len(w) < 4 {
			continue
		}
		if _, ok := counts[w]; !ok {
			order[w] = i
		}
		counts[w]++
	}

	keywords := make([]string, 0, len(counts))
	for w := range counts {
		keywords = append(keywords, w)
	}
	sort.Slice(keywords, func(i, j int) bool {
		if counts[keywords[i]] != counts[keywords[j]] {
			return counts[keywords[i]] > counts[keywords[j]]
		}
		return order[keywords[i]] < order[keywords[j]]
	})

	if len(keywords) > maxKeywords {
		keywords = keywords[:maxKeywords]
	}
	return keywords
}

func isStopword(w string) bool {
	_, ok := stopwords[w]
	return ok
}
