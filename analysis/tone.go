// Tone classification via weighted keyword buckets plus structural signals.
package analysis

import (
	"regexp"
	"strings"

	"github.com/redpen/redpen/model"
)

// toneLexicon maps each tone category to indicator terms with weights.
// Multi-word entries match as substrings of the lowercased text.
var toneLexicon = map[model.ToneCategory]map[string]float64{
	model.ToneFormal: {
		"therefore": 2, "furthermore": 2, "consequently": 2, "moreover": 2,
		"nevertheless": 2, "henceforth": 2, "pursuant": 3, "accordingly": 2,
		"notwithstanding": 3, "herein": 3, "thereby": 2, "whom": 1,
		"shall": 2, "hereby": 3,
	},
	model.ToneCasual: {
		"gonna": 3, "wanna": 3, "kinda": 3, "sorta": 3, "yeah": 3,
		"cool": 2, "awesome": 2, "stuff": 2, "guys": 2, "okay": 1,
		"pretty much": 2, "a lot": 1, "super": 2, "btw": 3, "hey": 2,
	},
	model.ToneProfessional: {
		"deliverable": 2, "stakeholder": 2, "objective": 1, "implement": 1,
		"strategy": 1, "leverage": 2, "optimize": 1, "streamline": 2,
		"milestone": 2, "alignment": 2, "roadmap": 2, "initiative": 1,
		"per our discussion": 3, "action item": 3,
	},
	model.ToneAcademic: {
		"hypothesis": 3, "methodology": 3, "empirical": 3, "literature": 2,
		"framework": 1, "theoretical": 2, "paradigm": 2, "analysis": 1,
		"findings": 2, "correlation": 2, "et al": 3, "study": 1,
		"research": 1, "data suggest": 3,
	},
	model.ToneCreative: {
		"imagine": 2, "whisper": 3, "shimmer": 3, "dream": 2, "dance": 2,
		"vivid": 2, "wild": 1, "magic": 2, "wonder": 2, "burst": 2,
		"glow": 2, "paint": 1, "story": 1, "once upon": 3,
	},
}

var (
	contractionPattern = regexp.MustCompile(`\b\w+'(?:t|s|re|ve|ll|d|m)\b`)
	citationPattern    = regexp.MustCompile(`\(\d{4}\)|\[\d+\]|\bet al\.`)
	formalTransitions  = []string{"furthermore", "moreover", "consequently", "in conclusion", "with respect to", "in addition"}
)

// DetectTone classifies text into one of the five tone categories.
// Weighted keyword-bucket scores are combined with structural signals;
// the highest score wins and ties (including all-zero) default to
// professional.
func DetectTone(text string) model.ToneCategory {
	lower := strings.ToLower(text)
	words := Words(text)
	wordCount := len(words)
	if wordCount == 0 {
		return model.ToneProfessional
	}

	scores := make(map[model.ToneCategory]float64, 5)
	for tone, bucket := range toneLexicon {
		for term, weight := range bucket {
			scores[tone] += weight * float64(strings.Count(lower, term))
		}
	}

	// Structural signals.
	contractions := len(contractionPattern.FindAllString(lower, -1))
	contractionDensity := float64(contractions) / float64(wordCount)
	if contractionDensity > 0.03 {
		scores[model.ToneCasual] += 3
	} else if contractions == 0 && wordCount > 40 {
		scores[model.ToneFormal] += 1
	}

	if citationPattern.MatchString(text) {
		scores[model.ToneAcademic] += 4
	}

	for _, phrase := range formalTransitions {
		if strings.Contains(lower, phrase) {
			scores[model.ToneFormal] += 1
		}
	}

	punch := strings.Count(text, "!") + strings.Count(text, "?")
	punchDensity := float64(punch) / float64(wordCount)
	if punchDensity > 0.02 {
		scores[model.ToneCasual] += 2
		scores[model.ToneCreative] += 1
	}

	// Highest score wins; iterate the stable category order so ties
	// resolve deterministically, then apply the professional default.
	best := model.ToneProfessional
	bestScore := 0.0
	for _, tone := range model.ToneCategories() {
		if scores[tone] > bestScore {
			best = tone
			bestScore = scores[tone]
		}
	}
	if bestScore == 0 {
		return model.ToneProfessional
	}
	return best
}
