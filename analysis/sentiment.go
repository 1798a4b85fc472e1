// Lexicon-based sentiment scoring with negation dampening and a
// six-dimension emotion vector.
package analysis

import (
	"strings"

	"github.com/redpen/redpen/model"
)

var positiveTerms = map[string]struct{}{
	"good": {}, "great": {}, "excellent": {}, "love": {}, "happy": {},
	"wonderful": {}, "best": {}, "amazing": {}, "success": {}, "successful": {},
	"improve": {}, "improved": {}, "benefit": {}, "effective": {}, "strong": {},
	"reliable": {}, "clear": {}, "easy": {}, "helpful": {}, "valuable": {},
	"positive": {}, "win": {}, "growth": {}, "efficient": {}, "delight": {},
}

var negativeTerms = map[string]struct{}{
	"bad": {}, "poor": {}, "terrible": {}, "hate": {}, "sad": {},
	"awful": {}, "worst": {}, "fail": {}, "failure": {}, "failed": {},
	"problem": {}, "difficult": {}, "weak": {}, "broken": {}, "confusing": {},
	"slow": {}, "wrong": {}, "risk": {}, "loss": {}, "negative": {},
	"unfortunately": {}, "concern": {}, "issue": {}, "error": {}, "damage": {},
}

var negationTerms = map[string]struct{}{
	"not": {}, "never": {}, "no": {}, "nothing": {}, "nobody": {},
	"neither": {}, "cannot": {}, "can't": {}, "won't": {}, "don't": {},
	"doesn't": {}, "didn't": {}, "isn't": {}, "wasn't": {},
}

// emotionLexicon drives the six-dimension emotion vector.
var emotionLexicon = map[string]map[string]struct{}{
	"joy":      {"happy": {}, "joy": {}, "delight": {}, "love": {}, "excited": {}, "celebrate": {}, "wonderful": {}, "great": {}},
	"sadness":  {"sad": {}, "loss": {}, "grief": {}, "unhappy": {}, "disappointed": {}, "sorry": {}, "regret": {}, "miss": {}},
	"anger":    {"angry": {}, "furious": {}, "hate": {}, "annoyed": {}, "outrage": {}, "frustrated": {}, "resent": {}},
	"fear":     {"afraid": {}, "fear": {}, "worried": {}, "anxious": {}, "scared": {}, "risk": {}, "threat": {}, "danger": {}},
	"surprise": {"surprised": {}, "unexpected": {}, "sudden": {}, "astonish": {}, "shocking": {}, "remarkable": {}},
	"trust":    {"trust": {}, "reliable": {}, "dependable": {}, "honest": {}, "secure": {}, "proven": {}, "confidence": {}},
}

// scoreSentiment computes polarity and emotions over pre-tokenized words.
// A negation term dampens the polarity contribution of the word that
// follows it (e.g. "not good" stops counting as positive).
func scoreSentiment(words []string) model.Sentiment {
	if len(words) == 0 {
		return model.Sentiment{Label: model.SentimentNeutral}
	}

	var pos, neg float64
	emotions := map[string]float64{}

	negated := false
	for _, raw := range words {
		w := strings.ToLower(raw)

		if _, ok := negationTerms[w]; ok {
			negated = true
			continue
		}

		_, isPos := positiveTerms[w]
		_, isNeg := negativeTerms[w]
		switch {
		case isPos && negated:
			neg += 0.5 // "not good" leans negative, dampened
		case isNeg && negated:
			pos += 0.5
		case isPos:
			pos++
		case isNeg:
			neg++
		}

		for emotion, terms := range emotionLexicon {
			if _, ok := terms[w]; ok {
				emotions[emotion]++
			}
		}
		negated = false
	}

	total := float64(len(words))
	posNorm := pos / total
	negNorm := neg / total
	score := posNorm - negNorm

	label := model.SentimentNeutral
	diff := posNorm - negNorm
	if diff < 0 {
		diff = -diff
	}
	switch {
	case pos == 0 && neg == 0:
		label = model.SentimentNeutral
	case diff < 0.01:
		// Both polarities comparably present.
		if pos > 0 && neg > 0 {
			label = model.SentimentMixed
		}
	case pos > 0 && neg > 0 && min(pos, neg)/max(pos, neg) > 0.6:
		label = model.SentimentMixed
	case score > 0:
		label = model.SentimentPositive
	default:
		label = model.SentimentNegative
	}

	// Normalize emotion dimensions to [0,1] against the strongest one.
	var peak float64
	for _, v := range emotions {
		if v > peak {
			peak = v
		}
	}
	var vec model.EmotionScores
	if peak > 0 {
		vec = model.EmotionScores{
			Joy:      emotions["joy"] / peak,
			Sadness:  emotions["sadness"] / peak,
			Anger:    emotions["anger"] / peak,
			Fear:     emotions["fear"] / peak,
			Surprise: emotions["surprise"] / peak,
			Trust:    emotions["trust"] / peak,
		}
	}

	return model.Sentiment{Label: label, Score: score, Emotions: vec}
}
