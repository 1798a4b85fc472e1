// Substitution tables shared by the rewrite strategies.
package suggest

// wordPair relates a casual form to its formal counterpart. The same
// table drives both directions, so formalizing and then casualizing a
// text that only contains table entries returns the original text.
type wordPair struct {
	Casual string
	Formal string
}

// contractionPairs maps contractions to their expansions. Order matters:
// longer casual forms come first so "can't" is not shadowed by a shorter
// overlapping entry when scanning.
var contractionPairs = []wordPair{
	{"won't", "will not"},
	{"can't", "cannot"},
	{"shouldn't", "should not"},
	{"couldn't", "could not"},
	{"wouldn't", "would not"},
	{"don't", "do not"},
	{"doesn't", "does not"},
	{"didn't", "did not"},
	{"isn't", "is not"},
	{"aren't", "are not"},
	{"wasn't", "was not"},
	{"weren't", "were not"},
	{"haven't", "have not"},
	{"hasn't", "has not"},
	{"hadn't", "had not"},
	{"it's", "it is"},
	{"that's", "that is"},
	{"there's", "there is"},
	{"we're", "we are"},
	{"they're", "they are"},
	{"you're", "you are"},
	{"I'm", "I am"},
	{"we'll", "we will"},
	{"you'll", "you will"},
	{"they'll", "they will"},
	{"we've", "we have"},
	{"you've", "you have"},
	{"they've", "they have"},
	{"let's", "let us"},
}

// starterPairs maps casual sentence openers to formal ones. Applied only
// at sentence starts so mid-sentence conjunctions are left alone.
var starterPairs = []wordPair{
	{"So", "Therefore"},
	{"But", "However"},
	{"Also", "Additionally"},
	{"Plus", "Moreover"},
	{"Basically", "Essentially"},
	{"Anyway", "Nevertheless"},
}

// casualWordPairs maps informal vocabulary to formal equivalents,
// applied anywhere in the text.
var casualWordPairs = []wordPair{
	{"a lot of", "a great deal of"},
	{"lots of", "numerous"},
	{"kind of", "somewhat"},
	{"get rid of", "eliminate"},
	{"figure out", "determine"},
	{"find out", "ascertain"},
	{"huge", "substantial"},
	{"stuff", "material"},
	{"things", "matters"},
	{"okay", "acceptable"},
}

// complexSimple pairs a plain word with its complex counterpart.
// The simplify action applies it complex-to-plain.
var complexSimple = []wordPair{
	{"use", "utilize"},
	{"help", "facilitate"},
	{"speed up", "expedite"},
	{"show", "demonstrate"},
	{"start", "commence"},
	{"end", "terminate"},
	{"enough", "sufficient"},
	{"about", "approximately"},
	{"many", "numerous"},
	{"later", "subsequently"},
	{"because", "due to the fact that"},
	{"to", "in order to"},
	{"although", "notwithstanding the fact that"},
	{"buy", "purchase"},
	{"need", "necessitate"},
	{"try", "endeavor"},
}

// typoTable maps common misspellings to their corrections.
var typoTable = map[string]string{
	"teh":        "the",
	"recieve":    "receive",
	"seperate":   "separate",
	"definately": "definitely",
	"occured":    "occurred",
	"untill":     "until",
	"wich":       "which",
	"becuase":    "because",
	"alot":       "a lot",
	"accomodate": "accommodate",
	"acheive":    "achieve",
	"beleive":    "believe",
	"calender":   "calendar",
	"existance":  "existence",
	"goverment":  "government",
	"neccessary": "necessary",
	"publically": "publicly",
	"tommorow":   "tomorrow",
}

// paragraphTransitions are inserted between paragraphs by the enhance
// action, cycling through the list in order.
var paragraphTransitions = []string{
	"Furthermore,",
	"In addition,",
	"Moreover,",
	"Beyond that,",
	"Building on this,",
}

// toneOpeners seed a synthesized paragraph when an add command names a
// topic but no verbatim text, keyed by the document's detected tone.
var toneOpeners = map[string]string{
	"formal":       "It is worth noting that",
	"casual":       "Here's the thing about",
	"professional": "An important consideration is",
	"academic":     "The literature suggests that",
	"creative":     "Imagine, for a moment,",
}
