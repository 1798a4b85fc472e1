// Package model provides domain types shared across packages.
package model

import "time"

// ToneCategory is the categorical register classification of a document.
type ToneCategory string

const (
	ToneFormal       ToneCategory = "formal"
	ToneCasual       ToneCategory = "casual"
	ToneProfessional ToneCategory = "professional"
	ToneAcademic     ToneCategory = "academic"
	ToneCreative     ToneCategory = "creative"
)

// ToneCategories lists all recognized tones in a stable order.
func ToneCategories() []ToneCategory {
	return []ToneCategory{ToneFormal, ToneCasual, ToneProfessional, ToneAcademic, ToneCreative}
}

// SentimentLabel is the overall polarity classification of a document.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNegative SentimentLabel = "negative"
	SentimentNeutral  SentimentLabel = "neutral"
	SentimentMixed    SentimentLabel = "mixed"
)

// EmotionScores is a six-dimension emotion vector, each component in [0,1].
type EmotionScores struct {
	Joy      float64 `json:"joy"`
	Sadness  float64 `json:"sadness"`
	Anger    float64 `json:"anger"`
	Fear     float64 `json:"fear"`
	Surprise float64 `json:"surprise"`
	Trust    float64 `json:"trust"`
}

// Sentiment combines the polarity label, a signed score, and the emotion vector.
type Sentiment struct {
	Label    SentimentLabel `json:"label"`
	Score    float64        `json:"score"`
	Emotions EmotionScores  `json:"emotions"`
}

// Readability holds the readability indices derived from word, sentence,
// and syllable counts. Flesch is always clamped to [0,100]; the grade-level
// derivatives are unclamped.
type Readability struct {
	Flesch               float64 `json:"flesch"`
	FleschKincaid        float64 `json:"flesch_kincaid"`
	GunningFog           float64 `json:"gunning_fog"`
	SMOG                 float64 `json:"smog"`
	AutomatedReadability float64 `json:"automated_readability"`
}

// StructureFlags records coarse structural features of a document.
type StructureFlags struct {
	HasHeadings bool `json:"has_headings"`
	HasList     bool `json:"has_list"`
	HasQuotes   bool `json:"has_quotes"`
}

// DocumentMetadata is a structural and statistical snapshot of a document.
// It is derived purely from text and has no identity independent of the
// document snapshot it was computed from.
type DocumentMetadata struct {
	WordCount      int            `json:"word_count"`
	ParagraphCount int            `json:"paragraph_count"`
	SentenceCount  int            `json:"sentence_count"`
	Readability    Readability    `json:"readability"`
	Tone           ToneCategory   `json:"tone"`
	Sentiment      Sentiment      `json:"sentiment"`
	Topics         []string       `json:"topics"`
	Keywords       []string       `json:"keywords"`
	Structure      StructureFlags `json:"structure"`
}

// Preferences holds per-session user preferences that shape suggestions.
type Preferences struct {
	PreferredTone ToneCategory `json:"preferred_tone,omitempty"`
	PreserveVoice bool         `json:"preserve_voice"`
}

// Role identifies the author of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// EditStatus tracks the lifecycle of a suggestion attached to a message.
type EditStatus string

const (
	EditPending  EditStatus = "pending"
	EditApproved EditStatus = "approved"
	EditRejected EditStatus = "rejected"
)

// MessageMeta carries optional per-message assistant metadata.
// EditStatus is the only field that mutates after a message is appended.
type MessageMeta struct {
	Action     string     `json:"action,omitempty"`
	Confidence float64    `json:"confidence,omitempty"`
	Sections   []string   `json:"sections,omitempty"`
	EditStatus EditStatus `json:"edit_status,omitempty"`
}

// Message is one turn in the conversation history. Append-only.
type Message struct {
	ID        string       `json:"id"`
	Role      Role         `json:"role"`
	Content   string       `json:"content"`
	Timestamp time.Time    `json:"timestamp"`
	Meta      *MessageMeta `json:"meta,omitempty"`
}

// Impact is a coarse estimate of how much a suggestion changes the document.
type Impact string

const (
	ImpactLow    Impact = "low"
	ImpactMedium Impact = "medium"
	ImpactHigh   Impact = "high"
)
