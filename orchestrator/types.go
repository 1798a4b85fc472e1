package orchestrator

import "github.com/redpen/redpen/model"

// CommandInfo describes one resolved command for display and logging.
type CommandInfo struct {
	Kind       string            `json:"kind"`
	Action     string            `json:"action"`
	Params     map[string]string `json:"params,omitempty"`
	Confidence float64           `json:"confidence"`
}

// ResponseMetadata carries the machine-readable summary of a turn.
type ResponseMetadata struct {
	Confidence      float64      `json:"confidence"`
	Reasoning       string       `json:"reasoning"`
	EstimatedImpact model.Impact `json:"estimated_impact"`
}

// AnalysisReport groups observations about the document after a turn.
type AnalysisReport struct {
	Improvements  []string `json:"improvements,omitempty"`
	Warnings      []string `json:"warnings,omitempty"`
	Opportunities []string `json:"opportunities,omitempty"`
}

// TurnResponse is the full outcome of one conversational turn.
type TurnResponse struct {
	// MessageID identifies the assistant message recorded for this turn.
	MessageID string `json:"message_id,omitempty"`
	// Message is the conversational reply shown to the user.
	Message string `json:"message"`
	// SuggestedContent holds the candidate document when a suggestion
	// was proposed this turn.
	SuggestedContent string `json:"suggested_content,omitempty"`
	HasSuggestion    bool   `json:"has_suggestion"`
	// SuggestionID identifies the pending suggestion, when present.
	SuggestionID string           `json:"suggestion_id,omitempty"`
	Commands     []CommandInfo    `json:"commands,omitempty"`
	Metadata     ResponseMetadata `json:"metadata"`
	Analysis     AnalysisReport   `json:"analysis"`
}
