// Provider construction. The CLI resolves the provider name and model
// from configuration, then builds through the fluent chain:
//
//	provider, err := llm.ProviderAnthropic.
//	    Model(model).
//	    MaxTokens(4096).
//	    Temperature(0.3).
//	    APIKey(key)

package llm

import (
	"fmt"
	"strings"
)

// ProviderType identifies a supported remote provider.
type ProviderType int

const (
	ProviderOpenAI ProviderType = iota
	ProviderAnthropic
	ProviderDeepSeek
	ProviderGemini
)

// Default model identifiers, current as of January 2026.
const (
	ModelOpenAIGPT52           = "gpt-5.2"
	ModelAnthropicClaudeOpus45 = "claude-opus-4-5-20251101"
	ModelDeepSeekV32           = "deepseek-v3.2"
	ModelGeminiFlash3          = "gemini-3-flash"
)

var providerNames = map[ProviderType]string{
	ProviderOpenAI:    "openai",
	ProviderAnthropic: "anthropic",
	ProviderDeepSeek:  "deepseek",
	ProviderGemini:    "gemini",
}

var defaultModels = map[ProviderType]string{
	ProviderOpenAI:    ModelOpenAIGPT52,
	ProviderAnthropic: ModelAnthropicClaudeOpus45,
	ProviderDeepSeek:  ModelDeepSeekV32,
	ProviderGemini:    ModelGeminiFlash3,
}

func (p ProviderType) String() string {
	if name, ok := providerNames[p]; ok {
		return name
	}
	return "unknown"
}

// DefaultModel returns the model used when none is configured.
func (p ProviderType) DefaultModel() string {
	return defaultModels[p]
}

// ParseProviderType parses a provider name, accepting common aliases
// (case-insensitive).
func ParseProviderType(s string) (ProviderType, error) {
	switch strings.ToLower(s) {
	case "openai", "gpt":
		return ProviderOpenAI, nil
	case "anthropic", "claude":
		return ProviderAnthropic, nil
	case "deepseek":
		return ProviderDeepSeek, nil
	case "gemini", "google":
		return ProviderGemini, nil
	default:
		return 0, fmt.Errorf("unknown provider: %s", s)
	}
}

// Model starts configuring this provider with a specific model.
func (p ProviderType) Model(model string) *ProviderBuilder {
	return NewProviderBuilder(p).Model(model)
}

// ProviderBuilder accumulates provider configuration before the build.
type ProviderBuilder struct {
	providerType ProviderType
	model        string
	maxTokens    uint32
	temperature  *float32
}

// NewProviderBuilder creates a new builder for the given provider.
func NewProviderBuilder(providerType ProviderType) *ProviderBuilder {
	return &ProviderBuilder{
		providerType: providerType,
	}
}

// Model sets the model to use.
func (b *ProviderBuilder) Model(model string) *ProviderBuilder {
	b.model = model
	return b
}

// MaxTokens sets maximum tokens for responses.
func (b *ProviderBuilder) MaxTokens(tokens uint32) *ProviderBuilder {
	b.maxTokens = tokens
	return b
}

// Temperature sets temperature (0.0 = deterministic, 1.0 = creative).
func (b *ProviderBuilder) Temperature(temp float32) *ProviderBuilder {
	b.temperature = &temp
	return b
}

// APIKey builds the provider with an explicit API key. Unset fields
// fall back to the provider defaults.
func (b *ProviderBuilder) APIKey(key string) (Provider, error) {
	model := b.model
	if model == "" {
		model = b.providerType.DefaultModel()
	}

	maxTokens := b.maxTokens
	if maxTokens == 0 {
		maxTokens = 4096
	}

	temperature := float32(0.7)
	if b.temperature != nil {
		temperature = *b.temperature
	}

	switch b.providerType {
	case ProviderOpenAI:
		return NewOpenAIProvider(key, model, maxTokens, temperature), nil
	case ProviderAnthropic:
		return NewAnthropicProvider(key, model, maxTokens, temperature), nil
	case ProviderDeepSeek:
		return NewDeepSeekProvider(key, model, maxTokens, temperature), nil
	case ProviderGemini:
		return NewGeminiProvider(key, model, maxTokens, temperature), nil
	default:
		return nil, fmt.Errorf("unknown provider type: %v", b.providerType)
	}
}
