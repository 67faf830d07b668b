// Model provider construction.
//
// Information Hiding:
// - API key environment lookup per provider
// - Default model identifier per provider
//
// Token and temperature tuning comes from configuration; the builder
// carries those values through without defaults of its own.

package llm

import (
	"fmt"
	"os"
	"strings"
)

// ProviderType identifies a supported model provider.
type ProviderType int

const (
	// ProviderOpenAI talks to the OpenAI chat completions API.
	ProviderOpenAI ProviderType = iota
	// ProviderAnthropic talks to the Anthropic messages API.
	ProviderAnthropic
	// ProviderDeepSeek talks to DeepSeek's OpenAI-compatible API.
	ProviderDeepSeek
	// ProviderGemini talks to the Google Gemini API.
	ProviderGemini
)

// Default model identifiers, one per provider.
const (
	ModelOpenAIGPT52           = "gpt-5.2"
	ModelAnthropicClaudeOpus45 = "claude-opus-4-5-20251101"
	ModelDeepSeekV32           = "deepseek-v3.2"
	ModelGeminiFlash3          = "gemini-3-flash"
)

// String returns the provider's canonical name.
func (p ProviderType) String() string {
	switch p {
	case ProviderOpenAI:
		return "openai"
	case ProviderAnthropic:
		return "anthropic"
	case ProviderDeepSeek:
		return "deepseek"
	case ProviderGemini:
		return "gemini"
	default:
		return "unknown"
	}
}

// EnvVar returns the environment variable holding this provider's API key.
func (p ProviderType) EnvVar() string {
	switch p {
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	case ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	case ProviderDeepSeek:
		return "DEEPSEEK_API_KEY"
	case ProviderGemini:
		return "GEMINI_API_KEY"
	default:
		return ""
	}
}

// DefaultModel returns the model used when none is configured.
func (p ProviderType) DefaultModel() string {
	switch p {
	case ProviderOpenAI:
		return ModelOpenAIGPT52
	case ProviderAnthropic:
		return ModelAnthropicClaudeOpus45
	case ProviderDeepSeek:
		return ModelDeepSeekV32
	case ProviderGemini:
		return ModelGeminiFlash3
	default:
		return ""
	}
}

// ParseProviderType parses a provider name (case-insensitive). Common
// aliases are accepted: "gpt" for OpenAI, "claude" for Anthropic,
// "google" for Gemini.
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

// ProviderBuilder assembles a Provider from configured values.
type ProviderBuilder struct {
	providerType ProviderType
	model        string
	maxTokens    uint32
	temperature  float32
}

// NewProviderBuilder starts building a provider of the given type.
func NewProviderBuilder(providerType ProviderType) *ProviderBuilder {
	return &ProviderBuilder{providerType: providerType}
}

// Model sets the model identifier. Empty selects the provider default.
func (b *ProviderBuilder) Model(model string) *ProviderBuilder {
	b.model = model
	return b
}

// MaxTokens sets the response token cap.
func (b *ProviderBuilder) MaxTokens(tokens uint32) *ProviderBuilder {
	b.maxTokens = tokens
	return b
}

// Temperature sets the sampling temperature.
func (b *ProviderBuilder) Temperature(temp float32) *ProviderBuilder {
	b.temperature = temp
	return b
}

// FromEnv builds the provider, reading the API key from the provider's
// environment variable.
func (b *ProviderBuilder) FromEnv() (Provider, error) {
	envVar := b.providerType.EnvVar()
	apiKey := os.Getenv(envVar)
	if apiKey == "" {
		return nil, fmt.Errorf("%s: %s environment variable not set", b.providerType, envVar)
	}
	return b.build(apiKey)
}

func (b *ProviderBuilder) build(apiKey string) (Provider, error) {
	if b.maxTokens == 0 {
		return nil, fmt.Errorf("%s: max tokens not configured", b.providerType)
	}

	model := b.model
	if model == "" {
		model = b.providerType.DefaultModel()
	}

	switch b.providerType {
	case ProviderOpenAI:
		return NewOpenAIProvider(apiKey, model, b.maxTokens, b.temperature), nil
	case ProviderAnthropic:
		return NewAnthropicProvider(apiKey, model, b.maxTokens, b.temperature), nil
	case ProviderDeepSeek:
		return NewDeepSeekProvider(apiKey, model, b.maxTokens, b.temperature), nil
	case ProviderGemini:
		return NewGeminiProvider(apiKey, model, b.maxTokens, b.temperature), nil
	default:
		return nil, fmt.Errorf("unknown provider type: %v", b.providerType)
	}
}
