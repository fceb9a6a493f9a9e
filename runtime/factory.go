// Runtime factory - creates a Runtime for a named provider.
//
//	rt, err := runtime.ProviderOpenAI.FromEnv(cfg)
//	rt, err := runtime.New(runtime.ProviderAnthropic, apiKey, cfg)
package runtime

import (
	"fmt"
	"os"
	"strings"
)

// Default models per provider.
const (
	ModelOpenAIDefault    = "gpt-4o"
	ModelAnthropicDefault = "claude-sonnet-4-20250514"
	ModelGeminiDefault    = "gemini-2.5-flash"
)

// ProviderType represents supported runtime providers.
type ProviderType int

const (
	// ProviderOpenAI is the OpenAI provider (GPT models).
	ProviderOpenAI ProviderType = iota
	// ProviderAnthropic is the Anthropic provider (Claude models).
	ProviderAnthropic
	// ProviderGemini is the Google Gemini provider.
	ProviderGemini
)

// String returns the string representation of the provider type.
func (p ProviderType) String() string {
	switch p {
	case ProviderOpenAI:
		return "openai"
	case ProviderAnthropic:
		return "anthropic"
	case ProviderGemini:
		return "gemini"
	default:
		return "unknown"
	}
}

// EnvVar returns the environment variable name for this provider's API key.
func (p ProviderType) EnvVar() string {
	switch p {
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	case ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	case ProviderGemini:
		return "GEMINI_API_KEY"
	default:
		return ""
	}
}

// DefaultModel returns the default model for this provider.
func (p ProviderType) DefaultModel() string {
	switch p {
	case ProviderOpenAI:
		return ModelOpenAIDefault
	case ProviderAnthropic:
		return ModelAnthropicDefault
	case ProviderGemini:
		return ModelGeminiDefault
	default:
		return ""
	}
}

// ParseProviderType parses a provider from string (case-insensitive).
func ParseProviderType(s string) (ProviderType, error) {
	switch strings.ToLower(s) {
	case "openai", "gpt":
		return ProviderOpenAI, nil
	case "anthropic", "claude":
		return ProviderAnthropic, nil
	case "gemini", "google":
		return ProviderGemini, nil
	default:
		return 0, fmt.Errorf("unknown provider: %s", s)
	}
}

// Config holds shared runtime construction parameters.
type Config struct {
	Model       string // empty means the provider default
	MaxTokens   uint32
	Temperature float32
}

// New creates a runtime for the given provider with an explicit API key.
func New(p ProviderType, apiKey string, cfg Config) (Runtime, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%s: empty API key", p)
	}

	model := cfg.Model
	if model == "" {
		model = p.DefaultModel()
	}

	switch p {
	case ProviderOpenAI:
		return NewOpenAIRuntime(apiKey, model, cfg.MaxTokens, cfg.Temperature), nil
	case ProviderAnthropic:
		return NewAnthropicRuntime(apiKey, model, cfg.MaxTokens, cfg.Temperature), nil
	case ProviderGemini:
		return NewGeminiRuntime(apiKey, model, cfg.MaxTokens, cfg.Temperature), nil
	default:
		return nil, fmt.Errorf("unknown provider type: %d", p)
	}
}

// FromEnv creates a runtime reading the API key from the provider's
// environment variable.
func (p ProviderType) FromEnv(cfg Config) (Runtime, error) {
	key := os.Getenv(p.EnvVar())
	if key == "" {
		return nil, fmt.Errorf("%s environment variable not set", p.EnvVar())
	}
	return New(p, key, cfg)
}
