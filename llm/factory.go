// LLM Provider Factory - maps the configured backend name to a Provider.

package llm

import (
	"fmt"
	"strings"
)

// ProviderType represents supported LLM providers.
type ProviderType int

const (
	// ProviderOpenRouter is the default OpenAI-compatible backend.
	ProviderOpenRouter ProviderType = iota
	// ProviderOpenAI is the OpenAI provider via the go-openai client.
	ProviderOpenAI
	// ProviderAnthropic is the Anthropic provider (Claude models).
	ProviderAnthropic
	// ProviderGemini is the Google Gemini provider.
	ProviderGemini
)

// String returns the string representation of the provider type.
func (p ProviderType) String() string {
	switch p {
	case ProviderOpenRouter:
		return "openrouter"
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

// ParseProviderType parses a provider from string (case-insensitive). The
// empty string selects the default OpenRouter backend.
func ParseProviderType(s string) (ProviderType, error) {
	switch strings.ToLower(s) {
	case "", "openrouter":
		return ProviderOpenRouter, nil
	case "openai", "gpt":
		return ProviderOpenAI, nil
	case "anthropic", "claude":
		return ProviderAnthropic, nil
	case "gemini", "google":
		return ProviderGemini, nil
	default:
		return 0, fmt.Errorf("unknown provider: %q", s)
	}
}

// NewProvider builds the provider for the given backend. baseURL applies to
// the OpenAI-compatible backends; the Anthropic and Gemini SDKs use their
// fixed endpoints.
func NewProvider(providerType ProviderType, baseURL, apiKey, model string) (Provider, error) {
	switch providerType {
	case ProviderOpenRouter:
		return NewOpenRouterProvider(baseURL, apiKey, model), nil
	case ProviderOpenAI:
		return NewOpenAIProvider(baseURL, apiKey, model), nil
	case ProviderAnthropic:
		return NewAnthropicProvider(apiKey, model), nil
	case ProviderGemini:
		return NewGeminiProvider(apiKey, model), nil
	default:
		return nil, fmt.Errorf("unknown provider type: %v", providerType)
	}
}
