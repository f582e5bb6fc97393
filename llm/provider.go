package llm

import (
	"context"
	"fmt"
)

// GenerateOptions bounds a single generation call.
type GenerateOptions struct {
	// MaxTokens caps the backend's output length.
	MaxTokens int
}

// Provider is the capability shared by all generation backends: one
// prompt in, one text completion out. Implementations own their
// request/response envelope and authentication placement.
type Provider interface {
	// Name returns the provider identifier, e.g. "openai".
	Name() string

	// Generate sends the prompt and returns the generated text.
	// A non-success HTTP status or transport failure is returned as an
	// error; an unexpected response shape yields empty output.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
}

// Provider identifiers accepted in configuration.
const (
	ProviderOllama    = "ollama"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

// DefaultProvider is used when the configured provider is empty or not
// recognized.
const DefaultProvider = ProviderOllama

// Config selects and configures a provider.
type Config struct {
	Provider string // Provider identifier; unknown values fall back to DefaultProvider
	Model    string // Model identifier; empty uses the provider default
	APIKey   string // Credential for hosted providers
	BaseURL  string // Endpoint override, mainly for tests and proxies
}

// New builds the provider selected by cfg. Hosted providers require an
// API key and fail fast (before any request) without one.
func New(cfg Config) (Provider, error) {
	switch cfg.Provider {
	case ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%s: %w", cfg.Provider, ErrMissingAPIKey)
		}
		return newOpenAI(cfg), nil
	case ProviderAnthropic:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%s: %w", cfg.Provider, ErrMissingAPIKey)
		}
		return newAnthropic(cfg), nil
	case ProviderGemini:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%s: %w", cfg.Provider, ErrMissingAPIKey)
		}
		return newGemini(cfg), nil
	default:
		return newOllama(cfg), nil
	}
}
