package llm

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/abhisek/quizgen/internal/store"
)

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with retry and logging middleware.
// eventRepo may be nil, in which case calls are only logged.
func NewProvider(ctx context.Context, cfg Config, log zerolog.Logger, eventRepo store.EventRepo) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		if len(cfg.Mock.Reply) == 0 {
			return nil, fmt.Errorf("mock provider needs a canned reply")
		}
		mock := NewMockProvider()
		mock.Fallback = &MockResponse{Content: cfg.Mock.Reply}
		base = mock
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// caller → retry → logging → base, so every attempt is logged.
	logged := WithLogging(base, cfg.Provider, log.With().Str("component", "llm").Logger(), eventRepo)
	retried := WithRetry(logged, cfg.Retry)

	return retried, nil
}

// NewProviderFromEnv resolves configuration from QUIZGEN_* variables, falling
// back to well-known vendor key variables, validates it, and builds the
// provider chain. Each override runs on the resolved Config before the
// provider is built.
func NewProviderFromEnv(ctx context.Context, log zerolog.Logger, eventRepo store.EventRepo, overrides ...func(*Config)) (Provider, Config, error) {
	cfg := ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, cfg, err
		}
		discovered.Timeout = cfg.Timeout
		cfg = discovered
	}
	for _, o := range overrides {
		o(&cfg)
	}

	p, err := NewProvider(ctx, cfg, log, eventRepo)
	if err != nil {
		return nil, cfg, err
	}
	return p, cfg, nil
}
