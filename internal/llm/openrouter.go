package llm

import (
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

	// openRouterTitle is sent as X-Title so calls are attributed to this app
	// on the OpenRouter dashboard.
	openRouterTitle = "quizgen"
)

// OpenRouterProvider reaches any OpenRouter-hosted model through its
// OpenAI-compatible chat API. Model IDs are vendor-prefixed
// ("openai/gpt-4o-mini") and passed through unchanged.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates a provider targeting the OpenRouter API.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if err := requireKey("openrouter", cfg.APIKey); err != nil {
		return nil, err
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = defaultOpenRouterBaseURL
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	clientCfg.HTTPClient = &http.Client{
		Transport: titleTransport{next: http.DefaultTransport},
	}

	return &OpenRouterProvider{
		OpenAIProvider: newOpenAICompatible("openrouter", clientCfg, cfg.Model),
	}, nil
}

// titleTransport adds the X-Title attribution header to every request.
type titleTransport struct {
	next http.RoundTripper
}

func (t titleTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.Header.Set("X-Title", openRouterTitle)
	return t.next.RoundTrip(r)
}
