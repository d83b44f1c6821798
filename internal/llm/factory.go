package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/studybuddy/internal/logger"
	"github.com/abhisek/studybuddy/internal/store"
)

// Options carries the collaborators of the decorator chain.
type Options struct {
	EventRepo store.EventRepo
	Logger    *logger.Logger

	// Cache, when non-nil, enables the response cache for CacheConfig.Purposes.
	Cache       ResponseCache
	CacheConfig CacheConfig

	// Tracing wraps calls in OpenTelemetry spans.
	Tracing bool
}

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with cache, retry, tracing and logging
// middleware.
func NewProvider(ctx context.Context, cfg Config, opts Options) (Provider, error) {
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
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return wrap(base, cfg, opts), nil
}

// wrap builds the middleware chain: caller → cache → retry → tracing → logging → base.
// Logging sits innermost so every attempt is recorded.
func wrap(base Provider, cfg Config, opts Options) Provider {
	p := WithLogging(base, cfg.Provider, opts.EventRepo, opts.Logger)
	if opts.Tracing {
		p = WithTracing(p)
	}
	p = WithRetryTimeout(p, cfg.Retry, cfg.Timeout)
	if opts.Cache != nil {
		p = WithCache(p, opts.Cache, opts.CacheConfig, opts.Logger)
	}
	return p
}
