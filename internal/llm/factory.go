package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped with retry
// and event logging. It returns (nil, nil) when cfg disables the LLM.
func NewProvider(ctx context.Context, cfg Config, events store.EventRepo, logger *slog.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error
	switch cfg.Provider {
	case ProviderNone, "":
		return nil, nil
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		base = NewMockProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// caller -> retry -> logging -> base
	var p Provider = base
	if events != nil {
		p = WithLogging(p, events, logger)
	}
	return WithRetry(p, cfg.Retry, logger), nil
}

// NewProviderFromEnv is NewProvider with ConfigFromEnv.
func NewProviderFromEnv(ctx context.Context, events store.EventRepo, logger *slog.Logger) (Provider, Config, error) {
	cfg := ConfigFromEnv()
	p, err := NewProvider(ctx, cfg, events, logger)
	return p, cfg, err
}
