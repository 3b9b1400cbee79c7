package llm

import (
	"context"
	"fmt"

	"github.com/sandevgo/calbot/internal/core"
	"github.com/sandevgo/calbot/pkg/log"
)

// NewProvider creates the AIProvider selected by cfg.
func NewProvider(ctx context.Context, cfg core.ProviderConfig) (core.AIProvider, error) {
	log.FromCtx(ctx).Info().
		Str("provider", cfg.GetProvider()).
		Str("model", cfg.GetModel()).
		Msg("starting llm provider")

	model := cfg.GetModel()
	switch cfg.GetProvider() {
	case "deepseek":
		return NewDeepSeek(cfg.GetDeepSeekAPIKey(), model), nil
	case "openai":
		return NewOpenAI(cfg.GetOpenAIAPIKey(), model), nil
	case "anthropic":
		return NewAnthropic(cfg.GetAnthropicAPIKey(), model), nil
	case "openrouter":
		return NewOpenRouter(cfg.GetOpenRouterAPIKey(), model), nil
	case "ollama":
		return NewOllama(cfg.GetOllamaBaseURL(), cfg.GetOllamaAPIKey(), model), nil
	case "custom":
		return NewCustomOpenAI(cfg.GetCustomOpenAIBaseURL(), cfg.GetCustomOpenAIAPIKey(), model), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.GetProvider())
	}
}
