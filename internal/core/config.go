package core

import (
	"context"
	"time"
)

type PromptConfig interface {
	GetSystemPath() string
	GetLocation() *time.Location
}

type ProviderConfig interface {
	GetModel() string
	SetModel(model string) error
	GetProvider() string
	GetDeepSeekAPIKey() string
	GetAnthropicAPIKey() string
	GetOpenAIAPIKey() string
	GetOpenRouterAPIKey() string
	GetOllamaAPIKey() string
	GetOllamaBaseURL() string
	GetCustomOpenAIBaseURL() string
	GetCustomOpenAIAPIKey() string
}

type TelegramConfig interface {
	GetTelegramToken() string
	GetTelegramOwnerID() int64
	GetPollTimeout() time.Duration
}

type GlobalState interface {
	ChangeModel(ctx context.Context, model string) error
}
