package config

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/calbot/pkg/log"
)

var knownProviders = map[string]bool{
	"deepseek":   true,
	"openai":     true,
	"openrouter": true,
	"anthropic":  true,
	"ollama":     true,
	"custom":     true,
}

type AppConfig struct {
	RuntimePath string `env:"CALBOT_RUNTIME_PATH" envDefault:".calbot"`

	// LLM provider selection
	Provider            string  `env:"CALBOT_LLM_PROVIDER" envDefault:"deepseek"`
	Model               string  `env:"CALBOT_MODEL" envDefault:"deepseek-chat"`
	DeepSeekAPIKey      string  `env:"CALBOT_DEEPSEEK_API_KEY"`
	OpenAIAPIKey        string  `env:"CALBOT_OPENAI_API_KEY"`
	OpenRouterAPIKey    string  `env:"CALBOT_OPENROUTER_API_KEY"`
	AnthropicAPIKey     string  `env:"CALBOT_ANTHROPIC_API_KEY"`
	OllamaAPIKey        string  `env:"CALBOT_OLLAMA_API_KEY"`
	OllamaBaseURL       string  `env:"CALBOT_OLLAMA_BASE_URL" envDefault:"http://localhost:11434"`
	CustomOpenAIBaseURL string  `env:"CALBOT_CUSTOM_OPENAI_BASE_URL"`
	CustomOpenAIAPIKey  string  `env:"CALBOT_CUSTOM_OPENAI_API_KEY"`
	MaxTokens           int     `env:"CALBOT_MAX_TOKENS" envDefault:"256"`
	Temperature         float64 `env:"CALBOT_TEMPERATURE" envDefault:"0.7"`

	// Transport Flags
	EnableTelegram bool `env:"CALBOT_ENABLE_TELEGRAM" envDefault:"false"`
	EnableCLI      bool `env:"CALBOT_ENABLE_CLI" envDefault:"true"`

	// Conversation window
	HistoryLimit      int `env:"CALBOT_HISTORY_LIMIT" envDefault:"20"`
	ContextWindowSize int `env:"CALBOT_CONTEXT_WINDOW_SIZE" envDefault:"8"`

	// Scheduling
	CalendarBackend   string        `env:"CALBOT_CALENDAR_BACKEND" envDefault:"local"`
	Timezone          string        `env:"CALBOT_TIMEZONE" envDefault:"America/Chicago"`
	ProviderTimeout   time.Duration `env:"CALBOT_PROVIDER_TIMEOUT" envDefault:"30s"`
	CompletionTimeout time.Duration `env:"CALBOT_COMPLETION_TIMEOUT" envDefault:"120s"`

	mu       sync.RWMutex
	location *time.Location
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	if err := c.loadLocation(); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("invalid timezone")
	}
	c.RuntimePath = resolveRuntimePath(c.RuntimePath)
	return c
}

func (c *AppConfig) loadLocation() error {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("load location %q: %w", c.Timezone, err)
	}
	c.location = loc
	return nil
}

func (c *AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c *AppConfig) GetSystemPath() string {
	return filepath.Join(c.RuntimePath, "SYSTEM.md")
}

func (c *AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "calbot.db")
}

func (c *AppConfig) GetContextWindowSize() int {
	return c.ContextWindowSize
}

func (c *AppConfig) GetHistoryLimit() int {
	return c.HistoryLimit
}

// GetLocation returns the default zone used for dates without an offset.
func (c *AppConfig) GetLocation() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

func (c *AppConfig) IsTelegramSelected() bool {
	return c.EnableTelegram
}

func (c *AppConfig) IsCLISelected() bool {
	return c.EnableCLI
}

func (c *AppConfig) IsGoogleBackend() bool {
	return strings.EqualFold(c.CalendarBackend, "google")
}

func (c *AppConfig) GetModel() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Model
}

func (c *AppConfig) GetProvider() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Provider
}

// SetModel accepts "model" or "provider/model". A leading segment is only
// treated as a provider when it names a known one, so OpenRouter ids such as
// "openai/gpt-4o" still work when OpenRouter is selected.
func (c *AppConfig) SetModel(model string) error {
	model = strings.TrimSpace(model)
	if model == "" {
		return fmt.Errorf("model must not be empty")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if prefix, rest, ok := strings.Cut(model, "/"); ok && knownProviders[prefix] && rest != "" {
		c.Provider = prefix
		c.Model = rest
		return nil
	}
	c.Model = model
	return nil
}

func (c *AppConfig) GetDeepSeekAPIKey() string      { return c.DeepSeekAPIKey }
func (c *AppConfig) GetAnthropicAPIKey() string     { return c.AnthropicAPIKey }
func (c *AppConfig) GetOpenAIAPIKey() string        { return c.OpenAIAPIKey }
func (c *AppConfig) GetOpenRouterAPIKey() string    { return c.OpenRouterAPIKey }
func (c *AppConfig) GetOllamaAPIKey() string        { return c.OllamaAPIKey }
func (c *AppConfig) GetOllamaBaseURL() string       { return c.OllamaBaseURL }
func (c *AppConfig) GetCustomOpenAIBaseURL() string { return c.CustomOpenAIBaseURL }
func (c *AppConfig) GetCustomOpenAIAPIKey() string  { return c.CustomOpenAIAPIKey }
