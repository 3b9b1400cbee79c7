package config

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppConfig_Defaults(t *testing.T) {
	cfg := NewAppConfig(context.Background())

	assert.Equal(t, "deepseek", cfg.GetProvider())
	assert.Equal(t, "deepseek-chat", cfg.GetModel())
	assert.Equal(t, 20, cfg.GetHistoryLimit())
	assert.Equal(t, 8, cfg.GetContextWindowSize())
	assert.Equal(t, 30*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, "America/Chicago", cfg.GetLocation().String())
	assert.False(t, cfg.IsGoogleBackend())
	assert.True(t, cfg.IsCLISelected())
}

func TestNewAppConfig_FromEnv(t *testing.T) {
	t.Setenv("CALBOT_RUNTIME_PATH", "/tmp/calbot")
	t.Setenv("CALBOT_TIMEZONE", "Europe/Berlin")
	t.Setenv("CALBOT_CALENDAR_BACKEND", "Google")
	t.Setenv("CALBOT_PROVIDER_TIMEOUT", "5s")

	cfg := NewAppConfig(context.Background())

	assert.Equal(t, "/tmp/calbot/SYSTEM.md", cfg.GetSystemPath())
	assert.Equal(t, "/tmp/calbot/calbot.db", cfg.GetDatabasePath())
	assert.Equal(t, "Europe/Berlin", cfg.GetLocation().String())
	assert.True(t, cfg.IsGoogleBackend())
	assert.Equal(t, 5*time.Second, cfg.ProviderTimeout)
}

func TestSetModel(t *testing.T) {
	tests := []struct {
		name             string
		input            string
		expectedProvider string
		expectedModel    string
	}{
		{name: "model only", input: "deepseek-reasoner", expectedProvider: "deepseek", expectedModel: "deepseek-reasoner"},
		{name: "provider and model", input: "openai/gpt-4o-mini", expectedProvider: "openai", expectedModel: "gpt-4o-mini"},
		{name: "openrouter id keeps vendor prefix", input: "openrouter/anthropic/claude-3.5-haiku", expectedProvider: "openrouter", expectedModel: "anthropic/claude-3.5-haiku"},
		{name: "unknown prefix is part of model", input: "meta-llama/llama-3-8b", expectedProvider: "deepseek", expectedModel: "meta-llama/llama-3-8b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &AppConfig{Provider: "deepseek", Model: "deepseek-chat"}

			require.NoError(t, cfg.SetModel(tt.input))
			assert.Equal(t, tt.expectedProvider, cfg.GetProvider())
			assert.Equal(t, tt.expectedModel, cfg.GetModel())
		})
	}

	assert.Error(t, (&AppConfig{}).SetModel("  "))
}

func TestGetLocation_FallsBackToUTC(t *testing.T) {
	assert.Equal(t, time.UTC, (&AppConfig{}).GetLocation())
}

func TestGetRuntimePath(t *testing.T) {
	t.Setenv("CALBOT_RUNTIME_PATH", "/srv/calbot")
	assert.Equal(t, "/srv/calbot", GetRuntimePath())

	t.Setenv("CALBOT_RUNTIME_PATH", "")
	assert.True(t, filepath.IsAbs(GetRuntimePath()))
	assert.Equal(t, defaultRuntimeDir, filepath.Base(GetRuntimePath()))
}

func TestIsDebug(t *testing.T) {
	for v, want := range map[string]bool{"1": true, "true": true, "0": false, "": false, "yes": false} {
		t.Setenv("CALBOT_DEBUG", v)
		assert.Equal(t, want, IsDebug(), v)
	}
}

func TestNewTelegramConfig(t *testing.T) {
	t.Setenv("CALBOT_TELEGRAM_TOKEN", "123:abc")
	t.Setenv("CALBOT_TELEGRAM_OWNER_ID", "42")

	cfg := NewTelegramConfig(context.Background())
	assert.Equal(t, "123:abc", cfg.GetTelegramToken())
	assert.Equal(t, int64(42), cfg.GetTelegramOwnerID())
	assert.Equal(t, 10*time.Second, cfg.GetPollTimeout())
}
