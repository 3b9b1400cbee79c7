package command

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/calbot/internal/core"
	"github.com/sandevgo/calbot/internal/storage/memory"
)

type fakeConfig struct {
	provider, model string
}

func (c *fakeConfig) GetModel() string                 { return c.model }
func (c *fakeConfig) GetProvider() string              { return c.provider }
func (c *fakeConfig) GetDeepSeekAPIKey() string        { return "" }
func (c *fakeConfig) GetAnthropicAPIKey() string       { return "" }
func (c *fakeConfig) GetOpenAIAPIKey() string          { return "" }
func (c *fakeConfig) GetOpenRouterAPIKey() string      { return "" }
func (c *fakeConfig) GetOllamaAPIKey() string          { return "" }
func (c *fakeConfig) GetOllamaBaseURL() string         { return "" }
func (c *fakeConfig) GetCustomOpenAIBaseURL() string   { return "" }
func (c *fakeConfig) GetCustomOpenAIAPIKey() string    { return "" }
func (c *fakeConfig) SetModel(model string) error {
	if p, m, ok := strings.Cut(model, "/"); ok {
		c.provider, c.model = p, m
		return nil
	}
	c.model = model
	return nil
}

type fakeState struct {
	cfg *fakeConfig
	err error
}

func (s *fakeState) ChangeModel(_ context.Context, model string) error {
	if s.err != nil {
		return s.err
	}
	return s.cfg.SetModel(model)
}

type fakeModels struct {
	models []core.Model
	err    error
}

func (f *fakeModels) Models(context.Context) ([]core.Model, error) {
	return f.models, f.err
}

func newTestRouter(store *memory.ConversationStore) (*Router, *fakeConfig, *fakeState) {
	cfg := &fakeConfig{provider: "deepseek", model: "deepseek-chat"}
	state := &fakeState{cfg: cfg}
	models := &fakeModels{models: []core.Model{
		{ID: "deepseek-chat", ContextLength: 64000},
		{ID: "deepseek-reasoner"},
	}}
	return New([]core.Command{
		NewModelCommand(cfg, state),
		NewModelsCommand(models),
		NewHistoryCommand(store),
	}), cfg, state
}

func TestRouter_IgnoresPlainMessages(t *testing.T) {
	r, _, _ := newTestRouter(memory.NewConversationStore(0))

	out, handled := r.Execute(context.Background(), "u1", "lunch tomorrow at noon")
	assert.False(t, handled)
	assert.Empty(t, out)
}

func TestRouter_UnknownCommand(t *testing.T) {
	r, _, _ := newTestRouter(memory.NewConversationStore(0))

	out, handled := r.Execute(context.Background(), "u1", "/nope")
	assert.True(t, handled)
	assert.Contains(t, out, "Unknown command: /nope")
}

func TestRouter_HelpListsSortedCommands(t *testing.T) {
	r, _, _ := newTestRouter(memory.NewConversationStore(0))

	out, handled := r.Execute(context.Background(), "u1", "/help@calbot_bot")
	require.True(t, handled)

	names := []string{"/help", "/history", "/model", "/models"}
	last := -1
	for _, n := range names {
		idx := strings.Index(out, "**"+n+"**")
		require.GreaterOrEqual(t, idx, 0, n)
		assert.Greater(t, idx, last, n)
		last = idx
	}
}

func TestModelCommand(t *testing.T) {
	r, cfg, state := newTestRouter(memory.NewConversationStore(0))
	ctx := context.Background()

	out, _ := r.Execute(ctx, "u1", "/model")
	assert.Contains(t, out, "`deepseek`")
	assert.Contains(t, out, "`deepseek-chat`")

	out, _ = r.Execute(ctx, "u1", "/model openai/gpt-4o-mini")
	assert.Contains(t, out, "Model changed to: `openai/gpt-4o-mini`")
	assert.Equal(t, "openai", cfg.provider)

	state.err = errors.New("no key")
	out, _ = r.Execute(ctx, "u1", "/model anthropic/claude")
	assert.Equal(t, "Error: failed to set model: no key", out)
}

func TestModelsCommand(t *testing.T) {
	r, _, _ := newTestRouter(memory.NewConversationStore(0))
	ctx := context.Background()

	out, _ := r.Execute(ctx, "u1", "/models")
	assert.Contains(t, out, "`deepseek-chat` (64k)")
	assert.Contains(t, out, "`deepseek-reasoner`")

	out, _ = r.Execute(ctx, "u1", "/models reason")
	assert.NotContains(t, out, "`deepseek-chat`")
	assert.Contains(t, out, "`deepseek-reasoner`")

	out, _ = r.Execute(ctx, "u1", "/models gpt")
	assert.Contains(t, out, "No models found.")
}

func TestModelsCommand_ProviderError(t *testing.T) {
	cmd := NewModelsCommand(&fakeModels{err: errors.New("http 401: bad key")})

	_, err := cmd.Execute(context.Background(), "u1", nil)
	assert.EqualError(t, err, "failed to list models: http 401: bad key")
}

func TestHistoryCommand(t *testing.T) {
	store := memory.NewConversationStore(0)
	r, _, _ := newTestRouter(store)
	ctx := context.Background()

	out, _ := r.Execute(ctx, "u1", "/history")
	assert.Contains(t, out, "No messages yet.")

	ts := time.Date(2025, 6, 27, 9, 5, 0, 0, time.UTC)
	store.Append("u1", core.ConversationEntry{Text: "delete my dentist appointment", IsUser: true, Timestamp: ts})
	store.Append("u1", core.ConversationEntry{
		Text:      "instruction: {\"action\":\"find_and_delete\",\"item_type\":\"event\",\"title\":\"dentist\"}\nuserReply: \"Deleting it now.\"",
		Timestamp: ts,
	})

	out, _ = r.Execute(ctx, "u1", "/history")
	assert.Contains(t, out, "09:05 **You**: delete my dentist appointment")
	assert.Contains(t, out, "09:05 **"+core.CalName+"**: Deleting it now.")
	assert.NotContains(t, out, "find_and_delete")

	out, _ = r.Execute(ctx, "u1", "/history 1")
	assert.NotContains(t, out, "dentist appointment")

	out, _ = r.Execute(ctx, "u1", "/history zero")
	assert.Contains(t, out, "count must be a positive number")
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "a b", preview("  a \n b "))

	long := strings.Repeat("x", historyPreviewLen+10)
	got := preview(long)
	assert.Len(t, []rune(got), historyPreviewLen)
	assert.True(t, strings.HasSuffix(got, "..."))
}
