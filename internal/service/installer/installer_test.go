package installer

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var enter = tea.KeyMsg{Type: tea.KeyEnter}

func typeText(t *testing.T, s Step, state *InstallState, text string) Step {
	t.Helper()
	next, _ := s.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)}, state, 80, 24)
	require.NotNil(t, next)
	return next
}

func TestChoiceStep_StoresSelectedValue(t *testing.T) {
	state := NewInstallState()
	step := NewProviderStep()

	step, _ = step.Update(tea.KeyMsg{Type: tea.KeyDown}, state, 80, 24)
	step, _ = step.Update(tea.KeyMsg{Type: tea.KeyDown}, state, 80, 24)
	require.NotNil(t, step)
	assert.Contains(t, step.View(state), "❯ Anthropic")

	next, _ := step.Update(enter, state, 80, 24)
	assert.Nil(t, next)
	assert.Equal(t, "anthropic", state.Provider())
}

func TestInputStep_RequiredAndValidated(t *testing.T) {
	state := NewInstallState()
	step := NewTelegramOwnerStep()

	next, _ := step.Update(enter, state, 80, 24)
	require.NotNil(t, next)
	assert.Contains(t, next.View(state), "a value is required")

	next = typeText(t, next, state, "abc")
	next, _ = next.Update(enter, state, 80, 24)
	require.NotNil(t, next)
	assert.Contains(t, next.View(state), "user id must be a number")
	assert.Empty(t, state.EnvVars[envTelegramOwner])
}

func TestInputStep_DefaultUsedWhenEmpty(t *testing.T) {
	state := NewInstallState()

	next, _ := NewTimezoneStep().Update(enter, state, 80, 24)
	assert.Nil(t, next)
	assert.Equal(t, "America/Chicago", state.EnvVars[envTimezone])
}

func TestInputStep_TypedValue(t *testing.T) {
	state := NewInstallState()

	step := typeText(t, NewTimezoneStep(), state, "Europe/Berlin")
	next, _ := step.Update(enter, state, 80, 24)
	assert.Nil(t, next)
	assert.Equal(t, "Europe/Berlin", state.EnvVars[envTimezone])
}

func TestSkips(t *testing.T) {
	state := NewInstallState()
	state.EnvVars[envChannel] = "cli"
	state.EnvVars[envCalendarBackend] = "local"
	state.EnvVars[envProvider] = "ollama"

	assert.True(t, NewTelegramTokenStep().(skipper).Skip(state))
	for _, s := range NewGoogleSteps() {
		assert.True(t, s.(skipper).Skip(state))
	}

	endpoints := NewEndpointSteps()
	assert.True(t, endpoints[0].(skipper).Skip(state), "custom url")
	assert.False(t, endpoints[1].(skipper).Skip(state), "ollama url")
	assert.False(t, NewAPIKeyStep().(skipper).Skip(state))

	state.EnvVars[envChannel] = "both"
	state.EnvVars[envCalendarBackend] = "google"
	assert.False(t, NewTelegramOwnerStep().(skipper).Skip(state))
	assert.False(t, NewGoogleSteps()[0].(skipper).Skip(state))
}

func TestWizard_AdvanceSkipsSteps(t *testing.T) {
	m := initialModel()
	m.state.EnvVars[envProvider] = "deepseek"

	// provider step done: both endpoint steps are skipped
	m.advance()
	_, isKey := m.steps[m.currentStep].(*APIKeyStep)
	assert.True(t, isKey)
}

func TestFinalize(t *testing.T) {
	tests := []struct {
		channel      string
		wantCLI      string
		wantTelegram string
	}{
		{"cli", "true", "false"},
		{"telegram", "false", "true"},
		{"both", "true", "true"},
	}
	for _, tt := range tests {
		t.Run(tt.channel, func(t *testing.T) {
			state := NewInstallState()
			state.EnvVars[envChannel] = tt.channel

			finalize(state)
			assert.Equal(t, tt.wantCLI, state.EnvVars[envEnableCLI])
			assert.Equal(t, tt.wantTelegram, state.EnvVars[envEnableTelegram])
			assert.Equal(t, "local", state.EnvVars[envCalendarBackend])
			assert.NotContains(t, state.EnvVars, envChannel)
		})
	}
}

func TestSaveEnv(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "runtime")
	vars := map[string]string{
		envProvider: "deepseek",
		envModel:    "deepseek-chat",
		envTimezone: "America/Chicago",
	}

	require.NoError(t, saveEnv(dir, vars))

	read, err := godotenv.Read(filepath.Join(dir, ".env"))
	require.NoError(t, err)
	assert.Equal(t, vars, read)

	info, err := os.Stat(filepath.Join(dir, ".env"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	assert.ErrorContains(t, saveEnv(dir, vars), "already exists")
}

func TestWriteRuntimeFiles_KeepsExisting(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, writeRuntimeFiles(dir))
	data, err := os.ReadFile(filepath.Join(dir, "SYSTEM.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "instruction:")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "SYSTEM.md"), []byte("custom"), 0644))
	require.NoError(t, writeRuntimeFiles(dir))
	data, err = os.ReadFile(filepath.Join(dir, "SYSTEM.md"))
	require.NoError(t, err)
	assert.Equal(t, "custom", string(data))
}
