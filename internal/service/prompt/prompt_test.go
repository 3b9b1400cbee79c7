package prompt

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/calbot/internal/core"
)

type stubConfig struct {
	path string
	loc  *time.Location
}

func (s stubConfig) GetSystemPath() string       { return s.path }
func (s stubConfig) GetLocation() *time.Location { return s.loc }

func fixedBuilder(cfg stubConfig) *Builder {
	b := NewBuilder(cfg)
	// Friday 2025-06-27 14:05 UTC
	b.now = func() time.Time { return time.Date(2025, 6, 27, 14, 5, 0, 0, time.UTC) }
	return b
}

func TestSystem_EmbeddedTemplate(t *testing.T) {
	loc, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	got, err := fixedBuilder(stubConfig{path: filepath.Join(t.TempDir(), "missing.md"), loc: loc}).System(context.Background())
	require.NoError(t, err)

	assert.Contains(t, got, "You are CalBot")
	assert.Contains(t, got, "Today: 2025-06-27 (June 27, 2025)")
	assert.Contains(t, got, "Now: 2025-06-27T09:05:00 (09:05 AM, America/Chicago)")
	assert.Contains(t, got, `If the message is "SESSION_START"`)
	assert.Contains(t, got, `"datetime_start": "2025-06-30T10:00:00"`)
	assert.NotContains(t, got, "{{")
}

func TestSystem_RuntimeOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "SYSTEM.md")
	require.NoError(t, os.WriteFile(path, []byte("Custom prompt for {{.Today}} in {{.Zone}}"), 0o644))

	got, err := fixedBuilder(stubConfig{path: path}).System(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Custom prompt for 2025-06-27 in UTC", got)
}

func TestSystem_BrokenOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "SYSTEM.md")
	require.NoError(t, os.WriteFile(path, []byte("{{.Today"), 0o644))

	_, err := fixedBuilder(stubConfig{path: path}).System(context.Background())
	assert.Error(t, err)
}

func TestMessages_MapsRoles(t *testing.T) {
	history := []core.ConversationEntry{
		{Text: "delete my dentist appointment", IsUser: true},
		{Text: "instruction: {...}", IsUser: false},
	}

	got, err := fixedBuilder(stubConfig{}).Messages(context.Background(), history)
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.Equal(t, core.RoleSystem, got[0].Role)
	assert.Equal(t, core.Message{Role: core.RoleUser, Content: "delete my dentist appointment"}, got[1])
	assert.Equal(t, core.RoleAssistant, got[2].Role)
}

func TestNextMonday(t *testing.T) {
	fri := time.Date(2025, 6, 27, 0, 0, 0, 0, time.UTC)
	mon := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, mon, nextMonday(fri))
	assert.Equal(t, mon.AddDate(0, 0, 7), nextMonday(mon))
}
