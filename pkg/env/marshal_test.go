package env

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name     string        `env:"APP_NAME"`
	Enabled  bool          `env:"APP_ENABLED"`
	Timeout  time.Duration `env:"APP_TIMEOUT"`
	Ratio    float64       `env:"APP_RATIO"`
	APIKey   string        `env:"APP_API_KEY,required,notEmpty"`
	Empty    string        `env:"APP_EMPTY"`
	Untagged string
	hidden   string `env:"APP_HIDDEN"`
}

func TestMarshalEnv(t *testing.T) {
	s := &sample{
		Name:     "calbot",
		Enabled:  true,
		Timeout:  30 * time.Second,
		Ratio:    0.7,
		APIKey:   "sk-123",
		Untagged: "ignored",
		hidden:   "ignored",
	}

	out, err := MarshalEnv(s)
	require.NoError(t, err)
	assert.Equal(t, "APP_NAME=calbot\nAPP_ENABLED=true\nAPP_TIMEOUT=30s\nAPP_RATIO=0.7\nAPP_API_KEY=sk-123\n", out)
}

func TestMarshalEnv_MaskSecrets(t *testing.T) {
	out, err := MarshalEnv(&sample{Name: "calbot", APIKey: "sk-123"}, MaskSecrets())
	require.NoError(t, err)
	assert.Equal(t, "APP_NAME=calbot\nAPP_API_KEY=********\n", out)
}

func TestMarshalEnv_RejectsNonPointer(t *testing.T) {
	_, err := MarshalEnv(sample{})
	assert.Error(t, err)
}

func TestMarshalEnv_Empty(t *testing.T) {
	out, err := MarshalEnv(&sample{})
	require.NoError(t, err)
	assert.Empty(t, out)
}
