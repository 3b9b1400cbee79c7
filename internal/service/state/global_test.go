package state

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSwitcher struct {
	model string
	err   error
}

func (f *fakeSwitcher) SetModel(_ context.Context, model string) error {
	if f.err != nil {
		return f.err
	}
	f.model = model
	return nil
}

func (f *fakeSwitcher) GetModel() string { return f.model }

func TestChangeModel(t *testing.T) {
	sw := &fakeSwitcher{model: "deepseek-chat"}
	s := NewGlobalState(sw)

	require.NoError(t, s.ChangeModel(context.Background(), "deepseek-reasoner"))
	assert.Equal(t, "deepseek-reasoner", sw.model)

	sw.err = errors.New("missing api key")
	assert.EqualError(t, s.ChangeModel(context.Background(), "openai/gpt-4o"), "missing api key")
	assert.Equal(t, "deepseek-reasoner", sw.model)
}
