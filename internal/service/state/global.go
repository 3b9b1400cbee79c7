// Package state holds process-wide settings changed at runtime by commands.
package state

import (
	"context"

	"github.com/sandevgo/calbot/pkg/log"
)

type modelSwitcher interface {
	SetModel(ctx context.Context, model string) error
	GetModel() string
}

type GlobalState struct {
	provider modelSwitcher
}

func NewGlobalState(provider modelSwitcher) *GlobalState {
	return &GlobalState{provider: provider}
}

func (s *GlobalState) ChangeModel(ctx context.Context, model string) error {
	prev := s.provider.GetModel()
	if err := s.provider.SetModel(ctx, model); err != nil {
		return err
	}

	log.FromCtx(ctx).Info().
		Str("from", prev).
		Str("to", s.provider.GetModel()).
		Msg("model changed")
	return nil
}
