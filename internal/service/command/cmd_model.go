package command

import (
	"context"
	"fmt"

	"github.com/sandevgo/calbot/internal/core"
)

type ModelCommand struct {
	cfg   core.ProviderConfig
	state core.GlobalState
}

func NewModelCommand(cfg core.ProviderConfig, state core.GlobalState) *ModelCommand {
	return &ModelCommand{cfg: cfg, state: state}
}

func (c *ModelCommand) Name() string {
	return "model"
}

func (c *ModelCommand) Description() string {
	return "Show or change the completion model"
}

func (c *ModelCommand) Execute(ctx context.Context, _ string, args []string) (string, error) {
	if len(args) == 0 {
		return newReply("Current Model").
			label("Provider", c.cfg.GetProvider()).
			label("Model", c.cfg.GetModel()).
			usage("/model [provider/]model").
			examples(
				"/model deepseek/deepseek-chat",
				"/model openai/gpt-4o-mini",
				"/model openrouter/anthropic/claude-3.5-haiku",
			).
			String(), nil
	}

	if err := c.state.ChangeModel(ctx, args[0]); err != nil {
		return "", fmt.Errorf("failed to set model: %w", err)
	}

	return success(fmt.Sprintf("Model changed to: `%s/%s`", c.cfg.GetProvider(), c.cfg.GetModel())), nil
}
