package command

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/sandevgo/calbot/internal/core"
)

const maxModelsShown = 25

type modelLister interface {
	Models(ctx context.Context) ([]core.Model, error)
}

// ModelsCommand lists what the active provider offers, optionally filtered.
type ModelsCommand struct {
	ai modelLister
}

func NewModelsCommand(ai modelLister) *ModelsCommand {
	return &ModelsCommand{ai: ai}
}

func (c *ModelsCommand) Name() string {
	return "models"
}

func (c *ModelsCommand) Description() string {
	return "List models of the current provider"
}

func (c *ModelsCommand) Execute(ctx context.Context, _ string, args []string) (string, error) {
	models, err := c.ai.Models(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list models: %w", err)
	}

	filter := strings.ToLower(strings.Join(args, " "))
	var items []string
	for _, m := range models {
		if filter != "" && !strings.Contains(strings.ToLower(m.ID), filter) {
			continue
		}
		item := fmt.Sprintf("`%s`", m.ID)
		if m.ContextLength > 0 {
			item += fmt.Sprintf(" (%dk)", m.ContextLength/1000)
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		return newReply("Models").add("No models found.").String(), nil
	}

	total := len(items)
	if total > maxModelsShown {
		items = items[:maxModelsShown]
	}
	return newReply("Models").
		label("Found", strconv.Itoa(total)).
		list(items).
		tip("narrow the list with /models <text> and switch with /model <id>").
		String(), nil
}
