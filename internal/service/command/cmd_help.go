package command

import (
	"context"
	"fmt"

	"github.com/sandevgo/calbot/internal/core"
)

type lister interface {
	ListCommands() []core.Command
}

type HelpCommand struct {
	router lister
}

func NewHelpCommand(router lister) *HelpCommand {
	return &HelpCommand{router: router}
}

func (c *HelpCommand) Name() string {
	return "help"
}

func (c *HelpCommand) Description() string {
	return "List available commands"
}

func (c *HelpCommand) Execute(_ context.Context, _ string, _ []string) (string, error) {
	var items []string
	for _, cmd := range c.router.ListCommands() {
		items = append(items, fmt.Sprintf("**/%s** %s", cmd.Name(), cmd.Description()))
	}

	return newReply("Commands").
		list(items).
		tip("anything else is read as a calendar request, e.g. \"lunch with Sam tomorrow at noon\"").
		String(), nil
}
