package command

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sandevgo/calbot/internal/core"
	"github.com/sandevgo/calbot/pkg/log"
)

// Router handles slash commands before a message reaches the engine.
type Router struct {
	commands map[string]core.Command
}

// New registers commands and a built-in /help listing them.
func New(commands []core.Command) *Router {
	r := &Router{
		commands: make(map[string]core.Command, len(commands)+1),
	}
	for _, cmd := range commands {
		r.commands[cmd.Name()] = cmd
	}
	help := NewHelpCommand(r)
	r.commands[help.Name()] = help
	return r
}

// Execute runs input when it is a slash command. The second result is false
// for regular chat messages.
func (r *Router) Execute(ctx context.Context, userID, input string) (string, bool) {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") {
		return "", false
	}

	parts := strings.Fields(input)
	name := strings.ToLower(strings.TrimPrefix(parts[0], "/"))
	// Telegram appends the bot name in groups: /help@calbot
	name, _, _ = strings.Cut(name, "@")

	cmd, ok := r.commands[name]
	if !ok {
		return fmt.Sprintf("Unknown command: /%s\nSend /help to see what is available.", name), true
	}

	result, err := cmd.Execute(ctx, userID, parts[1:])
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Str("command", name).Msg("command failed")
		return fmt.Sprintf("Error: %v", err), true
	}
	return result, true
}

// ListCommands returns the registered commands sorted by name.
func (r *Router) ListCommands() []core.Command {
	res := make([]core.Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		res = append(res, cmd)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name() < res[j].Name() })
	return res
}
