package core

import "context"

// CmdRouter intercepts slash commands. Execute reports false for anything
// that should go to the assistant instead.
type CmdRouter interface {
	Execute(ctx context.Context, userID, input string) (string, bool)
	ListCommands() []Command
}

type Command interface {
	Name() string
	Description() string
	Execute(ctx context.Context, userID string, args []string) (string, error)
}
