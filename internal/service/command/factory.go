package command

import (
	"github.com/sandevgo/calbot/internal/core"
)

func NewCommands(
	cfg core.ProviderConfig,
	state core.GlobalState,
	ai core.AIProvider,
	history historyReader,
) []core.Command {
	return []core.Command{
		NewModelCommand(cfg, state),
		NewModelsCommand(ai),
		NewHistoryCommand(history),
	}
}
