package installer

import (
	tea "github.com/charmbracelet/bubbletea"
)

// FinalizationStep derives transport flags and fills defaults.
type FinalizationStep struct{}

func NewFinalizationStep() Step {
	return &FinalizationStep{}
}

func (s *FinalizationStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *FinalizationStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	finalize(state)
	return nil, nil
}

func finalize(state *InstallState) {
	state.EnvVars[envEnableTelegram] = "false"
	state.EnvVars[envEnableCLI] = "true"
	switch state.EnvVars[envChannel] {
	case "telegram":
		state.EnvVars[envEnableTelegram] = "true"
		state.EnvVars[envEnableCLI] = "false"
	case "both":
		state.EnvVars[envEnableTelegram] = "true"
	}

	if state.EnvVars[envCalendarBackend] == "" {
		state.EnvVars[envCalendarBackend] = "local"
	}
	if state.EnvVars[envDebug] == "" {
		state.EnvVars[envDebug] = "0"
	}

	delete(state.EnvVars, envChannel)
}

func (s *FinalizationStep) View(state *InstallState) string {
	return "Finalizing configuration...\n"
}
