// Package ui holds terminal styles shared by the CLI help and the installer.
package ui

import "github.com/charmbracelet/lipgloss"

var (
	// TitleStyle uses ANSI 6 (cyan), readable on light and dark terminals.
	TitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true).MarginBottom(1)

	// UsageStyle uses ANSI 2 (green) for commands and arguments.
	UsageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	// DescStyle uses ANSI 8 (gray) so descriptions stay quieter than commands.
	DescStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	// FlagStyle uses ANSI 3 (yellow).
	FlagStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	// ReplyStyle prefixes assistant output in the CLI.
	ReplyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
)
