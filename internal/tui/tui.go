package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"dips-cli/internal/model"
)

// Run starts the interactive session and blocks until the user quits.
func Run(gw Gateway, loc model.Location, log *zap.Logger) error {
	applyColorProfilePreference()
	applyThemePreference()

	m := NewModel(gw, loc, log)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
