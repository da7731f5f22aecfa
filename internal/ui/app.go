package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/truthlens/truthlens/internal/api"
)

// Run starts the interactive viewer against the given backend client.
func Run(client *api.Client, themeName string) error {
	if themeName != "" {
		SetThemeByName(themeName)
	}
	model := NewModel(client)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
