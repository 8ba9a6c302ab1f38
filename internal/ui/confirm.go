package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type confirmModel struct {
	prompt    string
	detail    string
	confirmed bool
	done      bool
	theme     Theme
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch strings.ToLower(msg.String()) {
		case "y":
			m.confirmed = true
			m.done = true
			return m, tea.Quit
		case "n", "enter", "esc", "ctrl+c":
			m.confirmed = false
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	if m.detail != "" {
		b.WriteString(m.theme.HelpStyle().Render(m.detail))
		b.WriteString("\n")
	}
	promptStyle := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Primary)
	fmt.Fprintf(&b, "%s %s ", promptStyle.Render(m.prompt), m.theme.DangerStyle().Render("[y/N]"))
	return b.String()
}

// Confirm asks a yes/no question, defaulting to no. detail is shown muted
// above the prompt when non-empty.
func Confirm(prompt, detail string, theme Theme) (bool, error) {
	m := confirmModel{prompt: prompt, detail: detail, theme: theme}
	result, err := tea.NewProgram(m).Run()
	if err != nil {
		return false, err
	}
	return result.(confirmModel).confirmed, nil
}
