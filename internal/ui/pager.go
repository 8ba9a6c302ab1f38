package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

type pagerModel struct {
	viewport viewport.Model
	title    string
	content  string
	ready    bool
	maxWidth int // 0 = no limit
	width    int
	height   int
	theme    Theme
}

func (m pagerModel) Init() tea.Cmd {
	return nil
}

func (m pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// title + footer
		vh := max(msg.Height-2, 1)
		if !m.ready {
			m.viewport = viewport.New(m.contentWidth(), vh)
			m.ready = true
		} else {
			m.viewport.Width = m.contentWidth()
			m.viewport.Height = vh
		}
		m.viewport.SetContent(m.content)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m pagerModel) contentWidth() int {
	if m.maxWidth > 0 && m.width > m.maxWidth {
		return m.maxWidth
	}
	return m.width
}

func (m pagerModel) View() string {
	if !m.ready {
		return "Loading..."
	}
	cw := m.contentWidth()
	header := m.theme.HeaderStyle().Width(cw).Render(m.title)
	footer := m.theme.HelpStyle().Width(cw).Render(
		fmt.Sprintf("↑/↓ scroll • q quit    %3.f%%", m.viewport.ScrollPercent()*100))
	return m.theme.PaintScreen(header+"\n"+m.viewport.View()+"\n"+footer, m.width, m.height, cw)
}

// Pager writes long output through a scrolling viewport when stdout is a
// terminal too short for it.
type Pager struct {
	Title    string
	MaxWidth int
	Theme    Theme
}

// Output writes content to w. Content goes through the pager only when w is
// stdout on a terminal and does not fit; JSON is never paged.
func (p Pager) Output(w io.Writer, content string, jsonOutput bool) error {
	if jsonOutput || w != os.Stdout || !term.IsTerminal(int(os.Stdout.Fd())) {
		_, err := fmt.Fprint(w, content)
		return err
	}

	_, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || strings.Count(content, "\n")+1 <= height-2 {
		_, err := fmt.Fprint(w, content)
		return err
	}

	m := pagerModel{title: p.Title, content: content, maxWidth: p.MaxWidth, theme: p.Theme}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
