package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// noteRenderer is reused while width and style stay the same.
var (
	noteRenderer *glamour.TermRenderer
	noteWidth    int
	noteStyle    string
)

func noteRendererFor(width int, style string) (*glamour.TermRenderer, error) {
	if width < 1 {
		width = 80
	}
	if style == "" {
		style = "light"
	}
	if noteRenderer != nil && width == noteWidth && style == noteStyle {
		return noteRenderer, nil
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	noteRenderer, noteWidth, noteStyle = r, width, style
	return r, nil
}

// RenderNote renders an event note as markdown with the given glamour style
// ("light", "dark", "notty", ...). The raw note is returned if rendering fails.
func RenderNote(note string, width int, style string) string {
	if strings.TrimSpace(note) == "" {
		return ""
	}
	r, err := noteRendererFor(width, style)
	if err != nil {
		return note
	}
	rendered, err := r.Render(note)
	if err != nil {
		return note
	}
	return strings.Trim(rendered, "\n")
}
