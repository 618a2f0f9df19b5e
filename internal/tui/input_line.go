package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// renderInputLine draws a one-line text field holding value, with the cursor at the end.
func renderInputLine(width int, prompt, value string, focused bool) string {
	if width < 10 {
		width = 10
	}

	ti := textinput.New()
	ti.Prompt = prompt
	ti.SetValue(value)
	ti.CursorEnd()
	if focused {
		_ = ti.Focus()
	} else {
		ti.Blur()
	}
	view := ti.View()

	// The prompt must never wrap; a newline here would look like the buffer grew a line.
	view = strings.ReplaceAll(view, "\n", " ")
	view = strings.ReplaceAll(view, "\r", " ")

	line := lipgloss.PlaceHorizontal(
		width,
		lipgloss.Left,
		view,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(colorInputBg),
	)
	if xansi.StringWidth(line) > width {
		line = xansi.Cut(line, 0, width) + "\x1b[0m"
	}
	return line
}
