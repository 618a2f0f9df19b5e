package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"dips-cli/internal/model"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

func (m Model) View() string {
	if m.state.Mode == ModeQuit {
		return ""
	}
	w, h := m.width, m.height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}

	header := m.viewHeader(w)
	prompt := m.viewPrompt(w)
	footer := m.help.View(contextKeys(m.state.UI.Page, m.state.UI.Focus))

	bodyH := h - lipgloss.Height(header) - lipgloss.Height(prompt) - lipgloss.Height(footer)
	if bodyH < 1 {
		bodyH = 1
	}
	body := lipgloss.NewStyle().Height(bodyH).MaxHeight(bodyH).Render(m.viewBody(w, bodyH))

	return lipgloss.JoinVertical(lipgloss.Left, header, body, prompt, footer)
}

func (m Model) viewHeader(w int) string {
	var title string
	switch p := m.state.UI.Page.(type) {
	case DipsPage:
		title = fmt.Sprintf("Dips · %s (%d)", p.Scope.Label(), len(p.IDs))
		if p.Query != "" {
			title += fmt.Sprintf(" · /%s", p.Query)
		}
	case ScopesPage:
		title = fmt.Sprintf("Scopes (%d)", len(p.IDs))
		if p.Query != "" {
			title += fmt.Sprintf(" · /%s", p.Query)
		}
	case HelpPage:
		title = "Help"
	default:
		title = "dips"
	}
	return styleHeader().Width(w).Render(xansi.Truncate(title, w-2, "…"))
}

func (m Model) viewBody(w, h int) string {
	switch p := m.state.UI.Page.(type) {
	case DipsPage:
		rows := renderDipRows(p, m.state.Data.Dips, w)
		if len(rows) == 0 {
			return styleMuted().Render(emptyDipsHint(p))
		}
		return strings.Join(window(rows, p.Cursor, h), "\n")
	case ScopesPage:
		rows := renderScopeRows(p, m.state.Data.Scopes, w)
		if len(rows) == 0 {
			return styleMuted().Render("No scopes stored yet. Adding a dip creates one.")
		}
		return strings.Join(window(rows, p.Cursor, h), "\n")
	case HelpPage:
		return renderMarkdown(helpMarkdown(), w)
	default:
		splash := lipgloss.JoinVertical(lipgloss.Center,
			lipgloss.NewStyle().Bold(true).Render("dips"),
			styleMuted().Render("resolving scope…"),
		)
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, splash)
	}
}

func emptyDipsHint(p DipsPage) string {
	if p.Query != "" {
		return fmt.Sprintf("No dips match %q.", p.Query)
	}
	return "No dips here yet. Press : and type add <value>."
}

// window keeps the cursor row visible within h lines.
func window(rows []string, cursor, h int) []string {
	if h <= 0 || len(rows) <= h {
		return rows
	}
	start := cursor - h + 1
	if start < 0 {
		start = 0
	}
	return rows[start : start+h]
}

// renderDipRows returns one line per listed dip. Rows missing from the cache are skipped.
func renderDipRows(p DipsPage, dips map[string]model.DipRow, w int) []string {
	out := make([]string, 0, len(p.IDs))
	for i, id := range p.IDs {
		d, ok := dips[id]
		if !ok {
			continue
		}
		line := d.Value
		if d.GroupName != "" {
			line += "  " + styleMuted().Render("("+d.GroupName+")")
		}
		if len(d.Tags) > 0 {
			line += "  " + styleTag().Render("#"+strings.Join(d.Tags, " #"))
		}
		out = append(out, renderRow(line, i == p.Cursor, w))
	}
	return out
}

func renderScopeRows(p ScopesPage, scopes map[string]model.Scope, w int) []string {
	out := make([]string, 0, len(p.IDs))
	for i, id := range p.IDs {
		sc, ok := scopes[id]
		if !ok {
			continue
		}
		line := sc.DirPath
		if sc.GitRemote != nil {
			line += "  " + styleMuted().Render(*sc.GitRemote)
		}
		out = append(out, renderRow(line, i == p.Cursor, w))
	}
	return out
}

func renderRow(line string, selected bool, w int) string {
	line = xansi.Truncate(line, w-2, "…")
	if selected {
		return styleSelected().Width(w).Render("> " + xansi.Strip(line))
	}
	return "  " + line
}

func (m Model) viewPrompt(w int) string {
	focused := m.state.UI.Focus == FocusPrompt
	switch p := m.state.UI.Prompt.(type) {
	case InputPrompt:
		return renderInputLine(w, ":", p.Buffer, focused)
	case SearchPrompt:
		return renderInputLine(w, "/", p.Buffer, focused && p.Phase == SearchActive)
	case ConfirmPrompt:
		return renderInputLine(w, confirmLabel(p.Pending), p.Buffer, focused)
	case MessagePrompt:
		return styleMessage(p.Severity).Render(xansi.Truncate(p.Text, w, "…"))
	case NavPrompt:
		return styleMuted().Render("esc: back")
	default:
		return styleMuted().Render(": command  / search  ? help")
	}
}

func confirmLabel(c Command) string {
	switch c := c.(type) {
	case DeleteCommand:
		return fmt.Sprintf("delete %q? type y to confirm: ", c.Value)
	case AddCommand:
		return fmt.Sprintf("add %q? type y to confirm: ", c.Value)
	case TagCommand:
		return fmt.Sprintf("tag %q? type y to confirm: ", c.Name)
	}
	return "confirm? "
}
