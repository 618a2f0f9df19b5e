package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

type globalKeyMap struct {
	ForceQuit key.Binding
}

type pageKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Help    key.Binding
	Command key.Binding
	Search  key.Binding
	Back    key.Binding
	Quit    key.Binding

	// Dips page only.
	Delete key.Binding
	Scopes key.Binding
	Copy   key.Binding

	// Scopes page only.
	Open key.Binding
}

type promptKeyMap struct {
	Cancel    key.Binding
	Submit    key.Binding
	Backspace key.Binding
}

var (
	globalKeys = globalKeyMap{
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "force quit")),
	}

	pageKeys = pageKeyMap{
		Up:      key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:    key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Command: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command")),
		Search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:    key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Scopes:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "scopes")),
		Copy:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	}

	promptKeys = promptKeyMap{
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Backspace: key.NewBinding(key.WithKeys("backspace"), key.WithHelp("backspace", "delete char")),
	}
)

// bindingHelp adapts a flat binding list to help.KeyMap.
type bindingHelp []key.Binding

func (b bindingHelp) ShortHelp() []key.Binding { return b }

func (b bindingHelp) FullHelp() [][]key.Binding { return [][]key.Binding{b} }

// contextKeys lists the bindings that are live for the given page and focus.
func contextKeys(page Page, focus Focus) bindingHelp {
	if focus == FocusPrompt {
		return bindingHelp{promptKeys.Submit, promptKeys.Cancel}
	}
	switch page.(type) {
	case DipsPage:
		return bindingHelp{
			pageKeys.Up, pageKeys.Down, pageKeys.Command, pageKeys.Search,
			pageKeys.Delete, pageKeys.Copy, pageKeys.Scopes, pageKeys.Help, pageKeys.Quit,
		}
	case ScopesPage:
		return bindingHelp{
			pageKeys.Up, pageKeys.Down, pageKeys.Open, pageKeys.Search,
			pageKeys.Back, pageKeys.Help, pageKeys.Quit,
		}
	case HelpPage:
		return bindingHelp{pageKeys.Back}
	default:
		return bindingHelp{globalKeys.ForceQuit}
	}
}
