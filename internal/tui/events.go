package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"dips-cli/internal/model"
	"dips-cli/internal/store"
)

const tickInterval = 200 * time.Millisecond

// messageAutoClearAfter is how long an Info message stays in the prompt.
const messageAutoClearAfter = 3 * time.Second

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

type dipsLoadedMsg struct {
	seq   int
	scope model.ScopeRef
	query string
	rows  []model.DipRow
	err   error
}

type scopesLoadedMsg struct {
	seq    int
	query  string
	scopes []model.Scope
	err    error
}

type scopeResolvedMsg struct {
	scope *model.Scope
	err   error
}

type dipAddedMsg struct {
	dip store.CreatedDip
	err error
}

type dipDeletedMsg struct {
	id    string
	value string
	n     int64
	err   error
}

type dipTaggedMsg struct {
	dipID string
	name  string
	err   error
}

type clipboardMsg struct {
	value string
	err   error
}
