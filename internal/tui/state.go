package tui

import (
	"time"

	"dips-cli/internal/model"
)

type Mode int

const (
	ModeRunning Mode = iota
	ModeQuit
)

// Focus decides which keymap layer receives key presses.
type Focus int

const (
	FocusPage Focus = iota
	FocusPrompt
)

// AppState is owned by the controller and only mutated inside Update.
type AppState struct {
	Mode Mode
	UI   UIState
	Data DataState
}

type UIState struct {
	Page   Page
	Prompt Prompt
	Focus  Focus
	// Back holds at most one remembered page. There is no deeper history.
	Back *pageSnapshot
}

type pageSnapshot struct {
	Page Page
}

// DataState caches the last fetched rows, keyed by id.
type DataState struct {
	Dips   map[string]model.DipRow
	Scopes map[string]model.Scope
}

func newAppState() AppState {
	return AppState{
		Mode: ModeRunning,
		UI: UIState{
			Page:   SplashPage{},
			Prompt: DefaultPrompt{},
			Focus:  FocusPage,
		},
		Data: DataState{
			Dips:   map[string]model.DipRow{},
			Scopes: map[string]model.Scope{},
		},
	}
}

// Page is one of SplashPage, DipsPage, ScopesPage or HelpPage.
type Page interface{ isPage() }

type SplashPage struct{}

type DipsPage struct {
	Scope  model.ScopeRef
	Cursor int
	IDs    []string
	Query  string
	// Seq is the request number of the latest fetch issued for this page.
	Seq int
}

type ScopesPage struct {
	Cursor int
	IDs    []string
	Query  string
	Seq    int
}

type HelpPage struct{}

func (SplashPage) isPage() {}
func (DipsPage) isPage()   {}
func (ScopesPage) isPage() {}
func (HelpPage) isPage()   {}

// emptyPage returns the initial state of p's page type, keeping only its identity.
func emptyPage(p Page) Page {
	switch p := p.(type) {
	case DipsPage:
		return DipsPage{Scope: p.Scope}
	case ScopesPage:
		return ScopesPage{}
	case HelpPage:
		return HelpPage{}
	default:
		return SplashPage{}
	}
}

// Prompt is one of DefaultPrompt, NavPrompt, InputPrompt, SearchPrompt, ConfirmPrompt
// or MessagePrompt.
type Prompt interface{ isPrompt() }

type DefaultPrompt struct{}

// NavPrompt is shown while the help page is open.
type NavPrompt struct{}

type InputPrompt struct {
	Buffer string
}

type SearchPhase int

const (
	SearchActive SearchPhase = iota
	SearchCommit
)

type SearchPrompt struct {
	Buffer string
	Phase  SearchPhase
}

type ConfirmPrompt struct {
	Buffer  string
	Pending Command
}

type Severity int

const (
	SeverityInfo Severity = iota
	SeverityDanger
)

type MessagePrompt struct {
	Text     string
	Severity Severity
	At       time.Time
}

func (DefaultPrompt) isPrompt() {}
func (NavPrompt) isPrompt()     {}
func (InputPrompt) isPrompt()   {}
func (SearchPrompt) isPrompt()  {}
func (ConfirmPrompt) isPrompt() {}
func (MessagePrompt) isPrompt() {}

// Command is one of AddCommand, DeleteCommand or TagCommand.
type Command interface{ isCommand() }

type AddCommand struct {
	Value string
}

type DeleteCommand struct {
	DipID string
	Value string
}

type TagCommand struct {
	DipID string
	Name  string
}

func (AddCommand) isCommand()    {}
func (DeleteCommand) isCommand() {}
func (TagCommand) isCommand()    {}
