package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"dips-cli/internal/model"
)

const busSize = 64

// Model is the application controller. It is the only reader of the bus and the only
// writer of AppState.
type Model struct {
	state AppState

	bus  *Bus
	disp *Dispatcher
	log  *zap.Logger

	// loc is where the session was started; home is the scope it resolved to.
	loc  model.Location
	home model.ScopeRef

	// seq numbers page fetches so late results can be recognized.
	seq int

	width  int
	height int
	help   help.Model

	now       func() time.Time
	clipboard func(string) error
}

func NewModel(gw Gateway, loc model.Location, log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}
	bus := NewBus(busSize)
	return Model{
		state:     newAppState(),
		bus:       bus,
		disp:      NewDispatcher(gw, bus, log),
		log:       log,
		loc:       loc,
		home:      model.Global,
		help:      help.New(),
		now:       time.Now,
		clipboard: copyToClipboard,
	}
}

// State returns a copy of the controller state.
func (m Model) State() AppState { return m.state }

func (m Model) Init() tea.Cmd {
	m.disp.ResolveScope(m.loc)
	return tea.Batch(m.bus.Listen(), tick())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case busMsg:
		next, cmd := m.Update(msg.msg)
		return next, tea.Batch(cmd, m.bus.Listen())

	case tickMsg:
		(&m).expireMessage()
		return m, tick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)

	case scopeResolvedMsg:
		(&m).onScopeResolved(msg)
		return m, nil

	case dipsLoadedMsg:
		(&m).onDipsLoaded(msg)
		return m, nil

	case scopesLoadedMsg:
		(&m).onScopesLoaded(msg)
		return m, nil

	case dipAddedMsg:
		(&m).onDipAdded(msg)
		return m, nil

	case dipDeletedMsg:
		(&m).onDipDeleted(msg)
		return m, nil

	case dipTaggedMsg:
		(&m).onDipTagged(msg)
		return m, nil

	case clipboardMsg:
		if msg.err != nil {
			(&m).notify(SeverityDanger, userMessage("copy", msg.err))
		} else {
			(&m).notify(SeverityInfo, "copied to clipboard")
		}
		return m, nil
	}
	return m, nil
}
