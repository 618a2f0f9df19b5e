package tui

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"dips-cli/internal/model"
	"dips-cli/internal/store"
)

const (
	msgNotApplicable = "input is not applicable in this mode"
	msgInvalidSubmit = "invalid submit state"
	msgConfirmOnlyY  = `only "y" is accepted to confirm`
)

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, globalKeys.ForceQuit) {
		m.state.Mode = ModeQuit
		return m, tea.Quit
	}
	if m.state.Mode == ModeQuit {
		return m, nil
	}
	if m.state.UI.Focus == FocusPrompt {
		return m, (&m).promptKey(msg)
	}
	return m, (&m).pageKey(msg)
}

func (m *Model) pageKey(msg tea.KeyMsg) tea.Cmd {
	switch m.state.UI.Page.(type) {
	case SplashPage:
		return nil
	case HelpPage:
		if key.Matches(msg, pageKeys.Back) {
			m.navigateBack()
		}
		return nil
	case DipsPage:
		switch {
		case key.Matches(msg, pageKeys.Delete):
			if row, ok := m.selectedDip(); ok {
				m.focusPrompt(ConfirmPrompt{Pending: DeleteCommand{DipID: row.ID, Value: row.Value}})
			}
			return nil
		case key.Matches(msg, pageKeys.Scopes):
			m.navigate(ScopesPage{})
			return nil
		case key.Matches(msg, pageKeys.Copy):
			if row, ok := m.selectedDip(); ok {
				return copyCmd(m.clipboard, row.Value)
			}
			return nil
		}
	case ScopesPage:
		if key.Matches(msg, pageKeys.Open) {
			if sc, ok := m.selectedScope(); ok {
				m.navigate(DipsPage{Scope: model.ScopeOf(&sc)})
			}
			return nil
		}
	}

	switch {
	case key.Matches(msg, pageKeys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, pageKeys.Down):
		m.moveCursor(1)
	case key.Matches(msg, pageKeys.Help):
		m.navigate(HelpPage{})
	case key.Matches(msg, pageKeys.Command):
		m.focusPrompt(InputPrompt{})
	case key.Matches(msg, pageKeys.Search):
		// Reopening a committed search resumes editing the query that is applied.
		m.focusPrompt(SearchPrompt{Buffer: pageQuery(m.state.UI.Page), Phase: SearchActive})
	case key.Matches(msg, pageKeys.Back):
		m.pageEscape()
	case key.Matches(msg, pageKeys.Quit):
		m.state.Mode = ModeQuit
		return tea.Quit
	}
	return nil
}

func (m *Model) promptKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, promptKeys.Cancel):
		m.defocusPrompt()
		return nil
	case key.Matches(msg, promptKeys.Submit):
		m.submit()
		return nil
	case key.Matches(msg, promptKeys.Backspace):
		m.editBuffer(func(s string) string {
			if s == "" {
				return s
			}
			_, size := utf8.DecodeLastRuneInString(s)
			return s[:len(s)-size]
		})
		return nil
	}

	switch msg.Type {
	case tea.KeyRunes, tea.KeySpace:
		text := string(msg.Runes)
		if text == "" {
			text = " "
		}
		m.editBuffer(func(s string) string { return s + text })
	}
	return nil
}

// navigate opens target in its initial state and remembers the current page as the
// single back page. The splash page is never remembered.
func (m *Model) navigate(target Page) {
	if _, splash := m.state.UI.Page.(SplashPage); !splash {
		m.state.UI.Back = &pageSnapshot{Page: m.state.UI.Page}
	}
	m.state.UI.Focus = FocusPage
	m.state.UI.Page = emptyPage(target)
	m.state.UI.Prompt = restingPrompt(m.state.UI.Page)
	m.fetchPage()
}

func (m *Model) navigateBack() {
	back := m.state.UI.Back
	if back == nil {
		m.log.Debug("navigate back without a remembered page")
		return
	}
	m.state.UI.Back = nil
	m.state.UI.Focus = FocusPage
	m.state.UI.Page = emptyPage(back.Page)
	m.state.UI.Prompt = restingPrompt(m.state.UI.Page)
	m.fetchPage()
}

// pageEscape clears a committed search or a lingering message before going back.
func (m *Model) pageEscape() {
	switch m.state.UI.Prompt.(type) {
	case SearchPrompt, MessagePrompt:
		m.state.UI.Prompt = restingPrompt(m.state.UI.Page)
		if pageQuery(m.state.UI.Page) != "" {
			m.setPageQuery("")
			m.fetchPage()
		}
		return
	}
	if pageQuery(m.state.UI.Page) != "" {
		m.setPageQuery("")
		m.fetchPage()
		return
	}
	m.navigateBack()
}

func restingPrompt(p Page) Prompt {
	if _, ok := p.(HelpPage); ok {
		return NavPrompt{}
	}
	return DefaultPrompt{}
}

func (m *Model) focusPrompt(p Prompt) {
	m.state.UI.Focus = FocusPrompt
	m.state.UI.Prompt = p
}

// defocusPrompt drops any uncommitted buffer. Leaving a live search also drops its filter.
func (m *Model) defocusPrompt() {
	search, ok := m.state.UI.Prompt.(SearchPrompt)
	liveSearch := ok && search.Phase == SearchActive

	m.state.UI.Focus = FocusPage
	m.state.UI.Prompt = restingPrompt(m.state.UI.Page)
	if liveSearch && pageQuery(m.state.UI.Page) != "" {
		m.setPageQuery("")
		m.fetchPage()
	}
}

func (m *Model) editBuffer(edit func(string) string) {
	switch p := m.state.UI.Prompt.(type) {
	case InputPrompt:
		p.Buffer = edit(p.Buffer)
		m.state.UI.Prompt = p
	case ConfirmPrompt:
		p.Buffer = edit(p.Buffer)
		m.state.UI.Prompt = p
	case SearchPrompt:
		if p.Phase != SearchActive {
			m.setMessage(SeverityDanger, msgNotApplicable)
			return
		}
		p.Buffer = edit(p.Buffer)
		m.state.UI.Prompt = p
		m.setPageQuery(p.Buffer)
		m.fetchPage()
	default:
		m.setMessage(SeverityDanger, msgNotApplicable)
	}
}

func (m *Model) submit() {
	switch p := m.state.UI.Prompt.(type) {
	case SearchPrompt:
		if p.Phase != SearchActive {
			m.setMessage(SeverityDanger, msgInvalidSubmit)
			return
		}
		// The query typed so far is already applied; committing hands the keys back to the list.
		p.Phase = SearchCommit
		m.state.UI.Prompt = p
		m.state.UI.Focus = FocusPage

	case InputPrompt:
		cmd, err := parseCommand(p.Buffer)
		if err != nil {
			m.setMessage(SeverityDanger, err.Error())
			return
		}
		if tag, ok := cmd.(TagCommand); ok {
			row, ok := m.selectedDip()
			if !ok {
				m.setMessage(SeverityDanger, "tag: no dip selected")
				return
			}
			tag.DipID = row.ID
			cmd = tag
		}
		m.defocusPrompt()
		m.execute(cmd)

	case ConfirmPrompt:
		if p.Buffer != "y" {
			m.setMessage(SeverityDanger, msgConfirmOnlyY)
			return
		}
		m.defocusPrompt()
		m.execute(p.Pending)

	default:
		m.setMessage(SeverityDanger, msgInvalidSubmit)
	}
}

// parseCommand reads "<verb> <argument>", splitting on the first space.
func parseCommand(buf string) (Command, error) {
	verb, rest, ok := strings.Cut(buf, " ")
	if !ok {
		return nil, fmt.Errorf("expected \"<command> <argument>\", got %q", buf)
	}
	rest = strings.TrimSpace(rest)
	switch verb {
	case "add":
		if rest == "" {
			return nil, errors.New("add: value must not be empty")
		}
		return AddCommand{Value: rest}, nil
	case "tag":
		if rest == "" {
			return nil, errors.New("tag: name must not be empty")
		}
		return TagCommand{Name: rest}, nil
	default:
		return nil, fmt.Errorf("unknown command %q (try add or tag)", verb)
	}
}

// execute hands cmd to the dispatcher. Its completion arrives later on the bus.
func (m *Model) execute(cmd Command) {
	switch c := cmd.(type) {
	case AddCommand:
		target := m.home
		if p, ok := m.state.UI.Page.(DipsPage); ok {
			target = p.Scope
		}
		in := store.NewDip{Value: c.Value}
		if target.IsGlobal() {
			loc := m.loc
			in.Location = &loc
		} else {
			in.ScopeID = target.ID()
		}
		m.disp.AddDip(in)
	case DeleteCommand:
		m.disp.DeleteDip(c.DipID, c.Value)
	case TagCommand:
		m.disp.TagDip(c.DipID, c.Name)
	}
}

func (m *Model) fetchPage() {
	switch p := m.state.UI.Page.(type) {
	case DipsPage:
		m.seq++
		p.Seq = m.seq
		m.state.UI.Page = p
		m.disp.FetchDips(p.Seq, p.Scope, p.Query)
	case ScopesPage:
		m.seq++
		p.Seq = m.seq
		m.state.UI.Page = p
		m.disp.FetchScopes(p.Seq, p.Query)
	}
}

func pageQuery(p Page) string {
	switch p := p.(type) {
	case DipsPage:
		return p.Query
	case ScopesPage:
		return p.Query
	}
	return ""
}

func (m *Model) setPageQuery(q string) {
	switch p := m.state.UI.Page.(type) {
	case DipsPage:
		p.Query = q
		m.state.UI.Page = p
	case ScopesPage:
		p.Query = q
		m.state.UI.Page = p
	}
}

func (m *Model) moveCursor(delta int) {
	switch p := m.state.UI.Page.(type) {
	case DipsPage:
		p.Cursor = clampCursor(p.Cursor+delta, len(p.IDs))
		m.state.UI.Page = p
	case ScopesPage:
		p.Cursor = clampCursor(p.Cursor+delta, len(p.IDs))
		m.state.UI.Page = p
	}
}

func clampCursor(c, n int) int {
	if n <= 0 || c < 0 {
		return 0
	}
	if c > n-1 {
		return n - 1
	}
	return c
}

func (m *Model) selectedDip() (model.DipRow, bool) {
	p, ok := m.state.UI.Page.(DipsPage)
	if !ok || p.Cursor < 0 || p.Cursor >= len(p.IDs) {
		return model.DipRow{}, false
	}
	row, ok := m.state.Data.Dips[p.IDs[p.Cursor]]
	return row, ok
}

func (m *Model) selectedScope() (model.Scope, bool) {
	p, ok := m.state.UI.Page.(ScopesPage)
	if !ok || p.Cursor < 0 || p.Cursor >= len(p.IDs) {
		return model.Scope{}, false
	}
	sc, ok := m.state.Data.Scopes[p.IDs[p.Cursor]]
	return sc, ok
}

func (m *Model) setMessage(sev Severity, text string) {
	m.state.UI.Prompt = MessagePrompt{Text: text, Severity: sev, At: m.now()}
}

// notify reports a background outcome. Info never replaces a prompt the user is typing in.
func (m *Model) notify(sev Severity, text string) {
	if sev == SeverityInfo && m.state.UI.Focus == FocusPrompt {
		switch m.state.UI.Prompt.(type) {
		case InputPrompt, SearchPrompt, ConfirmPrompt:
			m.log.Info("message suppressed while editing", zap.String("text", text))
			return
		}
	}
	m.setMessage(sev, text)
}

func (m *Model) expireMessage() {
	msg, ok := m.state.UI.Prompt.(MessagePrompt)
	if !ok || msg.Severity != SeverityInfo {
		return
	}
	if m.now().Sub(msg.At) < messageAutoClearAfter {
		return
	}
	m.state.UI.Prompt = restingPrompt(m.state.UI.Page)
	m.state.UI.Focus = FocusPage
}

func (m *Model) onScopeResolved(msg scopeResolvedMsg) {
	if msg.err != nil {
		m.log.Warn("resolve scope", zap.Error(msg.err))
	}
	m.home = model.ScopeOf(msg.scope)
	if _, splash := m.state.UI.Page.(SplashPage); splash {
		m.navigate(DipsPage{Scope: m.home})
	}
	if msg.err != nil {
		m.notify(SeverityDanger, userMessage("resolve scope", msg.err))
	}
}

func (m *Model) onDipsLoaded(msg dipsLoadedMsg) {
	p, ok := m.state.UI.Page.(DipsPage)
	if !ok || p.Seq != msg.seq || !p.Scope.Same(msg.scope) {
		m.log.Debug("dropped stale dips result", zap.Int("seq", msg.seq))
		return
	}
	if msg.err != nil {
		m.notify(SeverityDanger, userMessage("load dips", msg.err))
		return
	}
	dips := make(map[string]model.DipRow, len(msg.rows))
	ids := make([]string, 0, len(msg.rows))
	for _, r := range msg.rows {
		dips[r.ID] = r
		ids = append(ids, r.ID)
	}
	m.state.Data.Dips = dips
	p.IDs = ids
	p.Cursor = clampCursor(p.Cursor, len(ids))
	m.state.UI.Page = p
}

func (m *Model) onScopesLoaded(msg scopesLoadedMsg) {
	p, ok := m.state.UI.Page.(ScopesPage)
	if !ok || p.Seq != msg.seq {
		m.log.Debug("dropped stale scopes result", zap.Int("seq", msg.seq))
		return
	}
	if msg.err != nil {
		m.notify(SeverityDanger, userMessage("load scopes", msg.err))
		return
	}
	scopes := make(map[string]model.Scope, len(msg.scopes))
	ids := make([]string, 0, len(msg.scopes))
	for _, sc := range msg.scopes {
		scopes[sc.ID] = sc
		ids = append(ids, sc.ID)
	}
	m.state.Data.Scopes = scopes
	p.IDs = ids
	p.Cursor = clampCursor(p.Cursor, len(ids))
	m.state.UI.Page = p
}

func (m *Model) onDipAdded(msg dipAddedMsg) {
	if msg.err != nil {
		m.notify(SeverityDanger, userMessage("add", msg.err))
		return
	}
	// A Global page that just created a scope for this directory switches to it.
	if sc := msg.dip.Scope; sc != nil {
		if p, ok := m.state.UI.Page.(DipsPage); ok && p.Scope.IsGlobal() {
			p.Scope = model.ScopeOf(sc)
			m.state.UI.Page = p
		}
		if m.home.IsGlobal() {
			m.home = model.ScopeOf(sc)
		}
	}
	m.notify(SeverityInfo, fmt.Sprintf("added %q", msg.dip.Value))
	m.fetchPage()
}

func (m *Model) onDipDeleted(msg dipDeletedMsg) {
	if msg.err != nil {
		m.notify(SeverityDanger, userMessage("delete", msg.err))
		return
	}
	if msg.n == 0 {
		m.notify(SeverityInfo, fmt.Sprintf("%q was already deleted", msg.value))
	} else {
		m.notify(SeverityInfo, fmt.Sprintf("deleted %q", msg.value))
	}
	m.fetchPage()
}

func (m *Model) onDipTagged(msg dipTaggedMsg) {
	if msg.err != nil {
		m.notify(SeverityDanger, userMessage("tag", msg.err))
		return
	}
	m.notify(SeverityInfo, fmt.Sprintf("tagged %q", msg.name))
	m.fetchPage()
}

func userMessage(op string, err error) string {
	switch {
	case errors.Is(err, store.ErrDuplicateDip):
		return op + ": dip already exists in this scope"
	case errors.Is(err, store.ErrDipNotFound):
		return op + ": dip no longer exists"
	case errors.Is(err, store.ErrEmptyValue):
		return op + ": value must not be empty"
	}
	return op + ": " + err.Error()
}

func copyCmd(write func(string) error, value string) tea.Cmd {
	return func() tea.Msg {
		return clipboardMsg{value: value, err: write(value)}
	}
}
