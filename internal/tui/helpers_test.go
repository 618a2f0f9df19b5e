package tui

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"dips-cli/internal/model"
	"dips-cli/internal/store"
)

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func apply(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		m = apply(t, m, keyPress(k))
	}
	return m
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m = apply(t, m, keyPress(string(r)))
	}
	return m
}

// recv waits for the next dispatcher completion.
func recv(t *testing.T, m Model) tea.Msg {
	t.Helper()
	select {
	case msg := <-m.bus.ch:
		return msg
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for a bus message")
		return nil
	}
}

// settle applies the next completion, which must be of type T.
func settle[T tea.Msg](t *testing.T, m Model) Model {
	t.Helper()
	msg := recv(t, m)
	if _, ok := msg.(T); !ok {
		var want T
		t.Fatalf("expected %T on the bus, got %T (%+v)", want, msg, msg)
	}
	return apply(t, m, msg)
}

func assertQuiet(t *testing.T, m Model) {
	t.Helper()
	select {
	case msg := <-m.bus.ch:
		t.Fatalf("unexpected bus message %T (%+v)", msg, msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "dips.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// startModel runs Init and applies the startup resolve and the first dips fetch.
func startModel(t *testing.T, gw Gateway, path string) Model {
	t.Helper()
	m := NewModel(gw, model.Location{Path: path}, nil)
	m.clipboard = func(string) error { return nil }
	_ = m.Init()
	m = settle[scopeResolvedMsg](t, m)
	m = settle[dipsLoadedMsg](t, m)
	return m
}

func dipsPage(t *testing.T, m Model) DipsPage {
	t.Helper()
	p, ok := m.state.UI.Page.(DipsPage)
	if !ok {
		t.Fatalf("expected dips page, got %T", m.state.UI.Page)
	}
	return p
}

func message(t *testing.T, m Model) MessagePrompt {
	t.Helper()
	p, ok := m.state.UI.Prompt.(MessagePrompt)
	if !ok {
		t.Fatalf("expected message prompt, got %T (%+v)", m.state.UI.Prompt, m.state.UI.Prompt)
	}
	return p
}

func listedValues(m Model) []string {
	p, ok := m.state.UI.Page.(DipsPage)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(p.IDs))
	for _, id := range p.IDs {
		out = append(out, m.state.Data.Dips[id].Value)
	}
	return out
}

// fakeGateway serves a fixed dip list and counts calls.
type fakeGateway struct {
	mu    sync.Mutex
	dips  []model.DipRow
	calls map[string]int
	err   error
}

func newFakeGateway(values ...string) *fakeGateway {
	g := &fakeGateway{calls: map[string]int{}}
	for i, v := range values {
		g.dips = append(g.dips, model.DipRow{Dip: model.Dip{ID: "d" + string(rune('0'+i)), Value: v, Tags: []string{}}})
	}
	return g
}

func (g *fakeGateway) count(op string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls[op]
}

func (g *fakeGateway) hit(op string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls[op]++
	return g.err
}

func (g *fakeGateway) ListDips(_ context.Context, f store.DipsFilter) ([]model.DipRow, error) {
	if err := g.hit("list_dips"); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []model.DipRow
	for _, d := range g.dips {
		if strings.Contains(strings.ToLower(d.Value), strings.ToLower(f.Search)) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (g *fakeGateway) ListScopes(context.Context, store.ScopesFilter) ([]model.Scope, error) {
	return nil, g.hit("list_scopes")
}

func (g *fakeGateway) CreateDip(_ context.Context, in store.NewDip) (store.CreatedDip, error) {
	if err := g.hit("create_dip"); err != nil {
		return store.CreatedDip{}, err
	}
	return store.CreatedDip{Dip: model.Dip{ID: "new", Value: in.Value}}, nil
}

func (g *fakeGateway) DeleteDip(_ context.Context, id string) (int64, error) {
	if err := g.hit("delete_dip"); err != nil {
		return 0, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	for i, d := range g.dips {
		if d.ID == id {
			g.dips = append(g.dips[:i], g.dips[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (g *fakeGateway) TagDip(context.Context, string, string) error {
	return g.hit("tag_dip")
}

func (g *fakeGateway) ResolveScope(context.Context, model.Location) (*model.Scope, error) {
	return nil, g.hit("resolve_scope")
}
