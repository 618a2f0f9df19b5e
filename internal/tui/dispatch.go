package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"dips-cli/internal/model"
	"dips-cli/internal/store"
)

// Dispatcher runs each gateway call on its own goroutine and reports the outcome as
// exactly one message on the bus. It never touches controller state.
type Dispatcher struct {
	gw  Gateway
	bus Sender
	log *zap.Logger
}

func NewDispatcher(gw Gateway, bus Sender, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{gw: gw, bus: bus, log: log}
}

func (d *Dispatcher) run(op string, fn func(ctx context.Context) tea.Msg) {
	go func() {
		start := time.Now()
		d.log.Debug("dispatch start", zap.String("op", op))
		msg := fn(context.Background())
		d.log.Debug("dispatch done", zap.String("op", op), zap.Duration("took", time.Since(start)))
		d.bus.Send(msg)
	}()
}

func (d *Dispatcher) FetchDips(seq int, scope model.ScopeRef, query string) {
	d.run("fetch_dips", func(ctx context.Context) tea.Msg {
		rows, err := d.gw.ListDips(ctx, store.DipsFilter{ScopeID: scope.ID(), Search: query})
		return dipsLoadedMsg{seq: seq, scope: scope, query: query, rows: rows, err: err}
	})
}

func (d *Dispatcher) FetchScopes(seq int, query string) {
	d.run("fetch_scopes", func(ctx context.Context) tea.Msg {
		scopes, err := d.gw.ListScopes(ctx, store.ScopesFilter{Search: query})
		return scopesLoadedMsg{seq: seq, query: query, scopes: scopes, err: err}
	})
}

func (d *Dispatcher) ResolveScope(loc model.Location) {
	d.run("resolve_scope", func(ctx context.Context) tea.Msg {
		sc, err := d.gw.ResolveScope(ctx, loc)
		return scopeResolvedMsg{scope: sc, err: err}
	})
}

func (d *Dispatcher) AddDip(in store.NewDip) {
	d.run("add_dip", func(ctx context.Context) tea.Msg {
		created, err := d.gw.CreateDip(ctx, in)
		return dipAddedMsg{dip: created, err: err}
	})
}

func (d *Dispatcher) DeleteDip(id, value string) {
	d.run("delete_dip", func(ctx context.Context) tea.Msg {
		n, err := d.gw.DeleteDip(ctx, id)
		return dipDeletedMsg{id: id, value: value, n: n, err: err}
	})
}

func (d *Dispatcher) TagDip(dipID, name string) {
	d.run("tag_dip", func(ctx context.Context) tea.Msg {
		err := d.gw.TagDip(ctx, dipID, name)
		return dipTaggedMsg{dipID: dipID, name: name, err: err}
	})
}
