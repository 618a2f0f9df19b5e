package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Sender is the producer side of the bus.
type Sender interface {
	Send(msg tea.Msg)
}

// Bus carries completions from background goroutines to the controller. Any number of
// goroutines may Send; only the controller Listens.
type Bus struct {
	ch chan tea.Msg
}

type busMsg struct {
	msg tea.Msg
}

func NewBus(size int) *Bus {
	if size < 1 {
		size = 1
	}
	return &Bus{ch: make(chan tea.Msg, size)}
}

func (b *Bus) Send(msg tea.Msg) {
	b.ch <- msg
}

// Listen waits for one message. The controller re-arms it after every delivery.
func (b *Bus) Listen() tea.Cmd {
	return func() tea.Msg {
		return busMsg{msg: <-b.ch}
	}
}
