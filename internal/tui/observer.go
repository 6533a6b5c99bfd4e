package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/flightdeck/internal/domain"
	"github.com/mmcdole/flightdeck/internal/notify"
)

// eventBufferSize bounds queued background events; overflow is dropped
// since the next render reads the cache anyway.
const eventBufferSize = 64

// ChannelObserver adapts cache and toast callbacks to a channel for Bubble Tea.
type ChannelObserver struct {
	ch chan tea.Msg
}

// NewChannelObserver creates a new channel-based observer.
func NewChannelObserver() *ChannelObserver {
	return &ChannelObserver{ch: make(chan tea.Msg, eventBufferSize)}
}

// OnCacheChange forwards a changed key (non-blocking if full).
func (o *ChannelObserver) OnCacheChange(key domain.CacheKey) {
	o.send(CacheChangedMsg{Key: key})
}

// OnToast forwards a pushed toast (non-blocking if full).
func (o *ChannelObserver) OnToast(notify.Toast) {
	o.send(ToastMsg{})
}

func (o *ChannelObserver) send(msg tea.Msg) {
	select {
	case o.ch <- msg:
	default: // Non-blocking if channel full
	}
}

// Listen returns a command that waits for the next event
func (o *ChannelObserver) Listen() tea.Cmd {
	return func() tea.Msg {
		return <-o.ch
	}
}
