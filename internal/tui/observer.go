package tui

import "github.com/tissueplus/tissue/internal/downloadstatus"

// ChannelObserver adapts downloadstatus.Observer to a channel for Bubble Tea.
// Only a wake-up is sent; the model re-reads the cache snapshot, so a dropped
// signal never loses state.
type ChannelObserver struct {
	ch chan<- struct{}
}

// NewChannelObserver creates a new channel-based observer.
func NewChannelObserver(ch chan<- struct{}) *ChannelObserver {
	return &ChannelObserver{ch: ch}
}

// OnChange signals the channel (non-blocking if full).
func (o *ChannelObserver) OnChange(downloadstatus.State) {
	select {
	case o.ch <- struct{}{}:
	default: // A wake-up is already pending
	}
}
