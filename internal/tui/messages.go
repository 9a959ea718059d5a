package tui

import (
	"github.com/tissueplus/tissue/internal/domain"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// VideosLoadedMsg signals that the video library has been fetched
type VideosLoadedMsg struct {
	Videos []domain.Video
}

// DownloadsLoadedMsg signals that the download list has been fetched
type DownloadsLoadedMsg struct {
	Downloads []domain.Download
}

// DownloadsQueuedMsg signals that the server accepted a download batch
type DownloadsQueuedMsg struct {
	Nums []string
}

// DownloadsCompletedMsg signals that torrents were marked complete
type DownloadsCompletedMsg struct {
	Count int
}

// StatusChangedMsg signals that the download status cache changed state.
// The model reads the current state from the cache itself.
type StatusChangedMsg struct{}

// VersionCheckedMsg carries the server version information
type VersionCheckedMsg struct {
	Info domain.VersionInfo
}

// LogoutCompleteMsg signals that logout has finished
type LogoutCompleteMsg struct {
	Error error
}

// TickMsg is a general tick message for animations
type TickMsg struct{}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}
