package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tissueplus/tissue/internal/service"
)

// Command factories for async operations

// RefreshVideosCmd fetches the video library from the server
func RefreshVideosCmd(svc *service.VideoService) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second) // 60s for large libraries
		defer cancel()

		videos, err := svc.RefreshVideos(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading videos"}
		}
		return VideosLoadedMsg{Videos: videos}
	}
}

// RefreshDownloadsCmd fetches the download list from the server
func RefreshDownloadsCmd(svc *service.DownloadService) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		downloads, err := svc.RefreshDownloads(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading downloads"}
		}
		return DownloadsLoadedMsg{Downloads: downloads}
	}
}

// QueueDownloadsCmd asks the server to download a batch of videos
func QueueDownloadsCmd(svc *service.VideoService, nums []string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := svc.QueueDownloads(ctx, nums); err != nil {
			return ErrMsg{Err: err, Context: "queueing downloads"}
		}
		return DownloadsQueuedMsg{Nums: nums}
	}
}

// CompleteDownloadsCmd marks a batch of torrents complete
func CompleteDownloadsCmd(svc *service.DownloadService, hashes []string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := svc.CompleteDownloads(ctx, hashes); err != nil {
			return ErrMsg{Err: err, Context: "completing downloads"}
		}
		return DownloadsCompletedMsg{Count: len(hashes)}
	}
}

// CheckVersionCmd fetches server version information
func CheckVersionCmd(svc *service.VersionService) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		info, err := svc.Check(ctx)
		if err != nil {
			// Version info is decorative; stay quiet on failure
			return nil
		}
		return VersionCheckedMsg{Info: info}
	}
}

// WaitForStatusCmd blocks until the status cache signals a change
func WaitForStatusCmd(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return StatusChangedMsg{}
	}
}

// LogoutCmd clears credentials and cached data
func LogoutCmd(svc *service.SessionService) tea.Cmd {
	return func() tea.Msg {
		return LogoutCompleteMsg{Error: svc.Logout()}
	}
}

// TickCmd returns a command that sends a tick after a delay
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
