package domain

import (
	"context"
)

// VideoRepository provides access to the server's video library
type VideoRepository interface {
	// GetVideos returns every video known to the server
	GetVideos(ctx context.Context) ([]Video, error)

	// QueueDownloads asks the server to search and download the given numbers
	QueueDownloads(ctx context.Context, nums []string) error
}

// StatusRepository resolves download status for a batch of catalog numbers
type StatusRepository interface {
	// BatchDownloadStatus returns the status of each requested number.
	// Numbers the server does not mention are absent from the result.
	BatchDownloadStatus(ctx context.Context, nums []string) (StatusMap, error)
}

// DownloadRepository provides access to the server's downloader
type DownloadRepository interface {
	// GetDownloads returns the torrents tracked by the downloader
	GetDownloads(ctx context.Context) ([]Download, error)

	// CompleteDownloads marks the given torrents as handled
	CompleteDownloads(ctx context.Context, hashes []string) error
}

// VersionRepository reports server version information
type VersionRepository interface {
	GetVersion(ctx context.Context) (VersionInfo, error)
}

// AuthResult contains the result of a successful authentication
type AuthResult struct {
	Token    string // Access token for API calls
	Username string // Display username
}

// AuthFlow runs an interactive login against a server
type AuthFlow interface {
	// Run executes the authentication flow and returns credentials.
	// Implementations handle their own user interaction.
	Run(ctx context.Context, serverURL string) (*AuthResult, error)
}
