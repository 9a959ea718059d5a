package domain

// Store handles the local list cache (BoltDB + memory).
// The TUI reads cached lists from it for instant startup.
// Selection and download status are never stored.
type Store interface {
	// === Videos ===
	GetVideos() ([]Video, bool)
	SaveVideos(videos []Video) error

	// === Downloads ===
	GetDownloads() ([]Download, bool)
	SaveDownloads(downloads []Download) error

	// === Invalidation ===
	InvalidateVideos()
	InvalidateDownloads()
	InvalidateAll()

	Close() error
}
