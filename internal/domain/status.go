package domain

import "strings"

// DownloadStatus is the download state of a video as reported by the server
type DownloadStatus string

const (
	// StatusDownloaded means the video exists in the library
	StatusDownloaded DownloadStatus = "downloaded"

	// StatusDownloading means a torrent for the video is in progress
	StatusDownloading DownloadStatus = "downloading"

	// StatusNone means the server knows nothing about the video
	StatusNone DownloadStatus = "none"
)

// StatusMap maps a catalog number to its download status
type StatusMap map[string]DownloadStatus

// ParseDownloadStatus converts a wire value to a DownloadStatus.
// Unknown values map to StatusNone.
func ParseDownloadStatus(s string) DownloadStatus {
	switch DownloadStatus(strings.ToLower(strings.TrimSpace(s))) {
	case StatusDownloaded:
		return StatusDownloaded
	case StatusDownloading:
		return StatusDownloading
	default:
		return StatusNone
	}
}

// String returns the string representation of DownloadStatus
func (s DownloadStatus) String() string {
	return string(s)
}

// IsActive returns true while a download is in progress
func (s DownloadStatus) IsActive() bool {
	return s == StatusDownloading
}

// Get returns the status for num, defaulting to StatusNone
func (m StatusMap) Get(num string) DownloadStatus {
	if s, ok := m[num]; ok {
		return s
	}
	return StatusNone
}

// Clone returns a copy of the map
func (m StatusMap) Clone() StatusMap {
	out := make(StatusMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
