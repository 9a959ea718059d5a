package domain

import (
	"fmt"
	"strings"
)

// Video represents a title in the TISSUE+ library
type Video struct {
	Num          string   `json:"num"`       // Catalog number, e.g. "ABC-123"
	Title        string   `json:"title"`     // Display title
	Actors       []string `json:"actors"`    // Performer names
	Path         string   `json:"path"`      // Location on the server, empty if not local
	Cover        string   `json:"cover"`     // Cover image URL
	Premiered    string   `json:"premiered"` // Release date as YYYY-MM-DD
	Size         int64    `json:"size"`      // File size in bytes
	IsZh         bool     `json:"is_zh"`     // Chinese subtitles
	IsUncensored bool     `json:"is_uncensored"`
}

// GetNum returns the catalog number used as the video's identifier
func (v Video) GetNum() string { return v.Num }

// DisplayTitle returns the title prefixed by the catalog number
func (v Video) DisplayTitle() string {
	switch {
	case v.Num == "":
		return v.Title
	case v.Title == "":
		return v.Num
	default:
		return v.Num + " " + v.Title
	}
}

// ActorList returns a comma separated list of actors
func (v Video) ActorList() string {
	return strings.Join(v.Actors, ", ")
}

// FormattedSize returns the file size in a human-readable format
func (v Video) FormattedSize() string {
	return formatBytes(v.Size)
}

// Download is a torrent tracked by the server's downloader
type Download struct {
	Hash     string  `json:"hash"`
	Name     string  `json:"name"`
	Num      string  `json:"num"`      // Catalog number parsed by the server, may be empty
	Progress float64 `json:"progress"` // 0..1
	State    string  `json:"state"`    // Downloader state string, e.g. "downloading", "stalledUP"
	Size     int64   `json:"size"`
}

// GetNum returns the catalog number of the download
func (d Download) GetNum() string { return d.Num }

// Percent returns the progress as a whole percentage
func (d Download) Percent() int {
	p := int(d.Progress * 100)
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// FormattedSize returns the torrent size in a human-readable format
func (d Download) FormattedSize() string {
	return formatBytes(d.Size)
}

// VersionInfo describes the running server version and the latest release
type VersionInfo struct {
	Current string
	Latest  string
}

// UpdateAvailable reports whether the latest release differs from the running one
func (v VersionInfo) UpdateAvailable() bool {
	return v.Latest != "" && v.Current != "" && v.Latest != v.Current
}

func formatBytes(n int64) string {
	if n <= 0 {
		return ""
	}
	const (
		gb = 1024 * 1024 * 1024
		mb = 1024 * 1024
	)
	switch {
	case n >= gb:
		return fmt.Sprintf("%.1f GB", float64(n)/float64(gb))
	default:
		return fmt.Sprintf("%d MB", n/mb)
	}
}
