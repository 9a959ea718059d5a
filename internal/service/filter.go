package service

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/tissueplus/tissue/internal/domain"
)

// VideoIndex implements sahilm/fuzzy.Source over "num title"
type VideoIndex struct {
	videos []domain.Video
	lower  []string // Pre-computed lowercase search text
}

// NewVideoIndex builds a search index for videos
func NewVideoIndex(videos []domain.Video) *VideoIndex {
	idx := &VideoIndex{
		videos: videos,
		lower:  make([]string, len(videos)),
	}
	for i, v := range videos {
		idx.lower[i] = strings.ToLower(v.DisplayTitle())
	}
	return idx
}

// String returns the lowercase search text at index i (implements fuzzy.Source)
func (idx *VideoIndex) String(i int) string { return idx.lower[i] }

// Len returns the number of videos (implements fuzzy.Source)
func (idx *VideoIndex) Len() int { return len(idx.videos) }

// Find returns the videos matching query, best match first
func (idx *VideoIndex) Find(query string) []domain.Video {
	matches := fuzzy.FindFrom(strings.ToLower(query), idx)
	results := make([]domain.Video, len(matches))
	for i, m := range matches {
		results[i] = idx.videos[m.Index]
	}
	return results
}

// FilterVideos narrows videos to those matching query.
// A query starting with '@' matches performer names instead of num and title.
// An empty query returns videos unchanged.
func FilterVideos(videos []domain.Video, query string) []domain.Video {
	query = strings.TrimSpace(query)
	if query == "" {
		return videos
	}
	if name, ok := strings.CutPrefix(query, "@"); ok {
		return FilterByActor(videos, strings.TrimSpace(name))
	}
	return NewVideoIndex(videos).Find(query)
}

// StatusFilter narrows the video list by download status
type StatusFilter int

const (
	StatusFilterAll StatusFilter = iota
	StatusFilterDownloaded
	StatusFilterDownloading
	StatusFilterMissing
)

// Next cycles to the following filter
func (f StatusFilter) Next() StatusFilter {
	return (f + 1) % 4
}

func (f StatusFilter) String() string {
	switch f {
	case StatusFilterDownloaded:
		return "downloaded"
	case StatusFilterDownloading:
		return "downloading"
	case StatusFilterMissing:
		return "not downloaded"
	default:
		return "all"
	}
}

// FilterByStatus keeps the videos whose status matches filter.
// Videos missing from statuses count as not downloaded.
func FilterByStatus(videos []domain.Video, statuses domain.StatusMap, filter StatusFilter) []domain.Video {
	if filter == StatusFilterAll {
		return videos
	}

	filtered := make([]domain.Video, 0)
	for _, v := range videos {
		status := statuses.Get(v.Num)
		switch filter {
		case StatusFilterDownloaded:
			if status == domain.StatusDownloaded {
				filtered = append(filtered, v)
			}
		case StatusFilterDownloading:
			if status == domain.StatusDownloading {
				filtered = append(filtered, v)
			}
		case StatusFilterMissing:
			if status == domain.StatusNone {
				filtered = append(filtered, v)
			}
		}
	}
	return filtered
}

// SortField represents a field to sort videos by
type SortField int

const (
	SortByNum SortField = iota
	SortByTitle
	SortByPremiered
	SortBySize
)

// Next cycles to the following sort field
func (f SortField) Next() SortField {
	return (f + 1) % 4
}

func (f SortField) String() string {
	switch f {
	case SortByTitle:
		return "title"
	case SortByPremiered:
		return "premiered"
	case SortBySize:
		return "size"
	default:
		return "num"
	}
}

// SortVideos returns a sorted copy of videos. Ties keep their input order.
func SortVideos(videos []domain.Video, field SortField, desc bool) []domain.Video {
	sorted := make([]domain.Video, len(videos))
	copy(sorted, videos)

	less := func(a, b domain.Video) bool {
		switch field {
		case SortByTitle:
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		case SortByPremiered:
			return a.Premiered < b.Premiered
		case SortBySize:
			return a.Size < b.Size
		default:
			return a.Num < b.Num
		}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if desc {
			return less(sorted[j], sorted[i])
		}
		return less(sorted[i], sorted[j])
	})
	return sorted
}

// downloadIndex implements sahilm/fuzzy.Source over "num name"
type downloadIndex []string

func (idx downloadIndex) String(i int) string { return idx[i] }
func (idx downloadIndex) Len() int            { return len(idx) }

// FilterDownloads narrows downloads to those whose num or torrent name matches query
func FilterDownloads(downloads []domain.Download, query string) []domain.Download {
	query = strings.TrimSpace(query)
	if query == "" {
		return downloads
	}

	idx := make(downloadIndex, len(downloads))
	for i, d := range downloads {
		idx[i] = strings.ToLower(strings.TrimSpace(d.Num + " " + d.Name))
	}

	matches := fuzzy.FindFrom(strings.ToLower(query), idx)
	results := make([]domain.Download, len(matches))
	for i, m := range matches {
		results[i] = downloads[m.Index]
	}
	return results
}
