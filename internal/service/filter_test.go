package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tissueplus/tissue/internal/domain"
)

var library = []domain.Video{
	{Num: "ABC-123", Title: "Morning Rain", Actors: []string{"Alice Smith"}, Premiered: "2023-05-01", Size: 300},
	{Num: "DEF-456", Title: "Night Train", Actors: []string{"Bea Jones", "Alice Smith"}, Premiered: "2021-01-10", Size: 100},
	{Num: "GHI-789", Title: "Blue Hour", Actors: []string{"Cara"}, Premiered: "2022-09-30", Size: 200},
}

func nums(videos []domain.Video) []string {
	out := make([]string, len(videos))
	for i, v := range videos {
		out[i] = v.Num
	}
	return out
}

func TestFilterVideos(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty query", "  ", []string{"ABC-123", "DEF-456", "GHI-789"}},
		{"by num", "def", []string{"DEF-456"}},
		{"by title", "blue", []string{"GHI-789"}},
		{"case insensitive", "NIGHT", []string{"DEF-456"}},
		{"no match", "zzz", []string{}},
		{"actor", "@alice", []string{"ABC-123", "DEF-456"}},
		{"actor fuzzy", "@bjones", []string{"DEF-456"}},
		{"bare at", "@", []string{"ABC-123", "DEF-456", "GHI-789"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nums(FilterVideos(library, tt.query)))
		})
	}
}

func TestFilterByStatus(t *testing.T) {
	statuses := domain.StatusMap{
		"ABC-123": domain.StatusDownloaded,
		"DEF-456": domain.StatusDownloading,
	}

	assert.Equal(t, []string{"ABC-123", "DEF-456", "GHI-789"}, nums(FilterByStatus(library, statuses, StatusFilterAll)))
	assert.Equal(t, []string{"ABC-123"}, nums(FilterByStatus(library, statuses, StatusFilterDownloaded)))
	assert.Equal(t, []string{"DEF-456"}, nums(FilterByStatus(library, statuses, StatusFilterDownloading)))
	assert.Equal(t, []string{"GHI-789"}, nums(FilterByStatus(library, statuses, StatusFilterMissing)))
}

func TestStatusFilterCycles(t *testing.T) {
	f := StatusFilterAll
	for i := 0; i < 4; i++ {
		f = f.Next()
	}
	assert.Equal(t, StatusFilterAll, f)
	assert.Equal(t, "not downloaded", StatusFilterMissing.String())
}

func TestSortVideos(t *testing.T) {
	assert.Equal(t, []string{"ABC-123", "DEF-456", "GHI-789"}, nums(SortVideos(library, SortByNum, false)))
	assert.Equal(t, []string{"GHI-789", "ABC-123", "DEF-456"}, nums(SortVideos(library, SortByTitle, false)))
	assert.Equal(t, []string{"ABC-123", "GHI-789", "DEF-456"}, nums(SortVideos(library, SortByPremiered, true)))
	assert.Equal(t, []string{"DEF-456", "GHI-789", "ABC-123"}, nums(SortVideos(library, SortBySize, false)))

	// Input is not reordered
	assert.Equal(t, "ABC-123", library[0].Num)
}

func TestSortVideosStable(t *testing.T) {
	videos := []domain.Video{{Num: "B", Size: 1}, {Num: "A", Size: 1}}
	assert.Equal(t, []string{"B", "A"}, nums(SortVideos(videos, SortBySize, false)))
	assert.Equal(t, []string{"B", "A"}, nums(SortVideos(videos, SortBySize, true)))
}

func TestFilterDownloads(t *testing.T) {
	downloads := []domain.Download{
		{Hash: "h1", Num: "ABC-123", Name: "[HD] ABC-123.mp4"},
		{Hash: "h2", Name: "ubuntu-24.04.iso"},
	}

	assert.Len(t, FilterDownloads(downloads, ""), 2)

	got := FilterDownloads(downloads, "ubuntu")
	if assert.Len(t, got, 1) {
		assert.Equal(t, "h2", got[0].Hash)
	}

	got = FilterDownloads(downloads, "abc")
	if assert.Len(t, got, 1) {
		assert.Equal(t, "h1", got[0].Hash)
	}
}
