package tissue

import (
	"strings"

	"github.com/tissueplus/tissue/internal/domain"
)

// MapVideos converts API videos to domain videos
func MapVideos(dtos []VideoDTO, baseURL string) []domain.Video {
	videos := make([]domain.Video, 0, len(dtos))
	for _, d := range dtos {
		videos = append(videos, MapVideo(d, baseURL))
	}
	return videos
}

// MapVideo converts a single API video
func MapVideo(d VideoDTO, baseURL string) domain.Video {
	actors := make([]string, 0, len(d.Actors))
	for _, a := range d.Actors {
		if name := strings.TrimSpace(a.Name); name != "" {
			actors = append(actors, name)
		}
	}
	return domain.Video{
		Num:          strings.TrimSpace(d.Num),
		Title:        strings.TrimSpace(d.Title),
		Actors:       actors,
		Path:         d.Path,
		Cover:        buildImageURL(baseURL, d.Cover),
		Premiered:    d.Premiered,
		Size:         d.Size,
		IsZh:         d.IsZh,
		IsUncensored: d.IsUncensored,
	}
}

// MapDownloads converts API torrents to domain downloads
func MapDownloads(dtos []DownloadDTO) []domain.Download {
	downloads := make([]domain.Download, 0, len(dtos))
	for _, d := range dtos {
		downloads = append(downloads, domain.Download{
			Hash:     d.Hash,
			Name:     d.Name,
			Num:      strings.TrimSpace(d.Num),
			Progress: d.Progress,
			State:    d.State,
			Size:     d.Size,
		})
	}
	return downloads
}

// MapStatuses converts the wire status map. Unknown values become none;
// numbers missing from the reply stay missing.
func MapStatuses(raw map[string]string) domain.StatusMap {
	statuses := make(domain.StatusMap, len(raw))
	for num, s := range raw {
		statuses[num] = domain.ParseDownloadStatus(s)
	}
	return statuses
}

// buildImageURL makes server-relative image paths absolute
func buildImageURL(baseURL, path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(path, "/")
}
