package service

import (
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/tissueplus/tissue/internal/domain"
)

// FilterByActor keeps videos with a performer whose name fuzzily contains name.
// Input order is preserved.
func FilterByActor(videos []domain.Video, name string) []domain.Video {
	if name == "" {
		return videos
	}

	filtered := make([]domain.Video, 0)
	for _, v := range videos {
		for _, actor := range v.Actors {
			if fuzzy.MatchFold(name, actor) {
				filtered = append(filtered, v)
				break
			}
		}
	}
	return filtered
}
