package selection

import (
	"sort"

	"github.com/tissueplus/tissue/internal/domain"
)

// Batch is the batch-mode selection used by the video list.
// Videos are keyed by their catalog number.
type Batch struct {
	enabled  bool
	selected map[string]struct{}
}

// NewBatch creates a Batch with batch mode off and nothing selected
func NewBatch() *Batch {
	return &Batch{selected: make(map[string]struct{})}
}

// Enabled reports whether batch mode is on
func (b *Batch) Enabled() bool {
	return b.enabled
}

// Enter turns batch mode on without touching the selection
func (b *Batch) Enter() {
	b.enabled = true
}

// Exit turns batch mode off and clears the selection
func (b *Batch) Exit() {
	b.enabled = false
	b.UnselectAll()
}

// ToggleMode flips batch mode. Leaving batch mode clears the selection.
func (b *Batch) ToggleMode() {
	if b.enabled {
		b.Exit()
		return
	}
	b.Enter()
}

// IsSelected reports whether v is selected
func (b *Batch) IsSelected(v domain.Video) bool {
	_, ok := b.selected[v.Num]
	return ok
}

// SelectVideo adds v to the selection
func (b *Batch) SelectVideo(v domain.Video) {
	b.selected[v.Num] = struct{}{}
}

// UnselectVideo removes v from the selection
func (b *Batch) UnselectVideo(v domain.Video) {
	delete(b.selected, v.Num)
}

// ToggleVideo flips the membership of v
func (b *Batch) ToggleVideo(v domain.Video) {
	if b.IsSelected(v) {
		b.UnselectVideo(v)
		return
	}
	b.SelectVideo(v)
}

// SelectAll adds every video to the existing selection
func (b *Batch) SelectAll(videos []domain.Video) {
	for _, v := range videos {
		b.selected[v.Num] = struct{}{}
	}
}

// UnselectAll clears the selection
func (b *Batch) UnselectAll() {
	b.selected = make(map[string]struct{})
}

// Count returns the number of selected videos
func (b *Batch) Count() int {
	return len(b.selected)
}

// SelectedNums returns the selected catalog numbers, sorted
func (b *Batch) SelectedNums() []string {
	nums := make([]string, 0, len(b.selected))
	for num := range b.selected {
		nums = append(nums, num)
	}
	sort.Strings(nums)
	return nums
}

// SelectedVideos returns the selected entries of videos, in list order
func (b *Batch) SelectedVideos(videos []domain.Video) []domain.Video {
	var out []domain.Video
	for _, v := range videos {
		if b.IsSelected(v) {
			out = append(out, v)
		}
	}
	return out
}
