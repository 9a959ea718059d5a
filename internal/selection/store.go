// Package selection tracks which list entries the user has checked.
//
// Store is the range-aware variant used by lists with shift-style range
// selection. Batch is the simpler batch-mode variant keyed by a video's
// catalog number. The two deliberately differ in their "select all" policy:
// Store.ToggleAll replaces the selection, Batch.SelectAll unions into it.
//
// Neither type is safe for concurrent use; confine them to the Bubble Tea
// update loop.
package selection

// Store holds the selected ids of a caller-supplied, possibly changing list.
type Store[T any, K comparable] struct {
	items    []T
	idOf     func(T) K
	selected map[K]struct{}

	lastSelected K
	hasLast      bool
}

// NewStore creates an empty Store that derives ids with idOf.
func NewStore[T any, K comparable](idOf func(T) K) *Store[T, K] {
	return &Store[T, K]{
		idOf:     idOf,
		selected: make(map[K]struct{}),
	}
}

// SetItems replaces the current item list. The selection is kept.
func (s *Store[T, K]) SetItems(items []T) {
	s.items = items
}

// Items returns the current item list
func (s *Store[T, K]) Items() []T {
	return s.items
}

// IsSelected reports whether id is selected
func (s *Store[T, K]) IsSelected(id K) bool {
	_, ok := s.selected[id]
	return ok
}

// Toggle flips the membership of id and records it as last selected.
// The id does not have to be in the current list.
func (s *Store[T, K]) Toggle(id K) {
	if _, ok := s.selected[id]; ok {
		delete(s.selected, id)
	} else {
		s.selected[id] = struct{}{}
	}
	s.lastSelected = id
	s.hasLast = true
}

// ToggleAll clears the selection when its size equals the list length,
// otherwise it replaces the selection with every id in the list.
func (s *Store[T, K]) ToggleAll() {
	if len(s.selected) == len(s.items) {
		s.selected = make(map[K]struct{})
		return
	}

	next := make(map[K]struct{}, len(s.items))
	for _, item := range s.items {
		next[s.idOf(item)] = struct{}{}
	}
	s.selected = next
}

// SelectRange adds every id between startID and endID (inclusive, in list
// order) to the selection. It is a no-op if either id is not in the list.
func (s *Store[T, K]) SelectRange(startID, endID K) {
	start, end := s.indexOf(startID), s.indexOf(endID)
	if start < 0 || end < 0 {
		return
	}
	if start > end {
		start, end = end, start
	}

	for i := start; i <= end; i++ {
		s.selected[s.idOf(s.items[i])] = struct{}{}
	}
}

// Clear empties the selection and forgets the last selected id
func (s *Store[T, K]) Clear() {
	s.selected = make(map[K]struct{})
	var zero K
	s.lastSelected = zero
	s.hasLast = false
}

// LastSelected returns the id most recently passed to Toggle
func (s *Store[T, K]) LastSelected() (K, bool) {
	return s.lastSelected, s.hasLast
}

// SelectedItems returns the selected items in list order.
// Selected ids that are no longer in the list are skipped.
func (s *Store[T, K]) SelectedItems() []T {
	var out []T
	for _, item := range s.items {
		if _, ok := s.selected[s.idOf(item)]; ok {
			out = append(out, item)
		}
	}
	return out
}

// SelectedIDs returns the ids of SelectedItems, in list order
func (s *Store[T, K]) SelectedIDs() []K {
	var out []K
	for _, item := range s.items {
		id := s.idOf(item)
		if _, ok := s.selected[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// IsAllSelected is true when the list is non-empty and every slot is selected
func (s *Store[T, K]) IsAllSelected() bool {
	return len(s.items) > 0 && len(s.selected) == len(s.items)
}

// Count returns the number of selected ids, including ids no longer listed
func (s *Store[T, K]) Count() int {
	return len(s.selected)
}

// HasSelection returns true if anything is selected
func (s *Store[T, K]) HasSelection() bool {
	return len(s.selected) > 0
}

func (s *Store[T, K]) indexOf(id K) int {
	for i, item := range s.items {
		if s.idOf(item) == id {
			return i
		}
	}
	return -1
}
