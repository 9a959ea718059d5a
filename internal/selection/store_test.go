package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID    int
	Title string
}

func rowID(r row) int { return r.ID }

func newRows(ids ...int) []row {
	rows := make([]row, len(ids))
	for i, id := range ids {
		rows[i] = row{ID: id}
	}
	return rows
}

func newTestStore(ids ...int) *Store[row, int] {
	s := NewStore(rowID)
	s.SetItems(newRows(ids...))
	return s
}

func TestToggleParity(t *testing.T) {
	for toggles := 0; toggles < 6; toggles++ {
		s := newTestStore(1, 2, 3)
		for i := 0; i < toggles; i++ {
			s.Toggle(2)
		}
		assert.Equal(t, toggles%2 == 1, s.IsSelected(2), "after %d toggles", toggles)
	}
}

func TestToggleRecordsLastSelectedEvenWhenDeselecting(t *testing.T) {
	s := newTestStore(1, 2, 3)

	_, ok := s.LastSelected()
	assert.False(t, ok)

	s.Toggle(1)
	s.Toggle(1)

	last, ok := s.LastSelected()
	require.True(t, ok)
	assert.Equal(t, 1, last)
	assert.False(t, s.IsSelected(1))
}

func TestToggleAcceptsIDsOutsideTheList(t *testing.T) {
	s := newTestStore(1, 2)

	s.Toggle(99)

	assert.True(t, s.IsSelected(99))
	assert.Equal(t, 1, s.Count())
	assert.Empty(t, s.SelectedItems())
}

func TestToggleAll(t *testing.T) {
	s := newTestStore(1, 2, 3)

	s.Toggle(2)
	s.ToggleAll()
	assert.Equal(t, 3, s.Count())
	assert.Equal(t, newRows(1, 2, 3), s.SelectedItems())
	assert.True(t, s.IsAllSelected())

	s.ToggleAll()
	assert.Equal(t, 0, s.Count())
	assert.False(t, s.IsAllSelected())
}

func TestToggleAllReplacesRatherThanUnions(t *testing.T) {
	s := newTestStore(1, 2, 3)
	s.Toggle(42) // stale id, not listed

	s.ToggleAll()

	assert.False(t, s.IsSelected(42))
	assert.Equal(t, []int{1, 2, 3}, s.SelectedIDs())
}

func TestToggleAllComparesCountIncludingStaleIDs(t *testing.T) {
	s := newTestStore(1, 2)
	s.Toggle(1)
	s.Toggle(42)

	// Two ids selected against two items: treated as "all selected".
	s.ToggleAll()
	assert.Equal(t, 0, s.Count())
}

func TestToggleAllOnEmptyList(t *testing.T) {
	s := newTestStore()
	s.ToggleAll()
	assert.Equal(t, 0, s.Count())
	assert.False(t, s.IsAllSelected())
}

func TestSelectRangeIsOrderIndependent(t *testing.T) {
	ids := []int{10, 20, 30, 40, 50}
	for _, a := range ids {
		for _, b := range ids {
			forward := newTestStore(ids...)
			forward.SelectRange(a, b)

			backward := newTestStore(ids...)
			backward.SelectRange(b, a)

			assert.Equal(t, forward.SelectedIDs(), backward.SelectedIDs(), "range %d..%d", a, b)
		}
	}
}

func TestSelectRangeUnionsInclusiveSpan(t *testing.T) {
	s := newTestStore(10, 20, 30, 40, 50)
	s.Toggle(50)

	s.SelectRange(40, 20)

	assert.Equal(t, []int{20, 30, 40, 50}, s.SelectedIDs())
}

func TestSelectRangeWithAbsentIDIsNoop(t *testing.T) {
	s := newTestStore(10, 20, 30)
	s.Toggle(10)

	s.SelectRange(20, 99)
	s.SelectRange(99, 20)

	assert.Equal(t, []int{10}, s.SelectedIDs())
	assert.Equal(t, 1, s.Count())
}

func TestClearResetsLastSelected(t *testing.T) {
	s := newTestStore(1, 2, 3)
	s.Toggle(1)
	s.Toggle(3)

	s.Clear()

	assert.Equal(t, 0, s.Count())
	assert.False(t, s.HasSelection())
	_, ok := s.LastSelected()
	assert.False(t, ok)
}

func TestSelectionSurvivesListChanges(t *testing.T) {
	s := newTestStore(1, 2, 3)
	s.Toggle(2)
	s.Toggle(3)

	s.SetItems(newRows(3, 4))
	assert.Equal(t, newRows(3), s.SelectedItems())
	assert.Equal(t, 2, s.Count(), "stale ids stay until cleared")

	s.SetItems(newRows(1, 2, 3))
	assert.Equal(t, newRows(2, 3), s.SelectedItems())
}

func TestSelectedItemsKeepsListOrder(t *testing.T) {
	s := newTestStore(5, 4, 3, 2, 1)
	s.Toggle(1)
	s.Toggle(5)
	s.Toggle(3)

	assert.Equal(t, newRows(5, 3, 1), s.SelectedItems())
}

func TestStoreWithStringIDs(t *testing.T) {
	type download struct{ Hash string }
	s := NewStore(func(d download) string { return d.Hash })
	s.SetItems([]download{{"a"}, {"b"}, {"c"}})

	s.SelectRange("c", "b")

	assert.True(t, s.IsSelected("b"))
	assert.True(t, s.IsSelected("c"))
	assert.False(t, s.IsSelected("a"))
}
