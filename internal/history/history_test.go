package history

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSurface records visibility and counts SetVisible calls.
type fakeSurface struct {
	visible map[Handle]bool
	calls   int
}

func newFakeSurface(handles ...Handle) *fakeSurface {
	s := &fakeSurface{visible: make(map[Handle]bool)}
	for _, h := range handles {
		s.visible[h] = true
	}
	return s
}

func (s *fakeSurface) SetVisible(h Handle, visible bool) {
	s.calls++
	s.visible[h] = visible
}

// draw simulates the editor creating primitives that are visible at once.
func (s *fakeSurface) draw(handles ...Handle) {
	for _, h := range handles {
		s.visible[h] = true
	}
}

func recordSingles(t *testing.T, h *History, s *fakeSurface, handles ...Handle) {
	t.Helper()
	for _, hd := range handles {
		s.draw(hd)
		require.NoError(t, h.Record(Single(hd)))
	}
}

func TestNewHistoryIsEmpty(t *testing.T) {
	h := New(newFakeSurface())
	assert.Equal(t, 0, h.Len())
	assert.Equal(t, -1, h.Cursor())
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())
}

func TestRecordAdvancesCursor(t *testing.T) {
	s := newFakeSurface()
	h := New(s)
	recordSingles(t, h, s, 1, 2, 3)

	assert.Equal(t, 3, h.Len())
	assert.Equal(t, 2, h.Cursor())
	assert.True(t, h.CanUndo())
	assert.False(t, h.CanRedo())
	assert.Equal(t, 0, s.calls, "record must not touch the surface")
}

func TestUndoHidesAndRedoShows(t *testing.T) {
	s := newFakeSurface()
	h := New(s)
	recordSingles(t, h, s, 1, 2)

	require.True(t, h.Undo())
	assert.False(t, s.visible[2])
	assert.True(t, s.visible[1])
	assert.Equal(t, 0, h.Cursor())

	require.True(t, h.Redo())
	assert.True(t, s.visible[2])
	assert.Equal(t, 1, h.Cursor())
}

func TestUndoAtStartIsNoop(t *testing.T) {
	s := newFakeSurface()
	h := New(s)

	assert.False(t, h.Undo())
	assert.Equal(t, -1, h.Cursor())
	assert.Equal(t, 0, s.calls)
}

func TestRedoAtEndIsNoop(t *testing.T) {
	s := newFakeSurface()
	h := New(s)
	recordSingles(t, h, s, 1)

	assert.False(t, h.Redo())
	assert.Equal(t, 0, h.Cursor())
	assert.Equal(t, 0, s.calls)
}

func TestRecordAfterUndoTruncatesTail(t *testing.T) {
	s := newFakeSurface()
	h := New(s)
	const a, b, c, d Handle = 1, 2, 3, 4
	recordSingles(t, h, s, a, b, c)

	require.True(t, h.Undo())
	require.True(t, h.Undo())
	require.Equal(t, 0, h.Cursor())

	recordSingles(t, h, s, d)

	require.Equal(t, 2, h.Len())
	assert.Equal(t, 1, h.Cursor())
	e0, _ := h.Entry(0)
	e1, _ := h.Entry(1)
	assert.Equal(t, []Handle{a}, e0.Handles())
	assert.Equal(t, []Handle{d}, e1.Handles())

	assert.False(t, h.Redo(), "B and C must be unreachable")
	assert.False(t, s.visible[b])
	assert.False(t, s.visible[c])
}

func TestResetThenUndoIsNoop(t *testing.T) {
	s := newFakeSurface()
	h := New(s)
	recordSingles(t, h, s, 1, 2)

	h.Reset()
	assert.Equal(t, 0, h.Len())
	assert.Equal(t, -1, h.Cursor())

	calls := s.calls
	assert.False(t, h.Undo())
	assert.Equal(t, -1, h.Cursor())
	assert.Equal(t, calls, s.calls)
}

func TestResetLeavesSurfaceAlone(t *testing.T) {
	s := newFakeSurface()
	h := New(s)
	recordSingles(t, h, s, 1)

	h.Reset()
	assert.True(t, s.visible[1])
	assert.Equal(t, 0, s.calls)
}

func TestGroupEntryIsAtomic(t *testing.T) {
	s := newFakeSurface()
	h := New(s)
	group := []Handle{10, 11, 12, 13, 14}
	s.draw(group...)
	require.NoError(t, h.Record(Group(group...)))

	require.True(t, h.Undo())
	for _, hd := range group {
		assert.False(t, s.visible[hd], "handle %d still visible after undo", hd)
	}
	assert.Equal(t, 5, s.calls)

	require.True(t, h.Redo())
	for _, hd := range group {
		assert.True(t, s.visible[hd], "handle %d hidden after redo", hd)
	}
	assert.Equal(t, 10, s.calls)
}

func TestEmptyStrokeIsNotRecorded(t *testing.T) {
	s := newFakeSurface()
	h := New(s)
	recordSingles(t, h, s, 1)

	var stroke Stroke
	_, ok := stroke.Entry()
	require.False(t, ok)

	require.True(t, h.Undo())
	assert.False(t, s.visible[1], "undo must hit the previous entry")
	assert.Equal(t, -1, h.Cursor())
}

func TestRecordRejectsMisuse(t *testing.T) {
	tests := []struct {
		name  string
		entry Entry
		want  error
	}{
		{"null single", Single(0), ErrInvalidHandle},
		{"null in group", Group(1, 0, 2), ErrInvalidHandle},
		{"empty group", Group(), ErrEmptyEntry},
		{"zero entry", Entry{}, ErrInvalidEntry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New(newFakeSurface())
			err := h.Record(tt.entry)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, 0, h.Len())
			assert.Equal(t, -1, h.Cursor())
		})
	}
}

func TestRecordWithoutSurface(t *testing.T) {
	h := New(nil)
	assert.ErrorIs(t, h.Record(Single(1)), ErrNoSurface)
}

func TestLimitDropsOldest(t *testing.T) {
	s := newFakeSurface()
	h := New(s, WithLimit(2))
	recordSingles(t, h, s, 1, 2, 3)

	require.Equal(t, 2, h.Len())
	assert.Equal(t, 1, h.Cursor())
	e0, _ := h.Entry(0)
	assert.Equal(t, []Handle{2}, e0.Handles())

	require.True(t, h.Undo())
	require.True(t, h.Undo())
	assert.False(t, h.Undo())
	assert.True(t, s.visible[1], "dropped entries stay drawn")
}

func TestUndoRedoRoundTrip(t *testing.T) {
	s := newFakeSurface()
	h := New(s)
	recordSingles(t, h, s, 1, 2, 3)
	require.True(t, h.Undo())

	before := visibleSet(s)
	require.True(t, h.Undo())
	require.True(t, h.Redo())
	assert.Equal(t, before, visibleSet(s))
}

// Random interleavings must keep the visible set equal to [0, cursor].
func TestVisibleSetIsCursorPrefix(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s := newFakeSurface()
	h := New(s)
	var next Handle = 1

	for step := 0; step < 500; step++ {
		switch rng.Intn(4) {
		case 0, 1:
			n := 1 + rng.Intn(3)
			hs := make([]Handle, n)
			for i := range hs {
				hs[i] = next
				next++
			}
			s.draw(hs...)
			if n == 1 {
				require.NoError(t, h.Record(Single(hs[0])))
			} else {
				require.NoError(t, h.Record(Group(hs...)))
			}
		case 2:
			h.Undo()
		case 3:
			h.Redo()
		}

		for i := 0; i < h.Len(); i++ {
			e, _ := h.Entry(i)
			want := i <= h.Cursor()
			assert.Equal(t, want, h.IsVisible(i))
			for _, hd := range e.Handles() {
				require.Equal(t, want, s.visible[hd], "step %d entry %d handle %d", step, i, hd)
			}
		}
	}
}

func TestStroke(t *testing.T) {
	var s Stroke
	s.Add(3)
	s.Add(0)
	s.Add(4)
	assert.Equal(t, 2, s.Len())

	e, ok := s.Entry()
	require.True(t, ok)
	assert.Equal(t, KindGroup, e.Kind())
	assert.Equal(t, []Handle{3, 4}, e.Handles())

	s.Reset()
	assert.Equal(t, 0, s.Len())
}

func visibleSet(s *fakeSurface) map[Handle]bool {
	out := make(map[Handle]bool)
	for h, v := range s.visible {
		if v {
			out[h] = true
		}
	}
	return out
}
