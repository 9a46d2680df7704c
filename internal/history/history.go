package history

import (
	"errors"
	"log/slog"
	"sync"
)

// Common errors for history operations. They signal caller bugs, never
// boundary conditions: undo past the start or redo past the end is a no-op.
var (
	ErrInvalidHandle = errors.New("invalid primitive handle")
	ErrEmptyEntry    = errors.New("empty history entry")
	ErrInvalidEntry  = errors.New("invalid history entry")
	ErrNoSurface     = errors.New("history has no surface")
)

// Surface is the rendering surface whose primitives the history toggles.
type Surface interface {
	SetVisible(h Handle, visible bool)
}

// History manages undo/redo over drawing entries.
type History struct {
	mu sync.Mutex

	surface Surface
	entries []Entry
	// cursor is the index of the last visible entry, -1 when none is.
	cursor int

	limit  int
	logger *slog.Logger
}

// Option configures a History.
type Option func(*History)

// WithLimit caps the number of entries kept. When a record exceeds the cap
// the oldest entries are dropped; they stay drawn but can no longer be
// undone. A limit <= 0 means unbounded.
func WithLimit(n int) Option {
	return func(h *History) {
		if n < 0 {
			n = 0
		}
		h.limit = n
	}
}

// WithLogger sets the logger used for boundary no-ops and records.
func WithLogger(l *slog.Logger) Option {
	return func(h *History) {
		if l != nil {
			h.logger = l
		}
	}
}

// New creates an empty history that toggles primitives on surface.
func New(surface Surface, opts ...Option) *History {
	h := &History{
		surface: surface,
		cursor:  -1,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Record appends e as the newest entry. Any undone entries after the
// cursor are discarded first. The entry's primitives are assumed to be
// visible already.
func (h *History) Record(e Entry) error {
	if err := e.validate(); err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.surface == nil {
		return ErrNoSurface
	}

	if dropped := len(h.entries) - (h.cursor + 1); dropped > 0 {
		h.logger.Debug("history: discarding undone entries", "count", dropped)
	}
	h.entries = append(h.entries[:h.cursor+1], e)
	h.cursor = len(h.entries) - 1

	if h.limit > 0 && len(h.entries) > h.limit {
		excess := len(h.entries) - h.limit
		h.entries = append([]Entry(nil), h.entries[excess:]...)
		h.cursor -= excess
	}

	h.logger.Debug("history: recorded", "entry", e.String(), "cursor", h.cursor)
	return nil
}

// Undo hides the entry at the cursor and moves the cursor back by one.
// It reports false when there is nothing to undo.
func (h *History) Undo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cursor < 0 {
		h.logger.Debug("history: nothing to undo")
		return false
	}

	h.setVisible(h.entries[h.cursor], false)
	h.cursor--
	return true
}

// Redo moves the cursor forward by one and shows the entry there.
// It reports false when there is nothing to redo.
func (h *History) Redo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cursor >= len(h.entries)-1 {
		h.logger.Debug("history: nothing to redo")
		return false
	}

	h.cursor++
	h.setVisible(h.entries[h.cursor], true)
	return true
}

// Reset discards every entry. The surface is left untouched; clearing it
// is the caller's job.
func (h *History) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = nil
	h.cursor = -1
	h.logger.Debug("history: reset")
}

func (h *History) setVisible(e Entry, visible bool) {
	for _, hd := range e.handles {
		h.surface.SetVisible(hd, visible)
	}
}

// Len returns the number of entries, visible or not.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Cursor returns the index of the last visible entry, or -1.
func (h *History) Cursor() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cursor
}

func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cursor >= 0
}

func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cursor < len(h.entries)-1
}

// Entry returns the entry at position i.
func (h *History) Entry(i int) (Entry, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if i < 0 || i >= len(h.entries) {
		return Entry{}, false
	}
	return h.entries[i], true
}

// IsVisible reports whether the entry at position i is currently shown.
func (h *History) IsVisible(i int) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return i >= 0 && i < len(h.entries) && i <= h.cursor
}
