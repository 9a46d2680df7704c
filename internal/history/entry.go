package history

import "fmt"

// Handle is an opaque reference to a primitive owned by a drawing surface.
// The zero Handle is the null handle and is never issued by a surface.
type Handle uint64

// Kind tags the variant held by an Entry.
type Kind int

const (
	KindInvalid Kind = iota
	KindSingle
	KindGroup
)

func (k Kind) String() string {
	switch k {
	case KindSingle:
		return "single"
	case KindGroup:
		return "group"
	default:
		return "invalid"
	}
}

// Entry is one undoable unit of drawing work.
type Entry struct {
	kind    Kind
	handles []Handle
}

// Single returns an entry for one committed primitive.
func Single(h Handle) Entry {
	return Entry{kind: KindSingle, handles: []Handle{h}}
}

// Group returns an entry whose primitives change visibility together.
func Group(handles ...Handle) Entry {
	hs := make([]Handle, len(handles))
	copy(hs, handles)
	return Entry{kind: KindGroup, handles: hs}
}

func (e Entry) Kind() Kind { return e.kind }

// Len returns the number of primitives referenced by the entry.
func (e Entry) Len() int { return len(e.handles) }

// Handles returns a copy of the handles referenced by the entry.
func (e Entry) Handles() []Handle {
	hs := make([]Handle, len(e.handles))
	copy(hs, e.handles)
	return hs
}

func (e Entry) String() string {
	return fmt.Sprintf("%s%v", e.kind, e.handles)
}

func (e Entry) validate() error {
	switch e.kind {
	case KindSingle:
		if len(e.handles) != 1 {
			return fmt.Errorf("single entry with %d handles: %w", len(e.handles), ErrInvalidEntry)
		}
	case KindGroup:
		if len(e.handles) == 0 {
			return ErrEmptyEntry
		}
	default:
		return ErrInvalidEntry
	}
	for i, h := range e.handles {
		if h == 0 {
			return fmt.Errorf("handle %d of %s entry: %w", i, e.kind, ErrInvalidHandle)
		}
	}
	return nil
}
