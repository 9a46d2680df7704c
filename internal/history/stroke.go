package history

// Stroke collects the segments of one freehand stroke.
//
// The zero value is an empty stroke ready for use.
type Stroke struct {
	handles []Handle
}

// Add appends a segment handle. Null handles are ignored.
func (s *Stroke) Add(h Handle) {
	if h == 0 {
		return
	}
	s.handles = append(s.handles, h)
}

func (s *Stroke) Len() int { return len(s.handles) }

// Entry returns the stroke as a group entry. ok is false when the stroke
// captured no segments; such a stroke must not be recorded.
func (s *Stroke) Entry() (e Entry, ok bool) {
	if len(s.handles) == 0 {
		return Entry{}, false
	}
	return Group(s.handles...), true
}

// Reset empties the stroke for reuse.
func (s *Stroke) Reset() {
	s.handles = nil
}
