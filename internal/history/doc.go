// Package history provides linear undo/redo for drawing operations.
//
// A History is an ordered slice of entries plus a cursor. Entries at or
// before the cursor are visible on the drawing surface; entries after it
// have been undone and are hidden. Visibility is never stored per entry,
// it is always derived from the cursor:
//
//	h := history.New(surface)
//	h.Record(history.Single(lineHandle))
//	h.Undo() // hides lineHandle
//	h.Redo() // shows it again
//
// # Entries
//
// An Entry is either a single primitive handle or a group of handles. A
// freehand stroke emits many short segments; collect them with a Stroke
// and record the resulting group so the whole stroke undoes as one unit.
//
// # Surface
//
// Undo and redo never delete or recreate geometry. They only toggle
// visibility through the Surface interface, so a redo restores exactly
// what was drawn.
package history
