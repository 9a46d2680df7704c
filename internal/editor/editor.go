// Package editor turns pointer and key gestures into canvas primitives and
// records them in the drawing history.
package editor

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/makulo1234/termpaint/internal/canvas"
	"github.com/makulo1234/termpaint/internal/history"
)

// caretRune marks the insertion point while text is being typed.
const caretRune = '▏'

// Editor owns the drawing state of one canvas.
type Editor struct {
	state   EditorState
	canvas  *canvas.Canvas
	history *history.History
	logger  *slog.Logger

	pressed bool
	anchor  canvas.Point
	last    canvas.Point
	hover   canvas.Point
	stroke  history.Stroke

	vertices []canvas.Point

	composing bool
	textAt    canvas.Point
	text      []rune
}

func New(c *canvas.Canvas, h *history.History, state EditorState, logger *slog.Logger) *Editor {
	if logger == nil {
		logger = slog.Default()
	}
	state.Width = clampWidth(state.Width)
	state.EraserWidth = clampWidth(state.EraserWidth)
	return &Editor{
		state:   state,
		canvas:  c,
		history: h,
		logger:  logger,
	}
}

func (e *Editor) State() EditorState { return e.state }

func (e *Editor) Canvas() *canvas.Canvas { return e.canvas }

func (e *Editor) History() *history.History { return e.history }

// SetTool switches tools. Text being typed is committed and an unfinished
// polygon is dropped.
func (e *Editor) SetTool(t Tool) error {
	if t == e.state.Tool {
		return nil
	}
	err := e.finish()
	e.state.Tool = t
	return err
}

func (e *Editor) SetColor(c colorful.Color) {
	e.state.Color = c
}

// SetWidth sets the stroke width of the current tool, clamped to
// MinWidth..MaxWidth.
func (e *Editor) SetWidth(w int) {
	if e.state.Tool == ToolEraser {
		e.state.EraserWidth = clampWidth(w)
		return
	}
	e.state.Width = clampWidth(w)
}

// Width returns the stroke width the current tool draws with.
func (e *Editor) Width() int {
	if e.state.Tool == ToolEraser {
		return e.state.EraserWidth
	}
	return e.state.Width
}

func (e *Editor) style() canvas.Style {
	if e.state.Tool == ToolEraser {
		return canvas.Style{Color: e.canvas.Background(), Width: e.state.EraserWidth}
	}
	return canvas.Style{Color: e.state.Color, Width: e.state.Width}
}

// Composing reports whether text input is in progress.
func (e *Editor) Composing() bool { return e.composing }

// Dragging reports whether the primary button is held for the current tool.
func (e *Editor) Dragging() bool { return e.pressed }

// Busy reports whether a gesture is in progress.
func (e *Editor) Busy() bool {
	return e.pressed || e.composing || len(e.vertices) > 0
}

// Press handles the primary button going down at pt.
func (e *Editor) Press(pt canvas.Point) error {
	e.hover = pt
	switch t := e.state.Tool; {
	case t.freehand():
		// A release the terminal never reported leaves the previous
		// stroke open; it is recorded before the new one starts.
		var err error
		if e.pressed {
			err = e.endStroke()
		}
		e.pressed = true
		e.last = pt
		e.stroke.Reset()
		return err
	case t.dragged():
		e.pressed = true
		e.anchor = pt
		e.last = pt
	case t == ToolPoint:
		return e.commit(canvas.KindPoint, []canvas.Point{pt})
	case t == ToolPolygon:
		if n := len(e.vertices); n == 0 || e.vertices[n-1] != pt {
			e.vertices = append(e.vertices, pt)
		}
	case t == ToolText:
		var err error
		if e.composing {
			err = e.CommitText()
		}
		e.composing = true
		e.textAt = pt
		e.text = e.text[:0]
		return err
	}
	return nil
}

// Drag handles pointer motion with the primary button held.
func (e *Editor) Drag(pt canvas.Point) error {
	e.hover = pt
	if !e.pressed {
		return nil
	}
	if e.state.Tool.freehand() {
		if pt == e.last {
			return nil
		}
		h, err := e.canvas.Create(canvas.KindLine, []canvas.Point{e.last, pt}, e.style())
		if err != nil {
			return err
		}
		e.stroke.Add(h)
	}
	e.last = pt
	return nil
}

// Hover tracks the pointer with no button held, for previews.
func (e *Editor) Hover(pt canvas.Point) {
	e.hover = pt
}

// Release handles the primary button going up at pt.
func (e *Editor) Release(pt canvas.Point) error {
	if !e.pressed {
		e.hover = pt
		return nil
	}
	if err := e.Drag(pt); err != nil {
		e.pressed = false
		return err
	}
	e.pressed = false

	switch t := e.state.Tool; {
	case t.freehand():
		return e.endStroke()
	case t.dragged():
		if pt == e.anchor {
			return nil
		}
		return e.commit(shapeKind(t), []canvas.Point{e.anchor, pt})
	}
	return nil
}

// RightClick finishes a polygon or the text being typed.
func (e *Editor) RightClick(pt canvas.Point) error {
	e.hover = pt
	switch e.state.Tool {
	case ToolPolygon:
		return e.closePolygon()
	case ToolText:
		return e.CommitText()
	}
	return nil
}

func (e *Editor) endStroke() error {
	entry, ok := e.stroke.Entry()
	e.stroke.Reset()
	if !ok {
		e.logger.Debug("editor: empty stroke dropped")
		return nil
	}
	if err := e.history.Record(entry); err != nil {
		return fmt.Errorf("recording stroke: %w", err)
	}
	return nil
}

func (e *Editor) closePolygon() error {
	vertices := e.vertices
	e.vertices = nil
	if len(vertices) < 2 {
		return nil
	}
	return e.commit(canvas.KindPolygon, vertices)
}

func (e *Editor) commit(kind canvas.Kind, points []canvas.Point) error {
	h, err := e.canvas.Create(kind, points, e.style())
	if err != nil {
		return err
	}
	if err := e.history.Record(history.Single(h)); err != nil {
		return fmt.Errorf("recording %s: %w", kind, err)
	}
	return nil
}

// TypeRune appends r to the text being typed.
func (e *Editor) TypeRune(r rune) {
	if e.composing {
		e.text = append(e.text, r)
	}
}

// Backspace deletes the last typed rune.
func (e *Editor) Backspace() {
	if e.composing && len(e.text) > 0 {
		e.text = e.text[:len(e.text)-1]
	}
}

// CommitText places the typed text on the canvas. Empty text is dropped.
func (e *Editor) CommitText() error {
	if !e.composing {
		return nil
	}
	e.composing = false
	text := string(e.text)
	e.text = e.text[:0]
	if text == "" {
		return nil
	}

	h, err := e.canvas.CreateText(e.textAt, text, e.style())
	if err != nil {
		return err
	}
	if err := e.history.Record(history.Single(h)); err != nil {
		return fmt.Errorf("recording text: %w", err)
	}
	return nil
}

// Cancel abandons the gesture in progress. A freehand stroke already on
// the canvas is kept and recorded.
func (e *Editor) Cancel() error {
	var err error
	if e.pressed && e.state.Tool.freehand() {
		err = e.endStroke()
	}
	e.drop()
	return err
}

// drop forgets the gesture in progress without recording anything.
func (e *Editor) drop() {
	e.pressed = false
	e.stroke.Reset()
	e.vertices = nil
	e.composing = false
	e.text = e.text[:0]
}

// pending reports whether finishing the gesture in progress would record
// an entry.
func (e *Editor) pending() bool {
	return e.stroke.Len() > 0 || (e.composing && len(e.text) > 0)
}

// finish completes what can be completed and drops the rest.
func (e *Editor) finish() error {
	if err := e.CommitText(); err != nil {
		return errors.Join(err, e.Cancel())
	}
	return e.Cancel()
}

// Undo hides the most recent entry. Pending gestures are finished first.
func (e *Editor) Undo() (bool, error) {
	err := e.finish()
	return e.history.Undo(), err
}

// Redo shows the most recently undone entry. Recording would discard that
// entry, so a gesture that would record leaves Redo a no-op and is kept;
// anything else in progress is dropped.
func (e *Editor) Redo() bool {
	if e.pending() {
		e.logger.Debug("editor: redo skipped, gesture in progress")
		return false
	}
	e.drop()
	return e.history.Redo()
}

// New clears the canvas and forgets the history.
func (e *Editor) New() error {
	err := e.Cancel()
	e.history.Reset()
	e.canvas.ClearAll()
	e.logger.Info("editor: new canvas")
	return err
}

// Import places an image with its top-left corner at at. thumb is img
// sampled down to one pixel per cell.
func (e *Editor) Import(img, thumb image.Image, at canvas.Point) error {
	if err := e.finish(); err != nil {
		return err
	}
	h, err := e.canvas.CreateImage(at, img, thumb)
	if err != nil {
		return err
	}
	if err := e.history.Record(history.Single(h)); err != nil {
		return fmt.Errorf("recording image: %w", err)
	}
	b := thumb.Bounds()
	e.logger.Info("editor: image placed", "x", at.X, "y", at.Y, "cols", b.Dx(), "rows", b.Dy())
	return nil
}

// Preview returns transient primitives for the gesture in progress. They
// are drawn over the canvas but never retained.
func (e *Editor) Preview() []canvas.Primitive {
	style := e.style()
	switch t := e.state.Tool; {
	case t.dragged() && e.pressed && e.last != e.anchor:
		return []canvas.Primitive{{Kind: shapeKind(t), Points: []canvas.Point{e.anchor, e.last}, Style: style}}
	case t == ToolPolygon && len(e.vertices) > 0:
		var out []canvas.Primitive
		pts := append(append([]canvas.Point(nil), e.vertices...), e.hover)
		for i := 0; i+1 < len(pts); i++ {
			if pts[i] == pts[i+1] {
				continue
			}
			out = append(out, canvas.Primitive{Kind: canvas.KindLine, Points: []canvas.Point{pts[i], pts[i+1]}, Style: style})
		}
		if len(out) == 0 {
			out = append(out, canvas.Primitive{Kind: canvas.KindPoint, Points: []canvas.Point{e.vertices[0]}, Style: style})
		}
		return out
	case t == ToolText && e.composing:
		return []canvas.Primitive{{Kind: canvas.KindText, Points: []canvas.Point{e.textAt}, Text: string(e.text) + string(caretRune), Style: style}}
	}
	return nil
}

func shapeKind(t Tool) canvas.Kind {
	switch t {
	case ToolCircle:
		return canvas.KindOval
	case ToolRectangle:
		return canvas.KindRectangle
	default:
		return canvas.KindLine
	}
}
