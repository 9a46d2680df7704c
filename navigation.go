package main

import "github.com/makulo1234/termpaint/internal/canvas"

// handleCursorMove moves the keyboard cursor. While the keyboard pen is
// down the move drags the current tool, so the canvas can be drawn on
// without a mouse.
func (m *model) handleCursorMove(key string, speed int) {
	switch key {
	case "left", "shift+left":
		m.cursorX -= speed
	case "right", "shift+right":
		m.cursorX += speed
	case "up", "shift+up":
		m.cursorY -= speed
	case "down", "shift+down":
		m.cursorY += speed
	}
	m.ensureCursorInBounds()
	m.showCursor = true

	p := m.cursorPoint()
	if m.penDown {
		m.report(m.editor.Drag(p))
	} else {
		m.editor.Hover(p)
	}
}

func (m *model) getMoveSpeed(key string) int {
	switch key {
	case "shift+left", "shift+right", "shift+up", "shift+down":
		return 2
	default:
		return 1
	}
}

// togglePen presses or releases the primary button at the keyboard cursor.
func (m *model) togglePen() {
	p := m.cursorPoint()
	m.showCursor = true
	if m.penDown {
		m.penDown = false
		m.report(m.editor.Release(p))
		return
	}
	m.report(m.editor.Press(p))
	m.penDown = m.editor.Dragging()
}

func (m *model) cursorPoint() canvas.Point {
	return canvas.Point{X: m.cursorX, Y: m.cursorY}
}

func (m *model) ensureCursorInBounds() {
	cols, rows := m.editor.Canvas().Size()
	m.cursorX = min(max(m.cursorX, 0), cols-1)
	m.cursorY = min(max(m.cursorY, 0), rows-1)
}
