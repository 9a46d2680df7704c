package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/makulo1234/termpaint/internal/canvas"
)

var helpLines = []string{
	"termpaint Help",
	"==============",
	"",
	"Drawing:",
	"--------",
	"  Left drag        Draw with the current tool",
	"  Right click      Close a polygon, or finish typed text",
	"  ←/↓/↑/→          Move the keyboard cursor",
	"  Shift+arrows     Move the cursor 2x faster",
	"  Space            Put the keyboard pen down / lift it",
	"  Enter            Right click at the keyboard cursor",
	"  Esc              Cancel the current gesture",
	"",
	"Tools:",
	"------",
	"  p                Pen (freehand)",
	"  l                Line",
	"  c                Circle / oval",
	"  r                Rectangle",
	"  g                Polygon (click vertices, right click to close)",
	"  o                Point",
	"  t                Text (click, type, Enter or right click to place)",
	"  e                Eraser",
	"",
	"Color and width:",
	"----------------",
	"  1-8              Pick a palette color",
	"  #                Type a hex color (#rrggbb or #rgb)",
	"  [ / ]            Thinner / thicker stroke",
	"",
	"History:",
	"--------",
	"  u / Ctrl+Z       Undo the last stroke or shape",
	"  U / Ctrl+Y       Redo the last undone stroke or shape",
	"  n                New canvas (clears the history)",
	"",
	"Files:",
	"------",
	"  s                Save as .png, .pdf or .ps",
	"  i                Import an image at the cursor",
	"  Ctrl+V           Paste a path into the file prompt",
	"",
	"General:",
	"  ?                Toggle this help screen",
	"  q/Ctrl+C         Quit",
}

var (
	statusStyle = lipgloss.NewStyle().Faint(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f5f")).Bold(true)
)

func (m model) View() string {
	if m.help {
		return m.helpView()
	}

	var result strings.Builder
	buttons := m.toolbarButtons()
	for row := 0; row < toolbarRows; row++ {
		result.WriteString(m.renderToolbarRow(buttons, row))
		result.WriteString("\n")
	}

	grid := m.editor.Canvas().Render(m.editor.Preview()...)
	bg := m.editor.Canvas().Background()
	for y, row := range grid {
		cursor := -1
		if m.showCursor && y == m.cursorY {
			cursor = m.cursorX
		}
		result.WriteString(renderRow(row, bg, cursor))
		result.WriteString("\n")
	}

	result.WriteString(m.statusLine())
	return result.String()
}

// renderRow styles runs of same-colored cells together. The cell at
// cursor, if any, is drawn reversed.
func renderRow(row []canvas.Cell, bg colorful.Color, cursor int) string {
	var sb strings.Builder
	base := lipgloss.NewStyle().Background(lipgloss.Color(bg.Hex()))

	var run strings.Builder
	runColor := ""
	flush := func() {
		if run.Len() == 0 {
			return
		}
		style := base
		if runColor != "" {
			style = style.Foreground(lipgloss.Color(runColor))
		}
		sb.WriteString(style.Render(run.String()))
		run.Reset()
	}

	for x, cell := range row {
		r, color := ' ', ""
		if cell.Set {
			r, color = cell.Rune, cell.Color.Hex()
		}
		if x == cursor {
			flush()
			cursorRune := r
			if !cell.Set {
				cursorRune = '+'
			}
			sb.WriteString(base.Reverse(true).Render(string(cursorRune)))
			continue
		}
		if color != runColor {
			flush()
			runColor = color
		}
		run.WriteRune(r)
	}
	flush()
	return sb.String()
}

func (m model) statusLine() string {
	var statusLine string
	switch m.mode {
	case ModeFileInput:
		opStr := "Save as"
		if m.fileOp == FileOpImport {
			opStr = "Import"
		}
		statusLine = fmt.Sprintf("Mode: FILE | %s: %s", opStr, m.filename)
		if m.fileOp == FileOpImport && len(m.fileList) > 0 {
			statusLine += fmt.Sprintf(" (%d/%d)", m.selectedFile+1, len(m.fileList))
		}
		if m.errorMessage != "" {
			statusLine += " | " + errorStyle.Render("ERROR: "+m.errorMessage)
		}
		statusLine += " | Enter=confirm, Ctrl+V=paste, Esc=cancel"
		return statusLine
	case ModeColorInput:
		statusLine = fmt.Sprintf("Mode: COLOR | Hex color: #%s", strings.TrimPrefix(m.colorInput, "#"))
		if m.errorMessage != "" {
			statusLine += " | " + errorStyle.Render("ERROR: "+m.errorMessage)
		}
		return statusLine + " | Enter=confirm, Esc=cancel"
	case ModeConfirm:
		var message string
		switch m.confirmAction {
		case ConfirmQuit:
			message = "Quit termpaint? Unsaved drawing will be lost. (y/n)"
		case ConfirmNewCanvas:
			message = "Start a new canvas? Unsaved drawing will be lost. (y/n)"
		case ConfirmOverwriteFile:
			message = fmt.Sprintf("File %s already exists. Overwrite? (y/n)", m.pendingPath)
		}
		return "Mode: CONFIRM | " + message
	}

	state := m.editor.State()
	h := m.editor.History()
	swatch := lipgloss.NewStyle().Background(lipgloss.Color(state.Color.Hex())).Render("  ")
	status := fmt.Sprintf("Mode: %s | Tool: %s | Color: %s %s | Width: %d | History: %d/%d",
		m.modeString(), state.Tool, swatch, state.Color.Hex(), m.editor.Width(), h.Cursor()+1, h.Len())
	if m.showCursor {
		status += fmt.Sprintf(" | Cursor: (%d,%d)", m.cursorX, m.cursorY)
	}
	if m.penDown {
		status += " | PEN DOWN"
	}
	if m.successMessage != "" {
		status += " | " + m.successMessage
	}
	if m.errorMessage != "" {
		status += " | " + errorStyle.Render("ERROR: "+m.errorMessage)
	} else if m.successMessage == "" {
		status += statusStyle.Render(" | ? for help | q to quit")
	}
	return status
}

func (m model) modeString() string {
	switch {
	case m.mode == ModeNormal && m.editor.Composing():
		return "TEXT"
	case m.mode == ModeNormal:
		return "DRAW"
	case m.mode == ModeFileInput:
		return "FILE"
	case m.mode == ModeColorInput:
		return "COLOR"
	case m.mode == ModeConfirm:
		return "CONFIRM"
	default:
		return "UNKNOWN"
	}
}

func (m model) helpView() string {
	visibleHeight := m.height - 1
	if visibleHeight < 1 {
		visibleHeight = 1
	}

	startLine := m.helpScroll
	if startLine > len(helpLines)-visibleHeight {
		startLine = max(len(helpLines)-visibleHeight, 0)
	}
	endLine := min(startLine+visibleHeight, len(helpLines))

	result := strings.Join(helpLines[startLine:endLine], "\n")
	result += "\n" + fmt.Sprintf("Help (%d-%d of %d lines) | j/k to scroll, Esc to close",
		startLine+1, endLine, len(helpLines))
	return result
}
