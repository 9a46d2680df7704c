package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/makulo1234/termpaint/internal/editor"
)

type buttonAction int

const (
	actionNone buttonAction = iota
	actionTool
	actionColor
	actionPickColor
	actionWidthDown
	actionWidthUp
	actionUndo
	actionRedo
	actionNew
	actionSave
	actionImport
	actionHelp
)

type button struct {
	action buttonAction
	label  string
	row    int
	x0, x1 int // columns [x0, x1)
	tool   editor.Tool
	slot   int
}

var toolKeys = map[editor.Tool]string{
	editor.ToolPen:       "p",
	editor.ToolLine:      "l",
	editor.ToolCircle:    "c",
	editor.ToolRectangle: "r",
	editor.ToolPolygon:   "g",
	editor.ToolPoint:     "o",
	editor.ToolText:      "t",
	editor.ToolEraser:    "e",
}

var (
	buttonStyle       = lipgloss.NewStyle().Background(lipgloss.Color("#3a3a3a")).Foreground(lipgloss.Color("#e0e0e0"))
	activeButtonStyle = lipgloss.NewStyle().Background(lipgloss.Color("#e0e0e0")).Foreground(lipgloss.Color("#000000")).Bold(true)
	labelStyle        = lipgloss.NewStyle().Faint(true)
)

// toolbarButtons lays out both toolbar rows. View and hit testing share it.
func (m model) toolbarButtons() []button {
	var buttons []button

	x := 0
	for _, t := range editor.Tools {
		label := fmt.Sprintf(" %s %s ", toolKeys[t], t)
		w := lipgloss.Width(label)
		buttons = append(buttons, button{action: actionTool, label: label, row: 0, x0: x, x1: x + w, tool: t})
		x += w + 1
	}

	x = 0
	for i := range m.palette {
		label := "   "
		if i == m.colorIndex {
			label = " ■ "
		}
		buttons = append(buttons, button{action: actionColor, label: label, row: 1, x0: x, x1: x + 3, slot: i})
		x += 3
	}
	x++

	rest := []struct {
		action buttonAction
		label  string
	}{
		{actionPickColor, " # "},
		{actionWidthDown, " [ "},
		{actionNone, fmt.Sprintf(" width %2d ", m.editor.Width())},
		{actionWidthUp, " ] "},
		{actionUndo, " undo "},
		{actionRedo, " redo "},
		{actionNew, " new "},
		{actionSave, " save "},
		{actionImport, " import "},
		{actionHelp, " ? "},
	}
	for _, r := range rest {
		w := lipgloss.Width(r.label)
		buttons = append(buttons, button{action: r.action, label: r.label, row: 1, x0: x, x1: x + w})
		x += w + 1
	}
	return buttons
}

func hitButton(buttons []button, x, y int) (button, bool) {
	for _, b := range buttons {
		if b.row == y && x >= b.x0 && x < b.x1 && b.action != actionNone {
			return b, true
		}
	}
	return button{}, false
}

func (m model) renderToolbarRow(buttons []button, row int) string {
	var sb strings.Builder
	col := 0
	state := m.editor.State()
	for _, b := range buttons {
		if b.row != row {
			continue
		}
		if b.x0 > col {
			sb.WriteString(strings.Repeat(" ", b.x0-col))
		}
		switch b.action {
		case actionTool:
			if b.tool == state.Tool {
				sb.WriteString(activeButtonStyle.Render(b.label))
			} else {
				sb.WriteString(buttonStyle.Render(b.label))
			}
		case actionColor:
			swatch := m.palette[b.slot]
			fg := "#000000"
			if l, _, _ := swatch.Lab(); l < 0.5 {
				fg = "#ffffff"
			}
			sb.WriteString(lipgloss.NewStyle().
				Background(lipgloss.Color(swatch.Hex())).
				Foreground(lipgloss.Color(fg)).
				Render(b.label))
		case actionNone:
			sb.WriteString(labelStyle.Render(b.label))
		default:
			sb.WriteString(buttonStyle.Render(b.label))
		}
		col = b.x1
	}
	return sb.String()
}
