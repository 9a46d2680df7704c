package editor

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

type Tool int

const (
	ToolPen Tool = iota
	ToolLine
	ToolCircle
	ToolRectangle
	ToolPolygon
	ToolPoint
	ToolText
	ToolEraser
)

// Tools lists every tool in toolbar order.
var Tools = []Tool{ToolPen, ToolLine, ToolCircle, ToolRectangle, ToolPolygon, ToolPoint, ToolText, ToolEraser}

var toolNames = map[Tool]string{
	ToolPen:       "pen",
	ToolLine:      "line",
	ToolCircle:    "circle",
	ToolRectangle: "rectangle",
	ToolPolygon:   "polygon",
	ToolPoint:     "point",
	ToolText:      "text",
	ToolEraser:    "eraser",
}

func (t Tool) String() string {
	if name, ok := toolNames[t]; ok {
		return name
	}
	return fmt.Sprintf("tool(%d)", int(t))
}

// ParseTool looks a tool up by name.
func ParseTool(name string) (Tool, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for t, n := range toolNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown tool %q", name)
}

// freehand reports whether the tool records a grouped stroke.
func (t Tool) freehand() bool {
	return t == ToolPen || t == ToolEraser
}

// dragged reports whether the tool spans a shape between press and release.
func (t Tool) dragged() bool {
	return t == ToolLine || t == ToolCircle || t == ToolRectangle
}

const (
	MinWidth = 1
	MaxWidth = 10
)

// EditorState is the user's current drawing setup.
type EditorState struct {
	Tool        Tool
	Color       colorful.Color
	Width       int
	EraserWidth int
}

func clampWidth(w int) int {
	return min(max(w, MinWidth), MaxWidth)
}
