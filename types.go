package main

import (
	"image"
	"log/slog"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/makulo1234/termpaint/internal/canvas"
	"github.com/makulo1234/termpaint/internal/editor"
)

type model struct {
	width          int
	height         int
	cursorX        int
	cursorY        int
	showCursor     bool
	penDown        bool
	editor         *editor.Editor
	config         *Config
	logger         *slog.Logger
	palette        []colorful.Color
	colorIndex     int // palette slot of the current color, -1 for a custom color
	mode           Mode
	help           bool
	helpScroll     int
	fileOp         FileOperation
	filename       string
	fileList       []string
	selectedFile   int
	pendingPath    string
	confirmAction  ConfirmAction
	colorInput     string
	exporting      bool
	errorMessage   string
	successMessage string
}

type exportDoneMsg struct {
	path string
	err  error
}

type importDoneMsg struct {
	path  string
	img   image.Image
	thumb image.Image
	at    canvas.Point
	err   error
}
