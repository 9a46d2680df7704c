package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/makulo1234/termpaint/internal/canvas"
	"github.com/makulo1234/termpaint/internal/editor"
)

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.editor.Canvas().Resize(msg.Width, msg.Height-toolbarRows-statusRows)
		m.ensureCursorInBounds()
		return m, nil

	case exportDoneMsg:
		m.handleExportDone(msg)
		return m, nil

	case importDoneMsg:
		m.handleImportDone(msg)
		return m, nil

	case tea.MouseMsg:
		cmd := m.handleMouse(msg)
		return m, cmd

	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		return m, cmd
	}
	return m, nil
}

func (m *model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.help || m.mode != ModeNormal {
		return nil
	}
	m.showCursor = false

	if msg.Y < toolbarRows && !m.editor.Dragging() {
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			if b, ok := hitButton(m.toolbarButtons(), msg.X, msg.Y); ok {
				return m.pressButton(b)
			}
		}
		return nil
	}

	// Positions past the edges are clamped so a drag that leaves the
	// canvas still ends on it.
	cols, rows := m.editor.Canvas().Size()
	p := canvas.Point{
		X: min(max(msg.X, 0), cols-1),
		Y: min(max(msg.Y-toolbarRows, 0), rows-1),
	}
	m.cursorX, m.cursorY = p.X, p.Y

	switch msg.Action {
	case tea.MouseActionPress:
		m.penDown = false
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.report(m.editor.Press(p))
		case tea.MouseButtonRight:
			m.report(m.editor.RightClick(p))
		}
	case tea.MouseActionMotion:
		if msg.Button == tea.MouseButtonLeft {
			m.report(m.editor.Drag(p))
		} else {
			m.editor.Hover(p)
		}
	case tea.MouseActionRelease:
		m.penDown = false
		m.report(m.editor.Release(p))
	}
	return nil
}

func (m *model) pressButton(b button) tea.Cmd {
	switch b.action {
	case actionTool:
		m.setTool(b.tool)
	case actionColor:
		m.selectColor(b.slot)
	case actionPickColor:
		m.startColorInput()
	case actionWidthDown:
		m.editor.SetWidth(m.editor.Width() - 1)
	case actionWidthUp:
		m.editor.SetWidth(m.editor.Width() + 1)
	case actionUndo:
		m.undo()
	case actionRedo:
		m.redo()
	case actionNew:
		return m.requestNewCanvas()
	case actionSave:
		m.startFileInput(FileOpSave)
	case actionImport:
		m.startFileInput(FileOpImport)
	case actionHelp:
		m.help = true
		m.helpScroll = 0
	}
	return nil
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.help {
		m.handleHelpKey(msg)
		return nil
	}

	switch m.mode {
	case ModeFileInput:
		return m.handleFileInputKey(msg)
	case ModeColorInput:
		m.handleColorInputKey(msg)
		return nil
	case ModeConfirm:
		return m.handleConfirmKey(msg)
	}

	if m.editor.Composing() {
		return m.handleTextKey(msg)
	}
	return m.handleNormalKey(msg)
}

func (m *model) handleHelpKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "esc", "q", "?":
		m.help = false
		m.helpScroll = 0
	case "j", "down":
		if m.helpScroll < len(helpLines)-1 {
			m.helpScroll++
		}
	case "k", "up":
		if m.helpScroll > 0 {
			m.helpScroll--
		}
	}
}

func (m *model) handleNormalKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	switch key {
	case "ctrl+c", "q":
		return m.requestQuit()
	case "esc":
		m.penDown = false
		m.report(m.editor.Cancel())
		m.errorMessage = ""
		m.successMessage = ""
	case "?":
		m.help = true
		m.helpScroll = 0
	case "u", "ctrl+z":
		m.undo()
	case "U", "ctrl+y":
		m.redo()
	case "n":
		return m.requestNewCanvas()
	case "s":
		m.startFileInput(FileOpSave)
	case "i":
		m.startFileInput(FileOpImport)
	case "#":
		m.startColorInput()
	case "[":
		m.editor.SetWidth(m.editor.Width() - 1)
	case "]":
		m.editor.SetWidth(m.editor.Width() + 1)
	case " ":
		m.togglePen()
	case "enter":
		m.showCursor = true
		m.report(m.editor.RightClick(m.cursorPoint()))
	case "left", "right", "up", "down", "shift+left", "shift+right", "shift+up", "shift+down":
		m.handleCursorMove(key, m.getMoveSpeed(key))
	default:
		if t, ok := toolForKey(key); ok {
			m.setTool(t)
		} else if slot, ok := paletteSlot(key, len(m.palette)); ok {
			m.selectColor(slot)
		}
	}
	return nil
}

// handleTextKey feeds keys to the text being typed. Tool and action keys
// are plain letters here.
func (m *model) handleTextKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m.requestQuit()
	case tea.KeyCtrlZ:
		m.undo()
	case tea.KeyCtrlY:
		m.redo()
	case tea.KeyEnter:
		m.report(m.editor.CommitText())
	case tea.KeyEsc:
		m.report(m.editor.Cancel())
	case tea.KeyBackspace:
		m.editor.Backspace()
	case tea.KeySpace:
		m.editor.TypeRune(' ')
	case tea.KeyCtrlV:
		text, err := readClipboardText()
		if m.report(err) {
			return nil
		}
		for _, r := range stripControl(strings.ReplaceAll(text, "\n", " ")) {
			m.editor.TypeRune(r)
		}
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			m.editor.TypeRune(r)
		}
	}
	return nil
}

func (m *model) handleFileInputKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m.requestQuit()
	case tea.KeyEsc:
		m.mode = ModeNormal
		m.errorMessage = ""
		m.successMessage = ""
	case tea.KeyEnter:
		return m.submitFileInput()
	case tea.KeyBackspace:
		if r := []rune(m.filename); len(r) > 0 {
			m.filename = string(r[:len(r)-1])
		}
		m.selectedFile = -1
	case tea.KeyUp:
		m.selectFile(-1)
	case tea.KeyDown, tea.KeyTab:
		m.selectFile(1)
	case tea.KeyCtrlV:
		text, err := readClipboardText()
		if m.report(err) {
			return nil
		}
		m.filename += pastedPath(text)
		m.selectedFile = -1
	case tea.KeySpace:
		m.filename += " "
	case tea.KeyRunes:
		m.filename += string(msg.Runes)
		m.selectedFile = -1
	}
	return nil
}

func (m *model) startColorInput() {
	m.penDown = false
	m.report(m.editor.Cancel())
	m.mode = ModeColorInput
	m.colorInput = ""
	m.errorMessage = ""
	m.successMessage = ""
}

func (m *model) handleColorInputKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = ModeNormal
		m.errorMessage = ""
	case tea.KeyEnter:
		c, err := parseColor(m.colorInput)
		if err != nil {
			m.errorMessage = fmt.Sprintf("%q is not a color", m.colorInput)
			return
		}
		m.editor.SetColor(c)
		m.colorIndex = -1
		for i, p := range m.palette {
			if p.Hex() == c.Hex() {
				m.colorIndex = i
				break
			}
		}
		m.mode = ModeNormal
		m.errorMessage = ""
	case tea.KeyBackspace:
		if n := len(m.colorInput); n > 0 {
			m.colorInput = m.colorInput[:n-1]
		}
	case tea.KeyRunes:
		m.colorInput += string(msg.Runes)
	}
}

func (m *model) handleConfirmKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y", "enter":
		m.mode = ModeNormal
		switch m.confirmAction {
		case ConfirmQuit:
			return tea.Quit
		case ConfirmNewCanvas:
			m.newCanvas()
		case ConfirmOverwriteFile:
			return m.save(m.pendingPath)
		}
	case "n", "N", "esc":
		m.mode = ModeNormal
		m.pendingPath = ""
		m.successMessage = ""
	}
	return nil
}

func (m *model) requestQuit() tea.Cmd {
	if !m.config.Confirmations {
		return tea.Quit
	}
	m.mode = ModeConfirm
	m.confirmAction = ConfirmQuit
	return nil
}

func (m *model) requestNewCanvas() tea.Cmd {
	m.penDown = false
	m.report(m.editor.Cancel())
	if m.config.Confirmations && m.editor.Canvas().Len() > 0 {
		m.mode = ModeConfirm
		m.confirmAction = ConfirmNewCanvas
		return nil
	}
	m.newCanvas()
	return nil
}

func (m *model) setTool(t editor.Tool) {
	m.penDown = false
	m.report(m.editor.SetTool(t))
}

func (m *model) selectColor(slot int) {
	if slot < 0 || slot >= len(m.palette) {
		return
	}
	m.colorIndex = slot
	m.editor.SetColor(m.palette[slot])
}

func toolForKey(key string) (editor.Tool, bool) {
	for t, k := range toolKeys {
		if k == key {
			return t, true
		}
	}
	return 0, false
}

// paletteSlot maps the digit keys 1..n to palette slots.
func paletteSlot(key string, n int) (int, bool) {
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return 0, false
	}
	slot := int(key[0] - '1')
	return slot, slot < n
}
