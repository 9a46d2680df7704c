package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/makulo1234/termpaint/internal/canvas"
	"github.com/makulo1234/termpaint/internal/export"
	"github.com/makulo1234/termpaint/internal/imageio"
)

// saveCmd exports a snapshot off the UI goroutine.
func saveCmd(path string, snap canvas.Snapshot, opts export.Options) tea.Cmd {
	return func() tea.Msg {
		return exportDoneMsg{path: path, err: export.Save(path, snap, opts)}
	}
}

// importCmd decodes an image and samples it to fit from at to the
// bottom-right corner of the canvas.
func importCmd(path string, at canvas.Point, maxCols, maxRows int) tea.Cmd {
	return func() tea.Msg {
		img, _, err := imageio.Load(path)
		if err != nil {
			return importDoneMsg{path: path, err: err}
		}
		cols, rows := imageio.Fit(img, maxCols, maxRows)
		if cols == 0 || rows == 0 {
			return importDoneMsg{path: path, err: fmt.Errorf("no room for the image at %d,%d", at.X, at.Y)}
		}
		return importDoneMsg{
			path:  path,
			img:   img,
			thumb: imageio.Sample(img, cols, rows),
			at:    at,
		}
	}
}

func (m *model) startFileInput(op FileOperation) {
	m.penDown = false
	m.report(m.editor.Cancel())
	m.mode = ModeFileInput
	m.fileOp = op
	m.filename = ""
	m.errorMessage = ""
	m.successMessage = ""
	m.fileList = nil
	m.selectedFile = -1
	if op == FileOpImport {
		m.scanImageFiles()
	}
}

// scanImageFiles lists importable images in the save directory, or the
// working directory when none is configured.
func (m *model) scanImageFiles() {
	m.fileList = []string{}
	m.selectedFile = -1

	dir := m.config.SaveDirectory
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return
		}
		dir = wd
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !entry.IsDir() && slices.Contains(imageExtensions, ext) {
			m.fileList = append(m.fileList, entry.Name())
		}
	}
	sort.Strings(m.fileList)

	if len(m.fileList) > 0 {
		m.selectedFile = 0
		m.filename = m.fileList[0]
	}
}

func (m *model) selectFile(delta int) {
	if len(m.fileList) == 0 {
		return
	}
	m.selectedFile = (m.selectedFile + delta + len(m.fileList)) % len(m.fileList)
	m.filename = m.fileList[m.selectedFile]
}

// submitFileInput acts on the file name typed in the prompt.
func (m *model) submitFileInput() tea.Cmd {
	name := strings.TrimSpace(m.filename)
	if name == "" {
		m.errorMessage = "No file name given"
		return nil
	}

	switch m.fileOp {
	case FileOpSave:
		if filepath.Ext(name) == "" {
			name += ".png"
		}
		if _, err := export.FormatFromPath(name); err != nil {
			m.errorMessage = fmt.Sprintf("Save as %s", strings.Join(export.Extensions, ", "))
			return nil
		}
		path := m.config.GetSavePath(name)
		if _, err := os.Stat(path); err == nil && m.config.Confirmations {
			m.pendingPath = path
			m.mode = ModeConfirm
			m.confirmAction = ConfirmOverwriteFile
			return nil
		}
		return m.save(path)

	case FileOpImport:
		path := m.config.GetSavePath(name)
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			m.errorMessage = fmt.Sprintf("%s does not exist", path)
			return nil
		}
		m.mode = ModeNormal
		cols, rows := m.editor.Canvas().Size()
		at := m.cursorPoint()
		m.successMessage = "Importing " + filepath.Base(path) + "..."
		return importCmd(path, at, cols-at.X, rows-at.Y)
	}
	return nil
}

func (m *model) save(path string) tea.Cmd {
	m.mode = ModeNormal
	m.exporting = true
	m.successMessage = "Saving " + filepath.Base(path) + "..."
	m.logger.Info("export started", "path", path)
	return saveCmd(path, m.editor.Canvas().Snapshot(), m.config.ExportOptions())
}

func (m *model) handleExportDone(msg exportDoneMsg) {
	m.exporting = false
	if msg.err != nil {
		m.report(fmt.Errorf("save %s: %w", filepath.Base(msg.path), msg.err))
		return
	}
	m.logger.Info("export finished", "path", msg.path)
	m.errorMessage = ""
	m.successMessage = "Saved " + msg.path
}

func (m *model) handleImportDone(msg importDoneMsg) {
	if msg.err != nil {
		m.report(fmt.Errorf("import %s: %w", filepath.Base(msg.path), msg.err))
		return
	}
	if m.report(m.editor.Import(msg.img, msg.thumb, msg.at)) {
		return
	}
	m.errorMessage = ""
	m.successMessage = "Imported " + filepath.Base(msg.path)
}
