package main

func (m *model) undo() {
	m.penDown = false
	ok, err := m.editor.Undo()
	if m.report(err) {
		return
	}
	if !ok {
		m.successMessage = "Nothing to undo"
		return
	}
	m.successMessage = ""
}

func (m *model) redo() {
	if m.editor.Redo() {
		m.penDown = false
		m.successMessage = ""
		return
	}
	if m.editor.Busy() {
		m.successMessage = "Finish the current stroke or text to redo"
		return
	}
	m.penDown = false
	m.successMessage = "Nothing to redo"
}

// newCanvas starts over with an empty canvas and history.
func (m *model) newCanvas() {
	m.penDown = false
	if m.report(m.editor.New()) {
		return
	}
	m.errorMessage = ""
	m.successMessage = "New canvas"
}

// report shows err in the status line and logs it. It returns true if err
// was not nil.
func (m *model) report(err error) bool {
	if err == nil {
		return false
	}
	m.logger.Error("operation failed", "err", err)
	m.errorMessage = err.Error()
	m.successMessage = ""
	return true
}
