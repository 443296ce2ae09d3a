package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureCursorInBounds()
		return m, nil

	case tea.MouseMsg:
		if m.mode == ModeNormal && !m.help && msg.Type == tea.MouseLeft {
			m.selectAt(msg.X, msg.Y-m.canvasTop())
		}
		return m, nil

	case tea.KeyMsg:
		if m.help && m.mode != ModeStartup {
			m.updateHelp(msg)
			return m, nil
		}

		var cmd tea.Cmd
		switch m.mode {
		case ModeStartup:
			cmd = m.updateStartup(msg)
		case ModeNormal:
			cmd = m.updateNormal(msg)
		case ModeTitleEdit:
			m.updateTitleEdit(msg)
		case ModeMove, ModeResize:
			m.updateDrag(msg)
		case ModeFileInput:
			m.updateFileInput(msg)
		case ModeConfirm:
			cmd = m.updateConfirm(msg)
		}
		return m, cmd
	}
	return m, nil
}

func (m *model) updateHelp(msg tea.KeyMsg) {
	switch msg.String() {
	case "j", "down":
		maxScroll := max(len(helpLines)-max(m.height-1, 1), 0)
		if m.helpScroll < maxScroll {
			m.helpScroll++
		}
	case "k", "up":
		if m.helpScroll > 0 {
			m.helpScroll--
		}
	default:
		m.help = false
		m.helpScroll = 0
	}
}

func (m *model) updateStartup(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "n":
		m.resetBuffer()
		m.currentBufferIndex = 0
		m.mode = ModeNormal
	case "o":
		m.beginFileInput(FileOpOpen)
		m.fromStartup = true
		m.openInNewBuffer = false
	case "q", "ctrl+c":
		return tea.Quit
	}
	return nil
}

// confirm asks before running action when confirmations are enabled, and
// runs it straight away otherwise.
func (m *model) confirm(action ConfirmAction) tea.Cmd {
	if m.config.Confirmations {
		m.mode = ModeConfirm
		m.confirmAction = action
		return nil
	}
	return m.runConfirmed(action)
}

func (m *model) updateNormal(msg tea.KeyMsg) tea.Cmd {
	doc := m.getDocument()
	key := msg.String()
	m.errorMessage = ""

	if msg.Type == tea.KeyEscape {
		m.zPanMode = false
		doc.ClearSelection()
		m.successMessage = ""
		return nil
	}
	if isMovementKey(key) {
		m.handleNavigation(key, m.getMoveSpeed(key))
		return nil
	}
	m.successMessage = ""
	if typ, ok := insertKeys[key]; ok {
		m.report(m.insert(typ))
		return nil
	}

	switch key {
	case "ctrl+c", "q":
		if !m.modified() {
			return tea.Quit
		}
		return m.confirm(ConfirmQuit)
	case "n":
		if !m.getCurrentBuffer().modified {
			m.resetBuffer()
			return nil
		}
		return m.confirm(ConfirmNewChart)
	case "N":
		m.addNewBuffer(m.newDocument(), "")
		m.cursorX, m.cursorY = 0, 0
	case "{":
		if len(m.buffers) > 1 {
			m.currentBufferIndex = (m.currentBufferIndex - 1 + len(m.buffers)) % len(m.buffers)
		}
	case "}":
		if len(m.buffers) > 1 {
			m.currentBufferIndex = (m.currentBufferIndex + 1) % len(m.buffers)
		}
	case "w":
		if !m.getCurrentBuffer().modified {
			m.closeBuffer()
			return nil
		}
		return m.confirm(ConfirmCloseBuffer)
	case "?":
		m.help = !m.help
	case "z":
		m.zPanMode = !m.zPanMode
	case " ":
		m.toggleSelection()
	case "ctrl+a":
		doc.SelectAll()
	case "e", "enter":
		m.report(m.startTitleEdit())
	case "m":
		m.report(m.startDrag(ModeMove))
	case "r":
		m.report(m.startDrag(ModeResize))
	case "d", "delete":
		if err := m.prepareDelete(); err != nil {
			m.report(err)
			return nil
		}
		return m.confirm(ConfirmDelete)
	case "a":
		m.report(m.link())
	case "A":
		m.report(m.unlink())
	case "f":
		m.report(m.flipLinks())
	case "c":
		if err := m.copySelection(); err != nil {
			m.report(err)
		} else {
			m.successMessage = "Copied"
		}
	case "x":
		m.report(m.cutSelection())
	case "p":
		m.report(m.paste())
	case "+", "=":
		doc.ZoomIn()
	case "-":
		doc.ZoomOut()
	case "0":
		doc.ResetZoom()
	case "g":
		doc.ShowGrid = !doc.ShowGrid
	case "G":
		doc.Snap = !doc.Snap
		m.successMessage = fmt.Sprintf("Snap to grid: %v", doc.Snap)
	case "u":
		m.undo()
	case "U", "ctrl+r":
		m.redo()
	case "s":
		m.beginFileInput(FileOpSave)
		if buf := m.getCurrentBuffer(); buf.filename != "" {
			m.filename = chartDisplayName(buf.filename)
		}
	case "S":
		m.mode = ModeConfirm
		m.confirmAction = ConfirmChooseExportType
	case "o", "O":
		m.beginFileInput(FileOpOpen)
		m.openInNewBuffer = key == "O"
	}
	return nil
}

func (m *model) report(err error) {
	if err != nil {
		m.errorMessage = err.Error()
		m.logger.Debug("command failed", zap.Error(err))
	}
}

func (m *model) updateTitleEdit(msg tea.KeyMsg) {
	if m.dialog == nil {
		m.mode = ModeNormal
		return
	}
	switch m.dialog.handleKey(msg) {
	case dialogApply:
		m.applyTitleEdit()
	case dialogCancel:
		m.dialog = nil
		m.mode = ModeNormal
	}
}

func (m *model) updateDrag(msg tea.KeyMsg) {
	key := msg.String()
	switch {
	case msg.Type == tea.KeyEscape:
		m.cancelDrag()
	case msg.Type == tea.KeyEnter:
		m.finishDrag()
	case isMovementKey(key):
		m.handleDrag(key, m.getMoveSpeed(key))
	}
}

func (m *model) beginFileInput(op FileOperation) {
	m.mode = ModeFileInput
	m.fileOp = op
	m.filename = ""
	m.errorMessage = ""
	if op == FileOpOpen {
		m.scanChartFiles()
	}
}

// listSelectionActive reports whether the typed name still matches the
// highlighted file, so up/down keep browsing the list.
func (m *model) listSelectionActive() bool {
	if m.fileOp != FileOpOpen || len(m.fileList) == 0 {
		return false
	}
	if m.filename == "" {
		return true
	}
	return m.selectedFileIndex >= 0 && m.selectedFileIndex < len(m.fileList) &&
		m.filename == chartDisplayName(m.fileList[m.selectedFileIndex])
}

func (m *model) updateFileInput(msg tea.KeyMsg) {
	switch {
	case msg.Type == tea.KeyEscape:
		if m.fromStartup {
			m.mode = ModeStartup
			m.fromStartup = false
		} else {
			m.mode = ModeNormal
		}
		m.filename = ""
		m.errorMessage = ""
	case (msg.Type == tea.KeyUp || msg.Type == tea.KeyDown) && m.listSelectionActive():
		n := len(m.fileList)
		switch {
		case m.selectedFileIndex < 0 && msg.Type == tea.KeyUp:
			m.selectedFileIndex = n - 1
		case m.selectedFileIndex < 0:
			m.selectedFileIndex = 0
		case msg.Type == tea.KeyUp:
			m.selectedFileIndex = (m.selectedFileIndex - 1 + n) % n
		default:
			m.selectedFileIndex = (m.selectedFileIndex + 1) % n
		}
		m.filename = chartDisplayName(m.fileList[m.selectedFileIndex])
	case msg.Type == tea.KeyEnter:
		m.runFileOperation()
	case msg.Type == tea.KeyBackspace:
		if len(m.filename) > 0 {
			runes := []rune(m.filename)
			m.filename = string(runes[:len(runes)-1])
			m.selectedFileIndex = -1
		}
	case msg.Type == tea.KeySpace:
		m.filename += " "
		m.selectedFileIndex = -1
	case msg.Type == tea.KeyRunes:
		m.filename += string(msg.Runes)
		m.selectedFileIndex = -1
	}
}

func (m *model) runFileOperation() {
	name := strings.TrimSpace(m.filename)
	if name == "" {
		m.errorMessage = "Please enter a filename"
		return
	}
	var err error
	switch m.fileOp {
	case FileOpSave:
		path := m.config.GetSavePath(withExt(name, chartExt))
		if _, statErr := os.Stat(path); statErr == nil && path != m.getCurrentBuffer().filename {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmOverwriteFile
			m.filename = path
			return
		}
		if err = m.saveFile(path); err == nil {
			m.successMessage = "Saved to " + absPath(path)
		}
	case FileOpOpen:
		err = m.openFile(m.config.GetSavePath(withExt(name, chartExt)), m.openInNewBuffer)
		m.openInNewBuffer = false
	case FileOpSavePNG:
		path := m.config.GetSavePath(withExt(name, ".png"))
		if err = m.exportPNG(path); err == nil {
			m.successMessage = "Exported to " + absPath(path)
		}
	case FileOpSaveVisualTXT:
		path := m.config.GetSavePath(withExt(name, ".txt"))
		if err = m.exportVisualTXT(path); err == nil {
			m.successMessage = "Exported to " + absPath(path)
		}
	}
	if err != nil {
		m.errorMessage = err.Error()
		m.logger.Warn("file operation failed", zap.String("file", name), zap.Error(err))
		return
	}
	m.errorMessage = ""
	m.mode = ModeNormal
	m.filename = ""
}

func (m *model) updateConfirm(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	if m.confirmAction == ConfirmChooseExportType {
		switch key {
		case "p", "P":
			m.beginFileInput(FileOpSavePNG)
		case "t", "T":
			m.beginFileInput(FileOpSaveVisualTXT)
		case "esc", "n", "N":
			m.mode = ModeNormal
		}
		return nil
	}
	switch key {
	case "y", "Y":
		m.mode = ModeNormal
		return m.runConfirmed(m.confirmAction)
	case "n", "N", "esc":
		if m.confirmAction == ConfirmOverwriteFile {
			m.mode = ModeFileInput
			m.fileOp = FileOpSave
			m.filename = chartDisplayName(m.filename)
		} else {
			m.mode = ModeNormal
		}
	}
	return nil
}

func (m *model) runConfirmed(action ConfirmAction) tea.Cmd {
	switch action {
	case ConfirmDelete:
		m.deleteSelected()
	case ConfirmQuit:
		return tea.Quit
	case ConfirmNewChart:
		m.resetBuffer()
	case ConfirmCloseBuffer:
		m.closeBuffer()
	case ConfirmOverwriteFile:
		path := m.filename
		if err := m.saveFile(path); err != nil {
			m.errorMessage = err.Error()
			m.mode = ModeFileInput
			return nil
		}
		m.successMessage = "Saved to " + absPath(path)
		m.errorMessage = ""
		m.filename = ""
	}
	return nil
}
