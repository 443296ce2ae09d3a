package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	modeStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	errorStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	successStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	activeBufStyle = lipgloss.NewStyle().Reverse(true)
	headingStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
)

func (m model) View() string {
	if m.help && m.mode != ModeStartup {
		return m.helpView()
	}

	renderWidth := max(m.width, 1)
	renderHeight := m.canvasHeight()

	var result strings.Builder
	if m.showBufferBar() {
		result.WriteString(m.renderBufferBar(renderWidth))
		result.WriteString("\n")
	}

	if m.mode == ModeFileInput && m.fileOp == FileOpOpen {
		result.WriteString(m.renderFileList(renderWidth, renderHeight))
	} else {
		result.WriteString(strings.Join(m.renderCanvas(renderWidth, renderHeight), "\n"))
	}

	if m.mode != ModeStartup {
		result.WriteString("\n")
		result.WriteString(statusStyle.MaxWidth(renderWidth).Render(m.statusLine()))
	}
	return result.String()
}

func (m model) renderCanvas(width, height int) []string {
	doc := m.getDocument()
	if doc == nil {
		return nil
	}
	canvas := doc.RenderText(width, height, m.viewport())
	if m.mode == ModeStartup || m.mode == ModeFileInput {
		return canvas
	}
	cursorX := min(max(m.cursorX, 0), width-1)
	cursorY := min(max(m.cursorY, 0), len(canvas)-1)
	if cursorY >= 0 {
		line := []rune(canvas[cursorY])
		if cursorX < len(line) {
			line[cursorX] = '█'
			canvas[cursorY] = string(line)
		}
	}
	return canvas
}

func (m model) renderBufferBar(width int) string {
	parts := make([]string, len(m.buffers))
	for i, buf := range m.buffers {
		name := fmt.Sprintf("Buffer %d", i+1)
		if buf.filename != "" {
			name = chartDisplayName(buf.filename)
		}
		if buf.modified {
			name += "*"
		}
		if i == m.currentBufferIndex {
			name = activeBufStyle.Render(name)
		}
		parts[i] = name
	}
	bar := "Open Charts: " + strings.Join(parts, " | ")
	return lipgloss.NewStyle().Width(width).MaxWidth(width).Render(bar)
}

func (m model) renderFileList(width, height int) string {
	var result strings.Builder
	result.WriteString(headingStyle.Render("Select a saved chart:"))
	result.WriteString("\n")
	result.WriteString(strings.Repeat("─", width))
	result.WriteString("\n")

	if len(m.fileList) == 0 {
		result.WriteString("(No " + chartExt + " files found)\n")
	} else {
		maxFiles := max(height-4, 1)
		startIdx := 0
		if m.selectedFileIndex >= maxFiles {
			startIdx = m.selectedFileIndex - maxFiles + 1
		}
		endIdx := min(startIdx+maxFiles, len(m.fileList))
		for i := startIdx; i < endIdx; i++ {
			name := chartDisplayName(m.fileList[i])
			if i == m.selectedFileIndex {
				result.WriteString("> " + name + " <")
			} else {
				result.WriteString("  " + name)
			}
			result.WriteString("\n")
		}
	}

	result.WriteString(strings.Repeat("─", width))
	result.WriteString("\n")
	result.WriteString("Filename: ")
	result.WriteString(m.filename)
	result.WriteString("█")
	return result.String()
}

func (m model) statusLine() string {
	mode := modeStyle.Render("Mode: " + m.modeString())
	switch m.mode {
	case ModeTitleEdit:
		text := ""
		if m.dialog != nil {
			text = m.dialog.render()
		}
		return fmt.Sprintf("%s | Title: %s | Enter=apply, Ctrl+N=newline, Esc=cancel", mode, text)
	case ModeResize:
		return fmt.Sprintf("%s | %s | hjkl/arrows=resize, Enter=finish, Esc=cancel", mode, m.drag.code)
	case ModeMove:
		return mode + " | hjkl/arrows=move, Enter=finish, Esc=cancel"
	case ModeFileInput:
		var op string
		switch m.fileOp {
		case FileOpSave:
			op = "Save"
		case FileOpOpen:
			op = "Open"
		case FileOpSavePNG:
			op = "Export PNG"
		case FileOpSaveVisualTXT:
			op = "Export TXT"
		}
		status := fmt.Sprintf("%s | %s filename: %s", mode, op, m.filename)
		if m.errorMessage != "" {
			status += " | " + errorStyle.Render("ERROR: "+m.errorMessage)
		}
		if m.fileOp == FileOpOpen {
			return status + " | ↑/↓=navigate, Enter=confirm, Esc=cancel"
		}
		return status + " | Enter=confirm, Esc=cancel"
	case ModeConfirm:
		return mode + " | " + m.confirmMessage()
	}

	modeStr := m.modeString()
	if m.zPanMode {
		modeStr = "PAN"
	}
	status := modeStyle.Render("Mode: "+modeStr) + fmt.Sprintf(" | Cursor: (%d,%d)", m.cursorX, m.cursorY)
	if doc := m.getDocument(); doc != nil {
		status += fmt.Sprintf(" | Zoom: %d%%", int(doc.Zoom*100))
		if n := len(doc.Selected()); n > 0 {
			status += fmt.Sprintf(" | Selected: %d", n)
		}
	}
	if m.successMessage != "" {
		status += " | " + successStyle.Render(m.successMessage)
	}
	if m.errorMessage != "" {
		status += " | " + errorStyle.Render("ERROR: "+m.errorMessage)
	} else if m.successMessage == "" {
		status += " | ? for help | q to quit"
	}
	return status
}

func (m model) confirmMessage() string {
	switch m.confirmAction {
	case ConfirmDelete:
		return fmt.Sprintf("Delete %d selected? (y/n)", len(m.getDocument().Selected()))
	case ConfirmQuit:
		return "Quit flowterm? Unsaved changes will be lost. (y/n)"
	case ConfirmNewChart:
		return "Create new chart? Unsaved changes will be lost. (y/n)"
	case ConfirmCloseBuffer:
		return "Close current buffer? Unsaved changes will be lost. (y/n)"
	case ConfirmOverwriteFile:
		return fmt.Sprintf("File %s already exists. Overwrite? (y/n)", m.filename)
	case ConfirmChooseExportType:
		return "Export as (p)ng or visual (t)xt? Esc to cancel"
	}
	return ""
}

func (m model) modeString() string {
	switch m.mode {
	case ModeStartup:
		return "STARTUP"
	case ModeNormal:
		return "NORMAL"
	case ModeTitleEdit:
		return "TITLE"
	case ModeResize:
		return "RESIZE"
	case ModeMove:
		return "MOVE"
	case ModeFileInput:
		return "FILE"
	case ModeConfirm:
		return "CONFIRM"
	default:
		return "UNKNOWN"
	}
}

var helpLines = []string{
	"flowterm Help",
	"=============",
	"",
	"Navigation:",
	"-----------",
	"  h/←/j/↓/k/↑/l/→  Move cursor around the screen",
	"  Shift+h/j/k/l    Move cursor 2x faster",
	"  z                Toggle pan mode (direction keys scroll the chart)",
	"  +/-/0            Zoom in, zoom out, reset zoom",
	"  Mouse click      Select the entity under the pointer",
	"",
	"Inserting:",
	"----------",
	"  1                Terminator",
	"  2                Process box",
	"  3                Condition",
	"  4                Connector",
	"  5                Input/output",
	"  6                Label",
	"  7                Line",
	"  8                Arrow (linkable line)",
	"",
	"Editing:",
	"--------",
	"  Space            Toggle selection of the entity under the cursor",
	"  Ctrl+A           Select everything",
	"  e/Enter          Edit the title under the cursor",
	"  m                Move the entity under the cursor",
	"  r                Resize the entity under the cursor (from a marker if on one)",
	"  d                Delete the selection",
	"  c/x/p            Copy, cut, paste through the system clipboard",
	"  g                Toggle the grid",
	"  G                Toggle snap to grid",
	"",
	"Title Editing:",
	"--------------",
	"  Enter            Apply",
	"  Ctrl+N           Insert a line break",
	"  Esc              Discard",
	"",
	"Move and Resize Modes:",
	"----------------------",
	"  h/←/j/↓/k/↑/l/→  Move or resize",
	"  Enter            Finish",
	"  Esc              Cancel and put it back",
	"",
	"Links:",
	"------",
	"  a                Link the two selected entities",
	"  A                Unlink the selection",
	"  f                Flip the direction of the selected links",
	"",
	"File Operations:",
	"----------------",
	"  s                Save chart",
	"  S                Export as PNG or visual TXT",
	"  o                Open a chart in the current buffer",
	"  O                Open a chart in a new buffer",
	"",
	"Buffer Operations:",
	"------------------",
	"  {/}              Previous/next buffer",
	"  n                New chart in the current buffer",
	"  N                New chart in a new buffer",
	"  w                Close the current buffer",
	"",
	"General:",
	"--------",
	"  u                Undo",
	"  U                Redo",
	"  Esc              Clear the selection",
	"  ?                Toggle this help screen",
	"  q/Ctrl+C         Quit",
}

func (m model) helpView() string {
	visibleHeight := max(m.height-1, 1)
	startLine := min(m.helpScroll, max(len(helpLines)-visibleHeight, 0))
	endLine := min(startLine+visibleHeight, len(helpLines))

	lines := append([]string(nil), helpLines[startLine:endLine]...)
	if startLine == 0 && len(lines) > 0 {
		lines[0] = headingStyle.Render(lines[0])
	}
	status := fmt.Sprintf("Help (%d-%d of %d lines) | j/k to scroll, Esc to close",
		startLine+1, endLine, len(helpLines))
	return strings.Join(lines, "\n") + "\n" + statusStyle.Render(status)
}
