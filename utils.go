package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/atotto/clipboard"

	"flowterm/flowchart"
)

func (m *model) getCurrentBuffer() *Buffer {
	if len(m.buffers) == 0 {
		return nil
	}
	return &m.buffers[m.currentBufferIndex]
}

func (m *model) getDocument() *flowchart.Document {
	if buf := m.getCurrentBuffer(); buf != nil {
		return buf.doc
	}
	return nil
}

func (m *model) getPanOffset() (int, int) {
	if buf := m.getCurrentBuffer(); buf != nil {
		return buf.panX, buf.panY
	}
	return 0, 0
}

// viewport maps screen cells of the current buffer onto document units. The
// pan offset is counted in cells at the current zoom.
func (m *model) viewport() flowchart.Viewport {
	zoom := 1.0
	if doc := m.getDocument(); doc != nil {
		zoom = doc.Zoom
	}
	v := flowchart.NewViewport(flowchart.Point{}, zoom)
	panX, panY := m.getPanOffset()
	v.Origin = flowchart.Point{X: float64(panX) * v.CellW, Y: float64(panY) * v.CellH}
	return v
}

// cursorCellOrigin is the top-left corner of the cell under the cursor, where
// inserted entities are anchored.
func (m *model) cursorCellOrigin() flowchart.Point {
	v := m.viewport()
	return flowchart.Point{
		X: v.Origin.X + float64(m.cursorX)*v.CellW,
		Y: v.Origin.Y + float64(m.cursorY)*v.CellH,
	}
}

// stepSize is how far one keypress moves or resizes an entity. With snapping
// on it never drops below the grid, or snapping would pull it back.
func (m *model) stepSize() (float64, float64) {
	v := m.viewport()
	dx, dy := v.CellW, v.CellH
	if doc := m.getDocument(); doc != nil && doc.Snap {
		dx = max(dx, doc.GridSize)
		dy = max(dy, doc.GridSize)
	}
	return dx, dy
}

func (m *model) newBuffer(doc *flowchart.Document, filename string) Buffer {
	return Buffer{
		doc:       doc,
		undoStack: []Action{},
		redoStack: []Action{},
		filename:  filename,
	}
}

func (m *model) addNewBuffer(doc *flowchart.Document, filename string) {
	m.addNewBufferWithPan(doc, filename, 0, 0)
}

func (m *model) addNewBufferWithPan(doc *flowchart.Document, filename string, panX, panY int) {
	buffer := m.newBuffer(doc, filename)
	buffer.panX = panX
	buffer.panY = panY
	m.buffers = append(m.buffers, buffer)
	m.currentBufferIndex = len(m.buffers) - 1
}

func (m *model) newDocument() *flowchart.Document {
	return m.config.newDocument(flowchart.WithLogger(m.logger))
}

func (m *model) showBufferBar() bool {
	return m.mode != ModeStartup && len(m.buffers) > 1
}

// canvasHeight is the number of rows left for the chart once the buffer bar
// and status line are drawn.
func (m *model) canvasHeight() int {
	h := m.height - 1
	if m.showBufferBar() {
		h--
	}
	return max(h, 1)
}

func (m *model) canvasTop() int {
	if m.showBufferBar() {
		return 1
	}
	return 0
}

func (m *model) ensureCursorInBounds() {
	if m.cursorX < 0 {
		m.cursorX = 0
	}
	if m.cursorY < 0 {
		m.cursorY = 0
	}
	if m.width > 0 && m.cursorX >= m.width {
		m.cursorX = m.width - 1
	}
	if maxY := m.canvasHeight() - 1; m.height > 0 && m.cursorY > maxY {
		m.cursorY = maxY
	}
}

func chartDisplayName(file string) string {
	if strings.HasSuffix(strings.ToLower(file), chartExt) {
		return file[:len(file)-len(chartExt)]
	}
	return file
}

func withExt(filename, ext string) string {
	if strings.HasSuffix(strings.ToLower(filename), ext) {
		return filename
	}
	return filename + ext
}

// scanChartFiles lists the charts in the save directory, or the working
// directory when none is configured.
func (m *model) scanChartFiles() {
	m.fileList = []string{}
	dir := m.config.SaveDirectory
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			m.selectedFileIndex = -1
			return
		}
		dir = wd
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		m.selectedFileIndex = -1
		return
	}
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(strings.ToLower(entry.Name()), chartExt) {
			m.fileList = append(m.fileList, entry.Name())
		}
	}
	sort.Strings(m.fileList)

	if len(m.fileList) > 0 {
		m.selectedFileIndex = 0
		m.filename = chartDisplayName(m.fileList[0])
	} else {
		m.selectedFileIndex = -1
	}
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

type clipboardAccess interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) ReadAll() (string, error) {
	text, err := readClipboardText()
	if err != nil {
		return "", err
	}
	return cleanClipboardText(text), nil
}

func (systemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}

func cleanClipboardText(text string) string {
	if text == "" {
		return text
	}
	text = stripRTF(text)
	var result strings.Builder
	result.Grow(len(text))
	for _, r := range text {
		if r == '\n' || r == '\r' || r == '\t' || r >= 32 {
			result.WriteRune(r)
		}
	}
	normalized := result.String()
	normalized = strings.ReplaceAll(normalized, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	return normalized
}

// stripRTF drops RTF control words and groups, keeping the text runs. Some
// clipboards hand back RTF even when plain text was copied.
func stripRTF(text string) string {
	if !strings.HasPrefix(text, "{\\rtf") && !strings.Contains(text, "\\rtf") {
		return text
	}
	var result strings.Builder
	result.Grow(len(text))
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '{' || r == '}' {
			continue
		}
		if r != '\\' {
			result.WriteRune(r)
			continue
		}
		if i+1 >= len(runes) {
			continue
		}
		next := runes[i+1]
		switch {
		case (next >= 'a' && next <= 'z') || (next >= 'A' && next <= 'Z'):
			i++
			for i < len(runes) && runes[i] != ' ' && runes[i] != '\\' && runes[i] != '{' && runes[i] != '}' {
				i++
			}
			if i < len(runes) && runes[i] != ' ' {
				i--
			}
		case next == '\\' || next == '{' || next == '}' || next == '\n' || next == '\r' || next == '\t':
			result.WriteRune(next)
			i++
		}
	}
	return result.String()
}
