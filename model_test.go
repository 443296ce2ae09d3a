package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"flowterm/flowchart"
)

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) ReadAll() (string, error) { return c.text, c.err }

func (c *fakeClipboard) WriteAll(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

func newTestModel(t *testing.T) (model, *fakeClipboard) {
	t.Helper()
	cfg := defaultConfig()
	cfg.StartMenu = false
	cfg.Confirmations = false
	cfg.SaveDirectory = t.TempDir()
	clip := &fakeClipboard{}
	m := initialModel(cfg, zap.NewNop(), clip)
	m.width, m.height = 100, 24
	return m, clip
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+a":
		return tea.KeyMsg{Type: tea.KeyCtrlA}
	case "ctrl+n":
		return tea.KeyMsg{Type: tea.KeyCtrlN}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func press(t *testing.T, m model, keys ...string) model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		m = next.(model)
	}
	return m
}

func typeText(t *testing.T, m model, text string) model {
	t.Helper()
	for _, r := range text {
		m = press(t, m, string(r))
	}
	return m
}

func TestStartupMenu(t *testing.T) {
	cfg := defaultConfig()
	m := initialModel(cfg, nil, nil)
	assert.Equal(t, ModeStartup, m.mode)
	require.Equal(t, 1, m.getDocument().Len())
	assert.Contains(t, m.getDocument().Entities()[0].Title(), "Welcome")

	m = press(t, m, "n")
	assert.Equal(t, ModeNormal, m.mode)
	assert.True(t, m.getDocument().Empty())
}

func TestInsertAndUndo(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "2")
	doc := m.getDocument()
	require.Equal(t, 1, doc.Len())
	box := doc.Entities()[0]
	assert.Equal(t, flowchart.TypeBox, box.Type())
	assert.Equal(t, flowchart.NewRect(0, 0, 96, 48), box.Rect())
	assert.True(t, box.Selected())
	assert.True(t, m.getCurrentBuffer().modified)

	m = press(t, m, "u")
	assert.True(t, m.getDocument().Empty())
	m = press(t, m, "U")
	assert.Equal(t, 1, m.getDocument().Len())
	assert.Len(t, m.getCurrentBuffer().undoStack, 1)
}

func TestInsertEveryKind(t *testing.T) {
	m, _ := newTestModel(t)
	for key, typ := range insertKeys {
		m = press(t, m, key)
		sel := m.getDocument().Selected()
		require.Len(t, sel, 1, key)
		assert.Equal(t, typ, sel[0].Type())
	}
	assert.Equal(t, len(insertKeys), m.getDocument().Len())
}

func TestTitleEdit(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "2", "e")
	require.Equal(t, ModeTitleEdit, m.mode)
	m = typeText(t, m, "Go")
	m = press(t, m, "ctrl+n")
	m = typeText(t, m, "on")
	m = press(t, m, "enter")
	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, "Go\non", m.getDocument().Entities()[0].Title())

	m = press(t, m, "e", "backspace", "backspace", "esc")
	assert.Equal(t, "Go\non", m.getDocument().Entities()[0].Title())

	m = press(t, m, "u")
	assert.Equal(t, "", m.getDocument().Entities()[0].Title())
}

func TestTitleEditNeedsTarget(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "e")
	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, errNothingHere.Error(), m.errorMessage)
}

func TestMoveAndCancel(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "2", "m", "l", "j")
	require.Equal(t, ModeMove, m.mode)
	box := m.getDocument().Entities()[0]
	assert.Equal(t, flowchart.NewRect(16, 16, 96, 48), box.Rect())
	m = press(t, m, "enter")
	assert.Equal(t, ModeNormal, m.mode)
	assert.Len(t, m.getCurrentBuffer().undoStack, 2)

	m = press(t, m, "m", "l", "esc")
	box = m.getDocument().Entities()[0]
	assert.Equal(t, flowchart.NewRect(16, 16, 96, 48), box.Rect())
	assert.Len(t, m.getCurrentBuffer().undoStack, 2)
}

func TestMoveWithoutChangeRecordsNothing(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "2", "esc", "3", "esc")
	box := m.getDocument().Entities()[0]
	require.Len(t, m.getCurrentBuffer().undoStack, 2)

	// the corner cell is outside the diamond, so the box underneath is picked
	m = press(t, m, "m", "enter")
	assert.Same(t, box, m.getDocument().Entities()[1])
	assert.Len(t, m.getCurrentBuffer().undoStack, 2)
}

func TestSelectLineAfterDeselect(t *testing.T) {
	for _, key := range []string{"7", "8"} {
		t.Run(insertKeys[key], func(t *testing.T) {
			m, _ := newTestModel(t)
			m = press(t, m, "l", "l", "l", "l", "l", "j", "j", "j", key, "esc")
			doc := m.getDocument()
			require.Empty(t, doc.Selected())
			line := doc.Entities()[0]
			require.Equal(t, flowchart.Rect{Left: 48, Top: 48, Right: 144, Bottom: 48}, line.Rect())

			// step onto the first drawn cell of the line
			m = press(t, m, "l", " ")
			sel := m.getDocument().Selected()
			require.Len(t, sel, 1)
			assert.Same(t, line, sel[0])

			m = press(t, m, "esc")
			next, _ := m.Update(tea.MouseMsg{X: 10, Y: 3, Type: tea.MouseLeft})
			m = next.(model)
			assert.Equal(t, []flowchart.Entity{line}, m.getDocument().Selected())
		})
	}
}

func TestResizeFromBody(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "2", "l", "l", "l", "l", "l", "j")
	m = press(t, m, "r", "l", "j", "enter")
	box := m.getDocument().Entities()[0]
	assert.Equal(t, flowchart.NewRect(0, 0, 112, 64), box.Rect())
}

func TestDeleteWithConfirmation(t *testing.T) {
	m, _ := newTestModel(t)
	m.config.Confirmations = true
	m = press(t, m, "2", "esc", "d")
	require.Equal(t, ModeConfirm, m.mode)
	assert.Equal(t, ConfirmDelete, m.confirmAction)
	m = press(t, m, "n")
	assert.Equal(t, 1, m.getDocument().Len())

	m = press(t, m, "d", "y")
	assert.True(t, m.getDocument().Empty())
	assert.Equal(t, ModeNormal, m.mode)
}

func TestCopyPaste(t *testing.T) {
	m, clip := newTestModel(t)
	m = press(t, m, "2", "c")
	assert.True(t, strings.HasPrefix(clip.text, flowchart.TypeBox+":"))

	m = press(t, m, "L", "L", "L", "L", "L", "L", "p")
	doc := m.getDocument()
	require.Equal(t, 2, doc.Len())
	pasted := doc.Entities()[1]
	assert.NotEqual(t, doc.Entities()[0].Name(), pasted.Name())
	assert.Equal(t, flowchart.NewRect(96, 0, 96, 48), pasted.Rect())
	assert.Equal(t, []flowchart.Entity{pasted}, doc.Selected())
}

func TestCutAndClipboardErrors(t *testing.T) {
	m, clip := newTestModel(t)
	m = press(t, m, "c")
	assert.Equal(t, errNothingSelected.Error(), m.errorMessage)

	m = press(t, m, "3", "x")
	assert.True(t, m.getDocument().Empty())
	assert.Contains(t, clip.text, flowchart.TypeCondition)

	clip.err = errors.New("no display")
	m = press(t, m, "p")
	assert.Contains(t, m.errorMessage, "no display")
}

func TestLinkUnlinkFlip(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "2", "j", "j", "j", "j", "j", "j", "3", "ctrl+a", "a")
	doc := m.getDocument()
	require.Len(t, doc.Links(), 1, m.errorMessage)
	before := doc.Links()[0]

	m = press(t, m, "f")
	assert.Equal(t, before.Flip(), m.getDocument().Links()[0])

	m = press(t, m, "a")
	assert.NotEmpty(t, m.errorMessage)

	m = press(t, m, "A")
	assert.Empty(t, m.getDocument().Links())

	m = press(t, m, "u")
	assert.Len(t, m.getDocument().Links(), 1)
}

func TestZoomGridAndSnap(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "+", "+")
	assert.Equal(t, 1.5, m.getDocument().Zoom)
	m = press(t, m, "-")
	assert.Equal(t, 1.25, m.getDocument().Zoom)
	m = press(t, m, "0", "g", "G")
	doc := m.getDocument()
	assert.Equal(t, 1.0, doc.Zoom)
	assert.True(t, doc.ShowGrid)
	assert.False(t, doc.Snap)
}

func TestUndoKeepsZoom(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "2", "+", "u")
	assert.True(t, m.getDocument().Empty())
	assert.Equal(t, 1.25, m.getDocument().Zoom)
}

func TestSaveAndOpen(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "2", "e")
	m = typeText(t, m, "start")
	m = press(t, m, "enter", "s")
	require.Equal(t, ModeFileInput, m.mode)
	m = typeText(t, m, "chart")
	m = press(t, m, "enter")
	require.Empty(t, m.errorMessage)

	path := filepath.Join(m.config.SaveDirectory, "chart"+chartExt)
	assert.FileExists(t, path)
	assert.Equal(t, path, m.getCurrentBuffer().filename)
	assert.False(t, m.getCurrentBuffer().modified)

	m = press(t, m, "O")
	require.Equal(t, []string{"chart" + chartExt}, m.fileList)
	assert.Equal(t, "chart", m.filename)
	m = press(t, m, "enter")
	require.Empty(t, m.errorMessage)
	require.Len(t, m.buffers, 2)
	assert.Equal(t, 1, m.currentBufferIndex)
	assert.Equal(t, "start", m.getDocument().Entities()[0].Title())

	m = press(t, m, "{")
	assert.Equal(t, 0, m.currentBufferIndex)
}

func TestSaveOverwriteConfirm(t *testing.T) {
	m, _ := newTestModel(t)
	path := filepath.Join(m.config.SaveDirectory, "taken"+chartExt)
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	m = press(t, m, "2", "s")
	m = typeText(t, m, "taken")
	m = press(t, m, "enter")
	require.Equal(t, ModeConfirm, m.mode)
	assert.Equal(t, ConfirmOverwriteFile, m.confirmAction)

	m = press(t, m, "y")
	assert.Equal(t, ModeNormal, m.mode)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "FLOWCHART\n"))
}

func TestOpenMissingFileReportsError(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "o")
	m = typeText(t, m, "nope")
	m = press(t, m, "enter")
	assert.Equal(t, ModeFileInput, m.mode)
	assert.NotEmpty(t, m.errorMessage)

	m = press(t, m, "esc")
	assert.Equal(t, ModeNormal, m.mode)
}

func TestExportVisualTXT(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "2", "esc", "S")
	require.Equal(t, ConfirmChooseExportType, m.confirmAction)
	m = press(t, m, "t")
	require.Equal(t, FileOpSaveVisualTXT, m.fileOp)
	m = typeText(t, m, "view")
	m = press(t, m, "enter")
	require.Empty(t, m.errorMessage)

	data, err := os.ReadFile(filepath.Join(m.config.SaveDirectory, "view.txt"))
	require.NoError(t, err)
	lines := strings.Split(string(data), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "+----------+"), lines[0])
	assert.NotContains(t, string(data), "█")
}

func TestExportPNG(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "1", "S", "p")
	m = typeText(t, m, "chart")
	m = press(t, m, "enter")
	require.Empty(t, m.errorMessage)
	assert.FileExists(t, filepath.Join(m.config.SaveDirectory, "chart.png"))
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())

	m.config.Confirmations = true
	m = press(t, m, "2")
	next, cmd := m.Update(keyMsg("q"))
	assert.Nil(t, cmd)
	assert.Equal(t, ModeConfirm, next.(model).mode)
}

func TestMouseClickSelects(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "2", "esc")
	next, _ := m.Update(tea.MouseMsg{X: 3, Y: 1, Type: tea.MouseLeft})
	m = next.(model)
	assert.Len(t, m.getDocument().Selected(), 1)
	assert.Equal(t, 3, m.cursorX)

	next, _ = m.Update(tea.MouseMsg{X: 40, Y: 10, Type: tea.MouseLeft})
	m = next.(model)
	assert.Empty(t, m.getDocument().Selected())
}

func TestBuffers(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "N", "2")
	require.Len(t, m.buffers, 2)
	assert.True(t, m.buffers[0].doc.Empty())
	assert.Equal(t, 1, m.buffers[1].doc.Len())

	m = press(t, m, "}")
	assert.Equal(t, 0, m.currentBufferIndex)
	m = press(t, m, "w")
	require.Len(t, m.buffers, 1)
	assert.Equal(t, 1, m.getDocument().Len())
}

func TestViewShowsStatus(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "2")
	out := m.View()
	assert.Contains(t, out, "Mode: NORMAL")
	assert.Contains(t, out, "Selected: 1")
	assert.Contains(t, out, "█")

	m = press(t, m, "?")
	assert.Contains(t, m.View(), "flowterm Help")
}
