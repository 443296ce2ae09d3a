package main

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"flowterm/flowchart"
)

const welcomeText = "Welcome to flowterm!\n\n'n' New flowchart\n'o' Open existing chart\n'q' Quit"

var (
	errNothingSelected = errors.New("nothing selected")
	errNothingHere     = errors.New("nothing under the cursor")
)

func initialModel(config *Config, logger *zap.Logger, clip clipboardAccess) model {
	if config == nil {
		config = defaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	m := model{
		config:    config,
		logger:    logger,
		clipboard: clip,
		mode:      ModeNormal,
	}
	doc := m.newDocument()
	if config.StartMenu {
		welcome := flowchart.NewBox()
		welcome.SetTitle(welcomeText)
		welcome.SetRect(flowchart.NewRect(8, 16, 256, 128))
		doc.Add(welcome)
		m.mode = ModeStartup
	}
	m.buffers = []Buffer{m.newBuffer(doc, "")}
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

// openFile loads a chart into the startup buffer, a new buffer or the
// current one.
func (m *model) openFile(filename string, newBuffer bool) error {
	doc := m.newDocument()
	pan, err := doc.LoadFile(filename)
	if err != nil {
		return err
	}
	panX, panY := int(pan.X), int(pan.Y)
	switch {
	case m.mode == ModeStartup || m.fromStartup:
		m.buffers[0] = m.newBuffer(doc, filename)
		m.buffers[0].panX, m.buffers[0].panY = panX, panY
		m.currentBufferIndex = 0
		m.fromStartup = false
	case newBuffer:
		m.addNewBufferWithPan(doc, filename, panX, panY)
	default:
		buf := m.getCurrentBuffer()
		*buf = m.newBuffer(doc, filename)
		buf.panX, buf.panY = panX, panY
	}
	m.mode = ModeNormal
	m.cursorX, m.cursorY = 0, 0
	return nil
}

func (m *model) saveFile(filename string) error {
	buf := m.getCurrentBuffer()
	if buf == nil {
		return errNoDocument
	}
	pan := flowchart.Point{X: float64(buf.panX), Y: float64(buf.panY)}
	if err := buf.doc.SaveFile(filename, pan); err != nil {
		return err
	}
	buf.filename = filename
	buf.modified = false
	return nil
}

// resetBuffer replaces the current buffer with an empty chart.
func (m *model) resetBuffer() {
	if buf := m.getCurrentBuffer(); buf != nil {
		*buf = m.newBuffer(m.newDocument(), "")
	}
	m.cursorX, m.cursorY = 0, 0
	m.errorMessage = ""
	m.successMessage = ""
}

func (m *model) closeBuffer() {
	if len(m.buffers) > 1 {
		newIndex := max(m.currentBufferIndex-1, 0)
		m.buffers = append(m.buffers[:m.currentBufferIndex], m.buffers[m.currentBufferIndex+1:]...)
		m.currentBufferIndex = newIndex
		m.cursorX, m.cursorY = 0, 0
		return
	}
	width, height := m.width, m.height
	*m = initialModel(m.config, m.logger, m.clipboard)
	m.width, m.height = width, height
}

func (m *model) modified() bool {
	for _, buf := range m.buffers {
		if buf.modified {
			return true
		}
	}
	return false
}

// entityUnderCursor returns the top-most entity drawn in the cursor cell.
func (m *model) entityUnderCursor() (flowchart.Entity, flowchart.HitCode) {
	doc := m.getDocument()
	if doc == nil {
		return nil, flowchart.HitNone
	}
	return doc.HitTestCell(m.viewport(), m.cursorX, m.cursorY)
}

// target is the entity a single-entity command acts on: the one under the
// cursor, or else the only selected entity.
func (m *model) target() (flowchart.Entity, flowchart.HitCode) {
	if e, code := m.entityUnderCursor(); e != nil {
		return e, code
	}
	if sel := m.getDocument().Selected(); len(sel) == 1 {
		return sel[0], flowchart.HitBody
	}
	return nil, flowchart.HitNone
}

func (m *model) insert(typ string) error {
	doc := m.getDocument()
	before := m.snapshot()
	e, err := doc.Insert(typ, m.cursorCellOrigin())
	if err != nil {
		return err
	}
	doc.SelectOnly(e)
	m.recordAction(ActionInsert, before)
	return nil
}

func (m *model) toggleSelection() {
	if e, _ := m.entityUnderCursor(); e != nil {
		e.Select(!e.Selected())
	}
}

// prepareDelete makes sure something is selected, picking the entity under
// the cursor when the selection is empty.
func (m *model) prepareDelete() error {
	doc := m.getDocument()
	if len(doc.Selected()) > 0 {
		return nil
	}
	e, _ := m.entityUnderCursor()
	if e == nil {
		return errNothingHere
	}
	doc.SelectOnly(e)
	return nil
}

func (m *model) deleteSelected() {
	before := m.snapshot()
	n := m.getDocument().DeleteSelected()
	if m.recordAction(ActionDelete, before) {
		m.successMessage = fmt.Sprintf("Deleted %d", n)
	}
}

func (m *model) startTitleEdit() error {
	e, _ := m.target()
	if e == nil {
		return errNothingHere
	}
	m.dialog = newLabelDialog(e.Name(), e.Title())
	m.mode = ModeTitleEdit
	return nil
}

func (m *model) applyTitleEdit() {
	doc := m.getDocument()
	if e := doc.Find(m.dialog.target); e != nil {
		before := m.snapshot()
		e.SetTitle(m.dialog.Value())
		m.recordAction(ActionEditTitle, before)
	}
	m.dialog = nil
	m.mode = ModeNormal
}

func (m *model) startDrag(mode Mode) error {
	e, code := m.target()
	if e == nil {
		return errNothingHere
	}
	if mode == ModeResize && !code.IsMarker() {
		code = flowchart.HitBottomRight
	}
	doc := m.getDocument()
	doc.SelectOnly(e)
	doc.BringToFront(e)
	// Raising the target is not an edit of its own; a drag that ends where
	// it started leaves nothing to undo.
	before := m.snapshot()
	m.drag = &dragState{before: before, target: e.Name(), code: code}
	m.mode = mode
	return nil
}

func (m *model) finishDrag() {
	actionType := ActionMove
	if m.mode == ModeResize {
		actionType = ActionResize
	}
	if m.drag != nil {
		m.recordAction(actionType, m.drag.before)
	}
	m.drag = nil
	m.mode = ModeNormal
}

func (m *model) cancelDrag() {
	if buf := m.getCurrentBuffer(); buf != nil && m.drag != nil {
		_ = m.restore(buf, m.drag.before)
	}
	m.drag = nil
	m.mode = ModeNormal
}

func (m *model) link() error {
	before := m.snapshot()
	l, err := m.getDocument().LinkSelected()
	if err != nil {
		return err
	}
	m.recordAction(ActionLink, before)
	m.successMessage = fmt.Sprintf("Linked %s to %s", l.FromSide, l.ToSide)
	return nil
}

func (m *model) unlink() error {
	before := m.snapshot()
	if m.getDocument().UnlinkSelected() == 0 {
		return errors.New("no links to remove")
	}
	m.recordAction(ActionUnlink, before)
	return nil
}

func (m *model) flipLinks() error {
	before := m.snapshot()
	if m.getDocument().FlipSelectedLinks() == 0 {
		return errors.New("no links to flip")
	}
	m.recordAction(ActionFlipLink, before)
	return nil
}

func (m *model) copySelection() error {
	text := m.getDocument().SelectionRecords()
	if text == "" {
		return errNothingSelected
	}
	if m.clipboard == nil {
		return errors.New("clipboard unavailable")
	}
	if err := m.clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("copy: %w", err)
	}
	return nil
}

func (m *model) cutSelection() error {
	if err := m.copySelection(); err != nil {
		return err
	}
	before := m.snapshot()
	m.getDocument().DeleteSelected()
	m.recordAction(ActionCut, before)
	return nil
}

// paste drops the clipboard records with their top-left corner at the
// cursor.
func (m *model) paste() error {
	if m.clipboard == nil {
		return errors.New("clipboard unavailable")
	}
	text, err := m.clipboard.ReadAll()
	if err != nil {
		return fmt.Errorf("paste: %w", err)
	}
	doc := m.getDocument()
	before := m.snapshot()
	pasted, err := doc.Paste(strings.TrimSpace(text), 0, 0)
	if err != nil {
		return err
	}
	bounds := pasted[0].Rect().Normalize()
	for _, e := range pasted[1:] {
		bounds = bounds.Union(e.Rect())
	}
	origin := m.cursorCellOrigin()
	doc.MoveSelected(origin.X-bounds.Left, origin.Y-bounds.Top)
	m.recordAction(ActionPaste, before)
	m.successMessage = fmt.Sprintf("Pasted %d", len(pasted))
	return nil
}

// selectAt handles a click: select the entity under the cell, or clear the
// selection on empty canvas.
func (m *model) selectAt(x, y int) {
	doc := m.getDocument()
	if doc == nil {
		return
	}
	m.cursorX, m.cursorY = x, y
	m.ensureCursorInBounds()
	e, _ := m.entityUnderCursor()
	doc.SelectOnly(e)
}
