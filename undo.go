package main

import "go.uber.org/zap"

// snapshot captures the current document so a command can be recorded once
// it has run.
func (m *model) snapshot() string {
	if doc := m.getDocument(); doc != nil {
		return doc.Snapshot()
	}
	return ""
}

// recordAction pushes an undo step from the document state before the
// command. Commands that changed nothing are not recorded.
func (m *model) recordAction(actionType ActionType, before string) bool {
	buf := m.getCurrentBuffer()
	if buf == nil {
		return false
	}
	after := buf.doc.Snapshot()
	if after == before {
		return false
	}
	buf.undoStack = append(buf.undoStack, Action{
		Type:    actionType,
		Data:    after,
		Inverse: before,
	})
	buf.redoStack = buf.redoStack[:0]
	buf.modified = true
	m.logger.Debug("recorded action", zap.Stringer("action", actionType), zap.Int("depth", len(buf.undoStack)))
	return true
}

func (m *model) undo() {
	buf := m.getCurrentBuffer()
	if buf == nil || len(buf.undoStack) == 0 {
		return
	}

	lastIndex := len(buf.undoStack) - 1
	action := buf.undoStack[lastIndex]
	if err := m.restore(buf, action.Inverse); err != nil {
		return
	}
	buf.undoStack = buf.undoStack[:lastIndex]
	buf.redoStack = append(buf.redoStack, action)
	buf.modified = true
	m.successMessage = "Undid " + action.Type.String()
}

func (m *model) redo() {
	buf := m.getCurrentBuffer()
	if buf == nil || len(buf.redoStack) == 0 {
		return
	}

	lastIndex := len(buf.redoStack) - 1
	action := buf.redoStack[lastIndex]
	if err := m.restore(buf, action.Data); err != nil {
		return
	}
	buf.redoStack = buf.redoStack[:lastIndex]
	buf.undoStack = append(buf.undoStack, action)
	buf.modified = true
	m.successMessage = "Redid " + action.Type.String()
}

// restore loads a snapshot while keeping the zoom, which is not undoable.
func (m *model) restore(buf *Buffer, snapshot string) error {
	zoom := buf.doc.Zoom
	if err := buf.doc.Restore(snapshot); err != nil {
		m.logger.Error("restore snapshot", zap.Error(err))
		m.errorMessage = err.Error()
		return err
	}
	buf.doc.Zoom = zoom
	return nil
}
