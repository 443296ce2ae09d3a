package main

func (m *model) handleNavigation(key string, speed int) {
	if m.zPanMode {
		m.handlePan(key, speed)
		return
	}
	m.handleCursorMove(key, speed)
}

func (m *model) handlePan(key string, speed int) {
	buf := m.getCurrentBuffer()
	if buf == nil {
		return
	}
	dx, dy := direction(key)
	buf.panX -= dx * speed
	buf.panY -= dy * speed
}

func (m *model) handleCursorMove(key string, speed int) {
	dx, dy := direction(key)
	m.cursorX += dx * speed
	m.cursorY += dy * speed
	m.ensureCursorInBounds()
}

// handleDrag moves or resizes the entity being dragged by one step per
// keypress, dragging the cursor along with it.
func (m *model) handleDrag(key string, speed int) {
	doc := m.getDocument()
	if doc == nil || m.drag == nil {
		return
	}
	e := doc.Find(m.drag.target)
	if e == nil {
		return
	}
	kx, ky := direction(key)
	if kx == 0 && ky == 0 {
		return
	}
	stepX, stepY := m.stepSize()
	dx := float64(kx*speed) * stepX
	dy := float64(ky*speed) * stepY
	if m.mode == ModeMove {
		doc.Move(e, dx, dy)
	} else {
		doc.Resize(e, m.drag.code, dx, dy)
	}
	m.cursorX += kx * speed
	m.cursorY += ky * speed
	m.ensureCursorInBounds()
}

// direction turns a movement key into a unit step.
func direction(key string) (int, int) {
	switch key {
	case "h", "left", "H", "shift+left":
		return -1, 0
	case "l", "right", "L", "shift+right":
		return 1, 0
	case "k", "up", "K", "shift+up":
		return 0, -1
	case "j", "down", "J", "shift+down":
		return 0, 1
	}
	return 0, 0
}

func isMovementKey(key string) bool {
	dx, dy := direction(key)
	return dx != 0 || dy != 0
}

func (m *model) getMoveSpeed(key string) int {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return 2
	default:
		return 1
	}
}
