package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"flowterm/flowchart"
)

var errNoDocument = errors.New("no chart available")

// exportVisualTXT writes the chart exactly as the canvas shows it, without
// the cursor.
func (m *model) exportVisualTXT(filename string) error {
	doc := m.getDocument()
	if doc == nil {
		return errNoDocument
	}
	width := m.width
	if width < 1 {
		width = 80
	}
	height := m.canvasHeight()
	if m.height < 1 {
		height = 24
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	for _, line := range doc.RenderText(width, height, m.viewport()) {
		fmt.Fprintln(w, line)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	m.logger.Info("exported text", zap.String("path", filename))
	return nil
}

func (m *model) exportPNG(filename string) error {
	doc := m.getDocument()
	if doc == nil {
		return errNoDocument
	}
	opts := flowchart.DefaultRenderOptions()
	opts.Grid = doc.ShowGrid
	return doc.ExportPNG(filename, opts)
}
