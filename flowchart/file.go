package flowchart

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

const fileHeader = "FLOWCHART"

// Save writes the document: a header, the entity records, the link records
// and the view line carrying pan and zoom.
func (d *Document) Save(w io.Writer, pan Point) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\n", fileHeader)
	fmt.Fprintf(bw, "ENTITIES:%d\n", len(d.entities))
	for _, e := range d.entities {
		fmt.Fprintln(bw, e.String())
	}
	fmt.Fprintf(bw, "LINKS:%d\n", len(d.links))
	for _, l := range d.links {
		fmt.Fprintln(bw, l.String())
	}
	fmt.Fprintf(bw, "VIEW:%s,%s,%s\n", formatFloat(pan.X), formatFloat(pan.Y), formatFloat(d.Zoom))
	return bw.Flush()
}

func (d *Document) SaveFile(path string, pan Point) error {
	var buf bytes.Buffer
	if err := d.Save(&buf, pan); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	d.logger.Info("saved document", zap.String("path", path), zap.Int("entities", len(d.entities)))
	return nil
}

type lineReader struct {
	scanner *bufio.Scanner
	n       int
}

func (r *lineReader) next() (string, bool) {
	if !r.scanner.Scan() {
		return "", false
	}
	r.n++
	return r.scanner.Text(), true
}

func (r *lineReader) errorf(err error) error {
	return fmt.Errorf("line %d: %w", r.n, err)
}

// Load replaces the document's contents with those read from r and returns
// the saved pan offset. On error the document is left untouched.
func (d *Document) Load(r io.Reader) (Point, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lr := &lineReader{scanner: scanner}

	if line, ok := lr.next(); !ok || strings.TrimSpace(line) != fileHeader {
		return Point{}, fmt.Errorf("%w: missing %s header", ErrCorrupt, fileHeader)
	}

	count, err := readCount(lr, "ENTITIES:")
	if err != nil {
		return Point{}, err
	}
	loaded := NewDocument(WithFactory(d.factory))
	for i := 0; i < count; i++ {
		line, ok := lr.next()
		if !ok {
			return Point{}, lr.errorf(fmt.Errorf("%w: missing entity record", ErrCorrupt))
		}
		e, err := d.factory.CreateFromString(line)
		if err != nil {
			return Point{}, lr.errorf(err)
		}
		if loaded.index(e.Name()) >= 0 {
			return Point{}, lr.errorf(fmt.Errorf("%w: duplicate name %q", ErrCorrupt, e.Name()))
		}
		loaded.entities = append(loaded.entities, e)
	}

	count, err = readCount(lr, "LINKS:")
	if err != nil {
		return Point{}, err
	}
	for i := 0; i < count; i++ {
		line, ok := lr.next()
		if !ok {
			return Point{}, lr.errorf(fmt.Errorf("%w: missing link record", ErrCorrupt))
		}
		l, err := ParseLink(line)
		if err != nil {
			return Point{}, lr.errorf(err)
		}
		if err := loaded.AddLink(l); err != nil {
			return Point{}, lr.errorf(fmt.Errorf("%w: %v", ErrCorrupt, err))
		}
	}

	var pan Point
	zoom := 1.0
	if line, ok := lr.next(); ok && strings.HasPrefix(line, "VIEW:") {
		parts := strings.Split(strings.TrimPrefix(line, "VIEW:"), ",")
		if len(parts) == 3 {
			vals, err := parseFloats("VIEW", parts...)
			if err != nil {
				return Point{}, lr.errorf(err)
			}
			pan = Point{vals[0], vals[1]}
			if vals[2] >= MinZoom && vals[2] <= MaxZoom {
				zoom = vals[2]
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return Point{}, err
	}

	d.entities = loaded.entities
	d.links = loaded.links
	d.Zoom = zoom
	return pan, nil
}

func readCount(lr *lineReader, prefix string) (int, error) {
	line, ok := lr.next()
	if !ok || !strings.HasPrefix(line, prefix) {
		return 0, lr.errorf(fmt.Errorf("%w: missing %s section", ErrCorrupt, strings.TrimSuffix(prefix, ":")))
	}
	n, err := strconv.Atoi(strings.TrimPrefix(line, prefix))
	if err != nil || n < 0 {
		return 0, lr.errorf(fmt.Errorf("%w: bad %s count", ErrCorrupt, strings.TrimSuffix(prefix, ":")))
	}
	return n, nil
}

func (d *Document) LoadFile(path string) (Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return Point{}, err
	}
	defer f.Close()
	pan, err := d.Load(f)
	if err != nil {
		d.logger.Warn("load failed", zap.String("path", path), zap.Error(err))
		return Point{}, fmt.Errorf("%s: %w", path, err)
	}
	d.logger.Info("loaded document", zap.String("path", path), zap.Int("entities", len(d.entities)))
	return pan, nil
}

// Snapshot captures the whole document for undo.
func (d *Document) Snapshot() string {
	var buf bytes.Buffer
	_ = d.Save(&buf, Point{})
	return buf.String()
}

// Restore replaces the document with a snapshot taken by Snapshot. The
// selection is not part of a snapshot.
func (d *Document) Restore(snapshot string) error {
	_, err := d.Load(strings.NewReader(snapshot))
	return err
}

// SelectionRecords returns the selected entities and the links among them,
// one record per line, for the clipboard.
func (d *Document) SelectionRecords() string {
	sel := d.Selected()
	if len(sel) == 0 {
		return ""
	}
	names := selectedNames(sel)
	var b strings.Builder
	for _, e := range sel {
		b.WriteString(e.String())
		b.WriteByte('\n')
	}
	for _, l := range d.links {
		if names[l.From] && names[l.To] {
			b.WriteString(l.String())
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Paste adds the entities and links in text, offset by (dx, dy), under fresh
// names. The pasted entities become the selection. Lines that are not
// records are skipped; a corrupt record aborts the paste.
func (d *Document) Paste(text string, dx, dy float64) ([]Entity, error) {
	var pasted []Entity
	var links []Link
	renamed := make(map[string]string)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if recordType(line) == linkType {
			l, err := ParseLink(line)
			if err != nil {
				return nil, err
			}
			links = append(links, l)
			continue
		}
		e, err := d.factory.CreateFromString(line)
		if errors.Is(err, ErrUnrecognized) {
			continue
		}
		if err != nil {
			return nil, err
		}
		old := e.Name()
		e.SetName(newName())
		renamed[old] = e.Name()
		e.SetRect(e.Rect().Offset(dx, dy))
		pasted = append(pasted, e)
	}
	if len(pasted) == 0 {
		return nil, ErrNothingToPaste
	}
	d.ClearSelection()
	for _, e := range pasted {
		e.Select(true)
		d.Add(e)
	}
	for _, l := range links {
		from, okFrom := renamed[l.From]
		to, okTo := renamed[l.To]
		if !okFrom || !okTo {
			continue
		}
		l.From, l.To = from, to
		if err := d.AddLink(l); err != nil {
			d.logger.Debug("dropped pasted link", zap.Error(err))
		}
	}
	return pasted, nil
}
