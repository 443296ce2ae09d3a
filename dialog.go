package main

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// labelDialog edits the title of one entity. Nothing is written back until
// the edit is applied.
type labelDialog struct {
	target string
	text   []rune
	cursor int
}

func newLabelDialog(target, title string) *labelDialog {
	text := []rune(title)
	return &labelDialog{target: target, text: text, cursor: len(text)}
}

func (d *labelDialog) Value() string {
	return string(d.text)
}

type dialogResult int

const (
	dialogEditing dialogResult = iota
	dialogApply
	dialogCancel
)

func (d *labelDialog) handleKey(msg tea.KeyMsg) dialogResult {
	switch msg.Type {
	case tea.KeyEscape:
		return dialogCancel
	case tea.KeyEnter:
		return dialogApply
	case tea.KeyCtrlN:
		d.insert('\n')
	case tea.KeyBackspace:
		if d.cursor > 0 {
			d.text = append(d.text[:d.cursor-1], d.text[d.cursor:]...)
			d.cursor--
		}
	case tea.KeyDelete:
		if d.cursor < len(d.text) {
			d.text = append(d.text[:d.cursor], d.text[d.cursor+1:]...)
		}
	case tea.KeyLeft:
		if d.cursor > 0 {
			d.cursor--
		}
	case tea.KeyRight:
		if d.cursor < len(d.text) {
			d.cursor++
		}
	case tea.KeyHome, tea.KeyCtrlA:
		d.cursor = 0
	case tea.KeyEnd, tea.KeyCtrlE:
		d.cursor = len(d.text)
	case tea.KeySpace:
		d.insert(' ')
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			d.insert(r)
		}
	}
	return dialogEditing
}

func (d *labelDialog) insert(r rune) {
	d.text = append(d.text[:d.cursor], append([]rune{r}, d.text[d.cursor:]...)...)
	d.cursor++
}

// render shows the text on one line with the cursor drawn over the
// character it sits on.
func (d *labelDialog) render() string {
	runes := []rune(strings.ReplaceAll(string(d.text), "\n", "⏎"))
	if d.cursor >= len(runes) {
		return string(runes) + "█"
	}
	runes[d.cursor] = '█'
	return string(runes)
}
