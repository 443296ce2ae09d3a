package main

import "flowterm/flowchart"

type Mode int

const (
	ModeStartup Mode = iota
	ModeNormal
	ModeTitleEdit
	ModeResize
	ModeMove
	ModeFileInput
	ModeConfirm
)

type FileOperation int

const (
	FileOpSave FileOperation = iota
	FileOpSavePNG
	FileOpSaveVisualTXT
	FileOpOpen
)

type ConfirmAction int

const (
	ConfirmDelete ConfirmAction = iota
	ConfirmQuit
	ConfirmNewChart
	ConfirmCloseBuffer
	ConfirmOverwriteFile
	ConfirmChooseExportType
)

type ActionType int

const (
	ActionInsert ActionType = iota
	ActionDelete
	ActionEditTitle
	ActionResize
	ActionMove
	ActionLink
	ActionUnlink
	ActionFlipLink
	ActionPaste
	ActionCut
)

func (a ActionType) String() string {
	switch a {
	case ActionInsert:
		return "insert"
	case ActionDelete:
		return "delete"
	case ActionEditTitle:
		return "edit title"
	case ActionResize:
		return "resize"
	case ActionMove:
		return "move"
	case ActionLink:
		return "link"
	case ActionUnlink:
		return "unlink"
	case ActionFlipLink:
		return "flip link"
	case ActionPaste:
		return "paste"
	case ActionCut:
		return "cut"
	default:
		return "unknown"
	}
}

const chartExt = ".flow"

// insertKeys maps the number row onto the shape palette.
var insertKeys = map[string]string{
	"1": flowchart.TypeTerminator,
	"2": flowchart.TypeBox,
	"3": flowchart.TypeCondition,
	"4": flowchart.TypeConnector,
	"5": flowchart.TypeIO,
	"6": flowchart.TypeLabel,
	"7": flowchart.TypeLine,
	"8": flowchart.TypeLinkableLine,
}
