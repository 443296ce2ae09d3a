package main

import (
	"flowterm/flowchart"
	"go.uber.org/zap"
)

type Buffer struct {
	doc       *flowchart.Document
	undoStack []Action
	redoStack []Action
	filename  string
	panX      int
	panY      int
	modified  bool
}

type model struct {
	width              int
	height             int
	cursorX            int
	cursorY            int
	zPanMode           bool
	buffers            []Buffer
	currentBufferIndex int
	mode               Mode
	help               bool
	helpScroll         int
	dialog             *labelDialog
	drag               *dragState
	filename           string
	fileList           []string
	selectedFileIndex  int
	fileOp             FileOperation
	openInNewBuffer    bool
	confirmAction      ConfirmAction
	errorMessage       string
	successMessage     string
	fromStartup        bool
	config             *Config
	logger             *zap.Logger
	clipboard          clipboardAccess
}

// Action is one undoable step. Data is the document after the step and
// Inverse the document before it.
type Action struct {
	Type    ActionType
	Data    string
	Inverse string
}

// dragState tracks a move or resize in progress so Esc can put things back.
type dragState struct {
	before string
	target string
	code   flowchart.HitCode
}
