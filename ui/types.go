package ui

import (
	"github.com/Tacitus-SL/process-browser/monitor"
)

// Messages

type dataMsg struct {
	stats monitor.Stats
}

type statusMsg struct {
	text    string
	isError bool
}

// UI modes. The engine is paused in filterMode and confirmKillMode so
// the table does not jitter under the user's cursor.

type uiMode int

const (
	normalMode uiMode = iota
	filterMode
	confirmKillMode
	helpMode
)
