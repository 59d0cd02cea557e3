package controller

import m "github.com/mouse-blink/blockscan/internal/model"

// Message types.
type corpusMsg struct {
	corpus  string
	items   int
	workers int
}

type itemMsg struct {
	key      string
	status   m.ItemStatus
	commands int
	clones   int
}

type summaryMsg struct {
	report m.RunReport
	files  []string
}

type finishedMsg struct{}
