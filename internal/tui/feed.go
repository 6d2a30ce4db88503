package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/JaimeStill/pdfdesk/internal/workflow"
)

type changedMsg struct{}

// feed coalesces workflow snapshots into a single pending change signal so a
// slow render never blocks a workflow mutation.
type feed struct {
	ch chan struct{}
}

func newFeed() *feed {
	return &feed{ch: make(chan struct{}, 1)}
}

func (f *feed) push(workflow.Snapshot) {
	select {
	case f.ch <- struct{}{}:
	default:
	}
}

func (f *feed) next() tea.Cmd {
	return func() tea.Msg {
		<-f.ch
		return changedMsg{}
	}
}
