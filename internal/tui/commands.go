package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/JaimeStill/pdfdesk/internal/results"
	"github.com/JaimeStill/pdfdesk/internal/staging"
)

func intake(ctx context.Context, paths []string) tea.Cmd {
	return func() tea.Msg {
		inputs, err := staging.LoadPaths(ctx, paths...)
		return intakeMsg{inputs: inputs, err: err}
	}
}

func saveResult(ctx context.Context, v *results.Viewer, dir string) tea.Cmd {
	if dir == "" {
		dir = "."
	}
	return func() tea.Msg {
		path, err := v.SaveTo(ctx, dir)
		return savedMsg{path: path, err: err}
	}
}

func savedStatus(msg savedMsg) string {
	if msg.err != nil {
		return "error: " + msg.err.Error()
	}
	return "saved " + msg.path
}
