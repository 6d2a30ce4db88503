package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/JaimeStill/pdfdesk/internal/workflow"
	"github.com/JaimeStill/pdfdesk/pkg/formatting"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	grabStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	mutedStyle  = lipgloss.NewStyle().Faint(true)
	resultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// Options configure the interactive views.
type Options struct {
	// PreviewURL is the base URL of a running preview server, or "".
	PreviewURL string
	// SaveDir receives results saved with the save key.
	SaveDir string
}

func renderFooter(snap workflow.Snapshot, status string, opts Options) string {
	var b strings.Builder

	switch {
	case snap.Busy:
		b.WriteString(mutedStyle.Render("submitting..."))
	case snap.Failure != nil:
		b.WriteString(errorStyle.Render(snap.Message()))
	case snap.Result != nil:
		line := fmt.Sprintf("result ready: %s (%s)", snap.Result.Filename, formatting.FormatBytes(snap.Result.Size, 1))
		b.WriteString(resultStyle.Render(line))
		if opts.PreviewURL != "" {
			fmt.Fprintf(&b, "\npreview:  %s%s\ndownload: %s%s/download",
				opts.PreviewURL, snap.Result.Ref(), opts.PreviewURL, snap.Result.Ref())
		}
	}

	if status != "" {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(mutedStyle.Render(status))
	}
	return b.String()
}

func sizeLabel(n int64) string {
	if n <= 0 {
		return "-"
	}
	return formatting.FormatBytes(n, 1)
}
