package main

import (
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"github.com/JaimeStill/pdfdesk/internal/staging"
	"github.com/JaimeStill/pdfdesk/pkg/formatting"
)

// renderStage lists staged files in submission order. Rounded borders are
// used only on a terminal.
func renderStage(files []staging.File, styled bool) string {
	tw := table.NewWriter()
	if styled {
		tw.SetStyle(table.StyleRounded)
	}

	tw.AppendHeader(table.Row{"#", "File", "Size"})
	for i, f := range files {
		size := "-"
		if f.Size > 0 {
			size = formatting.FormatBytes(f.Size, 1)
		}
		tw.AppendRow(table.Row{strconv.Itoa(i + 1), f.Name, size})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

// isTerminal reports whether stream is a terminal-backed file.
func isTerminal(stream any) bool {
	file, ok := stream.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
