package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/pdfdesk/internal/results"
	"github.com/JaimeStill/pdfdesk/internal/submission"
	"github.com/JaimeStill/pdfdesk/internal/workflow"
	"github.com/JaimeStill/pdfdesk/pkg/formatting"
)

type submitter interface {
	Submit(ctx context.Context) error
	Snapshot() workflow.Snapshot
	Viewer() *results.Viewer
}

type outputOptions struct {
	dir     string
	preview bool
}

func (o *outputOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.dir, "output", "o", ".", "Directory the result is saved into")
	cmd.Flags().BoolVar(&o.preview, "preview", false, "Serve the result for preview until interrupted")
}

// submitAndSave runs one submission and saves the result. The failure
// message of a rejected submission is returned as the command error, with
// the local cause appended for transport failures.
func submitAndSave(cmd *cobra.Command, s *session, wf submitter, opts outputOptions) error {
	if err := wf.Submit(cmd.Context()); err != nil {
		return err
	}

	snap := wf.Snapshot()
	if f := snap.Failure; f != nil {
		if f.Kind == submission.KindTransport && f.Err != nil {
			return fmt.Errorf("%w: %v", f, f.Err)
		}
		return f
	}
	if snap.Result == nil {
		return fmt.Errorf("submission produced no result")
	}

	if err := os.MkdirAll(opts.dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	path, err := wf.Viewer().SaveTo(cmd.Context(), opts.dir)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "saved %s (%s)\n", path, formatting.FormatBytes(snap.Result.Size, 1))

	if opts.preview {
		return servePreview(cmd, s, *snap.Result, wf.Viewer())
	}
	return nil
}
