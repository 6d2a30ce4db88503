package main

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/JaimeStill/pdfdesk/internal/staging"
	"github.com/JaimeStill/pdfdesk/internal/tui"
	"github.com/JaimeStill/pdfdesk/internal/workflow"
)

var errNotTerminal = errors.New("tui requires an interactive terminal")

func newTUICommand(ctx *commandContext) *cobra.Command {
	var saveDir string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Stage and submit files interactively",
	}
	cmd.PersistentFlags().StringVarP(&saveDir, "output", "o", ".", "Directory results are saved into")

	cmd.AddCommand(&cobra.Command{
		Use:   "merge [FILE...]",
		Short: "Interactive merge staging with keyboard reordering",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, ctx, saveDir, func(s *session, opts tui.Options) (tea.Model, error) {
				wf := workflow.NewMerge(s.runtime)
				s.track(wf.Close)

				if err := stageArgs(cmd, args, func(in []staging.Input) { wf.Add(in...) }); err != nil {
					return nil, err
				}

				base, err := startPreview(s, wf.Viewer())
				if err != nil {
					return nil, err
				}
				opts.PreviewURL = base
				return tui.NewMerge(cmd.Context(), wf, opts), nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "unlock [FILE]",
		Short: "Interactive unlock with masked password entry",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, ctx, saveDir, func(s *session, opts tui.Options) (tea.Model, error) {
				wf := workflow.NewUnlock(s.runtime)
				s.track(wf.Close)

				if err := stageArgs(cmd, args, func(in []staging.Input) { wf.Set(in...) }); err != nil {
					return nil, err
				}

				base, err := startPreview(s, wf.Viewer())
				if err != nil {
					return nil, err
				}
				opts.PreviewURL = base
				return tui.NewUnlock(cmd.Context(), wf, opts), nil
			})
		},
	})

	return cmd
}

func runTUI(cmd *cobra.Command, ctx *commandContext, saveDir string, build func(*session, tui.Options) (tea.Model, error)) error {
	if !isTerminal(cmd.OutOrStdout()) || !isTerminal(cmd.InOrStdin()) {
		return errNotTerminal
	}

	s, err := ctx.open(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	model, err := build(s, tui.Options{SaveDir: saveDir})
	if err != nil {
		return err
	}

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	_, err = p.Run()
	return err
}

func stageArgs(cmd *cobra.Command, args []string, add func([]staging.Input)) error {
	if len(args) == 0 {
		return nil
	}
	inputs, err := staging.LoadPaths(cmd.Context(), args...)
	if err != nil {
		return err
	}
	add(inputs)
	return nil
}
