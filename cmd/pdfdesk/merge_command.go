package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/pdfdesk/internal/staging"
	"github.com/JaimeStill/pdfdesk/internal/workflow"
)

var errMoveSyntax = errors.New("move must be SRC:DST with 1-based positions")

func newMergeCommand(ctx *commandContext) *cobra.Command {
	var moves []string
	var out outputOptions

	cmd := &cobra.Command{
		Use:   "merge FILE...",
		Short: "Merge PDF and image files in the order staged",
		Long: "Stage the given files in argument order, apply any --move reorders, " +
			"and submit them to the processing server. The merged PDF is saved as merged.pdf.",
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := staging.LoadPaths(cmd.Context(), args...)
			if err != nil {
				return err
			}

			s, err := ctx.open(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			wf := workflow.NewMerge(s.runtime)
			s.track(wf.Close)

			wf.Add(inputs...)
			for _, mv := range moves {
				src, dst, err := parseMove(mv)
				if err != nil {
					return err
				}
				if !wf.Move(src, dst) {
					return fmt.Errorf("move %s: position out of range", mv)
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderStage(wf.Snapshot().Files, isTerminal(cmd.OutOrStdout())))
			return submitAndSave(cmd, s, wf, out)
		},
	}

	cmd.Flags().StringArrayVarP(&moves, "move", "m", nil, "Reorder before submitting, as SRC:DST (repeatable, applied in order)")
	out.bind(cmd)
	return cmd
}

// parseMove converts a 1-based SRC:DST pair into zero-based indices.
func parseMove(v string) (src, dst int, err error) {
	a, b, ok := strings.Cut(strings.TrimSpace(v), ":")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", errMoveSyntax, v)
	}
	src, err = strconv.Atoi(strings.TrimSpace(a))
	if err != nil || src < 1 {
		return 0, 0, fmt.Errorf("%w: %q", errMoveSyntax, v)
	}
	dst, err = strconv.Atoi(strings.TrimSpace(b))
	if err != nil || dst < 1 {
		return 0, 0, fmt.Errorf("%w: %q", errMoveSyntax, v)
	}
	return src - 1, dst - 1, nil
}
