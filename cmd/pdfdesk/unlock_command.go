package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/pdfdesk/internal/staging"
	"github.com/JaimeStill/pdfdesk/internal/workflow"
)

// EnvUnlockPassword supplies the unlock password when --password is not given.
const EnvUnlockPassword = "PDFDESK_UNLOCK_PASSWORD"

func newUnlockCommand(ctx *commandContext) *cobra.Command {
	var password string
	var out outputOptions

	cmd := &cobra.Command{
		Use:   "unlock FILE",
		Short: "Remove the password from a protected PDF",
		Args:  cobra.MaximumNArgs(1),
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

			wf := workflow.NewUnlock(s.runtime)
			s.track(wf.Close)

			if f, ok := wf.Set(inputs...); ok {
				fmt.Fprintln(cmd.OutOrStdout(), renderStage([]staging.File{f}, isTerminal(cmd.OutOrStdout())))
			}

			if password == "" {
				password = os.Getenv(EnvUnlockPassword)
			}
			wf.SetPassword(password)

			return submitAndSave(cmd, s, wf, out)
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "PDF password (default $"+EnvUnlockPassword+")")
	out.bind(cmd)
	return cmd
}
