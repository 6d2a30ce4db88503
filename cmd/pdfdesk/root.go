package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configDirFlag string
	var serverFlag string
	var verboseFlag bool

	ctx := newCommandContext(&configDirFlag, &serverFlag, &verboseFlag)

	rootCmd := &cobra.Command{
		Use:           "pdfdesk",
		Short:         "Merge and unlock PDF files through a pdfdesk server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&configDirFlag, "config-dir", "", "Directory holding config.toml (default $PDFDESK_CONFIG_DIR or .)")
	rootCmd.PersistentFlags().StringVar(&serverFlag, "server", "", "Processing server base URL, overrides client.base_url")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Log to stderr")

	rootCmd.AddCommand(newMergeCommand(ctx))
	rootCmd.AddCommand(newUnlockCommand(ctx))
	rootCmd.AddCommand(newTUICommand(ctx))

	return rootCmd
}
