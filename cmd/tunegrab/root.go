package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var quietFlag bool

	ctx := newCommandContext(&configFlag, &quietFlag)

	rootCmd := &cobra.Command{
		Use:           "tunegrab [url]",
		Short:         "Download YouTube audio as tagged, organized MP3s",
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Bare `tunegrab <url>` behaves like `tunegrab get <url>`.
			if len(args) == 1 {
				return runGet(cmd, ctx, args[0])
			}
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Suppress console log output")

	rootCmd.AddCommand(newGetCommand(ctx))
	rootCmd.AddCommand(newBatchCommand(ctx))
	rootCmd.AddCommand(newEnrichCommand(ctx))

	return rootCmd
}
