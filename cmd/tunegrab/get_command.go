package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "get <url>",
		Short: "Download a video or playlist URL as MP3",
		Long: `Download the audio of a YouTube video or playlist as MP3.

Playlist entries that are private, removed, or geo-restricted are skipped
with a warning; the rest of the playlist still downloads.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd, ctx, args[0])
		},
	}
}

func runGet(cmd *cobra.Command, ctx *commandContext, url string) error {
	if err := ctx.ensure(); err != nil {
		return err
	}
	defer ctx.close()

	svc := ctx.downloadService()
	attachProgressPrinter(svc)

	tasks, err := svc.ProcessURL(cmd.Context(), url)
	if err != nil {
		return fmt.Errorf("processing %s: %w", url, err)
	}

	finishTasks(ctx, tasks)

	ctx.logger.Info("finished", "url", url, "files", len(tasks))
	return nil
}
