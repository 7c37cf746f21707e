package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tunegrab/tunegrab/internal/archive"
)

// Default batch input file
const defaultInputFile = "input.txt"

func newBatchCommand(ctx *commandContext) *cobra.Command {
	var inputFlag string

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Download every URL listed in an input file",
		Long: `Read URLs one per line from an input file and download them in
parallel. URLs recorded in the processed-file archive are skipped, and
successful downloads are added to it, so interrupted runs resume cleanly.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, ctx, inputFlag)
		},
	}

	cmd.Flags().StringVarP(&inputFlag, "input", "i", defaultInputFile, "File with one URL per line")
	return cmd
}

func runBatch(cmd *cobra.Command, ctx *commandContext, inputPath string) error {
	if err := ctx.ensure(); err != nil {
		return err
	}
	defer ctx.close()

	urls, err := readURLList(inputPath)
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		ctx.logger.Info("no URLs found", "input", inputPath)
		return nil
	}

	processed, err := archive.Load(ctx.cfg.ArchiveFile)
	if err != nil {
		return err
	}

	pending := make([]string, 0, len(urls))
	skipped := 0
	for _, url := range urls {
		if processed.Contains(url) {
			ctx.logger.Info("skipping archived URL", "url", url)
			skipped++
			continue
		}
		pending = append(pending, url)
	}

	ctx.logger.Info("starting batch download",
		"input", inputPath,
		"urls", len(pending),
		"workers", ctx.cfg.MaxParallel)

	svc := ctx.downloadService()
	results := svc.ProcessAll(cmd.Context(), pending)

	succeeded, failed := 0, 0
	for _, result := range results {
		if result.Err != nil {
			ctx.logger.Error("batch item failed", "url", result.URL, "error", result.Err)
			failed++
			continue
		}
		finishTasks(ctx, result.Tasks)
		if err := processed.Add(result.URL); err != nil {
			ctx.logger.Warn("could not update archive", "url", result.URL, "error", err)
		}
		succeeded++
	}

	ctx.logger.Info("batch finished",
		"succeeded", succeeded,
		"skipped", skipped,
		"failed", failed)

	if failed > 0 {
		return fmt.Errorf("%d of %d URLs failed", failed, len(pending))
	}
	return nil
}

// readURLList reads non-empty lines from the input file
func readURLList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input file %s: %w", path, err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input file %s: %w", path, err)
	}
	return urls, nil
}
