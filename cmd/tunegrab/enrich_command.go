package main

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tunegrab/tunegrab/internal/archive"
	"github.com/tunegrab/tunegrab/internal/organize"
	"github.com/tunegrab/tunegrab/internal/tag"
	"github.com/tunegrab/tunegrab/internal/transcode"
)

func newEnrichCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "enrich [dir]",
		Short: "Fix up an existing music directory",
		Long: `Walk a music directory (default: the configured music_dir), convert
stray audio leftovers to MP3, fill in missing ID3 frames, and re-sort files
into genre folders. Files recorded in the processed-file archive are left
alone.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ctx.ensure(); err != nil {
				return err
			}
			defer ctx.close()

			dir := ctx.cfg.MusicDir
			if len(args) == 1 {
				dir = args[0]
			}
			return runEnrich(cmd, ctx, dir)
		},
	}
}

func runEnrich(cmd *cobra.Command, ctx *commandContext, dir string) error {
	processed, err := archive.Load(ctx.cfg.ArchiveFile)
	if err != nil {
		return err
	}

	transcoder := transcode.NewService(strings.ToLower(ctx.cfg.AudioQuality))

	var mp3s []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		if transcode.IsConvertible(path) {
			ctx.logger.Info("converting leftover audio", "path", path)
			converted, err := transcoder.Convert(cmd.Context(), path)
			if err != nil {
				ctx.logger.Error("conversion failed", "path", path, "error", err)
				return nil
			}
			mp3s = append(mp3s, converted)
			return nil
		}

		if strings.EqualFold(filepath.Ext(path), ".mp3") {
			mp3s = append(mp3s, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk %s: %w", dir, err)
	}

	enriched, moved := 0, 0
	for _, path := range mp3s {
		if processed.Contains(path) {
			continue
		}

		meta, err := tag.Read(path)
		if err != nil {
			ctx.logger.Error("reading tags failed", "path", path, "error", err)
			continue
		}

		if missing := meta.MissingFrames(); len(missing) > 0 {
			changed, err := tag.Enrich(path, tag.Metadata{})
			if err != nil {
				ctx.logger.Error("metadata enrichment failed", "path", path, "error", err)
				continue
			}
			if changed {
				ctx.logger.Info("enriched metadata",
					"path", path,
					"frames", strings.Join(missing, ","))
				enriched++
			}
			// Re-read so the genre move sees the filled frames.
			meta, err = tag.Read(path)
			if err != nil {
				ctx.logger.Error("reading tags failed", "path", path, "error", err)
				continue
			}
		}

		finalPath := path
		if ctx.cfg.OrganizeByGenre {
			finalPath, err = organize.MoveToGenreFolder(path, meta.Genre, ctx.cfg.MusicDir)
			if err != nil {
				ctx.logger.Error("genre move failed", "path", path, "error", err)
				continue
			}
			if finalPath != path {
				moved++
			}
		}

		if err := processed.Add(finalPath); err != nil {
			ctx.logger.Warn("could not update archive", "path", finalPath, "error", err)
		}
	}

	ctx.logger.Info("enrichment finished",
		"files", len(mp3s),
		"enriched", enriched,
		"moved", moved)
	return nil
}
