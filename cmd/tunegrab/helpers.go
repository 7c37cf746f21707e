package main

import (
	"fmt"
	"os"
	"sync"

	"github.com/mattn/go-isatty"

	"github.com/tunegrab/tunegrab/internal/download"
	"github.com/tunegrab/tunegrab/internal/model"
	"github.com/tunegrab/tunegrab/internal/organize"
	"github.com/tunegrab/tunegrab/internal/tag"
)

// finishTasks runs the post-download steps on completed tasks: ID3
// enrichment first (so a genre frame exists), then the genre-folder move.
func finishTasks(ctx *commandContext, tasks []*model.DownloadTask) {
	for _, task := range tasks {
		if task.OutputPath == "" {
			continue
		}
		if _, err := os.Stat(task.OutputPath); err != nil {
			ctx.logger.Warn("downloaded file missing, skipping post-processing",
				"path", task.OutputPath)
			continue
		}

		if ctx.cfg.EnrichTags {
			changed, err := tag.Enrich(task.OutputPath, tag.Metadata{Title: task.Title})
			if err != nil {
				ctx.logger.Error("metadata enrichment failed", "path", task.OutputPath, "error", err)
			} else if changed {
				ctx.logger.Info("enriched metadata", "path", task.OutputPath)
			}
		}

		if ctx.cfg.OrganizeByGenre {
			meta, err := tag.Read(task.OutputPath)
			if err != nil {
				ctx.logger.Error("reading tags failed", "path", task.OutputPath, "error", err)
				continue
			}
			newPath, err := organize.MoveToGenreFolder(task.OutputPath, meta.Genre, ctx.cfg.MusicDir)
			if err != nil {
				ctx.logger.Error("genre move failed", "path", task.OutputPath, "error", err)
				continue
			}
			if newPath != task.OutputPath {
				ctx.logger.Info("moved to genre folder", "path", newPath)
				task.OutputPath = newPath
			}
		}
	}
}

// attachProgressPrinter wires an interactive progress line when stdout is a
// terminal. Non-interactive runs rely on the log output instead.
//
// Only one task owns the rewritable line at a time; concurrent workers
// queue for it so parallel downloads never interleave on a single line.
// Completion and failure always get their own line.
func attachProgressPrinter(svc *download.Service) {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return
	}

	var mu sync.Mutex
	var activeID string

	svc.SetUpdateCallback(func(task *model.DownloadTask) {
		mu.Lock()
		defer mu.Unlock()

		switch task.Status {
		case model.TaskStatusDownloading:
			if activeID == "" {
				activeID = task.ID
			}
			if task.ID != activeID {
				return
			}
			fmt.Printf("\r%-50.50s %3d%%  %-10s ETA %s ",
				task.GetDisplayTitle(), task.Percent, task.Speed, task.GetETAString())
		case model.TaskStatusCompleted:
			fmt.Printf("\r%-50.50s done%30s\n", task.GetDisplayTitle(), "")
			if task.ID == activeID {
				activeID = ""
			}
		case model.TaskStatusError:
			fmt.Printf("\r%-50.50s failed%28s\n", task.GetDisplayTitle(), "")
			if task.ID == activeID {
				activeID = ""
			}
		}
	})
}
