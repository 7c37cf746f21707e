package download

import (
	"context"

	"github.com/tunegrab/tunegrab/internal/model"
)

// Downloader defines the interface for the download service.
type Downloader interface {
	SetUpdateCallback(func(*model.DownloadTask))

	// ProcessURL downloads a single video or a whole playlist, returning a
	// task per produced file.
	ProcessURL(ctx context.Context, url string) ([]*model.DownloadTask, error)

	// ProcessAll runs ProcessURL for every URL with bounded parallelism.
	ProcessAll(ctx context.Context, urls []string) []Result

	// ResolvePlaylist lists playlist entries without downloading anything.
	ResolvePlaylist(ctx context.Context, url string) (*model.Playlist, error)

	// DownloadPlaylist downloads all pending entries of a resolved playlist.
	// Per-entry failures are recorded on the entry and never abort the run.
	DownloadPlaylist(ctx context.Context, playlist *model.Playlist) []*model.DownloadTask
}
