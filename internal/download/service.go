package download

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lrstanley/go-ytdlp"

	"github.com/tunegrab/tunegrab/internal/model"
	"github.com/tunegrab/tunegrab/internal/platform"
)

// Format selection and output constants
const (
	BestAudioFormat = "bestaudio/best"
	AudioFormatMP3  = "mp3"
	OutputTemplate  = "%(title)s.%(ext)s"

	ProgressInterval = 500 * time.Millisecond
	TaskIDPrefix     = "task-"
)

// Options configures the download service
type Options struct {
	MusicDir       string
	AudioQuality   string // e.g. "192K"
	Retries        int
	CookiesFile    string // "" disables cookie authentication
	MaxParallel    int
	EmbedThumbnail bool
	EmbedMetadata  bool
}

// Result pairs a processed URL with its outcome
type Result struct {
	URL   string
	Tasks []*model.DownloadTask
	Err   error
}

// Service handles download operations on top of yt-dlp
type Service struct {
	opts   Options
	logger *slog.Logger

	// sem bounds total in-flight downloads across batch URLs and playlist
	// entries alike: every download path draws from this one semaphore.
	sem chan struct{}

	tasksMutex sync.Mutex // guards task field updates across progress callbacks

	downloadFn func(ctx context.Context, url string) (*model.DownloadTask, error)
	onUpdate   func(*model.DownloadTask) // callback for progress updates
}

// NewService creates a new download service
func NewService(opts Options, logger *slog.Logger) *Service {
	if opts.MaxParallel < 1 {
		opts.MaxParallel = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		opts:   opts,
		logger: logger,
		sem:    make(chan struct{}, opts.MaxParallel),
	}
	s.downloadFn = s.downloadOne
	return s
}

// SetUpdateCallback sets the callback function for task progress updates
func (s *Service) SetUpdateCallback(callback func(*model.DownloadTask)) {
	s.onUpdate = callback
}

// ProcessURL downloads a single video or a whole playlist. Playlist URLs
// are resolved first; per-entry failures are skipped and the rest continue.
func (s *Service) ProcessURL(ctx context.Context, url string) ([]*model.DownloadTask, error) {
	if !platform.IsLikelyVideoURL(url) {
		return nil, fmt.Errorf("not a valid URL: %s", url)
	}

	if platform.IsPlaylistURL(url) {
		playlist, err := s.ResolvePlaylist(ctx, url)
		if err != nil {
			return nil, err
		}
		s.logger.Info("processing playlist",
			"playlist", playlist.ID,
			"entries", playlist.TotalEntries)
		return s.DownloadPlaylist(ctx, playlist), nil
	}

	task, err := s.runDownload(ctx, url)
	if err != nil {
		return nil, err
	}
	return []*model.DownloadTask{task}, nil
}

// ProcessAll runs ProcessURL for every URL. The worker bound lives in
// runDownload, not here: gating the outer URL would deadlock a playlist
// whose entries wait on the same semaphore.
func (s *Service) ProcessAll(ctx context.Context, urls []string) []Result {
	results := make([]Result, len(urls))

	var wg sync.WaitGroup
	for i, url := range urls {
		wg.Add(1)
		go func(i int, url string) {
			defer wg.Done()
			tasks, err := s.ProcessURL(ctx, url)
			results[i] = Result{URL: url, Tasks: tasks, Err: err}
		}(i, url)
	}
	wg.Wait()

	return results
}

// runDownload funnels every per-item download through the shared semaphore
// so total concurrency never exceeds MaxParallel, no matter how the items
// were reached.
func (s *Service) runDownload(ctx context.Context, url string) (*model.DownloadTask, error) {
	s.sem <- struct{}{}
	defer func() { <-s.sem }()
	return s.downloadFn(ctx, url)
}

// ResolvePlaylist lists playlist entries via a flat extraction pass
func (s *Service) ResolvePlaylist(ctx context.Context, url string) (*model.Playlist, error) {
	playlistID, err := platform.ExtractPlaylistID(url)
	if err != nil {
		return nil, fmt.Errorf("resolve playlist %s: %w", url, err)
	}

	dl := ytdlp.New().
		SkipDownload().
		FlatPlaylist().
		PrintJSON()
	if s.opts.CookiesFile != "" {
		dl = dl.Cookies(s.opts.CookiesFile)
	}

	result, err := dl.Run(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("resolve playlist %s: %w", url, err)
	}

	infos, err := result.GetExtractedInfo()
	if err != nil {
		return nil, fmt.Errorf("parse playlist info for %s: %w", url, err)
	}

	playlist := model.NewPlaylist(url)
	playlist.ID = playlistID
	for _, info := range infos {
		if info.ID == "" {
			continue
		}
		entry := &model.PlaylistEntry{
			ID:        info.ID,
			URL:       platform.VideoURL(info.ID),
			Status:    model.EntryStatusPending,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if info.Title != nil {
			entry.Title = *info.Title
		}
		playlist.AddEntry(entry)
	}

	if playlist.TotalEntries == 0 {
		return nil, fmt.Errorf("playlist %s has no downloadable entries", playlistID)
	}
	playlist.Title = fmt.Sprintf("Playlist %s", playlistID)
	return playlist, nil
}

// DownloadPlaylist downloads all pending entries with bounded parallelism.
// An error on one entry marks it skipped and the rest continue; the playlist
// as a whole never fails here.
func (s *Service) DownloadPlaylist(ctx context.Context, playlist *model.Playlist) []*model.DownloadTask {
	entries := playlist.GetPendingEntries()
	tasks := make([]*model.DownloadTask, 0, len(entries))

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, entry := range entries {
		wg.Add(1)
		go func(entry *model.PlaylistEntry) {
			defer wg.Done()

			playlist.UpdateEntryStatus(entry.ID, model.EntryStatusDownloading)
			task, err := s.runDownload(ctx, entry.URL)
			if err != nil {
				s.logger.Warn("skipping unavailable playlist entry",
					"entry", entry.ID,
					"title", entry.Title,
					"error", err)
				entry.Error = err.Error()
				playlist.UpdateEntryStatus(entry.ID, model.EntryStatusSkipped)
				return
			}

			entry.OutputPath = task.OutputPath
			playlist.UpdateEntryStatus(entry.ID, model.EntryStatusCompleted)

			mu.Lock()
			playlist.Downloaded++
			tasks = append(tasks, task)
			mu.Unlock()
		}(entry)
	}
	wg.Wait()

	s.logger.Info("playlist finished",
		"playlist", playlist.ID,
		"downloaded", len(playlist.GetCompletedEntries()),
		"skipped", len(playlist.GetSkippedEntries()),
		"progress", fmt.Sprintf("%.0f%%", playlist.GetDownloadProgress()))
	return tasks
}

// downloadOne downloads a single video as MP3 and sanitizes its filename
func (s *Service) downloadOne(ctx context.Context, url string) (*model.DownloadTask, error) {
	task := &model.DownloadTask{
		ID:        generateTaskID(),
		URL:       url,
		Status:    model.TaskStatusStarting,
		ETASec:    -1,
		StartedAt: time.Now(),
	}
	s.notifyUpdate(task)

	dl := s.newAudioCommand()
	dl.ProgressFunc(ProgressInterval, func(update ytdlp.ProgressUpdate) {
		s.updateTaskProgress(task, &update)
	})

	result, err := dl.Run(ctx, url)

	s.tasksMutex.Lock()
	if err != nil {
		task.Status = model.TaskStatusError
		task.LastError = err.Error()
		task.FinishedAt = time.Now()
		s.tasksMutex.Unlock()
		s.notifyUpdate(task)
		return nil, fmt.Errorf("download %s: %w", url, err)
	}
	task.Status = model.TaskStatusConverting
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)

	outputPath, videoID, title := s.extractOutput(result)
	if videoID != "" {
		task.VideoID = videoID
	}
	if title != "" && task.Title == "" {
		task.Title = title
	}

	if outputPath != "" {
		cleaned, err := platform.RenameIfAbsent(outputPath, platform.SanitizedPath(outputPath, task.Title, task.VideoID))
		if err != nil {
			s.logger.Warn("filename sanitation failed", "path", outputPath, "error", err)
			cleaned = outputPath
		}
		task.OutputPath = cleaned
	}

	s.tasksMutex.Lock()
	task.Status = model.TaskStatusCompleted
	task.Progress = 1.0
	task.Percent = 100
	task.FinishedAt = time.Now()
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)

	s.logger.Info("download completed", "title", task.GetDisplayTitle(), "output", task.OutputPath)
	return task, nil
}

// newAudioCommand configures yt-dlp for best-audio MP3 extraction
func (s *Service) newAudioCommand() *ytdlp.Command {
	dl := ytdlp.New().
		Format(BestAudioFormat).
		ExtractAudio().
		AudioFormat(AudioFormatMP3).
		AudioQuality(s.opts.AudioQuality).
		NoPlaylist().
		IgnoreErrors().
		Retries(strconv.Itoa(s.opts.Retries)).
		Output(filepath.Join(s.opts.MusicDir, OutputTemplate))

	if s.opts.EmbedThumbnail {
		dl = dl.EmbedThumbnail()
	}
	if s.opts.EmbedMetadata {
		dl = dl.EmbedMetadata()
	}
	if s.opts.CookiesFile != "" {
		dl = dl.Cookies(s.opts.CookiesFile)
	}
	return dl
}

// extractOutput pulls the produced file path, video ID, and title from the
// yt-dlp result. The reported filename may predate MP3 post-processing, so
// the .mp3 sibling wins when it exists.
func (s *Service) extractOutput(result *ytdlp.Result) (outputPath, videoID, title string) {
	if result == nil {
		return "", "", ""
	}
	infos, err := result.GetExtractedInfo()
	if err != nil || len(infos) == 0 {
		return "", "", ""
	}

	info := infos[0]
	if info.ID != "" {
		videoID = info.ID
	}
	if info.Title != nil {
		title = *info.Title
	}
	if info.Filename != nil {
		outputPath = locateOutput(*info.Filename)
	}
	return outputPath, videoID, title
}

// locateOutput resolves the reported download path to the post-processed
// MP3 when the conversion already replaced the original container.
func locateOutput(reported string) string {
	ext := filepath.Ext(reported)
	if strings.EqualFold(ext, ".mp3") {
		return reported
	}
	mp3 := strings.TrimSuffix(reported, ext) + ".mp3"
	if _, err := os.Stat(mp3); err == nil {
		return mp3
	}
	return reported
}

// updateTaskProgress updates task progress from yt-dlp info
func (s *Service) updateTaskProgress(task *model.DownloadTask, update *ytdlp.ProgressUpdate) {
	s.tasksMutex.Lock()

	task.Status = model.TaskStatusDownloading

	if update.TotalBytes > 0 {
		percent := float64(update.DownloadedBytes) / float64(update.TotalBytes) * 100
		task.Percent = int(percent)
		task.Progress = percent / 100.0
	}

	if !update.Started.IsZero() {
		elapsed := time.Since(update.Started)
		if elapsed.Seconds() > 0 {
			bytesPerSecond := float64(update.DownloadedBytes) / elapsed.Seconds()
			task.Speed = fmt.Sprintf("%.1fMB/s", bytesPerSecond/1024/1024)
		}
	}

	eta := update.ETA()
	if eta > 0 {
		task.ETASec = int(eta.Seconds())
	}

	if update.Info != nil && update.Info.Title != nil && *update.Info.Title != "" && task.Title == "" {
		task.Title = *update.Info.Title
	}
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(task *model.DownloadTask) {
	if s.onUpdate != nil {
		s.onUpdate(task)
	}
}

// generateTaskID generates a unique, time-ordered task ID
func generateTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf(TaskIDPrefix+"%d", time.Now().UnixNano())
	}
	return TaskIDPrefix + id.String()
}
