package download

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tunegrab/tunegrab/internal/model"
	"github.com/tunegrab/tunegrab/internal/platform"
)

var _ Downloader = (*Service)(nil)

func TestProcessURL_RejectsMalformedURL(t *testing.T) {
	s := NewService(Options{MusicDir: t.TempDir(), MaxParallel: 1}, nil)

	for _, url := range []string{"", "not-a-url", "ftp://example.com/x"} {
		if _, err := s.ProcessURL(context.Background(), url); err == nil {
			t.Errorf("ProcessURL(%q) expected error", url)
		}
	}
}

func TestLocateOutput(t *testing.T) {
	dir := t.TempDir()

	// Reported path already MP3.
	if got := locateOutput(filepath.Join(dir, "song.mp3")); got != filepath.Join(dir, "song.mp3") {
		t.Errorf("locateOutput() = %q", got)
	}

	// Post-processed sibling exists: the MP3 wins.
	mp3 := filepath.Join(dir, "song.mp3")
	if err := os.WriteFile(mp3, []byte("audio"), 0644); err != nil {
		t.Fatal(err)
	}
	if got := locateOutput(filepath.Join(dir, "song.webm")); got != mp3 {
		t.Errorf("locateOutput() = %q, expected %q", got, mp3)
	}

	// No sibling: reported path stands.
	reported := filepath.Join(dir, "other.webm")
	if got := locateOutput(reported); got != reported {
		t.Errorf("locateOutput() = %q, expected %q", got, reported)
	}
}

func TestGenerateTaskID(t *testing.T) {
	a := generateTaskID()
	b := generateTaskID()
	if !strings.HasPrefix(a, TaskIDPrefix) {
		t.Errorf("task ID %q missing prefix %q", a, TaskIDPrefix)
	}
	if a == b {
		t.Errorf("consecutive task IDs collide: %q", a)
	}
}

func TestNewService_ClampsParallelism(t *testing.T) {
	s := NewService(Options{MusicDir: "music", MaxParallel: 0}, nil)
	if s.opts.MaxParallel != 1 {
		t.Errorf("MaxParallel = %d, expected clamp to 1", s.opts.MaxParallel)
	}
}

func TestDownloadPlaylist_SkipsFailingEntries(t *testing.T) {
	s := NewService(Options{MusicDir: t.TempDir(), MaxParallel: 2}, nil)
	s.downloadFn = func(ctx context.Context, url string) (*model.DownloadTask, error) {
		if strings.Contains(url, "bad") {
			return nil, errors.New("video unavailable")
		}
		return &model.DownloadTask{
			URL:        url,
			Status:     model.TaskStatusCompleted,
			OutputPath: url + ".mp3",
		}, nil
	}

	playlist := model.NewPlaylist("https://www.youtube.com/playlist?list=PLx")
	playlist.ID = "PLx"
	for _, id := range []string{"good1", "bad2", "good3"} {
		playlist.AddEntry(&model.PlaylistEntry{
			ID:     id,
			URL:    platform.VideoURL(id),
			Status: model.EntryStatusPending,
		})
	}

	tasks := s.DownloadPlaylist(context.Background(), playlist)

	if len(tasks) != 2 {
		t.Fatalf("DownloadPlaylist() returned %d tasks, expected 2", len(tasks))
	}
	if playlist.Downloaded != 2 {
		t.Errorf("Downloaded = %d, expected 2", playlist.Downloaded)
	}

	for _, entry := range playlist.Entries {
		switch entry.ID {
		case "bad2":
			if entry.Status != model.EntryStatusSkipped {
				t.Errorf("failing entry status = %s, expected %s", entry.Status, model.EntryStatusSkipped)
			}
			if entry.Error == "" {
				t.Error("failing entry has no recorded error")
			}
		default:
			if entry.Status != model.EntryStatusCompleted {
				t.Errorf("entry %s status = %s, expected %s", entry.ID, entry.Status, model.EntryStatusCompleted)
			}
			if entry.OutputPath == "" {
				t.Errorf("entry %s has no output path", entry.ID)
			}
		}
	}
}

func TestDownloadConcurrency_SharedBound(t *testing.T) {
	const maxParallel = 2
	s := NewService(Options{MusicDir: "music", MaxParallel: maxParallel}, nil)

	var inFlight, peak int32
	s.downloadFn = func(ctx context.Context, url string) (*model.DownloadTask, error) {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			old := atomic.LoadInt32(&peak)
			if n <= old || atomic.CompareAndSwapInt32(&peak, old, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return &model.DownloadTask{URL: url, Status: model.TaskStatusCompleted}, nil
	}

	playlist := model.NewPlaylist("https://www.youtube.com/playlist?list=PLy")
	playlist.ID = "PLy"
	for i := 0; i < 6; i++ {
		id := fmt.Sprintf("entry%d", i)
		playlist.AddEntry(&model.PlaylistEntry{
			ID:     id,
			URL:    platform.VideoURL(id),
			Status: model.EntryStatusPending,
		})
	}

	var urls []string
	for i := 0; i < 4; i++ {
		urls = append(urls, platform.VideoURL(fmt.Sprintf("batch%d", i)))
	}

	// Playlist entries and batch URLs downloading at the same time must
	// share one worker bound.
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.DownloadPlaylist(context.Background(), playlist)
	}()
	results := s.ProcessAll(context.Background(), urls)
	<-done

	for _, result := range results {
		if result.Err != nil {
			t.Fatalf("ProcessAll() item %s failed: %v", result.URL, result.Err)
		}
	}
	if got := atomic.LoadInt32(&peak); got > maxParallel {
		t.Errorf("peak concurrent downloads = %d, expected at most %d", got, maxParallel)
	}
}
