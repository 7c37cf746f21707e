package model

import (
	"fmt"
	"strings"
	"time"
)

// DownloadTask represents a single audio download task
type DownloadTask struct {
	ID         string
	URL        string
	VideoID    string
	Status     TaskStatus
	Progress   float64   // 0.0 to 1.0
	Percent    int       // 0 to 100
	Speed      string    // human readable speed (e.g., "1.2MB/s")
	ETASec     int       // ETA in seconds, -1 if unknown
	LastError  string    // last error message if any
	OutputPath string    // path to the produced MP3
	StartedAt  time.Time // when download started
	FinishedAt time.Time // when download finished
	Title      string    // video title
}

// GetETAString returns ETA formatted as hh:mm:ss, or "—" if unknown
func (dt *DownloadTask) GetETAString() string {
	if dt.ETASec <= 0 {
		return "—"
	}

	hours := dt.ETASec / 3600
	minutes := (dt.ETASec % 3600) / 60
	seconds := dt.ETASec % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// GetDisplayTitle returns title, filename, or URL in order of preference
func (dt *DownloadTask) GetDisplayTitle() string {
	// First priority: video title (non-URL)
	if dt.Title != "" && !strings.HasPrefix(dt.Title, "http") {
		return dt.Title
	}

	// Second priority: filename from OutputPath
	if dt.OutputPath != "" {
		parts := strings.FieldsFunc(dt.OutputPath, func(r rune) bool {
			return r == '/' || r == '\\'
		})
		if len(parts) > 0 {
			filename := parts[len(parts)-1]
			if idx := strings.LastIndex(filename, "."); idx > 0 {
				filename = filename[:idx]
			}
			return filename
		}
	}

	if dt.URL == "" {
		return ""
	}
	return dt.URL
}
