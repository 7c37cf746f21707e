package model

import (
	"time"
)

// EntryStatus represents the status of a single entry in a playlist
type EntryStatus string

const (
	EntryStatusPending     EntryStatus = "pending"
	EntryStatusDownloading EntryStatus = "downloading"
	EntryStatusCompleted   EntryStatus = "completed"
	EntryStatusError       EntryStatus = "error"
	EntryStatusSkipped     EntryStatus = "skipped"
)

// PlaylistEntry represents a single video in a playlist
type PlaylistEntry struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	URL        string      `json:"url"`
	Status     EntryStatus `json:"status"`
	Error      string      `json:"error,omitempty"`
	OutputPath string      `json:"output_path,omitempty"` // path to the produced MP3
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// Playlist represents a YouTube playlist with its entries
type Playlist struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	URL          string           `json:"url"`
	Entries      []*PlaylistEntry `json:"entries"`
	TotalEntries int              `json:"total_entries"`
	Downloaded   int              `json:"downloaded"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// NewPlaylist creates a new playlist instance
func NewPlaylist(url string) *Playlist {
	now := time.Now()
	return &Playlist{
		URL:       url,
		Entries:   make([]*PlaylistEntry, 0),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddEntry adds an entry to the playlist
func (p *Playlist) AddEntry(entry *PlaylistEntry) {
	p.Entries = append(p.Entries, entry)
	p.TotalEntries = len(p.Entries)
	p.UpdatedAt = time.Now()
}

// UpdateEntryStatus updates the status of a specific entry
func (p *Playlist) UpdateEntryStatus(entryID string, status EntryStatus) {
	for _, entry := range p.Entries {
		if entry.ID == entryID {
			entry.Status = status
			entry.UpdatedAt = time.Now()
			break
		}
	}
}

// GetPendingEntries returns all entries with pending status
func (p *Playlist) GetPendingEntries() []*PlaylistEntry {
	var pending []*PlaylistEntry
	for _, entry := range p.Entries {
		if entry.Status == EntryStatusPending {
			pending = append(pending, entry)
		}
	}
	return pending
}

// GetCompletedEntries returns all completed entries
func (p *Playlist) GetCompletedEntries() []*PlaylistEntry {
	var completed []*PlaylistEntry
	for _, entry := range p.Entries {
		if entry.Status == EntryStatusCompleted {
			completed = append(completed, entry)
		}
	}
	return completed
}

// GetSkippedEntries returns all entries skipped due to per-entry failures
func (p *Playlist) GetSkippedEntries() []*PlaylistEntry {
	var skipped []*PlaylistEntry
	for _, entry := range p.Entries {
		if entry.Status == EntryStatusSkipped || entry.Status == EntryStatusError {
			skipped = append(skipped, entry)
		}
	}
	return skipped
}

// GetDownloadProgress returns overall download progress as percentage
func (p *Playlist) GetDownloadProgress() float64 {
	if p.TotalEntries == 0 {
		return 0
	}

	completed := len(p.GetCompletedEntries())
	return float64(completed) / float64(p.TotalEntries) * 100
}
