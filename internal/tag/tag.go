package tag

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2/v2"
)

// Artist/title separator used in conventional upload names
const filenameSeparator = " - "

// Default frame values when nothing better is known
const (
	DefaultGenre = "Other"
)

// Metadata is the subset of ID3 frames the enricher manages
type Metadata struct {
	Title  string
	Artist string
	Album  string
	Genre  string
}

// Read returns the managed frames of an MP3 file
func Read(path string) (Metadata, error) {
	t, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return Metadata{}, fmt.Errorf("open id3 tag %s: %w", path, err)
	}
	defer t.Close()

	return Metadata{
		Title:  t.Title(),
		Artist: t.Artist(),
		Album:  t.Album(),
		Genre:  t.Genre(),
	}, nil
}

// MissingFrames lists which managed frames are empty
func (m Metadata) MissingFrames() []string {
	var missing []string
	if m.Title == "" {
		missing = append(missing, "title")
	}
	if m.Artist == "" {
		missing = append(missing, "artist")
	}
	if m.Album == "" {
		missing = append(missing, "album")
	}
	if m.Genre == "" {
		missing = append(missing, "genre")
	}
	return missing
}

// Enrich fills empty frames of the MP3 at path from fallback values and the
// filename. Existing frames are never overwritten. Returns true when the
// file was modified.
func Enrich(path string, fallback Metadata) (bool, error) {
	t, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return false, fmt.Errorf("open id3 tag %s: %w", path, err)
	}
	defer t.Close()

	derived := FromFilename(path)
	changed := false

	if t.Title() == "" {
		title := firstNonEmpty(fallback.Title, derived.Title)
		if title != "" {
			t.SetTitle(title)
			changed = true
		}
	}
	if t.Artist() == "" {
		artist := firstNonEmpty(fallback.Artist, derived.Artist)
		if artist != "" {
			t.SetArtist(artist)
			changed = true
		}
	}
	if t.Album() == "" && fallback.Album != "" {
		t.SetAlbum(fallback.Album)
		changed = true
	}
	if t.Genre() == "" {
		t.SetGenre(firstNonEmpty(fallback.Genre, DefaultGenre))
		changed = true
	}

	if !changed {
		return false, nil
	}
	if err := t.Save(); err != nil {
		return false, fmt.Errorf("save id3 tag %s: %w", path, err)
	}
	return true, nil
}

// FromFilename derives metadata from a conventional "Artist - Title.mp3"
// upload name. When no separator is present the whole stem is the title.
func FromFilename(path string) Metadata {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	if idx := strings.Index(stem, filenameSeparator); idx > 0 {
		return Metadata{
			Artist: strings.TrimSpace(stem[:idx]),
			Title:  strings.TrimSpace(stem[idx+len(filenameSeparator):]),
		}
	}
	return Metadata{Title: strings.TrimSpace(stem)}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
