package platform

import (
	"path/filepath"
	"testing"
)

func TestSanitizeTitle(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		fallback string
		expected string
	}{
		{"clean title untouched", "Clean Title", "abc123", "Clean Title"},
		{"invalid chars stripped", `AC/DC: Back <In> Black?`, "abc123", "ACDC Back In Black"},
		{"pipes and quotes", `Song "Title" | Live`, "abc123", "Song Title  Live"},
		{"only invalid chars falls back to id", `\/:*?"<>|`, "abc123", "abc123"},
		{"whitespace trimmed", "  Padded  ", "abc123", "Padded"},
		{"empty title falls back to id", "", "dQw4w9WgXcQ", "dQw4w9WgXcQ"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := SanitizeTitle(test.title, test.fallback)
			if result != test.expected {
				t.Errorf("SanitizeTitle(%q) = %q, expected %q", test.title, result, test.expected)
			}
		})
	}
}

func TestSanitizedPath(t *testing.T) {
	got := SanitizedPath(filepath.Join("music", "raw.mp3"), "My: Song", "id1")
	expected := filepath.Join("music", "My Song.mp3")
	if got != expected {
		t.Errorf("SanitizedPath() = %q, expected %q", got, expected)
	}
}
