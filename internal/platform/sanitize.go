package platform

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Characters stripped from titles before they become filenames
var invalidFilenameChars = regexp.MustCompile(`[\\/:*?"<>|]+`)

// SanitizeTitle strips filesystem-hostile characters from a video title.
// An empty result falls back to the provided video ID so a file is always
// nameable.
func SanitizeTitle(title, fallbackID string) string {
	sanitized := strings.TrimSpace(invalidFilenameChars.ReplaceAllString(title, ""))
	if sanitized == "" {
		sanitized = fallbackID
	}
	return sanitized
}

// SanitizedPath returns the path a downloaded file should be renamed to:
// same directory, sanitized title, original extension.
func SanitizedPath(originalPath, title, fallbackID string) string {
	dir := filepath.Dir(originalPath)
	ext := filepath.Ext(originalPath)
	return filepath.Join(dir, SanitizeTitle(title, fallbackID)+ext)
}
