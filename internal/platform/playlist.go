package platform

import (
	"fmt"
	"strings"
)

// URL parameters and separators
const (
	PlaylistParam  = "list="
	ParamSeparator = "&"
)

// URL templates
const (
	YouTubeVideoURLTemplate = "https://www.youtube.com/watch?v=%s"
)

// IsPlaylistURL checks if the URL carries a playlist parameter
func IsPlaylistURL(url string) bool {
	return strings.Contains(url, PlaylistParam)
}

// ExtractPlaylistID extracts the playlist ID from various URL formats:
//   - https://www.youtube.com/watch?v=VIDEO_ID&list=PLAYLIST_ID
//   - https://www.youtube.com/playlist?list=PLAYLIST_ID
func ExtractPlaylistID(url string) (string, error) {
	if !strings.Contains(url, PlaylistParam) {
		return "", fmt.Errorf("URL does not contain playlist parameter")
	}

	parts := strings.Split(url, PlaylistParam)
	if len(parts) < 2 {
		return "", fmt.Errorf("could not extract playlist ID from URL")
	}

	playlistID := parts[1]
	if strings.Contains(playlistID, ParamSeparator) {
		playlistID = strings.Split(playlistID, ParamSeparator)[0]
	}

	if playlistID == "" {
		return "", fmt.Errorf("empty playlist ID")
	}

	return playlistID, nil
}

// VideoURL builds a canonical watch URL from a video ID
func VideoURL(videoID string) string {
	return fmt.Sprintf(YouTubeVideoURLTemplate, videoID)
}

// IsLikelyVideoURL performs a cheap sanity check before handing the URL to
// the extractor. The extractor does the real validation.
func IsLikelyVideoURL(url string) bool {
	url = strings.TrimSpace(url)
	return strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")
}
