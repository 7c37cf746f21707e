package platform

import (
	"testing"
)

func TestIsPlaylistURL(t *testing.T) {
	tests := []struct {
		url      string
		expected bool
	}{
		{"https://www.youtube.com/playlist?list=PLabc123", true},
		{"https://www.youtube.com/watch?v=xyz&list=PLabc123", true},
		{"https://www.youtube.com/watch?v=xyz", false},
		{"", false},
	}

	for _, test := range tests {
		if got := IsPlaylistURL(test.url); got != test.expected {
			t.Errorf("IsPlaylistURL(%q) = %v, expected %v", test.url, got, test.expected)
		}
	}
}

func TestExtractPlaylistID(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		expected  string
		expectErr bool
	}{
		{"plain playlist URL", "https://www.youtube.com/playlist?list=PLabc123", "PLabc123", false},
		{"watch URL with list", "https://www.youtube.com/watch?v=xyz&list=PLabc123&start_radio=1", "PLabc123", false},
		{"no list param", "https://www.youtube.com/watch?v=xyz", "", true},
		{"empty playlist ID", "https://www.youtube.com/playlist?list=", "", true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := ExtractPlaylistID(test.url)
			if test.expectErr {
				if err == nil {
					t.Errorf("ExtractPlaylistID(%q) expected error, got %q", test.url, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractPlaylistID(%q) unexpected error: %v", test.url, err)
			}
			if got != test.expected {
				t.Errorf("ExtractPlaylistID(%q) = %q, expected %q", test.url, got, test.expected)
			}
		})
	}
}

func TestVideoURL(t *testing.T) {
	if got := VideoURL("dQw4w9WgXcQ"); got != "https://www.youtube.com/watch?v=dQw4w9WgXcQ" {
		t.Errorf("VideoURL() = %q", got)
	}
}
