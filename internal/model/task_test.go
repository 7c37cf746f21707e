package model

import (
	"testing"
)

func TestDownloadTask_GetETAString(t *testing.T) {
	tests := []struct {
		etaSec   int
		expected string
	}{
		{-1, "—"},
		{0, "—"},
		{30, "00:30"},
		{90, "01:30"},
		{3600, "01:00:00"},
		{3661, "01:01:01"},
		{7323, "02:02:03"},
	}

	for _, test := range tests {
		task := &DownloadTask{ETASec: test.etaSec}
		result := task.GetETAString()
		if result != test.expected {
			t.Errorf("GetETAString() with ETASec=%d = %s, expected %s", test.etaSec, result, test.expected)
		}
	}
}

func TestDownloadTask_GetDisplayTitle(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		output   string
		url      string
		expected string
	}{
		{"title wins", "Song Title", "/music/Song Title.mp3", "https://youtube.com/watch?v=123", "Song Title"},
		{"url-shaped title ignored", "https://youtu.be/abc", "/music/Real Name.mp3", "https://youtube.com/watch?v=123", "Real Name"},
		{"filename fallback", "", "/music/Another Track.mp3", "https://youtube.com/watch?v=456", "Another Track"},
		{"windows separators", "", `C:\music\Track.mp3`, "https://youtube.com/watch?v=789", "Track"},
		{"url fallback", "", "", "https://youtube.com/watch?v=123", "https://youtube.com/watch?v=123"},
		{"empty everything", "", "", "", ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			task := &DownloadTask{Title: test.title, OutputPath: test.output, URL: test.url}
			result := task.GetDisplayTitle()
			if result != test.expected {
				t.Errorf("GetDisplayTitle() = %q, expected %q", result, test.expected)
			}
		})
	}
}
