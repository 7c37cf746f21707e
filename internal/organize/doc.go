package organize

// Package organize sorts finished MP3s into a small set of genre folders
// under the music directory.
