package download

// Package download implements the core download pipeline built on top of
// yt-dlp (via github.com/lrstanley/go-ytdlp). It selects best audio, asks
// the tool's ffmpeg post-processing for MP3 output, bounds parallelism, and
// applies the skip-and-continue policy for failing playlist entries.
