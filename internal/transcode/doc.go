package transcode

// Package transcode converts stray non-MP3 audio leftovers to MP3 by
// invoking ffmpeg directly. The normal download path gets its MP3s from the
// extractor's own post-processing; this package only cleans up after
// interrupted runs.
