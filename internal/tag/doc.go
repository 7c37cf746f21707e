package tag

// Package tag reads and enriches ID3v2 metadata on downloaded MP3s.
// Enrichment only fills empty frames; user-visible tags are never
// overwritten.
