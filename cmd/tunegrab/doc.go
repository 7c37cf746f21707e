// Command tunegrab downloads YouTube audio as MP3, names files from video
// titles, and keeps a music directory organized and tagged.
package main
