package archive

// Package archive persists the set of already-processed download
// identifiers as a flat JSON file, letting repeated batch runs skip
// finished work.
