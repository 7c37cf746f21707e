package platform

// Package platform contains filesystem and URL helpers shared by the
// download pipeline: filename sanitization, duplicate-safe renames, and
// YouTube playlist URL parsing.
