package model

// Package model defines domain data structures used across the app: download
// tasks, playlist entities, and status enums. Structures carry explicit state
// transitions so the CLI and the download pipeline share one vocabulary.
