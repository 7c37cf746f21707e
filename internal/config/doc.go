package config

// Package config loads and validates the TOML application configuration.
// Missing files resolve to defaults so the CLI works without any setup.
