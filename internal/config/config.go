package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/tunegrab/tunegrab/internal/platform"
)

// Config holds the full application configuration
type Config struct {
	// MusicDir is the directory downloaded MP3s are written to
	MusicDir string `toml:"music_dir"`

	// MaxParallel is the number of parallel download workers
	MaxParallel int `toml:"max_parallel"`

	// AudioQuality is the target MP3 bitrate passed to the extractor (e.g. "192K")
	AudioQuality string `toml:"audio_quality"`

	// Retries is the per-item retry count forwarded to the extractor
	Retries int `toml:"retries"`

	// CookiesFile is an optional Netscape cookies file for private content
	CookiesFile string `toml:"cookies_file"`

	// ArchiveFile records processed URLs so batch runs skip them
	ArchiveFile string `toml:"archive_file"`

	// OrganizeByGenre moves finished MP3s into per-genre subdirectories
	OrganizeByGenre bool `toml:"organize_by_genre"`

	// EmbedThumbnail embeds the video thumbnail as cover art
	EmbedThumbnail bool `toml:"embed_thumbnail"`

	// EnrichTags fills in missing ID3 frames after download
	EnrichTags bool `toml:"enrich_tags"`

	LogLevel string `toml:"log_level"`
	LogFile  string `toml:"log_file"`
}

// Default values
const (
	DefaultMaxParallel  = 4
	DefaultAudioQuality = "192K"
	DefaultRetries      = 3
	DefaultLogLevel     = "info"
	DefaultLogFile      = "download.log"
	DefaultArchiveFile  = "processed_files.json"

	MinParallel = 1
	MaxParallel = 10
)

// Default returns a config populated with defaults. MusicDir falls back to
// ./music when the home directory cannot be resolved.
func Default() *Config {
	musicDir, err := platform.GetHomeMusicDir()
	if err != nil {
		musicDir = "music"
	}
	return &Config{
		MusicDir:        musicDir,
		MaxParallel:     DefaultMaxParallel,
		AudioQuality:    DefaultAudioQuality,
		Retries:         DefaultRetries,
		ArchiveFile:     DefaultArchiveFile,
		OrganizeByGenre: true,
		EmbedThumbnail:  true,
		EnrichTags:      true,
		LogLevel:        DefaultLogLevel,
		LogFile:         DefaultLogFile,
	}
}

// DefaultPath returns the default config file location
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, "tunegrab", "config.toml"), nil
}

// Load reads configuration from path. A missing file is not an error:
// defaults are returned so the tool works with zero setup.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// normalize clamps and defaults fields after unmarshalling
func (c *Config) normalize() {
	if c.MaxParallel < MinParallel {
		c.MaxParallel = MinParallel
	}
	if c.MaxParallel > MaxParallel {
		c.MaxParallel = MaxParallel
	}
	if c.AudioQuality == "" {
		c.AudioQuality = DefaultAudioQuality
	}
	if c.Retries < 0 {
		c.Retries = DefaultRetries
	}
	if c.ArchiveFile == "" {
		c.ArchiveFile = DefaultArchiveFile
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}

// Validate checks fields that have no sensible fallback
func (c *Config) Validate() error {
	if c.MusicDir == "" {
		return fmt.Errorf("config: music_dir must not be empty")
	}
	return nil
}

// UseCookies reports whether a usable cookies file is configured. A missing
// or empty file downgrades to anonymous access.
func (c *Config) UseCookies() bool {
	if c.CookiesFile == "" {
		return false
	}
	info, err := os.Stat(c.CookiesFile)
	return err == nil && info.Size() > 0
}
