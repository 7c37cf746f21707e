package main

import (
	"fmt"
	"log/slog"

	"github.com/tunegrab/tunegrab/internal/config"
	"github.com/tunegrab/tunegrab/internal/download"
	"github.com/tunegrab/tunegrab/internal/logging"
	"github.com/tunegrab/tunegrab/internal/platform"
)

// commandContext lazily shares config, logger, and services between commands
type commandContext struct {
	configFlag *string
	quietFlag  *bool

	cfg      *config.Config
	logger   *slog.Logger
	closeLog func() error
}

func newCommandContext(configFlag *string, quietFlag *bool) *commandContext {
	return &commandContext{configFlag: configFlag, quietFlag: quietFlag}
}

// ensure loads configuration and builds the logger once per invocation
func (c *commandContext) ensure() error {
	if c.cfg != nil {
		return nil
	}

	path := *c.configFlag
	if path == "" {
		defaultPath, err := config.DefaultPath()
		if err != nil {
			return err
		}
		path = defaultPath
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.New(logging.Options{
		Level:   cfg.LogLevel,
		LogFile: cfg.LogFile,
		Quiet:   *c.quietFlag,
	})
	if err != nil {
		return err
	}

	if err := platform.CreateDirectoryIfNotExists(cfg.MusicDir); err != nil {
		closeLog()
		return fmt.Errorf("ensure music directory %s: %w", cfg.MusicDir, err)
	}

	c.cfg = cfg
	c.logger = logger
	c.closeLog = closeLog
	return nil
}

// downloadService builds the download service from loaded config
func (c *commandContext) downloadService() *download.Service {
	cookies := ""
	if c.cfg.UseCookies() {
		cookies = c.cfg.CookiesFile
		c.logger.Info("using cookies for authentication", "file", cookies)
	} else if c.cfg.CookiesFile != "" {
		c.logger.Warn("cookies file missing or empty, private videos may fail",
			"file", c.cfg.CookiesFile)
	}

	return download.NewService(download.Options{
		MusicDir:       c.cfg.MusicDir,
		AudioQuality:   c.cfg.AudioQuality,
		Retries:        c.cfg.Retries,
		CookiesFile:    cookies,
		MaxParallel:    c.cfg.MaxParallel,
		EmbedThumbnail: c.cfg.EmbedThumbnail,
		EmbedMetadata:  true,
	}, c.logger)
}

func (c *commandContext) close() {
	if c.closeLog != nil {
		c.closeLog()
	}
}
