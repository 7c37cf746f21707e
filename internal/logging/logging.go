package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// Options describes logger construction parameters.
type Options struct {
	Level   string
	LogFile string // optional; "" disables file logging
	Quiet   bool   // suppress console output, keep file output
}

// New constructs a slog logger writing to stderr and, when configured, a
// log file. The file always receives full attributes; the console drops the
// timestamp when attached to a terminal to keep interactive output readable.
func New(opts Options) (*slog.Logger, func() error, error) {
	level := parseLevel(opts.Level)

	var writers []io.Writer
	closeFn := func() error { return nil }

	if !opts.Quiet {
		writers = append(writers, os.Stderr)
	}

	if opts.LogFile != "" {
		f, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file %s: %w", opts.LogFile, err)
		}
		writers = append(writers, f)
		closeFn = f.Close
	}

	if len(writers) == 0 {
		writers = append(writers, io.Discard)
	}

	// Timestamps stay on whenever a log file is in play; purely interactive
	// sessions drop them to keep console output readable.
	var replaceAttr func(groups []string, a slog.Attr) slog.Attr
	if opts.LogFile == "" {
		replaceAttr = consoleAttrs()
	}

	handler := slog.NewTextHandler(io.MultiWriter(writers...), &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceAttr,
	})

	return slog.New(handler), closeFn, nil
}

// consoleAttrs drops the time attribute for interactive terminals.
func consoleAttrs() func(groups []string, a slog.Attr) slog.Attr {
	interactive := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	if !interactive {
		return nil
	}
	return func(groups []string, a slog.Attr) slog.Attr {
		if len(groups) == 0 && a.Key == slog.TimeKey {
			return slog.Attr{}
		}
		return a
	}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "info", "":
		return slog.LevelInfo
	default:
		return slog.LevelInfo
	}
}
