package transcode

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// FFmpeg constants for MP3 conversion
const (
	// Audio codec settings
	AudioCodec   = "libmp3lame"
	AudioBitrate = "192k"

	// Executable and I/O constants
	FFmpegCommand       = "ffmpeg"
	FFprobeCommand      = "ffprobe"
	FFprobeLogLevel     = "error"
	FFprobeShowEntries  = "format=duration"
	FFprobeOutputFormat = "csv=p=0"
	ProgressPipeTarget  = "pipe:2"
	ProgressTimePrefix  = "out_time_us="
	OutputExtensionMP3  = ".mp3"
)

// ConvertibleExtensions are audio leftovers worth converting to MP3
var ConvertibleExtensions = []string{".m4a", ".webm", ".opus", ".ogg", ".wav", ".aac"}

// Service converts stray audio files to MP3 by invoking ffmpeg directly
type Service struct {
	bitrate    string
	onProgress func(progress float64) // optional progress callback, 0.0 to 1.0
}

// NewService creates a new transcode service. Empty bitrate uses the default.
func NewService(bitrate string) *Service {
	if bitrate == "" {
		bitrate = AudioBitrate
	}
	return &Service{bitrate: bitrate}
}

// SetProgressCallback sets the callback invoked with conversion progress
func (s *Service) SetProgressCallback(callback func(progress float64)) {
	s.onProgress = callback
}

// IsConvertible reports whether the file extension is a known audio leftover
func IsConvertible(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, c := range ConvertibleExtensions {
		if ext == c {
			return true
		}
	}
	return false
}

// Convert transcodes inputPath to an MP3 alongside it and removes the
// original on success. Returns the MP3 path. A partial output file is
// removed on error or cancellation.
func (s *Service) Convert(ctx context.Context, inputPath string) (string, error) {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return "", fmt.Errorf("input file does not exist: %s", inputPath)
	}

	outputPath := generateOutputPath(inputPath)
	if _, err := os.Stat(outputPath); err == nil {
		return "", fmt.Errorf("output file already exists: %s", outputPath)
	}

	// Duration is only needed for progress reporting; conversion proceeds
	// without it.
	duration, durErr := s.getAudioDuration(inputPath)

	args := s.BuildFFmpegArgs(inputPath, outputPath)
	cmd := exec.CommandContext(ctx, FFmpegCommand, args...)

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return "", fmt.Errorf("failed to create stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	if durErr == nil && duration > 0 {
		go s.monitorProgress(stderr, duration)
	} else {
		go func() { _, _ = io.Copy(io.Discard, stderr) }()
	}

	if err := cmd.Wait(); err != nil {
		os.Remove(outputPath)
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("ffmpeg failed for %s: %w", inputPath, err)
	}

	if err := os.Remove(inputPath); err != nil {
		return "", fmt.Errorf("remove converted source %s: %w", inputPath, err)
	}
	return outputPath, nil
}

// BuildFFmpegArgs builds the ffmpeg command arguments
func (s *Service) BuildFFmpegArgs(inputPath, outputPath string) []string {
	return []string{
		"-i", inputPath, // Input file
		"-vn",                // Drop any video/cover stream
		"-c:a", AudioCodec,   // MP3 encoder
		"-b:a", s.bitrate,    // Audio bitrate
		"-progress", ProgressPipeTarget, // Progress to stderr
		"-nostats", // No stats output
		outputPath, // Output file
	}
}

// getAudioDuration gets the duration of an audio file using ffprobe
func (s *Service) getAudioDuration(filePath string) (float64, error) {
	cmd := exec.Command(FFprobeCommand, "-v", FFprobeLogLevel, "-show_entries", FFprobeShowEntries, "-of", FFprobeOutputFormat, filePath)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("failed to run ffprobe: %w", err)
	}

	durationStr := strings.TrimSpace(string(output))
	duration, err := strconv.ParseFloat(durationStr, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration: %w", err)
	}

	return duration, nil
}

// monitorProgress parses ffmpeg progress output lines
func (s *Service) monitorProgress(stderr io.ReadCloser, totalDuration float64) {
	defer stderr.Close()
	scanner := bufio.NewScanner(stderr)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Parse progress line: out_time_us=123456
		if !strings.HasPrefix(line, ProgressTimePrefix) {
			continue
		}
		timeStr := strings.TrimPrefix(line, ProgressTimePrefix)
		timeMicroseconds, err := strconv.ParseInt(timeStr, 10, 64)
		if err != nil {
			continue
		}

		timeSeconds := float64(timeMicroseconds) / 1000000.0
		progress := timeSeconds / totalDuration
		if progress > 1.0 {
			progress = 1.0
		}
		if s.onProgress != nil {
			s.onProgress(progress)
		}
	}
}

// generateOutputPath swaps the extension for .mp3
func generateOutputPath(inputPath string) string {
	ext := filepath.Ext(inputPath)
	return strings.TrimSuffix(inputPath, ext) + OutputExtensionMP3
}
