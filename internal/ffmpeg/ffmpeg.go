// Package ffmpeg drives the external encoder. Frames arrive fully composed
// from the pipeline; this package only moves raw RGBA bytes into an
// encoding process (or the built-in MJPEG fallback when ffmpeg is absent).
package ffmpeg

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"
)

// ErrNotFound marks that no usable ffmpeg binary was located.
var ErrNotFound = errors.New("ffmpeg not found")

// Executor handles encoder invocations.
type Executor struct {
	logger     zerolog.Logger
	ffmpegPath string
	threads    int
}

// New creates an executor. binaryPath overrides discovery when set;
// otherwise PATH and common install locations are searched. ErrNotFound is
// returned when no binary resolves, so the caller can pick the fallback
// encoder.
func New(logger zerolog.Logger, binaryPath string, threads int) (*Executor, error) {
	path, err := locate(binaryPath)
	if err != nil {
		return nil, err
	}
	return &Executor{
		logger:     logger.With().Str("component", "ffmpeg").Logger(),
		ffmpegPath: path,
		threads:    threads,
	}, nil
}

// Path returns the resolved ffmpeg binary path.
func (e *Executor) Path() string { return e.ffmpegPath }

func locate(override string) (string, error) {
	if override != "" {
		if _, err := os.Stat(override); err != nil {
			return "", fmt.Errorf("%w: configured path %s: %v", ErrNotFound, override, err)
		}
		return override, nil
	}

	if path, err := exec.LookPath("ffmpeg"); err == nil {
		return path, nil
	}

	var common []string
	switch runtime.GOOS {
	case "darwin":
		common = []string{"/usr/local/bin/ffmpeg", "/opt/homebrew/bin/ffmpeg"}
	case "linux":
		common = []string{"/usr/bin/ffmpeg", "/usr/local/bin/ffmpeg"}
	case "windows":
		common = []string{
			filepath.Join("C:\\", "ffmpeg", "bin", "ffmpeg.exe"),
			filepath.Join("C:\\", "Program Files", "ffmpeg", "bin", "ffmpeg.exe"),
		}
	}
	for _, p := range common {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w in PATH or common locations", ErrNotFound)
}

// streamStderr forwards encoder output to the debug log.
func (e *Executor) streamStderr(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		e.logger.Debug().Str("ffmpeg", scanner.Text()).Msg("encoder output")
	}
}
