package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jrick/logrotate/rotator"
	"github.com/rs/zerolog"
)

const (
	logFileName   = "withdrawbot.log"
	rotateSizeKB  = 32 * 1024
	rotateBackups = 3
)

// New returns a timestamped zerolog logger. Unknown levels fall back to info.
func New(level string, out io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(out).With().Timestamp().Logger().Level(lvl)
}

// Setup builds the process logger. When dir is set, output is written to
// stdout and a rotating file in dir; the returned closer flushes the rotator.
func Setup(level, dir string) (zerolog.Logger, io.Closer, error) {
	if dir == "" {
		return New(level, os.Stdout), io.NopCloser(nil), nil
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	r, err := rotator.New(filepath.Join(dir, logFileName), rotateSizeKB, false, rotateBackups)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("failed to create file rotator: %w", err)
	}

	return New(level, zerolog.MultiLevelWriter(os.Stdout, r)), r, nil
}
