// Package logging builds the zerolog logger used by every command.
//
// Records go to a rotating JSON file under the config directory
// (<dir>/logs/cli.log). Verbose mode also writes human-readable lines to
// stderr. Nothing is written below the active level, and the file is not
// created until the first record at or above it.
package logging

import (
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// EnvLevel overrides the default level.
const EnvLevel = "COINPAPRIKA_LOG_LEVEL"

// DefaultLevel applies when no level is configured.
const DefaultLevel = zerolog.WarnLevel

// Rotation settings.
const (
	maxSizeMB  = 10
	maxBackups = 3
	maxAgeDays = 28
)

// FilePath returns the log file location for a config directory.
func FilePath(configDir string) string {
	return filepath.Join(configDir, "logs", "cli.log")
}

// ParseLevel accepts debug, info, warn, error (case-insensitive).
// Anything else, including the empty string, yields DefaultLevel.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	}
	return DefaultLevel
}

// Options configures New.
type Options struct {
	// File receives JSON records. When nil, a rotating file at FilePath(Dir) is used.
	File io.Writer
	// Dir is the config directory; ignored when File is set.
	Dir string
	// Level is the textual level (see ParseLevel).
	Level string
	// Verbose forces debug level and tees records to Console.
	Verbose bool
	// Console receives human-readable records in verbose mode (usually stderr).
	Console io.Writer
}

// New returns a logger and a closer for the file sink. The closer is a no-op
// when File was supplied.
func New(opts Options) (zerolog.Logger, io.Closer) {
	var (
		sink   io.Writer = opts.File
		closer io.Closer = nopCloser{}
	)
	if sink == nil {
		lj := &lumberjack.Logger{
			Filename:   FilePath(opts.Dir),
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
			Compress:   true,
		}
		sink, closer = lj, lj
	}

	level := ParseLevel(opts.Level)
	w := sink
	if opts.Verbose {
		level = zerolog.DebugLevel
		if opts.Console != nil {
			w = zerolog.MultiLevelWriter(sink, zerolog.ConsoleWriter{
				Out:        opts.Console,
				TimeFormat: time.TimeOnly,
				NoColor:    true,
			})
		}
	}

	logger := zerolog.New(w).Level(level).With().Timestamp().Logger()
	return logger, closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
