// Package logging builds the structured loggers used by the snake commands.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// DefaultFile is where the interactive game logs. The terminal belongs to
// the game while it runs, so nothing is written to stderr.
const DefaultFile = "~/.snake/snake.log"

// Options configures New.
type Options struct {
	// File is a log file path. Empty logs to Stderr. "~" is expanded.
	File string
	// Level is one of debug, info, warn, error. Empty means info.
	Level string
	// Prefix is shown before every message.
	Prefix string
	// Stderr is used when File is empty. Defaults to os.Stderr.
	Stderr io.Writer
}

// New returns a logger and a function that releases its output.
func New(opts Options) (*log.Logger, func() error, error) {
	level := log.InfoLevel
	if opts.Level != "" {
		l, err := log.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, nil, fmt.Errorf("logging: %w", err)
		}
		level = l
	}

	var (
		w       io.Writer
		closeFn = func() error { return nil }
	)
	if opts.File != "" {
		path, err := expandHome(opts.File)
		if err != nil {
			return nil, nil, err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("logging: cannot create directory for %s: %w", path, err)
		}
		// 10MB per file, 3 backups, a week of history
		lj := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     7,
		}
		w, closeFn = lj, lj.Close
	} else {
		w = opts.Stderr
		if w == nil {
			w = os.Stderr
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          opts.Prefix,
		Level:           level,
	})
	return logger, closeFn, nil
}

func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("logging: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
