package logging

import (
	"io"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options describes where log lines go
type Options struct {
	Level        string
	DebugEnabled bool
	File         string
	MaxSizeMB    int
	MaxBackups   int
	Console      io.Writer
}

// Setup builds the root logger. When debug file logging is enabled the file
// is rotated by lumberjack; the returned closer releases it.
func Setup(component string, opts Options) (*Logger, io.Closer, error) {
	console := opts.Console
	if console == nil {
		console = os.Stdout
	}

	if !opts.DebugEnabled || opts.File == "" {
		return NewLogger(component, ParseLevel(opts.Level), console), nopCloser{}, nil
	}

	if dir := filepath.Dir(opts.File); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, nil, err
		}
	}

	file := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		Compress:   true,
	}

	// The file receives DEBUG lines regardless of the console level.
	mw := NewMultiWriter(console, file, true)
	return NewLogger(component, DEBUG, mw), file, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
