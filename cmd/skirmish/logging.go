package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lixenwraith/skirmish/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// setupLogging builds the process logger
// Without a log file records go to fallback. An existing log file is rotated
// aside with a timestamp suffix so each run starts fresh
func setupLogging(s config.LogSettings, fallback io.Writer) (*slog.Logger, io.Closer, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s.Level)); err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}
	opts := &slog.HandlerOptions{Level: level}

	if s.File == "" {
		return slog.New(slog.NewTextHandler(fallback, opts)), nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(s.File), 0755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	if _, err := os.Stat(s.File); err == nil {
		rotated := s.File + "." + time.Now().Format("20060102-150405.000")
		if err := os.Rename(s.File, rotated); err != nil {
			return nil, nil, fmt.Errorf("rotate log: %w", err)
		}
	}
	f, err := os.OpenFile(s.File, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	return slog.New(slog.NewJSONHandler(f, opts)), f, nil
}
