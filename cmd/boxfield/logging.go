package main

import (
	"io"
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	maxLogSizeMB  = 10
	maxLogBackups = 3
)

// setupLogging builds the process logger and installs it as the slog default
// Without a file, logs are discarded: the terminal belongs to the renderer
// The returned closer is nil when nothing needs closing
func setupLogging(level slog.Level, file string) (*slog.Logger, io.Closer) {
	var (
		w      io.Writer = io.Discard
		closer io.Closer
	)
	if file != "" {
		lj := &lumberjack.Logger{
			Filename:   file,
			MaxSize:    maxLogSizeMB,
			MaxBackups: maxLogBackups,
		}
		w, closer = lj, lj
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger, closer
}
