// log/log.go
// Copyright(c) 2025 rzflight contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

type Logger struct {
	*slog.Logger
	LogFile string
	LogDir  string
	Start   time.Time
}

// New returns a Logger that writes structured JSON log records to a
// rotated file in dir. If dir is empty, a directory under the user config
// directory is used.
func New(level string, dir string) *Logger {
	if dir == "" {
		var err error
		dir, err = os.UserConfigDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Unable to find user config dir: %v", err)
			dir = "."
		}
		dir = filepath.Join(dir, "rzflight")
	}

	w := &lumberjack.Logger{
		Filename:   filepath.Join(dir, "rzflight.slog"),
		MaxSize:    32, // MB
		MaxBackups: 1,
	}
	if level == "debug" {
		w.MaxSize = 512
	}

	lvl := slog.LevelInfo
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		fmt.Fprintf(os.Stderr, "%s: invalid log level", level)
	}

	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	l := &Logger{
		Logger:  slog.New(h),
		LogFile: w.Filename,
		LogDir:  dir,
		Start:   time.Now(),
	}

	// Start out the logs with some basic information about the system
	// we're running on.
	l.Info("Hello logging", slog.Time("start", time.Now()))
	l.Info("System information",
		slog.String("GOARCH", runtime.GOARCH),
		slog.String("GOOS", runtime.GOOS),
		slog.Int("NumCPUs", runtime.NumCPU()))

	return l
}

// NewDiscard returns a Logger that drops everything it is given; it is
// useful for tests and for callers that do not care about logging.
func NewDiscard() *Logger {
	h := slog.NewJSONHandler(io.Discard, nil)
	return &Logger{Logger: slog.New(h), Start: time.Now()}
}

// Catches things like log.Errorf(err)
func (l *Logger) Errorf(msg string, args ...any) {
	if l == nil {
		return
	}
	l.Error(fmt.Sprintf(msg, args...))
}

func (l *Logger) Warnf(msg string, args ...any) {
	if l == nil {
		return
	}
	l.Warn(fmt.Sprintf(msg, args...))
}

func (l *Logger) Infof(msg string, args ...any) {
	if l == nil {
		return
	}
	l.Info(fmt.Sprintf(msg, args...))
}

func (l *Logger) Debugf(msg string, args ...any) {
	if l == nil {
		return
	}
	l.Debug(fmt.Sprintf(msg, args...))
}
