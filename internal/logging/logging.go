package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

const appName = "boxbox"

// New builds the process logger: JSON records tagged with the app name,
// written to stderr and, when logFile is set, appended to that file too. The
// logger becomes the slog default. Callers must defer the returned cleanup.
func New(level, logFile string) (*slog.Logger, func(), error) {
	out, cleanup, err := openOutput(logFile)
	if err != nil {
		return nil, nil, err
	}

	logger := newLogger(out, ParseLevel(level))
	slog.SetDefault(logger)
	return logger, cleanup, nil
}

func newLogger(w io.Writer, lvl slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: lvl, AddSource: lvl <= slog.LevelDebug}
	return slog.New(slog.NewJSONHandler(w, opts)).With(slog.String("app", appName))
}

func openOutput(logFile string) (io.Writer, func(), error) {
	if logFile == "" {
		return os.Stderr, func() {}, nil
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return io.MultiWriter(os.Stderr, f), func() { _ = f.Close() }, nil
}

// ParseLevel accepts the slog level names ("debug", "INFO", "warn+2", ...) and
// "warning". Anything else means info.
func ParseLevel(s string) slog.Level {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "warning") {
		return slog.LevelWarn
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
