package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/nhdewitt/drivescope/internal/report"
)

// Config holds everything the command line controls.
type Config struct {
	JSON     bool
	NoTable  bool
	Count    bool
	Color    string // auto, always or never
	LogLevel string
	Widths   report.ColumnWidths
}

func defaultConfig() Config {
	return Config{
		Color:    "auto",
		LogLevel: "warn",
		Widths:   report.DefaultColumnWidths(),
	}
}

func (c Config) validate() error {
	if _, err := parseLogLevel(c.LogLevel); err != nil {
		return err
	}
	if _, err := colorEnabled(c.Color, false); err != nil {
		return err
	}

	widths := map[string]int{
		"kind-width":      c.Widths.Kind,
		"total-width":     c.Widths.Total,
		"available-width": c.Widths.Available,
		"files-width":     c.Widths.Files,
		"dirs-width":      c.Widths.Dirs,
		"seconds-width":   c.Widths.Seconds,
		"time-width":      c.Widths.Time,
	}
	for flag, w := range widths {
		if w < 0 {
			return fmt.Errorf("--%s must not be negative, got %d", flag, w)
		}
	}

	if c.NoTable && !c.JSON {
		return fmt.Errorf("--no-table requires --json")
	}

	return nil
}

func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level %q, expected debug, info, warn or error", level)
	}
}

// colorEnabled resolves --color against whether stdout is a terminal.
func colorEnabled(mode string, isTerminal bool) (bool, error) {
	switch strings.ToLower(mode) {
	case "auto", "":
		return isTerminal, nil
	case "always":
		return true, nil
	case "never":
		return false, nil
	default:
		return false, fmt.Errorf("invalid color mode %q, expected auto, always or never", mode)
	}
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
