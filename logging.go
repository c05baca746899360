package main

import (
	"fmt"
	"io"
	"log/slog"
)

// newLogger returns a text logger writing to w at the named level.
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	opts := &slog.HandlerOptions{Level: lvl, AddSource: lvl <= slog.LevelDebug}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}
