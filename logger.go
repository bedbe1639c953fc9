package stitchboard

import (
	"context"
	"log/slog"
)

// nopHandler is a slog.Handler that silently discards all log records.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// logger is the package logger. stitchboard is single-threaded, so a plain
// variable is enough.
var logger = slog.New(nopHandler{})

// SetLogger configures the logger used by stitchboard. By default nothing is
// logged. Pass nil to restore the silent default.
//
// Log levels used:
//   - [slog.LevelDebug]: picture lifecycle, stitch layouts, skipped triangles
//   - [slog.LevelInfo]: exports and loaded files
//   - [slog.LevelWarn]: inputs that could not be decoded
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	logger = l
}

// Logger returns the current stitchboard logger.
func Logger() *slog.Logger {
	return logger
}
