package core

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards every record. Enabled returns false so callers skip
// formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger shared by core, renderer and the OpenGL
// device. Logging is silent until SetLogger is called; nil restores that.
//
// Levels in use:
//   - Debug: state cache misses, program reflection, framebuffer status
//   - Info: context creation and driver identification
//   - Warn: zero-sized surfaces and released-twice resources
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. Safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// ParseLogLevel maps a config string to a slog level. Unknown values and the
// empty string report false.
func ParseLogLevel(s string) (slog.Level, bool) {
	var level slog.Level
	if s == "" {
		return level, false
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return level, false
	}
	return level, true
}
