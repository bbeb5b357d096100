package flame

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards every record and reports every level as disabled.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger configures the logger used by the engine. By default nothing is
// logged. Passing nil restores the silent default.
//
// Computations log at [slog.LevelDebug] (iteration counts, hit totals) and
// [slog.LevelInfo] (ensemble start and merge).
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the engine's current logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
