// Package applog builds the ambient *slog.Logger passed down from the
// CLI into the lexer, the only pipeline stage with its own logging hook.
package applog

import (
	"log/slog"
	"os"
)

// New builds a text-handler logger to stderr: Info level normally,
// Debug when debug is set, with the timestamp and level attrs stripped
// so short diagnostic runs stay readable.
func New(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey || a.Key == slog.LevelKey {
				return slog.Attr{}
			}
			return a
		},
	})
	return slog.New(handler)
}

// Default is the logger used when a component is constructed without
// one supplied, so unit tests never need to wire one up explicitly.
func Default() *slog.Logger {
	return New(false)
}
