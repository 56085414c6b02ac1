package text

import (
	"context"
	"log/slog"
)

// SourceOption configures FontResource creation.
type SourceOption func(*sourceConfig)

// sourceConfig holds configuration for FontResource.
type sourceConfig struct {
	logger *slog.Logger
	path   string
}

// defaultSourceConfig returns the default source configuration.
func defaultSourceConfig() sourceConfig {
	return sourceConfig{
		logger: nopLogger(),
	}
}

// WithSourceLogger sets the logger used while loading the font.
// Pass nil to keep the default silent logger.
func WithSourceLogger(l *slog.Logger) SourceOption {
	return func(c *sourceConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// withPath records the file a resource was read from.
func withPath(path string) SourceOption {
	return func(c *sourceConfig) {
		c.path = path
	}
}

// nopHandler discards every record; Enabled reports false so callers skip
// formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func nopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerOrNop returns l, or a silent logger when l is nil.
func loggerOrNop(l *slog.Logger) *slog.Logger {
	if l == nil {
		return nopLogger()
	}
	return l
}
