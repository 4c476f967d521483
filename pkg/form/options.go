package form

import "log/slog"

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used by the engine. If not provided, logs are
// discarded.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithCancelHandler registers the navigation hook run by Cancel.
func WithCancelHandler(fn func()) Option {
	return func(e *Engine) {
		e.onCancel = fn
	}
}

// WithSessionID overrides the identifier attached to log records.
func WithSessionID(id string) Option {
	return func(e *Engine) {
		if id != "" {
			e.session = id
		}
	}
}
