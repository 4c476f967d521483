package tui

import "log/slog"

// Theme captures optional prefixes the session applies when printing
// messages. Keep minimal to avoid coupling session logic to ANSI specifics.
type Theme struct {
	RequiredSuffix string
	InfoPrefix     string
	ErrorPrefix    string
}

// DefaultTheme is applied when no theme is configured.
var DefaultTheme = Theme{
	RequiredSuffix: " *",
	InfoPrefix:     "✔ ",
	ErrorPrefix:    "✘ ",
}

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the prompt driver used by the session.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}

// WithLogger sets the logger. If not provided, logs are discarded.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}
