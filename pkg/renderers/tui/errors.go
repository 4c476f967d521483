package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrCancelled signals the user left the form through the cancel action.
	ErrCancelled = errors.New("tui: cancelled")
)
