package form

import "errors"

var (
	// ErrSubmitterRequired is returned by New when no submitter is supplied.
	ErrSubmitterRequired = errors.New("form: submitter is required")
)
