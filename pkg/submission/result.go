package submission

import "strings"

// Status discriminates Result.
type Status int

const (
	StatusSuccess Status = iota
	StatusFailure
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Result is produced once per submit attempt and is not retained.
type Result struct {
	Status  Status
	message string
}

// Success reports an accepted submission.
func Success() Result {
	return Result{Status: StatusSuccess}
}

// Failure reports a rejected submission. A blank message means no message
// could be extracted.
func Failure(message string) Result {
	return Result{Status: StatusFailure, message: strings.TrimSpace(message)}
}

// OK reports whether the submission succeeded.
func (r Result) OK() bool {
	return r.Status == StatusSuccess
}

// Message returns the failure message and whether one is present.
func (r Result) Message() (string, bool) {
	return r.message, r.message != ""
}
