package form

import "github.com/goliatone/go-formstate/pkg/notify"

// Snapshot is an immutable copy of the engine state after a transition.
type Snapshot struct {
	Values       map[string]string
	Touched      map[string]bool
	Errors       map[string]string
	Notification notify.State
	Submitting   bool
}

// VisibleError returns the error of key only once the field was touched.
func (s Snapshot) VisibleError(key string) (string, bool) {
	if !s.Touched[key] {
		return "", false
	}
	msg, ok := s.Errors[key]
	return msg, ok
}

// Valid reports whether the last validation pass found no errors.
func (s Snapshot) Valid() bool {
	return len(s.Errors) == 0
}

type state struct {
	values  map[string]string
	touched map[string]bool
	errors  map[string]string
}

func initialState(keys []string) state {
	st := state{
		values:  make(map[string]string, len(keys)),
		touched: make(map[string]bool, len(keys)),
		errors:  make(map[string]string),
	}
	for _, key := range keys {
		st.values[key] = ""
		st.touched[key] = false
	}
	return st
}

func cloneStrings(src map[string]string) map[string]string {
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

func cloneBools(src map[string]bool) map[string]bool {
	out := make(map[string]bool, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
