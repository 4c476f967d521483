// Package testsupport provides fixtures shared by the engine and renderer
// tests.
package testsupport

import (
	"context"
	"sync"
	"testing"

	"github.com/goliatone/go-formstate/pkg/hospital"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/submission"
)

// HospitalForm loads the bundled registration form or fails the test.
func HospitalForm(t testing.TB) model.FormModel {
	t.Helper()
	form, err := hospital.Form()
	if err != nil {
		t.Fatalf("load hospital form: %v", err)
	}
	return form
}

// ValidHospitalInput returns keystroke-level input that passes validation.
// Masked fields are given in their display form.
func ValidHospitalInput() map[string]string {
	return map[string]string{
		"name":        "Santa Casa",
		"cityname":    "Belo Horizonte",
		"statename":   "MG",
		"CNES":        "1234567",
		"ctiPhone":    "(31) 98765-4321",
		"onDutyPhone": "(31) 91234-5678",
	}
}

// StubSubmitter records payloads and replays scripted results. When Gate is
// set, Submit signals Entered and blocks until Gate is closed or receives.
type StubSubmitter struct {
	mu       sync.Mutex
	Results  []submission.Result
	Payloads []map[string]string

	Gate    chan struct{}
	Entered chan struct{}
}

// Submit implements form.Submitter.
func (s *StubSubmitter) Submit(ctx context.Context, payload map[string]string) submission.Result {
	s.mu.Lock()
	s.Payloads = append(s.Payloads, payload)
	idx := len(s.Payloads) - 1
	gate, entered := s.Gate, s.Entered
	s.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
	}
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return submission.Failure("")
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if idx < len(s.Results) {
		return s.Results[idx]
	}
	return submission.Success()
}

// Calls reports how many times Submit was invoked.
func (s *StubSubmitter) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Payloads)
}
