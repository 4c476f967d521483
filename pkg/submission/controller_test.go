package submission_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-formstate/pkg/submission"
)

func TestController_Success(t *testing.T) {
	calls := 0
	ctrl := submission.NewController(submission.TransportFunc(func(_ context.Context, payload map[string]string) error {
		calls++
		if payload["name"] != "Santa Casa" {
			t.Fatalf("payload not forwarded: %#v", payload)
		}
		payload["name"] = "mutated"
		return nil
	}))

	payload := map[string]string{"name": "Santa Casa"}
	res := ctrl.Submit(context.Background(), payload)
	if !res.OK() || res.Status != submission.StatusSuccess {
		t.Fatalf("expected success, got %v", res.Status)
	}
	if calls != 1 {
		t.Fatalf("expected exactly one call, got %d", calls)
	}
	if payload["name"] != "Santa Casa" {
		t.Fatalf("transport must receive a copy of the payload")
	}
}

func TestController_FailureMessages(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		want    string
		present bool
	}{
		{
			name: "envelope message",
			err: &submission.APIError{StatusCode: 422, Envelope: map[string]any{
				"error": map[string]any{"message": "CNES already registered"},
			}},
			want:    "CNES already registered",
			present: true,
		},
		{
			name:    "envelope without message",
			err:     &submission.APIError{StatusCode: 500, Envelope: map[string]any{"error": map[string]any{}}},
			present: false,
		},
		{
			name:    "non string message",
			err:     &submission.APIError{StatusCode: 400, Envelope: map[string]any{"error": map[string]any{"message": 42}}},
			present: false,
		},
		{
			name:    "transport failure",
			err:     errors.New("dial tcp: connection refused"),
			present: false,
		},
		{
			name: "wrapped envelope with markup",
			err: errors.Join(errors.New("context"), &submission.APIError{StatusCode: 409, Envelope: map[string]any{
				"error": map[string]any{"message": "<b>duplicate</b> record"},
			}}),
			want:    "duplicate record",
			present: true,
		},
		{
			name:    "contract violation",
			err:     &submission.ContractError{Err: errors.New(`property "CNES" is missing`)},
			want:    `property "CNES" is missing`,
			present: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := submission.NewController(submission.TransportFunc(func(context.Context, map[string]string) error {
				return tc.err
			}))
			res := ctrl.Submit(context.Background(), nil)
			if res.OK() {
				t.Fatalf("expected failure")
			}
			msg, ok := res.Message()
			if ok != tc.present || msg != tc.want {
				t.Fatalf("Message() = (%q, %v), want (%q, %v)", msg, ok, tc.want, tc.present)
			}
		})
	}
}

func TestController_PanicAndNilTransport(t *testing.T) {
	ctrl := submission.NewController(submission.TransportFunc(func(context.Context, map[string]string) error {
		panic("boom")
	}))
	res := ctrl.Submit(context.Background(), map[string]string{})
	if res.OK() {
		t.Fatalf("panicking transport must fail")
	}
	if _, ok := res.Message(); ok {
		t.Fatalf("panic must not produce a message")
	}

	if res := submission.NewController(nil).Submit(context.Background(), nil); res.OK() {
		t.Fatalf("nil transport must fail")
	}
}

func TestResult(t *testing.T) {
	if _, ok := submission.Failure("   ").Message(); ok {
		t.Fatalf("blank message must be absent")
	}
	if got := submission.Success().Status.String(); got != "success" {
		t.Fatalf("status string = %q", got)
	}
}
