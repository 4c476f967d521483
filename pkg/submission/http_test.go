package submission_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/submission"
)

type recorded struct {
	body map[string]string
	key  string
}

func newServer(t *testing.T, status int, response string, seen *[]recorded) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	r.Post("/api/hospitals", func(w http.ResponseWriter, req *http.Request) {
		var body map[string]string
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if ct := req.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		*seen = append(*seen, recorded{body: body, key: req.Header.Get("Idempotency-Key")})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPTransport_Created(t *testing.T) {
	var seen []recorded
	srv := newServer(t, http.StatusCreated, `{"id":"1"}`, &seen)

	tr, err := submission.NewHTTPTransport(srv.URL+"/api",
		submission.WithEndpoint("post", "/hospitals"),
		submission.WithHTTPClient(srv.Client()),
		submission.WithIdempotencyKeys(func() string { return "key-1" }),
	)
	if err != nil {
		t.Fatalf("new transport: %v", err)
	}

	payload := map[string]string{"name": "Santa Casa", "CNES": "1234567"}
	if err := tr.Create(context.Background(), payload); err != nil {
		t.Fatalf("create: %v", err)
	}
	want := []recorded{{body: payload, key: "key-1"}}
	if diff := cmp.Diff(want, seen, cmp.AllowUnexported(recorded{})); diff != "" {
		t.Fatalf("request mismatch (-want +got):\n%s", diff)
	}
}

func TestHTTPTransport_ErrorEnvelope(t *testing.T) {
	var seen []recorded
	srv := newServer(t, http.StatusUnprocessableEntity, `{"error":{"message":"CNES already registered"}}`, &seen)

	tr, err := submission.NewHTTPTransport(srv.URL+"/api", submission.WithEndpoint("POST", "hospitals"))
	if err != nil {
		t.Fatalf("new transport: %v", err)
	}
	err = tr.Create(context.Background(), map[string]string{"name": "x"})

	var apiErr *submission.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", apiErr.StatusCode)
	}
	if got := submission.MessageFrom(err); got != "CNES already registered" {
		t.Fatalf("message = %q", got)
	}
	if len(seen) != 1 || seen[0].key == "" {
		t.Fatalf("expected one request with an idempotency key, got %#v", seen)
	}
}

func TestHTTPTransport_CustomMessagePathAndPlainBody(t *testing.T) {
	var seen []recorded
	srv := newServer(t, http.StatusBadRequest, `{"detail":"bad state"}`, &seen)
	tr, _ := submission.NewHTTPTransport(srv.URL,
		submission.WithEndpoint(http.MethodPost, "/api/hospitals"),
		submission.WithMessagePaths("", "detail"),
	)
	if got := submission.MessageFrom(tr.Create(context.Background(), nil)); got != "bad state" {
		t.Fatalf("message = %q", got)
	}

	plain := newServer(t, http.StatusInternalServerError, `oops`, &seen)
	tr, _ = submission.NewHTTPTransport(plain.URL, submission.WithEndpoint(http.MethodPost, "/api/hospitals"))
	err := tr.Create(context.Background(), nil)
	if err == nil {
		t.Fatalf("expected error")
	}
	if got := submission.MessageFrom(err); got != "" {
		t.Fatalf("plain body must not yield a message, got %q", got)
	}
}

type rejectAll struct{}

func (rejectAll) ValidatePayload(context.Context, any) error {
	return errors.New("CNES must have 7 digits")
}

func TestHTTPTransport_ValidatorBlocksRequest(t *testing.T) {
	var seen []recorded
	srv := newServer(t, http.StatusCreated, `{}`, &seen)
	tr, _ := submission.NewHTTPTransport(srv.URL,
		submission.WithEndpoint(http.MethodPost, "/api/hospitals"),
		submission.WithPayloadValidator(rejectAll{}),
	)

	err := tr.Create(context.Background(), map[string]string{"CNES": "1"})
	var contractErr *submission.ContractError
	if !errors.As(err, &contractErr) {
		t.Fatalf("expected ContractError, got %v", err)
	}
	if len(seen) != 0 {
		t.Fatalf("request must not be sent when validation fails")
	}
}

func TestNewHTTPTransport_Errors(t *testing.T) {
	for _, raw := range []string{"", "  ", "ftp://example.com", "://bad"} {
		if _, err := submission.NewHTTPTransport(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}
