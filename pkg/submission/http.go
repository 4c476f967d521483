package submission

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

const maxErrorBody = 1 << 20

// PayloadValidator checks a request body before it leaves the process.
type PayloadValidator interface {
	ValidatePayload(ctx context.Context, body any) error
}

// HTTPTransport sends JSON create requests to a remote service.
type HTTPTransport struct {
	client       *http.Client
	endpoint     *url.URL
	method       string
	path         string
	messagePaths []string
	validator    PayloadValidator
	newKey       func() string
	logger       *slog.Logger
}

// HTTPOption configures an HTTPTransport.
type HTTPOption func(*HTTPTransport)

// WithHTTPClient overrides the client used for requests.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(t *HTTPTransport) {
		if client != nil {
			t.client = client
		}
	}
}

// WithEndpoint sets the method and path, relative to the base URL, of the
// create operation. Defaults to POST on the base URL itself.
func WithEndpoint(method, path string) HTTPOption {
	return func(t *HTTPTransport) {
		if m := strings.ToUpper(strings.TrimSpace(method)); m != "" {
			t.method = m
		}
		t.path = strings.TrimSpace(path)
	}
}

// WithMessagePaths overrides where the error message is looked up in the
// error envelope, as dotted paths.
func WithMessagePaths(paths ...string) HTTPOption {
	return func(t *HTTPTransport) {
		var clean []string
		for _, p := range paths {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				clean = append(clean, trimmed)
			}
		}
		if len(clean) > 0 {
			t.messagePaths = clean
		}
	}
}

// WithPayloadValidator checks every body before sending it.
func WithPayloadValidator(v PayloadValidator) HTTPOption {
	return func(t *HTTPTransport) {
		t.validator = v
	}
}

// WithIdempotencyKeys overrides the Idempotency-Key generator.
func WithIdempotencyKeys(fn func() string) HTTPOption {
	return func(t *HTTPTransport) {
		if fn != nil {
			t.newKey = fn
		}
	}
}

// WithHTTPLogger sets the request logger. If not provided, logs are discarded.
func WithHTTPLogger(logger *slog.Logger) HTTPOption {
	return func(t *HTTPTransport) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// NewHTTPTransport constructs a transport rooted at baseURL.
func NewHTTPTransport(baseURL string, options ...HTTPOption) (*HTTPTransport, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return nil, errors.New("submission: base url is required")
	}
	endpoint, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("submission: parse base url: %w", err)
	}
	if endpoint.Scheme != "http" && endpoint.Scheme != "https" {
		return nil, fmt.Errorf("submission: unsupported scheme %q", endpoint.Scheme)
	}

	t := &HTTPTransport{
		client:   http.DefaultClient,
		endpoint: endpoint,
		method:   http.MethodPost,
		newKey:   func() string { return uuid.NewString() },
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(t)
	}
	return t, nil
}

// Create sends payload as a JSON object.
func (t *HTTPTransport) Create(ctx context.Context, payload map[string]string) error {
	return t.Send(ctx, payload)
}

// Send validates, encodes and posts body. Non-2xx answers become *APIError.
func (t *HTTPTransport) Send(ctx context.Context, body any) error {
	if t.validator != nil {
		if err := t.validator.ValidatePayload(ctx, body); err != nil {
			return &ContractError{Err: err}
		}
	}

	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("submission: encode body: %w", err)
	}

	target := t.endpoint.JoinPath(t.path)
	req, err := http.NewRequestWithContext(ctx, t.method, target.String(), bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("submission: request: %w", err)
	}
	key := t.newKey()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Idempotency-Key", key)

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("submission: do request: %w", err)
	}
	defer resp.Body.Close()

	t.logger.Debug("create request sent", "method", t.method, "url", target.String(), "status", resp.StatusCode, "idempotency_key", key)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	apiErr := &APIError{StatusCode: resp.StatusCode, messagePaths: t.messagePaths}
	data, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if readErr == nil && len(bytes.TrimSpace(data)) > 0 {
		var envelope map[string]any
		if err := json.Unmarshal(data, &envelope); err == nil {
			apiErr.Envelope = envelope
		}
	}
	return apiErr
}
