package submission

import (
	"context"
	"io"
	"log/slog"
)

// Transport performs the external create operation.
type Transport interface {
	Create(ctx context.Context, payload map[string]string) error
}

// TransportFunc adapts a function to Transport.
type TransportFunc func(ctx context.Context, payload map[string]string) error

// Create calls f.
func (f TransportFunc) Create(ctx context.Context, payload map[string]string) error {
	return f(ctx, payload)
}

// Controller makes exactly one Transport call per Submit. It never retries.
type Controller struct {
	transport Transport
	logger    *slog.Logger
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithControllerLogger sets the logger used to report failures. If not
// provided, logs are discarded.
func WithControllerLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewController wraps transport.
func NewController(transport Transport, options ...ControllerOption) *Controller {
	c := &Controller{
		transport: transport,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// Submit sends payload and maps the outcome. It never panics: a missing
// transport or a panicking one yields a Failure without message.
func (c *Controller) Submit(ctx context.Context, payload map[string]string) (result Result) {
	if c == nil || c.transport == nil {
		return Failure("")
	}
	defer func() {
		if rec := recover(); rec != nil {
			c.logger.Error("submission transport panicked", "panic", rec)
			result = Failure("")
		}
	}()

	body := make(map[string]string, len(payload))
	for key, value := range payload {
		body[key] = value
	}

	if err := c.transport.Create(ctx, body); err != nil {
		msg := MessageFrom(err)
		c.logger.Warn("submission failed", "error", err, "has_message", msg != "")
		return Failure(msg)
	}
	return Success()
}
