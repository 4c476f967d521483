package submission

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formstate/pkg/notify"
)

// DefaultMessagePaths locates the message inside the conventional
// {"error": {"message": "..."}} envelope.
var DefaultMessagePaths = []string{"error.message"}

// MessageProvider is implemented by errors that carry text meant for the
// person filling the form.
type MessageProvider interface {
	UserMessage() (string, bool)
}

// APIError is returned when the remote service answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Envelope   map[string]any

	messagePaths []string
}

func (e *APIError) Error() string {
	if msg, ok := e.UserMessage(); ok {
		return fmt.Sprintf("submission: remote returned status %d: %s", e.StatusCode, msg)
	}
	return fmt.Sprintf("submission: remote returned status %d", e.StatusCode)
}

// UserMessage looks the message up in the decoded envelope.
func (e *APIError) UserMessage() (string, bool) {
	if e == nil || len(e.Envelope) == 0 {
		return "", false
	}
	paths := e.messagePaths
	if len(paths) == 0 {
		paths = DefaultMessagePaths
	}
	for _, path := range paths {
		if msg := lookupString(e.Envelope, path); msg != "" {
			return msg, true
		}
	}
	return "", false
}

// ContractError reports a payload rejected before it was sent.
type ContractError struct {
	Err error
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("submission: payload violates contract: %v", e.Err)
}

func (e *ContractError) Unwrap() error {
	return e.Err
}

// UserMessage exposes the violation so the form can show it.
func (e *ContractError) UserMessage() (string, bool) {
	if e == nil || e.Err == nil {
		return "", false
	}
	msg := strings.TrimSpace(e.Err.Error())
	return msg, msg != ""
}

// MessageFrom extracts a sanitised user message from err, or "" when err
// carries none.
func MessageFrom(err error) string {
	var provider MessageProvider
	if !errors.As(err, &provider) {
		return ""
	}
	msg, ok := provider.UserMessage()
	if !ok {
		return ""
	}
	return notify.SanitizeMessage(msg)
}

func lookupString(root map[string]any, path string) string {
	if root == nil || strings.TrimSpace(path) == "" {
		return ""
	}
	var cur any = root
	for _, segment := range strings.Split(path, ".") {
		node, ok := cur.(map[string]any)
		if !ok {
			return ""
		}
		cur = node[segment]
	}
	s, ok := cur.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}
