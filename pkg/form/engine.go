package form

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-formstate/pkg/mask"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/notify"
	"github.com/goliatone/go-formstate/pkg/submission"
	"github.com/goliatone/go-formstate/pkg/validation"
)

// Submitter performs the external call for a valid payload.
type Submitter interface {
	Submit(ctx context.Context, payload map[string]string) submission.Result
}

// Outcome summarises what a Submit call did.
type Outcome int

const (
	// OutcomeInvalid means validation failed and nothing was sent.
	OutcomeInvalid Outcome = iota
	// OutcomeSucceeded means the remote accepted the payload and the form reset.
	OutcomeSucceeded
	// OutcomeFailed means the remote rejected the payload; values were kept.
	OutcomeFailed
	// OutcomeBusy means another submission was pending and this one was ignored.
	OutcomeBusy
)

func (o Outcome) String() string {
	switch o {
	case OutcomeInvalid:
		return "invalid"
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeFailed:
		return "failed"
	case OutcomeBusy:
		return "busy"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Engine owns the state of a single form instance.
type Engine struct {
	mu sync.Mutex

	form      model.FormModel
	keys      []string
	fields    map[string]model.Field
	patterns  map[string]mask.Pattern
	submitter Submitter

	state        state
	notification notify.State
	pending      bool

	listeners map[int]func(Snapshot)
	nextID    int

	onCancel func()
	logger   *slog.Logger
	session  string
}

// New builds an engine for form. The declaration is validated once here;
// afterwards no transition can fail.
func New(form model.FormModel, submitter Submitter, options ...Option) (*Engine, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	if submitter == nil {
		return nil, ErrSubmitterRequired
	}

	e := &Engine{
		form:      form,
		keys:      form.Keys(),
		fields:    make(map[string]model.Field, len(form.Fields)),
		patterns:  make(map[string]mask.Pattern),
		submitter: submitter,
		listeners: make(map[int]func(Snapshot)),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		session:   uuid.NewString(),
	}
	for _, field := range form.Fields {
		e.fields[field.Key] = field
		if field.Masked() {
			e.patterns[field.Key] = mask.Parse(field.Mask)
		}
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	e.logger = e.logger.With("form", form.ID, "session", e.session)
	e.state = initialState(e.keys)
	return e, nil
}

// Form returns the declaration the engine was built from.
func (e *Engine) Form() model.FormModel {
	return e.form
}

// Snapshot returns the current state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Display returns the value of key as it should be shown in an input: masked
// fields stored in raw mode are re-formatted.
func (e *Engine) Display(key string) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.displayLocked(key)
}

// Subscribe registers fn to receive a snapshot after every transition. The
// returned function removes the subscription.
func (e *Engine) Subscribe(fn func(Snapshot)) func() {
	if fn == nil {
		return func() {}
	}
	e.mu.Lock()
	id := e.nextID
	e.nextID++
	e.listeners[id] = fn
	e.mu.Unlock()

	return func() {
		e.mu.Lock()
		delete(e.listeners, id)
		e.mu.Unlock()
	}
}

// EditField stores input for key. Masked fields go through the mask so the
// stored value is always either the full display string or the raw value,
// never a partially formatted one. The edited field's error is refreshed
// immediately; other fields keep theirs until the next Submit. Unknown keys
// are ignored.
func (e *Engine) EditField(key, input string) Snapshot {
	e.mu.Lock()
	field, ok := e.fields[key]
	if !ok {
		snap := e.snapshotLocked()
		e.mu.Unlock()
		e.logger.Warn("edit on unknown field ignored", "field", key)
		return snap
	}

	value := input
	if p, masked := e.patterns[key]; masked {
		edit := p.OnEdit(input)
		value = edit.Displayed
		if field.RawValue {
			value = edit.Raw
		}
	}

	e.state.values[key] = value
	e.state.touched[key] = true
	if msg, failed := validation.ValidateField(field, value); failed {
		e.state.errors[key] = msg
	} else {
		delete(e.state.errors, key)
	}

	snap, listeners := e.publishLocked()
	e.mu.Unlock()

	e.logger.Debug("field edited", "field", key)
	broadcast(listeners, snap)
	return snap
}

// Submit validates every field and, when the form is valid, closes any open
// notification and hands the values to the submitter. It blocks until the submitter returns. Concurrent calls
// while one is pending return OutcomeBusy without calling the submitter.
func (e *Engine) Submit(ctx context.Context) Outcome {
	e.mu.Lock()
	if e.pending {
		e.mu.Unlock()
		e.logger.Warn("submit ignored: submission already pending")
		return OutcomeBusy
	}

	e.state.errors = validation.Validate(e.form, e.state.values)
	if len(e.state.errors) > 0 {
		for _, key := range e.keys {
			e.state.touched[key] = true
		}
		snap, listeners := e.publishLocked()
		e.mu.Unlock()

		e.logger.Info("submit blocked by validation", "errors", len(snap.Errors))
		broadcast(listeners, snap)
		return OutcomeInvalid
	}

	e.pending = true
	e.notification = e.notification.Dismiss()
	payload := cloneStrings(e.state.values)
	snap, listeners := e.publishLocked()
	e.mu.Unlock()
	broadcast(listeners, snap)

	result := e.callSubmitter(ctx, payload)

	e.mu.Lock()
	e.pending = false
	var outcome Outcome
	if result.OK() {
		outcome = OutcomeSucceeded
		e.notification = notify.Success(
			notify.RenderCopy(notify.Or(e.form.Copy.SuccessTitle, notify.DefaultSuccessTitle), payload),
			notify.RenderCopy(notify.Or(e.form.Copy.SuccessMessage, notify.DefaultSuccessMessage), payload),
		)
		e.state = initialState(e.keys)
	} else {
		outcome = OutcomeFailed
		if msg, ok := result.Message(); ok {
			e.notification = notify.Error(
				notify.RenderCopy(notify.Or(e.form.Copy.FailureTitle, notify.DefaultFailureTitle), payload),
				msg,
			)
		}
	}
	snap, listeners = e.publishLocked()
	e.mu.Unlock()

	e.logger.Info("submit finished", "outcome", outcome.String(), "notified", snap.Notification.IsOpen)
	broadcast(listeners, snap)
	return outcome
}

// Reset returns every field to its initial empty, untouched state.
func (e *Engine) Reset() Snapshot {
	e.mu.Lock()
	e.state = initialState(e.keys)
	snap, listeners := e.publishLocked()
	e.mu.Unlock()

	broadcast(listeners, snap)
	return snap
}

// DismissNotification closes the current notification.
func (e *Engine) DismissNotification() Snapshot {
	e.mu.Lock()
	e.notification = e.notification.Dismiss()
	snap, listeners := e.publishLocked()
	e.mu.Unlock()

	broadcast(listeners, snap)
	return snap
}

// Cancel leaves the form through the configured cancel handler. It neither
// validates nor submits and leaves the state untouched.
func (e *Engine) Cancel() {
	e.logger.Debug("form cancelled")
	if e.onCancel != nil {
		e.onCancel()
	}
}

func (e *Engine) callSubmitter(ctx context.Context, payload map[string]string) (result submission.Result) {
	defer func() {
		if rec := recover(); rec != nil {
			e.logger.Error("submitter panicked", "panic", rec)
			result = submission.Failure("")
		}
	}()
	return e.submitter.Submit(ctx, payload)
}

func (e *Engine) displayLocked(key string) string {
	value := e.state.values[key]
	if field, ok := e.fields[key]; ok && field.RawValue {
		return e.patterns[key].Apply(value)
	}
	return value
}

func (e *Engine) snapshotLocked() Snapshot {
	return Snapshot{
		Values:       cloneStrings(e.state.values),
		Touched:      cloneBools(e.state.touched),
		Errors:       cloneStrings(e.state.errors),
		Notification: e.notification,
		Submitting:   e.pending,
	}
}

func (e *Engine) publishLocked() (Snapshot, []func(Snapshot)) {
	snap := e.snapshotLocked()
	if len(e.listeners) == 0 {
		return snap, nil
	}
	ids := make([]int, 0, len(e.listeners))
	for id := range e.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	listeners := make([]func(Snapshot), 0, len(ids))
	for _, id := range ids {
		listeners = append(listeners, e.listeners[id])
	}
	return snap, listeners
}

func broadcast(listeners []func(Snapshot), snap Snapshot) {
	for _, fn := range listeners {
		fn(snap)
	}
}
