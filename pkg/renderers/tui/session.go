// Package tui drives a form engine from an interactive terminal session. The
// session only translates prompts into engine transitions and prints the
// resulting snapshots; all state lives in the engine.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/notify"
)

const (
	actionSubmit = iota
	actionEdit
	actionCancel
)

var actions = []string{"Submit", "Edit a field", "Cancel"}

// Session walks the fields of an engine's form, then loops over the
// submit/edit/cancel actions until the form is submitted or left.
type Session struct {
	engine *form.Engine
	driver PromptDriver
	theme  Theme
	logger *slog.Logger
}

// NewSession constructs a session with defaults (survey driver, default theme).
func NewSession(engine *form.Engine, options ...Option) (*Session, error) {
	if engine == nil {
		return nil, errors.New("tui: engine is required")
	}
	s := &Session{
		engine: engine,
		theme:  DefaultTheme,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver()
	}
	return s, nil
}

// Run prompts every field once and then enters the action loop. It returns
// the outcome of the last submit attempt. Aborting a prompt cancels the form
// and returns ErrAborted; choosing Cancel returns ErrCancelled.
func (s *Session) Run(ctx context.Context) (form.Outcome, error) {
	if ctx == nil {
		return form.OutcomeInvalid, errors.New("tui: context is required")
	}

	outcome, err := s.run(ctx)
	if errors.Is(err, ErrAborted) {
		s.engine.Cancel()
	}
	return outcome, err
}

func (s *Session) run(ctx context.Context) (form.Outcome, error) {
	for _, field := range s.engine.Form().Fields {
		if err := s.promptField(ctx, field); err != nil {
			return form.OutcomeInvalid, err
		}
	}

	for {
		idx, err := s.driver.Select(ctx, SelectConfig{
			Message:      "What next?",
			Options:      actions,
			DefaultIndex: actionSubmit,
		})
		if err != nil {
			return form.OutcomeInvalid, err
		}

		switch idx {
		case actionSubmit:
			outcome := s.engine.Submit(ctx)
			done, err := s.afterSubmit(ctx, outcome)
			if err != nil || done {
				return outcome, err
			}
		case actionEdit:
			if err := s.editOne(ctx); err != nil {
				return form.OutcomeInvalid, err
			}
		case actionCancel:
			s.engine.Cancel()
			return form.OutcomeInvalid, ErrCancelled
		default:
			_ = s.driver.Info(ctx, s.theme.ErrorPrefix+"Invalid selection")
		}
	}
}

// afterSubmit prints the outcome and reports whether the session is over.
func (s *Session) afterSubmit(ctx context.Context, outcome form.Outcome) (bool, error) {
	snap := s.engine.Snapshot()
	s.logger.Debug("submit outcome", "outcome", outcome.String())

	switch outcome {
	case form.OutcomeInvalid:
		for _, field := range s.engine.Form().Fields {
			if _, failed := snap.VisibleError(field.Key); !failed {
				continue
			}
			if err := s.promptField(ctx, field); err != nil {
				return false, err
			}
		}
		return false, nil

	case form.OutcomeSucceeded:
		if err := s.showNotification(ctx, snap.Notification); err != nil {
			return false, err
		}
		s.engine.DismissNotification()
		return true, nil

	case form.OutcomeFailed:
		if err := s.showNotification(ctx, snap.Notification); err != nil {
			return false, err
		}
		s.engine.DismissNotification()
		retry, err := s.driver.Confirm(ctx, ConfirmConfig{
			Message: "Submission failed. Keep editing?",
			Default: true,
		})
		if err != nil {
			return false, err
		}
		return !retry, nil

	default:
		return false, nil
	}
}

func (s *Session) editOne(ctx context.Context) error {
	fields := s.engine.Form().Fields
	labels := make([]string, len(fields))
	for i, field := range fields {
		labels[i] = field.DisplayLabel()
	}
	idx, err := s.driver.Select(ctx, SelectConfig{
		Message:      "Field",
		Options:      labels,
		DefaultIndex: 0,
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(fields) {
		return s.driver.Info(ctx, s.theme.ErrorPrefix+"Invalid selection")
	}
	return s.promptField(ctx, fields[idx])
}

// promptField asks for a value until the field carries no visible error.
func (s *Session) promptField(ctx context.Context, field model.Field) error {
	for {
		input, err := s.driver.Input(ctx, InputConfig{
			Message: s.label(field),
			Default: s.engine.Display(field.Key),
			Help:    help(field),
		})
		if err != nil {
			return err
		}

		snap := s.engine.EditField(field.Key, input)
		msg, failed := snap.VisibleError(field.Key)
		if !failed {
			return nil
		}
		if err := s.driver.Info(ctx, fmt.Sprintf("%s%s: %s", s.theme.ErrorPrefix, field.DisplayLabel(), msg)); err != nil {
			return err
		}
	}
}

func (s *Session) showNotification(ctx context.Context, n notify.State) error {
	if !n.IsOpen {
		return nil
	}
	prefix := s.theme.InfoPrefix
	if n.Severity == notify.SeverityError {
		prefix = s.theme.ErrorPrefix
	}
	return s.driver.Info(ctx, fmt.Sprintf("%s%s %s", prefix, n.Title, n.Message))
}

func (s *Session) label(field model.Field) string {
	if field.Required {
		return field.DisplayLabel() + s.theme.RequiredSuffix
	}
	return field.DisplayLabel()
}

func help(field model.Field) string {
	if field.Description != "" {
		return field.Description
	}
	if field.Masked() {
		return "format " + field.Mask
	}
	return ""
}
