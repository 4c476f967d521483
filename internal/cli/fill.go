package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/renderers/tui"
)

// NewFillCommand creates the interactive fill command.
func NewFillCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "fill",
		Short: "Fill and submit the form interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFill(cmd, rootOpts, tui.NewSurveyDriver())
		},
	}
}

func runFill(cmd *cobra.Command, opts *RootOptions, driver tui.PromptDriver) error {
	ctx := cmd.Context()
	engine, err := newEngine(ctx, opts.cfg, opts.logger, form.WithCancelHandler(func() {
		fmt.Fprintln(cmd.ErrOrStderr(), "cancelled")
	}))
	if err != nil {
		return err
	}

	session, err := tui.NewSession(engine, tui.WithPromptDriver(driver), tui.WithLogger(opts.logger))
	if err != nil {
		return err
	}

	outcome, err := session.Run(ctx)
	switch {
	case errors.Is(err, tui.ErrCancelled), errors.Is(err, tui.ErrAborted):
		return nil
	case err != nil:
		return err
	case outcome != form.OutcomeSucceeded:
		return ErrNotSubmitted
	}
	return nil
}
