package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/notify"
)

// ErrNotSubmitted reports a run that ended without a successful submission.
// The command exits with status 1.
var ErrNotSubmitted = errors.New("form was not submitted")

// NewSubmitCommand creates the non-interactive submit command.
func NewSubmitCommand(rootOpts *RootOptions) *cobra.Command {
	var sets []string

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Fill the form from flags and submit it",
		Long: `Edit each field given with --set exactly as if it were typed, then
submit. Masked fields accept either the formatted or the raw value.`,
		Example: `  formstate submit --set name="Santa Casa" --set CNES=1234567 --set ctiPhone=31987654321`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSubmit(cmd, rootOpts, sets)
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "field value as key=value (repeatable)")
	return cmd
}

func runSubmit(cmd *cobra.Command, opts *RootOptions, sets []string) error {
	input, err := parseSets(sets)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	engine, err := newEngine(ctx, opts.cfg, opts.logger)
	if err != nil {
		return err
	}

	for _, kv := range input {
		if _, ok := engine.Form().Field(kv.key); !ok {
			return fmt.Errorf("unknown field %q", kv.key)
		}
		engine.EditField(kv.key, kv.value)
	}

	outcome := engine.Submit(ctx)
	snap := engine.Snapshot()
	out := cmd.OutOrStdout()

	switch outcome {
	case form.OutcomeInvalid:
		for _, field := range engine.Form().Fields {
			if msg, ok := snap.VisibleError(field.Key); ok {
				fmt.Fprintf(out, "%s: %s\n", field.DisplayLabel(), msg)
			}
		}
		return ErrNotSubmitted
	case form.OutcomeSucceeded:
		printNotification(out, snap.Notification)
		return nil
	default:
		if !printNotification(out, snap.Notification) {
			fmt.Fprintln(out, "submission failed")
		}
		return ErrNotSubmitted
	}
}

func printNotification(w io.Writer, n notify.State) bool {
	if !n.IsOpen {
		return false
	}
	fmt.Fprintf(w, "[%s] %s %s\n", n.Severity, n.Title, n.Message)
	return true
}

type keyValue struct {
	key   string
	value string
}

// parseSets keeps flag order so repeated keys behave like successive edits.
func parseSets(sets []string) ([]keyValue, error) {
	out := make([]keyValue, 0, len(sets))
	for _, raw := range sets {
		key, value, ok := strings.Cut(raw, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --set %q: want key=value", raw)
		}
		out = append(out, keyValue{key: key, value: value})
	}
	return out, nil
}
