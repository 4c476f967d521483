// Package cli implements the formstate command tree.
package cli

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formstate/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	APIURL  string
	FormDir string
	FormID  string

	cfg    config.Config
	logger *slog.Logger
}

// NewRootCommand creates the root command for the formstate CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "formstate",
		Short: "Fill and submit declarative forms from the terminal",
		Long: `formstate loads a form declaration, keeps its values, masks and
validation errors in a form engine and submits it to a create endpoint
described by an OpenAPI contract.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.APIURL, "api-url", "", "base URL of the registration API (FORMSTATE_API_URL)")
	cmd.PersistentFlags().StringVar(&opts.FormDir, "form-dir", "", "directory with form declarations (FORMSTATE_FORM_DIR)")
	cmd.PersistentFlags().StringVar(&opts.FormID, "form", "", "form id to load (FORMSTATE_FORM_ID)")

	cmd.AddCommand(NewFieldsCommand(opts))
	cmd.AddCommand(NewFillCommand(opts))
	cmd.AddCommand(NewSubmitCommand(opts))

	return cmd
}

// resolve merges the environment with the flags. Flags win.
func (o *RootOptions) resolve(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if o.APIURL != "" {
		cfg.APIURL = o.APIURL
	}
	if o.FormDir != "" {
		cfg.FormDir = o.FormDir
	}
	if o.FormID != "" {
		cfg.FormID = o.FormID
	}
	if o.Verbose {
		cfg.Verbose = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	o.cfg = cfg
	o.logger = newLogger(cmd.ErrOrStderr(), cfg.Verbose)
	return nil
}

// newLogger writes to stderr so command output stays clean.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
