package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formstate/pkg/model"
)

// NewFieldsCommand creates the fields command.
func NewFieldsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "List the fields of the loaded form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadForm(rootOpts.cfg)
			if err != nil {
				return err
			}
			return printFields(cmd, f)
		},
	}
}

func printFields(cmd *cobra.Command, f model.FormModel) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n", f.ID, f.Title)
	fmt.Fprintln(w, "KEY\tLABEL\tREQUIRED\tMASK")
	for _, field := range f.Fields {
		mask := field.Mask
		if mask == "" {
			mask = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%t\t%s\n", field.Key, field.DisplayLabel(), field.Required, mask)
	}
	return w.Flush()
}
