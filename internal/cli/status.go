package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thebtf/dreamlog/internal/db/sqlite"
)

// NewStatusCommand creates the status command.
func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show readiness and row counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := rootOpts.openRegistry(cmd.Context())
			if err != nil {
				return err
			}
			defer reg.Close()

			counts, err := reg.Counts(cmd.Context())
			if err != nil {
				return failed("count rows", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "database: %s\n", rootOpts.DBPath)
			fmt.Fprintf(out, "ready:    %t\n", reg.Ready())

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TABLE\tROWS")
			for _, t := range sqlite.Tables {
				fmt.Fprintf(tw, "%s\t%d\n", t.Name, counts[t.Name])
			}
			return tw.Flush()
		},
	}
}
