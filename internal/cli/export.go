package cli

import (
	"fmt"
	"io"
	"slices"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/thebtf/dreamlog/internal/db/sqlite"
)

// ValidFormats defines the allowed export formats.
var ValidFormats = []string{"json", "yaml"}

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Format string
	Tables []string
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Dump stored records",
		Long:  "Dump tables as records keyed by camelCase field names. Without --table every table is exported.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Format, "format", "json", "output format (json|yaml)")
	cmd.Flags().StringSliceVar(&opts.Tables, "table", nil, "table to export (repeatable)")

	return cmd
}

func runExport(cmd *cobra.Command, opts *ExportOptions) error {
	if !slices.Contains(ValidFormats, opts.Format) {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
	}

	names := slices.Clone(opts.Tables)
	if len(names) == 0 {
		for _, t := range sqlite.Tables {
			names = append(names, t.Name)
		}
	}
	for i, name := range names {
		info, ok := sqlite.LookupTable(name)
		if !ok {
			return NewExitError(ExitCommandError, fmt.Sprintf("unknown table %q", name))
		}
		names[i] = info.Name
	}

	reg, err := opts.openRegistry(cmd.Context())
	if err != nil {
		return err
	}
	defer reg.Close()

	dump := make(map[string][]map[string]any, len(names))
	for _, name := range names {
		rows, err := reg.ExportTable(cmd.Context(), name)
		if err != nil {
			return failed("export "+name, err)
		}
		dump[name] = rows
	}

	return writeDump(cmd.OutOrStdout(), opts.Format, dump)
}

func writeDump(w io.Writer, format string, dump map[string][]map[string]any) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(dump); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		data, err := json.MarshalIndent(dump, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
}
