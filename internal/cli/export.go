package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/stagepatch/internal/wire"
)

// ExportCmd returns the export command
func ExportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export [event-id]",
		Short: "Export an event's patch as semicolon-delimited CSV",
		Long: `Export an event's patch as semicolon-delimited CSV.

One row per patch channel, one column per band. Writes to stdout
unless --out is given.

Examples:
  stagepatch export EVT-001
  stagepatch export EVT-001 --out summerfest.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.PatchAdapter().Export(cmd.Context(), args[0], out)
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "Output file path (default stdout)")

	return cmd
}
