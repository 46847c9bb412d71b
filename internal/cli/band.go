package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/stagepatch/internal/wire"
)

// BandCmd returns the band command
func BandCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "band",
		Short: "Manage bands and their channel selections",
		Long: `Manage the bands of an event.

Saving a band reconciles the event's shared patch: channels the band
needs are appended, channels no band uses anymore are pruned, and the
patch is renumbered 1..N.`,
	}

	cmd.AddCommand(bandAddCmd())
	cmd.AddCommand(bandListCmd())
	cmd.AddCommand(bandUpdateCmd())
	cmd.AddCommand(bandDeleteCmd())

	return cmd
}

func bandAddCmd() *cobra.Command {
	var channelIDs []string

	cmd := &cobra.Command{
		Use:   "add [event-id] [name]",
		Short: "Add a band with its channel selection",
		Long: `Add a band to an event.

Examples:
  stagepatch band add EVT-001 "The Openers" --channels CH-001,CH-002,CH-014
  stagepatch band add EVT-001 Headliner --channels CH-001 --channels CH-003`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.PatchAdapter().CreateBand(cmd.Context(), args[0], args[1], channelIDs)
		},
	}
	cmd.Flags().StringSliceVar(&channelIDs, "channels", nil, "Catalog channel IDs the band needs")

	return cmd
}

func bandListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [event-id]",
		Short: "List an event's bands",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.PatchAdapter().ListBands(cmd.Context(), args[0])
		},
	}
}

func bandUpdateCmd() *cobra.Command {
	var name string
	var channelIDs []string

	cmd := &cobra.Command{
		Use:   "update [band-id]",
		Short: "Re-save a band's name and channel selection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.PatchAdapter().UpdateBand(cmd.Context(), args[0], name, channelIDs)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Band name")
	cmd.Flags().StringSliceVar(&channelIDs, "channels", nil, "Catalog channel IDs the band needs")

	return cmd
}

func bandDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [band-id]",
		Short: "Delete a band and reconcile the event's patch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.PatchAdapter().DeleteBand(cmd.Context(), args[0])
		},
	}
}
