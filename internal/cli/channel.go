package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/stagepatch/internal/ports/primary"
	"github.com/example/stagepatch/internal/wire"
)

// ChannelCmd returns the channel command
func ChannelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "channel",
		Short: "Manage the channel catalog",
		Long: `Manage the global channel catalog.

Channels are the reusable building blocks of every patch: a name plus
default mic, stand, and notes. Per-event patches reference them.`,
	}

	cmd.AddCommand(channelAddCmd())
	cmd.AddCommand(channelListCmd())
	cmd.AddCommand(channelUpdateCmd())
	cmd.AddCommand(channelDeactivateCmd())
	cmd.AddCommand(channelDeleteCmd())

	return cmd
}

func channelAddCmd() *cobra.Command {
	var categoryID, mic, stand, notes string
	var defaultOrder int

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a channel to the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.CatalogAdapter().CreateChannel(cmd.Context(), primary.CreateChannelRequest{
				Name:         args[0],
				CategoryID:   categoryID,
				DefaultOrder: defaultOrder,
				Mic:          mic,
				Stand:        stand,
				Notes:        notes,
			})
		},
	}
	cmd.Flags().StringVar(&categoryID, "category", "", "Category ID (e.g. CAT-001)")
	cmd.Flags().IntVar(&defaultOrder, "order", 0, "Default order within the category")
	cmd.Flags().StringVar(&mic, "mic", "", "Default mic or DI")
	cmd.Flags().StringVar(&stand, "stand", "", "Default stand")
	cmd.Flags().StringVar(&notes, "notes", "", "Default notes")

	return cmd
}

func channelListCmd() *cobra.Command {
	var includeInactive bool
	var categoryID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog channels in patch order",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.CatalogAdapter().ListChannels(cmd.Context(), primary.ChannelFilters{
				IncludeInactive: includeInactive,
				CategoryID:      categoryID,
			})
		},
	}
	cmd.Flags().BoolVar(&includeInactive, "all", false, "Include deactivated channels")
	cmd.Flags().StringVar(&categoryID, "category", "", "Only channels in this category")

	return cmd
}

func channelUpdateCmd() *cobra.Command {
	var name, categoryID, mic, stand, notes string
	var defaultOrder int
	var active bool

	cmd := &cobra.Command{
		Use:   "update [channel-id]",
		Short: "Update a catalog channel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := primary.UpdateChannelRequest{ID: args[0]}
			if cmd.Flags().Changed("name") {
				req.Name = &name
			}
			if cmd.Flags().Changed("category") {
				req.CategoryID = &categoryID
			}
			if cmd.Flags().Changed("order") {
				req.DefaultOrder = &defaultOrder
			}
			if cmd.Flags().Changed("mic") {
				req.Mic = &mic
			}
			if cmd.Flags().Changed("stand") {
				req.Stand = &stand
			}
			if cmd.Flags().Changed("notes") {
				req.Notes = &notes
			}
			if cmd.Flags().Changed("active") {
				req.IsActive = &active
			}
			return wire.CatalogAdapter().UpdateChannel(cmd.Context(), req)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "New channel name")
	cmd.Flags().StringVar(&categoryID, "category", "", "New category ID (empty to uncategorize)")
	cmd.Flags().IntVar(&defaultOrder, "order", 0, "New default order")
	cmd.Flags().StringVar(&mic, "mic", "", "New default mic or DI")
	cmd.Flags().StringVar(&stand, "stand", "", "New default stand")
	cmd.Flags().StringVar(&notes, "notes", "", "New default notes")
	cmd.Flags().BoolVar(&active, "active", true, "Set active state")

	return cmd
}

func channelDeactivateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate [channel-id]",
		Short: "Hide a channel from selection without deleting it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.CatalogAdapter().DeactivateChannel(cmd.Context(), args[0])
		},
	}
}

func channelDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [channel-id]",
		Short: "Delete a channel from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.CatalogAdapter().DeleteChannel(cmd.Context(), args[0])
		},
	}
}
