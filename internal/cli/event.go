package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/stagepatch/internal/wire"
)

// EventCmd returns the event command
func EventCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Manage events",
		Long:  "Create, list, and manage events. Each event owns one shared patch and its bands.",
	}

	cmd.AddCommand(eventCreateCmd())
	cmd.AddCommand(eventListCmd())
	cmd.AddCommand(eventShowCmd())
	cmd.AddCommand(eventDeleteCmd())

	return cmd
}

func eventCreateCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a new event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.EventAdapter().Create(cmd.Context(), args[0], date)
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Event date (YYYY-MM-DD)")

	return cmd
}

func eventListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List events, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.EventAdapter().List(cmd.Context())
		},
	}
}

func eventShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [event-id]",
		Short: "Show event details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.EventAdapter().Show(cmd.Context(), args[0])
			return err
		},
	}
}

func eventDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [event-id]",
		Short: "Delete an event with its patch and bands",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.EventAdapter().Delete(cmd.Context(), args[0])
		},
	}
}
