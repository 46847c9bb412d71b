package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/stagepatch/internal/ports/primary"
	"github.com/example/stagepatch/internal/wire"
)

// PatchCmd returns the patch command
func PatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patch",
		Short: "Inspect and rearrange an event's shared patch",
		Long: `Inspect and rearrange an event's shared patch.

The patch is the numbered channel list all bands of an event share.
Toggling cells marks which bands use which channels; reconcile prunes
channels nobody uses and closes numbering gaps.`,
	}

	cmd.AddCommand(patchShowCmd())
	cmd.AddCommand(patchBaselineCmd())
	cmd.AddCommand(patchReorderCmd())
	cmd.AddCommand(patchMoveCmd())
	cmd.AddCommand(patchToggleCmd())
	cmd.AddCommand(patchLabelCmd())
	cmd.AddCommand(patchReconcileCmd())

	return cmd
}

func patchShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [event-id]",
		Short: "Show the usage matrix (channels x bands)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.PatchAdapter().ShowMatrix(cmd.Context(), args[0])
		},
	}
}

func patchBaselineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "baseline [event-id]",
		Short: "Show the channel selection the next new band starts from",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.PatchAdapter().ShowBaseline(cmd.Context(), args[0])
		},
	}
}

func patchReorderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reorder [event-id] [dragged-pc-id] [target-pc-id]",
		Short: "Move a patch channel to another channel's slot",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.PatchAdapter().Reorder(cmd.Context(), args[0], args[1], args[2])
		},
	}
}

func patchMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move [event-id] [pc-id] [up|down]",
		Short: "Move a patch channel one slot up or down",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := primary.MoveDirection(args[2])
			if dir != primary.MoveUp && dir != primary.MoveDown {
				return fmt.Errorf("direction must be up or down, got %q", args[2])
			}
			return wire.PatchAdapter().Move(cmd.Context(), args[0], args[1], dir)
		},
	}
}

func patchToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle [band-id] [pc-id]",
		Short: "Flip a band's usage of a patch channel",
		Long: `Flip a band's usage of a patch channel.

The toggle only marks the cell. Run "patch reconcile" afterwards to
prune channels no band uses and renumber.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.PatchAdapter().Toggle(cmd.Context(), args[0], args[1])
		},
	}
}

func patchLabelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "label [band-id] [pc-id] [label]",
		Short: "Override a cell's label (e.g. \"Synth Bass\" on the Bass DI channel)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.PatchAdapter().SetLabel(cmd.Context(), args[0], args[1], args[2])
		},
	}
}

func patchReconcileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile [event-id]",
		Short: "Prune unused patch channels and renumber 1..N",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.PatchAdapter().Reconcile(cmd.Context(), args[0])
		},
	}
}
