package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/example/stagepatch/internal/ports/primary"
)

// PatchAdapter is a thin adapter that translates CLI operations to
// PatchService calls.
type PatchAdapter struct {
	service primary.PatchService
	out     io.Writer
}

// NewPatchAdapter creates a new PatchAdapter with the given service.
func NewPatchAdapter(service primary.PatchService, out io.Writer) *PatchAdapter {
	return &PatchAdapter{
		service: service,
		out:     out,
	}
}

// CreateBand saves a new band with its channel selection.
func (a *PatchAdapter) CreateBand(ctx context.Context, eventID, name string, channelIDs []string) error {
	resp, err := a.service.CreateBand(ctx, primary.CreateBandRequest{
		EventID:    eventID,
		Name:       name,
		ChannelIDs: channelIDs,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Created band %s: %s\n", resp.Band.ID, resp.Band.Name)
	a.printReconcileSummary(resp)
	return nil
}

// UpdateBand re-saves an existing band's name and selection.
func (a *PatchAdapter) UpdateBand(ctx context.Context, bandID, name string, channelIDs []string) error {
	resp, err := a.service.UpdateBand(ctx, primary.UpdateBandRequest{
		BandID:     bandID,
		Name:       name,
		ChannelIDs: channelIDs,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Band %s saved\n", resp.Band.ID)
	a.printReconcileSummary(resp)
	return nil
}

func (a *PatchAdapter) printReconcileSummary(resp *primary.SaveBandResponse) {
	if resp.CreatedPatches > 0 {
		fmt.Fprintf(a.out, "  added %d patch channel(s)\n", resp.CreatedPatches)
	}
	if resp.PrunedPatches > 0 {
		fmt.Fprintf(a.out, "  pruned %d patch channel(s)\n", resp.PrunedPatches)
	}
	fmt.Fprintf(a.out, "  patch size: %d\n", resp.PatchSize)
}

// ListBands lists the bands of an event in sort order.
func (a *PatchAdapter) ListBands(ctx context.Context, eventID string) error {
	matrix, err := a.service.Matrix(ctx, eventID)
	if err != nil {
		return fmt.Errorf("failed to list bands: %w", err)
	}

	if len(matrix.Bands) == 0 {
		fmt.Fprintln(a.out, "No bands found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-10s %s\n", "ID", "NAME")
	fmt.Fprintln(a.out, "────────────────────────────────────────")
	for _, b := range matrix.Bands {
		fmt.Fprintf(a.out, "%-10s %s\n", b.ID, b.Name)
	}
	fmt.Fprintln(a.out)

	return nil
}

// DeleteBand removes a band and reconciles the event's patch.
func (a *PatchAdapter) DeleteBand(ctx context.Context, bandID string) error {
	if err := a.service.DeleteBand(ctx, bandID); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Band %s deleted\n", bandID)
	return nil
}

// ShowMatrix prints the event's numbered patch with per-band usage columns.
func (a *PatchAdapter) ShowMatrix(ctx context.Context, eventID string) error {
	matrix, err := a.service.Matrix(ctx, eventID)
	if err != nil {
		return fmt.Errorf("failed to load matrix: %w", err)
	}

	if len(matrix.Rows) == 0 {
		fmt.Fprintln(a.out, "Patch is empty")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-4s %-20s", "CH", "NAME")
	for _, b := range matrix.Bands {
		fmt.Fprintf(a.out, " %-14s", b.Name)
	}
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────")

	used := color.New(color.FgGreen)
	for _, row := range matrix.Rows {
		fmt.Fprintf(a.out, "%-4d %-20s", row.Number, row.ChannelName)
		for _, cell := range row.Cells {
			mark := "·"
			if cell.Used {
				mark = used.Sprint("✓")
				if cell.Label != "" && cell.Label != row.ChannelName {
					mark = used.Sprint(cell.Label)
				}
			}
			fmt.Fprintf(a.out, " %-14s", mark)
		}
		fmt.Fprintln(a.out)
	}
	fmt.Fprintln(a.out)

	return nil
}

// ShowBaseline prints the channel ids the next new band would start from.
func (a *PatchAdapter) ShowBaseline(ctx context.Context, eventID string) error {
	channelIDs, err := a.service.Baseline(ctx, eventID)
	if err != nil {
		return fmt.Errorf("failed to load baseline: %w", err)
	}

	if len(channelIDs) == 0 {
		fmt.Fprintln(a.out, "No baseline (event has no bands yet)")
		return nil
	}

	for _, id := range channelIDs {
		fmt.Fprintln(a.out, id)
	}
	return nil
}

// Reorder moves a patch channel to another's slot (drag semantics).
func (a *PatchAdapter) Reorder(ctx context.Context, eventID, draggedID, targetID string) error {
	if err := a.service.ReorderChannel(ctx, eventID, draggedID, targetID); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Moved %s to %s's slot\n", draggedID, targetID)
	return nil
}

// Move moves a patch channel one slot up or down.
func (a *PatchAdapter) Move(ctx context.Context, eventID, patchChannelID string, dir primary.MoveDirection) error {
	if err := a.service.MoveChannel(ctx, eventID, patchChannelID, dir); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Moved %s %s\n", patchChannelID, dir)
	return nil
}

// Toggle flips one band's usage of one patch channel.
func (a *PatchAdapter) Toggle(ctx context.Context, bandID, patchChannelID string) error {
	used, err := a.service.ToggleUsage(ctx, bandID, patchChannelID)
	if err != nil {
		return err
	}

	state := "off"
	if used {
		state = "on"
	}
	fmt.Fprintf(a.out, "✓ %s toggled %s for %s\n", patchChannelID, state, bandID)
	return nil
}

// SetLabel overrides the label of one matrix cell.
func (a *PatchAdapter) SetLabel(ctx context.Context, bandID, patchChannelID, label string) error {
	if err := a.service.SetLabel(ctx, bandID, patchChannelID, label); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Label set\n")
	return nil
}

// Reconcile prunes unused patch channels and renumbers the rest.
func (a *PatchAdapter) Reconcile(ctx context.Context, eventID string) error {
	if err := a.service.Reconcile(ctx, eventID); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Patch reconciled for %s\n", eventID)
	return nil
}

// Export writes the event's patch CSV to the given path, or to the
// adapter's output when path is "-" or empty.
func (a *PatchAdapter) Export(ctx context.Context, eventID, path string) error {
	if path == "" || path == "-" {
		return a.service.ExportCSV(ctx, eventID, a.out)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := a.service.ExportCSV(ctx, eventID, f); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Exported patch for %s to %s\n", eventID, path)
	return nil
}
