package app

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/example/stagepatch/internal/ports/primary"
	"github.com/example/stagepatch/internal/ports/secondary"
)

func TestCreateBand_FirstBandBuildsPatch(t *testing.T) {
	f := newPatchFixture()
	ctx := context.Background()

	resp, err := f.service.CreateBand(ctx, primary.CreateBandRequest{
		EventID:    "EVT-001",
		Name:       "Opener",
		ChannelIDs: []string{"CH-001", "CH-003", "CH-005"},
	})
	if err != nil {
		t.Fatalf("CreateBand failed: %v", err)
	}

	if resp.CreatedPatches != 3 || resp.PrunedPatches != 0 || resp.PatchSize != 3 {
		t.Errorf("response = %+v", resp)
	}
	if resp.Band.ID != "BAND-001" || resp.Band.Name != "Opener" {
		t.Errorf("band = %+v", resp.Band)
	}

	numbers := f.patchNumbers("EVT-001")
	want := map[string]int{"CH-001": 1, "CH-003": 2, "CH-005": 3}
	for ch, n := range want {
		if numbers[ch] != n {
			t.Errorf("patch number for %s = %d, want %d", ch, numbers[ch], n)
		}
	}

	usage, _ := f.usageRepo.ListByBand(ctx, "BAND-001")
	if len(usage) != 3 {
		t.Fatalf("expected 3 usage rows, got %d", len(usage))
	}
	for _, u := range usage {
		if !u.IsUsed {
			t.Errorf("usage row %+v not marked used", u)
		}
		if u.Label == "" {
			t.Errorf("usage row %+v missing default label", u)
		}
	}
}

func TestCreateBand_AppendsMissingChannelsAfterMax(t *testing.T) {
	f := newPatchFixture()
	ctx := context.Background()

	if _, err := f.service.CreateBand(ctx, primary.CreateBandRequest{
		EventID: "EVT-001", Name: "Opener", ChannelIDs: []string{"CH-001", "CH-002"},
	}); err != nil {
		t.Fatalf("first CreateBand failed: %v", err)
	}

	resp, err := f.service.CreateBand(ctx, primary.CreateBandRequest{
		EventID: "EVT-001", Name: "Headliner", ChannelIDs: []string{"CH-002", "CH-004"},
	})
	if err != nil {
		t.Fatalf("second CreateBand failed: %v", err)
	}

	// CH-002 is shared, only CH-004 is new. CH-001 stays because the opener
	// still uses it.
	if resp.CreatedPatches != 1 || resp.PrunedPatches != 0 || resp.PatchSize != 3 {
		t.Errorf("response = %+v", resp)
	}
	numbers := f.patchNumbers("EVT-001")
	want := map[string]int{"CH-001": 1, "CH-002": 2, "CH-004": 3}
	for ch, n := range want {
		if numbers[ch] != n {
			t.Errorf("patch number for %s = %d, want %d", ch, numbers[ch], n)
		}
	}
}

func TestUpdateBand_PrunesOrphansAndRenumbers(t *testing.T) {
	f := newPatchFixture()
	ctx := context.Background()

	resp, err := f.service.CreateBand(ctx, primary.CreateBandRequest{
		EventID: "EVT-001", Name: "Opener", ChannelIDs: []string{"CH-001", "CH-002", "CH-003"},
	})
	if err != nil {
		t.Fatalf("CreateBand failed: %v", err)
	}

	updated, err := f.service.UpdateBand(ctx, primary.UpdateBandRequest{
		BandID: resp.Band.ID, Name: "Opener", ChannelIDs: []string{"CH-001", "CH-003"},
	})
	if err != nil {
		t.Fatalf("UpdateBand failed: %v", err)
	}

	if updated.PrunedPatches != 1 || updated.PatchSize != 2 {
		t.Errorf("response = %+v", updated)
	}
	numbers := f.patchNumbers("EVT-001")
	if len(numbers) != 2 || numbers["CH-001"] != 1 || numbers["CH-003"] != 2 {
		t.Errorf("patch after prune = %v", numbers)
	}
}

func TestUpdateBand_KeepsChannelsUsedByOthers(t *testing.T) {
	f := newPatchFixture()
	ctx := context.Background()

	first, err := f.service.CreateBand(ctx, primary.CreateBandRequest{
		EventID: "EVT-001", Name: "Opener", ChannelIDs: []string{"CH-001", "CH-002"},
	})
	if err != nil {
		t.Fatalf("CreateBand failed: %v", err)
	}
	if _, err := f.service.CreateBand(ctx, primary.CreateBandRequest{
		EventID: "EVT-001", Name: "Headliner", ChannelIDs: []string{"CH-002"},
	}); err != nil {
		t.Fatalf("CreateBand failed: %v", err)
	}

	// The opener drops CH-002, but the headliner still uses it.
	resp, err := f.service.UpdateBand(ctx, primary.UpdateBandRequest{
		BandID: first.Band.ID, Name: "Opener", ChannelIDs: []string{"CH-001"},
	})
	if err != nil {
		t.Fatalf("UpdateBand failed: %v", err)
	}
	if resp.PrunedPatches != 0 || resp.PatchSize != 2 {
		t.Errorf("response = %+v", resp)
	}
}

func TestUpdateBand_PreservesLabelForKeptChannel(t *testing.T) {
	f := newPatchFixture()
	ctx := context.Background()

	resp, err := f.service.CreateBand(ctx, primary.CreateBandRequest{
		EventID: "EVT-001", Name: "Opener", ChannelIDs: []string{"CH-001", "CH-002"},
	})
	if err != nil {
		t.Fatalf("CreateBand failed: %v", err)
	}

	patch, _ := f.patchRepo.ListByEvent(ctx, "EVT-001")
	if err := f.service.SetLabel(ctx, resp.Band.ID, patch[0].ID, "Kick (sub)"); err != nil {
		t.Fatalf("SetLabel failed: %v", err)
	}

	if _, err := f.service.UpdateBand(ctx, primary.UpdateBandRequest{
		BandID: resp.Band.ID, Name: "Opener", ChannelIDs: []string{"CH-001", "CH-002"},
	}); err != nil {
		t.Fatalf("UpdateBand failed: %v", err)
	}

	usage, _ := f.usageRepo.ListByBand(ctx, resp.Band.ID)
	found := false
	for _, u := range usage {
		if u.Label == "Kick (sub)" {
			found = true
		}
	}
	if !found {
		t.Errorf("custom label lost across re-save, usage = %+v", usage)
	}
}

func TestUpdateBand_SameSelectionIsIdempotent(t *testing.T) {
	f := newPatchFixture()
	ctx := context.Background()

	resp, err := f.service.CreateBand(ctx, primary.CreateBandRequest{
		EventID: "EVT-001", Name: "Opener", ChannelIDs: []string{"CH-001", "CH-002"},
	})
	if err != nil {
		t.Fatalf("CreateBand failed: %v", err)
	}

	before := f.patchNumbers("EVT-001")
	again, err := f.service.UpdateBand(ctx, primary.UpdateBandRequest{
		BandID: resp.Band.ID, Name: "Opener", ChannelIDs: []string{"CH-001", "CH-002"},
	})
	if err != nil {
		t.Fatalf("UpdateBand failed: %v", err)
	}
	if again.CreatedPatches != 0 || again.PrunedPatches != 0 {
		t.Errorf("re-save must not churn the patch: %+v", again)
	}
	after := f.patchNumbers("EVT-001")
	for ch, n := range before {
		if after[ch] != n {
			t.Errorf("number for %s changed %d -> %d", ch, n, after[ch])
		}
	}
}

func TestCreateBand_Guards(t *testing.T) {
	f := newPatchFixture()
	ctx := context.Background()

	tests := []struct {
		name string
		req  primary.CreateBandRequest
		want string
	}{
		{
			name: "missing event",
			req:  primary.CreateBandRequest{EventID: "EVT-404", Name: "X", ChannelIDs: []string{"CH-001"}},
			want: "event not found",
		},
		{
			name: "empty name",
			req:  primary.CreateBandRequest{EventID: "EVT-001", ChannelIDs: []string{"CH-001"}},
			want: "band name is required",
		},
		{
			name: "empty selection",
			req:  primary.CreateBandRequest{EventID: "EVT-001", Name: "X"},
			want: "select at least one channel",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.CreateBand(ctx, tt.req)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestUpdateBand_UnknownBand(t *testing.T) {
	f := newPatchFixture()

	_, err := f.service.UpdateBand(context.Background(), primary.UpdateBandRequest{
		BandID: "BAND-404", Name: "X", ChannelIDs: []string{"CH-001"},
	})
	if err == nil || !strings.Contains(err.Error(), "BAND-404 not found") {
		t.Errorf("err = %v, want band not found", err)
	}
}

func TestDeleteBand_ReconcilesPatch(t *testing.T) {
	f := newPatchFixture()
	ctx := context.Background()

	first, err := f.service.CreateBand(ctx, primary.CreateBandRequest{
		EventID: "EVT-001", Name: "Opener", ChannelIDs: []string{"CH-001", "CH-002"},
	})
	if err != nil {
		t.Fatalf("CreateBand failed: %v", err)
	}
	if _, err := f.service.CreateBand(ctx, primary.CreateBandRequest{
		EventID: "EVT-001", Name: "Headliner", ChannelIDs: []string{"CH-002", "CH-003"},
	}); err != nil {
		t.Fatalf("CreateBand failed: %v", err)
	}

	if err := f.service.DeleteBand(ctx, first.Band.ID); err != nil {
		t.Fatalf("DeleteBand failed: %v", err)
	}

	numbers := f.patchNumbers("EVT-001")
	if len(numbers) != 2 || numbers["CH-002"] != 1 || numbers["CH-003"] != 2 {
		t.Errorf("patch after band delete = %v", numbers)
	}
}

func TestToggleUsage_FlipsAndReconcileSweeps(t *testing.T) {
	f := newPatchFixture()
	ctx := context.Background()

	resp, err := f.service.CreateBand(ctx, primary.CreateBandRequest{
		EventID: "EVT-001", Name: "Opener", ChannelIDs: []string{"CH-001", "CH-002"},
	})
	if err != nil {
		t.Fatalf("CreateBand failed: %v", err)
	}
	patch, _ := f.patchRepo.ListByEvent(ctx, "EVT-001")

	// Toggle off: the row flips but the patch keeps both channels until the
	// debounced reconcile runs.
	used, err := f.service.ToggleUsage(ctx, resp.Band.ID, patch[0].ID)
	if err != nil {
		t.Fatalf("ToggleUsage failed: %v", err)
	}
	if used {
		t.Error("expected toggle off")
	}
	if len(f.patchNumbers("EVT-001")) != 2 {
		t.Error("toggle must not prune before reconcile")
	}

	if err := f.service.Reconcile(ctx, "EVT-001"); err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	numbers := f.patchNumbers("EVT-001")
	if len(numbers) != 1 || numbers["CH-002"] != 1 {
		t.Errorf("patch after reconcile = %v", numbers)
	}

	// Toggling the surviving channel flips its existing row off, then on.
	patch, _ = f.patchRepo.ListByEvent(ctx, "EVT-001")
	used, err = f.service.ToggleUsage(ctx, resp.Band.ID, patch[0].ID)
	if err != nil {
		t.Fatalf("ToggleUsage failed: %v", err)
	}
	if used {
		t.Error("expected toggle off for the in-use row")
	}
	used, err = f.service.ToggleUsage(ctx, resp.Band.ID, patch[0].ID)
	if err != nil {
		t.Fatalf("ToggleUsage failed: %v", err)
	}
	if !used {
		t.Error("expected toggle back on")
	}
}

func TestReconcile_NoChurnWhenContiguous(t *testing.T) {
	f := newPatchFixture()
	ctx := context.Background()

	if _, err := f.service.CreateBand(ctx, primary.CreateBandRequest{
		EventID: "EVT-001", Name: "Opener", ChannelIDs: []string{"CH-001", "CH-002"},
	}); err != nil {
		t.Fatalf("CreateBand failed: %v", err)
	}

	before := f.patchNumbers("EVT-001")
	if err := f.service.Reconcile(ctx, "EVT-001"); err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	after := f.patchNumbers("EVT-001")
	for ch, n := range before {
		if after[ch] != n {
			t.Errorf("number for %s changed %d -> %d", ch, n, after[ch])
		}
	}
}

func TestBaseline_MostRecentlySavedBand(t *testing.T) {
	f := newPatchFixture()
	ctx := context.Background()

	baseline, err := f.service.Baseline(ctx, "EVT-001")
	if err != nil {
		t.Fatalf("Baseline failed: %v", err)
	}
	if baseline != nil {
		t.Errorf("expected no baseline for empty event, got %v", baseline)
	}

	if _, err := f.service.CreateBand(ctx, primary.CreateBandRequest{
		EventID: "EVT-001", Name: "Opener", ChannelIDs: []string{"CH-001"},
	}); err != nil {
		t.Fatalf("CreateBand failed: %v", err)
	}
	if _, err := f.service.CreateBand(ctx, primary.CreateBandRequest{
		EventID: "EVT-001", Name: "Headliner", ChannelIDs: []string{"CH-002", "CH-003"},
	}); err != nil {
		t.Fatalf("CreateBand failed: %v", err)
	}

	baseline, err = f.service.Baseline(ctx, "EVT-001")
	if err != nil {
		t.Fatalf("Baseline failed: %v", err)
	}
	if len(baseline) != 2 || baseline[0] != "CH-002" || baseline[1] != "CH-003" {
		t.Errorf("baseline = %v, want headliner's channels in patch order", baseline)
	}
}

func TestMoveChannel_SwapsAndRenumbers(t *testing.T) {
	f := newPatchFixture()
	ctx := context.Background()

	if _, err := f.service.CreateBand(ctx, primary.CreateBandRequest{
		EventID: "EVT-001", Name: "Opener", ChannelIDs: []string{"CH-001", "CH-002", "CH-003"},
	}); err != nil {
		t.Fatalf("CreateBand failed: %v", err)
	}
	patch, _ := f.patchRepo.ListByEvent(ctx, "EVT-001")

	if err := f.service.MoveChannel(ctx, "EVT-001", patch[2].ID, primary.MoveUp); err != nil {
		t.Fatalf("MoveChannel failed: %v", err)
	}
	numbers := f.patchNumbers("EVT-001")
	if numbers["CH-003"] != 2 || numbers["CH-002"] != 3 {
		t.Errorf("patch after move up = %v", numbers)
	}

	// Boundary: moving the first channel up is a no-op.
	patch, _ = f.patchRepo.ListByEvent(ctx, "EVT-001")
	if err := f.service.MoveChannel(ctx, "EVT-001", patch[0].ID, primary.MoveUp); err != nil {
		t.Fatalf("MoveChannel at boundary failed: %v", err)
	}
	if f.patchNumbers("EVT-001")["CH-001"] != 1 {
		t.Error("boundary move must not change numbers")
	}

	err := f.service.MoveChannel(ctx, "EVT-001", "PC-404", primary.MoveDown)
	if !errors.Is(err, secondary.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestReorderChannel_DragToSlot(t *testing.T) {
	f := newPatchFixture()
	ctx := context.Background()

	if _, err := f.service.CreateBand(ctx, primary.CreateBandRequest{
		EventID: "EVT-001", Name: "Opener",
		ChannelIDs: []string{"CH-001", "CH-002", "CH-003", "CH-004"},
	}); err != nil {
		t.Fatalf("CreateBand failed: %v", err)
	}
	patch, _ := f.patchRepo.ListByEvent(ctx, "EVT-001")

	// Drag the last channel onto the first slot.
	if err := f.service.ReorderChannel(ctx, "EVT-001", patch[3].ID, patch[0].ID); err != nil {
		t.Fatalf("ReorderChannel failed: %v", err)
	}
	numbers := f.patchNumbers("EVT-001")
	want := map[string]int{"CH-004": 1, "CH-001": 2, "CH-002": 3, "CH-003": 4}
	for ch, n := range want {
		if numbers[ch] != n {
			t.Errorf("number for %s = %d, want %d", ch, numbers[ch], n)
		}
	}

	// Unknown ids are a no-op.
	if err := f.service.ReorderChannel(ctx, "EVT-001", "PC-404", patch[0].ID); err != nil {
		t.Fatalf("ReorderChannel with unknown id failed: %v", err)
	}
}

func TestMatrix_StateAndCells(t *testing.T) {
	f := newPatchFixture()
	ctx := context.Background()

	matrix, err := f.service.Matrix(ctx, "EVT-001")
	if err != nil {
		t.Fatalf("Matrix failed: %v", err)
	}
	if matrix.State != "empty" {
		t.Errorf("state = %s, want empty", matrix.State)
	}

	opener, err := f.service.CreateBand(ctx, primary.CreateBandRequest{
		EventID: "EVT-001", Name: "Opener", ChannelIDs: []string{"CH-001", "CH-002"},
	})
	if err != nil {
		t.Fatalf("CreateBand failed: %v", err)
	}
	if _, err := f.service.CreateBand(ctx, primary.CreateBandRequest{
		EventID: "EVT-001", Name: "Headliner", ChannelIDs: []string{"CH-002"},
	}); err != nil {
		t.Fatalf("CreateBand failed: %v", err)
	}

	matrix, err = f.service.Matrix(ctx, "EVT-001")
	if err != nil {
		t.Fatalf("Matrix failed: %v", err)
	}
	if matrix.State != "populated" {
		t.Errorf("state = %s, want populated", matrix.State)
	}
	if len(matrix.Bands) != 2 || len(matrix.Rows) != 2 {
		t.Fatalf("matrix shape: %d bands, %d rows", len(matrix.Bands), len(matrix.Rows))
	}

	// Row 1 is CH-001, used only by the opener.
	row := matrix.Rows[0]
	if row.Number != 1 || row.ChannelName != "Kick In" {
		t.Errorf("row 1 = %+v", row)
	}
	for _, cell := range row.Cells {
		if cell.BandID == opener.Band.ID && !cell.Used {
			t.Error("opener's kick cell must be used")
		}
		if cell.BandID != opener.Band.ID && cell.Used {
			t.Error("headliner's kick cell must be unused")
		}
	}
}

func TestExportCSV(t *testing.T) {
	f := newPatchFixture()
	ctx := context.Background()

	if _, err := f.service.CreateBand(ctx, primary.CreateBandRequest{
		EventID: "EVT-001", Name: "Opener", ChannelIDs: []string{"CH-001", "CH-005"},
	}); err != nil {
		t.Fatalf("CreateBand failed: %v", err)
	}

	var buf bytes.Buffer
	if err := f.service.ExportCSV(ctx, "EVT-001", &buf); err != nil {
		t.Fatalf("ExportCSV failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines:\n%s", len(lines), buf.String())
	}
	if lines[0] != "Ch;Name;Mic/DI;Stand;Notes;Opener" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "1;Kick In;") {
		t.Errorf("row 1 = %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "2;Lead Vox;") {
		t.Errorf("row 2 = %q", lines[2])
	}
}
