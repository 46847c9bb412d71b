package app

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	corepatch "github.com/example/stagepatch/internal/core/patch"
	"github.com/example/stagepatch/internal/core/sequence"
	"github.com/example/stagepatch/internal/ports/primary"
	"github.com/example/stagepatch/internal/ports/secondary"
)

// PatchServiceImpl implements the PatchService interface. Band saves run the
// reconciliation sequence: patch coverage, band persist, usage replacement,
// orphan pruning, renumbering, baseline touch. The steps are sequential and
// abort on the first failure - the store is atomic per row, not per save.
type PatchServiceImpl struct {
	eventRepo   secondary.EventRepository
	bandRepo    secondary.BandRepository
	channelRepo secondary.ChannelRepository
	patchRepo   secondary.PatchChannelRepository
	usageRepo   secondary.UsageRepository
	log         *logrus.Logger
}

// NewPatchService creates a new PatchService with injected dependencies.
func NewPatchService(
	eventRepo secondary.EventRepository,
	bandRepo secondary.BandRepository,
	channelRepo secondary.ChannelRepository,
	patchRepo secondary.PatchChannelRepository,
	usageRepo secondary.UsageRepository,
	log *logrus.Logger,
) *PatchServiceImpl {
	return &PatchServiceImpl{
		eventRepo:   eventRepo,
		bandRepo:    bandRepo,
		channelRepo: channelRepo,
		patchRepo:   patchRepo,
		usageRepo:   usageRepo,
		log:         log,
	}
}

// CreateBand saves a new band with its channel selection and reconciles the
// event's shared patch.
func (s *PatchServiceImpl) CreateBand(ctx context.Context, req primary.CreateBandRequest) (*primary.SaveBandResponse, error) {
	eventExists := true
	if _, err := s.eventRepo.GetByID(ctx, req.EventID); err != nil {
		if !errors.Is(err, secondary.ErrNotFound) {
			return nil, err
		}
		eventExists = false
	}

	guardCtx := corepatch.SaveBandContext{
		Name:           req.Name,
		SelectionCount: len(req.ChannelIDs),
		EventExists:    eventExists,
	}
	if result := corepatch.CanSaveBand(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	return s.saveBand(ctx, req.EventID, "", req.Name, req.ChannelIDs)
}

// UpdateBand re-saves an existing band's name and selection and reconciles
// the event's shared patch.
func (s *PatchServiceImpl) UpdateBand(ctx context.Context, req primary.UpdateBandRequest) (*primary.SaveBandResponse, error) {
	band, err := s.bandRepo.GetByID(ctx, req.BandID)
	if err != nil && !errors.Is(err, secondary.ErrNotFound) {
		return nil, err
	}

	guardCtx := corepatch.SaveBandContext{
		Name:           req.Name,
		SelectionCount: len(req.ChannelIDs),
		BandID:         req.BandID,
		BandExists:     band != nil,
		// A stored band always references a live event.
		EventExists: true,
	}
	if result := corepatch.CanSaveBand(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	return s.saveBand(ctx, band.EventID, band.ID, req.Name, req.ChannelIDs)
}

// saveBand runs the reconciliation sequence for one band save. bandID is
// empty when the save creates a new band.
func (s *PatchServiceImpl) saveBand(ctx context.Context, eventID, bandID, name string, channelIDs []string) (*primary.SaveBandResponse, error) {
	log := s.log.WithFields(logrus.Fields{"event_id": eventID, "band_id": bandID})

	patchRecords, err := s.patchRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to load patch: %w", err)
	}
	usageRecords, err := s.usageRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to load usage: %w", err)
	}
	channels, err := s.channelRepo.List(ctx, secondary.ChannelFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to load channels: %w", err)
	}

	names := make(map[string]string, len(channels))
	for _, ch := range channels {
		names[ch.ID] = ch.Name
	}
	for _, chID := range channelIDs {
		if names[chID] == "" {
			return nil, fmt.Errorf("channel %s: %w", chID, secondary.ErrNotFound)
		}
	}

	plan := corepatch.BuildReconcilePlan(corepatch.ReconcileInput{
		BandID:             bandID,
		SelectedChannelIDs: channelIDs,
		ChannelNames:       names,
		PatchChannels:      planRefs(patchRecords),
		Usage:              usageRefs(usageRecords),
	})

	// 1. Patch coverage: append missing channels after the current maximum.
	createdIDs, err := s.createPatchChannels(ctx, eventID, plan.Creates)
	if err != nil {
		log.WithError(err).Error("band save aborted: patch coverage")
		return nil, err
	}

	// 2. Band persist.
	if bandID == "" {
		bandID, err = s.createBand(ctx, eventID, name)
		if err != nil {
			log.WithError(err).Error("band save aborted: band create")
			return nil, err
		}
	} else if err := s.bandRepo.UpdateName(ctx, bandID, name); err != nil {
		log.WithError(err).Error("band save aborted: band update")
		return nil, err
	}

	// 3. Usage replacement: wipe and rewrite this band's rows.
	if err := s.usageRepo.DeleteByBand(ctx, bandID); err != nil {
		log.WithError(err).Error("band save aborted: usage wipe")
		return nil, err
	}
	pcByChannel := make(map[string]string, len(patchRecords)+len(createdIDs))
	for _, pc := range patchRecords {
		pcByChannel[pc.ChannelID] = pc.ID
	}
	for i, c := range plan.Creates {
		pcByChannel[c.ChannelID] = createdIDs[i]
	}
	for _, row := range plan.Usage {
		record := &secondary.UsageRecord{
			ID:             uuid.NewString(),
			BandID:         bandID,
			PatchChannelID: pcByChannel[row.ChannelID],
			IsUsed:         true,
			Label:          row.Label,
		}
		if err := s.usageRepo.Upsert(ctx, record); err != nil {
			log.WithError(err).Error("band save aborted: usage write")
			return nil, err
		}
	}

	// 4. Prune patch channels no band uses anymore.
	if err := s.usageRepo.DeleteByPatchChannels(ctx, plan.PruneIDs); err != nil {
		log.WithError(err).Error("band save aborted: usage prune")
		return nil, err
	}
	if err := s.patchRepo.Delete(ctx, plan.PruneIDs); err != nil {
		log.WithError(err).Error("band save aborted: patch prune")
		return nil, err
	}

	// 5. Renumber 1..N: survivors in number order, then the new channels.
	ordered := append(append([]string{}, plan.SurvivorIDs...), createdIDs...)
	if err := renumberPatch(ctx, s.patchRepo, ordered); err != nil {
		log.WithError(err).Error("band save aborted: renumber")
		return nil, err
	}

	// 6. Baseline: the saved band becomes the next band's pre-check template.
	if err := s.bandRepo.Touch(ctx, bandID); err != nil {
		log.WithError(err).Error("band save aborted: baseline touch")
		return nil, err
	}

	band, err := s.bandRepo.GetByID(ctx, bandID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload band: %w", err)
	}

	log.WithFields(logrus.Fields{
		"created": len(plan.Creates),
		"pruned":  len(plan.PruneIDs),
		"patch":   len(ordered),
	}).Info("band saved")

	return &primary.SaveBandResponse{
		Band:           recordToBand(band),
		CreatedPatches: len(plan.Creates),
		PrunedPatches:  len(plan.PruneIDs),
		PatchSize:      len(ordered),
	}, nil
}

func (s *PatchServiceImpl) createBand(ctx context.Context, eventID, name string) (string, error) {
	id, err := s.bandRepo.GetNextID(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to generate band ID: %w", err)
	}
	existing, err := s.bandRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return "", fmt.Errorf("failed to list bands: %w", err)
	}
	record := &secondary.BandRecord{
		ID:        id,
		EventID:   eventID,
		Name:      name,
		SortOrder: len(existing) + 1,
	}
	if err := s.bandRepo.Create(ctx, record); err != nil {
		return "", fmt.Errorf("failed to create band: %w", err)
	}
	return id, nil
}

// createPatchChannels batch-inserts the planned patch channels and returns
// their ids in plan order.
func (s *PatchServiceImpl) createPatchChannels(ctx context.Context, eventID string, creates []corepatch.NewPatchChannel) ([]string, error) {
	if len(creates) == 0 {
		return nil, nil
	}
	first, err := s.patchRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate patch channel ID: %w", err)
	}
	base, err := strconv.Atoi(strings.TrimPrefix(first, "PC-"))
	if err != nil {
		return nil, fmt.Errorf("unexpected patch channel ID %q: %w", first, err)
	}

	ids := make([]string, len(creates))
	rows := make([]*secondary.PatchChannelRecord, len(creates))
	for i, c := range creates {
		ids[i] = fmt.Sprintf("PC-%03d", base+i)
		rows[i] = &secondary.PatchChannelRecord{
			ID:        ids[i],
			EventID:   eventID,
			ChannelID: c.ChannelID,
			Number:    c.Number,
		}
	}
	if err := s.patchRepo.CreateBatch(ctx, rows); err != nil {
		return nil, fmt.Errorf("failed to create patch channels: %w", err)
	}
	return ids, nil
}

// DeleteBand removes a band and reconciles the event's patch, pruning
// channels only that band used.
func (s *PatchServiceImpl) DeleteBand(ctx context.Context, bandID string) error {
	band, err := s.bandRepo.GetByID(ctx, bandID)
	if err != nil {
		return err
	}
	if err := s.usageRepo.DeleteByBand(ctx, bandID); err != nil {
		return fmt.Errorf("failed to delete usage: %w", err)
	}
	if err := s.bandRepo.Delete(ctx, bandID); err != nil {
		return fmt.Errorf("failed to delete band: %w", err)
	}
	return s.Reconcile(ctx, band.EventID)
}

// Matrix returns the event's numbered patch with per-band usage cells.
func (s *PatchServiceImpl) Matrix(ctx context.Context, eventID string) (*primary.Matrix, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	bands, err := s.bandRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bands: %w", err)
	}
	patchRecords, err := s.patchRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to load patch: %w", err)
	}
	usageRecords, err := s.usageRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to load usage: %w", err)
	}
	channels, err := s.channelRepo.List(ctx, secondary.ChannelFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to load channels: %w", err)
	}

	chByID := make(map[string]*secondary.ChannelRecord, len(channels))
	for _, ch := range channels {
		chByID[ch.ID] = ch
	}

	type cellKey struct{ band, pc string }
	usage := make(map[cellKey]*secondary.UsageRecord, len(usageRecords))
	usedRows := 0
	for _, u := range usageRecords {
		usage[cellKey{u.BandID, u.PatchChannelID}] = u
		if u.IsUsed {
			usedRows++
		}
	}

	matrix := &primary.Matrix{
		EventID: eventID,
		State:   string(corepatch.EventState(len(patchRecords), usedRows)),
	}
	for _, b := range bands {
		matrix.Bands = append(matrix.Bands, recordToBand(b))
	}
	for _, pc := range patchRecords {
		row := &primary.MatrixRow{
			PatchChannelID: pc.ID,
			Number:         pc.Number,
			ChannelID:      pc.ChannelID,
		}
		if ch := chByID[pc.ChannelID]; ch != nil {
			row.ChannelName = ch.Name
			row.Mic = ch.Mic
			row.Stand = ch.Stand
			row.Notes = ch.Notes
		}
		for _, b := range bands {
			cell := primary.MatrixCell{BandID: b.ID}
			if u := usage[cellKey{b.ID, pc.ID}]; u != nil && u.IsUsed {
				cell.Used = true
				cell.Label = u.Label
				if cell.Label == "" {
					cell.Label = row.ChannelName
				}
			}
			row.Cells = append(row.Cells, cell)
		}
		matrix.Rows = append(matrix.Rows, row)
	}
	return matrix, nil
}

// Baseline returns the channel ids the most recently saved band uses, in
// patch number order. Empty when the event has no bands.
func (s *PatchServiceImpl) Baseline(ctx context.Context, eventID string) ([]string, error) {
	band, err := s.bandRepo.GetMostRecentlyUpdated(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if band == nil {
		return nil, nil
	}
	usageRecords, err := s.usageRepo.ListByBand(ctx, band.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load usage: %w", err)
	}
	used := make(map[string]bool, len(usageRecords))
	for _, u := range usageRecords {
		if u.IsUsed {
			used[u.PatchChannelID] = true
		}
	}
	patchRecords, err := s.patchRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to load patch: %w", err)
	}
	var channelIDs []string
	for _, pc := range patchRecords {
		if used[pc.ID] {
			channelIDs = append(channelIDs, pc.ChannelID)
		}
	}
	return channelIDs, nil
}

// ReorderChannel moves a patch channel to another's slot and renumbers.
func (s *PatchServiceImpl) ReorderChannel(ctx context.Context, eventID, draggedID, targetID string) error {
	patchRecords, err := s.patchRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return fmt.Errorf("failed to load patch: %w", err)
	}
	ids := make([]string, len(patchRecords))
	for i, pc := range patchRecords {
		ids[i] = pc.ID
	}
	reordered := sequence.ReorderIDs(ids, draggedID, targetID)
	if sameOrder(ids, reordered) {
		return nil
	}
	return renumberPatch(ctx, s.patchRepo, reordered)
}

// MoveChannel moves a patch channel one slot up or down and renumbers.
// No-op at either boundary.
func (s *PatchServiceImpl) MoveChannel(ctx context.Context, eventID, patchChannelID string, dir primary.MoveDirection) error {
	patchRecords, err := s.patchRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return fmt.Errorf("failed to load patch: %w", err)
	}
	ids := make([]string, len(patchRecords))
	pos := -1
	for i, pc := range patchRecords {
		ids[i] = pc.ID
		if pc.ID == patchChannelID {
			pos = i
		}
	}
	if pos < 0 {
		return fmt.Errorf("patch channel %s: %w", patchChannelID, secondary.ErrNotFound)
	}
	neighbor := pos - 1
	if dir == primary.MoveDown {
		neighbor = pos + 1
	}
	if neighbor < 0 || neighbor >= len(ids) {
		return nil
	}
	ids[pos], ids[neighbor] = ids[neighbor], ids[pos]
	return renumberPatch(ctx, s.patchRepo, ids)
}

// ToggleUsage flips one matrix cell. It only writes the usage row - the
// interactive path follows up with a debounced Reconcile.
func (s *PatchServiceImpl) ToggleUsage(ctx context.Context, bandID, patchChannelID string) (bool, error) {
	if _, err := s.bandRepo.GetByID(ctx, bandID); err != nil {
		return false, err
	}
	rows, err := s.usageRepo.ListByBand(ctx, bandID)
	if err != nil {
		return false, fmt.Errorf("failed to load usage: %w", err)
	}
	var existing *secondary.UsageRecord
	for _, u := range rows {
		if u.PatchChannelID == patchChannelID {
			existing = u
			break
		}
	}

	record := existing
	if record == nil {
		record = &secondary.UsageRecord{
			ID:             uuid.NewString(),
			BandID:         bandID,
			PatchChannelID: patchChannelID,
		}
	}
	record.IsUsed = existing == nil || !existing.IsUsed

	if err := s.usageRepo.Upsert(ctx, record); err != nil {
		return false, fmt.Errorf("failed to toggle usage: %w", err)
	}
	if err := s.bandRepo.Touch(ctx, bandID); err != nil {
		return false, err
	}
	return record.IsUsed, nil
}

// SetLabel overrides the label of one in-use matrix cell.
func (s *PatchServiceImpl) SetLabel(ctx context.Context, bandID, patchChannelID, label string) error {
	rows, err := s.usageRepo.ListByBand(ctx, bandID)
	if err != nil {
		return fmt.Errorf("failed to load usage: %w", err)
	}
	for _, u := range rows {
		if u.PatchChannelID != patchChannelID || !u.IsUsed {
			continue
		}
		u.Label = label
		if err := s.usageRepo.Upsert(ctx, u); err != nil {
			return fmt.Errorf("failed to set label: %w", err)
		}
		return nil
	}
	return fmt.Errorf("no active usage for patch channel %s: %w", patchChannelID, secondary.ErrNotFound)
}

// Reconcile prunes patch channels no band uses and renumbers the rest.
func (s *PatchServiceImpl) Reconcile(ctx context.Context, eventID string) error {
	patchRecords, err := s.patchRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return fmt.Errorf("failed to load patch: %w", err)
	}
	usageRecords, err := s.usageRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return fmt.Errorf("failed to load usage: %w", err)
	}

	used := make(map[string]bool, len(usageRecords))
	for _, u := range usageRecords {
		if u.IsUsed {
			used[u.PatchChannelID] = true
		}
	}

	var survivors, prune []string
	contiguous := true
	for i, pc := range patchRecords {
		if used[pc.ID] {
			survivors = append(survivors, pc.ID)
		} else {
			prune = append(prune, pc.ID)
		}
		if pc.Number != i+1 {
			contiguous = false
		}
	}
	if len(prune) == 0 && contiguous {
		return nil
	}

	if err := s.usageRepo.DeleteByPatchChannels(ctx, prune); err != nil {
		return fmt.Errorf("failed to prune usage: %w", err)
	}
	if err := s.patchRepo.Delete(ctx, prune); err != nil {
		return fmt.Errorf("failed to prune patch channels: %w", err)
	}
	if err := renumberPatch(ctx, s.patchRepo, survivors); err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"event_id": eventID,
		"pruned":   len(prune),
		"patch":    len(survivors),
	}).Info("patch reconciled")
	return nil
}

// ExportCSV writes the event's patch as a semicolon-delimited CSV: one row
// per numbered channel, one column per band carrying that band's label.
func (s *PatchServiceImpl) ExportCSV(ctx context.Context, eventID string, w io.Writer) error {
	matrix, err := s.Matrix(ctx, eventID)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	cw.Comma = ';'

	header := []string{"Ch", "Name", "Mic/DI", "Stand", "Notes"}
	for _, b := range matrix.Bands {
		header = append(header, b.Name)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range matrix.Rows {
		record := []string{
			strconv.Itoa(row.Number), row.ChannelName, row.Mic, row.Stand, row.Notes,
		}
		for _, cell := range row.Cells {
			if cell.Used {
				record = append(record, cell.Label)
			} else {
				record = append(record, "")
			}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func planRefs(records []*secondary.PatchChannelRecord) []corepatch.PatchChannelRef {
	refs := make([]corepatch.PatchChannelRef, len(records))
	for i, pc := range records {
		refs[i] = corepatch.PatchChannelRef{ID: pc.ID, ChannelID: pc.ChannelID, Number: pc.Number}
	}
	return refs
}

func usageRefs(records []*secondary.UsageRecord) []corepatch.UsageRef {
	refs := make([]corepatch.UsageRef, len(records))
	for i, u := range records {
		refs[i] = corepatch.UsageRef{
			BandID:         u.BandID,
			PatchChannelID: u.PatchChannelID,
			IsUsed:         u.IsUsed,
			Label:          u.Label,
		}
	}
	return refs
}

func recordToBand(record *secondary.BandRecord) *primary.Band {
	return &primary.Band{
		ID:        record.ID,
		EventID:   record.EventID,
		Name:      record.Name,
		SortOrder: record.SortOrder,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}
}

func sameOrder(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Ensure PatchServiceImpl implements the interface.
var _ primary.PatchService = (*PatchServiceImpl)(nil)
