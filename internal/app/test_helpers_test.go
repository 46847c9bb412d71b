package app

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/example/stagepatch/internal/ports/secondary"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// ============================================================================
// Mock Implementations
// ============================================================================

// Ensure mocks implement the interfaces
var (
	_ secondary.CategoryRepository     = (*mockCategoryRepository)(nil)
	_ secondary.ChannelRepository      = (*mockChannelRepository)(nil)
	_ secondary.EventRepository        = (*mockEventRepository)(nil)
	_ secondary.BandRepository         = (*mockBandRepository)(nil)
	_ secondary.PatchChannelRepository = (*mockPatchChannelRepository)(nil)
	_ secondary.UsageRepository        = (*mockUsageRepository)(nil)
)

// mockCategoryRepository implements secondary.CategoryRepository for testing.
type mockCategoryRepository struct {
	categories map[string]*secondary.CategoryRecord
	nextID     int
}

func newMockCategoryRepository() *mockCategoryRepository {
	return &mockCategoryRepository{categories: make(map[string]*secondary.CategoryRecord)}
}

func (m *mockCategoryRepository) Create(ctx context.Context, category *secondary.CategoryRecord) error {
	m.categories[category.ID] = category
	return nil
}

func (m *mockCategoryRepository) GetByID(ctx context.Context, id string) (*secondary.CategoryRecord, error) {
	if c, ok := m.categories[id]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("category %s: %w", id, secondary.ErrNotFound)
}

func (m *mockCategoryRepository) List(ctx context.Context) ([]*secondary.CategoryRecord, error) {
	var out []*secondary.CategoryRecord
	for _, c := range m.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (m *mockCategoryRepository) Update(ctx context.Context, category *secondary.CategoryRecord) error {
	if _, ok := m.categories[category.ID]; !ok {
		return fmt.Errorf("category %s: %w", category.ID, secondary.ErrNotFound)
	}
	m.categories[category.ID] = category
	return nil
}

func (m *mockCategoryRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.categories[id]; !ok {
		return fmt.Errorf("category %s: %w", id, secondary.ErrNotFound)
	}
	delete(m.categories, id)
	return nil
}

func (m *mockCategoryRepository) GetNextID(ctx context.Context) (string, error) {
	m.nextID++
	return fmt.Sprintf("CAT-%03d", m.nextID), nil
}

// mockChannelRepository implements secondary.ChannelRepository for testing.
// Channels are kept in insertion order so catalog sorting stays stable.
type mockChannelRepository struct {
	channels []*secondary.ChannelRecord
	nextID   int
}

func newMockChannelRepository() *mockChannelRepository {
	return &mockChannelRepository{}
}

func (m *mockChannelRepository) Create(ctx context.Context, channel *secondary.ChannelRecord) error {
	m.channels = append(m.channels, channel)
	return nil
}

func (m *mockChannelRepository) GetByID(ctx context.Context, id string) (*secondary.ChannelRecord, error) {
	for _, c := range m.channels {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, fmt.Errorf("channel %s: %w", id, secondary.ErrNotFound)
}

func (m *mockChannelRepository) List(ctx context.Context, filters secondary.ChannelFilters) ([]*secondary.ChannelRecord, error) {
	var out []*secondary.ChannelRecord
	for _, c := range m.channels {
		if filters.ActiveOnly && !c.IsActive {
			continue
		}
		if filters.CategoryID != "" && c.CategoryID != filters.CategoryID {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (m *mockChannelRepository) Update(ctx context.Context, channel *secondary.ChannelRecord) error {
	for i, c := range m.channels {
		if c.ID == channel.ID {
			m.channels[i] = channel
			return nil
		}
	}
	return fmt.Errorf("channel %s: %w", channel.ID, secondary.ErrNotFound)
}

func (m *mockChannelRepository) Delete(ctx context.Context, id string) error {
	for i, c := range m.channels {
		if c.ID == id {
			m.channels = append(m.channels[:i], m.channels[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("channel %s: %w", id, secondary.ErrNotFound)
}

func (m *mockChannelRepository) GetNextID(ctx context.Context) (string, error) {
	m.nextID++
	return fmt.Sprintf("CH-%03d", m.nextID), nil
}

// mockEventRepository implements secondary.EventRepository for testing.
type mockEventRepository struct {
	events map[string]*secondary.EventRecord
	nextID int
}

func newMockEventRepository() *mockEventRepository {
	return &mockEventRepository{events: make(map[string]*secondary.EventRecord)}
}

func (m *mockEventRepository) Create(ctx context.Context, event *secondary.EventRecord) error {
	m.events[event.ID] = event
	return nil
}

func (m *mockEventRepository) GetByID(ctx context.Context, id string) (*secondary.EventRecord, error) {
	if e, ok := m.events[id]; ok {
		return e, nil
	}
	return nil, fmt.Errorf("event %s: %w", id, secondary.ErrNotFound)
}

func (m *mockEventRepository) List(ctx context.Context) ([]*secondary.EventRecord, error) {
	var out []*secondary.EventRecord
	for _, e := range m.events {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *mockEventRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.events[id]; !ok {
		return fmt.Errorf("event %s: %w", id, secondary.ErrNotFound)
	}
	delete(m.events, id)
	return nil
}

func (m *mockEventRepository) GetNextID(ctx context.Context) (string, error) {
	m.nextID++
	return fmt.Sprintf("EVT-%03d", m.nextID), nil
}

// mockBandRepository implements secondary.BandRepository for testing. A
// logical clock stands in for updated_at so baseline ordering is exact.
type mockBandRepository struct {
	bands    map[string]*secondary.BandRecord
	touchSeq map[string]int
	clock    int
	nextID   int
}

func newMockBandRepository() *mockBandRepository {
	return &mockBandRepository{
		bands:    make(map[string]*secondary.BandRecord),
		touchSeq: make(map[string]int),
	}
}

func (m *mockBandRepository) Create(ctx context.Context, band *secondary.BandRecord) error {
	m.bands[band.ID] = band
	m.clock++
	m.touchSeq[band.ID] = m.clock
	return nil
}

func (m *mockBandRepository) GetByID(ctx context.Context, id string) (*secondary.BandRecord, error) {
	if b, ok := m.bands[id]; ok {
		return b, nil
	}
	return nil, fmt.Errorf("band %s: %w", id, secondary.ErrNotFound)
}

func (m *mockBandRepository) ListByEvent(ctx context.Context, eventID string) ([]*secondary.BandRecord, error) {
	var out []*secondary.BandRecord
	for _, b := range m.bands {
		if b.EventID == eventID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (m *mockBandRepository) UpdateName(ctx context.Context, id, name string) error {
	b, ok := m.bands[id]
	if !ok {
		return fmt.Errorf("band %s: %w", id, secondary.ErrNotFound)
	}
	b.Name = name
	m.clock++
	m.touchSeq[id] = m.clock
	return nil
}

func (m *mockBandRepository) Touch(ctx context.Context, id string) error {
	if _, ok := m.bands[id]; !ok {
		return fmt.Errorf("band %s: %w", id, secondary.ErrNotFound)
	}
	m.clock++
	m.touchSeq[id] = m.clock
	return nil
}

func (m *mockBandRepository) GetMostRecentlyUpdated(ctx context.Context, eventID string) (*secondary.BandRecord, error) {
	var latest *secondary.BandRecord
	for _, b := range m.bands {
		if b.EventID != eventID {
			continue
		}
		if latest == nil || m.touchSeq[b.ID] > m.touchSeq[latest.ID] {
			latest = b
		}
	}
	return latest, nil
}

func (m *mockBandRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.bands[id]; !ok {
		return fmt.Errorf("band %s: %w", id, secondary.ErrNotFound)
	}
	delete(m.bands, id)
	return nil
}

func (m *mockBandRepository) GetNextID(ctx context.Context) (string, error) {
	m.nextID++
	return fmt.Sprintf("BAND-%03d", m.nextID), nil
}

// mockPatchChannelRepository implements secondary.PatchChannelRepository for
// testing. It enforces the per-statement unique (event, number) constraint
// exactly like the real store, so renumbering order matters here too.
type mockPatchChannelRepository struct {
	rows   []*secondary.PatchChannelRecord
	nextID int
}

func newMockPatchChannelRepository() *mockPatchChannelRepository {
	return &mockPatchChannelRepository{}
}

func (m *mockPatchChannelRepository) numberTaken(eventID string, number int, exceptID string) bool {
	for _, r := range m.rows {
		if r.EventID == eventID && r.Number == number && r.ID != exceptID {
			return true
		}
	}
	return false
}

func (m *mockPatchChannelRepository) CreateBatch(ctx context.Context, rows []*secondary.PatchChannelRecord) error {
	for _, row := range rows {
		if m.numberTaken(row.EventID, row.Number, row.ID) {
			return fmt.Errorf("UNIQUE constraint failed: patch_channels.channel_number (%d)", row.Number)
		}
		m.rows = append(m.rows, row)
	}
	return nil
}

func (m *mockPatchChannelRepository) ListByEvent(ctx context.Context, eventID string) ([]*secondary.PatchChannelRecord, error) {
	var out []*secondary.PatchChannelRecord
	for _, r := range m.rows {
		if r.EventID == eventID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (m *mockPatchChannelRepository) UpdateNumber(ctx context.Context, id string, number int) error {
	for _, r := range m.rows {
		if r.ID != id {
			continue
		}
		if m.numberTaken(r.EventID, number, id) {
			return fmt.Errorf("UNIQUE constraint failed: patch_channels.channel_number (%d)", number)
		}
		r.Number = number
		return nil
	}
	return fmt.Errorf("patch channel %s: %w", id, secondary.ErrNotFound)
}

func (m *mockPatchChannelRepository) Delete(ctx context.Context, ids []string) error {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	var kept []*secondary.PatchChannelRecord
	for _, r := range m.rows {
		if !drop[r.ID] {
			kept = append(kept, r)
		}
	}
	m.rows = kept
	return nil
}

func (m *mockPatchChannelRepository) GetNextID(ctx context.Context) (string, error) {
	m.nextID++
	return fmt.Sprintf("PC-%03d", m.nextID), nil
}

// mockUsageRepository implements secondary.UsageRepository for testing.
type mockUsageRepository struct {
	rows     []*secondary.UsageRecord
	bandRepo *mockBandRepository
}

func newMockUsageRepository(bandRepo *mockBandRepository) *mockUsageRepository {
	return &mockUsageRepository{bandRepo: bandRepo}
}

func (m *mockUsageRepository) ListByEvent(ctx context.Context, eventID string) ([]*secondary.UsageRecord, error) {
	var out []*secondary.UsageRecord
	for _, r := range m.rows {
		if b, ok := m.bandRepo.bands[r.BandID]; ok && b.EventID == eventID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockUsageRepository) ListByBand(ctx context.Context, bandID string) ([]*secondary.UsageRecord, error) {
	var out []*secondary.UsageRecord
	for _, r := range m.rows {
		if r.BandID == bandID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockUsageRepository) Upsert(ctx context.Context, row *secondary.UsageRecord) error {
	for i, r := range m.rows {
		if r.BandID == row.BandID && r.PatchChannelID == row.PatchChannelID {
			m.rows[i] = row
			return nil
		}
	}
	m.rows = append(m.rows, row)
	return nil
}

func (m *mockUsageRepository) DeleteByBand(ctx context.Context, bandID string) error {
	var kept []*secondary.UsageRecord
	for _, r := range m.rows {
		if r.BandID != bandID {
			kept = append(kept, r)
		}
	}
	m.rows = kept
	return nil
}

func (m *mockUsageRepository) DeleteByPatchChannels(ctx context.Context, patchChannelIDs []string) error {
	drop := make(map[string]bool, len(patchChannelIDs))
	for _, id := range patchChannelIDs {
		drop[id] = true
	}
	var kept []*secondary.UsageRecord
	for _, r := range m.rows {
		if !drop[r.PatchChannelID] {
			kept = append(kept, r)
		}
	}
	m.rows = kept
	return nil
}

// ============================================================================
// Fixtures
// ============================================================================

// patchFixture bundles a PatchService with its mock repositories.
type patchFixture struct {
	eventRepo   *mockEventRepository
	bandRepo    *mockBandRepository
	channelRepo *mockChannelRepository
	patchRepo   *mockPatchChannelRepository
	usageRepo   *mockUsageRepository
	service     *PatchServiceImpl
}

func newPatchFixture() *patchFixture {
	f := &patchFixture{
		eventRepo:   newMockEventRepository(),
		bandRepo:    newMockBandRepository(),
		channelRepo: newMockChannelRepository(),
		patchRepo:   newMockPatchChannelRepository(),
	}
	f.usageRepo = newMockUsageRepository(f.bandRepo)
	f.service = NewPatchService(f.eventRepo, f.bandRepo, f.channelRepo, f.patchRepo, f.usageRepo, newTestLogger())

	f.eventRepo.events["EVT-001"] = &secondary.EventRecord{ID: "EVT-001", Name: "Summer Fest"}
	for i, name := range []string{"Kick In", "Snare Top", "Bass DI", "Guitar L", "Lead Vox"} {
		f.channelRepo.channels = append(f.channelRepo.channels, &secondary.ChannelRecord{
			ID:           fmt.Sprintf("CH-%03d", i+1),
			Name:         name,
			DefaultOrder: i + 1,
			IsActive:     true,
		})
	}
	return f
}

// patchNumbers returns the event's patch as channelID -> number.
func (f *patchFixture) patchNumbers(eventID string) map[string]int {
	out := make(map[string]int)
	for _, r := range f.patchRepo.rows {
		if r.EventID == eventID {
			out[r.ChannelID] = r.Number
		}
	}
	return out
}
