package app

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/example/stagepatch/internal/core/catalog"
	"github.com/example/stagepatch/internal/ports/primary"
	"github.com/example/stagepatch/internal/ports/secondary"
)

// CatalogServiceImpl implements the CatalogService interface.
type CatalogServiceImpl struct {
	categoryRepo secondary.CategoryRepository
	channelRepo  secondary.ChannelRepository
	log          *logrus.Logger
}

// NewCatalogService creates a new CatalogService with injected dependencies.
func NewCatalogService(
	categoryRepo secondary.CategoryRepository,
	channelRepo secondary.ChannelRepository,
	log *logrus.Logger,
) *CatalogServiceImpl {
	return &CatalogServiceImpl{
		categoryRepo: categoryRepo,
		channelRepo:  channelRepo,
		log:          log,
	}
}

// CreateCategory creates a new category.
func (s *CatalogServiceImpl) CreateCategory(ctx context.Context, req primary.CreateCategoryRequest) (*primary.Category, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("category name is required")
	}

	id, err := s.categoryRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate category ID: %w", err)
	}

	record := &secondary.CategoryRecord{ID: id, Name: req.Name, SortOrder: req.SortOrder}
	if err := s.categoryRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	created, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload category: %w", err)
	}
	return recordToCategory(created), nil
}

// ListCategories retrieves all categories in patch order: keyword ranking
// weight first, then the admin sort order.
func (s *CatalogServiceImpl) ListCategories(ctx context.Context) ([]*primary.Category, error) {
	records, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	byID := make(map[string]*secondary.CategoryRecord, len(records))
	inputs := make([]catalog.Category, len(records))
	for i, r := range records {
		byID[r.ID] = r
		inputs[i] = catalog.Category{ID: r.ID, Name: r.Name, SortOrder: r.SortOrder}
	}

	ordered := make([]*primary.Category, 0, len(records))
	for _, c := range catalog.OrderCategories(inputs) {
		ordered = append(ordered, recordToCategory(byID[c.ID]))
	}
	return ordered, nil
}

// UpdateCategory updates a category's name and/or sort order.
func (s *CatalogServiceImpl) UpdateCategory(ctx context.Context, req primary.UpdateCategoryRequest) (*primary.Category, error) {
	record, err := s.categoryRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		record.Name = *req.Name
	}
	if req.SortOrder != nil {
		record.SortOrder = *req.SortOrder
	}
	if record.Name == "" {
		return nil, fmt.Errorf("category name is required")
	}

	if err := s.categoryRepo.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return recordToCategory(record), nil
}

// DeleteCategory deletes a category. Its channels become uncategorized and
// keep working.
func (s *CatalogServiceImpl) DeleteCategory(ctx context.Context, id string) error {
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.WithField("category_id", id).Info("category deleted, channels uncategorized")
	return nil
}

// CreateChannel creates a new catalog channel.
func (s *CatalogServiceImpl) CreateChannel(ctx context.Context, req primary.CreateChannelRequest) (*primary.Channel, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("channel name is required")
	}
	if req.CategoryID != "" {
		if _, err := s.categoryRepo.GetByID(ctx, req.CategoryID); err != nil {
			return nil, err
		}
	}

	id, err := s.channelRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate channel ID: %w", err)
	}

	record := &secondary.ChannelRecord{
		ID:           id,
		Name:         req.Name,
		CategoryID:   req.CategoryID,
		DefaultOrder: req.DefaultOrder,
		Mic:          req.Mic,
		Stand:        req.Stand,
		Notes:        req.Notes,
		IsActive:     true,
	}
	if err := s.channelRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create channel: %w", err)
	}
	return s.recordToChannel(ctx, record)
}

// ListChannels retrieves channels in catalog order: ranked category position
// first, then the channel's default order. Uncategorized channels come last.
func (s *CatalogServiceImpl) ListChannels(ctx context.Context, filters primary.ChannelFilters) ([]*primary.Channel, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	records, err := s.channelRepo.List(ctx, secondary.ChannelFilters{
		ActiveOnly: !filters.IncludeInactive,
		CategoryID: filters.CategoryID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list channels: %w", err)
	}

	categoryInputs := make([]catalog.Category, len(categories))
	categoryNames := make(map[string]string, len(categories))
	for i, c := range categories {
		categoryInputs[i] = catalog.Category{ID: c.ID, Name: c.Name, SortOrder: c.SortOrder}
		categoryNames[c.ID] = c.Name
	}

	byID := make(map[string]*secondary.ChannelRecord, len(records))
	channelInputs := make([]catalog.Channel, len(records))
	for i, r := range records {
		byID[r.ID] = r
		channelInputs[i] = catalog.Channel{
			ID:           r.ID,
			Name:         r.Name,
			CategoryID:   r.CategoryID,
			DefaultOrder: r.DefaultOrder,
		}
	}

	ordered := make([]*primary.Channel, 0, len(records))
	for _, ch := range catalog.Order(channelInputs, categoryInputs) {
		record := byID[ch.ID]
		channel := channelFromRecord(record)
		channel.CategoryName = categoryNames[record.CategoryID]
		ordered = append(ordered, channel)
	}
	return ordered, nil
}

// UpdateChannel updates an existing channel.
func (s *CatalogServiceImpl) UpdateChannel(ctx context.Context, req primary.UpdateChannelRequest) (*primary.Channel, error) {
	record, err := s.channelRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		record.Name = *req.Name
	}
	if req.CategoryID != nil {
		if *req.CategoryID != "" {
			if _, err := s.categoryRepo.GetByID(ctx, *req.CategoryID); err != nil {
				return nil, err
			}
		}
		record.CategoryID = *req.CategoryID
	}
	if req.DefaultOrder != nil {
		record.DefaultOrder = *req.DefaultOrder
	}
	if req.Mic != nil {
		record.Mic = *req.Mic
	}
	if req.Stand != nil {
		record.Stand = *req.Stand
	}
	if req.Notes != nil {
		record.Notes = *req.Notes
	}
	if req.IsActive != nil {
		record.IsActive = *req.IsActive
	}
	if record.Name == "" {
		return nil, fmt.Errorf("channel name is required")
	}

	if err := s.channelRepo.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to update channel: %w", err)
	}
	return s.recordToChannel(ctx, record)
}

// DeactivateChannel hides a channel from selection without touching events
// that already patched it.
func (s *CatalogServiceImpl) DeactivateChannel(ctx context.Context, id string) error {
	record, err := s.channelRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	record.IsActive = false
	if err := s.channelRepo.Update(ctx, record); err != nil {
		return fmt.Errorf("failed to deactivate channel: %w", err)
	}
	return nil
}

// DeleteChannel removes a channel from the catalog.
func (s *CatalogServiceImpl) DeleteChannel(ctx context.Context, id string) error {
	return s.channelRepo.Delete(ctx, id)
}

func (s *CatalogServiceImpl) recordToChannel(ctx context.Context, record *secondary.ChannelRecord) (*primary.Channel, error) {
	channel := channelFromRecord(record)
	if record.CategoryID != "" {
		category, err := s.categoryRepo.GetByID(ctx, record.CategoryID)
		if err == nil {
			channel.CategoryName = category.Name
		}
	}
	return channel, nil
}

func channelFromRecord(record *secondary.ChannelRecord) *primary.Channel {
	return &primary.Channel{
		ID:           record.ID,
		Name:         record.Name,
		CategoryID:   record.CategoryID,
		DefaultOrder: record.DefaultOrder,
		Mic:          record.Mic,
		Stand:        record.Stand,
		Notes:        record.Notes,
		IsActive:     record.IsActive,
	}
}

func recordToCategory(record *secondary.CategoryRecord) *primary.Category {
	return &primary.Category{
		ID:        record.ID,
		Name:      record.Name,
		SortOrder: record.SortOrder,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}
}

// Ensure CatalogServiceImpl implements the interface.
var _ primary.CatalogService = (*CatalogServiceImpl)(nil)
