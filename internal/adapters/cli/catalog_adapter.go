// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle argument parsing and output
// formatting, but delegate business logic to services.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/stagepatch/internal/ports/primary"
)

// CatalogAdapter is a thin adapter that translates CLI operations to
// CatalogService calls. It depends only on the CatalogService interface,
// enabling easy testing with mocks.
type CatalogAdapter struct {
	service primary.CatalogService
	out     io.Writer
}

// NewCatalogAdapter creates a new CatalogAdapter with the given service.
func NewCatalogAdapter(service primary.CatalogService, out io.Writer) *CatalogAdapter {
	return &CatalogAdapter{
		service: service,
		out:     out,
	}
}

// CreateCategory creates a new category.
func (a *CatalogAdapter) CreateCategory(ctx context.Context, name string, sortOrder int) error {
	category, err := a.service.CreateCategory(ctx, primary.CreateCategoryRequest{
		Name:      name,
		SortOrder: sortOrder,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Created category %s: %s\n", category.ID, category.Name)
	return nil
}

// ListCategories lists categories in patch order.
func (a *CatalogAdapter) ListCategories(ctx context.Context) error {
	categories, err := a.service.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("failed to list categories: %w", err)
	}

	if len(categories) == 0 {
		fmt.Fprintln(a.out, "No categories found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-10s %-6s %s\n", "ID", "ORDER", "NAME")
	fmt.Fprintln(a.out, "────────────────────────────────────────")
	for _, c := range categories {
		fmt.Fprintf(a.out, "%-10s %-6d %s\n", c.ID, c.SortOrder, c.Name)
	}
	fmt.Fprintln(a.out)

	return nil
}

// UpdateCategory updates a category's name and/or sort order.
func (a *CatalogAdapter) UpdateCategory(ctx context.Context, id string, name *string, sortOrder *int) error {
	if name == nil && sortOrder == nil {
		return fmt.Errorf("must specify at least --name or --order")
	}

	category, err := a.service.UpdateCategory(ctx, primary.UpdateCategoryRequest{
		ID:        id,
		Name:      name,
		SortOrder: sortOrder,
	})
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}

	fmt.Fprintf(a.out, "✓ Category %s updated\n", category.ID)
	return nil
}

// DeleteCategory deletes a category. Its channels become uncategorized.
func (a *CatalogAdapter) DeleteCategory(ctx context.Context, id string) error {
	if err := a.service.DeleteCategory(ctx, id); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Category %s deleted (channels kept, now uncategorized)\n", id)
	return nil
}

// CreateChannel creates a new catalog channel.
func (a *CatalogAdapter) CreateChannel(ctx context.Context, req primary.CreateChannelRequest) error {
	channel, err := a.service.CreateChannel(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Created channel %s: %s\n", channel.ID, channel.Name)
	return nil
}

// ListChannels lists channels in catalog order.
func (a *CatalogAdapter) ListChannels(ctx context.Context, filters primary.ChannelFilters) error {
	channels, err := a.service.ListChannels(ctx, filters)
	if err != nil {
		return fmt.Errorf("failed to list channels: %w", err)
	}

	if len(channels) == 0 {
		fmt.Fprintln(a.out, "No channels found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-10s %-20s %-14s %-10s %s\n", "ID", "NAME", "CATEGORY", "MIC/DI", "STAND")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────")
	for _, c := range channels {
		categoryName := c.CategoryName
		if categoryName == "" {
			categoryName = "-"
		}
		name := c.Name
		if !c.IsActive {
			name += " (inactive)"
		}
		fmt.Fprintf(a.out, "%-10s %-20s %-14s %-10s %s\n", c.ID, name, categoryName, c.Mic, c.Stand)
	}
	fmt.Fprintln(a.out)

	return nil
}

// UpdateChannel updates a channel.
func (a *CatalogAdapter) UpdateChannel(ctx context.Context, req primary.UpdateChannelRequest) error {
	channel, err := a.service.UpdateChannel(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to update channel: %w", err)
	}

	fmt.Fprintf(a.out, "✓ Channel %s updated\n", channel.ID)
	return nil
}

// DeactivateChannel hides a channel from selection without deleting it.
func (a *CatalogAdapter) DeactivateChannel(ctx context.Context, id string) error {
	if err := a.service.DeactivateChannel(ctx, id); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Channel %s deactivated\n", id)
	return nil
}

// DeleteChannel removes a channel from the catalog.
func (a *CatalogAdapter) DeleteChannel(ctx context.Context, id string) error {
	if err := a.service.DeleteChannel(ctx, id); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Channel %s deleted\n", id)
	return nil
}
