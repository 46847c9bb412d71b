// Package primary defines the primary ports (driving adapters) for the
// application. CLI and HTTP adapters depend on these interfaces, never on
// the app implementations directly.
package primary

import "context"

// CatalogService manages the global reference data: categories and channels.
type CatalogService interface {
	// CreateCategory creates a new category.
	CreateCategory(ctx context.Context, req CreateCategoryRequest) (*Category, error)

	// ListCategories retrieves all categories in patch order (ranking
	// weight, then admin sort order).
	ListCategories(ctx context.Context) ([]*Category, error)

	// UpdateCategory updates a category's name and/or sort order.
	UpdateCategory(ctx context.Context, req UpdateCategoryRequest) (*Category, error)

	// DeleteCategory deletes a category; its channels become uncategorized.
	DeleteCategory(ctx context.Context, id string) error

	// CreateChannel creates a new catalog channel.
	CreateChannel(ctx context.Context, req CreateChannelRequest) (*Channel, error)

	// ListChannels retrieves channels in catalog order.
	ListChannels(ctx context.Context, filters ChannelFilters) ([]*Channel, error)

	// UpdateChannel updates an existing channel.
	UpdateChannel(ctx context.Context, req UpdateChannelRequest) (*Channel, error)

	// DeactivateChannel hides a channel from selection without deleting it.
	DeactivateChannel(ctx context.Context, id string) error

	// DeleteChannel removes a channel from the catalog.
	DeleteChannel(ctx context.Context, id string) error
}

// Category is a channel grouping as exposed to adapters.
type Category struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// Channel is a catalog channel as exposed to adapters.
type Channel struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	CategoryID   string `json:"category_id,omitempty"`
	CategoryName string `json:"category_name,omitempty"`
	DefaultOrder int    `json:"default_order"`
	Mic          string `json:"mic,omitempty"`
	Stand        string `json:"stand,omitempty"`
	Notes        string `json:"notes,omitempty"`
	IsActive     bool   `json:"is_active"`
}

// CreateCategoryRequest contains the data needed to create a category.
type CreateCategoryRequest struct {
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
}

// UpdateCategoryRequest contains a category update. Nil fields are left
// unchanged.
type UpdateCategoryRequest struct {
	ID        string  `json:"id"`
	Name      *string `json:"name,omitempty"`
	SortOrder *int    `json:"sort_order,omitempty"`
}

// CreateChannelRequest contains the data needed to create a channel.
type CreateChannelRequest struct {
	Name         string `json:"name"`
	CategoryID   string `json:"category_id,omitempty"`
	DefaultOrder int    `json:"default_order"`
	Mic          string `json:"mic,omitempty"`
	Stand        string `json:"stand,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// UpdateChannelRequest contains a channel update. Nil fields are left
// unchanged.
type UpdateChannelRequest struct {
	ID           string  `json:"id"`
	Name         *string `json:"name,omitempty"`
	CategoryID   *string `json:"category_id,omitempty"`
	DefaultOrder *int    `json:"default_order,omitempty"`
	Mic          *string `json:"mic,omitempty"`
	Stand        *string `json:"stand,omitempty"`
	Notes        *string `json:"notes,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
}

// ChannelFilters contains filter options for listing channels.
type ChannelFilters struct {
	IncludeInactive bool
	CategoryID      string
}
