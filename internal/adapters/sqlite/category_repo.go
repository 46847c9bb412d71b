// Package sqlite contains SQLite implementations of the repository
// interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/stagepatch/internal/ports/secondary"
)

// CategoryRepository implements secondary.CategoryRepository with SQLite.
type CategoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a new SQLite category repository.
func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create persists a new category.
func (r *CategoryRepository) Create(ctx context.Context, category *secondary.CategoryRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO categories (id, name, sort_order) VALUES (?, ?, ?)",
		category.ID, category.Name, category.SortOrder,
	)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// GetByID retrieves a category by its ID.
func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*secondary.CategoryRecord, error) {
	record := &secondary.CategoryRecord{}
	var createdAt, updatedAt time.Time
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, sort_order, created_at, updated_at FROM categories WHERE id = ?",
		id,
	).Scan(&record.ID, &record.Name, &record.SortOrder, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("category %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)
	return record, nil
}

// List retrieves all categories ordered by admin sort order.
func (r *CategoryRepository) List(ctx context.Context) ([]*secondary.CategoryRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, sort_order, created_at, updated_at FROM categories ORDER BY sort_order ASC, name ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []*secondary.CategoryRecord
	for rows.Next() {
		record := &secondary.CategoryRecord{}
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&record.ID, &record.Name, &record.SortOrder, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		record.CreatedAt = createdAt.Format(time.RFC3339)
		record.UpdatedAt = updatedAt.Format(time.RFC3339)
		categories = append(categories, record)
	}
	return categories, nil
}

// Update updates a category's name and sort order.
func (r *CategoryRepository) Update(ctx context.Context, category *secondary.CategoryRecord) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE categories SET name = ?, sort_order = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		category.Name, category.SortOrder, category.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("category %s: %w", category.ID, secondary.ErrNotFound)
	}
	return nil
}

// Delete removes a category from persistence.
func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM categories WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("category %s: %w", id, secondary.ErrNotFound)
	}
	return nil
}

// GetNextID returns the next available category ID.
func (r *CategoryRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 5) AS INTEGER)), 0) FROM categories",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next category ID: %w", err)
	}
	return fmt.Sprintf("CAT-%03d", maxID+1), nil
}

// Ensure CategoryRepository implements the interface.
var _ secondary.CategoryRepository = (*CategoryRepository)(nil)
