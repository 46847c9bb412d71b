package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/example/stagepatch/internal/ports/secondary"
)

// CategoryRepository implements secondary.CategoryRepository with PostgreSQL.
type CategoryRepository struct {
	db *pgxpool.Pool
}

// NewCategoryRepository creates a new PostgreSQL category repository.
func NewCategoryRepository(db *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func scanCategory(scan func(...any) error) (*secondary.CategoryRecord, error) {
	record := &secondary.CategoryRecord{}
	var createdAt, updatedAt time.Time
	if err := scan(&record.ID, &record.Name, &record.SortOrder, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)
	return record, nil
}

// Create persists a new category.
func (r *CategoryRepository) Create(ctx context.Context, category *secondary.CategoryRecord) error {
	_, err := r.db.Exec(ctx,
		"INSERT INTO categories (id, name, sort_order) VALUES ($1, $2, $3)",
		category.ID, category.Name, category.SortOrder,
	)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// GetByID retrieves a category by its ID.
func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*secondary.CategoryRecord, error) {
	row := r.db.QueryRow(ctx,
		"SELECT id, name, sort_order, created_at, updated_at FROM categories WHERE id = $1", id)

	record, err := scanCategory(row.Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("category %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return record, nil
}

// List retrieves all categories ordered by sort order.
func (r *CategoryRepository) List(ctx context.Context) ([]*secondary.CategoryRecord, error) {
	rows, err := r.db.Query(ctx,
		"SELECT id, name, sort_order, created_at, updated_at FROM categories ORDER BY sort_order ASC, name ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []*secondary.CategoryRecord
	for rows.Next() {
		record, err := scanCategory(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, record)
	}
	return categories, rows.Err()
}

// Update updates a category's name and sort order.
func (r *CategoryRepository) Update(ctx context.Context, category *secondary.CategoryRecord) error {
	tag, err := r.db.Exec(ctx,
		"UPDATE categories SET name = $1, sort_order = $2, updated_at = now() WHERE id = $3",
		category.Name, category.SortOrder, category.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("category %s: %w", category.ID, secondary.ErrNotFound)
	}
	return nil
}

// Delete removes a category. Its channels become uncategorized.
func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM categories WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("category %s: %w", id, secondary.ErrNotFound)
	}
	return nil
}

// GetNextID returns the next available category ID.
func (r *CategoryRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRow(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 5) AS INTEGER)), 0) FROM categories",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next category ID: %w", err)
	}
	return fmt.Sprintf("CAT-%03d", maxID+1), nil
}

// Ensure CategoryRepository implements the interface.
var _ secondary.CategoryRepository = (*CategoryRepository)(nil)
