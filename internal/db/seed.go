package db

import (
	"database/sql"
	"fmt"
	"time"
)

// SeedFixtures populates the catalog with a standard festival channel list.
// Safe to run once against an empty database.
func SeedFixtures(database *sql.DB) error {
	now := time.Now().Format(time.RFC3339)

	categories := []struct {
		id, name  string
		sortOrder int
	}{
		{"CAT-001", "Drums", 1},
		{"CAT-002", "Percussion", 2},
		{"CAT-003", "Bass", 3},
		{"CAT-004", "Guitars", 4},
		{"CAT-005", "Keys", 5},
		{"CAT-006", "Misc", 6},
		{"CAT-007", "Vocals", 7},
	}
	for _, c := range categories {
		if _, err := database.Exec(
			"INSERT INTO categories (id, name, sort_order, created_at) VALUES (?, ?, ?, ?)",
			c.id, c.name, c.sortOrder, now,
		); err != nil {
			return fmt.Errorf("seed categories: %w", err)
		}
	}

	channels := []struct {
		id, name, categoryID string
		order                int
		mic, stand           string
	}{
		{"CH-001", "Kick In", "CAT-001", 1, "Beta 91", ""},
		{"CH-002", "Kick Out", "CAT-001", 2, "Beta 52", "short"},
		{"CH-003", "Snare Top", "CAT-001", 3, "SM57", "short"},
		{"CH-004", "Snare Bottom", "CAT-001", 4, "e604", "clip"},
		{"CH-005", "Hi-Hat", "CAT-001", 5, "SM81", "short"},
		{"CH-006", "Tom 1", "CAT-001", 6, "e604", "clip"},
		{"CH-007", "Tom 2", "CAT-001", 7, "e604", "clip"},
		{"CH-008", "Overhead L", "CAT-001", 8, "KM184", "tall"},
		{"CH-009", "Overhead R", "CAT-001", 9, "KM184", "tall"},
		{"CH-010", "Congas", "CAT-002", 1, "e604", "clip"},
		{"CH-011", "Bass DI", "CAT-003", 1, "DI", ""},
		{"CH-012", "Bass Mic", "CAT-003", 2, "Beta 52", "short"},
		{"CH-013", "Guitar Amp SR", "CAT-004", 1, "SM57", "short"},
		{"CH-014", "Guitar Amp SL", "CAT-004", 2, "SM57", "short"},
		{"CH-015", "Acoustic DI", "CAT-004", 3, "DI", ""},
		{"CH-016", "Keys L", "CAT-005", 1, "DI", ""},
		{"CH-017", "Keys R", "CAT-005", 2, "DI", ""},
		{"CH-018", "Playback L", "CAT-006", 1, "DI", ""},
		{"CH-019", "Playback R", "CAT-006", 2, "DI", ""},
		{"CH-020", "Lead Vox", "CAT-007", 1, "SM58", "tall"},
		{"CH-021", "Backing Vox 1", "CAT-007", 2, "SM58", "tall"},
		{"CH-022", "Backing Vox 2", "CAT-007", 3, "SM58", "tall"},
	}
	for _, ch := range channels {
		if _, err := database.Exec(
			"INSERT INTO channels (id, name, category_id, default_order, mic, stand, is_active, created_at) VALUES (?, ?, ?, ?, ?, ?, 1, ?)",
			ch.id, ch.name, ch.categoryID, ch.order, ch.mic, ch.stand, now,
		); err != nil {
			return fmt.Errorf("seed channels: %w", err)
		}
	}

	return nil
}
