package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migration represents a database migration.
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.DB) error
}

// migrations is the list of all migrations in order.
var migrations = []Migration{
	{
		Version: 1,
		Name:    "add_mic_stand_notes_to_channels",
		Up:      migrationV1,
	},
}

// RunMigrations applies all migrations newer than the recorded version.
func RunMigrations(database *sql.DB) error {
	var current int
	err := database.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&current)
	if err != nil {
		return fmt.Errorf("failed to read migration version: %w", err)
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}
		if err := m.Up(database); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Name, err)
		}
		if _, err := database.Exec(
			"INSERT INTO schema_migrations (version, name) VALUES (?, ?)",
			m.Version, m.Name,
		); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}
	}

	return nil
}

// migrationV1 backfills the mic/stand/notes columns on databases created
// before they were part of the base schema. Fresh installs already have
// them, so duplicate-column errors are ignored.
func migrationV1(database *sql.DB) error {
	for _, col := range []string{"mic", "stand", "notes"} {
		_, err := database.Exec("ALTER TABLE channels ADD COLUMN " + col + " TEXT")
		if err != nil && !isDuplicateColumn(err) {
			return err
		}
	}
	return nil
}

func isDuplicateColumn(err error) bool {
	return err != nil && strings.Contains(err.Error(), "duplicate column name")
}
