// Package sqlite_test contains integration tests for SQLite repositories.
//
// All test databases are built from db.GetSchemaSQL(), the authoritative
// schema, so repository code referencing a missing column fails here with
// "no such column" instead of drifting.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/stagepatch/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if _, err := testDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedCategory inserts a test category and returns its ID.
func seedCategory(t *testing.T, db *sql.DB, id, name string, sortOrder int) string {
	t.Helper()
	if id == "" {
		id = "CAT-001"
	}
	if name == "" {
		name = "Drums"
	}
	_, err := db.Exec("INSERT INTO categories (id, name, sort_order) VALUES (?, ?, ?)", id, name, sortOrder)
	if err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}
	return id
}

// seedChannel inserts a test channel and returns its ID.
func seedChannel(t *testing.T, db *sql.DB, id, name, categoryID string, order int) string {
	t.Helper()
	if id == "" {
		id = "CH-001"
	}
	if name == "" {
		name = "Kick In"
	}
	var cat any
	if categoryID != "" {
		cat = categoryID
	}
	_, err := db.Exec(
		"INSERT INTO channels (id, name, category_id, default_order, is_active) VALUES (?, ?, ?, ?, 1)",
		id, name, cat, order,
	)
	if err != nil {
		t.Fatalf("failed to seed channel: %v", err)
	}
	return id
}

// seedEvent inserts a test event and returns its ID.
func seedEvent(t *testing.T, db *sql.DB, id, name string) string {
	t.Helper()
	if id == "" {
		id = "EVT-001"
	}
	if name == "" {
		name = "Test Festival"
	}
	_, err := db.Exec("INSERT INTO events (id, name) VALUES (?, ?)", id, name)
	if err != nil {
		t.Fatalf("failed to seed event: %v", err)
	}
	return id
}

// seedBand inserts a test band and returns its ID.
func seedBand(t *testing.T, db *sql.DB, id, eventID, name string, sortOrder int) string {
	t.Helper()
	if id == "" {
		id = "BAND-001"
	}
	if eventID == "" {
		eventID = "EVT-001"
	}
	if name == "" {
		name = "Test Band"
	}
	_, err := db.Exec("INSERT INTO bands (id, event_id, name, sort_order) VALUES (?, ?, ?, ?)", id, eventID, name, sortOrder)
	if err != nil {
		t.Fatalf("failed to seed band: %v", err)
	}
	return id
}

// seedPatchChannel inserts a test patch channel and returns its ID.
func seedPatchChannel(t *testing.T, db *sql.DB, id, eventID, channelID string, number int) string {
	t.Helper()
	_, err := db.Exec(
		"INSERT INTO patch_channels (id, event_id, channel_id, channel_number) VALUES (?, ?, ?, ?)",
		id, eventID, channelID, number,
	)
	if err != nil {
		t.Fatalf("failed to seed patch channel: %v", err)
	}
	return id
}
