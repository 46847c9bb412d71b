// +build ignore

package main

import (
	"database/sql"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// One-off importer for legacy channel lists. Reads a semicolon-delimited
// CSV (name;category;mic;stand;notes) and inserts missing categories and
// channels into the stagepatch database.
//
// Usage: go run scripts/import_catalog_csv.go [-dry-run] channels.csv

func main() {
	dryRun := flag.Bool("dry-run", false, "Preview import without executing")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: import_catalog_csv [-dry-run] <file.csv>")
		os.Exit(1)
	}

	dbPath := os.Getenv("STAGEPATCH_DB")
	if dbPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home dir: %v\n", err)
			os.Exit(1)
		}
		dbPath = filepath.Join(homeDir, ".stagepatch", "stagepatch.db")
	}

	database, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening csv: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading csv: %v\n", err)
		os.Exit(1)
	}

	imported := 0
	for i, row := range rows {
		if len(row) == 0 || row[0] == "" || row[0] == "Name" {
			continue
		}
		name := row[0]
		category, mic, stand, notes := field(row, 1), field(row, 2), field(row, 3), field(row, 4)

		if *dryRun {
			fmt.Printf("would import %q (category %q)\n", name, category)
			imported++
			continue
		}

		categoryID, err := ensureCategory(database, category)
		if err != nil {
			fmt.Fprintf(os.Stderr, "row %d: %v\n", i+1, err)
			os.Exit(1)
		}
		if err := insertChannel(database, name, categoryID, i+1, mic, stand, notes); err != nil {
			fmt.Fprintf(os.Stderr, "row %d: %v\n", i+1, err)
			os.Exit(1)
		}
		imported++
	}

	fmt.Printf("✓ Imported %d channel(s)\n", imported)
}

func field(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func ensureCategory(database *sql.DB, name string) (string, error) {
	if name == "" {
		return "", nil
	}

	var id string
	err := database.QueryRow("SELECT id FROM categories WHERE name = ?", name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return "", err
	}

	err = database.QueryRow(
		"SELECT 'CAT-' || printf('%03d', COALESCE(MAX(CAST(SUBSTR(id, 5) AS INTEGER)), 0) + 1) FROM categories",
	).Scan(&id)
	if err != nil {
		return "", err
	}
	_, err = database.Exec("INSERT INTO categories (id, name, sort_order) VALUES (?, ?, 0)", id, name)
	return id, err
}

func insertChannel(database *sql.DB, name, categoryID string, order int, mic, stand, notes string) error {
	var id string
	err := database.QueryRow(
		"SELECT 'CH-' || printf('%03d', COALESCE(MAX(CAST(SUBSTR(id, 4) AS INTEGER)), 0) + 1) FROM channels",
	).Scan(&id)
	if err != nil {
		return err
	}

	var cat interface{}
	if categoryID != "" {
		cat = categoryID
	}
	_, err = database.Exec(
		"INSERT INTO channels (id, name, category_id, default_order, mic, stand, notes, is_active) VALUES (?, ?, ?, ?, ?, ?, ?, 1)",
		id, name, cat, order, mic, stand, notes,
	)
	return err
}
