package db

// SchemaSQL is the complete schema for fresh installs.
//
// This is the single source of truth for the database schema. Repository
// tests build their :memory: databases from GetSchemaSQL(), so a repository
// referencing a column missing here fails immediately with "no such column"
// instead of drifting.
//
// Keep in sync with migrations when adding columns or tables.
const SchemaSQL = `
-- Categories (global reference data, admin-ordered channel groupings)
CREATE TABLE IF NOT EXISTS categories (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	sort_order INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Channels (global catalog of reusable audio sources)
CREATE TABLE IF NOT EXISTS channels (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	category_id TEXT,
	default_order INTEGER NOT NULL DEFAULT 0,
	mic TEXT,
	stand TEXT,
	notes TEXT,
	is_active INTEGER NOT NULL DEFAULT 1,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (category_id) REFERENCES categories(id) ON DELETE SET NULL
);

-- Events (top-level patch containers)
CREATE TABLE IF NOT EXISTS events (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	event_date TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Bands (groups performing at an event, in creation order)
CREATE TABLE IF NOT EXISTS bands (
	id TEXT PRIMARY KEY,
	event_id TEXT NOT NULL,
	name TEXT NOT NULL,
	sort_order INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (event_id) REFERENCES events(id) ON DELETE CASCADE
);

-- Patch channels (the event's shared numbered patch).
-- channel_number is unique per event and checked per statement, which is
-- why renumbering runs in two phases.
CREATE TABLE IF NOT EXISTS patch_channels (
	id TEXT PRIMARY KEY,
	event_id TEXT NOT NULL,
	channel_id TEXT NOT NULL,
	channel_number INTEGER NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (event_id) REFERENCES events(id) ON DELETE CASCADE,
	FOREIGN KEY (channel_id) REFERENCES channels(id),
	UNIQUE(event_id, channel_number),
	UNIQUE(event_id, channel_id)
);

-- Usage rows (which band uses which patch channel, under what label)
CREATE TABLE IF NOT EXISTS band_channel_usage (
	id TEXT PRIMARY KEY,
	band_id TEXT NOT NULL,
	patch_channel_id TEXT NOT NULL,
	is_used INTEGER NOT NULL DEFAULT 1,
	label TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (band_id) REFERENCES bands(id) ON DELETE CASCADE,
	FOREIGN KEY (patch_channel_id) REFERENCES patch_channels(id) ON DELETE CASCADE,
	UNIQUE(band_id, patch_channel_id)
);

-- Migration tracking
CREATE TABLE IF NOT EXISTS schema_migrations (
	version INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
func GetSchemaSQL() string {
	return SchemaSQL
}
