package db

// BaseSQL creates the tables every store needs. It runs on every start and
// is additive only: tables that already exist, even in an older shape, are
// left alone for the migration ladder to upgrade.
//
// reports keeps the legacy room column (1..floors*apts) so stores written
// before floor/apt existed can still be migrated.
const BaseSQL = `
CREATE TABLE IF NOT EXISTS schema_meta (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	version INTEGER NOT NULL
);

INSERT OR IGNORE INTO schema_meta (id, version) VALUES (1, 1);

CREATE TABLE IF NOT EXISTS reports (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	report_date TEXT NOT NULL,
	technician TEXT NOT NULL,
	created_at TEXT NOT NULL,
	floor INTEGER,
	apt INTEGER,
	room_code TEXT,
	room INTEGER
);

CREATE TABLE IF NOT EXISTS report_items (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	report_id INTEGER NOT NULL,
	item TEXT NOT NULL,
	status TEXT NOT NULL,
	note TEXT,
	FOREIGN KEY (report_id) REFERENCES reports(id)
);

CREATE TABLE IF NOT EXISTS general_maintenance (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	maint_date TEXT NOT NULL,
	place TEXT NOT NULL,
	description TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'Aberto',
	technician TEXT NOT NULL,
	note TEXT,
	created_at TEXT NOT NULL,
	resolved_at TEXT,
	resolved_by TEXT,
	resolution_note TEXT
);

CREATE INDEX IF NOT EXISTS idx_general_maintenance_date ON general_maintenance(maint_date);
CREATE INDEX IF NOT EXISTS idx_general_maintenance_status ON general_maintenance(status);

CREATE TABLE IF NOT EXISTS report_submissions (
	token TEXT PRIMARY KEY,
	issued_at TEXT NOT NULL,
	used_at TEXT,
	report_id INTEGER,
	FOREIGN KEY (report_id) REFERENCES reports(id)
);
`

// SchemaSQL is the schema a store has once the migration ladder has run to
// CurrentVersion. Tests build their stores from it; TestSchemaSQLMatchesLadder
// keeps it in sync with BaseSQL plus the migrations.
const SchemaSQL = `
CREATE TABLE IF NOT EXISTS schema_meta (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	version INTEGER NOT NULL
);

INSERT OR IGNORE INTO schema_meta (id, version) VALUES (1, 4);

CREATE TABLE IF NOT EXISTS reports (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	report_date TEXT NOT NULL,
	technician TEXT NOT NULL,
	created_at TEXT NOT NULL,
	floor INTEGER,
	apt INTEGER,
	room_code TEXT,
	room INTEGER
);

CREATE INDEX IF NOT EXISTS idx_reports_date ON reports(report_date);
CREATE INDEX IF NOT EXISTS idx_reports_roomcode ON reports(room_code);
CREATE INDEX IF NOT EXISTS idx_reports_floor_apt ON reports(floor, apt);

CREATE TABLE IF NOT EXISTS maintenance_items (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE COLLATE NOCASE,
	active INTEGER NOT NULL DEFAULT 1,
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_items_active ON maintenance_items(active);

CREATE TABLE IF NOT EXISTS report_items (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	report_id INTEGER NOT NULL,
	item TEXT NOT NULL,
	status TEXT NOT NULL,
	note TEXT,
	item_id INTEGER,
	resolved_at TEXT,
	resolved_by TEXT,
	resolution_note TEXT,
	FOREIGN KEY (report_id) REFERENCES reports(id)
);

CREATE INDEX IF NOT EXISTS idx_report_items_item_id ON report_items(item_id);
CREATE INDEX IF NOT EXISTS idx_report_items_resolved_at ON report_items(resolved_at);

CREATE TABLE IF NOT EXISTS general_maintenance (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	maint_date TEXT NOT NULL,
	place TEXT NOT NULL,
	description TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'Aberto',
	technician TEXT NOT NULL,
	note TEXT,
	created_at TEXT NOT NULL,
	resolved_at TEXT,
	resolved_by TEXT,
	resolution_note TEXT
);

CREATE INDEX IF NOT EXISTS idx_general_maintenance_date ON general_maintenance(maint_date);
CREATE INDEX IF NOT EXISTS idx_general_maintenance_status ON general_maintenance(status);

CREATE TABLE IF NOT EXISTS report_submissions (
	token TEXT PRIMARY KEY,
	issued_at TEXT NOT NULL,
	used_at TEXT,
	report_id INTEGER,
	FOREIGN KEY (report_id) REFERENCES reports(id)
);
`

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
