package snapshot

// Schema contains the DDL for the snapshot tables.
const Schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	id             TEXT PRIMARY KEY,
	html           TEXT NOT NULL,
	selection_json TEXT NOT NULL DEFAULT '',
	is_dark_mode   INTEGER NOT NULL DEFAULT 0,
	created_at     INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_snapshots_created_at ON snapshots(created_at DESC);
`
