package store

// schemaVersionV1 is the current discovery-results schema.
const schemaVersionV1 = 1

var schemaV1 = `
CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL);

CREATE TABLE IF NOT EXISTS runs (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at    TEXT NOT NULL,
	start_time    TEXT NOT NULL,
	end_time      TEXT NOT NULL,
	discovered_by TEXT NOT NULL,
	source        TEXT,
	path_count    INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS paths (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id        INTEGER NOT NULL REFERENCES runs(id),
	path_id       TEXT NOT NULL,
	name          TEXT NOT NULL,
	description   TEXT,
	services      TEXT NOT NULL,
	start_service TEXT NOT NULL,
	end_service   TEXT NOT NULL,
	request_count INTEGER NOT NULL,
	avg_latency   REAL NOT NULL,
	error_rate    REAL NOT NULL,
	p99_latency   REAL NOT NULL,
	priority      TEXT NOT NULL,
	severity      REAL NOT NULL,
	last_updated  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_paths_run ON paths(run_id);
`
