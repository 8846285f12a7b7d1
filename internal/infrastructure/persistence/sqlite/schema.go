package sqlite

import (
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// Timestamps are stored as Unix nanoseconds; zero means "not set".
// Money columns hold decimal strings to avoid float drift.
const schema = `
CREATE TABLE IF NOT EXISTS scans (
	id              TEXT PRIMARY KEY,
	regions         TEXT NOT NULL,
	status          TEXT NOT NULL,
	started_at      INTEGER NOT NULL,
	completed_at    INTEGER NOT NULL DEFAULT 0,
	total_resources INTEGER NOT NULL DEFAULT 0,
	counts_by_tier  TEXT NOT NULL DEFAULT '{}',
	monthly_savings TEXT NOT NULL DEFAULT '0'
);

CREATE INDEX IF NOT EXISTS idx_scans_started ON scans(started_at DESC);

CREATE TABLE IF NOT EXISTS resource_assessments (
	id            TEXT PRIMARY KEY,
	-- No FK to scans: ad-hoc assessments carry a synthetic scan id
	-- with no scans row behind it.
	scan_id       TEXT NOT NULL,
	resource_id   TEXT NOT NULL,
	resource_type TEXT NOT NULL,
	region        TEXT NOT NULL,
	name          TEXT NOT NULL DEFAULT '',
	instance_type TEXT NOT NULL DEFAULT '',
	monthly_cost  TEXT NOT NULL,
	probability   REAL NOT NULL DEFAULT 0,
	risk_tier     TEXT NOT NULL,
	action        TEXT NOT NULL,
	summary       TEXT NOT NULL DEFAULT '',
	assessed_at   INTEGER NOT NULL DEFAULT 0,
	version       INTEGER NOT NULL,
	created_at    INTEGER NOT NULL,
	updated_at    INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_assessments_scan
	ON resource_assessments(scan_id, assessed_at DESC);
CREATE INDEX IF NOT EXISTS idx_assessments_resource
	ON resource_assessments(resource_id, assessed_at DESC);

CREATE TABLE IF NOT EXISTS assessment_reasons (
	assessment_id TEXT NOT NULL REFERENCES resource_assessments(id) ON DELETE CASCADE,
	position      INTEGER NOT NULL,
	reason        TEXT NOT NULL,
	PRIMARY KEY (assessment_id, position)
);

CREATE TABLE IF NOT EXISTS outbox (
	id             TEXT PRIMARY KEY,
	aggregate_id   TEXT NOT NULL,
	aggregate_type TEXT NOT NULL,
	event_type     TEXT NOT NULL,
	payload        BLOB NOT NULL,
	created_at     INTEGER NOT NULL,
	published_at   INTEGER
);

CREATE INDEX IF NOT EXISTS idx_outbox_unpublished
	ON outbox(created_at) WHERE published_at IS NULL;
`

// ApplySchema creates all tables and indexes. Pass it as the pool's
// OnConnect hook; every statement is idempotent.
func ApplySchema(conn *sqlite.Conn) error {
	return sqlitex.ExecuteScript(conn, schema, nil)
}
