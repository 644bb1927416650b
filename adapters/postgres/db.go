package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Connect opens and pings a PostgreSQL connection
func Connect(url string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", url)
	if err != nil {
		return nil, err
	}
	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS signals (
	id               TEXT PRIMARY KEY,
	created_at       TIMESTAMPTZ NOT NULL,
	category         TEXT NOT NULL,
	source_excerpt   TEXT NOT NULL,
	indicators       TEXT[] NOT NULL DEFAULT '{}',
	confidence       DOUBLE PRECISION NOT NULL,
	context_notes    TEXT NOT NULL DEFAULT '',
	detection_method TEXT NOT NULL DEFAULT '',
	priority         TEXT NOT NULL,
	turn_index       INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_signals_category ON signals (category);
CREATE INDEX IF NOT EXISTS idx_signals_created_at ON signals (created_at);

CREATE TABLE IF NOT EXISTS experiment_results (
	id                 TEXT PRIMARY KEY,
	protocol_key       TEXT NOT NULL,
	created_at         TIMESTAMPTZ NOT NULL,
	run_number         INTEGER NOT NULL DEFAULT 0,
	response_text      TEXT NOT NULL,
	metrics            JSONB NOT NULL DEFAULT '{}',
	indicators         TEXT[] NOT NULL DEFAULT '{}',
	anomaly_score      DOUBLE PRECISION NOT NULL,
	notes              TEXT NOT NULL DEFAULT '',
	follow_up_required BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE INDEX IF NOT EXISTS idx_results_protocol ON experiment_results (protocol_key);
CREATE INDEX IF NOT EXISTS idx_results_created_at ON experiment_results (created_at);
`

// EnsureSchema creates the lab tables if they do not exist
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
