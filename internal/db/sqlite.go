package db

import (
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	// sqlite3 driver for local runs and tests
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteSchema creates the recruitment tables if they are missing. Postgres
// deployments provision the equivalent schema outside this service.
const SQLiteSchema = `
CREATE TABLE IF NOT EXISTS candidate (
	first_name                      TEXT NOT NULL,
	last_name                       TEXT NOT NULL,
	email                           TEXT NOT NULL UNIQUE,
	phone                           TEXT,
	years_of_experience             INTEGER,
	additional_recruiter_notes      TEXT,
	recruitment_status              TEXT NOT NULL DEFAULT 'new',
	date_of_consent_for_recruitment DATETIME,
	created_at                      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS JobOffer (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	title        TEXT NOT NULL,
	description  TEXT,
	salary_range TEXT,
	location     TEXT
);

CREATE TABLE IF NOT EXISTS CandidateJobOffers (
	candidate_email TEXT    NOT NULL REFERENCES candidate(email),
	job_offer_id    INTEGER NOT NULL REFERENCES JobOffer(id)
);
`

// SQLiteBusyTimeout is how long a statement waits on a lock held by another
// connection or process before failing with "database is locked".
const SQLiteBusyTimeout = 30 * time.Second

// OpenSQLite opens a sqlite database and applies SQLiteSchema. The handle is
// pinned to one connection: every connection to ":memory:" sees its own empty
// database, and for files the writers in this process queue on the pool
// instead of failing on the file lock. SQLiteBusyTimeout covers writers in
// other processes.
func OpenSQLite(dsn string) (*sqlx.DB, error) {
	conn, err := sqlx.Open("sqlite3", withBusyTimeout(dsn))
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec(SQLiteSchema); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}

	return conn, nil
}

// withBusyTimeout adds _busy_timeout to dsn unless a timeout is already set.
func withBusyTimeout(dsn string) string {
	if strings.Contains(dsn, "_busy_timeout=") || strings.Contains(dsn, "_timeout=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%s_busy_timeout=%d", dsn, sep, SQLiteBusyTimeout.Milliseconds())
}
