package storage

import (
	"database/sql"
	"encoding/json"

	_ "modernc.org/sqlite" // CGO-free SQLite driver

	"github.com/aexoden/norms/internal/report"
)

// tsFormat is RFC3339 with fixed-width nanoseconds. The TEXT timestamp
// columns are ordered and compared lexically, so the encoding must not trim
// trailing zeros the way RFC3339Nano does.
const tsFormat = "2006-01-02T15:04:05.000000000Z07:00"

// DB is the concrete run-history store backed by SQLite.
type DB struct {
	conn *sql.DB
}

// Open opens (and creates if missing) a SQLite DB at path.
func Open(path string) (*DB, error) {
	// Pragmas via DSN keep it portable with the modernc driver.
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)"
	c, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	return &DB{conn: c}, nil
}

func (db *DB) Close() error { return db.conn.Close() }

// CreateSchema ensures tables exist.
func (db *DB) CreateSchema() error {
	_, err := db.conn.Exec(`
CREATE TABLE IF NOT EXISTS runs (
  id            TEXT PRIMARY KEY,
  started_at    TEXT,          -- tsFormat, lexically sortable
  path          TEXT,
  facts_version TEXT,
  report_json   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS findings (
  run_id   TEXT NOT NULL,
  rule     TEXT NOT NULL,
  category TEXT,
  severity TEXT,
  status   TEXT,
  message  TEXT,
  location TEXT,
  ord      INTEGER NOT NULL,   -- registration order within the run
  PRIMARY KEY (run_id, rule),
  FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_findings_run ON findings(run_id);
CREATE INDEX IF NOT EXISTS idx_findings_rule ON findings(rule);

CREATE TABLE IF NOT EXISTS users (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  username TEXT UNIQUE NOT NULL,
  pass_hash TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'viewer',
  created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS sessions (
  token TEXT PRIMARY KEY,
  user_id INTEGER NOT NULL,
  expires_at TEXT NOT NULL,
  created_at TEXT NOT NULL,
  FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS audit (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  ts TEXT NOT NULL,
  username TEXT,
  action TEXT NOT NULL,
  resource TEXT,
  meta_json TEXT
);

CREATE TABLE IF NOT EXISTS waivers (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  rule_id     TEXT NOT NULL,
  location    TEXT,              -- optional exact match; NULL = any
  pattern_sub TEXT,              -- optional substring to match message/location
  reason      TEXT NOT NULL,
  expires_at  TEXT NOT NULL,     -- tsFormat, lexically sortable
  created_by  TEXT NOT NULL,
  created_at  TEXT NOT NULL,
  revoked_at  TEXT               -- NULL = active
);
`)
	return err
}

// SaveRun upserts a run report and (re)writes its findings.
func (db *DB) SaveRun(r *report.Report) error {
	b, err := json.Marshal(r)
	if err != nil {
		return err
	}
	ts := r.StartedAt.UTC().Format(tsFormat)

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(
		`INSERT INTO runs (id, started_at, path, facts_version, report_json)
         VALUES (?, ?, ?, ?, ?)
         ON CONFLICT(id) DO UPDATE SET started_at=excluded.started_at, path=excluded.path, facts_version=excluded.facts_version, report_json=excluded.report_json`,
		r.ID, ts, r.Path, r.FactsVersion, string(b),
	); err != nil {
		return err
	}

	if _, err := tx.Exec(`DELETE FROM findings WHERE run_id = ?`, r.ID); err != nil {
		return err
	}
	if len(r.Findings) > 0 {
		stmt, err := tx.Prepare(`
			INSERT INTO findings
			(run_id, rule, category, severity, status, message, location, ord)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for i, f := range r.Findings {
			if _, err := stmt.Exec(
				r.ID,
				f.Rule,
				string(f.Category),
				string(f.Severity),
				string(f.Status),
				f.Message,
				f.Location,
				i,
			); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// LoadRun returns the full report from stored JSON.
func (db *DB) LoadRun(id string) (report.Report, error) {
	var s string
	row := db.conn.QueryRow(`SELECT report_json FROM runs WHERE id = ?`, id)
	if err := row.Scan(&s); err != nil {
		return report.Report{}, err
	}
	var r report.Report
	if err := json.Unmarshal([]byte(s), &r); err != nil {
		return report.Report{}, err
	}
	return r, nil
}

// LoadLatestRun returns the most recently started run.
func (db *DB) LoadLatestRun() (report.Report, error) {
	var id string
	row := db.conn.QueryRow(`SELECT id FROM runs ORDER BY started_at DESC, id DESC LIMIT 1`)
	if err := row.Scan(&id); err != nil {
		return report.Report{}, err
	}
	return db.LoadRun(id)
}
