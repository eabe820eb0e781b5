package storage

import (
	"database/sql"
	"time"

	"github.com/aexoden/norms/internal/rules"
)

// ListRuns returns a lightweight list of runs with violation counts.
func (db *DB) ListRuns(limit, offset int) ([]RunRow, error) {
	const q = `
		SELECT r.id, r.started_at, r.path, r.facts_version,
		       (SELECT COUNT(1) FROM findings f WHERE f.run_id = r.id AND f.status = 'fail') AS failed,
		       (SELECT COUNT(1) FROM findings f WHERE f.run_id = r.id AND f.status = 'warn') AS warnings
		  FROM runs r
		 ORDER BY r.started_at DESC, r.id DESC
		 LIMIT ? OFFSET ?`
	rows, err := db.conn.Query(q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRow
	for rows.Next() {
		var rr RunRow
		var startedAtStr string
		if err := rows.Scan(&rr.ID, &startedAtStr, &rr.Path, &rr.FactsVersion, &rr.Failed, &rr.Warnings); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339Nano, startedAtStr); err == nil {
			rr.StartedAt = t
		} else if t2, err2 := time.Parse(time.RFC3339, startedAtStr); err2 == nil {
			rr.StartedAt = t2
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}

// ListFindings returns a run's findings in registration order, optionally
// filtered to a single status.
func (db *DB) ListFindings(runID string, status string) ([]rules.Finding, error) {
	q := `
		SELECT rule, category, severity, status, message, location
		  FROM findings
		 WHERE run_id = ?`
	args := []any{runID}
	if status != "" {
		q += ` AND status = ?`
		args = append(args, status)
	}
	q += ` ORDER BY ord`
	rows, err := db.conn.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []rules.Finding
	for rows.Next() {
		var f rules.Finding
		var cat, sev, st string
		if err := rows.Scan(&f.Rule, &cat, &sev, &st, &f.Message, &f.Location); err != nil {
			return nil, err
		}
		f.Category = rules.Category(cat)
		f.Severity = rules.Severity(sev)
		f.Status = rules.Status(st)
		out = append(out, f)
	}
	return out, rows.Err()
}

// HasRun reports whether a run id exists.
func (db *DB) HasRun(id string) (bool, error) {
	const q = `SELECT 1 FROM runs WHERE id = ? LIMIT 1`
	var one int
	err := db.conn.QueryRow(q, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}
