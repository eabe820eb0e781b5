package storage

import (
	"database/sql"
	"strings"
	"time"

	"github.com/aexoden/norms/internal/rules"
)

type Waiver struct {
	ID         int64      `json:"id"`
	RuleID     string     `json:"rule_id"`
	Location   string     `json:"location,omitempty"`
	PatternSub string     `json:"pattern_sub,omitempty"`
	Reason     string     `json:"reason"`
	ExpiresAt  time.Time  `json:"expires_at"`
	CreatedBy  string     `json:"created_by"`
	CreatedAt  time.Time  `json:"created_at"`
	RevokedAt  *time.Time `json:"revoked_at,omitempty"`
}

func (db *DB) CreateWaiver(ruleID, location, pattern, reason, createdBy string, expires time.Time) (int64, error) {
	now := time.Now().UTC().Format(tsFormat)
	res, err := db.conn.Exec(`
INSERT INTO waivers(rule_id, location, pattern_sub, reason, expires_at, created_by, created_at)
VALUES(?,?,?,?,?,?,?)`,
		ruleID, nz(location), nz(pattern), reason, expires.UTC().Format(tsFormat), createdBy, now)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (db *DB) RevokeWaiver(id int64) error {
	_, err := db.conn.Exec(`UPDATE waivers SET revoked_at=? WHERE id=? AND revoked_at IS NULL`,
		time.Now().UTC().Format(tsFormat), id)
	return err
}

func (db *DB) ListWaivers(activeOnly bool) ([]Waiver, error) {
	q := `
SELECT id, rule_id, COALESCE(location,''), COALESCE(pattern_sub,''),
       reason, expires_at, created_by, created_at, revoked_at
FROM waivers`
	args := []any{}
	if activeOnly {
		q += ` WHERE (revoked_at IS NULL) AND (expires_at > ?)`
		args = append(args, time.Now().UTC().Format(tsFormat))
	}
	q += ` ORDER BY id DESC`
	rows, err := db.conn.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Waiver
	for rows.Next() {
		var (
			w           Waiver
			exp, ca, ra sql.NullString
		)
		if err := rows.Scan(&w.ID, &w.RuleID, &w.Location, &w.PatternSub, &w.Reason, &exp, &w.CreatedBy, &ca, &ra); err != nil {
			return nil, err
		}
		if exp.Valid {
			if t, e := time.Parse(time.RFC3339Nano, exp.String); e == nil {
				w.ExpiresAt = t
			}
		}
		if ca.Valid {
			if t, e := time.Parse(time.RFC3339Nano, ca.String); e == nil {
				w.CreatedAt = t
			}
		}
		if ra.Valid {
			if t, e := time.Parse(time.RFC3339Nano, ra.String); e == nil {
				w.RevokedAt = &t
			}
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// ApplyWaivers downgrades fail/warn findings matched by an active waiver to
// skipped with the waiver reason, keeping the one-finding-per-rule shape of
// the report intact. Returns the rewritten findings and how many matched.
func ApplyWaivers(in []rules.Finding, waivers []Waiver) ([]rules.Finding, int) {
	if len(waivers) == 0 || len(in) == 0 {
		return in, 0
	}
	out := make([]rules.Finding, len(in))
	copy(out, in)
	waived := 0
	for i := range out {
		f := &out[i]
		if f.Status != rules.StatusFail && f.Status != rules.StatusWarn {
			continue
		}
		for _, w := range waivers {
			if !eqCI(f.Rule, w.RuleID) {
				continue
			}
			if w.Location != "" && !eqCI(f.Location, w.Location) {
				continue
			}
			if w.PatternSub != "" {
				ps := strings.ToUpper(w.PatternSub)
				if !strings.Contains(strings.ToUpper(f.Message), ps) &&
					!strings.Contains(strings.ToUpper(f.Location), ps) {
					continue
				}
			}
			f.Status = rules.StatusSkipped
			f.Message = "waived: " + w.Reason
			waived++
			break
		}
	}
	return out, waived
}

func eqCI(a, b string) bool { return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b)) }

func nz(s string) any {
	if s == "" {
		return nil
	}
	return s
}
