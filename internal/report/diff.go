package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aexoden/norms/internal/rules"
)

type diffPayload struct {
	BaseID  string        `json:"base_id"`
	HeadID  string        `json:"head_id"`
	Summary diffSummary   `json:"summary"`
	New     []diffFinding `json:"new"`
	Fixed   []diffFinding `json:"fixed"`
	Changed []diffChanged `json:"changed"`
}

type diffSummary struct {
	NewCount     int `json:"new"`
	FixedCount   int `json:"fixed"`
	ChangedCount int `json:"changed"`
}

type diffFinding struct {
	Rule     string `json:"rule"`
	Status   string `json:"status"`
	Severity string `json:"severity,omitempty"`
	Message  string `json:"message,omitempty"`
	Location string `json:"location,omitempty"`
}

type diffChanged struct {
	Rule    string      `json:"rule"`
	Base    diffFinding `json:"base"`
	Head    diffFinding `json:"head"`
	Changed []string    `json:"fields_changed"`
}

// Diff compares two runs by rule id. "New" collects rules that regressed to
// a violation in head; "fixed" collects violations that cleared.
func Diff(base, head *Report) diffPayload {
	bm := map[string]rules.Finding{}
	hm := map[string]rules.Finding{}
	for _, f := range base.Findings {
		bm[f.Rule] = f
	}
	for _, f := range head.Findings {
		hm[f.Rule] = f
	}

	violating := func(f rules.Finding, ok bool) bool {
		return ok && (f.Status == rules.StatusFail || f.Status == rules.StatusWarn)
	}

	var added, fixed []diffFinding
	var changed []diffChanged
	for rule, hf := range hm {
		bf, inBase := bm[rule]
		if violating(hf, true) && !violating(bf, inBase) {
			added = append(added, asDiff(hf))
			continue
		}
		if !inBase {
			continue
		}
		var fields []string
		if bf.Status != hf.Status {
			fields = append(fields, "status")
		}
		if strings.TrimSpace(bf.Message) != strings.TrimSpace(hf.Message) {
			fields = append(fields, "message")
		}
		if bf.Location != hf.Location {
			fields = append(fields, "location")
		}
		if len(fields) > 0 {
			changed = append(changed, diffChanged{Rule: rule, Base: asDiff(bf), Head: asDiff(hf), Changed: fields})
		}
	}
	for rule, bf := range bm {
		hf, inHead := hm[rule]
		if violating(bf, true) && !violating(hf, inHead) {
			fixed = append(fixed, asDiff(bf))
		}
	}

	sort.Slice(added, func(i, j int) bool { return added[i].Rule < added[j].Rule })
	sort.Slice(fixed, func(i, j int) bool { return fixed[i].Rule < fixed[j].Rule })
	sort.Slice(changed, func(i, j int) bool { return changed[i].Rule < changed[j].Rule })

	return diffPayload{
		BaseID:  base.ID,
		HeadID:  head.ID,
		Summary: diffSummary{NewCount: len(added), FixedCount: len(fixed), ChangedCount: len(changed)},
		New:     added,
		Fixed:   fixed,
		Changed: changed,
	}
}

func WriteDiffJSON(outDir string, base, head *Report) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(outDir, "diff_"+base.ID+"__"+head.ID+".json")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Diff(base, head)); err != nil {
		return "", err
	}
	return path, nil
}

func asDiff(f rules.Finding) diffFinding {
	return diffFinding{
		Rule:     f.Rule,
		Status:   string(f.Status),
		Severity: string(f.Severity),
		Message:  f.Message,
		Location: f.Location,
	}
}
