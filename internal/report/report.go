// Package report aggregates findings into the terminal artifact of a run and
// maps it onto an exit status.
package report

import (
	"time"

	"github.com/aexoden/norms/internal/facts"
	"github.com/aexoden/norms/internal/rules"
)

const (
	ExitOK        = 0
	ExitFailures  = 1
	ExitWarnings  = 2 // warnings-only under strict mode
	ExitScanError = 3
)

type Summary struct {
	Passed   int `json:"passed"`
	Failed   int `json:"failed"`
	Warnings int `json:"warnings"`
	Skipped  int `json:"skipped"`
}

// Report is the ordered findings of one run. Order equals rule registration
// order, which makes repeat runs over an unmodified repository
// byte-identical.
type Report struct {
	ID           string           `json:"id"`
	StartedAt    time.Time        `json:"started_at"`
	Path         string           `json:"path"`
	FactsVersion string           `json:"facts_version,omitempty"`
	Languages    []facts.Language `json:"languages,omitempty"`
	Summary      Summary          `json:"summary"`
	Findings     []rules.Finding  `json:"findings"`
}

func New(id string, fx *facts.Facts, findings []rules.Finding) *Report {
	r := &Report{
		ID:           id,
		StartedAt:    time.Now().UTC(),
		Path:         fx.Root,
		FactsVersion: fx.Version,
		Languages:    fx.Languages,
		Findings:     findings,
	}
	r.Recount()
	return r
}

// Recount recomputes the summary from the findings, used after waivers
// rewrite statuses.
func (r *Report) Recount() {
	s := Summary{}
	for _, f := range r.Findings {
		switch f.Status {
		case rules.StatusPass:
			s.Passed++
		case rules.StatusFail:
			s.Failed++
		case rules.StatusWarn:
			s.Warnings++
		case rules.StatusSkipped:
			s.Skipped++
		}
	}
	r.Summary = s
}

// ExitCode implements the exit policy: failures dominate, warnings only
// count under strict mode.
func ExitCode(r *Report, strict bool) int {
	if r.Summary.Failed > 0 {
		return ExitFailures
	}
	if strict && r.Summary.Warnings > 0 {
		return ExitWarnings
	}
	return ExitOK
}
