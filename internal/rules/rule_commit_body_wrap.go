package rules

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/aexoden/norms/internal/facts"
)

func init() {
	Register(Rule{
		ID:       "commit-body-wrap",
		Category: CategoryVCS,
		Severity: SeverityWarning,
		Summary:  "Commit body lines stay within the configured wrap width.",
		Eval:     evalCommitBodyWrap,
	})
}

func evalCommitBodyWrap(f *facts.Facts) Finding {
	if len(f.Commits) == 0 {
		return skipped("no commits scanned")
	}
	limit := rsettings.BodyWrapLimit
	for i := range f.Commits {
		c := &f.Commits[i]
		if c.Body == "" {
			continue
		}
		for _, line := range strings.Split(c.Body, "\n") {
			// long unbreakable tokens (URLs etc.) are tolerated
			if utf8.RuneCountInString(line) > limit && strings.ContainsRune(strings.TrimSpace(line), ' ') {
				return warnAt(fmt.Sprintf("body line exceeds %d characters", limit), shortHash(c.Hash))
			}
		}
	}
	return pass()
}
