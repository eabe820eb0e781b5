package rules

import (
	"fmt"
	"strings"

	"github.com/aexoden/norms/internal/facts"
)

func init() {
	Register(Rule{
		ID:       "commit-subject-punctuation",
		Category: CategoryVCS,
		Severity: SeverityError,
		Summary:  "Commit subjects do not end with terminal punctuation.",
		Eval:     evalCommitSubjectPunct,
	})
}

func evalCommitSubjectPunct(f *facts.Facts) Finding {
	if len(f.Commits) == 0 {
		return skipped("no commits scanned")
	}
	for i := range f.Commits {
		c := &f.Commits[i]
		s := strings.TrimSpace(c.Subject)
		if s == "" {
			continue
		}
		switch s[len(s)-1] {
		case '.', '!', '?':
			return failAt(fmt.Sprintf("subject %q ends with %q", c.Subject, string(s[len(s)-1])), shortHash(c.Hash))
		}
	}
	return pass()
}
