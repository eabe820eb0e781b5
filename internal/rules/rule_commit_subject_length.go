package rules

import (
	"fmt"
	"unicode/utf8"

	"github.com/aexoden/norms/internal/facts"
)

func init() {
	Register(Rule{
		ID:       "commit-subject-length",
		Category: CategoryVCS,
		Severity: SeverityError,
		Summary:  "Commit subjects stay within the configured length limit.",
		Eval:     evalCommitSubjectLength,
	})
}

func evalCommitSubjectLength(f *facts.Facts) Finding {
	if len(f.Commits) == 0 {
		return skipped("no commits scanned")
	}
	max := rsettings.SubjectMaxLen
	var first *facts.Commit
	over := 0
	for i := range f.Commits {
		if utf8.RuneCountInString(f.Commits[i].Subject) > max {
			if first == nil {
				first = &f.Commits[i]
			}
			over++
		}
	}
	if first == nil {
		return pass()
	}
	msg := fmt.Sprintf("subject %q is %d characters (limit %d)",
		first.Subject, utf8.RuneCountInString(first.Subject), max)
	if over > 1 {
		msg += fmt.Sprintf(" and %d more commits exceed the limit", over-1)
	}
	return failAt(msg, shortHash(first.Hash))
}
