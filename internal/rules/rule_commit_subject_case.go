package rules

import (
	"fmt"
	"unicode"

	"github.com/aexoden/norms/internal/facts"
)

func init() {
	Register(Rule{
		ID:       "commit-subject-case",
		Category: CategoryVCS,
		Severity: SeverityWarning,
		Summary:  "Commit descriptions start lowercase unless they open with an acronym or proper noun (best effort).",
		Eval:     evalCommitSubjectCase,
	})
}

func evalCommitSubjectCase(f *facts.Facts) Finding {
	if len(f.Commits) == 0 {
		return skipped("no commits scanned")
	}
	for i := range f.Commits {
		c := &f.Commits[i]
		if isMergeLike(c.Subject) {
			continue
		}
		desc := subjectDescription(c.Subject)
		if desc == "" {
			continue
		}
		first := []rune(desc)[0]
		if !unicode.IsUpper(first) {
			continue
		}
		if looksLikeAcronym(firstWord(desc)) {
			continue
		}
		return warnAt(fmt.Sprintf("subject %q starts with an uppercase letter", c.Subject), shortHash(c.Hash))
	}
	return pass()
}
