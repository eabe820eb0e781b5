package rules

import (
	"fmt"

	"github.com/aexoden/norms/internal/facts"
)

func init() {
	Register(Rule{
		ID:       "commit-type",
		Category: CategoryVCS,
		Severity: SeverityError,
		Summary:  "Commit subjects carry a recognized conventional-commit type.",
		Eval:     evalCommitType,
	})
}

func evalCommitType(f *facts.Facts) Finding {
	if len(f.Commits) == 0 {
		return skipped("no commits scanned")
	}
	for i := range f.Commits {
		c := &f.Commits[i]
		if isMergeLike(c.Subject) {
			continue
		}
		typ, ok := subjectType(c.Subject)
		if !ok {
			return failAt(fmt.Sprintf("subject %q has no type prefix", c.Subject), shortHash(c.Hash))
		}
		if !commitTypes[typ] {
			return failAt(fmt.Sprintf("subject %q uses unknown type %q", c.Subject, typ), shortHash(c.Hash))
		}
	}
	return pass()
}
