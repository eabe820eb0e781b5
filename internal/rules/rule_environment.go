package rules

import "github.com/aexoden/norms/internal/facts"

func init() {
	Register(Rule{
		ID:       "pre-commit",
		Category: CategoryEnvironment,
		Severity: SeverityError,
		Summary:  "A pre-commit configuration exists.",
		Eval: func(f *facts.Facts) Finding {
			if f.HasFile(".pre-commit-config.yaml") {
				return pass()
			}
			return fail("missing .pre-commit-config.yaml")
		},
	})
	Register(Rule{
		ID:       "renovate",
		Category: CategoryDependency,
		Severity: SeverityWarning,
		Summary:  "A Renovate configuration exists.",
		Eval: func(f *facts.Facts) Finding {
			if f.HasFile("renovate.json") {
				return pass()
			}
			return warn("missing renovate.json")
		},
	})
	Register(Rule{
		ID:       "ci-workflow",
		Category: CategoryCI,
		Severity: SeverityError,
		Summary:  "A GitHub Actions CI workflow exists.",
		Eval: func(f *facts.Facts) Finding {
			if f.HasFile(".github/workflows/ci.yaml") || f.HasFile(".github/workflows/ci.yml") {
				return pass()
			}
			return fail("missing .github/workflows/ci.yaml")
		},
	})
	Register(Rule{
		ID:       "language-detected",
		Category: CategoryEnvironment,
		Severity: SeverityWarning,
		Summary:  "At least one supported language was detected.",
		Eval: func(f *facts.Facts) Finding {
			if len(f.Languages) > 0 {
				return pass()
			}
			return warn("no supported programming languages detected")
		},
	})
}
