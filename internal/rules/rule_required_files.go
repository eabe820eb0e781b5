package rules

import (
	"strings"

	"github.com/aexoden/norms/internal/facts"
)

func init() {
	Register(Rule{
		ID:       "readme",
		Category: CategoryDocs,
		Severity: SeverityError,
		Summary:  "The repository has a README.md.",
		Eval: func(f *facts.Facts) Finding {
			if f.HasFile("README.md") {
				return pass()
			}
			return fail("missing README.md")
		},
	})
	Register(Rule{
		ID:       "license-file",
		Category: CategoryLicensing,
		Severity: SeverityError,
		Summary:  "The repository has a license file.",
		Eval: func(f *facts.Facts) Finding {
			if len(f.Glob("LICENSE*")) > 0 {
				return pass()
			}
			return fail("missing LICENSE file")
		},
	})
	Register(Rule{
		ID:       "git-metadata-files",
		Category: CategoryVCS,
		Severity: SeverityError,
		Summary:  "The repository has .gitignore and .gitattributes.",
		Eval:     evalGitMetadataFiles,
	})
}

func evalGitMetadataFiles(f *facts.Facts) Finding {
	var missing []string
	for _, name := range []string{".gitignore", ".gitattributes"} {
		if !f.HasFile(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return pass()
	}
	return fail("missing " + strings.Join(missing, ", "))
}
