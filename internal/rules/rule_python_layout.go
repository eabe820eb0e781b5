package rules

import (
	"path"
	"strings"

	"github.com/aexoden/norms/internal/facts"
)

func init() {
	Register(Rule{
		ID:       "python-layout",
		Category: CategoryLanguage,
		Severity: SeverityError,
		Summary:  "Python projects use uv with a src/<package>/ layout.",
		Language: facts.LangPython,
		Eval:     evalPythonLayout,
	})
}

func evalPythonLayout(f *facts.Facts) Finding {
	if !f.HasFile("pyproject.toml") {
		return fail("missing pyproject.toml")
	}
	if !f.HasFile("uv.lock") {
		return fail("missing uv.lock")
	}
	if len(f.Glob("src/*/__init__.py")) == 0 {
		return fail("no package found under src/")
	}
	if stray := straySource(f); stray != "" {
		return failAt("source file outside src/", stray)
	}
	return pass()
}

// straySource reports the first Python module living outside src/ and the
// conventional auxiliary directories.
func straySource(f *facts.Facts) string {
	for _, p := range f.Files {
		if !strings.HasSuffix(p, ".py") {
			continue
		}
		top := p
		if i := strings.IndexByte(p, '/'); i >= 0 {
			top = p[:i]
		}
		switch top {
		case "src", "tests", "docs", "scripts", "examples":
			continue
		}
		if path.Base(p) == "conftest.py" {
			continue
		}
		return p
	}
	return ""
}
