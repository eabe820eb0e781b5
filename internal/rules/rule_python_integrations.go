package rules

import (
	"strings"

	"github.com/aexoden/norms/internal/facts"
)

func init() {
	Register(Rule{
		ID:       "python-pre-commit-hooks",
		Category: CategoryLanguage,
		Severity: SeverityWarning,
		Summary:  "Pre-commit runs ruff and mypy for Python projects.",
		Language: facts.LangPython,
		Eval:     evalPythonPreCommitHooks,
	})
	Register(Rule{
		ID:       "python-ci-steps",
		Category: CategoryCI,
		Severity: SeverityWarning,
		Summary:  "CI formats, lints, and type-checks Python projects.",
		Language: facts.LangPython,
		Eval:     evalPythonCISteps,
	})
	Register(Rule{
		ID:       "python-devbox-uv",
		Category: CategoryEnvironment,
		Severity: SeverityWarning,
		Summary:  "Devbox provides uv for Python projects.",
		Language: facts.LangPython,
		Eval:     evalPythonDevboxUV,
	})
}

func evalPythonPreCommitHooks(f *facts.Facts) Finding {
	content, ok := f.Content(".pre-commit-config.yaml")
	if !ok {
		return skipped("no .pre-commit-config.yaml")
	}
	var missing []string
	if !strings.Contains(content, "ruff") {
		missing = append(missing, "ruff")
	} else {
		if !strings.Contains(content, "ruff-check") {
			missing = append(missing, "ruff-check")
		}
		if !strings.Contains(content, "ruff-format") {
			missing = append(missing, "ruff-format")
		}
	}
	if !strings.Contains(content, "mypy") {
		missing = append(missing, "mypy")
	}
	if len(missing) == 0 {
		return pass()
	}
	return warnAt("missing hooks: "+strings.Join(missing, ", "), ".pre-commit-config.yaml")
}

func evalPythonCISteps(f *facts.Facts) Finding {
	path := ".github/workflows/ci.yaml"
	content, ok := f.Content(path)
	if !ok {
		path = ".github/workflows/ci.yml"
		if content, ok = f.Content(path); !ok {
			return skipped("no CI workflow")
		}
	}
	lower := strings.ToLower(content)
	var missing []string
	if !strings.Contains(lower, "ruff format") {
		missing = append(missing, "format check")
	}
	if !strings.Contains(lower, "ruff check") {
		missing = append(missing, "lint")
	}
	if !strings.Contains(lower, "mypy") {
		missing = append(missing, "type check")
	}
	if len(missing) == 0 {
		return pass()
	}
	return warnAt("CI lacks: "+strings.Join(missing, ", "), path)
}

func evalPythonDevboxUV(f *facts.Facts) Finding {
	content, ok := f.Content("devbox.json")
	if !ok {
		return skipped("no devbox.json")
	}
	if strings.Contains(content, "uv@") || strings.Contains(content, `"uv"`) {
		return pass()
	}
	return warnAt("uv not in Devbox packages", "devbox.json")
}
