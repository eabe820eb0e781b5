package rules

import (
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/aexoden/norms/internal/facts"
)

func init() {
	Register(Rule{
		ID:       "python-pyproject",
		Category: CategoryLanguage,
		Severity: SeverityError,
		Summary:  "pyproject.toml parses and has a [project] section.",
		Language: facts.LangPython,
		Eval:     evalPythonPyproject,
	})
	Register(Rule{
		ID:       "python-ruff",
		Category: CategoryLanguage,
		Severity: SeverityError,
		Summary:  "Ruff is configured in pyproject.toml.",
		Language: facts.LangPython,
		Eval:     evalPythonRuff,
	})
	Register(Rule{
		ID:       "python-mypy",
		Category: CategoryLanguage,
		Severity: SeverityError,
		Summary:  "mypy is configured in pyproject.toml.",
		Language: facts.LangPython,
		Eval:     evalPythonMypy,
	})
	Register(Rule{
		ID:       "python-dependency-groups",
		Category: CategoryDependency,
		Severity: SeverityWarning,
		Summary:  "pyproject.toml declares dependency-groups with a dev group.",
		Language: facts.LangPython,
		Eval:     evalPythonDepGroups,
	})
}

// pyprojectTable decodes pyproject.toml into a generic table. ok is false
// when the file is absent or does not parse; the dedicated rule reports
// that, so dependents just skip.
func pyprojectTable(f *facts.Facts) (map[string]any, bool) {
	content, ok := f.Content("pyproject.toml")
	if !ok {
		return nil, false
	}
	var table map[string]any
	if err := toml.Unmarshal([]byte(content), &table); err != nil {
		return nil, false
	}
	return table, true
}

func subTable(t map[string]any, keys ...string) map[string]any {
	for _, k := range keys {
		next, ok := t[k].(map[string]any)
		if !ok {
			return nil
		}
		t = next
	}
	return t
}

func evalPythonPyproject(f *facts.Facts) Finding {
	content, ok := f.Content("pyproject.toml")
	if !ok {
		return fail("missing pyproject.toml")
	}
	var table map[string]any
	if err := toml.Unmarshal([]byte(content), &table); err != nil {
		return failAt("invalid TOML: "+firstLine(err.Error()), "pyproject.toml")
	}
	if len(subTable(table, "project")) == 0 {
		return failAt("missing [project] section", "pyproject.toml")
	}
	return pass()
}

func evalPythonRuff(f *facts.Facts) Finding {
	table, ok := pyprojectTable(f)
	if !ok {
		return skipped("pyproject.toml missing or invalid")
	}
	ruff := subTable(table, "tool", "ruff")
	if len(ruff) == 0 {
		return failAt("Ruff is not configured in pyproject.toml", "pyproject.toml")
	}
	var gaps []string
	if _, ok := ruff["line-length"]; !ok {
		gaps = append(gaps, "line-length not set")
	}
	format := subTable(table, "tool", "ruff", "format")
	if len(format) == 0 {
		gaps = append(gaps, "[tool.ruff.format] not configured")
	} else if le, _ := format["line-ending"].(string); le != "lf" {
		gaps = append(gaps, "line-ending is not 'lf'")
	}
	if lint := subTable(table, "tool", "ruff", "lint"); len(lint) == 0 {
		gaps = append(gaps, "[tool.ruff.lint] not configured")
	}
	if len(gaps) > 0 {
		return warnAt(strings.Join(gaps, "; "), "pyproject.toml")
	}
	return pass()
}

func evalPythonMypy(f *facts.Facts) Finding {
	table, ok := pyprojectTable(f)
	if !ok {
		return skipped("pyproject.toml missing or invalid")
	}
	mypy := subTable(table, "tool", "mypy")
	if len(mypy) == 0 {
		return failAt("mypy is not configured in pyproject.toml", "pyproject.toml")
	}
	if strict, _ := mypy["strict"].(bool); !strict {
		return warnAt("strict mode not enabled", "pyproject.toml")
	}
	return pass()
}

func evalPythonDepGroups(f *facts.Facts) Finding {
	table, ok := pyprojectTable(f)
	if !ok {
		return skipped("pyproject.toml missing or invalid")
	}
	groups := subTable(table, "dependency-groups")
	if len(groups) == 0 {
		return warnAt("no dependency-groups declared", "pyproject.toml")
	}
	if _, ok := groups["dev"]; !ok {
		return warnAt("no 'dev' dependency group", "pyproject.toml")
	}
	return pass()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
