package rules

import (
	"encoding/json"

	"github.com/aexoden/norms/internal/facts"
)

func init() {
	Register(Rule{
		ID:       "devbox",
		Category: CategoryEnvironment,
		Severity: SeverityError,
		Summary:  "A devbox.json exists, parses, and defines packages.",
		Eval:     evalDevbox,
	})
}

func evalDevbox(f *facts.Facts) Finding {
	content, ok := f.Content("devbox.json")
	if !ok {
		return fail("missing devbox.json")
	}
	var cfg map[string]any
	if err := json.Unmarshal([]byte(content), &cfg); err != nil {
		return failAt("invalid JSON", "devbox.json")
	}
	// packages may be a list or a name -> version map
	switch pkgs := cfg["packages"].(type) {
	case []any:
		if len(pkgs) > 0 {
			return pass()
		}
	case map[string]any:
		if len(pkgs) > 0 {
			return pass()
		}
	}
	return warnAt("no packages defined", "devbox.json")
}
