package rules

import (
	"strings"

	"github.com/aexoden/norms/internal/facts"
)

// requiredEditorKeys are the settings every project's .editorconfig must pin,
// in the preamble or under the [*] section.
var requiredEditorKeys = [][2]string{
	{"charset", "utf-8"},
	{"end_of_line", "lf"},
	{"indent_style", "space"},
	{"insert_final_newline", "true"},
	{"trim_trailing_whitespace", "true"},
}

func init() {
	Register(Rule{
		ID:       "editorconfig",
		Category: CategoryEnvironment,
		Severity: SeverityError,
		Summary:  "An .editorconfig exists and pins the required settings.",
		Eval:     evalEditorConfig,
	})
	Register(Rule{
		ID:       "editorconfig-root",
		Category: CategoryEnvironment,
		Severity: SeverityWarning,
		Summary:  "The .editorconfig declares root = true.",
		Eval:     evalEditorConfigRoot,
	})
}

func evalEditorConfig(f *facts.Facts) Finding {
	content, ok := f.Content(".editorconfig")
	if !ok {
		return fail("missing .editorconfig")
	}
	keys := editorConfigKeys(content)
	var missing []string
	for _, kv := range requiredEditorKeys {
		if keys[kv[0]] != kv[1] {
			missing = append(missing, kv[0]+"="+kv[1])
		}
	}
	if len(missing) == 0 {
		return pass()
	}
	return failAt("missing "+strings.Join(missing, ", "), ".editorconfig")
}

func evalEditorConfigRoot(f *facts.Facts) Finding {
	content, ok := f.Content(".editorconfig")
	if !ok {
		return skipped("no .editorconfig")
	}
	if editorConfigKeys(content)["root"] == "true" {
		return pass()
	}
	return warnAt("missing root = true", ".editorconfig")
}

// editorConfigKeys collects key = value pairs from the preamble and the [*]
// section, lowercased.
func editorConfigKeys(content string) map[string]string {
	keys := map[string]string{}
	collect := true // preamble
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		if strings.HasPrefix(line, "[") {
			collect = strings.TrimSpace(line) == "[*]"
			continue
		}
		if !collect {
			continue
		}
		eq := strings.IndexByte(line, '=')
		if eq < 0 {
			continue
		}
		k := strings.ToLower(strings.TrimSpace(line[:eq]))
		v := strings.ToLower(strings.TrimSpace(line[eq+1:]))
		keys[k] = v
	}
	return keys
}
