package rules

import "strings"

var (
	registry  []Rule
	ruleIndex = map[string]int{} // lower(ruleID) -> index
)

func Register(r Rule) {
	registry = append(registry, r)
	ruleIndex[strings.ToLower(strings.TrimSpace(r.ID))] = len(registry) - 1
}

// List returns the enabled rules in registration order. Output order of a
// run is defined by this order, so no re-sorting happens here.
func List() []Rule {
	out := make([]Rule, 0, len(registry))
	for _, r := range registry {
		if rsettings.Disabled[strings.ToLower(r.ID)] {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Get returns a rule by ID if registered. Unlike List it does not apply the
// disabled filter: ids stay reserved while a rule is disabled, so lookups
// (pack collision checks included) see the full registry.
func Get(id string) (Rule, bool) {
	idx, ok := ruleIndex[strings.ToLower(strings.TrimSpace(id))]
	if !ok || idx < 0 || idx >= len(registry) {
		return Rule{}, false
	}
	return registry[idx], true
}
