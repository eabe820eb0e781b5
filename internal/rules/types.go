package rules

import "github.com/aexoden/norms/internal/facts"

type Status string

const (
	StatusPass    Status = "pass"
	StatusFail    Status = "fail"
	StatusWarn    Status = "warn"
	StatusSkipped Status = "skipped"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

type Category string

const (
	CategoryEnvironment Category = "environment"
	CategoryDocs        Category = "docs"
	CategoryLicensing   Category = "licensing"
	CategoryVCS         Category = "vcs"
	CategoryCI          Category = "ci"
	CategoryDependency  Category = "dependency"
	CategoryLanguage    Category = "language-specific"
)

// Finding is the outcome of one rule against one facts snapshot. The
// evaluator stamps Rule, Category and Severity from the rule definition, so
// predicates only fill Status, Message and optionally Location.
type Finding struct {
	Rule     string   `json:"rule"`
	Category Category `json:"category"`
	Severity Severity `json:"severity"`
	Status   Status   `json:"status"`
	Message  string   `json:"message,omitempty"`
	Location string   `json:"location,omitempty"`
}

// Rule is a single conformance check. Eval must be a pure read of the facts
// snapshot: no side effects, no dependence on other rules.
type Rule struct {
	ID       string
	Category Category
	Severity Severity
	Summary  string
	// Language restricts the rule to projects where that language was
	// detected; empty means the rule always applies.
	Language facts.Language
	Eval     func(*facts.Facts) Finding
}

func pass() Finding              { return Finding{Status: StatusPass} }
func fail(msg string) Finding    { return Finding{Status: StatusFail, Message: msg} }
func warn(msg string) Finding    { return Finding{Status: StatusWarn, Message: msg} }
func skipped(msg string) Finding { return Finding{Status: StatusSkipped, Message: msg} }

func failAt(msg, loc string) Finding {
	return Finding{Status: StatusFail, Message: msg, Location: loc}
}

func warnAt(msg, loc string) Finding {
	return Finding{Status: StatusWarn, Message: msg, Location: loc}
}
