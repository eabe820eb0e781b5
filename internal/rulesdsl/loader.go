// Package rulesdsl loads declarative rule packs: YAML manifests compiled
// into ordinary registry rules at startup. Packs extend the built-in set
// without runtime code injection, so the purity and isolation guarantees of
// the evaluator keep holding.
package rulesdsl

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aexoden/norms/internal/facts"
	"github.com/aexoden/norms/internal/rules"
)

type dslPack struct {
	Rules []dslRule `yaml:"rules"`
}

type dslRule struct {
	ID       string `yaml:"id"`
	Summary  string `yaml:"summary"`
	Category string `yaml:"category"` // environment|docs|licensing|vcs|ci|dependency|language-specific
	Severity string `yaml:"severity"` // error|warning
	Message  string `yaml:"message"`
	Language string `yaml:"language"` // optional; restricts to a detected language

	Where struct {
		File               string `yaml:"file"`                 // path glob the rule inspects
		MustExist          bool   `yaml:"must_exist"`           // violation when no file matches
		ContentRegex       string `yaml:"content_regex"`        // regex over matched files' content
		ForbidMatch        bool   `yaml:"forbid_match"`         // violation when the regex matches (default: when it doesn't)
		CommitSubjectRegex string `yaml:"commit_subject_regex"` // every commit subject must match
	} `yaml:"where"`
}

type compiled struct {
	rule      dslRule
	reContent *regexp.Regexp
	reSubject *regexp.Regexp
}

// LoadAndRegister reads one pack file and registers its rules. Returns how
// many rules were added.
func LoadAndRegister(path string) (int, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read rule pack: %w", err)
	}
	var pack dslPack
	if err := yaml.Unmarshal(b, &pack); err != nil {
		return 0, fmt.Errorf("parse yaml: %w", err)
	}
	var n int
	for _, r := range pack.Rules {
		cr, err := compile(r)
		if err != nil {
			return n, fmt.Errorf("compile rule %q: %w", r.ID, err)
		}
		// rule ids are unique across built-ins and packs
		if _, exists := rules.Get(r.ID); exists {
			return n, fmt.Errorf("rule %q: id already registered", r.ID)
		}
		registerCompiled(*cr)
		n++
	}
	return n, nil
}

func compile(r dslRule) (*compiled, error) {
	if r.ID == "" || r.Severity == "" || r.Message == "" {
		return nil, fmt.Errorf("missing required fields (id/severity/message)")
	}
	switch strings.ToLower(r.Severity) {
	case "error", "warning":
	default:
		return nil, fmt.Errorf("unknown severity %q", r.Severity)
	}
	c := &compiled{rule: r}
	if r.Where.ContentRegex != "" {
		re, err := regexp.Compile("(?m)" + r.Where.ContentRegex)
		if err != nil {
			return nil, fmt.Errorf("content_regex: %w", err)
		}
		c.reContent = re
	}
	if r.Where.CommitSubjectRegex != "" {
		re, err := regexp.Compile(r.Where.CommitSubjectRegex)
		if err != nil {
			return nil, fmt.Errorf("commit_subject_regex: %w", err)
		}
		c.reSubject = re
	}
	if r.Where.File == "" && c.reSubject == nil {
		return nil, fmt.Errorf("where needs a file glob or commit_subject_regex")
	}
	return c, nil
}

func registerCompiled(c compiled) {
	cat := rules.Category(strings.ToLower(c.rule.Category))
	if cat == "" {
		cat = rules.CategoryEnvironment
	}
	sev := rules.SeverityError
	if strings.ToLower(c.rule.Severity) == "warning" {
		sev = rules.SeverityWarning
	}
	rules.Register(rules.Rule{
		ID:       c.rule.ID,
		Category: cat,
		Severity: sev,
		Summary:  c.rule.Summary,
		Language: facts.Language(strings.ToLower(c.rule.Language)),
		Eval: func(f *facts.Facts) rules.Finding {
			return evalCompiled(c, sev, f)
		},
	})
}

func evalCompiled(c compiled, sev rules.Severity, f *facts.Facts) rules.Finding {
	violation := func(loc string) rules.Finding {
		st := rules.StatusFail
		if sev == rules.SeverityWarning {
			st = rules.StatusWarn
		}
		return rules.Finding{Status: st, Message: c.rule.Message, Location: loc}
	}

	if c.reSubject != nil {
		if len(f.Commits) == 0 {
			return rules.Finding{Status: rules.StatusSkipped, Message: "no commits scanned"}
		}
		for i := range f.Commits {
			if !c.reSubject.MatchString(f.Commits[i].Subject) {
				return violation(f.Commits[i].Hash[:min(8, len(f.Commits[i].Hash))])
			}
		}
	}

	if c.rule.Where.File != "" {
		matches := f.Glob(c.rule.Where.File)
		if c.rule.Where.MustExist && len(matches) == 0 {
			return violation("")
		}
		if c.reContent != nil {
			for _, p := range matches {
				content, ok := f.Content(p)
				if !ok {
					continue
				}
				matched := c.reContent.MatchString(content)
				if c.rule.Where.ForbidMatch && matched {
					return violation(p)
				}
				if !c.rule.Where.ForbidMatch && !matched {
					return violation(p)
				}
			}
		}
	}

	return rules.Finding{Status: rules.StatusPass}
}
