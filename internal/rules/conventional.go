package rules

import (
	"strings"
	"unicode"
)

// commitTypes is the allowed set for the token before ':' or '(' in a
// conventional commit subject.
var commitTypes = map[string]bool{
	"feat":     true,
	"fix":      true,
	"perf":     true,
	"refactor": true,
	"style":    true,
	"test":     true,
	"docs":     true,
	"build":    true,
	"ops":      true,
	"chore":    true,
}

// subjectType extracts the type token of a conventional commit subject
// ("feat" from "feat(api): add x"). ok is false when the subject has no
// ':' delimiter at all.
func subjectType(subject string) (typ string, ok bool) {
	colon := strings.IndexByte(subject, ':')
	if colon < 0 {
		return "", false
	}
	typ = subject[:colon]
	if paren := strings.IndexByte(typ, '('); paren >= 0 {
		typ = typ[:paren]
	}
	// strip a breaking-change marker: "feat!: drop x"
	typ = strings.TrimSuffix(typ, "!")
	return strings.TrimSpace(typ), true
}

// subjectDescription returns the free text after the "type(scope): " prefix,
// or the whole subject when no prefix exists.
func subjectDescription(subject string) string {
	if colon := strings.IndexByte(subject, ':'); colon >= 0 {
		return strings.TrimSpace(subject[colon+1:])
	}
	return strings.TrimSpace(subject)
}

// looksLikeAcronym reports whether a leading word is plausibly an acronym or
// proper noun rather than a sentence-case description ("HTTP", "OAuth2").
func looksLikeAcronym(word string) bool {
	if word == "" {
		return false
	}
	upper := 0
	for _, r := range word {
		if unicode.IsUpper(r) {
			upper++
		}
	}
	// all caps, or uppercase beyond the first letter (mixed-case name)
	if upper == len([]rune(word)) {
		return true
	}
	rs := []rune(word)
	for _, r := range rs[1:] {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

func firstWord(s string) string {
	fs := strings.Fields(s)
	if len(fs) == 0 {
		return ""
	}
	return strings.TrimRight(fs[0], ",.;:")
}

// isMergeLike reports subjects produced by git itself rather than authors.
func isMergeLike(subject string) bool {
	return strings.HasPrefix(subject, "Merge ") || strings.HasPrefix(subject, "Revert ")
}

func shortHash(h string) string {
	if len(h) > 8 {
		return h[:8]
	}
	return h
}
