package fuzz

import (
	"strings"
	"testing"

	"github.com/aexoden/norms/internal/facts"
)

// Fuzz the commit message splitter with arbitrary input to ensure it never
// panics and keeps its shape invariants.
func FuzzSplitMessage(f *testing.F) {
	seeds := []string{
		"feat: add thing",
		"feat: add thing\n\nbody line one\nbody line two\n",
		"feat: add thing\nno blank separator\n",
		"fix: bug\r\n\r\nwindows body\r\n",
		"",
		"\n\n\n",
		"subject\n\n\nbody after extra blank",
	}
	for _, s := range seeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, msg string) {
		subject, body := facts.SplitMessage(msg)
		if strings.ContainsRune(subject, '\n') {
			t.Fatalf("subject contains a newline: %q", subject)
		}
		if strings.HasSuffix(body, "\n") {
			t.Fatalf("body keeps a trailing newline: %q", body)
		}
	})
}
