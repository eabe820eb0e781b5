package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/aexoden/norms/internal/rules"
)

var statusLabels = []struct {
	status rules.Status
	label  string
}{
	{rules.StatusFail, "Failed"},
	{rules.StatusWarn, "Warnings"},
	{rules.StatusPass, "Passed"},
	{rules.StatusSkipped, "Skipped"},
}

// WriteText renders the human-readable report, grouped by status.
func WriteText(w io.Writer, r *Report) error {
	bar := strings.Repeat("=", 60)
	fmt.Fprintln(w, bar)
	fmt.Fprintln(w, "Project Standards Verification Report")
	fmt.Fprintln(w, bar)
	fmt.Fprintf(w, "Path: %s\n", r.Path)
	langs := make([]string, 0, len(r.Languages))
	for _, l := range r.Languages {
		langs = append(langs, string(l))
	}
	lang := strings.Join(langs, ", ")
	if lang == "" {
		lang = "None"
	}
	fmt.Fprintf(w, "Languages: %s\n", lang)
	fmt.Fprintln(w, bar)
	fmt.Fprintln(w)

	for _, sl := range statusLabels {
		var items []rules.Finding
		for _, f := range r.Findings {
			if f.Status == sl.status {
				items = append(items, f)
			}
		}
		if len(items) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s:\n", sl.label)
		for _, f := range items {
			line := fmt.Sprintf("  [%s] %s", strings.ToUpper(string(f.Status)), f.Rule)
			if f.Message != "" {
				line += " - " + f.Message
			}
			if f.Location != "" {
				line += " (" + f.Location + ")"
			}
			fmt.Fprintln(w, line)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, bar)
	fmt.Fprintf(w, "\nSummary: %d passed, %d failed, %d warnings, %d skipped\n",
		r.Summary.Passed, r.Summary.Failed, r.Summary.Warnings, r.Summary.Skipped)
	fmt.Fprintln(w, bar)
	return nil
}
