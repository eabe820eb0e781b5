package report

import (
	"fmt"
	"html"
	"os"
	"path/filepath"

	"github.com/aexoden/norms/internal/rules"
)

// WriteHTML renders a static single-page report under outDir.
func WriteHTML(runID, outDir string, r *Report) (string, error) {
	path := filepath.Join(outDir, runID+".html")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	fmt.Fprintf(f, "<!doctype html><html><head><meta charset='utf-8'><title>%s</title>", html.EscapeString(runID))
	fmt.Fprint(f, "<style>body{font-family:system-ui,Arial,sans-serif;padding:20px;line-height:1.4} table{border-collapse:collapse;margin:8px 0} td,th{border:1px solid #ddd;padding:6px} h1,h2{margin:6px 0 4px} .dim{color:#666} .mono{font-family:ui-monospace,Menlo,Consolas,monospace} .fail{color:#b00020} .warn{color:#9a6700} .pass{color:#1a7f37}</style>")
	fmt.Fprint(f, "</head><body>")

	fmt.Fprintf(f, "<h1>norms report <span class='mono'>%s</span></h1>", html.EscapeString(runID))
	fmt.Fprintf(f, "<p class='dim'>Path: <span class='mono'>%s</span></p>", html.EscapeString(r.Path))
	fmt.Fprintf(f, "<p><b>Summary</b>: %d passed &nbsp; <span class='fail'>%d failed</span> &nbsp; <span class='warn'>%d warnings</span> &nbsp; %d skipped</p>",
		r.Summary.Passed, r.Summary.Failed, r.Summary.Warnings, r.Summary.Skipped)

	// failures and warnings first, then the rest
	writeTable := func(title string, keep func(rules.Finding) bool) {
		var rows []rules.Finding
		for _, fd := range r.Findings {
			if keep(fd) {
				rows = append(rows, fd)
			}
		}
		if len(rows) == 0 {
			return
		}
		fmt.Fprintf(f, "<h2>%s</h2><table><tr><th>Status</th><th>Rule</th><th>Category</th><th>Severity</th><th>Message</th><th>Location</th></tr>", html.EscapeString(title))
		for _, fd := range rows {
			fmt.Fprintf(f, "<tr><td class='%s'>%s</td><td class='mono'>%s</td><td>%s</td><td>%s</td><td>%s</td><td class='mono'>%s</td></tr>",
				cssClass(fd.Status),
				html.EscapeString(string(fd.Status)),
				html.EscapeString(fd.Rule),
				html.EscapeString(string(fd.Category)),
				html.EscapeString(string(fd.Severity)),
				html.EscapeString(fd.Message),
				html.EscapeString(fd.Location),
			)
		}
		fmt.Fprint(f, "</table>")
	}

	writeTable("Violations", func(fd rules.Finding) bool {
		return fd.Status == rules.StatusFail || fd.Status == rules.StatusWarn
	})
	writeTable("All Findings", func(rules.Finding) bool { return true })

	fmt.Fprint(f, "</body></html>")
	return path, nil
}

func cssClass(s rules.Status) string {
	switch s {
	case rules.StatusFail:
		return "fail"
	case rules.StatusWarn:
		return "warn"
	case rules.StatusPass:
		return "pass"
	}
	return "dim"
}
