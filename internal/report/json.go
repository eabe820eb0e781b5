package report

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
)

// EmitJSON writes the machine-readable form: the ordered findings array with
// all fields.
func EmitJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r.Findings)
}

// WriteJSON persists the full report (summary included) under outDir.
func WriteJSON(runID, outDir string, r *Report) (string, error) {
	path := filepath.Join(outDir, runID+".json")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	return path, nil
}
