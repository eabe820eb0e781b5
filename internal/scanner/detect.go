package scanner

import (
	"os"
	"path/filepath"

	"github.com/aexoden/norms/internal/facts"
)

// marker files, checked at the project root only
var languageMarkers = []struct {
	file string
	lang facts.Language
}{
	{"CMakeLists.txt", facts.LangCPP},
	{"pyproject.toml", facts.LangPython},
	{"Cargo.toml", facts.LangRust},
	{"package.json", facts.LangTypeScript},
}

// DetectLanguages reports the project languages present at root, in a stable
// order.
func DetectLanguages(root string) []facts.Language {
	var out []facts.Language
	for _, m := range languageMarkers {
		if _, err := os.Stat(filepath.Join(root, m.file)); err == nil {
			out = append(out, m.lang)
		}
	}
	return out
}
