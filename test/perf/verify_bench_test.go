package perf

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aexoden/norms/internal/report"
	"github.com/aexoden/norms/internal/rules"
	"github.com/aexoden/norms/internal/scanner"
)

var benchFiles = map[string]string{
	"README.md":            "# demo\n",
	"LICENSE":              "MIT License\n",
	".gitignore":           "__pycache__/\n",
	".gitattributes":       "* text=auto\n",
	".editorconfig":        "root = true\n\n[*]\ncharset = utf-8\nend_of_line = lf\nindent_style = space\ninsert_final_newline = true\ntrim_trailing_whitespace = true\n",
	"devbox.json":          `{"packages": ["uv@latest"]}`,
	"pyproject.toml":       "[project]\nname = \"demo\"\n\n[tool.ruff]\nline-length = 120\n\n[tool.mypy]\nstrict = true\n",
	"uv.lock":              "version = 1\n",
	"src/demo/__init__.py": "",
}

func BenchmarkVerify_Small(b *testing.B) {
	root := b.TempDir()
	for rel, content := range benchFiles {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			b.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			b.Fatal(err)
		}
	}

	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f, err := scanner.Scan(ctx, root, scanner.Options{})
		if err != nil {
			b.Fatal(err)
		}
		findings, err := rules.Evaluate(ctx, f)
		if err != nil {
			b.Fatal(err)
		}
		r := report.New("run-bench", f, findings)
		if len(r.Findings) == 0 {
			b.Fatal("no findings produced")
		}
	}
}

func BenchmarkEvaluate_Only(b *testing.B) {
	root := b.TempDir()
	for rel, content := range benchFiles {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			b.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			b.Fatal(err)
		}
	}
	f, err := scanner.Scan(context.Background(), root, scanner.Options{})
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := rules.Evaluate(context.Background(), f); err != nil {
			b.Fatal(err)
		}
	}
}
