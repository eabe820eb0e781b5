package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aexoden/norms/internal/facts"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

func initRepo(t *testing.T, root string) *git.Worktree {
	t.Helper()
	repo, err := git.PlainInit(root, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	return wt
}

func addCommit(t *testing.T, root string, wt *git.Worktree, rel, message string) {
	t.Helper()
	writeFile(t, root, rel, "x\n")
	_, err := wt.Add(rel)
	require.NoError(t, err)
	_, err = wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{Name: "Dev", Email: "dev@example.com", When: time.Now()},
	})
	require.NoError(t, err)
}

func TestScanPlainDirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "README.md", "# demo\n")
	writeFile(t, root, "pyproject.toml", "[project]\nname = \"demo\"\n")
	writeFile(t, root, ".github/workflows/ci.yaml", "jobs: {}\n")
	writeFile(t, root, "src/demo/__init__.py", "")

	f, err := Scan(context.Background(), root, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{
		".github/workflows/ci.yaml",
		"README.md",
		"pyproject.toml",
		"src/demo/__init__.py",
	}, f.Files)

	content, ok := f.Content("README.md")
	assert.True(t, ok)
	assert.Equal(t, "# demo\n", content)

	// workflow contents are captured, other nested files are not
	_, ok = f.Content(".github/workflows/ci.yaml")
	assert.True(t, ok)
	_, ok = f.Content("src/demo/__init__.py")
	assert.False(t, ok)

	assert.Equal(t, []facts.Language{facts.LangPython}, f.Languages)
	assert.Empty(t, f.Commits)
}

func TestScanSkipsVendorDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "README.md", "")
	writeFile(t, root, "node_modules/pkg/index.js", "")
	writeFile(t, root, ".venv/lib/x.py", "")
	writeFile(t, root, "src/__pycache__/x.pyc", "")

	f, err := Scan(context.Background(), root, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"README.md"}, f.Files)
}

func TestScanRequireGit(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "README.md", "")

	_, err := Scan(context.Background(), root, Options{RequireGit: true})
	var se *ScanError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, KindNotAGitRepository, se.Kind)
}

func TestScanMissingPath(t *testing.T) {
	_, err := Scan(context.Background(), filepath.Join(t.TempDir(), "nope"), Options{})
	var se *ScanError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, KindPathNotFound, se.Kind)

	root := t.TempDir()
	writeFile(t, root, "plain.txt", "")
	_, err = Scan(context.Background(), filepath.Join(root, "plain.txt"), Options{})
	require.ErrorAs(t, err, &se)
	assert.Equal(t, KindPathNotFound, se.Kind)
}

func TestScanCancelled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "README.md", "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Scan(ctx, root, Options{})
	var se *ScanError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, KindCancelled, se.Kind)
}

func TestScanReadsCommits(t *testing.T) {
	root := t.TempDir()
	wt := initRepo(t, root)
	addCommit(t, root, wt, "a.txt", "feat: first change\n\nsome body text\nwrapped nicely\n")
	addCommit(t, root, wt, "b.txt", "fix: second change\n")

	f, err := Scan(context.Background(), root, Options{RequireGit: true})
	require.NoError(t, err)
	require.Len(t, f.Commits, 2)

	// newest first
	assert.Equal(t, "fix: second change", f.Commits[0].Subject)
	assert.Equal(t, "", f.Commits[0].Body)
	assert.Equal(t, "feat: first change", f.Commits[1].Subject)
	assert.Equal(t, "some body text\nwrapped nicely", f.Commits[1].Body)
	assert.Equal(t, "Dev", f.Commits[0].Author)
	assert.NotEmpty(t, f.Commits[0].Hash)
}

func TestScanCapsCommits(t *testing.T) {
	root := t.TempDir()
	wt := initRepo(t, root)
	for _, msg := range []string{"feat: one", "feat: two", "feat: three"} {
		addCommit(t, root, wt, msg[6:]+".txt", msg)
	}

	f, err := Scan(context.Background(), root, Options{MaxCommits: 2, RequireGit: true})
	require.NoError(t, err)
	assert.Len(t, f.Commits, 2)
	assert.Equal(t, "feat: three", f.Commits[0].Subject)
}

func TestScanEmptyRepository(t *testing.T) {
	root := t.TempDir()
	initRepo(t, root)
	writeFile(t, root, "README.md", "")

	f, err := Scan(context.Background(), root, Options{RequireGit: true})
	require.NoError(t, err)
	assert.Empty(t, f.Commits)
	assert.Contains(t, f.Files, "README.md")
}

func TestScanSkipsLargeFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "big.txt", string(make([]byte, 1024)))
	writeFile(t, root, "small.txt", "ok")

	f, err := Scan(context.Background(), root, Options{MaxFileSize: 512})
	require.NoError(t, err)
	assert.Contains(t, f.Files, "big.txt")
	_, ok := f.Content("big.txt")
	assert.False(t, ok, "oversized files are listed but not captured")
	_, ok = f.Content("small.txt")
	assert.True(t, ok)
}

func TestDetectLanguages(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "pyproject.toml", "")
	writeFile(t, root, "Cargo.toml", "")
	assert.Equal(t, []facts.Language{facts.LangPython, facts.LangRust}, DetectLanguages(root))
	assert.Empty(t, DetectLanguages(t.TempDir()))
}
