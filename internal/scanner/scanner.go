// Package scanner builds the immutable facts snapshot a verification run
// evaluates against: file tree, captured file contents, commit log, detected
// languages. It never writes to the repository.
package scanner

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/aexoden/norms/internal/facts"
)

type Options struct {
	// MaxCommits caps how much history is read; 0 means the default.
	MaxCommits int
	// MaxFileSize caps content capture per file; 0 means the default.
	MaxFileSize int64
	// RequireGit makes a missing .git fatal. When false a plain directory
	// scans with an empty commit log.
	RequireGit bool
}

const (
	defaultMaxCommits  = 100
	defaultMaxFileSize = 256 << 10
)

var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	".venv":        true,
	"__pycache__":  true,
}

// Scan walks root and produces the facts snapshot, or a *ScanError.
func Scan(ctx context.Context, root string, opts Options) (*facts.Facts, error) {
	if opts.MaxCommits == 0 {
		opts.MaxCommits = defaultMaxCommits
	}
	if opts.MaxFileSize == 0 {
		opts.MaxFileSize = defaultMaxFileSize
	}

	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return nil, &ScanError{Kind: KindPermissionDenied, Path: root, Err: err}
		}
		return nil, &ScanError{Kind: KindPathNotFound, Path: root, Err: err}
	}
	if !info.IsDir() {
		return nil, &ScanError{Kind: KindPathNotFound, Path: root, Err: errors.New("not a directory")}
	}

	var files []string
	contents := map[string]string{}

	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, werr error) error {
		if werr != nil {
			if errors.Is(werr, fs.ErrPermission) {
				return &ScanError{Kind: KindPermissionDenied, Path: p, Err: werr}
			}
			// A file can vanish mid-walk; record nothing and move on.
			return nil
		}
		if err := ctx.Err(); err != nil {
			return &ScanError{Kind: KindCancelled, Path: root, Err: err}
		}
		rel, rerr := filepath.Rel(root, p)
		if rerr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if rel != "." && skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		files = append(files, rel)
		if captureContent(rel) {
			if fi, err := d.Info(); err == nil && fi.Size() <= opts.MaxFileSize {
				if b, err := os.ReadFile(p); err == nil {
					contents[rel] = string(b)
				}
			}
		}
		return nil
	})
	if err != nil {
		var se *ScanError
		if errors.As(err, &se) {
			return nil, se
		}
		return nil, &ScanError{Kind: KindPathNotFound, Path: root, Err: err}
	}

	var commits []facts.Commit
	commits, err = readCommits(ctx, root, opts.MaxCommits)
	if err != nil {
		var se *ScanError
		if errors.As(err, &se) && se.Kind == KindNotAGitRepository && !opts.RequireGit {
			commits = nil
		} else {
			return nil, err
		}
	}

	langs := DetectLanguages(root)
	return facts.New(root, files, contents, commits, langs), nil
}

// captureContent decides whether a file's text is kept for rule predicates:
// everything at the repository root plus CI workflow definitions.
func captureContent(rel string) bool {
	if !strings.Contains(rel, "/") {
		return true
	}
	return strings.HasPrefix(rel, ".github/workflows/")
}
