package scanner

import (
	"context"
	"errors"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/aexoden/norms/internal/facts"
)

// readCommits extracts up to max commits from the repository log, newest
// first. A repository with no commits yet (no HEAD) yields an empty slice.
func readCommits(ctx context.Context, root string, max int) ([]facts.Commit, error) {
	repo, err := git.PlainOpen(root)
	if err != nil {
		return nil, &ScanError{Kind: KindNotAGitRepository, Path: root, Err: err}
	}

	head, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, nil
		}
		return nil, &ScanError{Kind: KindNotAGitRepository, Path: root, Err: err}
	}

	iter, err := repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, &ScanError{Kind: KindNotAGitRepository, Path: root, Err: err}
	}
	defer iter.Close()

	var out []facts.Commit
	stop := errors.New("done")
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if max > 0 && len(out) >= max {
			return stop
		}
		subject, body := facts.SplitMessage(c.Message)
		out = append(out, facts.Commit{
			Hash:    c.Hash.String(),
			Subject: subject,
			Body:    body,
			Author:  c.Author.Name,
			When:    c.Author.When.UTC(),
		})
		return nil
	})
	if err != nil && !errors.Is(err, stop) {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, &ScanError{Kind: KindCancelled, Path: root, Err: err}
		}
		return nil, &ScanError{Kind: KindNotAGitRepository, Path: root, Err: err}
	}
	return out, nil
}
