package rules

import (
	"context"
	"fmt"
	"sync"

	"github.com/aexoden/norms/internal/facts"
)

const evalWorkers = 4

// Evaluate runs every enabled rule against the snapshot and returns one
// finding per rule, in registration order. Predicates are pure and read-only
// over shared facts, so they are dispatched across a small worker pool;
// results land back in their registration slot. A panicking predicate is
// contained as a skipped finding and never aborts the run. Cancellation
// aborts the whole evaluation with the context error.
func Evaluate(ctx context.Context, f *facts.Facts) ([]Finding, error) {
	rs := List()
	out := make([]Finding, len(rs))

	workers := evalWorkers
	if len(rs) < workers {
		workers = len(rs)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				out[i] = runRule(rs[i], f)
			}
		}()
	}

dispatch:
	for i := range rs {
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func runRule(r Rule, f *facts.Facts) (fd Finding) {
	defer func() {
		if rec := recover(); rec != nil {
			fd = skipped(fmt.Sprintf("rule error: %v", rec))
			stamp(&fd, r)
		}
	}()

	if r.Language != "" && !f.HasLanguage(r.Language) {
		fd = skipped(fmt.Sprintf("only applies to %s projects", r.Language))
		stamp(&fd, r)
		return fd
	}

	fd = r.Eval(f)
	if fd.Status == "" {
		fd = skipped("rule returned no status")
	}
	stamp(&fd, r)
	return fd
}

func stamp(fd *Finding, r Rule) {
	fd.Rule = r.ID
	fd.Category = r.Category
	fd.Severity = r.Severity
}
