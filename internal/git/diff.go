package git

import (
	"context"
	"strings"

	"github.com/sourcegraph/conc"

	"github.com/huimingz/aicommit-go/internal/log"
)

// DiffSet holds the staged and unstaged diff text of one run
type DiffSet struct {
	Staged   string
	Unstaged string
}

// HasStaged reports whether any staged change exists
func (d DiffSet) HasStaged() bool {
	return strings.TrimSpace(d.Staged) != ""
}

// HasUnstaged reports whether any unstaged change exists
func (d DiffSet) HasUnstaged() bool {
	return strings.TrimSpace(d.Unstaged) != ""
}

// Collect runs both diffs concurrently. A failing git invocation yields an
// empty side; it never fails the run.
func Collect(ctx context.Context, exec Executor) DiffSet {
	var diffs DiffSet

	wg := conc.NewWaitGroup()
	wg.Go(func() {
		out, err := exec.DiffCached(ctx)
		if err != nil {
			log.Debug("staged diff unavailable: %v", err)
			return
		}
		diffs.Staged = out
	})
	wg.Go(func() {
		out, err := exec.DiffWorkingTree(ctx)
		if err != nil {
			log.Debug("unstaged diff unavailable: %v", err)
			return
		}
		diffs.Unstaged = out
	})
	wg.Wait()

	return diffs
}
