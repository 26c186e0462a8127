package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/huimingz/aicommit-go/internal/log"
)

// commitWithEditor seeds git's commit editor with raw and hands the terminal
// to git. The seed file is removed on every return path and git's exit code
// becomes ours.
func (r *Runner) commitWithEditor(ctx context.Context, raw string) error {
	seed := r.Config.Paths.SeedFile

	if err := os.MkdirAll(r.Config.Paths.Dir, 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(seed, []byte(strings.TrimSpace(raw)+"\n"), 0o600); err != nil {
		return fmt.Errorf("failed to write commit message file: %w", err)
	}
	defer func() {
		if err := os.Remove(seed); err != nil && !os.IsNotExist(err) {
			log.Warn("failed to remove %s: %v", seed, err)
		}
	}()

	log.Debug("Opening editor with seed file %s", seed)
	code, err := r.Git.CommitWithEditor(ctx, seed, r.Stdio)
	if err != nil {
		return &ExitError{Code: code, Err: err}
	}
	if code != 0 {
		return &ExitError{Code: code}
	}
	return nil
}
