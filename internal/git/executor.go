package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Stdio connects a child git process to the terminal
type Stdio struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// TerminalStdio returns the process's own standard streams
func TerminalStdio() Stdio {
	return Stdio{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// Executor defines the interface for git command execution
type Executor interface {
	// DiffCached returns the diff of staged changes (index against HEAD)
	DiffCached(ctx context.Context) (string, error)

	// DiffWorkingTree returns the diff of unstaged changes (working tree against index)
	DiffWorkingTree(ctx context.Context) (string, error)

	// CommitWithEditor runs an interactive commit seeded from messageFile
	// and returns git's exit code
	CommitWithEditor(ctx context.Context, messageFile string, stdio Stdio) (int, error)
}

// DefaultExecutor is the default implementation of Executor
type DefaultExecutor struct {
	workDir string
}

// NewExecutor creates a new DefaultExecutor
func NewExecutor(workDir string) *DefaultExecutor {
	return &DefaultExecutor{workDir: workDir}
}

// runGit runs a git command and returns the output
func (e *DefaultExecutor) runGit(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = e.workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s failed: %w\n%s", strings.Join(args, " "), err, stderr.String())
	}

	return strings.TrimSpace(stdout.String()), nil
}

// DiffCached returns the diff of staged changes
func (e *DefaultExecutor) DiffCached(ctx context.Context) (string, error) {
	return e.runGit(ctx, "diff", "--cached")
}

// DiffWorkingTree returns the diff of unstaged changes
func (e *DefaultExecutor) DiffWorkingTree(ctx context.Context) (string, error) {
	return e.runGit(ctx, "diff")
}

// CommitWithEditor runs `git commit -e -F messageFile` attached to stdio.
// A non-zero git exit is reported through the exit code, not the error.
func (e *DefaultExecutor) CommitWithEditor(ctx context.Context, messageFile string, stdio Stdio) (int, error) {
	cmd := exec.CommandContext(ctx, "git", "commit", "-e", "-F", messageFile)
	cmd.Dir = e.workDir
	cmd.Stdin = stdio.In
	cmd.Stdout = stdio.Out
	cmd.Stderr = stdio.Err

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return 1, fmt.Errorf("failed to run git commit: %w", err)
}
