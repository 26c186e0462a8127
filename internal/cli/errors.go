package cli

import (
	"errors"
	"fmt"
)

// ErrNoStagedChanges is returned when edit mode finds nothing staged
var ErrNoStagedChanges = errors.New("no staged changes to commit")

// ExitError carries the process exit code for a failed run.
// Err may be nil when the failure was already reported (a child process
// exiting non-zero).
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// exitCode maps an error returned by a run to a process exit code
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}
