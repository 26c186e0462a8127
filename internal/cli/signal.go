package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// interruptContext returns a context cancelled on SIGINT or SIGTERM.
// Catching the signal keeps deferred cleanup (the edit mode seed file)
// running instead of the process dying mid-run.
func interruptContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
