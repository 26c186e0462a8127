package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"golang.org/x/term"
)

// ErrInterrupted is returned when the user interrupts input with Ctrl+C
var ErrInterrupted = errors.New("input interrupted")

// SecretPrompt reads a single secret line from the operator
type SecretPrompt struct {
	In  io.Reader
	Out io.Writer
}

// NewTerminalPrompt returns a SecretPrompt bound to the controlling terminal
func NewTerminalPrompt() *SecretPrompt {
	return &SecretPrompt{In: os.Stdin, Out: os.Stderr}
}

// PromptSecret shows message and reads one line. On a terminal the input is
// hidden; otherwise it is read as plain text.
func (p *SecretPrompt) PromptSecret(message string) (string, error) {
	if f, ok := p.In.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		secret, err := readline.Password(message)
		if errors.Is(err, readline.ErrInterrupt) {
			return "", ErrInterrupted
		}
		if err != nil {
			return "", err
		}
		return string(secret), nil
	}

	if _, err := fmt.Fprint(p.Out, message); err != nil {
		return "", err
	}

	scanner := bufio.NewScanner(p.In)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return scanner.Text(), nil
}
