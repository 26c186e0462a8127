package ui

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"golang.org/x/term"
)

const spinnerDelay = 100 * time.Millisecond

// Progress renders numbered steps, each animated by a spinner while it runs.
// The spinner only animates on a terminal; elsewhere only the final markers
// are written.
type Progress struct {
	printer *Printer
	total   int
	current int
	animate bool
}

// NewProgress creates a Progress for total steps, writing through printer
func NewProgress(printer *Printer, total int) *Progress {
	animate := false
	if f, ok := printer.Writer().(*os.File); ok {
		animate = term.IsTerminal(int(f.Fd()))
	}
	return &Progress{printer: printer, total: total, animate: animate}
}

// Step is one running progress step
type Step struct {
	label    string
	printer  *Printer
	spinner  *spinner.Spinner
	stopOnce sync.Once
}

// Start begins the next step and starts its spinner
func (p *Progress) Start(message string) *Step {
	p.current++
	step := &Step{
		label:   fmt.Sprintf("[%d/%d] %s", p.current, p.total, message),
		printer: p.printer,
	}

	if p.animate {
		s := spinner.New(spinner.CharSets[14], spinnerDelay, spinner.WithWriterFile(p.printer.Writer().(*os.File)))
		s.Suffix = " " + step.label
		if p.printer.ColorEnabled() {
			_ = s.Color("cyan")
		}
		s.Start()
		step.spinner = s
	}
	return step
}

// Stop halts the spinner; safe to call more than once
func (s *Step) Stop() {
	s.stopOnce.Do(func() {
		if s.spinner != nil {
			s.spinner.Stop()
		}
	})
}

// Done stops the spinner and prints the completion marker
func (s *Step) Done() {
	s.Stop()
	_ = s.printer.PrintSuccess(s.label)
}

// Fail stops the spinner and prints the failure marker
func (s *Step) Fail() {
	s.Stop()
	_ = s.printer.PrintFailure(s.label)
}

// Run wraps fn in a step. The spinner is stopped on every return path,
// including a panic in fn.
func (p *Progress) Run(message string, fn func() error) error {
	step := p.Start(message)
	defer step.Stop()

	if err := fn(); err != nil {
		step.Fail()
		return err
	}
	step.Done()
	return nil
}
