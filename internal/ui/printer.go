package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// PrinterOption is a functional option for Printer
type PrinterOption func(*Printer)

// WithColor enables or disables color output
func WithColor(enabled bool) PrinterOption {
	return func(p *Printer) {
		p.colorEnabled = enabled
	}
}

// Printer writes styled status lines to the terminal
type Printer struct {
	writer       io.Writer
	colorEnabled bool
}

// NewPrinter creates a new Printer
func NewPrinter(writer io.Writer, opts ...PrinterOption) *Printer {
	p := &Printer{
		writer:       writer,
		colorEnabled: true,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Writer returns the underlying writer
func (p *Printer) Writer() io.Writer {
	return p.writer
}

// ColorEnabled reports whether output is styled
func (p *Printer) ColorEnabled() bool {
	return p.colorEnabled
}

func (p *Printer) style(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if !p.colorEnabled {
		c.DisableColor()
	}
	return c
}

// PrintSuccess prints a completed step
func (p *Printer) PrintSuccess(message string) error {
	_, err := p.style(color.FgGreen).Fprintf(p.writer, "✔ %s\n", message)
	return err
}

// PrintFailure prints a failed step
func (p *Printer) PrintFailure(message string) error {
	_, err := p.style(color.FgRed).Fprintf(p.writer, "✖ %s\n", message)
	return err
}

// PrintInfo prints an info message
func (p *Printer) PrintInfo(message string) error {
	_, err := p.style(color.FgCyan).Fprintf(p.writer, "ℹ %s\n", message)
	return err
}

// PrintHint prints dimmed guidance
func (p *Printer) PrintHint(message string) error {
	_, err := p.style(color.FgHiBlack).Fprintln(p.writer, message)
	return err
}

// PrintCommand prints the composed commit command under a header
func (p *Printer) PrintCommand(command string) error {
	if _, err := p.style(color.Bold).Fprintln(p.writer, "\nRun this command to commit:"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(p.writer); err != nil {
		return err
	}
	_, err := p.style(color.FgYellow).Fprintln(p.writer, command)
	return err
}
