// Package message turns generated commit text into a copyable git command.
package message

import (
	"regexp"
	"strings"
)

var paragraphBreak = regexp.MustCompile(`\n[ \t]*\n`)

// Message is a commit message split into its parts
type Message struct {
	Title string
	Body  []string
}

// Paragraphs returns the title followed by the body paragraphs
func (m Message) Paragraphs() []string {
	if m.Title == "" {
		return nil
	}
	return append([]string{m.Title}, m.Body...)
}

// IsEmpty reports whether no text survived parsing
func (m Message) IsEmpty() bool {
	return m.Title == ""
}

// Parse splits raw text on blank lines, collapses whitespace inside each
// paragraph to single spaces and drops empty paragraphs.
func Parse(raw string) Message {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")

	var paragraphs []string
	for _, chunk := range paragraphBreak.Split(raw, -1) {
		p := strings.Join(strings.Fields(chunk), " ")
		if p != "" {
			paragraphs = append(paragraphs, p)
		}
	}

	if len(paragraphs) == 0 {
		return Message{}
	}
	return Message{Title: paragraphs[0], Body: paragraphs[1:]}
}

// ShellQuote wraps s in single quotes for a POSIX shell
func ShellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// Command renders a multi-line `git commit` invocation with one -m per
// paragraph, title first
func Command(m Message) string {
	paragraphs := m.Paragraphs()
	if len(paragraphs) == 0 {
		return ""
	}

	args := make([]string, len(paragraphs))
	for i, p := range paragraphs {
		args[i] = "-m " + ShellQuote(p)
	}
	return "git commit " + strings.Join(args, " \\\n  ")
}
