package agent

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/huimingz/aicommit-go/internal/git"
	"github.com/huimingz/aicommit-go/pkg/lang"
)

// ErrNoChanges is returned when the selected diffs are all empty
var ErrNoChanges = errors.New("no changes detected")

var commitPromptTmpl = template.Must(template.New("commit_prompt").Parse(CommitPrompt))

// Scope selects which diffs feed the prompt
type Scope struct {
	Staged   bool
	Unstaged bool
}

// ResolveScope applies the "nothing selected means everything" rule
func ResolveScope(staged, unstaged bool) Scope {
	if !staged && !unstaged {
		return Scope{Staged: true, Unstaged: true}
	}
	return Scope{Staged: staged, Unstaged: unstaged}
}

// String returns a short description for progress output
func (s Scope) String() string {
	switch {
	case s.Staged && s.Unstaged:
		return "staged and unstaged"
	case s.Staged:
		return "staged"
	case s.Unstaged:
		return "unstaged"
	default:
		return "none"
	}
}

// BuildPrompt assembles the instructions and the selected diff sections.
// It returns ErrNoChanges when nothing selected has content.
func BuildPrompt(diffs git.DiffSet, scope Scope, language lang.Language) (string, error) {
	var sections []string
	if scope.Staged && diffs.HasStaged() {
		sections = append(sections, diffSection("Staged changes", diffs.Staged))
	}
	if scope.Unstaged && diffs.HasUnstaged() {
		sections = append(sections, diffSection("Unstaged changes", diffs.Unstaged))
	}
	if len(sections) == 0 {
		return "", ErrNoChanges
	}

	var buf bytes.Buffer
	data := struct {
		Language string
	}{
		Language: language.PromptName(),
	}
	if err := commitPromptTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}

	buf.WriteString("\n")
	buf.WriteString(strings.Join(sections, "\n\n"))
	buf.WriteString("\n")
	return buf.String(), nil
}

// diffSection wraps one diff in a labelled fenced block
func diffSection(label, diff string) string {
	var b strings.Builder
	b.WriteString("### ")
	b.WriteString(label)
	b.WriteString("\n```diff\n")
	b.WriteString(strings.TrimRight(diff, "\n"))
	b.WriteString("\n```")
	return b.String()
}
