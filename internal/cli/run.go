package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/huimingz/aicommit-go/internal/agent"
	"github.com/huimingz/aicommit-go/internal/config"
	"github.com/huimingz/aicommit-go/internal/git"
	"github.com/huimingz/aicommit-go/internal/llm"
	"github.com/huimingz/aicommit-go/internal/log"
	"github.com/huimingz/aicommit-go/internal/message"
	"github.com/huimingz/aicommit-go/internal/ui"
	"github.com/huimingz/aicommit-go/pkg/lang"
)

// NoChangesNotice is printed when the selected scope has no diff
const NoChangesNotice = "No changes detected."

// Flags are the parsed command-line switches of one run
type Flags struct {
	Staged   bool
	Unstaged bool
	Edit     bool
	Language string
}

// CredentialSource yields the API key
type CredentialSource interface {
	Acquire() (string, config.CredentialSource, error)
}

// ProviderFunc builds the backend for the resolved key
type ProviderFunc func(cfg *config.Config, apiKey string) (llm.Provider, error)

// Runner drives one pipeline run: credential, diffs, prompt, generation,
// then either a printed command or an interactive commit
type Runner struct {
	Config      *config.Config
	Git         git.Executor
	Credentials CredentialSource
	NewProvider ProviderFunc
	Stdio       git.Stdio
	Printer     *ui.Printer // progress and status, normally on stderr
}

// Run executes the pipeline for flags
func (r *Runner) Run(ctx context.Context, flags Flags) error {
	scope := agent.ResolveScope(flags.Staged, flags.Unstaged)
	if flags.Edit {
		// git commit only records the index
		scope = agent.Scope{Staged: true}
	}
	language := lang.ParseLanguage(r.Config.GetLanguage(flags.Language))
	log.Debug("Scope: %s, language: %s, edit: %t", scope, language, flags.Edit)

	apiKey, source, err := r.Credentials.Acquire()
	if err != nil {
		if errors.Is(err, config.ErrMissingCredential) {
			return &ExitError{Code: 1, Err: fmt.Errorf("%w; set %s or run again to enter one", err, config.EnvAPIKey)}
		}
		return err
	}
	log.Debug("API key loaded from %s", source)

	progress := ui.NewProgress(r.Printer, 2)

	var diffs git.DiffSet
	_ = progress.Run("Collecting changes", func() error {
		diffs = git.Collect(ctx, r.Git)
		return nil
	})

	if flags.Edit && !diffs.HasStaged() {
		_ = r.Printer.PrintHint("Stage your changes first:\n  git add <file>\n  git add -A")
		return &ExitError{Code: 1, Err: ErrNoStagedChanges}
	}

	prompt, err := agent.BuildPrompt(diffs, scope, language)
	if errors.Is(err, agent.ErrNoChanges) {
		_, err = fmt.Fprintln(r.Stdio.Out, NoChangesNotice)
		return err
	}
	if err != nil {
		return err
	}

	provider, err := r.NewProvider(r.Config, apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM provider: %w", err)
	}
	generator, err := agent.NewGenerator(provider)
	if err != nil {
		return err
	}

	var raw string
	err = progress.Run(fmt.Sprintf("Generating commit message (%s)", provider.GetConfig().Model), func() error {
		var genErr error
		raw, genErr = generator.Generate(ctx, prompt)
		return genErr
	})
	if err != nil {
		return err
	}

	if flags.Edit {
		return r.commitWithEditor(ctx, raw)
	}
	return printCommand(r.Stdio.Out, r.Printer, raw)
}

// printCommand writes the copyable git command for raw to out
func printCommand(out io.Writer, printer *ui.Printer, raw string) error {
	msg := message.Parse(raw)
	if msg.IsEmpty() {
		return fmt.Errorf("generated message is empty")
	}

	cmdPrinter := ui.NewPrinter(out, ui.WithColor(printer.ColorEnabled()))
	return cmdPrinter.PrintCommand(message.Command(msg))
}
