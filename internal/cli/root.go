package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/huimingz/aicommit-go/internal/config"
	"github.com/huimingz/aicommit-go/internal/git"
	"github.com/huimingz/aicommit-go/internal/llm"
	"github.com/huimingz/aicommit-go/internal/log"
	"github.com/huimingz/aicommit-go/internal/ui"
)

var (
	// Global flags
	debugMode  bool
	configFile string
	modelName  string
	noColor    bool

	// Run flags
	runFlags Flags

	// Version info
	version   = "dev"
	gitCommit = "unknown"
	buildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "aicommit",
	Short: "Generate commit messages from your git changes with AI",
	Long: `aicommit reads your staged and unstaged changes, asks an AI model for a
Conventional Commits message and prints a ready-to-run git commit command.

With --edit it opens git's commit editor pre-filled with the message instead.
Edit mode only describes staged changes, since those are what gets committed.

Without -s or -u both staged and unstaged changes are used.

The API key is read from $AICOMMIT_API_KEY, then ~/.config/aicommit/config.json.
On first run you are asked for it and it is saved there (readable only by you).

Examples:
  aicommit
  aicommit -s
  aicommit -e
  aicommit -l ja -m gemini-1.5-pro`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debugMode {
			log.SetDebugMode(true)
			log.Debug("Debug mode enabled")
		}
		if noColor {
			color.NoColor = true
		}
	},
	RunE: runRoot,
}

// Execute runs the root command and returns the process exit code
func Execute() int {
	ctx, stop := interruptContext(context.Background())
	defer stop()

	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionString())

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		if msg := errorMessage(err); msg != "" {
			log.Error("%s", msg)
		}
	}
	return exitCode(err)
}

// errorMessage returns the text to report for err, or "" when the failure
// was already shown (a child process exiting non-zero)
func errorMessage(err error) string {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return ""
	}
	return err.Error()
}

// SetVersionInfo sets version information from build flags
func SetVersionInfo(v, commit, time string) {
	version = v
	gitCommit = commit
	buildTime = time
}

// GetVersionInfo returns version information
func GetVersionInfo() (string, string, string) {
	return version, gitCommit, buildTime
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug mode for verbose output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file path (default: ~/.config/aicommit/config.json)")
	rootCmd.PersistentFlags().StringVarP(&modelName, "model", "m", "", "Model to use (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.Flags().BoolVarP(&runFlags.Staged, "staged", "s", false, "Use staged changes")
	rootCmd.Flags().BoolVarP(&runFlags.Unstaged, "unstaged", "u", false, "Use unstaged changes")
	rootCmd.Flags().BoolVarP(&runFlags.Edit, "edit", "e", false, "Open git's commit editor with the generated message")
	rootCmd.Flags().StringVarP(&runFlags.Language, "language", "l", "", "Commit message language (en, zh, ja, etc.)")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w\nRun '%s --help' for usage", err, cmd.CommandPath())
	})
}

func runRoot(cmd *cobra.Command, args []string) error {
	// A project .env may provide AICOMMIT_API_KEY; real env vars win
	if err := godotenv.Load(); err == nil {
		log.Debug("Loaded .env from working directory")
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if modelName != "" {
		cfg.Model.Model = modelName
	}
	if noColor || color.NoColor {
		cfg.NoColor = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log.DebugConfig("Configuration", cfg)

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	printer := ui.NewPrinter(os.Stderr, ui.WithColor(!cfg.NoColor))
	runner := &Runner{
		Config:      cfg,
		Git:         git.NewExecutor(cwd),
		Credentials: config.NewCredentialStore(cfg.Paths, &firstRunPrompt{paths: cfg.Paths, printer: printer, prompt: ui.NewTerminalPrompt()}),
		NewProvider: llm.NewProviderFactory().CreateWithKey,
		Stdio:       git.TerminalStdio(),
		Printer:     printer,
	}

	return runner.Run(cmd.Context(), runFlags)
}

// firstRunPrompt explains where the key goes before asking for it
type firstRunPrompt struct {
	paths   config.Paths
	printer *ui.Printer
	prompt  config.SecretPrompter
}

func (p *firstRunPrompt) PromptSecret(message string) (string, error) {
	_ = p.printer.PrintInfo("No API key found.")
	_ = p.printer.PrintHint(fmt.Sprintf("It will be saved to %s (readable only by you).", p.paths.File))
	return p.prompt.PromptSecret(message)
}
