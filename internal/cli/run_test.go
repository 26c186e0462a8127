package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huimingz/aicommit-go/internal/agent"
	"github.com/huimingz/aicommit-go/internal/config"
	"github.com/huimingz/aicommit-go/internal/git"
	"github.com/huimingz/aicommit-go/internal/llm"
	"github.com/huimingz/aicommit-go/internal/ui"
)

// fakeExecutor serves canned diffs and records the editor commit
type fakeExecutor struct {
	staged   string
	unstaged string

	commitCode   int
	commitErr    error
	commitCalls  int
	seedContent  string
	seedExisted  bool
	seedFilePath string
}

func (f *fakeExecutor) DiffCached(ctx context.Context) (string, error) {
	return f.staged, nil
}

func (f *fakeExecutor) DiffWorkingTree(ctx context.Context) (string, error) {
	return f.unstaged, nil
}

func (f *fakeExecutor) CommitWithEditor(ctx context.Context, messageFile string, stdio git.Stdio) (int, error) {
	f.commitCalls++
	f.seedFilePath = messageFile
	data, err := os.ReadFile(messageFile)
	if err == nil {
		f.seedExisted = true
		f.seedContent = string(data)
	}
	return f.commitCode, f.commitErr
}

// fakeCredentials returns a fixed key or error
type fakeCredentials struct {
	key   string
	err   error
	calls int
}

func (f *fakeCredentials) Acquire() (string, config.CredentialSource, error) {
	f.calls++
	if f.err != nil {
		return "", "", f.err
	}
	return f.key, config.SourceEnv, nil
}

// fakeChatModel returns a canned reply and records requests
type fakeChatModel struct {
	reply  string
	err    error
	inputs [][]*schema.Message
}

func (m *fakeChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	m.inputs = append(m.inputs, input)
	if m.err != nil {
		return nil, m.err
	}
	return schema.AssistantMessage(m.reply, nil), nil
}

func (m *fakeChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("streaming not supported")
}

func (m *fakeChatModel) BindTools(tools []*schema.ToolInfo) error {
	return nil
}

type fakeProvider struct {
	cfg  config.ModelConfig
	chat *fakeChatModel
}

func (p *fakeProvider) Name() string                  { return "fake" }
func (p *fakeProvider) GetConfig() config.ModelConfig { return p.cfg }
func (p *fakeProvider) CreateChatModel(ctx context.Context) (model.ChatModel, error) {
	return p.chat, nil
}

type runFixture struct {
	runner  *Runner
	exec    *fakeExecutor
	creds   *fakeCredentials
	chat    *fakeChatModel
	stdout  *bytes.Buffer
	stderr  *bytes.Buffer
	apiKeys []string
	paths   config.Paths
}

func newRunFixture(t *testing.T, exec *fakeExecutor, reply string) *runFixture {
	t.Helper()

	paths := config.PathsFor(filepath.Join(t.TempDir(), "aicommit", "config.json"))
	f := &runFixture{
		exec:   exec,
		creds:  &fakeCredentials{key: "test-key"},
		chat:   &fakeChatModel{reply: reply},
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		paths:  paths,
	}

	cfg := &config.Config{
		Model:    config.ModelConfig{Provider: "gemini", Model: "test-model"},
		Language: "en",
		NoColor:  true,
		Paths:    paths,
	}

	f.runner = &Runner{
		Config:      cfg,
		Git:         exec,
		Credentials: f.creds,
		NewProvider: func(cfg *config.Config, apiKey string) (llm.Provider, error) {
			f.apiKeys = append(f.apiKeys, apiKey)
			modelCfg := cfg.Model
			modelCfg.APIKey = apiKey
			return &fakeProvider{cfg: modelCfg, chat: f.chat}, nil
		},
		Stdio:   git.Stdio{In: strings.NewReader(""), Out: f.stdout, Err: f.stderr},
		Printer: ui.NewPrinter(f.stderr, ui.WithColor(false)),
	}
	return f
}

func (f *runFixture) promptSent(t *testing.T) string {
	t.Helper()
	require.Len(t, f.chat.inputs, 1)
	require.Len(t, f.chat.inputs[0], 1)
	return f.chat.inputs[0][0].Content
}

const stagedDiff = "diff --git a/auth.go b/auth.go\n+func Login() {}\n"

func TestRun_PrintsCommand(t *testing.T) {
	f := newRunFixture(t, &fakeExecutor{staged: stagedDiff},
		"feat: add login\n\nAdds email/password login with validation.")

	err := f.runner.Run(context.Background(), Flags{})
	require.NoError(t, err)

	out := f.stdout.String()
	assert.Contains(t, out, "Run this command to commit:")
	assert.Contains(t, out, "git commit -m 'feat: add login' \\\n  -m 'Adds email/password login with validation.'")

	prompt := f.promptSent(t)
	assert.Contains(t, prompt, "### Staged changes")
	assert.NotContains(t, prompt, "### Unstaged changes")
	assert.Equal(t, []string{"test-key"}, f.apiKeys)

	assert.Contains(t, f.stderr.String(), "[1/2] Collecting changes")
	assert.Contains(t, f.stderr.String(), "[2/2] Generating commit message (test-model)")
}

func TestRun_UnstagedOnlyScope(t *testing.T) {
	f := newRunFixture(t, &fakeExecutor{unstaged: "diff --git a/README.md b/README.md\n+typo\n"},
		"docs: fix typo in README")

	err := f.runner.Run(context.Background(), Flags{Unstaged: true})
	require.NoError(t, err)

	assert.Contains(t, f.stdout.String(), "git commit -m 'docs: fix typo in README'")
	assert.NotContains(t, f.stdout.String(), "\\\n")

	prompt := f.promptSent(t)
	assert.Contains(t, prompt, "### Unstaged changes")
	assert.NotContains(t, prompt, "### Staged changes")
}

func TestRun_ScopeExcludesOtherSide(t *testing.T) {
	f := newRunFixture(t, &fakeExecutor{staged: stagedDiff, unstaged: "diff --git a/b b/b\n+x\n"}, "fix: handle nil")

	err := f.runner.Run(context.Background(), Flags{Staged: true})
	require.NoError(t, err)

	prompt := f.promptSent(t)
	assert.Contains(t, prompt, "### Staged changes")
	assert.NotContains(t, prompt, "### Unstaged changes")
}

func TestRun_NoChanges(t *testing.T) {
	f := newRunFixture(t, &fakeExecutor{}, "unused")

	err := f.runner.Run(context.Background(), Flags{})
	require.NoError(t, err)

	assert.Equal(t, NoChangesNotice+"\n", f.stdout.String())
	assert.Empty(t, f.chat.inputs, "no remote call without changes")
	assert.Empty(t, f.apiKeys)
}

func TestRun_SelectedScopeEmpty(t *testing.T) {
	f := newRunFixture(t, &fakeExecutor{unstaged: "diff --git a/b b/b\n+x\n"}, "unused")

	err := f.runner.Run(context.Background(), Flags{Staged: true})
	require.NoError(t, err)

	assert.Equal(t, NoChangesNotice+"\n", f.stdout.String())
	assert.Empty(t, f.chat.inputs)
}

func TestRun_MissingCredential(t *testing.T) {
	f := newRunFixture(t, &fakeExecutor{staged: stagedDiff}, "unused")
	f.creds.err = config.ErrMissingCredential

	err := f.runner.Run(context.Background(), Flags{})
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrMissingCredential)
	assert.Equal(t, 1, exitCode(err))
	assert.Contains(t, err.Error(), config.EnvAPIKey)
	assert.Empty(t, f.chat.inputs)
	assert.Empty(t, f.stdout.String())
}

func TestRun_RemoteFailure(t *testing.T) {
	f := newRunFixture(t, &fakeExecutor{staged: stagedDiff}, "")
	f.chat.err = errors.New("quota exceeded")

	err := f.runner.Run(context.Background(), Flags{})
	require.Error(t, err)

	var remoteErr *agent.RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, 1, exitCode(err))
	assert.Len(t, f.chat.inputs, 1, "no retry")
	assert.Empty(t, f.stdout.String())
	assert.Contains(t, f.stderr.String(), "✖ [2/2] Generating commit message")
}

func TestRun_Language(t *testing.T) {
	f := newRunFixture(t, &fakeExecutor{staged: stagedDiff}, "feat: ログイン機能を追加")

	err := f.runner.Run(context.Background(), Flags{Language: "ja"})
	require.NoError(t, err)
	assert.Contains(t, f.promptSent(t), "Japanese")
}

func TestRun_Edit_CommitsWithSeedFile(t *testing.T) {
	exec := &fakeExecutor{staged: stagedDiff}
	f := newRunFixture(t, exec, "feat: add login\n\nAdds email/password login with validation.\n")

	err := f.runner.Run(context.Background(), Flags{Edit: true})
	require.NoError(t, err)

	assert.Equal(t, 1, exec.commitCalls)
	assert.Equal(t, f.paths.SeedFile, exec.seedFilePath)
	require.True(t, exec.seedExisted)
	assert.Equal(t, "feat: add login\n\nAdds email/password login with validation.\n", exec.seedContent)

	_, statErr := os.Stat(f.paths.SeedFile)
	assert.True(t, os.IsNotExist(statErr), "seed file removed after commit")
	assert.NotContains(t, f.stdout.String(), "git commit -m")
}

func TestRun_Edit_SeedFileMode(t *testing.T) {
	var mode os.FileMode
	exec := &fakeExecutor{staged: stagedDiff}
	f := newRunFixture(t, exec, "fix: x")

	f.runner.Git = &statExecutor{fakeExecutor: exec, mode: &mode}
	require.NoError(t, f.runner.Run(context.Background(), Flags{Edit: true}))
	assert.Equal(t, os.FileMode(0o600), mode.Perm())
}

// statExecutor captures the seed file mode while the editor is "open"
type statExecutor struct {
	*fakeExecutor
	mode *os.FileMode
}

func (s *statExecutor) CommitWithEditor(ctx context.Context, messageFile string, stdio git.Stdio) (int, error) {
	if info, err := os.Stat(messageFile); err == nil {
		*s.mode = info.Mode()
	}
	return s.fakeExecutor.CommitWithEditor(ctx, messageFile, stdio)
}

func TestRun_Edit_DescribesOnlyStagedChanges(t *testing.T) {
	for _, flags := range []Flags{{Edit: true}, {Edit: true, Unstaged: true}, {Edit: true, Staged: true, Unstaged: true}} {
		exec := &fakeExecutor{staged: stagedDiff, unstaged: "diff --git a/notes.txt b/notes.txt\n+draft\n"}
		f := newRunFixture(t, exec, "feat: add login")

		require.NoError(t, f.runner.Run(context.Background(), flags))

		prompt := f.promptSent(t)
		assert.Contains(t, prompt, "### Staged changes")
		assert.NotContains(t, prompt, "### Unstaged changes")
		assert.NotContains(t, prompt, "notes.txt")
		assert.Equal(t, 1, exec.commitCalls)
	}
}

func TestRun_Edit_NoStagedChanges(t *testing.T) {
	exec := &fakeExecutor{unstaged: "diff --git a/b b/b\n+x\n"}
	f := newRunFixture(t, exec, "unused")

	err := f.runner.Run(context.Background(), Flags{Edit: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoStagedChanges)
	assert.Equal(t, 1, exitCode(err))

	assert.Contains(t, f.stderr.String(), "git add")
	assert.Empty(t, f.chat.inputs, "no remote call")
	assert.Zero(t, exec.commitCalls)
	_, statErr := os.Stat(f.paths.SeedFile)
	assert.True(t, os.IsNotExist(statErr), "no seed file written")
}

func TestRun_Edit_PropagatesGitExitCode(t *testing.T) {
	exec := &fakeExecutor{staged: stagedDiff, commitCode: 1}
	f := newRunFixture(t, exec, "feat: add login")

	err := f.runner.Run(context.Background(), Flags{Edit: true})
	require.Error(t, err)
	assert.Equal(t, 1, exitCode(err))
	assert.Equal(t, "", errorMessage(err), "git already reported the failure")

	_, statErr := os.Stat(f.paths.SeedFile)
	assert.True(t, os.IsNotExist(statErr), "seed file removed on failure")
}

func TestRun_Edit_LaunchFailure(t *testing.T) {
	exec := &fakeExecutor{staged: stagedDiff, commitCode: 1, commitErr: errors.New("git not found")}
	f := newRunFixture(t, exec, "feat: add login")

	err := f.runner.Run(context.Background(), Flags{Edit: true})
	require.Error(t, err)
	assert.Equal(t, 1, exitCode(err))
	assert.Contains(t, errorMessage(err), "git not found")

	_, statErr := os.Stat(f.paths.SeedFile)
	assert.True(t, os.IsNotExist(statErr))
}

func TestPrintCommand_EmptyMessage(t *testing.T) {
	var out bytes.Buffer
	err := printCommand(&out, ui.NewPrinter(&out, ui.WithColor(false)), " \n\n \t")
	assert.Error(t, err)
	assert.Empty(t, out.String())
}
