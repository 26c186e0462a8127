package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePrompter returns a canned answer and counts calls
type fakePrompter struct {
	answer string
	err    error
	calls  int
}

func (f *fakePrompter) PromptSecret(message string) (string, error) {
	f.calls++
	return f.answer, f.err
}

func newTestStore(t *testing.T, prompter SecretPrompter, env map[string]string) (*CredentialStore, Paths) {
	t.Helper()
	paths := PathsFor(filepath.Join(t.TempDir(), "aicommit", "config.json"))
	store := NewCredentialStore(paths, prompter)
	store.getenv = func(name string) string { return env[name] }
	return store, paths
}

func readJSON(t *testing.T, path string) map[string]interface{} {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &doc))
	return doc
}

func TestCredentialStore_EnvWinsOverFile(t *testing.T) {
	prompter := &fakePrompter{answer: "sk-prompt"}
	store, paths := newTestStore(t, prompter, map[string]string{EnvAPIKey: "sk-env"})
	require.NoError(t, store.Save("sk-file"))

	key, source, err := store.Acquire()
	require.NoError(t, err)
	assert.Equal(t, "sk-env", key)
	assert.Equal(t, SourceEnv, source)
	assert.Zero(t, prompter.calls)
	assert.Equal(t, "sk-file", readJSON(t, paths.File)["api_key"], "env key is never persisted")
}

func TestCredentialStore_FileBeforePrompt(t *testing.T) {
	prompter := &fakePrompter{answer: "sk-prompt"}
	store, _ := newTestStore(t, prompter, nil)
	require.NoError(t, store.Save("sk-file"))

	key, source, err := store.Acquire()
	require.NoError(t, err)
	assert.Equal(t, "sk-file", key)
	assert.Equal(t, SourceFile, source)
	assert.Zero(t, prompter.calls)
}

func TestCredentialStore_PromptPersists(t *testing.T) {
	prompter := &fakePrompter{answer: "  sk-prompt\n"}
	store, paths := newTestStore(t, prompter, nil)

	key, source, err := store.Acquire()
	require.NoError(t, err)
	assert.Equal(t, "sk-prompt", key)
	assert.Equal(t, SourcePrompt, source)
	assert.Equal(t, 1, prompter.calls)

	info, err := os.Stat(paths.File)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	assert.Equal(t, "sk-prompt", readJSON(t, paths.File)["api_key"])

	// Second run reads the stored key
	key, source, err = store.Acquire()
	require.NoError(t, err)
	assert.Equal(t, "sk-prompt", key)
	assert.Equal(t, SourceFile, source)
	assert.Equal(t, 1, prompter.calls)
}

func TestCredentialStore_EmptyFileKeyPrompts(t *testing.T) {
	prompter := &fakePrompter{answer: "sk-new"}
	store, paths := newTestStore(t, prompter, nil)
	require.NoError(t, os.MkdirAll(paths.Dir, 0o700))
	require.NoError(t, os.WriteFile(paths.File, []byte(`{"api_key": "", "model": "gemini-1.5-pro"}`), 0o644))

	key, _, err := store.Acquire()
	require.NoError(t, err)
	assert.Equal(t, "sk-new", key)

	doc := readJSON(t, paths.File)
	assert.Equal(t, "sk-new", doc["api_key"])
	assert.Equal(t, "gemini-1.5-pro", doc["model"], "other settings survive the rewrite")

	info, err := os.Stat(paths.File)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestCredentialStore_Missing(t *testing.T) {
	tests := []struct {
		name     string
		prompter SecretPrompter
	}{
		{name: "no prompter", prompter: nil},
		{name: "empty answer", prompter: &fakePrompter{answer: "   "}},
		{name: "aborted prompt", prompter: &fakePrompter{err: errors.New("interrupted")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, paths := newTestStore(t, tt.prompter, nil)

			_, _, err := store.Acquire()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMissingCredential)

			_, statErr := os.Stat(paths.File)
			assert.True(t, os.IsNotExist(statErr), "nothing is written without a key")
		})
	}
}
