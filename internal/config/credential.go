package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

const apiKeyField = "api_key"

// ErrMissingCredential is returned when no API key could be obtained
var ErrMissingCredential = errors.New("no API key provided")

// CredentialSource tells where an API key came from
type CredentialSource string

const (
	SourceEnv    CredentialSource = "environment"
	SourceFile   CredentialSource = "config file"
	SourcePrompt CredentialSource = "prompt"
)

// SecretPrompter reads a secret value from the operator
type SecretPrompter interface {
	PromptSecret(message string) (string, error)
}

// CredentialStore resolves the API key.
// Precedence: EnvAPIKey > config file > interactive prompt.
type CredentialStore struct {
	paths    Paths
	prompter SecretPrompter
	getenv   func(string) string
}

// NewCredentialStore creates a CredentialStore. prompter may be nil, in which
// case a missing key is reported without asking.
func NewCredentialStore(paths Paths, prompter SecretPrompter) *CredentialStore {
	return &CredentialStore{
		paths:    paths,
		prompter: prompter,
		getenv:   os.Getenv,
	}
}

// Acquire returns the API key and where it came from.
// A key obtained from the prompt is persisted before returning.
func (s *CredentialStore) Acquire() (string, CredentialSource, error) {
	if key := strings.TrimSpace(s.getenv(EnvAPIKey)); key != "" {
		return key, SourceEnv, nil
	}

	key, err := s.Stored()
	if err != nil {
		return "", "", err
	}
	if key != "" {
		return key, SourceFile, nil
	}

	if s.prompter == nil {
		return "", "", ErrMissingCredential
	}

	key, err = s.prompter.PromptSecret("Enter your API key: ")
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrMissingCredential, err)
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", ErrMissingCredential
	}

	if err := s.Save(key); err != nil {
		return "", "", err
	}
	return key, SourcePrompt, nil
}

// Stored returns the key saved in the config file, or "" if there is none
func (s *CredentialStore) Stored() (string, error) {
	v := newViper(s.paths.File)
	if err := readIfExists(v); err != nil {
		return "", err
	}
	return strings.TrimSpace(v.GetString(apiKeyField)), nil
}

// Save writes the key to the config file, keeping any other settings in it.
// The file is rewritten as a whole and restricted to the owner.
func (s *CredentialStore) Save(key string) error {
	if err := os.MkdirAll(s.paths.Dir, 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := newViper(s.paths.File)
	if err := readIfExists(v); err != nil {
		return err
	}
	v.SetConfigPermissions(0o600)
	v.Set(apiKeyField, key)

	if err := v.WriteConfigAs(s.paths.File); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	// WriteConfigAs keeps the mode of an existing file
	if err := os.Chmod(s.paths.File, 0o600); err != nil {
		return fmt.Errorf("failed to restrict config file permissions: %w", err)
	}
	return nil
}
