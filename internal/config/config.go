package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

const (
	// AppName is used for the config directory and env prefix
	AppName = "aicommit"

	// EnvAPIKey overrides any stored API key when set
	EnvAPIKey = "AICOMMIT_API_KEY"

	// DefaultProvider is the backend used when none is configured
	DefaultProvider = "gemini"

	// DefaultModel is the model used for gemini when none is configured
	DefaultModel = "gemini-2.0-flash"

	// DefaultLanguage is the commit message language when none is configured
	DefaultLanguage = "en"

	envPrefix      = "AICOMMIT"
	configFileName = "config.json"
	seedFileName   = "COMMIT_EDITMSG"
)

// Supported providers
var supportedProviders = map[string]bool{
	"openai":   true,
	"deepseek": true,
	"ollama":   true,
	"gemini":   true,
	"grok":     true,
}

// defaultModels holds the model used when a provider is chosen without one.
// Providers missing here need an explicit model.
var defaultModels = map[string]string{
	"gemini": DefaultModel,
}

// SupportedProviders returns a sorted list of supported providers
func SupportedProviders() []string {
	providers := make([]string, 0, len(supportedProviders))
	for p := range supportedProviders {
		providers = append(providers, p)
	}
	sort.Strings(providers)
	return providers
}

// Paths holds the per-user file locations
type Paths struct {
	Dir      string // Config directory
	File     string // JSON settings and credential file
	SeedFile string // Edit mode commit message seed
}

// DefaultPaths returns ~/.config/aicommit based paths
func DefaultPaths() (Paths, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Paths{}, fmt.Errorf("failed to get home directory: %w", err)
	}
	return PathsFor(filepath.Join(homeDir, ".config", AppName, configFileName)), nil
}

// PathsFor derives all paths from the location of the config file
func PathsFor(file string) Paths {
	dir := filepath.Dir(file)
	return Paths{
		Dir:      dir,
		File:     file,
		SeedFile: filepath.Join(dir, seedFileName),
	}
}

// ModelConfig represents the backend model configuration
type ModelConfig struct {
	Provider string `json:"provider" mapstructure:"provider"`
	APIKey   string `json:"-" mapstructure:"-"`
	Model    string `json:"model" mapstructure:"model"`
	BaseURL  string `json:"base_url,omitempty" mapstructure:"base_url"`
}

// Validate validates the model configuration
func (m *ModelConfig) Validate() error {
	if m.Provider == "" {
		return fmt.Errorf("provider is required")
	}
	if !supportedProviders[m.Provider] {
		return fmt.Errorf("unsupported provider: %s (supported: %s)", m.Provider, strings.Join(SupportedProviders(), ", "))
	}
	if m.Model == "" {
		return fmt.Errorf("model is required")
	}
	return nil
}

// Config is the runtime configuration, built once at startup
type Config struct {
	Model    ModelConfig `json:"model"`
	Language string      `json:"language"`
	NoColor  bool        `json:"no_color"`
	Paths    Paths       `json:"paths"`
}

// settings mirrors the on-disk JSON document
type settings struct {
	Provider string `mapstructure:"provider"`
	Model    string `mapstructure:"model"`
	BaseURL  string `mapstructure:"base_url"`
	Language string `mapstructure:"language"`
}

// Validate validates the entire configuration
func (c *Config) Validate() error {
	if err := c.Model.Validate(); err != nil {
		return fmt.Errorf("invalid model configuration: %w", err)
	}
	return nil
}

// GetLanguage returns the language to use
// Priority: parameter > env variable (AICOMMIT_LANG) > config file > default (en)
func (c *Config) GetLanguage(langParam string) string {
	if langParam != "" {
		return langParam
	}
	if c.Language != "" {
		return c.Language
	}
	return DefaultLanguage
}

// newViper returns a viper instance bound to the JSON file at path
func newViper(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	return v
}

// readIfExists reads the config file, treating a missing file as empty
func readIfExists(v *viper.Viper) error {
	err := v.ReadInConfig()
	if err == nil {
		return nil
	}
	var notFound viper.ConfigFileNotFoundError
	if errors.Is(err, fs.ErrNotExist) || errors.As(err, &notFound) {
		return nil
	}
	return fmt.Errorf("failed to read config file: %w", err)
}

// Load builds the runtime configuration.
// Settings come from the JSON file at customPath (or the default path),
// with AICOMMIT_PROVIDER, AICOMMIT_MODEL, AICOMMIT_BASE_URL and AICOMMIT_LANG
// taking precedence. A missing file is not an error.
func Load(customPath string) (*Config, error) {
	var paths Paths
	if customPath != "" {
		paths = PathsFor(customPath)
	} else {
		p, err := DefaultPaths()
		if err != nil {
			return nil, err
		}
		paths = p
	}

	v := newViper(paths.File)
	v.SetDefault("provider", DefaultProvider)
	v.SetDefault("model", "")
	v.SetDefault("base_url", "")
	v.SetDefault("language", "")

	v.SetEnvPrefix(envPrefix)
	_ = v.BindEnv("provider")
	_ = v.BindEnv("model")
	_ = v.BindEnv("base_url")
	_ = v.BindEnv("language", envPrefix+"_LANG")

	if err := readIfExists(v); err != nil {
		return nil, err
	}

	var s settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg := &Config{
		Model: ModelConfig{
			Provider: strings.ToLower(strings.TrimSpace(s.Provider)),
			Model:    strings.TrimSpace(s.Model),
			BaseURL:  strings.TrimSpace(s.BaseURL),
		},
		Language: s.Language,
		NoColor:  os.Getenv("NO_COLOR") != "",
		Paths:    paths,
	}
	if cfg.Model.Model == "" {
		cfg.Model.Model = defaultModels[cfg.Model.Provider]
	}

	return cfg, nil
}
