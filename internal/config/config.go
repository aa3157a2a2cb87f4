package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultMaxInlineLength is the longest command dispatched inline before
// falling back to a list file. Matches the budget mr commands have always
// been generated against.
const DefaultMaxInlineLength = 240

// Config holds the mrls configuration.
type Config struct {
	MrConfig        string `toml:"mrconfig"`          // path to the mr config file
	GroupFile       string `toml:"group_file"`        // pinned group state file
	Tool            string `toml:"tool"`              // multi-repo tool to invoke
	MaxInlineLength int    `toml:"max_inline_length"` // inline command budget
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		MrConfig:        "~/.mrconfig",
		GroupFile:       "~/.mrconfig_group",
		Tool:            "mr",
		MaxInlineLength: DefaultMaxInlineLength,
	}
}

// ValidatePath checks that the path is absolute or starts with ~.
// Relative paths like "." or ".." depend on the working directory and are
// rejected.
func ValidatePath(path, fieldName string) error {
	if path == "" {
		return nil // empty means not configured
	}
	if path[0] == '~' {
		return nil
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s must be absolute or start with ~, got: %q", fieldName, path)
	}
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}

// configPath returns the path to the config file.
func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "mrls", "config.toml"), nil
}

// Load reads config from ~/.config/mrls/config.toml.
// Returns Default() if the file doesn't exist (no error).
// Returns an error only if the file exists but is invalid.
// The MRLS_MRCONFIG environment variable overrides the mrconfig setting.
func Load() (Config, error) {
	cfg := Default()

	path, err := configPath()
	if err != nil {
		return applyEnv(cfg), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return applyEnv(cfg), nil
		}
		return applyEnv(cfg), fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return applyEnv(Default()), fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg = applyEnv(cfg)

	if err := ValidatePath(cfg.MrConfig, "mrconfig"); err != nil {
		return Default(), err
	}
	if err := ValidatePath(cfg.GroupFile, "group_file"); err != nil {
		return Default(), err
	}
	if cfg.MaxInlineLength < 0 {
		return Default(), fmt.Errorf("max_inline_length must not be negative, got: %d", cfg.MaxInlineLength)
	}

	// Use defaults for empty values
	if cfg.MrConfig == "" {
		cfg.MrConfig = "~/.mrconfig"
	}
	if cfg.GroupFile == "" {
		cfg.GroupFile = "~/.mrconfig_group"
	}
	if cfg.Tool == "" {
		cfg.Tool = "mr"
	}
	if cfg.MaxInlineLength == 0 {
		cfg.MaxInlineLength = DefaultMaxInlineLength
	}

	return cfg, nil
}

// applyEnv applies environment variable overrides.
func applyEnv(cfg Config) Config {
	if v := os.Getenv("MRLS_MRCONFIG"); v != "" {
		cfg.MrConfig = v
	}
	return cfg
}

// MrConfigPath returns the mrconfig path with ~ expanded.
func (c *Config) MrConfigPath() (string, error) {
	return expandPath(c.MrConfig)
}

// GroupFilePath returns the pin state file path with ~ expanded.
func (c *Config) GroupFilePath() (string, error) {
	return expandPath(c.GroupFile)
}

type ctxKey struct{}

// WithConfig attaches the config to the context.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, ctxKey{}, cfg)
}

// FromContext retrieves the config from context, or nil if none is attached.
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(ctxKey{}).(*Config); ok {
		return cfg
	}
	return nil
}

const defaultConfig = `# mrls configuration

# Path to the mr configuration file listing repositories.
# Must be an absolute path or start with ~.
# mrconfig = "~/.mrconfig"

# File that stores the pinned group set with --use.
# group_file = "~/.mrconfig_group"

# The multi-repo tool the generated commands invoke.
# tool = "mr"

# Generated commands longer than this switch to a temp-file strategy.
# max_inline_length = 240
`

// Init creates a default config file at ~/.config/mrls/config.toml.
// If force is true, overwrites an existing file.
// Returns the path to the created file.
func Init(force bool) (string, error) {
	path, err := configPath()
	if err != nil {
		return "", err
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", errors.New("config file already exists: " + path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
		return "", err
	}

	return path, nil
}
