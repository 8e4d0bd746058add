// Package config handles loading and layering of cardmanage configuration files.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/cardmanager/cardmanage/internal/card"
	"github.com/cardmanager/cardmanage/internal/derrors"
)

//go:embed defaults.yml
var defaultsYAML []byte

// LocalConfigNames are the per-directory config file names, in order of preference
var LocalConfigNames = []string{
	".cardmanage.yml",
	".cardmanage.yaml",
	".cardmanage.toml",
	".cardmanage.json",
}

// GlobalConfigNames are the file names looked up in the global config directory
var GlobalConfigNames = []string{
	"config.yml",
	"config.yaml",
	"config.toml",
	"config.json",
}

// FormatConfig controls canonical card layout
type FormatConfig struct {
	SeparatorWidth int `koanf:"separator_width" json:"separator_width,omitempty" yaml:"separator_width" jsonschema:"minimum=1,description=Number of hyphens in a separator line"`
	ColumnGap      int `koanf:"column_gap" json:"column_gap,omitempty" yaml:"column_gap" jsonschema:"minimum=1,description=Spaces between aligned columns"`
}

// CompareConfig controls card comparison
type CompareConfig struct {
	Tolerance float64 `koanf:"tolerance" json:"tolerance,omitempty" yaml:"tolerance" jsonschema:"minimum=0,description=Largest absolute difference at which two numbers still match"`
}

// Config represents the cardmanage configuration
type Config struct {
	LogLevel string        `koanf:"log_level" json:"log_level,omitempty" yaml:"log_level" jsonschema:"enum=debug,enum=info,enum=warn,enum=error,description=Log level"`
	Format   FormatConfig  `koanf:"format" json:"format,omitempty" yaml:"format"`
	Compare  CompareConfig `koanf:"compare" json:"compare,omitempty" yaml:"compare"`
}

// ManagerConfig converts the config into card manager settings
func (c *Config) ManagerConfig() card.ManagerConfig {
	return card.ManagerConfig{
		Format: card.Format{
			SeparatorWidth: c.Format.SeparatorWidth,
			ColumnGap:      c.Format.ColumnGap,
		},
		Tolerance: c.Compare.Tolerance,
	}
}

// LoadOptions tells Load where to look for config files
type LoadOptions struct {
	// WorkDir is where the upward search for local config files starts
	WorkDir string
	// GlobalDir overrides the global config directory
	GlobalDir string
	// SkipGlobal disables the global config lookup
	SkipGlobal bool
	// ExplicitPath is a config file that must exist, loaded last
	ExplicitPath string
}

// Load layers defaults, the global config, local configs from root to
// WorkDir and the explicit file. It returns the merged config and the
// files that contributed to it, in load order.
func Load(opts LoadOptions) (*Config, []string, error) {
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(defaultsYAML), yaml.Parser()); err != nil {
		return nil, nil, fmt.Errorf("failed to load default config: %w", err)
	}

	var sources []string

	globalDir := opts.GlobalDir
	if globalDir == "" && !opts.SkipGlobal {
		dir, err := GlobalConfigDir()
		if err == nil {
			globalDir = dir
		}
	}
	if globalDir != "" && !opts.SkipGlobal {
		if path := firstExisting(globalDir, GlobalConfigNames); path != "" {
			sources = append(sources, path)
		}
	}

	if opts.WorkDir != "" {
		local, err := FindConfigFiles(opts.WorkDir)
		if err != nil {
			return nil, nil, err
		}
		sources = append(sources, local...)
	}

	if opts.ExplicitPath != "" {
		if _, err := os.Stat(opts.ExplicitPath); err != nil {
			return nil, nil, derrors.NewConfigurationError(opts.ExplicitPath, "config file not found", err)
		}
		sources = append(sources, opts.ExplicitPath)
	}

	for _, path := range sources {
		if err := loadFile(k, path); err != nil {
			return nil, sources, err
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, sources, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, sources, nil
}

// Default returns the built-in configuration, the same values defaults.yml carries
func Default() *Config {
	return &Config{
		LogLevel: "warn",
		Format: FormatConfig{
			SeparatorWidth: card.DefaultSeparatorWidth,
			ColumnGap:      card.DefaultColumnGap,
		},
	}
}

func loadFile(k *koanf.Koanf, path string) error {
	parser, err := parserFor(path)
	if err != nil {
		return derrors.NewConfigurationError(path, "unsupported config format", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return derrors.NewConfigurationError(path, "failed to read config", err)
	}

	result, err := ValidateWithSchema(path, content)
	if err != nil {
		return derrors.NewConfigurationError(path, "failed to validate config", err)
	}
	if !result.Valid {
		return derrors.NewConfigurationError(path, "invalid config", errors.New(result.Summary()))
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return derrors.NewConfigurationError(path, "failed to load config", err)
	}
	return nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yml", ".yaml":
		return yaml.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config format: %q", ext)
	}
}

// GlobalConfigDir returns $XDG_CONFIG_HOME/cardmanage, falling back to ~/.config
func GlobalConfigDir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "cardmanage"), nil
}

func firstExisting(dir string, names []string) string {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// FindConfigFiles searches for local config files from startDir up to the
// filesystem root. Paths are returned root first so that deeper files win.
func FindConfigFiles(startDir string) ([]string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("directory not found: %s", startDir)
	}

	var configs []string
	for {
		if path := firstExisting(dir, LocalConfigNames); path != "" {
			configs = append(configs, path)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	for i, j := 0, len(configs)-1; i < j; i, j = i+1, j-1 {
		configs[i], configs[j] = configs[j], configs[i]
	}
	return configs, nil
}
