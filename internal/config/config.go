// Package config loads the server configuration from file, environment and defaults.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/d-kuro/peek-mcp/internal/collections"
	"github.com/d-kuro/peek-mcp/internal/errors"
	"github.com/d-kuro/peek-mcp/internal/explore"
	"github.com/d-kuro/peek-mcp/internal/security"
)

const (
	// AppName names the configuration directory.
	AppName = "peek-mcp"
	// EnvPrefix prefixes every environment override, e.g. PEEK_POLICY_MAX_FILES.
	EnvPrefix = "PEEK"

	DefaultLogLevel = "info"
)

// Config holds the application configuration.
type Config struct {
	LogLevel  string         `mapstructure:"log_level"`
	Traversal PolicyConfig   `mapstructure:"policy"`
	Security  SecurityConfig `mapstructure:"security"`
}

// PolicyConfig is the raw traversal policy. The extra_* lists extend the base lists
// instead of replacing them.
type PolicyConfig struct {
	IgnoreDirs            []string `mapstructure:"ignore_dirs"`
	ExtraIgnoreDirs       []string `mapstructure:"extra_ignore_dirs"`
	BinaryExtensions      []string `mapstructure:"binary_extensions"`
	ExtraBinaryExtensions []string `mapstructure:"extra_binary_extensions"`

	explore.Limits `mapstructure:",squash"`
}

// SecurityConfig restricts which paths the MCP tools accept.
type SecurityConfig struct {
	AllowedPaths []string `mapstructure:"allowed_paths"`
	BlockedPaths []string `mapstructure:"blocked_paths"`
}

// DefaultConfigDir returns $XDG_CONFIG_HOME/peek-mcp, falling back to ~/.config/peek-mcp.
func DefaultConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(homeDir, ".config", AppName), nil
}

// Load reads the configuration. An explicit configFile must exist; otherwise config.yaml
// in DefaultConfigDir is used when present. Environment variables override both.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else if dir, err := DefaultConfigDir(); err == nil {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "error reading config")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	limits := explore.DefaultLimits()

	v.SetDefault("log_level", DefaultLogLevel)

	v.SetDefault("policy.ignore_dirs", explore.DefaultIgnoreDirs)
	v.SetDefault("policy.extra_ignore_dirs", []string{})
	v.SetDefault("policy.binary_extensions", explore.DefaultBinaryExtensions)
	v.SetDefault("policy.extra_binary_extensions", []string{})

	v.SetDefault("policy.max_list_entries", limits.MaxListEntries)
	v.SetDefault("policy.max_preview_bytes", limits.MaxPreviewBytes)
	v.SetDefault("policy.max_search_bytes", limits.MaxSearchBytes)
	v.SetDefault("policy.max_matches_per_file", limits.MaxMatchesPerFile)
	v.SetDefault("policy.max_files", limits.MaxFiles)
	v.SetDefault("policy.max_matches", limits.MaxMatches)
	v.SetDefault("policy.max_find_results", limits.MaxFindResults)
	v.SetDefault("policy.max_grep_matches", limits.MaxGrepMatches)
	v.SetDefault("policy.preview_head_lines", limits.PreviewHeadLines)
	v.SetDefault("policy.preview_tail_lines", limits.PreviewTailLines)
	v.SetDefault("policy.max_line_length", limits.MaxLineLength)

	v.SetDefault("security.allowed_paths", []string{})
	v.SetDefault("security.blocked_paths", []string{})
}

// Policy builds the immutable traversal policy.
func (c *Config) Policy() (explore.Policy, error) {
	p := c.Traversal
	return explore.NewPolicy(
		collections.Concat(p.IgnoreDirs, p.ExtraIgnoreDirs),
		collections.Concat(p.BinaryExtensions, p.ExtraBinaryExtensions),
		p.Limits,
	)
}

// Validator builds the path validator for the MCP tools.
func (c *Config) Validator() *security.DefaultValidator {
	v := security.NewDefaultValidator().WithBlockedPaths(c.Security.BlockedPaths)
	if len(c.Security.AllowedPaths) > 0 {
		v.WithAllowedPaths(c.Security.AllowedPaths)
	}
	return v
}

// effectivePolicy is the YAML view of a resolved Policy.
type effectivePolicy struct {
	IgnoreDirs       []string `yaml:"ignore_dirs"`
	BinaryExtensions []string `yaml:"binary_extensions"`

	explore.Limits `yaml:",inline"`
}

// PolicyYAML renders the effective policy, with the extra_* lists merged in.
func (c *Config) PolicyYAML() ([]byte, error) {
	p, err := c.Policy()
	if err != nil {
		return nil, err
	}

	out, err := yaml.Marshal(map[string]effectivePolicy{
		"policy": {
			IgnoreDirs:       p.IgnoreDirs(),
			BinaryExtensions: p.BinaryExtensions(),
			Limits:           p.Limits(),
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal policy")
	}
	return out, nil
}
