// Package config loads settings for tools built on the format registry.
//
// Configuration comes from a single file named by the RDFFORMAT_CONFIG
// environment variable or passed explicitly to LoadFile. YAML is the primary
// syntax; files ending in .json or .jsonc are read as JSON with comments and
// trailing commas allowed.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/yut148/json-ld/rdf"
)

// EnvVar names the environment variable Load reads the config path from.
const EnvVar = "RDFFORMAT_CONFIG"

// Config is the tool configuration.
type Config struct {
	// SampleSize is the number of leading bytes sniffed from a stream.
	SampleSize int `yaml:"sample_size" json:"sample_size"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" json:"log_level"`

	// Aliases add extra names for registered formats.
	Aliases []AliasConfig `yaml:"aliases" json:"aliases"`

	// Prefixes are passed to writers that abbreviate IRIs.
	Prefixes map[string]string `yaml:"prefixes" json:"prefixes"`
}

// AliasConfig makes a registered format reachable under another name.
type AliasConfig struct {
	// Symbol is the new short name.
	Symbol string `yaml:"symbol" json:"symbol"`
	// MediaType is an optional additional media type.
	MediaType string `yaml:"media_type" json:"media_type"`
	// Target is the symbol of the format the alias resolves to.
	Target string `yaml:"target" json:"target"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		SampleSize: rdf.SampleSize,
		LogLevel:   "warn",
	}
}

// Load loads configuration from the file named by RDFFORMAT_CONFIG. When the
// variable is unset the defaults are returned.
func Load() (*Config, error) {
	path := os.Getenv(EnvVar)
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile loads configuration from path over the defaults and validates it.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		err = json.Unmarshal(jsonc.ToJSON(data), cfg)
	default:
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.SampleSize <= 0 {
		return fmt.Errorf("sample_size must be positive, got %d", c.SampleSize)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	for i, alias := range c.Aliases {
		if alias.Target == "" {
			return fmt.Errorf("aliases[%d]: target is required", i)
		}
		if alias.Symbol == "" && alias.MediaType == "" {
			return fmt.Errorf("aliases[%d]: symbol or media_type is required", i)
		}
	}
	return nil
}

// ParseLevel converts a level name to a slog.Level. The empty string is warn.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log_level %q", name)
	}
}

// RegistryOptions returns the registry options this configuration implies.
func (c *Config) RegistryOptions(logger *slog.Logger) []rdf.RegistryOption {
	return []rdf.RegistryOption{
		rdf.WithLogger(logger),
		rdf.WithSampleSize(c.SampleSize),
	}
}

// ErrUnknownTarget is returned by Apply when an alias names an unregistered format.
var ErrUnknownTarget = errors.New("alias target is not registered")

// Apply registers the configured aliases in reg. Each alias shares the
// binding of its target format.
func (c *Config) Apply(reg *rdf.Registry) error {
	for _, alias := range c.Aliases {
		target, ok := reg.ForSymbol(alias.Target)
		if !ok {
			return fmt.Errorf("alias %q: %w: %s", alias.Symbol, ErrUnknownTarget, alias.Target)
		}
		err := reg.RegisterAlias(rdf.Alias{
			Symbol:    alias.Symbol,
			MediaType: alias.MediaType,
			Encoding:  target.Encoding,
			Binding:   target.Binding,
		})
		if err != nil {
			return fmt.Errorf("alias %q: %w", alias.Symbol, err)
		}
	}
	return nil
}
