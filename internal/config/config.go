package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// Config represents the complete configuration for dataconv
type Config struct {
	CSV  CSVConfig  `yaml:"csv"`
	JSON JSONConfig `yaml:"json"`
	XML  XMLConfig  `yaml:"xml"`
	Dev  DevConfig  `yaml:"dev"`
}

// CSVConfig controls the CSV writer and reader
type CSVConfig struct {
	WithHeaders bool   `yaml:"with_headers"`
	Delimiter   string `yaml:"delimiter"`
}

// JSONConfig controls JSON output
type JSONConfig struct {
	Indent string `yaml:"indent"`
}

// XMLConfig controls XML output
type XMLConfig struct {
	Indent        string `yaml:"indent"`
	Declaration   bool   `yaml:"declaration"`
	SanitizeNames bool   `yaml:"sanitize_names"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		CSV: CSVConfig{
			WithHeaders: true,
			Delimiter:   ",",
		},
		JSON: JSONConfig{
			Indent: "  ",
		},
		XML: XMLConfig{
			Indent:        "  ",
			Declaration:   true,
			SanitizeNames: true,
		},
		Dev: DevConfig{
			Debug: false,
		},
	}
}

// LoadConfig loads configuration from a YAML file or URL
func LoadConfig(path string) (*Config, error) {
	// Read file
	fs := afs.New()
	data, err := fs.DownloadWithURL(context.Background(), path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".dataconv.yml", ".dataconv.yaml", "dataconv.yml", "dataconv.yaml"}

	// Start from current directory
	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Search up the directory tree
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		// Move up one directory
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate checks values that the codecs cannot work with
func (c *Config) Validate() error {
	if utf8.RuneCountInString(c.CSV.Delimiter) != 1 {
		return fmt.Errorf("csv delimiter must be a single character, got %q", c.CSV.Delimiter)
	}
	switch r := c.Delimiter(); r {
	case '"', '\r', '\n', utf8.RuneError:
		return fmt.Errorf("csv delimiter %q is not allowed", r)
	}
	if strings.Trim(c.JSON.Indent, " \t") != "" {
		return fmt.Errorf("json indent must contain only spaces or tabs, got %q", c.JSON.Indent)
	}
	if strings.Trim(c.XML.Indent, " \t") != "" {
		return fmt.Errorf("xml indent must contain only spaces or tabs, got %q", c.XML.Indent)
	}
	return nil
}

// Delimiter returns the CSV field delimiter as a rune
func (c *Config) Delimiter() rune {
	r, _ := utf8.DecodeRuneInString(c.CSV.Delimiter)
	return r
}

// LoadConfigWithCLI loads config with CLI argument precedence.
// Boolean flags can only switch features off, since their defaults match the
// config defaults and we cannot tell whether they were set explicitly.
func LoadConfigWithCLI(configPath string, cliWithHeaders, cliDebug bool) (*Config, error) {
	// Start with defaults
	cfg := NewConfig()

	// Load config file if provided
	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	cfg.CSV.WithHeaders = cfg.CSV.WithHeaders && cliWithHeaders
	cfg.Dev.Debug = cfg.Dev.Debug || cliDebug

	return cfg, nil
}
