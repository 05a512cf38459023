// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"
)

// Default configuration values.
const (
	DefaultRoot          = "."
	DefaultOutput        = "theme_groups.json"
	DefaultMarker        = "code.html"
	DefaultSignatureSize = 5
	DefaultFormat        = "json"
)

// Validation errors.
var (
	ErrEmptyRoot     = errors.New("scan root must not be empty")
	ErrEmptyOutput   = errors.New("output path must not be empty")
	ErrInvalidMarker = errors.New("marker must be a plain file name")
	ErrInvalidSize   = errors.New("signature size must be at least 1")
	ErrInvalidFormat = errors.New("unsupported report format")
	ErrInvalidLimit  = errors.New("max file size must not be negative")
)

// Formats lists the supported report formats.
var Formats = []string{"json", "yaml"}

// Config represents the themegroup configuration.
type Config struct {
	Scan   ScanConfig   `toml:"scan"`
	Report ReportConfig `toml:"report"`
}

// ScanConfig controls which directories are scanned and how signatures are built.
type ScanConfig struct {
	Root          string `toml:"root"`
	Marker        string `toml:"marker"`
	SignatureSize int    `toml:"signature_size"`
	MaxFileSize   int64  `toml:"max_file_size"` // bytes, 0 = unlimited
}

// ReportConfig controls where and how the report is written.
type ReportConfig struct {
	Output string `toml:"output"`
	Format string `toml:"format"` // json, yaml
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Scan: ScanConfig{
			Root:          DefaultRoot,
			Marker:        DefaultMarker,
			SignatureSize: DefaultSignatureSize,
		},
		Report: ReportConfig{
			Output: DefaultOutput,
			Format: DefaultFormat,
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "themegroup", "config.toml")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// ApplyFlags overrides config values with flags that were explicitly set.
// Flags that are not defined on the set are ignored.
func (c *Config) ApplyFlags(flags *pflag.FlagSet) error {
	var err error
	flags.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case "root":
			c.Scan.Root, err = flags.GetString(f.Name)
		case "marker":
			c.Scan.Marker, err = flags.GetString(f.Name)
		case "signature-size":
			c.Scan.SignatureSize, err = flags.GetInt(f.Name)
		case "max-file-size":
			c.Scan.MaxFileSize, err = flags.GetInt64(f.Name)
		case "output":
			c.Report.Output, err = flags.GetString(f.Name)
		case "format":
			c.Report.Format, err = flags.GetString(f.Name)
		}
	})
	return err
}

// Validate checks the configuration for values the scan cannot work with.
func (c *Config) Validate() error {
	if c.Scan.Root == "" {
		return ErrEmptyRoot
	}
	if c.Scan.Marker == "" || filepath.Base(c.Scan.Marker) != c.Scan.Marker ||
		c.Scan.Marker == "." || c.Scan.Marker == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidMarker, c.Scan.Marker)
	}
	if c.Scan.SignatureSize < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidSize, c.Scan.SignatureSize)
	}
	if c.Scan.MaxFileSize < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidLimit, c.Scan.MaxFileSize)
	}
	if c.Report.Output == "" {
		return ErrEmptyOutput
	}
	if !slices.Contains(Formats, c.Report.Format) {
		return fmt.Errorf("%w: %q (supported: %v)", ErrInvalidFormat, c.Report.Format, Formats)
	}
	return nil
}
