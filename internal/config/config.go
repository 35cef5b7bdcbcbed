// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package config provides configuration loading and validation for jtypes.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/api2spec/jtypes/internal/classutil"
)

// Config represents the jtypes configuration.
type Config struct {
	// Output is the report file path; empty writes to stdout
	Output string `mapstructure:"output" yaml:"output" json:"output"`

	// Format is the report format (text, yaml, json)
	Format string `mapstructure:"format" yaml:"format" json:"format"`

	// Source contains source code scanning configuration
	Source SourceConfig `mapstructure:"source" yaml:"source" json:"source"`

	// Report contains report content configuration
	Report ReportConfig `mapstructure:"report" yaml:"report" json:"report"`

	// Watch contains file watching configuration
	Watch WatchConfig `mapstructure:"watch" yaml:"watch" json:"watch"`
}

// SourceConfig contains source code scanning configuration.
type SourceConfig struct {
	// Paths is a list of paths to scan
	Paths []string `mapstructure:"paths" yaml:"paths" json:"paths"`

	// Include is a list of glob patterns to include
	Include []string `mapstructure:"include" yaml:"include" json:"include"`

	// Exclude is a list of glob patterns to exclude
	Exclude []string `mapstructure:"exclude" yaml:"exclude" json:"exclude"`
}

// ReportConfig controls which type references a report contains.
type ReportConfig struct {
	// Kinds restricts entries to these kinds; empty means all
	Kinds []string `mapstructure:"kinds" yaml:"kinds" json:"kinds"`

	// IncludeLocations adds file, owner, role and line to each entry
	IncludeLocations bool `mapstructure:"includeLocations" yaml:"includeLocations" json:"includeLocations"`

	// Unique collapses entries with the same type name into one with a count
	Unique bool `mapstructure:"unique" yaml:"unique" json:"unique"`
}

// WatchConfig contains file watching configuration.
type WatchConfig struct {
	// Debounce is the debounce duration in milliseconds
	Debounce int `mapstructure:"debounce" yaml:"debounce" json:"debounce"`
}

// configFileNames is the list of config file names to search for (in order).
var configFileNames = []string{
	"jtypes.yaml",
	"jtypes.json",
	".jtypes.yaml",
	".jtypes.json",
}

// supportedFormats is the list of supported report formats.
var supportedFormats = []string{
	"text",
	"yaml",
	"json",
}

var (
	defaultInclude = []string{"**/*.java"}
	defaultExclude = []string{
		"target/**",
		"build/**",
		"out/**",
		".git/**",
		".gradle/**",
		".idea/**",
		"**/generated/**",
	}
)

// ErrConfigNotFound is returned when an explicitly requested config file does not exist.
var ErrConfigNotFound = errors.New("config file not found")

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation error: %s: %s", e.Field, e.Message)
}

// ValidationErrors represents multiple validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	var sb strings.Builder
	sb.WriteString("config validation errors:\n")
	for _, err := range e {
		sb.WriteString("  - ")
		sb.WriteString(err.Field)
		sb.WriteString(": ")
		sb.WriteString(err.Message)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Format: "text",
		Source: SourceConfig{
			Paths:   []string{"."},
			Include: append([]string(nil), defaultInclude...),
			Exclude: append([]string(nil), defaultExclude...),
		},
		Report: ReportConfig{
			IncludeLocations: true,
		},
		Watch: WatchConfig{
			Debounce: 500,
		},
	}
}

// Load loads the configuration from a file.
// It searches the working directory for, in order:
// 1. jtypes.yaml
// 2. jtypes.json
// 3. .jtypes.yaml
// 4. .jtypes.json
//
// If configPath is provided, it will use that path instead and fail with
// ErrConfigNotFound when the file does not exist. Without a config file the
// defaults are returned.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		return LoadFromPath(".")
	}
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// LoadFromPath loads the first config file found in dir, or the defaults
// when there is none.
func LoadFromPath(dir string) (*Config, error) {
	if path := findConfigFile(dir); path != "" {
		return Load(path)
	}
	return Default(), nil
}

// ConfigFilePath returns the path of the config file in the working
// directory, if any.
func ConfigFilePath() string {
	return findConfigFile(".")
}

func findConfigFile(dir string) string {
	for _, name := range configFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// setDefaults sets the default values for viper.
func setDefaults(v *viper.Viper) {
	def := Default()
	v.SetDefault("output", def.Output)
	v.SetDefault("format", def.Format)
	v.SetDefault("source.paths", def.Source.Paths)
	v.SetDefault("source.include", def.Source.Include)
	v.SetDefault("source.exclude", def.Source.Exclude)
	v.SetDefault("report.kinds", []string{})
	v.SetDefault("report.includeLocations", def.Report.IncludeLocations)
	v.SetDefault("report.unique", def.Report.Unique)
	v.SetDefault("watch.debounce", def.Watch.Debounce)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	var errs ValidationErrors

	if c.Format != "" && !contains(supportedFormats, c.Format) {
		errs = append(errs, ValidationError{
			Field:   "format",
			Message: fmt.Sprintf("unsupported format %q, must be one of: %s", c.Format, strings.Join(supportedFormats, ", ")),
		})
	}

	for _, k := range c.Report.Kinds {
		if _, ok := classutil.ParseKind(k); !ok {
			errs = append(errs, ValidationError{
				Field:   "report.kinds",
				Message: fmt.Sprintf("unknown kind %q, must be one of: %s", k, kindNames()),
			})
		}
	}

	if len(c.Source.Include) == 0 {
		errs = append(errs, ValidationError{
			Field:   "source.include",
			Message: "at least one include pattern is required",
		})
	}

	if c.Watch.Debounce < 0 {
		errs = append(errs, ValidationError{
			Field:   "watch.debounce",
			Message: "debounce must be non-negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Kinds returns the configured report kinds. Unknown names are skipped;
// Validate reports them.
func (c *Config) Kinds() []classutil.Kind {
	var kinds []classutil.Kind
	for _, k := range c.Report.Kinds {
		if kind, ok := classutil.ParseKind(k); ok {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}

func kindNames() string {
	names := make([]string, 0, len(classutil.Kinds()))
	for _, k := range classutil.Kinds() {
		names = append(names, string(k))
	}
	return strings.Join(names, ", ")
}

// contains checks if a slice contains a string.
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
