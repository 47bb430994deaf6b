package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-docprep/internal/fileutil"
	"github.com/alnah/go-docprep/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidField    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxFlagLength = 100  // Build flag token
	MaxPathLength = 4096 // Local paths (PATH_MAX)
	MaxURLLength  = 2048 // Browser limit
	MaxFlags      = 256
	MaxDatabases  = 64
)

// Directive output modes accepted in output.mode.
const (
	ModeDrop  = "drop"
	ModeBlank = "blank"
)

// appConfigDir is the directory under the user config dir searched for named configs.
const appConfigDir = "go-docprep"

// Config holds all configuration for a preprocessing run.
type Config struct {
	Input     InputConfig      `yaml:"input"`
	Output    OutputConfig     `yaml:"output"`
	Flags     []string         `yaml:"flags"`
	Databases []DatabaseConfig `yaml:"databases"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = must specify)
	Mode       string `yaml:"mode"`       // "drop" (default) or "blank"
	HTML       bool   `yaml:"html"`       // Also write rendered HTML
}

// DatabaseConfig names one tag file and where its documentation lives.
type DatabaseConfig struct {
	TagFile    string `yaml:"tagfile"`
	Base       string `yaml:"base"`       // Local directory or http(s) URL
	RelativeTo string `yaml:"relativeTo"` // Optional, local bases only
}

// Validate checks field lengths and enumerated values.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("input.defaultDir", c.Input.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}

	switch strings.ToLower(c.Output.Mode) {
	case "", ModeDrop, ModeBlank:
		// valid
	default:
		return fmt.Errorf("%w: output.mode %q (must be drop or blank)", ErrInvalidField, c.Output.Mode)
	}

	if len(c.Flags) > MaxFlags {
		return fmt.Errorf("%w: flags (%d entries, max %d)", ErrFieldTooLong, len(c.Flags), MaxFlags)
	}
	for i, f := range c.Flags {
		if strings.TrimSpace(f) == "" || strings.ContainsAny(f, " \t") {
			return fmt.Errorf("%w: flags[%d] %q (must be a single non-empty token)", ErrInvalidField, i, f)
		}
		if err := validateFieldLength(fmt.Sprintf("flags[%d]", i), f, MaxFlagLength); err != nil {
			return err
		}
	}

	if len(c.Databases) > MaxDatabases {
		return fmt.Errorf("%w: databases (%d entries, max %d)", ErrFieldTooLong, len(c.Databases), MaxDatabases)
	}
	for i, db := range c.Databases {
		if err := db.validate(fmt.Sprintf("databases[%d]", i)); err != nil {
			return err
		}
	}

	return nil
}

func (d DatabaseConfig) validate(field string) error {
	if d.TagFile == "" {
		return fmt.Errorf("%w: %s.tagfile: required", ErrInvalidField, field)
	}
	if err := validateFieldLength(field+".tagfile", d.TagFile, MaxPathLength); err != nil {
		return err
	}
	baseLimit := MaxPathLength
	if fileutil.IsURL(d.Base) {
		baseLimit = MaxURLLength
	}
	if err := validateFieldLength(field+".base", d.Base, baseLimit); err != nil {
		return err
	}
	return validateFieldLength(field+".relativeTo", d.RelativeTo, MaxPathLength)
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a neutral configuration: no flags, no databases,
// hidden lines dropped.
func DefaultConfig() *Config {
	return &Config{
		Input:  InputConfig{DefaultDir: ""},
		Output: OutputConfig{DefaultDir: "", Mode: ModeDrop},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Relative tag file and base paths are resolved against the config file's directory.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.resolvePaths(filepath.Dir(configPath))
	return cfg, nil
}

// resolvePaths anchors relative database paths at dir.
func (c *Config) resolvePaths(dir string) {
	for i := range c.Databases {
		db := &c.Databases[i]
		db.TagFile = anchorPath(dir, db.TagFile)
		if !fileutil.IsURL(db.Base) {
			db.Base = anchorPath(dir, db.Base)
		}
		db.RelativeTo = anchorPath(dir, db.RelativeTo)
	}
}

func anchorPath(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// SearchPaths lists, in order, the files tried for a config name.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, <user config dir>/go-docprep/
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, appConfigDir, name+ext))
		}
	}

	return paths
}

// resolveConfigPath returns the first existing file of SearchPaths(name).
func resolveConfigPath(name string) (string, error) {
	triedPaths := SearchPaths(name)
	for _, p := range triedPaths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
