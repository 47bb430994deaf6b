package main

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-docprep/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // DOCPREP_CONFIG: config file name or path
	InputDir   string        // DOCPREP_INPUT_DIR: default input directory
	OutputDir  string        // DOCPREP_OUTPUT_DIR: default output directory
	Mode       string        // DOCPREP_MODE: drop or blank
	Flags      []string      // DOCPREP_FLAGS: comma-separated build flags
	Workers    int           // DOCPREP_WORKERS: parallel workers
	Timeout    time.Duration // DOCPREP_TIMEOUT: per-document timeout
}

// knownEnvVars lists valid DOCPREP_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"DOCPREP_CONFIG":     true,
	"DOCPREP_INPUT_DIR":  true,
	"DOCPREP_OUTPUT_DIR": true,
	"DOCPREP_MODE":       true,
	"DOCPREP_FLAGS":      true,
	"DOCPREP_WORKERS":    true,
	"DOCPREP_TIMEOUT":    true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numbers and durations are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("DOCPREP_CONFIG"),
		InputDir:   getenv("DOCPREP_INPUT_DIR"),
		OutputDir:  getenv("DOCPREP_OUTPUT_DIR"),
		Mode:       getenv("DOCPREP_MODE"),
		Flags:      splitList(getenv("DOCPREP_FLAGS")),
	}

	if timeout := getenv("DOCPREP_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := getenv("DOCPREP_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// splitList splits a comma-separated list, dropping empty items.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// warnUnknownEnvVars reports unrecognized DOCPREP_* variables.
// Helps catch typos like DOCPREP_FLAG instead of DOCPREP_FLAGS.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, env := range environ {
		if !strings.HasPrefix(env, "DOCPREP_") {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Scalar values fill only empty config fields; flags are appended.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.InputDir != "" && cfg.Input.DefaultDir == "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Mode != "" && (cfg.Output.Mode == "" || cfg.Output.Mode == config.ModeDrop) {
		cfg.Output.Mode = env.Mode
	}
	cfg.Flags = appendUnique(cfg.Flags, env.Flags...)
}

// appendUnique appends items not already present, keeping order.
func appendUnique(list []string, items ...string) []string {
	for _, item := range items {
		if !slices.Contains(list, item) {
			list = append(list, item)
		}
	}
	return list
}
