package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	docprep "github.com/alnah/go-docprep"
	"github.com/alnah/go-docprep/internal/config"
	"github.com/alnah/go-docprep/internal/fileutil"
	"github.com/alnah/go-docprep/internal/hints"
	"github.com/alnah/go-docprep/internal/logfields"
)

// Sentinel errors for the process command.
var (
	ErrInvalidTagSpec = errors.New("invalid --tagfile value")
	ErrInvalidTimeout = errors.New("invalid timeout")
	ErrHTMLToStdout   = errors.New("--html needs an output file or directory")
)

// runProcess orchestrates one preprocessing run.
func runProcess(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseProcessFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	if err := validateWorkers(flags.workers); err != nil {
		return err
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: expected one input, got %d", ErrUsage, len(positional))
	}

	warnUnknownEnvVars(env.Stderr, env.Environ())
	envCfg := loadEnvConfig(env.Getenv)

	cfg, err := loadEffectiveConfig(flags, envCfg)
	if err != nil {
		return err
	}
	env.Config = cfg

	timeout, err := resolveTimeout(flags.timeout, envCfg.Timeout)
	if err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positional, cfg)
	if err != nil {
		return err
	}

	files, err := discoverFiles(inputPath, resolveOutput(flags.output, cfg))
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no markdown files found in %s", ErrNoInput, inputPath)
	}
	if cfg.Output.HTML {
		for _, f := range files {
			if f.OutputPath == stdio {
				return ErrHTMLToStdout
			}
		}
	}

	mode, err := docprep.ParseMode(cfg.Output.Mode)
	if err != nil {
		return fmt.Errorf("%w: %v", config.ErrInvalidField, err)
	}

	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)
	opts := []docprep.Option{docprep.WithMode(mode), docprep.WithLogger(logger)}
	if timeout > 0 {
		opts = append(opts, docprep.WithTimeout(timeout))
	}
	proc := docprep.NewProcessor(opts...)

	workers := resolveWorkers(flags.workers, envCfg.Workers)
	logger.Debug("starting run",
		logfields.Records(len(files)),
		logfields.Flags(cfg.Flags),
		slog.Int("workers", workers),
		slog.Int("databases", len(cfg.Databases)))
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Flags: %s\n", describeFlags(cfg.Flags))
	}

	results := processBatch(ctx, proc, workers, files, &batchParams{
		flags:     cfg.Flags,
		databases: buildDatabases(cfg.Databases),
		html:      cfg.Output.HTML,
		stdin:     env.Stdin,
		stdout:    env.Stdout,
		stdoutMu:  &sync.Mutex{},
		logger:    logger,
	})

	if errs := printResults(results, flags.common.quiet, flags.common.verbose, env); len(errs) > 0 {
		return &batchError{errs: errs}
	}
	return nil
}

// loadEffectiveConfig merges config file, environment and CLI flags.
// Precedence: CLI flags > env vars > config file > defaults.
func loadEffectiveConfig(flags *processFlags, envCfg *envConfig) (*config.Config, error) {
	name := flags.common.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w%s", err, configHint(name, err))
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	if err := mergeFlags(flags, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// configHint suggests where a missing config could live.
func configHint(name string, err error) string {
	if !errors.Is(err, config.ErrConfigNotFound) {
		return ""
	}
	if fileutil.IsFilePath(name) {
		return hints.ForConfigNotFound(nil)
	}
	return hints.ForConfigNotFound(config.SearchPaths(name))
}

// mergeFlags merges CLI flags into config. CLI values override config values;
// build flags and tag files are appended.
func mergeFlags(flags *processFlags, cfg *config.Config) error {
	if flags.mode != "" {
		cfg.Output.Mode = flags.mode
	}
	if flags.html {
		cfg.Output.HTML = true
	}
	cfg.Flags = appendUnique(cfg.Flags, flags.flags...)

	for _, spec := range flags.link.tagfiles {
		db, err := parseTagSpec(spec, flags.link.relativeTo)
		if err != nil {
			return err
		}
		cfg.Databases = append(cfg.Databases, db)
	}
	return nil
}

// parseTagSpec parses FILE=BASE. BASE may be omitted, in which case links
// are the documentation file names themselves.
func parseTagSpec(spec, relativeTo string) (config.DatabaseConfig, error) {
	file, base, _ := strings.Cut(spec, "=")
	file = strings.TrimSpace(file)
	if file == "" {
		return config.DatabaseConfig{}, fmt.Errorf("%w: %q%s", ErrInvalidTagSpec, spec, hints.ForTagSpec())
	}

	db := config.DatabaseConfig{TagFile: file, Base: strings.TrimSpace(base)}
	if !fileutil.IsURL(db.Base) {
		db.RelativeTo = relativeTo
	}
	return db, nil
}

// buildDatabases turns configured databases into Path-backed library databases.
func buildDatabases(dbs []config.DatabaseConfig) []docprep.Database {
	out := make([]docprep.Database, 0, len(dbs))
	for _, d := range dbs {
		out = append(out, docprep.Database{
			Path: d.TagFile,
			Base: docprep.NewTagBase(d.Base, d.RelativeTo),
		})
	}
	return out
}

// resolveTimeout parses the --timeout flag, falling back to DOCPREP_TIMEOUT.
func resolveTimeout(flagValue string, envValue time.Duration) (time.Duration, error) {
	if flagValue == "" {
		return envValue, nil
	}
	d, err := time.ParseDuration(flagValue)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidTimeout, flagValue, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %q (must be positive)", ErrInvalidTimeout, flagValue)
	}
	return d, nil
}

// resolveInputPath determines the input path from args or config.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutput determines the output path from flag or config.
func resolveOutput(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// newLogger returns a text logger on w: Debug when verbose, Error when quiet.
func newLogger(w io.Writer, quiet, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case verbose:
		level = slog.LevelDebug
	case quiet:
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
