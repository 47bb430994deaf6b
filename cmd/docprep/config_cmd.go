package main

import (
	"fmt"

	"github.com/alnah/go-docprep/internal/yamlutil"
)

// runConfig prints the effective configuration as YAML, after applying
// the config file, DOCPREP_* variables and the given process flags.
func runConfig(args []string, env *Environment) error {
	flags, err := parseConfigFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	warnUnknownEnvVars(env.Stderr, env.Environ())
	cfg, err := loadEffectiveConfig(flags, loadEnvConfig(env.Getenv))
	if err != nil {
		return err
	}
	env.Config = cfg

	out, err := yamlutil.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err = env.Stdout.Write(out)
	return err
}
