package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// linkFlags holds symbol database flags.
type linkFlags struct {
	tagfiles   []string // FILE=BASE specs, applied after config databases
	relativeTo string   // applied to every --tagfile with a local base
}

// processFlags holds all flags for the process command.
type processFlags struct {
	common  commonFlags
	output  string
	workers int
	timeout string
	flags   []string
	mode    string
	html    bool
	link    linkFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs and timing")
}

// addLinkFlags adds symbol database flags to a FlagSet.
func addLinkFlags(fs *flag.FlagSet, f *linkFlags) {
	fs.StringArrayVarP(&f.tagfiles, "tagfile", "t", nil, "tag file and documentation base as FILE=BASE (repeatable)")
	fs.StringVar(&f.relativeTo, "relative-to", "", "make local --tagfile links relative to this directory")
}

// newProcessFlagSet registers every process flag into a new FlagSet.
// Shared by parsing, help and shell completion.
func newProcessFlagSet(f *processFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("process", flag.ContinueOnError)

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory (\"-\" = stdout)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVar(&f.timeout, "timeout", "", "per-document timeout (e.g., 10s, 1m)")
	fs.StringArrayVarP(&f.flags, "flag", "D", nil, "enable a build flag (repeatable)")
	fs.StringVar(&f.mode, "mode", "", "hidden line handling: drop, blank")
	fs.BoolVar(&f.html, "html", false, "also write rendered HTML")

	addCommonFlags(fs, &f.common)
	addLinkFlags(fs, &f.link)

	return fs
}

// parseProcessFlags parses process command flags and returns positional args.
func parseProcessFlags(args []string, stderr io.Writer) (*processFlags, []string, error) {
	f := &processFlags{}
	fs := newProcessFlagSet(f)
	fs.SetOutput(stderr)
	fs.Usage = func() { printProcessUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// parseConfigFlags accepts the process flags so that the printed
// configuration reflects the same overrides a process run would use.
func parseConfigFlags(args []string, stderr io.Writer) (*processFlags, error) {
	f, _, err := parseProcessFlags(args, stderr)
	return f, err
}
