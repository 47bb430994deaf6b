package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docprep <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  process     Resolve conditional blocks and link symbols")
	fmt.Fprintln(w, "  config      Print the effective configuration")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'docprep help <command>' for details on a specific command.")
}

// printProcessUsage prints usage for the process command.
func printProcessUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docprep process <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Resolve [](FLAG) / [](!FLAG) ... []() blocks, then link known symbols")
	fmt.Fprintln(w, "from doxygen tag files.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file, directory, or \"-\" for stdin")
	fmt.Fprintln(w, "           (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory (default: stdout)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --timeout <d>         Per-document timeout (e.g., 10s)")
	fmt.Fprintln(w, "      --html                Also write rendered HTML next to each output")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Conditional blocks:")
	fmt.Fprintln(w, "  -D, --flag <name>         Enable a build flag (repeatable)")
	fmt.Fprintln(w, "      --mode <s>            Hidden lines: drop (default), blank")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Symbol links:")
	fmt.Fprintln(w, "  -t, --tagfile <FILE=BASE> Tag file and documentation base (repeatable)")
	fmt.Fprintln(w, "                            BASE is a directory or an http(s) URL")
	fmt.Fprintln(w, "      --relative-to <dir>   Make local links relative to dir")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs and timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  DOCPREP_CONFIG, DOCPREP_INPUT_DIR, DOCPREP_OUTPUT_DIR, DOCPREP_MODE,")
	fmt.Fprintln(w, "  DOCPREP_FLAGS (comma separated), DOCPREP_WORKERS, DOCPREP_TIMEOUT")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes:")
	fmt.Fprintln(w, "  0 success, 1 error, 2 usage or config, 3 I/O, 5 unbalanced blocks")
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docprep config [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the configuration a process run would use, as YAML.")
	fmt.Fprintln(w, "Accepts the same flags as 'docprep process'.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}

	switch args[0] {
	case "process":
		printProcessUsage(env.Stdout)
	case "config":
		printConfigUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: docprep version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: docprep help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		printUsage(env.Stderr)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
	return nil
}
