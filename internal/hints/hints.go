// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"strings"

	"github.com/alnah/go-docprep/internal/fileutil"
)

// ForStructure returns a hint for unbalanced conditional directives.
func ForStructure() string {
	return format("every [](FLAG) or [](!FLAG) needs a matching []() on a line of its own")
}

// ForTagFile returns hints for a tag file that could not be read or parsed.
// A .xml path usually means the doxygen XML output directory was given
// instead of the GENERATE_TAGFILE output.
func ForTagFile(path string) string {
	var hints []string

	if !fileutil.FileExists(path) {
		hints = append(hints, "check the path, or generate it with doxygen GENERATE_TAGFILE")
	} else if strings.EqualFold(filepath.Ext(path), ".xml") {
		hints = append(hints, "use the file written by GENERATE_TAGFILE, not doxygen's XML output")
	}

	return formatHints(hints)
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), "/go-docprep/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForTagSpec returns a hint for a malformed --tagfile value.
func ForTagSpec() string {
	return format("use --tagfile FILE=BASE, e.g. --tagfile api.tag=https://example.com/api")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
