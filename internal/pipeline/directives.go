package pipeline

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrStructure indicates unbalanced conditional directives.
var ErrStructure = errors.New("invalid conditional block structure")

// Directive markers. A marker must be the whole line.
//
//	[](FLAG)   show the block if FLAG is set
//	[](!FLAG)  show the block if FLAG is not set
//	[]()       end of the innermost block
var (
	startDirective = regexp.MustCompile(`^\[]\((!?)([^ ]+)\)$`)
	endDirective   = regexp.MustCompile(`^\[]\(\)$`)
)

// DirectiveMode selects what happens to lines that are not emitted.
type DirectiveMode int

const (
	// DropHidden removes hidden lines and directive lines entirely.
	DropHidden DirectiveMode = iota

	// BlankHidden replaces hidden lines and directive lines with empty lines,
	// so every surviving line keeps its original line number.
	BlankHidden
)

// String returns the configuration name of the mode.
func (m DirectiveMode) String() string {
	switch m {
	case DropHidden:
		return "drop"
	case BlankHidden:
		return "blank"
	default:
		return fmt.Sprintf("DirectiveMode(%d)", int(m))
	}
}

// ParseDirectiveMode maps a configuration name to a mode.
// An empty name selects DropHidden.
func ParseDirectiveMode(name string) (DirectiveMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "drop":
		return DropHidden, nil
	case "blank":
		return BlankHidden, nil
	default:
		return DropHidden, fmt.Errorf("unknown directive mode %q (must be drop or blank)", name)
	}
}

// StructureError reports unbalanced directives with the offending line numbers.
type StructureError struct {
	Reason string
	Lines  []int // 1-based
}

func (e *StructureError) Error() string {
	nums := make([]string, len(e.Lines))
	for i, n := range e.Lines {
		nums[i] = fmt.Sprintf("%d", n)
	}
	if len(nums) == 1 {
		return fmt.Sprintf("%s on line %s", e.Reason, nums[0])
	}
	return fmt.Sprintf("%s on lines %s", e.Reason, strings.Join(nums, ", "))
}

// Unwrap lets callers match any structure failure with errors.Is(err, ErrStructure).
func (e *StructureError) Unwrap() error {
	return ErrStructure
}

// FlagSet is the set of active build flags.
type FlagSet map[string]struct{}

// NewFlagSet builds a FlagSet from a list of tokens. Empty tokens are ignored.
func NewFlagSet(flags ...string) FlagSet {
	set := make(FlagSet, len(flags))
	for _, f := range flags {
		if f == "" {
			continue
		}
		set[f] = struct{}{}
	}
	return set
}

// Has reports whether flag is active.
func (s FlagSet) Has(flag string) bool {
	_, ok := s[flag]
	return ok
}

// DirectivePreprocessor defines the contract for conditional block resolution.
type DirectivePreprocessor interface {
	ProcessDirectives(ctx context.Context, content string, flags FlagSet) (string, error)
}

// DirectiveProcessor resolves [](FLAG) ... []() blocks against a flag set.
type DirectiveProcessor struct {
	Mode DirectiveMode
}

// conditionalFrame is one open block. The root frame has openedAt 0.
type conditionalFrame struct {
	openedAt int
	visible  bool
}

// ProcessDirectives keeps or removes conditional blocks. Content is expected
// to use \n line endings. Every emitted line is terminated by \n.
func (p *DirectiveProcessor) ProcessDirectives(ctx context.Context, content string, flags FlagSet) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	lines := splitLines(content)
	out := make([]string, 0, len(lines))
	stack := []conditionalFrame{{openedAt: 0, visible: true}}

	for i, line := range lines {
		n := i + 1
		line = strings.TrimRight(line, "\r\n")
		top := stack[len(stack)-1]

		if m := startDirective.FindStringSubmatch(line); m != nil {
			negated := m[1] == "!"
			stack = append(stack, conditionalFrame{
				openedAt: n,
				visible:  top.visible && flags.Has(m[2]) == !negated,
			})
			out = p.hide(out)
			continue
		}

		if endDirective.MatchString(line) {
			if len(stack) == 1 {
				return "", &StructureError{Reason: "extraneous conditional end marker", Lines: []int{n}}
			}
			stack = stack[:len(stack)-1]
			out = p.hide(out)
			continue
		}

		if top.visible {
			out = append(out, line)
		} else {
			out = p.hide(out)
		}
	}

	if len(stack) != 1 {
		open := make([]int, 0, len(stack)-1)
		for _, f := range stack[1:] {
			open = append(open, f.openedAt)
		}
		return "", &StructureError{Reason: "unterminated conditional start marker", Lines: open}
	}

	if len(out) == 0 {
		return "", nil
	}
	return strings.Join(out, "\n") + "\n", nil
}

// hide records a line that is not emitted, according to the mode.
func (p *DirectiveProcessor) hide(out []string) []string {
	if p.Mode == BlankHidden {
		return append(out, "")
	}
	return out
}

// splitLines splits on \n. A trailing newline does not produce an extra empty line.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(content, "\n"), "\n")
}
