package docprep

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/alnah/go-docprep/internal/fileutil"
	"github.com/alnah/go-docprep/internal/pipeline"
)

// Mode selects what happens to lines hidden by conditional directives.
type Mode = pipeline.DirectiveMode

// Directive output modes.
const (
	// ModeDrop removes hidden lines and directive lines.
	ModeDrop = pipeline.DropHidden

	// ModeBlank keeps hidden lines and directive lines as empty lines,
	// preserving line numbers for tools that match on them.
	ModeBlank = pipeline.BlankHidden
)

// ParseMode maps "drop" or "blank" to a Mode. Empty means ModeDrop.
func ParseMode(name string) (Mode, error) {
	return pipeline.ParseDirectiveMode(name)
}

// Tag is one symbol loaded from a tag file.
type Tag = pipeline.Tag

// TagKind is the category of a Tag.
type TagKind = pipeline.TagKind

// Tag kinds.
const (
	KindClass       = pipeline.KindClass
	KindDefine      = pipeline.KindDefine
	KindFunction    = pipeline.KindFunction
	KindEnumeration = pipeline.KindEnumeration
	KindEnumValue   = pipeline.KindEnumValue
	KindNamespace   = pipeline.KindNamespace
	KindStruct      = pipeline.KindStruct
	KindTypedef     = pipeline.KindTypedef
	KindVariable    = pipeline.KindVariable
)

// TagBase locates the documentation a tag file describes.
type TagBase = pipeline.TagBase

// NewTagBase returns a TagBase for location. Locations starting with
// http:// or https:// are joined as URLs; anything else as a local path,
// made relative to relativeTo when it is set.
func NewTagBase(location, relativeTo string) TagBase {
	remote := fileutil.IsURL(location)
	if remote {
		relativeTo = ""
	}
	return TagBase{Location: location, RelativeTo: relativeTo, Remote: remote}
}

// Database is one symbol database to link against.
// Source is read when set; otherwise the file at Path is opened.
// A Source reader is consumed, so a Database with Source serves one Process call.
type Database struct {
	Path   string
	Source io.Reader
	Base   TagBase
}

// Validate checks that the database has something to read.
func (d Database) Validate() error {
	if d.Source == nil && d.Path == "" {
		return ErrNoTagSource
	}
	return nil
}

// name identifies the database in errors and logs.
func (d Database) name() string {
	if d.Path != "" {
		return d.Path
	}
	return "<reader>"
}

// Input contains processing parameters for one document.
type Input struct {
	Name       string     // Document name for diagnostics (optional)
	Markdown   string     // Source text
	Flags      []string   // Active build flags
	Databases  []Database // Applied in order, each loaded fresh
	RenderHTML bool       // Also render the result to HTML
}

// Validate checks every database.
func (in Input) Validate() error {
	for i, db := range in.Databases {
		if err := db.Validate(); err != nil {
			return fmt.Errorf("databases[%d]: %w", i, err)
		}
	}
	return nil
}

// Result holds the processed document.
type Result struct {
	Markdown string // Directives resolved, symbols linked
	HTML     string // Set when Input.RenderHTML is true
	Symbols  int    // Total tags loaded across all databases
}

// Option configures a Processor.
type Option func(*Processor)

// processorConfig holds internal configuration for Processor.
type processorConfig struct {
	timeout time.Duration
	mode    Mode
}

// WithTimeout bounds each Process call.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("docprep: WithTimeout duration must be positive")
	}
	return func(p *Processor) {
		p.cfg.timeout = d
	}
}

// WithMode sets how hidden lines are emitted. Default is ModeDrop.
func WithMode(m Mode) Option {
	return func(p *Processor) {
		p.cfg.mode = m
	}
}

// WithLogger sets the structured logger for stage diagnostics.
// A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(p *Processor) {
		if l != nil {
			p.logger = l
		}
	}
}
