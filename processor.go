package docprep

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/alnah/go-docprep/internal/logfields"
	"github.com/alnah/go-docprep/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor  = (*pipeline.SourceNormalizer)(nil)
	_ pipeline.DirectivePreprocessor = (*pipeline.DirectiveProcessor)(nil)
	_ pipeline.SymbolLinker          = (*pipeline.FenceAwareLinker)(nil)
	_ pipeline.HTMLConverter         = (*pipeline.GoldmarkConverter)(nil)
)

// Processor runs the preprocessing pipeline over documents.
// A Processor holds no per-document state and is safe for concurrent use.
type Processor struct {
	cfg           processorConfig
	logger        *slog.Logger
	normalizer    pipeline.MarkdownPreprocessor
	directives    pipeline.DirectivePreprocessor
	linker        pipeline.SymbolLinker
	htmlConverter pipeline.HTMLConverter
	loadTags      func(Database) ([]Tag, error)
}

// NewProcessor creates a Processor. Use options to set the directive mode,
// a timeout, or a logger.
func NewProcessor(opts ...Option) *Processor {
	p := &Processor{
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		normalizer:    &pipeline.SourceNormalizer{},
		linker:        &pipeline.FenceAwareLinker{},
		htmlConverter: pipeline.NewGoldmarkConverter(),
		loadTags:      LoadDatabase,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.directives == nil {
		p.directives = &pipeline.DirectiveProcessor{Mode: p.cfg.mode}
	}

	return p
}

// Process resolves conditional directives, then links symbols from each
// database in order, then optionally renders HTML.
// Directive errors are returned as *StructureError (wrapped).
// Recovers from internal panics to prevent crashes from propagating to callers.
func (p *Processor) Process(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := input.Validate(); err != nil {
		return nil, err
	}

	if p.cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.timeout)
		defer cancel()
	}

	log := p.logger
	if input.Name != "" {
		log = log.With(logfields.Document(input.Name))
	}

	content := p.normalizer.PreprocessMarkdown(ctx, input.Markdown)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	start := time.Now()
	content, err = p.directives.ProcessDirectives(ctx, content, pipeline.NewFlagSet(input.Flags...))
	if err != nil {
		return nil, fmt.Errorf("resolving directives: %w", err)
	}
	log.Debug("directives resolved",
		logfields.Stage(logfields.StageDirectives),
		logfields.Flags(input.Flags),
		logfields.Lines(strings.Count(content, "\n")),
		logfields.Duration(time.Since(start)))

	result = &Result{}
	for _, db := range input.Databases {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		start = time.Now()
		tags, err := p.loadTags(db)
		if err != nil {
			return nil, err
		}
		result.Symbols += len(tags)
		log.Debug("tag file loaded",
			logfields.Stage(logfields.StageTagFile),
			logfields.TagFile(db.name()),
			logfields.Records(len(tags)),
			logfields.Duration(time.Since(start)))

		start = time.Now()
		content = p.linker.LinkSymbols(ctx, content, tags)
		log.Debug("symbols linked",
			logfields.Stage(logfields.StageLink),
			logfields.TagFile(db.name()),
			logfields.Duration(time.Since(start)))
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	result.Markdown = content

	if input.RenderHTML {
		start = time.Now()
		html, err := p.htmlConverter.ToHTML(ctx, content)
		if err != nil {
			return nil, fmt.Errorf("rendering HTML: %w", err)
		}
		result.HTML = html
		log.Debug("html rendered",
			logfields.Stage(logfields.StageRender),
			logfields.Duration(time.Since(start)))
	}

	return result, nil
}

// LoadDatabase reads and parses one tag file. Elements the loader does not
// recognize are skipped; only unreadable or malformed XML is an error.
func LoadDatabase(db Database) ([]Tag, error) {
	if err := db.Validate(); err != nil {
		return nil, err
	}

	src := db.Source
	if src == nil {
		f, err := os.Open(db.Path) // #nosec G304 -- tag file path is user-provided
		if err != nil {
			return nil, &TagFileError{Path: db.name(), Err: fmt.Errorf("%w: %v", ErrTagFileRead, err)}
		}
		defer func() { _ = f.Close() }()
		src = f
	}

	tags, err := pipeline.LoadTagFile(src, db.Base)
	if err != nil {
		return nil, &TagFileError{Path: db.name(), Err: err}
	}
	return tags, nil
}
