package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// utf8BOM is stripped from the start of source documents.
const utf8BOM = "\uFEFF"

// Line ending normalization
var crlfOrCR = regexp.MustCompile(`\r\n?`)

// MarkdownPreprocessor defines the contract for source normalization.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// SourceNormalizer prepares hand-written sources for the line-based stages.
type SourceNormalizer struct{}

// PreprocessMarkdown strips a leading byte order mark and converts all
// line endings to \n.
func (p *SourceNormalizer) PreprocessMarkdown(ctx context.Context, content string) string {
	// Check for cancellation before processing
	if ctx.Err() != nil {
		return content
	}

	content = strings.TrimPrefix(content, utf8BOM)
	return NormalizeLineEndings(content)
}

// NormalizeLineEndings converts \r\n and \r to \n.
func NormalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}
