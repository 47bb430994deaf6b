package pipeline

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"
)

// codeFence separates prose from verbatim segments.
const codeFence = "```"

// SymbolLinker defines the contract for cross-reference substitution.
type SymbolLinker interface {
	LinkSymbols(ctx context.Context, content string, tags []Tag) string
}

// FenceAwareLinker turns mentions of known symbols into Markdown links,
// leaving fenced code blocks untouched.
type FenceAwareLinker struct{}

// LinkSymbols applies every tag, in order, to the prose segments of content.
// A location rewritten by one tag is not considered again by later tags.
func (l *FenceAwareLinker) LinkSymbols(ctx context.Context, content string, tags []Tag) string {
	if ctx.Err() != nil {
		return content
	}
	return LinkSymbols(content, tags)
}

// LinkSymbols is the context-free form of FenceAwareLinker.LinkSymbols.
func LinkSymbols(content string, tags []Tag) string {
	if len(tags) == 0 || content == "" {
		return content
	}

	// Even segments are prose. After an unmatched fence the remainder
	// is an odd segment and is left alone.
	segments := strings.Split(content, codeFence)
	for i := 0; i < len(segments); i += 2 {
		segments[i] = linkProse(segments[i], tags)
	}
	return strings.Join(segments, codeFence)
}

// span is a piece of prose. Linked spans are output of a substitution.
type span struct {
	text   string
	linked bool
}

// linkProse runs both passes for every tag over one prose segment.
func linkProse(prose string, tags []Tag) string {
	spans := []span{{text: prose}}
	for _, tag := range tags {
		if tag.Name == "" || !strings.Contains(prose, tag.Name) {
			continue
		}
		spans = substitute(spans, quotedPattern(tag), tag.Link)
		spans = substitute(spans, barePattern(tag), tag.Link)
	}

	var b strings.Builder
	b.Grow(len(prose))
	for _, s := range spans {
		b.WriteString(s.text)
	}
	return b.String()
}

// form is one spelling of a mention and the text shown inside the link.
type form struct {
	match   string
	display string
}

// pattern lists the spellings of one tag for a pass, longest first.
// Every form starts with lead.
type pattern struct {
	lead  string
	forms []form
	ok    boundaryFunc
}

// quotedPattern matches the name alone inside single backticks.
func quotedPattern(tag Tag) pattern {
	p := pattern{lead: "`" + tag.Name}
	if tag.Kind == KindFunction {
		p.forms = append(p.forms, form{match: "`" + tag.Name + "()`", display: tag.Name + "()"})
	}
	p.forms = append(p.forms, form{match: "`" + tag.Name + "`", display: tag.Name})
	return p
}

// barePattern matches the name as plain text between open edges.
func barePattern(tag Tag) pattern {
	p := pattern{lead: tag.Name, ok: bareBoundary}
	if tag.Kind == KindFunction {
		p.forms = append(p.forms, form{match: tag.Name + "()", display: tag.Name + "()"})
	}
	p.forms = append(p.forms, form{match: tag.Name, display: tag.Name})
	return p
}

// textEdge stands for the start or end of the text in a boundary check.
const textEdge rune = -1

// boundaryFunc reports whether a match may stand between before and after.
type boundaryFunc func(before, after rune) bool

// bareBoundary requires a non-identifier, non-colon rune (or the text edge)
// on both sides, so "Bar" matches neither "FooBar" nor "Foo::Bar".
func bareBoundary(before, after rune) bool {
	return isOpenEdge(before) && isOpenEdge(after)
}

// isOpenEdge treats undecodable bytes as closed: they may belong to a
// name in some other encoding.
func isOpenEdge(r rune) bool {
	switch r {
	case textEdge:
		return true
	case utf8.RuneError:
		return false
	}
	return r != ':' && !isIdentRune(r)
}

func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// substitute rewrites matches of p in the unlinked spans. The boundary
// check sees neighbouring runes across span edges, so text next to an
// earlier link is judged by the link's own characters.
func substitute(spans []span, p pattern, link string) []span {
	out := make([]span, 0, len(spans))
	for i, s := range spans {
		if s.linked || !strings.Contains(s.text, p.lead) {
			out = append(out, s)
			continue
		}

		before := lastRune(spans[:i])
		after := firstRune(spans[i+1:])
		out = append(out, splitMatches(s.text, p, link, before, after)...)
	}
	return out
}

// splitMatches cuts text into unlinked and linked spans. Every occurrence
// of the lead is tried, including ones overlapping a rejected candidate.
func splitMatches(text string, p pattern, link string, before, after rune) []span {
	var out []span
	last, i := 0, 0
	for i < len(text) {
		j := strings.Index(text[i:], p.lead)
		if j < 0 {
			break
		}
		start := i + j

		f, found := p.matchAt(text, start, before, after)
		if !found {
			_, size := utf8.DecodeRuneInString(text[start:])
			i = start + size
			continue
		}

		if start > last {
			out = append(out, span{text: text[last:start]})
		}
		out = append(out, span{text: formatLink(f.display, link), linked: true})
		last = start + len(f.match)
		i = last
	}
	if last < len(text) {
		out = append(out, span{text: text[last:]})
	}
	return out
}

// matchAt returns the longest form of p at text[start:] whose neighbours
// pass the boundary check. A function name whose parentheses are followed
// by an identifier still matches without them.
func (p pattern) matchAt(text string, start int, before, after rune) (form, bool) {
	for _, f := range p.forms {
		if !strings.HasPrefix(text[start:], f.match) {
			continue
		}
		if p.ok == nil {
			return f, true
		}
		end := start + len(f.match)
		prev, next := before, after
		if start > 0 {
			prev, _ = utf8.DecodeLastRuneInString(text[:start])
		}
		if end < len(text) {
			next, _ = utf8.DecodeRuneInString(text[end:])
		}
		if p.ok(prev, next) {
			return f, true
		}
	}
	return form{}, false
}

// formatLink renders the matched text as an inline code span linking to target.
func formatLink(display, target string) string {
	return "[`" + display + "`](" + target + ")"
}

func lastRune(spans []span) rune {
	for i := len(spans) - 1; i >= 0; i-- {
		if spans[i].text != "" {
			r, _ := utf8.DecodeLastRuneInString(spans[i].text)
			return r
		}
	}
	return textEdge
}

func firstRune(spans []span) rune {
	for _, s := range spans {
		if s.text != "" {
			r, _ := utf8.DecodeRuneInString(s.text)
			return r
		}
	}
	return textEdge
}
