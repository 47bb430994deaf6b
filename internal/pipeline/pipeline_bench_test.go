//go:build bench

package pipeline

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

// BenchmarkGoldmarkToHTML benchmarks markdown to HTML conversion.
func BenchmarkGoldmarkToHTML(b *testing.B) {
	converter := NewGoldmarkConverter()
	ctx := context.Background()

	inputs := []struct {
		name    string
		content string
	}{
		{"minimal", "# Hello\n\nWorld"},
		{"headings", generateHeadingsMarkdown(20)},
		{"code_blocks", generateCodeBlocksMarkdown(10)},
		{"tables", generateTablesMarkdown(5)},
		{"mixed_medium", generateMixedMarkdown(50)},
	}

	for _, input := range inputs {
		b.Run(input.name, func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if _, err := converter.ToHTML(ctx, input.content); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkProcessDirectives benchmarks conditional block resolution by size.
func BenchmarkProcessDirectives(b *testing.B) {
	p := &DirectiveProcessor{}
	ctx := context.Background()
	flags := NewFlagSet("release", "linux")

	for _, size := range []int{10, 100, 1000} {
		content := generateConditionalMarkdown(size)
		b.Run(fmt.Sprintf("blocks_%d", size), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if _, err := p.ProcessDirectives(ctx, content, flags); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkLinkSymbols benchmarks substitution against growing symbol tables.
// Each tag costs two passes over the prose, so tag count dominates.
func BenchmarkLinkSymbols(b *testing.B) {
	content := generateMixedMarkdown(50)

	for _, count := range []int{10, 100, 1000} {
		tags := generateTags(count)
		b.Run(fmt.Sprintf("tags_%d", count), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				_ = LinkSymbols(content, tags)
			}
		})
	}
}

// Helper functions for generating benchmark input

func generateHeadingsMarkdown(count int) string {
	var sb strings.Builder
	for i := 0; i < count; i++ {
		level := (i % 6) + 1
		sb.WriteString(strings.Repeat("#", level))
		sb.WriteString(fmt.Sprintf(" Heading %d\n\n", i+1))
		sb.WriteString("Some content under this heading.\n\n")
	}
	return sb.String()
}

func generateCodeBlocksMarkdown(count int) string {
	var sb strings.Builder
	code := `func example() {
    fmt.Println("Hello, World!")
    for i := 0; i < 10; i++ {
        process(i)
    }
}`
	for i := 0; i < count; i++ {
		sb.WriteString("## Code Example\n\n")
		sb.WriteString("```go\n")
		sb.WriteString(code)
		sb.WriteString("\n```\n\n")
	}
	return sb.String()
}

func generateTablesMarkdown(count int) string {
	var sb strings.Builder
	for i := 0; i < count; i++ {
		sb.WriteString("## Table Section\n\n")
		sb.WriteString("| Column 1 | Column 2 | Column 3 | Column 4 |\n")
		sb.WriteString("|----------|----------|----------|----------|\n")
		for j := 0; j < 10; j++ {
			sb.WriteString(fmt.Sprintf("| Cell %d-1 | Cell %d-2 | Cell %d-3 | Cell %d-4 |\n", j, j, j, j))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func generateMixedMarkdown(sections int) string {
	var sb strings.Builder
	sb.WriteString("# Document Title\n\n")
	sb.WriteString("Introduction paragraph with **bold** and *italic* text.\n\n")

	for i := 0; i < sections; i++ {
		sb.WriteString(fmt.Sprintf("## Section %d\n\n", i+1))
		sb.WriteString("This is a paragraph with some content. ")
		sb.WriteString("It includes [links](https://example.com) and `inline code`.\n\n")

		// Add a list
		sb.WriteString("- Item one\n")
		sb.WriteString("- Item two\n")
		sb.WriteString("- Item three\n\n")

		// Add code block every 3rd section
		if i%3 == 0 {
			sb.WriteString("```go\nfunc main() {\n    fmt.Println(\"Hello\")\n}\n```\n\n")
		}

		// Add table every 5th section
		if i%5 == 0 {
			sb.WriteString("| A | B | C |\n|---|---|---|\n| 1 | 2 | 3 |\n\n")
		}
	}

	return sb.String()
}

func generateConditionalMarkdown(blocks int) string {
	var sb strings.Builder
	for i := 0; i < blocks; i++ {
		switch i % 3 {
		case 0:
			sb.WriteString("[](release)\n")
		case 1:
			sb.WriteString("[](!release)\n")
		default:
			sb.WriteString("[](windows)\n")
		}
		sb.WriteString(fmt.Sprintf("Paragraph %d inside a block.\n", i))
		sb.WriteString("[]()\n\nShared text.\n\n")
	}
	return sb.String()
}

func generateTags(count int) []Tag {
	tags := make([]Tag, 0, count+1)
	tags = append(tags, Tag{Name: "main", Link: "main.html", Ref: "main.html", Kind: KindFunction})
	for i := 0; i < count; i++ {
		name := fmt.Sprintf("Symbol%d", i)
		tags = append(tags, Tag{Name: name, Link: name + ".html", Ref: name + ".html", Kind: KindClass})
	}
	return tags
}
