package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// stdio stands for stdin as input or stdout as output.
const stdio = "-"

// maxWorkers bounds --workers.
const maxWorkers = 64

// Sentinel errors for file discovery.
var (
	ErrInvalidExtension   = errors.New("file must have .md or .markdown extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrOutputIsInput      = errors.New("output directory must differ from input directory")
)

// FileToProcess represents a single document to process.
type FileToProcess struct {
	InputPath  string // "-" reads stdin
	OutputPath string // "-" writes stdout
	Subdir     string // mirrored directory below the output root, "" at the root
}

// discoverFiles finds all markdown documents to process.
// A single file (or stdin) goes to output, or stdout when output is empty.
// A directory is walked and mirrored under output, which is then required.
func discoverFiles(inputPath, output string) ([]FileToProcess, error) {
	if inputPath == stdio {
		return []FileToProcess{{InputPath: stdio, OutputPath: resolveOutputPath("stdin.md", output)}}, nil
	}

	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := validateMarkdownExtension(inputPath); err != nil {
			return nil, err
		}
		return []FileToProcess{{InputPath: inputPath, OutputPath: resolveOutputPath(inputPath, output)}}, nil
	}

	if output == "" || output == stdio || isMarkdownPath(output) {
		return nil, fmt.Errorf("%w: directory input %s needs an output directory", ErrUsage, inputPath)
	}
	if samePath(inputPath, output) {
		return nil, fmt.Errorf("%w: %s", ErrOutputIsInput, output)
	}

	var files []FileToProcess
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() {
			// Output nested under input must not be read back in.
			if path != inputPath && samePath(path, output) {
				return filepath.SkipDir
			}
			return nil
		}
		if !isMarkdownPath(path) {
			return nil
		}
		rel, err := filepath.Rel(inputPath, path)
		if err != nil {
			return err
		}
		sub := filepath.Dir(rel)
		if sub == "." {
			sub = ""
		}
		files = append(files, FileToProcess{InputPath: path, OutputPath: filepath.Join(output, rel), Subdir: sub})
		return nil
	})

	return files, err
}

// resolveOutputPath determines where a single document is written.
func resolveOutputPath(inputPath, output string) string {
	switch {
	case output == "" || output == stdio:
		return stdio
	case isMarkdownPath(output):
		return output
	default:
		return filepath.Join(output, filepath.Base(inputPath))
	}
}

// htmlOutputPath returns the HTML path written next to a Markdown output.
func htmlOutputPath(mdPath string) string {
	return strings.TrimSuffix(mdPath, filepath.Ext(mdPath)) + ".html"
}

func isMarkdownPath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".md" || ext == ".markdown"
}

// validateMarkdownExtension checks that the file has a .md or .markdown extension.
func validateMarkdownExtension(path string) error {
	if !isMarkdownPath(path) {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}

// samePath compares two paths after making them absolute.
func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > maxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, maxWorkers)
	}
	return nil
}
