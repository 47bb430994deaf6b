package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	docprep "github.com/alnah/go-docprep"
	"github.com/alnah/go-docprep/internal/fileutil"
	"github.com/alnah/go-docprep/internal/hints"
	"github.com/alnah/go-docprep/internal/logfields"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for batch operations.
var (
	ErrNoInput         = errors.New("no input specified")
	ErrReadMarkdown    = errors.New("failed to read markdown file")
	ErrWriteOutput     = errors.New("failed to write output file")
	ErrCreateOutputDir = errors.New("failed to create output directory")
)

// Preprocessor is the interface for the document pipeline.
type Preprocessor interface {
	Process(ctx context.Context, input docprep.Input) (*docprep.Result, error)
}

// Compile-time interface implementation check.
var _ Preprocessor = (*docprep.Processor)(nil)

// ProcessResult holds the outcome of a single document.
type ProcessResult struct {
	InputPath  string
	OutputPath string
	HTMLPath   string
	Symbols    int
	Err        error
	Duration   time.Duration
}

// batchParams groups parameters shared by every document of a run.
type batchParams struct {
	flags     []string
	databases []docprep.Database // Path-backed, so each document reloads them
	html      bool
	stdin     io.Reader
	stdout    io.Writer
	stdoutMu  *sync.Mutex
	logger    *slog.Logger
}

// processBatch processes files concurrently with a bounded set of workers
// sharing one Processor. Results keep the order of files.
func processBatch(ctx context.Context, proc Preprocessor, workers int, files []FileToProcess, params *batchParams) []ProcessResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(workers, len(files))
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]ProcessResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ProcessResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = processFile(ctx, proc, files[idx], params)
				logResult(params.logger, results[idx])
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// documentDatabases rebases local relative links for a document written
// subdir levels below the output root. The shared slice is not modified.
func documentDatabases(dbs []docprep.Database, subdir string) []docprep.Database {
	if subdir == "" {
		return dbs
	}
	out := make([]docprep.Database, len(dbs))
	for i, db := range dbs {
		if !db.Base.Remote && db.Base.RelativeTo != "" {
			db.Base.RelativeTo = filepath.Join(db.Base.RelativeTo, subdir)
		}
		out[i] = db
	}
	return out
}

// processFile processes a single document and writes its outputs.
func processFile(ctx context.Context, proc Preprocessor, f FileToProcess, params *batchParams) ProcessResult {
	start := time.Now()
	result := ProcessResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	fail := func(err error) ProcessResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	content, err := readInput(f.InputPath, params.stdin)
	if err != nil {
		return fail(fmt.Errorf("%w: %v", ErrReadMarkdown, err))
	}

	res, err := proc.Process(ctx, docprep.Input{
		Name:       f.InputPath,
		Markdown:   content,
		Flags:      params.flags,
		Databases:  documentDatabases(params.databases, f.Subdir),
		RenderHTML: params.html,
	})
	if err != nil {
		return fail(err)
	}
	result.Symbols = res.Symbols

	if f.OutputPath == stdio {
		params.stdoutMu.Lock()
		_, err := io.WriteString(params.stdout, res.Markdown)
		params.stdoutMu.Unlock()
		if err != nil {
			return fail(fmt.Errorf("%w: %v", ErrWriteOutput, err))
		}
		result.Duration = time.Since(start)
		return result
	}

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		return fail(fmt.Errorf("%w: %v", ErrCreateOutputDir, err))
	}

	if err := fileutil.WriteFileAtomic(f.OutputPath, []byte(res.Markdown), filePermissions); err != nil {
		return fail(fmt.Errorf("%w: %v", ErrWriteOutput, err))
	}

	if params.html {
		htmlPath := htmlOutputPath(f.OutputPath)
		if err := fileutil.WriteFileAtomic(htmlPath, []byte(res.HTML), filePermissions); err != nil {
			return fail(fmt.Errorf("%w: %v", ErrWriteOutput, err))
		}
		result.HTMLPath = htmlPath
	}

	result.Duration = time.Since(start)
	return result
}

// logResult records the outcome of one document at debug level.
func logResult(logger *slog.Logger, r ProcessResult) {
	if r.Err != nil {
		logger.Debug("document failed", logfields.Document(r.InputPath), logfields.Error(r.Err))
		return
	}
	logger.Debug("document written",
		logfields.Document(r.InputPath),
		logfields.Output(r.OutputPath),
		logfields.Duration(r.Duration))
}

// readInput reads a document from path, or from stdin for "-".
func readInput(path string, stdin io.Reader) (string, error) {
	if path == stdio {
		data, err := io.ReadAll(stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path) // #nosec G304 -- discovered path
	return string(data), err
}

// ResultSummary holds the count of succeeded and failed documents.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed documents.
func countResults(results []ProcessResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResults reports each document and returns the per-file errors.
// Nothing is printed to stdout for documents written there.
func printResults(results []ProcessResult, quiet, verbose bool, env *Environment) []error {
	summary := countResults(results)
	var errs []error

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", r.InputPath, r.Err, hintFor(r.Err))
			errs = append(errs, r.Err)
			continue
		}

		if quiet || r.OutputPath == stdio {
			continue
		}

		outputs := r.OutputPath
		if r.HTMLPath != "" {
			outputs += ", " + r.HTMLPath
		}
		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%d symbols, %v)\n", r.InputPath, outputs, r.Symbols, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", outputs)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return errs
}

// hintFor returns the hint matching a per-document failure, if any.
func hintFor(err error) string {
	var tferr *docprep.TagFileError
	switch {
	case errors.Is(err, docprep.ErrStructure):
		return hints.ForStructure()
	case errors.As(err, &tferr):
		return hints.ForTagFile(tferr.Path)
	case errors.Is(err, ErrCreateOutputDir):
		return hints.ForOutputDirectory()
	default:
		return ""
	}
}

// batchError reports how many documents failed. It unwraps to every
// per-document error so exit codes can be derived from them.
type batchError struct {
	errs []error
}

func (e *batchError) Error() string {
	if len(e.errs) == 1 {
		return "1 document failed"
	}
	return fmt.Sprintf("%d documents failed", len(e.errs))
}

func (e *batchError) Unwrap() []error {
	return e.errs
}

// describeFlags renders active flags for verbose output.
func describeFlags(flags []string) string {
	if len(flags) == 0 {
		return "(none)"
	}
	return strings.Join(flags, ", ")
}
