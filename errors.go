package docprep

import (
	"errors"
	"fmt"

	"github.com/alnah/go-docprep/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	// ErrStructure matches every *StructureError.
	ErrStructure = pipeline.ErrStructure

	ErrHTMLConversion = pipeline.ErrHTMLConversion

	// Symbol database errors.
	ErrTagFileRead  = errors.New("failed to read tag file")
	ErrTagFileParse = pipeline.ErrTagFileParse
	ErrNoTagSource  = errors.New("tag database needs a path or a source")
)

// StructureError reports unbalanced conditional directives. Lines holds the
// line of an extraneous end marker, or the start lines of every block left open.
type StructureError = pipeline.StructureError

// TagFileError names the tag file that could not be loaded.
// It wraps ErrTagFileRead or ErrTagFileParse.
type TagFileError struct {
	Path string // "<reader>" for Source-backed databases
	Err  error
}

func (e *TagFileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *TagFileError) Unwrap() error {
	return e.Err
}
