// Package logfields holds the canonical structured-log keys.
package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field names.
const (
	KeyDocument   = "document"
	KeyStage      = "stage"
	KeyTagFile    = "tagfile"
	KeyRecords    = "records"
	KeyLines      = "lines"
	KeyFlags      = "flags"
	KeyOutput     = "output"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Pipeline stage names.
const (
	StageNormalize  = "normalize"
	StageDirectives = "directives"
	StageTagFile    = "tagfile"
	StageLink       = "link"
	StageRender     = "render"
)

func Document(name string) slog.Attr { return slog.String(KeyDocument, name) }
func Stage(name string) slog.Attr { return slog.String(KeyStage, name) }
func TagFile(path string) slog.Attr { return slog.String(KeyTagFile, path) }
func Records(n int) slog.Attr { return slog.Int(KeyRecords, n) }
func Lines(n int) slog.Attr { return slog.Int(KeyLines, n) }
func Flags(f []string) slog.Attr { return slog.Any(KeyFlags, f) }
func Output(path string) slog.Attr { return slog.String(KeyOutput, path) }
func Duration(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(d.Microseconds())/1000)
}
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
