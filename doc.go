// Package docprep preprocesses hand-written technical manuals at build time.
//
// # Quick Start
//
// Create a processor and run a document through it:
//
//	proc := docprep.NewProcessor()
//
//	result, err := proc.Process(ctx, docprep.Input{
//	    Markdown: source,
//	    Flags:    []string{"release"},
//	    Databases: []docprep.Database{{
//	        Path: "api.tag",
//	        Base: docprep.NewTagBase("https://example.com/api", ""),
//	    }},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("manual.md", []byte(result.Markdown), 0644)
//
// # Conditional Directives
//
// A line consisting only of a directive opens or closes a conditional block:
//
//	[](release)     kept when "release" is an active flag
//	[](!release)    kept when "release" is not an active flag
//	[]()            closes the innermost block
//
// Blocks nest. A block inside a hidden block stays hidden whatever its own
// flag says. An end marker without an open block, or a block still open at
// the end of the document, fails with a *StructureError carrying line numbers.
//
// By default hidden lines are dropped. WithMode(ModeBlank) keeps them as
// empty lines so line numbers are preserved.
//
// # Cross-References
//
// Each Database is a doxygen-style tag file. Its symbols are loaded fresh for
// every Process call, and mentions in prose are rewritten as links:
//
//	Call `Engine::run` or Engine::run()   ->   [`Engine::run`](engine.html#a1)
//
// A symbol matches when quoted alone in single backticks, or as a bare word
// not touching identifier characters or colons. Functions also match with a
// trailing "()". Text inside ``` fences is never rewritten. Databases are
// applied in the order given.
//
// # Pipeline
//
//  1. Source normalization (byte order mark, line endings)
//  2. Conditional directives
//  3. Cross-references, once per database
//  4. HTML rendering via Goldmark when Input.RenderHTML is set
package docprep
