// Package pipeline implements the documentation preprocessing stages.
//
// Stages, in the order the root docprep package runs them:
//   - Source normalization (byte order mark, line endings)
//   - Conditional directives: [](FLAG), [](!FLAG) and []() blocks resolved
//     against the active build flags
//   - Cross-references: symbols from doxygen-style tag files linked in prose,
//     once per tag file, outside fenced code blocks
//   - Optional Markdown to HTML rendering via Goldmark
//
// Every stage is a text to text transformation over an in-memory document.
// Reading sources and tag files and writing results is left to callers.
package pipeline
