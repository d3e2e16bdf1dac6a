// Package config holds module-wide constants shared across the lexer,
// parser, and demonstration CLI.
package config

// SourceFileExt is the canonical extension for Conch source files.
const SourceFileExt = ".conch"

// SourceFileExtensions lists every extension the front end recognizes as
// Conch source. It is a slice (not just SourceFileExt) so a future
// alternate extension can be added without touching call sites.
var SourceFileExtensions = []string{SourceFileExt}
