// # internal/parser/types.go
package parser

import (
	"time"
)

type File struct {
	Path     string
	FQN      string // Fully qualified module name
	Imports  []Import
	ParsedAt time.Time
}

// Import is one resolved import target in source order. Duplicates and
// self-references are kept; deduplication happens at graph construction.
type Import struct {
	Target     string // Resolved target FQN (or the verbatim name for absolute imports)
	RawImport  string // Original import text as written
	IsRelative bool
	Level      int // Leading-dot count; 0 for absolute imports
	Location   Location
}

type Location struct {
	File   string
	Line   int
	Column int
}
