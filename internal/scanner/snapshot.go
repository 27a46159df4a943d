// # internal/scanner/snapshot.go
package scanner

import (
	"time"
)

// ModuleRecord is one scanned module: its file path and raw import targets in
// discovery order. Imports is never nil; a module without imports carries an
// empty slice.
type ModuleRecord struct {
	FQN     string
	Path    string
	Imports []string
}

// Snapshot is the complete result of one scan. Order preserves filesystem walk
// order so graph traversal and cycle output stay deterministic across rescans
// of an unchanged tree. A snapshot is immutable once published.
type Snapshot struct {
	Root          string
	Order         []string
	Modules       map[string]*ModuleRecord
	ScannedAt     time.Time
	Duration      time.Duration
	FileCount     int
	ParseFailures int
}

func (s *Snapshot) ModuleCount() int {
	return len(s.Modules)
}

func (s *Snapshot) ImportCount() int {
	n := 0
	for _, rec := range s.Modules {
		n += len(rec.Imports)
	}
	return n
}
