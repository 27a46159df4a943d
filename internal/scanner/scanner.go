// # internal/scanner/scanner.go
package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/gobwas/glob"
	lru "github.com/hashicorp/golang-lru/v2"

	"pycycle/internal/errs"
	"pycycle/internal/parser"
	"pycycle/internal/resolver"
)

const parseCacheSize = 4096

type cacheEntry struct {
	size    int64
	modTime time.Time
	imports []string
}

// Scanner walks a project root and builds module snapshots. Each Scan builds a
// completely fresh snapshot and publishes it atomically; readers observe the
// previous snapshot until the new one is fully assembled.
//
// Symbolic-link cycles in the tree are not guarded against.
type Scanner struct {
	root         string
	parser       *parser.Parser
	excludeDirs  []glob.Glob
	excludeFiles []glob.Glob

	// Parse results keyed by path, invalidated by size/mtime. Lets watch-mode
	// rescans skip files that did not change.
	cache *lru.Cache[string, cacheEntry]

	current atomic.Pointer[Snapshot]
}

func New(root string, p *parser.Parser, excludeDirs, excludeFiles []string) (*Scanner, error) {
	s := &Scanner{
		root:   root,
		parser: p,
	}

	for _, pattern := range excludeDirs {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude dir pattern %q: %w", pattern, err)
		}
		s.excludeDirs = append(s.excludeDirs, g)
	}
	for _, pattern := range excludeFiles {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude file pattern %q: %w", pattern, err)
		}
		s.excludeFiles = append(s.excludeFiles, g)
	}

	cache, err := lru.New[string, cacheEntry](parseCacheSize)
	if err != nil {
		return nil, err
	}
	s.cache = cache

	return s, nil
}

// Current returns the last published snapshot, or nil before the first scan.
func (s *Scanner) Current() *Snapshot {
	return s.current.Load()
}

// Scan rebuilds the module map from a fresh filesystem walk. An absent or
// non-directory root fails before any records are produced. Unreadable
// subdirectories and unparseable files are skipped; a path outside the root
// indicates an integration bug and aborts the scan.
func (s *Scanner) Scan(ctx context.Context) (*Snapshot, error) {
	info, err := os.Stat(s.root)
	if err != nil {
		return nil, errs.WithPath(errs.Wrap(err, errs.CodeInvalidRoot, "project root not accessible"), s.root)
	}
	if !info.IsDir() {
		return nil, errs.WithPath(errs.New(errs.CodeInvalidRoot, "project root is not a directory"), s.root)
	}

	start := time.Now()
	snap := &Snapshot{
		Root:      s.root,
		Modules:   make(map[string]*ModuleRecord),
		ScannedAt: start,
	}

	err = filepath.WalkDir(s.root, func(path string, d fs.DirEntry, walkErr error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if walkErr != nil {
			if path == s.root {
				return errs.WithPath(errs.Wrap(walkErr, errs.CodeInvalidRoot, "cannot read project root"), path)
			}
			if d != nil && d.IsDir() {
				slog.Warn("skipping unreadable directory", "path", path, "error", walkErr)
				return filepath.SkipDir
			}
			slog.Warn("skipping unreadable entry", "path", path, "error", walkErr)
			return nil
		}

		base := filepath.Base(path)
		if d.IsDir() {
			for _, g := range s.excludeDirs {
				if g.Match(base) {
					return filepath.SkipDir
				}
			}
			return nil
		}

		if !s.parser.IsSupportedPath(path) {
			return nil
		}
		for _, g := range s.excludeFiles {
			if g.Match(base) {
				return nil
			}
		}

		return s.processFile(snap, path, d)
	})
	if err != nil {
		return nil, err
	}

	snap.Duration = time.Since(start)
	s.current.Store(snap)
	return snap, nil
}

func (s *Scanner) processFile(snap *Snapshot, path string, d fs.DirEntry) error {
	fqn, err := resolver.ModuleName(s.root, path)
	if err != nil {
		// Contract violation between walk and resolver, not an input problem.
		return err
	}

	snap.FileCount++

	fi, statErr := d.Info()
	if statErr == nil {
		if entry, ok := s.cache.Get(path); ok &&
			entry.size == fi.Size() && entry.modTime.Equal(fi.ModTime()) {
			snap.add(fqn, path, entry.imports)
			return nil
		}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("skipping unreadable file", "path", path, "error", err)
		return nil
	}

	file, err := s.parser.ParseFile(path, fqn, content)
	if err != nil {
		if errs.IsCode(err, errs.CodeParseFailure) {
			slog.Warn("skipping unparseable file", "path", path, "error", err)
			snap.ParseFailures++
			return nil
		}
		slog.Warn("failed to process file", "path", path, "error", err)
		return nil
	}

	imports := make([]string, 0, len(file.Imports))
	for _, imp := range file.Imports {
		imports = append(imports, imp.Target)
	}

	if statErr == nil {
		s.cache.Add(path, cacheEntry{size: fi.Size(), modTime: fi.ModTime(), imports: imports})
	}
	snap.add(fqn, path, imports)
	return nil
}

func (snap *Snapshot) add(fqn, path string, imports []string) {
	if _, exists := snap.Modules[fqn]; !exists {
		snap.Order = append(snap.Order, fqn)
	}
	snap.Modules[fqn] = &ModuleRecord{FQN: fqn, Path: path, Imports: imports}
}
