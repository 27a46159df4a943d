// # internal/scanner/scanner_test.go
package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pycycle/internal/errs"
	"pycycle/internal/parser"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func newScanner(t *testing.T, root string, excludeDirs, excludeFiles []string) *Scanner {
	t.Helper()
	p := parser.NewParser(parser.NewGrammarLoader())
	p.RegisterExtractor("python", &parser.PythonExtractor{})
	s, err := New(root, p, excludeDirs, excludeFiles)
	require.NoError(t, err)
	return s
}

func TestScanBuildsModuleMap(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"app.py":          "import pkg.mod\nimport os\n",
		"pkg/__init__.py": "",
		"pkg/mod.py":      "from . import helper\n",
		"pkg/helper.py":   "",
		"README.md":       "not python\n",
	})

	s := newScanner(t, root, nil, nil)
	snap, err := s.Scan(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, snap.ModuleCount())
	require.Contains(t, snap.Modules, "app")
	require.Contains(t, snap.Modules, "pkg.__init__")
	require.Contains(t, snap.Modules, "pkg.mod")
	require.Contains(t, snap.Modules, "pkg.helper")

	assert.Equal(t, []string{"pkg.mod", "os"}, snap.Modules["app"].Imports)
	assert.Equal(t, []string{"pkg.helper"}, snap.Modules["pkg.mod"].Imports)
	assert.NotNil(t, snap.Modules["pkg.helper"].Imports, "imports are never nil")

	assert.Same(t, snap, s.Current())
}

func TestScanInvalidRoot(t *testing.T) {
	s := newScanner(t, filepath.Join(t.TempDir(), "missing"), nil, nil)
	_, err := s.Scan(context.Background())
	require.Error(t, err)
	assert.True(t, errs.IsCode(err, errs.CodeInvalidRoot))

	file := filepath.Join(t.TempDir(), "root.py")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	s = newScanner(t, file, nil, nil)
	_, err = s.Scan(context.Background())
	require.Error(t, err)
	assert.True(t, errs.IsCode(err, errs.CodeInvalidRoot))
}

func TestScanSkipsUnparseableFile(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"good.py":   "import os\n",
		"broken.py": "def broken(:\n",
		"other.py":  "import good\n",
	})

	s := newScanner(t, root, nil, nil)
	snap, err := s.Scan(context.Background())
	require.NoError(t, err)

	assert.NotContains(t, snap.Modules, "broken")
	assert.Contains(t, snap.Modules, "good")
	assert.Contains(t, snap.Modules, "other")
	assert.Equal(t, 1, snap.ParseFailures)
	assert.Equal(t, 3, snap.FileCount)
}

func TestScanExcludePatterns(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"main.py":                "",
		"main_test.py":           "",
		".venv/lib/site.py":      "",
		"__pycache__/cached.py":  "",
		"pkg/mod.py":             "",
		"pkg/__pycache__/mod.py": "",
		"pkg/generated_pb2.py":   "",
	})

	s := newScanner(t, root, []string{".venv", "__pycache__"}, []string{"*_test.py", "*_pb2.py"})
	snap, err := s.Scan(context.Background())
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"main", "pkg.mod"}, snap.Order)
}

func TestScanDeterministicOrder(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.py":   "import z\n",
		"m/b.py": "import a\n",
		"m/c.py": "",
		"z.py":   "",
	})

	s := newScanner(t, root, nil, nil)
	first, err := s.Scan(context.Background())
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		snap, err := s.Scan(context.Background())
		require.NoError(t, err)
		assert.Equal(t, first.Order, snap.Order)
	}
}

func TestScanCacheReuseAcrossScans(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.py": "import os\nimport sys\n",
	})

	s := newScanner(t, root, nil, nil)
	first, err := s.Scan(context.Background())
	require.NoError(t, err)

	// Second scan hits the parse cache but must yield the same records.
	second, err := s.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first.Modules["a"].Imports, second.Modules["a"].Imports)

	// Rewriting the file invalidates the entry.
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.py"), []byte("import json\nimport json\nimport extra\n"), 0o644))
	third, err := s.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"json", "json", "extra"}, third.Modules["a"].Imports)
}

func TestScanCancelledContext(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.py": ""})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := newScanner(t, root, nil, nil)
	_, err := s.Scan(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
