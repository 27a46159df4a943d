// # internal/parser/parser_test.go
package parser

import (
	"testing"

	"pycycle/internal/errs"
)

func newTestParser() *Parser {
	p := NewParser(NewGrammarLoader())
	p.RegisterExtractor("python", &PythonExtractor{})
	return p
}

func TestPythonImportExtraction(t *testing.T) {
	p := newTestParser()

	code := `
import os
import sys as system
import a.b.c, d
from auth.utils import login, logout
from . import sibling
from ..shared import helpers
`
	file, err := p.ParseFile("pkg/sub/mod.py", "pkg.sub.mod", []byte(code))
	if err != nil {
		t.Fatal(err)
	}

	want := []string{
		"os",
		"sys",
		"a.b.c",
		"d",
		"auth.utils",
		"pkg.sub.sibling",
		"pkg.shared",
	}

	if len(file.Imports) != len(want) {
		t.Fatalf("expected %d imports, got %d: %+v", len(want), len(file.Imports), file.Imports)
	}
	for i, imp := range file.Imports {
		if imp.Target != want[i] {
			t.Errorf("import %d: got %q, want %q", i, imp.Target, want[i])
		}
	}
}

func TestPythonImportExtraction_OrderAndDuplicates(t *testing.T) {
	p := newTestParser()

	// Duplicates and self-imports stay in discovery order; dedup is the
	// graph's job, not the extractor's.
	code := `
import os

def late():
    import os
    import mod
`
	file, err := p.ParseFile("mod.py", "mod", []byte(code))
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"os", "os", "mod"}
	if len(file.Imports) != len(want) {
		t.Fatalf("expected %d imports, got %d", len(want), len(file.Imports))
	}
	for i, imp := range file.Imports {
		if imp.Target != want[i] {
			t.Errorf("import %d: got %q, want %q", i, imp.Target, want[i])
		}
	}
}

func TestPythonFromImport_NoModuleName(t *testing.T) {
	p := newTestParser()

	// "from . import a" names submodules directly: one target per name.
	file, err := p.ParseFile("c.py", "c", []byte("from . import a\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(file.Imports) != 1 || file.Imports[0].Target != "a" {
		t.Fatalf("expected single import %q, got %+v", "a", file.Imports)
	}

	file, err = p.ParseFile("pkg/m.py", "pkg.m", []byte("from . import x, y\n"))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"pkg.x", "pkg.y"}
	if len(file.Imports) != len(want) {
		t.Fatalf("expected %d imports, got %d", len(want), len(file.Imports))
	}
	for i, imp := range file.Imports {
		if imp.Target != want[i] {
			t.Errorf("import %d: got %q, want %q", i, imp.Target, want[i])
		}
	}
}

func TestPythonFromImport_Wildcard(t *testing.T) {
	p := newTestParser()

	file, err := p.ParseFile("pkg/m.py", "pkg.m", []byte("from . import *\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(file.Imports) != 1 || file.Imports[0].Target != "pkg" {
		t.Fatalf("expected wildcard import of %q, got %+v", "pkg", file.Imports)
	}
}

func TestParseFile_SyntaxError(t *testing.T) {
	p := newTestParser()

	_, err := p.ParseFile("bad.py", "bad", []byte("def broken(:\n    pass\n"))
	if err == nil {
		t.Fatal("expected parse failure for malformed source")
	}
	if !errs.IsCode(err, errs.CodeParseFailure) {
		t.Errorf("expected PARSE_FAILURE, got %v", err)
	}
}

func TestParseFile_UnsupportedExtension(t *testing.T) {
	p := newTestParser()

	if p.IsSupportedPath("notes.txt") {
		t.Error("txt should not be supported")
	}
	if _, err := p.ParseFile("notes.txt", "notes", []byte("hello")); err == nil {
		t.Error("expected error for unsupported language")
	}
}
