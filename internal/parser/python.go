// # internal/parser/python.go
package parser

import (
	"strings"
	"time"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"pycycle/internal/resolver"
)

type PythonExtractor struct{}

func (e *PythonExtractor) Extract(root *sitter.Node, source []byte, filePath, fqn string) (*File, error) {
	file := &File{
		Path:     filePath,
		FQN:      fqn,
		ParsedAt: time.Now(),
	}

	e.walk(root, source, file)

	return file, nil
}

func (e *PythonExtractor) walk(node *sitter.Node, source []byte, file *File) {
	switch node.Kind() {
	case "import_statement":
		e.extractImport(node, source, file)
	case "import_from_statement":
		e.extractFromImport(node, source, file)
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		e.walk(node.Child(i), source, file)
	}
}

// extractImport handles "import a.b.c" and "import x as y": one entry per
// named target, the dotted name verbatim.
func (e *PythonExtractor) extractImport(node *sitter.Node, source []byte, file *File) {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)

		switch child.Kind() {
		case "dotted_name", "identifier":
			name := e.getText(child, source)
			file.Imports = append(file.Imports, Import{
				Target:    name,
				RawImport: name,
				Location:  e.getLocation(child, file.Path),
			})
		case "aliased_import":
			// First dotted_name/identifier is the module, the rest is the alias.
			for j := uint(0); j < child.ChildCount(); j++ {
				sub := child.Child(j)
				if sub.Kind() == "dotted_name" || sub.Kind() == "identifier" {
					name := e.getText(sub, source)
					file.Imports = append(file.Imports, Import{
						Target:    name,
						RawImport: name,
						Location:  e.getLocation(child, file.Path),
					})
					break
				}
			}
		}
	}
}

// extractFromImport handles "from X import ...". The target module is resolved
// once per statement; the imported symbols do not multiply entries. The one
// exception is "from . import a, b" where no module part exists: there each
// imported name is itself a submodule target.
func (e *PythonExtractor) extractFromImport(node *sitter.Node, source []byte, file *File) {
	var (
		level      int
		module     string
		hasModule  bool
		names      []string
		wildcard   bool
		raw        = e.getText(node, source)
		pastImport bool
	)

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)

		switch child.Kind() {
		case "relative_import":
			text := e.getText(child, source)
			trimmed := strings.TrimLeft(text, ".")
			level = len(text) - len(trimmed)
			if trimmed != "" {
				module = trimmed
				hasModule = true
			}
		case "import":
			pastImport = true
		case "wildcard_import":
			wildcard = true
		case "dotted_name", "identifier":
			if pastImport {
				names = append(names, e.getText(child, source))
			} else {
				module = e.getText(child, source)
				hasModule = true
			}
		case "aliased_import":
			for j := uint(0); j < child.ChildCount(); j++ {
				sub := child.Child(j)
				if sub.Kind() == "dotted_name" || sub.Kind() == "identifier" {
					names = append(names, e.getText(sub, source))
					break
				}
			}
		}
	}

	loc := e.getLocation(node, file.Path)

	switch {
	case hasModule:
		file.Imports = append(file.Imports, Import{
			Target:     resolver.ResolveFromImport(file.FQN, level, module, true),
			RawImport:  raw,
			IsRelative: level > 0,
			Level:      level,
			Location:   loc,
		})
	case wildcard || len(names) == 0:
		// "from . import *" and degenerate forms target the package itself.
		file.Imports = append(file.Imports, Import{
			Target:     resolver.ResolveFromImport(file.FQN, level, "", false),
			RawImport:  raw,
			IsRelative: level > 0,
			Level:      level,
			Location:   loc,
		})
	default:
		for _, name := range names {
			file.Imports = append(file.Imports, Import{
				Target:     resolver.ResolveFromImport(file.FQN, level, name, true),
				RawImport:  raw,
				IsRelative: level > 0,
				Level:      level,
				Location:   loc,
			})
		}
	}
}

func (e *PythonExtractor) getLocation(node *sitter.Node, filePath string) Location {
	return Location{
		File:   filePath,
		Line:   int(node.StartPosition().Row) + 1,
		Column: int(node.StartPosition().Column) + 1,
	}
}

func (e *PythonExtractor) getText(node *sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}
