// # internal/parser/parser.go
package parser

import (
	"fmt"
	"path/filepath"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"pycycle/internal/errs"
)

type Parser struct {
	loader     *GrammarLoader
	extractors map[string]Extractor // language -> extractor
}

type Extractor interface {
	Extract(root *sitter.Node, source []byte, filePath, fqn string) (*File, error)
}

func NewParser(loader *GrammarLoader) *Parser {
	return &Parser{
		loader:     loader,
		extractors: make(map[string]Extractor),
	}
}

func (p *Parser) RegisterExtractor(lang string, e Extractor) {
	p.extractors[lang] = e
}

func (p *Parser) IsSupportedPath(path string) bool {
	return p.detectLanguage(path) != ""
}

// ParseFile parses one source file and extracts its resolved import targets.
// A file the grammar cannot parse cleanly is a PARSE_FAILURE: the caller skips
// it and the surrounding scan continues.
func (p *Parser) ParseFile(path, fqn string, content []byte) (*File, error) {
	lang := p.detectLanguage(path)
	if lang == "" {
		return nil, fmt.Errorf("unsupported language for %s", path)
	}

	grammar := p.loader.Language(lang)
	if grammar == nil {
		return nil, fmt.Errorf("grammar not loaded: %s", lang)
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(grammar)

	tree := parser.Parse(content, nil)
	if tree == nil {
		return nil, errs.WithPath(errs.New(errs.CodeParseFailure, "parse failed"), path)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, errs.WithPath(errs.New(errs.CodeParseFailure, "source contains syntax errors"), path)
	}

	extractor := p.extractors[lang]
	if extractor == nil {
		return nil, fmt.Errorf("no extractor for: %s", lang)
	}

	return extractor.Extract(root, content, path, fqn)
}

func (p *Parser) detectLanguage(path string) string {
	if filepath.Ext(path) == ".py" {
		return "python"
	}
	return ""
}
