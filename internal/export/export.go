// # internal/export/export.go
package export

import (
	"encoding/json"
	"os"

	"pycycle/internal/scanner"
)

// Module is the exported view of one scanned module.
type Module struct {
	Path    string   `json:"path"`
	Imports []string `json:"imports"`
}

// Document is the serialization contract handed to consumers: the module
// model under "modules" and the cycle list under "cycles".
type Document struct {
	Modules map[string]Module `json:"modules"`
	Cycles  [][]string        `json:"cycles"`
}

func NewDocument(snap *scanner.Snapshot, cycles [][]string) Document {
	doc := Document{
		Modules: make(map[string]Module, len(snap.Modules)),
		Cycles:  cycles,
	}
	if doc.Cycles == nil {
		doc.Cycles = [][]string{}
	}

	for fqn, rec := range snap.Modules {
		imports := rec.Imports
		if imports == nil {
			imports = []string{}
		}
		doc.Modules[fqn] = Module{Path: rec.Path, Imports: imports}
	}

	return doc
}

func (d Document) Marshal() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

func (d Document) WriteFile(path string) error {
	data, err := d.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
