// # internal/output/tsv.go
package output

import (
	"strconv"
	"strings"

	"pycycle/internal/graph"
	"pycycle/internal/scanner"
)

type TSVGenerator struct {
	snap  *scanner.Snapshot
	graph *graph.Graph
}

func NewTSVGenerator(snap *scanner.Snapshot, g *graph.Graph) *TSVGenerator {
	return &TSVGenerator{snap: snap, graph: g}
}

// Generate emits one row per import edge. The in_cycle column marks
// edges whose endpoints share a strongly connected component.
func (t *TSVGenerator) Generate(cycles [][]string) (string, error) {
	var buf strings.Builder

	buf.WriteString("from\tto\tinternal\tin_cycle\tsource_file\n")

	idx := graph.BuildCycleIndex(cycles)

	for _, from := range t.graph.Vertices() {
		rec := t.snap.Modules[from]
		for _, to := range t.graph.Edges(from) {
			internal := t.graph.HasVertex(to)
			inCycle := false
			if ci, ok := idx[from]; ok {
				if cj, ok := idx[to]; ok {
					inCycle = ci == cj
				}
			}
			buf.WriteString(from)
			buf.WriteString("\t")
			buf.WriteString(to)
			buf.WriteString("\t")
			buf.WriteString(strconv.FormatBool(internal))
			buf.WriteString("\t")
			buf.WriteString(strconv.FormatBool(inCycle))
			buf.WriteString("\t")
			buf.WriteString(rec.Path)
			buf.WriteString("\n")
		}
	}

	return buf.String(), nil
}
