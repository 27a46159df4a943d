// # internal/output/dot.go
package output

import (
	"fmt"
	"strings"

	"pycycle/internal/graph"
	"pycycle/internal/scanner"
)

type DOTGenerator struct {
	snap  *scanner.Snapshot
	graph *graph.Graph
}

func NewDOTGenerator(snap *scanner.Snapshot, g *graph.Graph) *DOTGenerator {
	return &DOTGenerator{snap: snap, graph: g}
}

func (d *DOTGenerator) Generate(cycles [][]string) (string, error) {
	var buf strings.Builder

	buf.WriteString("digraph imports {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box, style=rounded, fontname=\"Helvetica\", fontsize=10];\n")
	buf.WriteString("  edge [fontname=\"Helvetica\", fontsize=8];\n")
	buf.WriteString("  splines=polyline;\n")
	buf.WriteString("  overlap=false;\n\n")

	idx := graph.BuildCycleIndex(cycles)

	cycleEdges := make(map[string]map[string]bool)
	for _, cycle := range cycles {
		for i := 0; i < len(cycle); i++ {
			from := cycle[i]
			to := cycle[(i+1)%len(cycle)]
			if cycleEdges[from] == nil {
				cycleEdges[from] = make(map[string]bool)
			}
			cycleEdges[from][to] = true
		}
	}

	// Scanned modules
	for _, fqn := range d.graph.Vertices() {
		rec := d.snap.Modules[fqn]
		label := fmt.Sprintf("%s\\n(%d imports)", fqn, len(rec.Imports))
		if idx.InCycle(fqn) {
			buf.WriteString(fmt.Sprintf("  \"%s\" [label=\"%s\", fillcolor=\"mistyrose\", style=\"rounded,filled\", color=\"red\", penwidth=2.0];\n", fqn, label))
		} else {
			buf.WriteString(fmt.Sprintf("  \"%s\" [label=\"%s\", tooltip=\"%s\"];\n", fqn, label, rec.Path))
		}
	}
	buf.WriteString("\n")

	// Unscanned targets (external packages, unresolved imports)
	externals := make(map[string]bool)
	for _, fqn := range d.graph.Vertices() {
		for _, to := range d.graph.Edges(fqn) {
			if !d.graph.HasVertex(to) && !externals[to] {
				externals[to] = true
				buf.WriteString(fmt.Sprintf("  \"%s\" [fillcolor=\"gainsboro\", style=\"rounded,filled\", color=\"grey\"];\n", to))
			}
		}
	}
	buf.WriteString("\n")

	for _, from := range d.graph.Vertices() {
		for _, to := range d.graph.Edges(from) {
			switch {
			case cycleEdges[from] != nil && cycleEdges[from][to]:
				buf.WriteString(fmt.Sprintf("  \"%s\" -> \"%s\" [color=\"red\", penwidth=2.5];\n", from, to))
			case d.graph.HasVertex(to):
				buf.WriteString(fmt.Sprintf("  \"%s\" -> \"%s\";\n", from, to))
			default:
				buf.WriteString(fmt.Sprintf("  \"%s\" -> \"%s\" [color=\"grey\", style=dashed];\n", from, to))
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}
