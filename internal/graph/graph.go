// # internal/graph/graph.go
package graph

import (
	"pycycle/internal/scanner"
)

// Graph is the adjacency projection of a snapshot: module FQN -> imported FQNs
// with duplicates collapsed. Edge targets may name modules that were never
// scanned (external imports); those are valid targets but never vertices.
//
// Vertex order follows snapshot (walk) order and edge order follows first
// occurrence in the source, so the same tree always yields the same graph and
// the same cycle list.
type Graph struct {
	order []string
	edges map[string][]string
}

// Build derives the adjacency structure from a snapshot. It holds no state of
// its own; rebuilding from the same snapshot yields an identical graph.
func Build(snap *scanner.Snapshot) *Graph {
	g := &Graph{
		order: make([]string, 0, len(snap.Order)),
		edges: make(map[string][]string, len(snap.Order)),
	}

	for _, fqn := range snap.Order {
		rec := snap.Modules[fqn]
		seen := make(map[string]bool, len(rec.Imports))
		targets := make([]string, 0, len(rec.Imports))
		for _, imp := range rec.Imports {
			if seen[imp] {
				continue
			}
			seen[imp] = true
			targets = append(targets, imp)
		}
		g.order = append(g.order, fqn)
		g.edges[fqn] = targets
	}

	return g
}

// Vertices returns the module FQNs in snapshot order.
func (g *Graph) Vertices() []string {
	return g.order
}

// Edges returns the deduplicated import targets of fqn. A target that is not
// itself a vertex has no edges.
func (g *Graph) Edges(fqn string) []string {
	return g.edges[fqn]
}

func (g *Graph) HasVertex(fqn string) bool {
	_, ok := g.edges[fqn]
	return ok
}

func (g *Graph) VertexCount() int {
	return len(g.order)
}

func (g *Graph) EdgeCount() int {
	n := 0
	for _, targets := range g.edges {
		n += len(targets)
	}
	return n
}
