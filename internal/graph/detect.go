// # internal/graph/detect.go
package graph

// Tarjan's strongly-connected-components over the import graph. The state that
// the textbook formulation keeps in closure-captured variables lives in an
// explicit struct, and the depth-first traversal is simulated with a frame
// stack so pathological import chains cannot exhaust the call stack.
type tarjanState struct {
	counter int
	index   map[string]int
	lowlink map[string]int
	stack   []string
	onStack map[string]bool
	cycles  [][]string
}

type tarjanFrame struct {
	v    string
	edge int // next out-edge to examine
}

// DetectCycles returns the strongly connected components of size >= 2, each in
// the traversal's pop order. Singleton components, including modules that
// import themselves, are never reported. DFS roots follow vertex order and
// edges follow edge order, so the result is deterministic for a given graph.
func (g *Graph) DetectCycles() [][]string {
	st := &tarjanState{
		index:   make(map[string]int, len(g.order)),
		lowlink: make(map[string]int, len(g.order)),
		onStack: make(map[string]bool, len(g.order)),
	}

	for _, v := range g.order {
		if _, seen := st.index[v]; !seen {
			g.strongConnect(st, v)
		}
	}

	return st.cycles
}

func (g *Graph) strongConnect(st *tarjanState, root string) {
	st.visit(root)
	frames := []tarjanFrame{{v: root}}

	for len(frames) > 0 {
		f := &frames[len(frames)-1]
		targets := g.edges[f.v]

		if f.edge < len(targets) {
			w := targets[f.edge]
			f.edge++
			if _, seen := st.index[w]; !seen {
				// External targets get a frame too; with no out-edges they
				// collapse into singleton components and are never reported.
				st.visit(w)
				frames = append(frames, tarjanFrame{v: w})
			} else if st.onStack[w] && st.index[w] < st.lowlink[f.v] {
				st.lowlink[f.v] = st.index[w]
			}
			continue
		}

		if st.lowlink[f.v] == st.index[f.v] {
			comp := st.popComponent(f.v)
			if len(comp) > 1 {
				st.cycles = append(st.cycles, comp)
			}
		}

		done := f.v
		frames = frames[:len(frames)-1]
		if len(frames) > 0 {
			parent := &frames[len(frames)-1]
			if st.lowlink[done] < st.lowlink[parent.v] {
				st.lowlink[parent.v] = st.lowlink[done]
			}
		}
	}
}

func (st *tarjanState) visit(v string) {
	st.index[v] = st.counter
	st.lowlink[v] = st.counter
	st.counter++
	st.stack = append(st.stack, v)
	st.onStack[v] = true
}

func (st *tarjanState) popComponent(v string) []string {
	var comp []string
	for {
		w := st.stack[len(st.stack)-1]
		st.stack = st.stack[:len(st.stack)-1]
		st.onStack[w] = false
		comp = append(comp, w)
		if w == v {
			return comp
		}
	}
}

// CycleIndex maps each module in a reported cycle to that cycle's position in
// the cycle list, giving O(1) membership checks for rendering instead of
// rescanning every cycle per module.
type CycleIndex map[string]int

func BuildCycleIndex(cycles [][]string) CycleIndex {
	idx := make(CycleIndex)
	for i, cycle := range cycles {
		for _, fqn := range cycle {
			idx[fqn] = i
		}
	}
	return idx
}

func (idx CycleIndex) InCycle(fqn string) bool {
	_, ok := idx[fqn]
	return ok
}
