// # internal/output/output_test.go
package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pycycle/internal/graph"
	"pycycle/internal/scanner"
)

func buildSnapshot(mods []*scanner.ModuleRecord) *scanner.Snapshot {
	snap := &scanner.Snapshot{
		Root:    "/tmp/proj",
		Modules: make(map[string]*scanner.ModuleRecord),
	}
	for _, m := range mods {
		snap.Order = append(snap.Order, m.FQN)
		snap.Modules[m.FQN] = m
	}
	return snap
}

func TestDOTGeneratorCycleHighlighting(t *testing.T) {
	snap := buildSnapshot([]*scanner.ModuleRecord{
		{FQN: "a", Path: "a.py", Imports: []string{"b"}},
		{FQN: "b", Path: "b.py", Imports: []string{"a", "os"}},
		{FQN: "c", Path: "c.py", Imports: []string{"a"}},
	})
	g := graph.Build(snap)
	cycles := g.DetectCycles()
	require.Len(t, cycles, 1)

	gen := NewDOTGenerator(snap, g)
	out, err := gen.Generate(cycles)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "digraph imports {"))
	assert.Contains(t, out, `"a" -> "b" [color="red"`)
	assert.Contains(t, out, `"b" -> "a" [color="red"`)
	// c imports into the cycle but is not part of it
	assert.Contains(t, out, `"c" -> "a";`)
	// external target rendered grey and dashed
	assert.Contains(t, out, `"b" -> "os" [color="grey", style=dashed];`)
	assert.Contains(t, out, `"os" [fillcolor="gainsboro"`)
}

func TestDOTGeneratorNoCycles(t *testing.T) {
	snap := buildSnapshot([]*scanner.ModuleRecord{
		{FQN: "m", Path: "m.py", Imports: []string{}},
	})
	g := graph.Build(snap)

	gen := NewDOTGenerator(snap, g)
	out, err := gen.Generate(nil)
	require.NoError(t, err)

	assert.NotContains(t, out, "red")
	assert.Contains(t, out, `"m" [label=`)
}

func TestTSVGeneratorRows(t *testing.T) {
	snap := buildSnapshot([]*scanner.ModuleRecord{
		{FQN: "a", Path: "a.py", Imports: []string{"b", "json"}},
		{FQN: "b", Path: "b.py", Imports: []string{"a"}},
	})
	g := graph.Build(snap)
	cycles := g.DetectCycles()

	gen := NewTSVGenerator(snap, g)
	out, err := gen.Generate(cycles)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "from\tto\tinternal\tin_cycle\tsource_file", lines[0])
	assert.Equal(t, "a\tb\ttrue\ttrue\ta.py", lines[1])
	assert.Equal(t, "a\tjson\tfalse\tfalse\ta.py", lines[2])
	assert.Equal(t, "b\ta\ttrue\ttrue\tb.py", lines[3])
}
