package graphfile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loom-ml/loom/internal/abstract"
	"github.com/loom-ml/loom/internal/graphfile"
	"github.com/loom-ml/loom/internal/infer"
	"github.com/loom-ml/loom/internal/ops"
	"github.com/loom-ml/loom/internal/prim"
)

const basicGraph = `
name: main
inputs: [x, y]
nodes:
  - id: sum
    op: scalar_add
    args: [x, y]
  - id: out
    op: scalar_lt
    args: [sum, x]
output: out
input_types:
  x: {kind: scalar, type: int64}
  y: {kind: scalar, type: int64}
`

// TestParse_Basic parses a graph and runs it through inference end to end.
func TestParse_Basic(t *testing.T) {
	registry := ops.NewRegistry()
	g, inputTypes, err := graphfile.Parse([]byte(basicGraph), registry)
	require.NoError(t, err)

	assert.Equal(t, "main", g.Name)
	assert.Equal(t, []string{"x", "y"}, g.InputNames())
	require.NotNil(t, g.Output)
	assert.Equal(t, "out", g.Output.Label)

	report, err := infer.New(registry, infer.Options{}).Infer(g, inputTypes)
	require.NoError(t, err)
	require.True(t, report.OK(), "diagnostics: %v", report.Diagnostics)
	v, ok := report.Output()
	require.True(t, ok)
	assert.True(t, v.Equal(abstract.Scalar(abstract.Bool)), "out = %s", v)
}

// TestParse_ForwardAndCyclicRefs tests that nodes may reference nodes defined
// later, and themselves.
func TestParse_ForwardAndCyclicRefs(t *testing.T) {
	registry := ops.NewRegistry()
	src := `
name: cyclic
inputs: [x]
nodes:
  - id: a
    op: scalar_add
    args: [x, b]
  - id: b
    op: scalar_add
    args: [x, a]
output: a
input_types:
  x: {kind: scalar, type: int64}
`
	g, inputTypes, err := graphfile.Parse([]byte(src), registry)
	require.NoError(t, err)

	report, err := infer.New(registry, infer.Options{}).Infer(g, inputTypes)
	require.NoError(t, err)
	require.True(t, report.OK(), "diagnostics: %v", report.Diagnostics)
	v, ok := report.Output()
	require.True(t, ok)
	assert.True(t, v.Equal(abstract.Scalar(abstract.Int64)))
}

// TestParse_LiteralNodes tests value nodes.
func TestParse_LiteralNodes(t *testing.T) {
	registry := ops.NewRegistry()
	src := `
name: lit
nodes:
  - id: c
    value: {kind: scalar, type: float64}
  - id: out
    op: scalar_mul
    args: [c, c]
output: out
`
	g, _, err := graphfile.Parse([]byte(src), registry)
	require.NoError(t, err)

	report, err := infer.New(registry, infer.Options{}).Infer(g, nil)
	require.NoError(t, err)
	require.True(t, report.OK())
	v, _ := report.Output()
	assert.True(t, v.Equal(abstract.Scalar(abstract.Float64)))
}

// TestValueSpec tests YAML value forms.
func TestValueSpec(t *testing.T) {
	tests := []struct {
		name string
		spec graphfile.ValueSpec
		want abstract.Value
	}{
		{"unknown", graphfile.ValueSpec{Kind: "unknown"}, abstract.Unknown()},
		{"bottom", graphfile.ValueSpec{Kind: "bottom"}, abstract.Bottom()},
		{"scalar", graphfile.ValueSpec{Kind: "scalar", Type: "int32"}, abstract.Scalar(abstract.Int32)},
		{
			"tensor",
			graphfile.ValueSpec{Kind: "tensor", Type: "float32", Shape: []int{2, 3}},
			abstract.Tensor(abstract.Float32, abstract.Shape{2, 3}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.spec.Value()
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want))
		})
	}
}

// TestParse_Errors tests rejection of malformed documents.
func TestParse_Errors(t *testing.T) {
	registry := ops.NewRegistry()
	tests := []struct {
		name string
		src  string
	}{
		{"not yaml", `{{`},
		{"unknown op", "nodes:\n  - {id: a, op: no_such_op}\noutput: a\n"},
		{"unknown arg", "nodes:\n  - {id: a, op: scalar_usub, args: [ghost]}\noutput: a\n"},
		{"duplicate id", "inputs: [a]\nnodes:\n  - {id: a, op: scalar_usub, args: [a]}\noutput: a\n"},
		{"missing output", "nodes:\n  - {id: a, value: {kind: unknown}}\noutput: b\n"},
		{"empty node id", "nodes:\n  - {op: scalar_usub}\noutput: a\n"},
		{"node without op or value", "nodes:\n  - {id: a}\noutput: a\n"},
		{"value node with args", "inputs: [x]\nnodes:\n  - {id: a, op: scalar_usub, args: [x], value: {kind: unknown}}\noutput: a\n"},
		{"bad scalar type", "nodes:\n  - {id: a, value: {kind: scalar, type: complex128}}\noutput: a\n"},
		{"bad value kind", "nodes:\n  - {id: a, value: {kind: widget}}\noutput: a\n"},
		{"bad tensor shape", "nodes:\n  - {id: a, value: {kind: tensor, type: float32, shape: [0]}}\noutput: a\n"},
		{"bad input type", "inputs: [x]\nnodes:\n  - {id: a, op: scalar_usub, args: [x]}\noutput: a\ninput_types:\n  x: {kind: widget}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := graphfile.Parse([]byte(tt.src), registry)
			require.Error(t, err)
		})
	}
}

// TestLoad_MissingFile tests the filesystem error path.
func TestLoad_MissingFile(t *testing.T) {
	_, _, err := graphfile.Load("testdata/does_not_exist.yaml", prim.New())
	require.Error(t, err)
}
