package grad_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loom-ml/loom/internal/abstract"
	"github.com/loom-ml/loom/internal/grad"
	"github.com/loom-ml/loom/internal/graph"
	"github.com/loom-ml/loom/internal/infer"
	"github.com/loom-ml/loom/internal/ops"
	"github.com/loom-ml/loom/internal/prim"
)

func lookup(t *testing.T, r *prim.Registry, name string) *prim.Primitive {
	t.Helper()
	p, err := r.Lookup(name)
	require.NoError(t, err)
	return p
}

// TestRuleFor tests pure dispatch: present, absent, and unknown primitives.
func TestRuleFor(t *testing.T) {
	r := ops.NewRegistry()

	rule, ok, err := grad.RuleFor(r, "scalar_mul")
	require.NoError(t, err)
	require.True(t, ok)
	require.NotNil(t, rule)

	// scalar_mod is executable and inferable but not differentiable.
	_, ok, err = grad.RuleFor(r, "scalar_mod")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = grad.RuleFor(r, "no_such_primitive")
	var unknown *prim.UnknownPrimitiveError
	require.True(t, errors.As(err, &unknown))
}

// TestBackward_Mul tests that the multiplication gradient produces one node
// per input and that the backward nodes type-check through the same engine:
// for z = x*y with float inputs, dx and dy are float scalars.
func TestBackward_Mul(t *testing.T) {
	registry := ops.NewRegistry()
	mul := lookup(t, registry, "scalar_mul")

	x, y := graph.NewInput("x"), graph.NewInput("y")
	z := graph.Apply(mul, x, y)
	z.Label = "z"
	dz := graph.NewInput("dz")

	grads, err := grad.Backward(registry, z, dz)
	require.NoError(t, err)
	require.Len(t, grads, 2)
	grads[0].Label = "dx"
	grads[1].Label = "dy"

	// Type each backward node with the forward engine.
	f := abstract.Scalar(abstract.Float64)
	for _, gn := range grads {
		bg := &graph.Graph{Name: "backward", Inputs: []*graph.Node{x, y, dz}, Output: gn}
		report, err := infer.New(registry, infer.Options{}).Infer(bg, map[string]abstract.Value{
			"x": f, "y": f, "dz": f,
		})
		require.NoError(t, err)
		require.True(t, report.OK(), "diagnostics: %v", report.Diagnostics)
		v, ok := report.Value(gn)
		require.True(t, ok)
		assert.True(t, v.Equal(f), "%s = %s", gn, v)
	}
}

// TestBackward_AddSubNeg tests the structure of the simple gradients.
func TestBackward_AddSubNeg(t *testing.T) {
	registry := ops.NewRegistry()

	x, y := graph.NewInput("x"), graph.NewInput("y")
	dz := graph.NewInput("dz")

	// Addition passes the gradient through unchanged to both inputs.
	sum := graph.Apply(lookup(t, registry, "scalar_add"), x, y)
	grads, err := grad.Backward(registry, sum, dz)
	require.NoError(t, err)
	require.Len(t, grads, 2)
	assert.Same(t, dz, grads[0])
	assert.Same(t, dz, grads[1])

	// Subtraction negates the gradient for the subtrahend.
	diff := graph.Apply(lookup(t, registry, "scalar_sub"), x, y)
	grads, err = grad.Backward(registry, diff, dz)
	require.NoError(t, err)
	require.Len(t, grads, 2)
	assert.Same(t, dz, grads[0])
	negOp, ok := grads[1].Op.(*prim.Primitive)
	require.True(t, ok)
	assert.Equal(t, "scalar_usub", negOp.Name())
	require.Len(t, grads[1].Args, 1)
	assert.Same(t, dz, grads[1].Args[0])

	// Negation negates the gradient.
	neg := graph.Apply(lookup(t, registry, "scalar_usub"), x)
	grads, err = grad.Backward(registry, neg, dz)
	require.NoError(t, err)
	require.Len(t, grads, 1)
}

// TestBackward_Div tests the division gradient types through the engine.
func TestBackward_Div(t *testing.T) {
	registry := ops.NewRegistry()

	x, y := graph.NewInput("x"), graph.NewInput("y")
	quot := graph.Apply(lookup(t, registry, "scalar_div"), x, y)
	dz := graph.NewInput("dz")

	grads, err := grad.Backward(registry, quot, dz)
	require.NoError(t, err)
	require.Len(t, grads, 2)

	f := abstract.Scalar(abstract.Float64)
	for i, gn := range grads {
		bg := &graph.Graph{Name: "backward", Inputs: []*graph.Node{x, y, dz}, Output: gn}
		report, err := infer.New(registry, infer.Options{}).Infer(bg, map[string]abstract.Value{
			"x": f, "y": f, "dz": f,
		})
		require.NoError(t, err)
		require.True(t, report.OK(), "grad %d diagnostics: %v", i, report.Diagnostics)
		v, ok := report.Value(gn)
		require.True(t, ok)
		assert.True(t, v.Equal(f), "grad %d = %s", i, v)
	}
}

// TestBackward_Missing tests the reportable conditions: a primitive without a
// rule, and a non-primitive node.
func TestBackward_Missing(t *testing.T) {
	registry := ops.NewRegistry()
	x := graph.NewInput("x")
	dz := graph.NewInput("dz")

	mod := graph.Apply(lookup(t, registry, "scalar_mod"), x, x)
	_, err := grad.Backward(registry, mod, dz)
	var missing *grad.MissingGradRuleError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "scalar_mod", missing.Primitive)

	_, err = grad.Backward(registry, x, dz)
	require.Error(t, err, "input nodes are not primitive applications")
}
