package ops

import (
	"fmt"
	"math"

	"github.com/loom-ml/loom/internal/graph"
	"github.com/loom-ml/loom/internal/prim"
)

// apply builds a node applying the named registered primitive. Used by
// gradient rules to express backward passes as ordinary graph nodes.
func apply(r *prim.Registry, name string, args ...*graph.Node) (*graph.Node, error) {
	p, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	return graph.Apply(p, args...), nil
}

// binaryHook builds a concrete execution hook over int64/float64 scalars.
// Mixed or non-scalar arguments are rejected, matching the strict scalar
// checks of the reference implementations.
func binaryHook(name string, intFn func(a, b int64) (int64, error), floatFn func(a, b float64) (float64, error)) prim.Hook {
	return func(args ...any) (any, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("%s: expected 2 arguments, got %d", name, len(args))
		}
		switch a := args[0].(type) {
		case int64:
			b, ok := args[1].(int64)
			if !ok {
				return nil, fmt.Errorf("%s: mixed argument types %T and %T", name, args[0], args[1])
			}
			return intFn(a, b)
		case float64:
			b, ok := args[1].(float64)
			if !ok {
				return nil, fmt.Errorf("%s: mixed argument types %T and %T", name, args[0], args[1])
			}
			return floatFn(a, b)
		default:
			return nil, fmt.Errorf("%s: expected scalar, got %T", name, args[0])
		}
	}
}

// unaryHook builds a concrete execution hook for one int64/float64 scalar.
func unaryHook(name string, intFn func(a int64) int64, floatFn func(a float64) float64) prim.Hook {
	return func(args ...any) (any, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("%s: expected 1 argument, got %d", name, len(args))
		}
		switch a := args[0].(type) {
		case int64:
			return intFn(a), nil
		case float64:
			return floatFn(a), nil
		default:
			return nil, fmt.Errorf("%s: expected scalar, got %T", name, args[0])
		}
	}
}

func intPow(a, b int64) (int64, error) {
	if b < 0 {
		return 0, fmt.Errorf("scalar_pow: negative integer exponent %d", b)
	}
	result := int64(1)
	for ; b > 0; b-- {
		result *= a
	}
	return result, nil
}

// Gradient rules for the arithmetic primitives. Each builds backward-pass
// nodes from other registered primitives, so the inferred types of the
// backward graph come from the same rules as the forward graph.

// d(x+y)/dx = 1, d(x+y)/dy = 1: the output gradient flows to both inputs.
func addGrad(r *prim.Registry) prim.GradRule {
	return func(inputs []*graph.Node, _, dz *graph.Node) ([]*graph.Node, error) {
		return []*graph.Node{dz, dz}, nil
	}
}

// d(x-y)/dx = 1, d(x-y)/dy = -1.
func subGrad(r *prim.Registry) prim.GradRule {
	return func(inputs []*graph.Node, _, dz *graph.Node) ([]*graph.Node, error) {
		negDz, err := apply(r, "scalar_usub", dz)
		if err != nil {
			return nil, err
		}
		return []*graph.Node{dz, negDz}, nil
	}
}

// d(x*y)/dx = y, d(x*y)/dy = x.
func mulGrad(r *prim.Registry) prim.GradRule {
	return func(inputs []*graph.Node, _, dz *graph.Node) ([]*graph.Node, error) {
		x, y := inputs[0], inputs[1]
		dx, err := apply(r, "scalar_mul", dz, y)
		if err != nil {
			return nil, err
		}
		dy, err := apply(r, "scalar_mul", dz, x)
		if err != nil {
			return nil, err
		}
		return []*graph.Node{dx, dy}, nil
	}
}

// d(x/y)/dx = 1/y, d(x/y)/dy = -x/y².
func divGrad(r *prim.Registry) prim.GradRule {
	return func(inputs []*graph.Node, _, dz *graph.Node) ([]*graph.Node, error) {
		x, y := inputs[0], inputs[1]
		dx, err := apply(r, "scalar_div", dz, y)
		if err != nil {
			return nil, err
		}
		ySq, err := apply(r, "scalar_mul", y, y)
		if err != nil {
			return nil, err
		}
		dzx, err := apply(r, "scalar_mul", dz, x)
		if err != nil {
			return nil, err
		}
		quot, err := apply(r, "scalar_div", dzx, ySq)
		if err != nil {
			return nil, err
		}
		dy, err := apply(r, "scalar_usub", quot)
		if err != nil {
			return nil, err
		}
		return []*graph.Node{dx, dy}, nil
	}
}

// d(+x)/dx = 1.
func uaddGrad(r *prim.Registry) prim.GradRule {
	return func(inputs []*graph.Node, _, dz *graph.Node) ([]*graph.Node, error) {
		return []*graph.Node{dz}, nil
	}
}

// d(-x)/dx = -1.
func usubGrad(r *prim.Registry) prim.GradRule {
	return func(inputs []*graph.Node, _, dz *graph.Node) ([]*graph.Node, error) {
		negDz, err := apply(r, "scalar_usub", dz)
		if err != nil {
			return nil, err
		}
		return []*graph.Node{negDz}, nil
	}
}

func registerArith(r *prim.Registry) error {
	type op struct {
		name  string
		arity int
		doc   string
		hook  prim.Hook
		grad  func(*prim.Registry) prim.GradRule // nil for non-differentiable ops
	}
	ops := []op{
		{
			name: "scalar_add", arity: 2, doc: "scalar addition",
			hook: binaryHook("scalar_add",
				func(a, b int64) (int64, error) { return a + b, nil },
				func(a, b float64) (float64, error) { return a + b, nil }),
			grad: addGrad,
		},
		{
			name: "scalar_sub", arity: 2, doc: "scalar subtraction",
			hook: binaryHook("scalar_sub",
				func(a, b int64) (int64, error) { return a - b, nil },
				func(a, b float64) (float64, error) { return a - b, nil }),
			grad: subGrad,
		},
		{
			name: "scalar_mul", arity: 2, doc: "scalar multiplication",
			hook: binaryHook("scalar_mul",
				func(a, b int64) (int64, error) { return a * b, nil },
				func(a, b float64) (float64, error) { return a * b, nil }),
			grad: mulGrad,
		},
		{
			name: "scalar_div", arity: 2, doc: "scalar division",
			hook: binaryHook("scalar_div",
				func(a, b int64) (int64, error) {
					if b == 0 {
						return 0, fmt.Errorf("scalar_div: division by zero")
					}
					return a / b, nil
				},
				func(a, b float64) (float64, error) { return a / b, nil }),
			grad: divGrad,
		},
		{
			name: "scalar_mod", arity: 2, doc: "scalar modulo",
			hook: binaryHook("scalar_mod",
				func(a, b int64) (int64, error) {
					if b == 0 {
						return 0, fmt.Errorf("scalar_mod: division by zero")
					}
					return a % b, nil
				},
				func(a, b float64) (float64, error) { return math.Mod(a, b), nil }),
		},
		{
			name: "scalar_pow", arity: 2, doc: "scalar exponentiation",
			hook: binaryHook("scalar_pow",
				intPow,
				func(a, b float64) (float64, error) { return math.Pow(a, b), nil }),
		},
		{
			name: "scalar_uadd", arity: 1, doc: "scalar unary plus",
			hook: unaryHook("scalar_uadd",
				func(a int64) int64 { return a },
				func(a float64) float64 { return a }),
			grad: uaddGrad,
		},
		{
			name: "scalar_usub", arity: 1, doc: "scalar negation",
			hook: unaryHook("scalar_usub",
				func(a int64) int64 { return -a },
				func(a float64) float64 { return -a }),
			grad: usubGrad,
		},
	}

	for _, o := range ops {
		if _, err := r.RegisterOperation(o.name, prim.OperationDefaults{
			Arity: o.arity,
			Doc:   o.doc,
			Hook:  o.hook,
		}); err != nil {
			return err
		}
		defaults := prim.PrimitiveDefaults{Infer: scalarRule(o.name)}
		if o.grad != nil {
			defaults.Grad = o.grad(r)
		}
		if _, err := r.RegisterPrimitive(o.name, defaults); err != nil {
			return err
		}
	}
	return nil
}
