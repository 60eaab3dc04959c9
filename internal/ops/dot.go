package ops

import (
	"fmt"

	"github.com/loom-ml/loom/internal/abstract"
	"github.com/loom-ml/loom/internal/prim"
)

// dotRule infers the shape of a rank-2 matrix product: [m k] · [k n] → [m n].
func dotRule(_ prim.Handle, args []abstract.Value) (abstract.Value, error) {
	a, b := args[0], args[1]
	if a.Kind() == abstract.KindUnknown || b.Kind() == abstract.KindUnknown {
		return abstract.Unknown(), nil
	}
	if a.Kind() != abstract.KindTensor || b.Kind() != abstract.KindTensor {
		return abstract.Bottom(), fmt.Errorf("dot expects tensor arguments, got %s and %s", a, b)
	}
	if a.ScalarType() != b.ScalarType() {
		return abstract.Bottom(), &abstract.TypeIncompatibleError{A: a, B: b}
	}
	as, bs := a.Shape(), b.Shape()
	if len(as) != 2 || len(bs) != 2 {
		return abstract.Bottom(), fmt.Errorf("dot expects rank-2 tensors, got shapes %s and %s", as, bs)
	}
	if as[1] != bs[0] {
		return abstract.Bottom(), fmt.Errorf("dot: inner dimensions disagree: %s · %s", as, bs)
	}
	return abstract.Tensor(a.ScalarType(), abstract.Shape{as[0], bs[1]}), nil
}

// dotHook multiplies two row-major float64 matrices.
func dotHook(args ...any) (any, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("dot: expected 2 arguments, got %d", len(args))
	}
	a, okA := args[0].([][]float64)
	b, okB := args[1].([][]float64)
	if !okA || !okB {
		return nil, fmt.Errorf("dot: expected [][]float64 matrices, got %T and %T", args[0], args[1])
	}
	if len(a) == 0 || len(a[0]) == 0 || len(b) == 0 || len(b[0]) == 0 {
		return nil, fmt.Errorf("dot: empty matrix argument")
	}
	if len(a[0]) != len(b) {
		return nil, fmt.Errorf("dot: inner dimensions disagree: %dx%d · %dx%d", len(a), len(a[0]), len(b), len(b[0]))
	}
	out := make([][]float64, len(a))
	for i := range a {
		out[i] = make([]float64, len(b[0]))
		for j := range out[i] {
			var sum float64
			for k := range b {
				sum += a[i][k] * b[k][j]
			}
			out[i][j] = sum
		}
	}
	return out, nil
}

func registerDot(r *prim.Registry) error {
	if _, err := r.RegisterOperation("dot", prim.OperationDefaults{
		Arity: 2,
		Doc:   "rank-2 matrix product",
		Hook:  dotHook,
	}); err != nil {
		return err
	}
	if _, err := r.RegisterPrimitive("dot", prim.PrimitiveDefaults{
		Infer: dotRule,
	}); err != nil {
		return err
	}
	return nil
}
