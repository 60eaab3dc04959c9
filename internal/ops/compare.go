package ops

import (
	"fmt"

	"github.com/loom-ml/loom/internal/prim"
)

// comparisonHook builds a concrete execution hook comparing two scalars of
// the same type.
func comparisonHook(name string, intFn func(a, b int64) bool, floatFn func(a, b float64) bool) prim.Hook {
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
			return intFn(a, b), nil
		case float64:
			b, ok := args[1].(float64)
			if !ok {
				return nil, fmt.Errorf("%s: mixed argument types %T and %T", name, args[0], args[1])
			}
			return floatFn(a, b), nil
		default:
			return nil, fmt.Errorf("%s: expected scalar, got %T", name, args[0])
		}
	}
}

func registerCompare(r *prim.Registry) error {
	type op struct {
		name    string
		doc     string
		intFn   func(a, b int64) bool
		floatFn func(a, b float64) bool
	}
	compares := []op{
		{"scalar_eq", "scalar equality", func(a, b int64) bool { return a == b }, func(a, b float64) bool { return a == b }},
		{"scalar_ne", "scalar inequality", func(a, b int64) bool { return a != b }, func(a, b float64) bool { return a != b }},
		{"scalar_lt", "scalar less-than", func(a, b int64) bool { return a < b }, func(a, b float64) bool { return a < b }},
		{"scalar_le", "scalar less-or-equal", func(a, b int64) bool { return a <= b }, func(a, b float64) bool { return a <= b }},
		{"scalar_gt", "scalar greater-than", func(a, b int64) bool { return a > b }, func(a, b float64) bool { return a > b }},
		{"scalar_ge", "scalar greater-or-equal", func(a, b int64) bool { return a >= b }, func(a, b float64) bool { return a >= b }},
	}
	for _, o := range compares {
		if _, err := r.RegisterOperation(o.name, prim.OperationDefaults{
			Arity: 2,
			Doc:   o.doc,
			Hook:  comparisonHook(o.name, o.intFn, o.floatFn),
		}); err != nil {
			return err
		}
		if _, err := r.RegisterPrimitive(o.name, prim.PrimitiveDefaults{
			Infer: comparisonRule(o.name),
		}); err != nil {
			return err
		}
	}
	return nil
}
