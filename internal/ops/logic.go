package ops

import (
	"fmt"

	"github.com/loom-ml/loom/internal/abstract"
	"github.com/loom-ml/loom/internal/prim"
)

// boolHook builds a concrete execution hook over boolean scalars.
func boolHook(name string, arity int, fn func(args []bool) bool) prim.Hook {
	return func(args ...any) (any, error) {
		if len(args) != arity {
			return nil, fmt.Errorf("%s: expected %d argument(s), got %d", name, arity, len(args))
		}
		bools := make([]bool, len(args))
		for i, a := range args {
			b, ok := a.(bool)
			if !ok {
				return nil, fmt.Errorf("%s: expected bool, got %T", name, a)
			}
			bools[i] = b
		}
		return fn(bools), nil
	}
}

func registerLogic(r *prim.Registry) error {
	type op struct {
		name  string
		doc   string
		arity int
		fn    func(args []bool) bool
	}
	logic := []op{
		{"bool_not", "boolean negation", 1, func(args []bool) bool { return !args[0] }},
		{"bool_and", "boolean conjunction", 2, func(args []bool) bool { return args[0] && args[1] }},
		{"bool_or", "boolean disjunction", 2, func(args []bool) bool { return args[0] || args[1] }},
	}
	for _, o := range logic {
		if _, err := r.RegisterOperation(o.name, prim.OperationDefaults{
			Arity: o.arity,
			Doc:   o.doc,
			Hook:  boolHook(o.name, o.arity, o.fn),
		}); err != nil {
			return err
		}
		if _, err := r.RegisterPrimitive(o.name, prim.PrimitiveDefaults{
			Infer: boolRule(o.name),
		}); err != nil {
			return err
		}
	}
	return nil
}

// switchRule infers switch(cond, tv, fv): the condition must be boolean, the
// result joins the two branches. A provisional branch keeps the result
// provisional, so conditionals closing a cycle still converge.
func switchRule(_ prim.Handle, args []abstract.Value) (abstract.Value, error) {
	cond := args[0]
	boolScalar := abstract.Scalar(abstract.Bool)
	if cond.Kind() != abstract.KindUnknown && !cond.Equal(boolScalar) {
		return abstract.Bottom(), fmt.Errorf("switch expects a boolean condition, got %s", cond)
	}
	return abstract.Join(args[1], args[2])
}

func registerSwitch(r *prim.Registry) error {
	if _, err := r.RegisterOperation("switch", prim.OperationDefaults{
		Arity: 3,
		Doc:   "conditional select",
		Hook: func(args ...any) (any, error) {
			if len(args) != 3 {
				return nil, fmt.Errorf("switch: expected 3 arguments, got %d", len(args))
			}
			cond, ok := args[0].(bool)
			if !ok {
				return nil, fmt.Errorf("switch: expected bool condition, got %T", args[0])
			}
			if cond {
				return args[1], nil
			}
			return args[2], nil
		},
	}); err != nil {
		return err
	}
	_, err := r.RegisterPrimitive("switch", prim.PrimitiveDefaults{
		Infer: switchRule,
	})
	return err
}
