// Package ops registers the builtin primitives: scalar arithmetic,
// comparisons, boolean logic, and matrix product.
//
// Every builtin goes through both registration tiers. The operation tier
// carries the concrete execution hook (for evaluators; the inference core
// never calls it), the primitive tier adds the inference rule and, where the
// math defines one, the reverse-mode gradient rule.
package ops

import (
	"fmt"

	"github.com/loom-ml/loom/internal/abstract"
	"github.com/loom-ml/loom/internal/prim"
)

// NewRegistry returns a fresh registry pre-populated with the builtins.
func NewRegistry() *prim.Registry {
	r := prim.New()
	if err := Register(r); err != nil {
		// Registration of builtins into an empty registry cannot conflict.
		panic(fmt.Sprintf("ops: registering builtins: %v", err))
	}
	return r
}

// Register registers all builtin primitives into r.
func Register(r *prim.Registry) error {
	for _, reg := range []func(*prim.Registry) error{
		registerArith,
		registerCompare,
		registerLogic,
		registerSwitch,
		registerDot,
	} {
		if err := reg(r); err != nil {
			return err
		}
	}
	return nil
}

// scalarRule builds the inference rule shared by the scalar arithmetic
// primitives: the result is a scalar of the joined argument type. Arguments
// still provisional keep the result provisional; incompatible argument types
// fail the rule.
func scalarRule(name string) prim.Rule {
	return func(_ prim.Handle, args []abstract.Value) (abstract.Value, error) {
		v := abstract.Unknown()
		for _, a := range args {
			joined, err := abstract.Join(v, a)
			if err != nil {
				return abstract.Bottom(), err
			}
			v = joined
		}
		if v.Kind() == abstract.KindUnknown {
			return v, nil
		}
		if v.Kind() != abstract.KindScalar {
			return abstract.Bottom(), fmt.Errorf("%s expects scalar arguments, got %s", name, v)
		}
		return v, nil
	}
}

// comparisonRule builds the inference rule for comparison primitives: the
// arguments must be compatible scalars, the result is always a boolean
// scalar. The result does not depend on the (compatible) argument type, so
// cycles through comparisons resolve immediately.
func comparisonRule(name string) prim.Rule {
	scalars := scalarRule(name)
	return func(h prim.Handle, args []abstract.Value) (abstract.Value, error) {
		if _, err := scalars(h, args); err != nil {
			return abstract.Bottom(), err
		}
		return abstract.Scalar(abstract.Bool), nil
	}
}

// boolRule builds the inference rule for boolean primitives: all arguments
// must be boolean (or still provisional), the result is boolean.
func boolRule(name string) prim.Rule {
	return func(_ prim.Handle, args []abstract.Value) (abstract.Value, error) {
		boolScalar := abstract.Scalar(abstract.Bool)
		for _, a := range args {
			if a.Kind() == abstract.KindUnknown {
				continue
			}
			if !a.Equal(boolScalar) {
				return abstract.Bottom(), fmt.Errorf("%s expects boolean arguments, got %s", name, a)
			}
		}
		return boolScalar, nil
	}
}
