package abstract

import "fmt"

// TypeIncompatibleError reports that two abstract values assert conflicting
// facts about the same graph node and have no least upper bound.
type TypeIncompatibleError struct {
	A, B Value
}

// Error implements the error interface.
func (e *TypeIncompatibleError) Error() string {
	return fmt.Sprintf("incompatible abstract values: %s vs %s", e.A, e.B)
}

// Join computes the least upper bound of two abstract values.
//
// Rules:
//   - Join(Unknown, x) = x (Unknown carries no information)
//   - Join(Bottom, x) = Bottom (contradiction absorbs)
//   - Join(x, x) = x
//   - Functions join component-wise.
//
// Conflicting concrete values (different kinds, different scalar types,
// different tensor shapes, mismatched function arity) have no upper bound
// short of a contradiction; Join returns a TypeIncompatibleError for them.
// The scheduler uses Join to reconcile a provisional value with the value a
// re-run produced, so Join(provisional, final) converging is what terminates
// cycle resolution.
func Join(a, b Value) (Value, error) {
	if a.kind == KindBottom || b.kind == KindBottom {
		return Bottom(), nil
	}
	if a.kind == KindUnknown {
		return b, nil
	}
	if b.kind == KindUnknown {
		return a, nil
	}
	if a.kind != b.kind {
		return Bottom(), &TypeIncompatibleError{A: a, B: b}
	}

	switch a.kind {
	case KindScalar:
		if a.scalar != b.scalar {
			return Bottom(), &TypeIncompatibleError{A: a, B: b}
		}
		return a, nil

	case KindTensor:
		if a.scalar != b.scalar || !a.shape.Equal(b.shape) {
			return Bottom(), &TypeIncompatibleError{A: a, B: b}
		}
		return a, nil

	case KindFunction:
		if len(a.params) != len(b.params) {
			return Bottom(), &TypeIncompatibleError{A: a, B: b}
		}
		params := make([]Value, len(a.params))
		for i := range a.params {
			p, err := Join(a.params[i], b.params[i])
			if err != nil {
				return Bottom(), &TypeIncompatibleError{A: a, B: b}
			}
			params[i] = p
		}
		result, err := Join(a.Result(), b.Result())
		if err != nil {
			return Bottom(), &TypeIncompatibleError{A: a, B: b}
		}
		return Function(params, result), nil

	default:
		return Bottom(), &TypeIncompatibleError{A: a, B: b}
	}
}
