// Package abstract provides the core abstract value lattice for the Loom inference engine.
package abstract

import (
	"fmt"
	"strings"
)

// ScalarType represents runtime type information for scalar values.
type ScalarType int

// Supported scalar element types.
const (
	Bool ScalarType = iota
	Int8
	Int16
	Int32
	Int64
	UInt8
	UInt16
	UInt32
	UInt64
	Float16
	Float32
	Float64
)

// Size returns the byte size of the scalar type.
func (t ScalarType) Size() int {
	switch t {
	case Bool, Int8, UInt8:
		return 1
	case Int16, UInt16, Float16:
		return 2
	case Int32, UInt32, Float32:
		return 4
	case Int64, UInt64, Float64:
		return 8
	default:
		panic("unknown scalar type")
	}
}

// IsFloat reports whether the type is a floating-point type.
func (t ScalarType) IsFloat() bool {
	return t == Float16 || t == Float32 || t == Float64
}

// String returns a human-readable name for the scalar type.
func (t ScalarType) String() string {
	switch t {
	case Bool:
		return "bool"
	case Int8:
		return "int8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case UInt8:
		return "uint8"
	case UInt16:
		return "uint16"
	case UInt32:
		return "uint32"
	case UInt64:
		return "uint64"
	case Float16:
		return "float16"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return "unknown"
	}
}

// Kind discriminates the variants of a Value.
type Kind int

// Value kinds, from least to most structured.
const (
	// KindBottom is the contradiction element: inference proved no value fits.
	KindBottom Kind = iota
	// KindUnknown is the provisional element used while a value is unresolved.
	KindUnknown
	// KindScalar is a single element of a known scalar type.
	KindScalar
	// KindTensor is a multi-dimensional array with element type and shape.
	KindTensor
	// KindFunction is a callable with known parameter and result values.
	KindFunction
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindBottom:
		return "bottom"
	case KindUnknown:
		return "unknown"
	case KindScalar:
		return "scalar"
	case KindTensor:
		return "tensor"
	case KindFunction:
		return "function"
	default:
		return "invalid"
	}
}

// Value is an abstract approximation of a runtime value: what inference knows
// about a graph node before anything is executed. Values are immutable; all
// operations return new Values.
//
// The variants form a lattice ordered by information content:
//
//	Unknown ⊑ Scalar/Tensor/Function ⊑ Bottom (contradiction)
//
// Unknown carries no information and is the provisional placeholder handed out
// while a cyclic dependency is still being resolved. Bottom records that two
// incompatible facts were proven about the same node.
type Value struct {
	kind   Kind
	scalar ScalarType // element type for KindScalar and KindTensor
	shape  Shape      // for KindTensor
	params []Value    // for KindFunction
	result *Value     // for KindFunction
}

// Bottom returns the contradiction value.
func Bottom() Value {
	return Value{kind: KindBottom}
}

// Unknown returns the provisional no-information value.
func Unknown() Value {
	return Value{kind: KindUnknown}
}

// Scalar returns the abstract value for a scalar of type t.
func Scalar(t ScalarType) Value {
	return Value{kind: KindScalar, scalar: t}
}

// Tensor returns the abstract value for a tensor with element type t and the
// given shape. The shape is cloned, so the caller may reuse its slice.
func Tensor(t ScalarType, shape Shape) Value {
	return Value{kind: KindTensor, scalar: t, shape: shape.Clone()}
}

// Function returns the abstract value for a callable with the given parameter
// and result values.
func Function(params []Value, result Value) Value {
	ps := make([]Value, len(params))
	copy(ps, params)
	return Value{kind: KindFunction, params: ps, result: &result}
}

// Kind returns the variant of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// ScalarType returns the element type. Valid only for KindScalar and KindTensor.
func (v Value) ScalarType() ScalarType {
	return v.scalar
}

// Shape returns the tensor shape. Valid only for KindTensor.
func (v Value) Shape() Shape {
	return v.shape
}

// Params returns the parameter values. Valid only for KindFunction.
func (v Value) Params() []Value {
	return v.params
}

// Result returns the result value. Valid only for KindFunction.
func (v Value) Result() Value {
	if v.result == nil {
		return Unknown()
	}
	return *v.result
}

// IsResolved reports whether the value carries concrete information,
// i.e. is neither Unknown nor Bottom.
func (v Value) IsResolved() bool {
	return v.kind != KindUnknown && v.kind != KindBottom
}

// Equal reports whether two values are structurally identical.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindBottom, KindUnknown:
		return true
	case KindScalar:
		return v.scalar == other.scalar
	case KindTensor:
		return v.scalar == other.scalar && v.shape.Equal(other.shape)
	case KindFunction:
		if len(v.params) != len(other.params) {
			return false
		}
		for i := range v.params {
			if !v.params[i].Equal(other.params[i]) {
				return false
			}
		}
		return v.Result().Equal(other.Result())
	default:
		return false
	}
}

// String returns a compact notation for the value, e.g. "scalar(int64)",
// "tensor(float32, [2 3])", "(scalar(int64)) -> scalar(int64)".
func (v Value) String() string {
	switch v.kind {
	case KindBottom:
		return "⊥"
	case KindUnknown:
		return "?"
	case KindScalar:
		return fmt.Sprintf("scalar(%s)", v.scalar)
	case KindTensor:
		return fmt.Sprintf("tensor(%s, %s)", v.scalar, v.shape)
	case KindFunction:
		parts := make([]string, len(v.params))
		for i, p := range v.params {
			parts[i] = p.String()
		}
		return fmt.Sprintf("(%s) -> %s", strings.Join(parts, ", "), v.Result())
	default:
		return "invalid"
	}
}
