package abstract

import (
	"errors"
	"testing"
)

// TestJoin_Lattice tests the lattice laws the scheduler depends on.
func TestJoin_Lattice(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want Value
	}{
		{"unknown is neutral left", Unknown(), Scalar(Int64), Scalar(Int64)},
		{"unknown is neutral right", Scalar(Int64), Unknown(), Scalar(Int64)},
		{"unknown with unknown", Unknown(), Unknown(), Unknown()},
		{"idempotent scalar", Scalar(Float32), Scalar(Float32), Scalar(Float32)},
		{"idempotent tensor", Tensor(Float32, Shape{4}), Tensor(Float32, Shape{4}), Tensor(Float32, Shape{4})},
		{"bottom absorbs", Bottom(), Scalar(Int64), Bottom()},
		{"bottom absorbs unknown", Unknown(), Bottom(), Bottom()},
		{
			"function joins component-wise",
			Function([]Value{Unknown()}, Scalar(Int64)),
			Function([]Value{Scalar(Bool)}, Unknown()),
			Function([]Value{Scalar(Bool)}, Scalar(Int64)),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Join(tt.a, tt.b)
			if err != nil {
				t.Fatalf("Join(%s, %s) failed: %v", tt.a, tt.b, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Join(%s, %s) = %s, want %s", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

// TestJoin_Incompatible tests that conflicting concrete values fail with
// TypeIncompatibleError.
func TestJoin_Incompatible(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
	}{
		{"different scalar types", Scalar(Int64), Scalar(Float32)},
		{"different kinds", Scalar(Int64), Tensor(Int64, Shape{1})},
		{"different tensor shapes", Tensor(Float32, Shape{2}), Tensor(Float32, Shape{3})},
		{"different tensor element types", Tensor(Float32, Shape{2}), Tensor(Float64, Shape{2})},
		{
			"function arity mismatch",
			Function([]Value{Scalar(Int64)}, Scalar(Int64)),
			Function([]Value{Scalar(Int64), Scalar(Int64)}, Scalar(Int64)),
		},
		{
			"function result conflict",
			Function([]Value{Scalar(Int64)}, Scalar(Int64)),
			Function([]Value{Scalar(Int64)}, Scalar(Float64)),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Join(tt.a, tt.b)
			var incompatible *TypeIncompatibleError
			if !errors.As(err, &incompatible) {
				t.Fatalf("Join(%s, %s) = %v, want TypeIncompatibleError", tt.a, tt.b, err)
			}
		})
	}
}

// TestJoin_Commutative tests that Join is order-independent for compatible
// values, which keeps fixpoint results deterministic.
func TestJoin_Commutative(t *testing.T) {
	values := []Value{
		Unknown(),
		Scalar(Int64),
		Tensor(Float32, Shape{2, 2}),
		Function([]Value{Scalar(Int64)}, Scalar(Bool)),
	}
	for _, a := range values {
		for _, b := range values {
			ab, errAB := Join(a, b)
			ba, errBA := Join(b, a)
			if (errAB == nil) != (errBA == nil) {
				t.Errorf("Join(%s, %s) and Join(%s, %s) disagree on error", a, b, b, a)
				continue
			}
			if errAB == nil && !ab.Equal(ba) {
				t.Errorf("Join(%s, %s) = %s but Join(%s, %s) = %s", a, b, ab, b, a, ba)
			}
		}
	}
}
