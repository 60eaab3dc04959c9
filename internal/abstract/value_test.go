package abstract

import "testing"

// TestValue_Equal tests structural equality across value kinds.
func TestValue_Equal(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"unknown equals unknown", Unknown(), Unknown(), true},
		{"bottom equals bottom", Bottom(), Bottom(), true},
		{"unknown differs from bottom", Unknown(), Bottom(), false},
		{"same scalar type", Scalar(Int64), Scalar(Int64), true},
		{"different scalar types", Scalar(Int64), Scalar(Float32), false},
		{"scalar differs from tensor", Scalar(Int64), Tensor(Int64, Shape{1}), false},
		{"same tensor", Tensor(Float32, Shape{2, 3}), Tensor(Float32, Shape{2, 3}), true},
		{"tensor shape differs", Tensor(Float32, Shape{2, 3}), Tensor(Float32, Shape{3, 2}), false},
		{"tensor element type differs", Tensor(Float32, Shape{2}), Tensor(Float64, Shape{2}), false},
		{
			"same function",
			Function([]Value{Scalar(Int64)}, Scalar(Bool)),
			Function([]Value{Scalar(Int64)}, Scalar(Bool)),
			true,
		},
		{
			"function arity differs",
			Function([]Value{Scalar(Int64)}, Scalar(Bool)),
			Function([]Value{Scalar(Int64), Scalar(Int64)}, Scalar(Bool)),
			false,
		},
		{
			"function result differs",
			Function([]Value{Scalar(Int64)}, Scalar(Bool)),
			Function([]Value{Scalar(Int64)}, Scalar(Int64)),
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := tt.b.Equal(tt.a); got != tt.want {
				t.Errorf("Equal(%s, %s) = %v, want %v (symmetry)", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

// TestValue_String tests the compact notation.
func TestValue_String(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Bottom(), "⊥"},
		{Unknown(), "?"},
		{Scalar(Int64), "scalar(int64)"},
		{Tensor(Float32, Shape{2, 3}), "tensor(float32, [2 3])"},
		{Function([]Value{Scalar(Int64), Scalar(Int64)}, Scalar(Bool)), "(scalar(int64), scalar(int64)) -> scalar(bool)"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

// TestValue_IsResolved tests resolution status per kind.
func TestValue_IsResolved(t *testing.T) {
	if Unknown().IsResolved() {
		t.Error("Unknown should not be resolved")
	}
	if Bottom().IsResolved() {
		t.Error("Bottom should not be resolved")
	}
	if !Scalar(Int64).IsResolved() {
		t.Error("Scalar should be resolved")
	}
	if !Tensor(Float32, Shape{2}).IsResolved() {
		t.Error("Tensor should be resolved")
	}
}

// TestTensor_ClonesShape tests that a constructed tensor does not alias the
// caller's shape slice.
func TestTensor_ClonesShape(t *testing.T) {
	s := Shape{2, 3}
	v := Tensor(Float32, s)
	s[0] = 99
	if v.Shape()[0] != 2 {
		t.Errorf("Tensor aliased caller's shape: got %s", v.Shape())
	}
}

// TestScalarType_Size tests byte sizes.
func TestScalarType_Size(t *testing.T) {
	tests := []struct {
		t    ScalarType
		want int
	}{
		{Bool, 1}, {Int8, 1}, {UInt8, 1},
		{Int16, 2}, {Float16, 2},
		{Int32, 4}, {Float32, 4},
		{Int64, 8}, {UInt64, 8}, {Float64, 8},
	}
	for _, tt := range tests {
		if got := tt.t.Size(); got != tt.want {
			t.Errorf("%s.Size() = %d, want %d", tt.t, got, tt.want)
		}
	}
}

// TestShape_Basics tests shape helpers.
func TestShape_Basics(t *testing.T) {
	s := Shape{2, 3, 4}
	if n := s.NumElements(); n != 24 {
		t.Errorf("NumElements() = %d, want 24", n)
	}
	if n := (Shape{}).NumElements(); n != 1 {
		t.Errorf("empty shape NumElements() = %d, want 1", n)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
	if err := (Shape{2, 0}).Validate(); err == nil {
		t.Error("Validate() should reject zero dimension")
	}
	clone := s.Clone()
	clone[0] = 9
	if s[0] != 2 {
		t.Error("Clone() should not alias the original")
	}
	if s.String() != "[2 3 4]" {
		t.Errorf("String() = %q, want %q", s.String(), "[2 3 4]")
	}
}
