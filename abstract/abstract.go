// Copyright 2025 Loom ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package abstract provides the public API for Loom's abstract value lattice.
//
// An abstract value approximates what is known about a graph node before
// anything is executed: its kind (scalar, tensor, function), element type,
// and shape. Values support equality and a least-upper-bound Join used to
// reconcile provisional and final values during cycle resolution.
//
// Example:
//
//	a := abstract.Scalar(abstract.Int64)
//	b := abstract.Unknown()
//	v, err := abstract.Join(a, b) // v = scalar(int64)
package abstract

import (
	"github.com/loom-ml/loom/internal/abstract"
)

// ScalarType represents runtime type information for scalar values.
type ScalarType = abstract.ScalarType

// Scalar element type constants.
const (
	Bool    ScalarType = abstract.Bool
	Int8    ScalarType = abstract.Int8
	Int16   ScalarType = abstract.Int16
	Int32   ScalarType = abstract.Int32
	Int64   ScalarType = abstract.Int64
	UInt8   ScalarType = abstract.UInt8
	UInt16  ScalarType = abstract.UInt16
	UInt32  ScalarType = abstract.UInt32
	UInt64  ScalarType = abstract.UInt64
	Float16 ScalarType = abstract.Float16
	Float32 ScalarType = abstract.Float32
	Float64 ScalarType = abstract.Float64
)

// Kind discriminates the variants of a Value.
type Kind = abstract.Kind

// Value kind constants.
const (
	KindBottom   Kind = abstract.KindBottom
	KindUnknown  Kind = abstract.KindUnknown
	KindScalar   Kind = abstract.KindScalar
	KindTensor   Kind = abstract.KindTensor
	KindFunction Kind = abstract.KindFunction
)

// Shape represents the dimensions of a tensor value.
type Shape = abstract.Shape

// Value is an abstract approximation of a runtime value.
type Value = abstract.Value

// TypeIncompatibleError reports two values with no least upper bound.
type TypeIncompatibleError = abstract.TypeIncompatibleError

// Bottom returns the contradiction value.
func Bottom() Value { return abstract.Bottom() }

// Unknown returns the provisional no-information value.
func Unknown() Value { return abstract.Unknown() }

// Scalar returns the abstract value for a scalar of type t.
func Scalar(t ScalarType) Value { return abstract.Scalar(t) }

// Tensor returns the abstract value for a tensor with element type t and shape.
func Tensor(t ScalarType, shape Shape) Value { return abstract.Tensor(t, shape) }

// Function returns the abstract value for a callable.
func Function(params []Value, result Value) Value { return abstract.Function(params, result) }

// Join computes the least upper bound of two abstract values.
func Join(a, b Value) (Value, error) { return abstract.Join(a, b) }
