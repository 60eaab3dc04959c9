// Copyright 2025 Loom ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package prim provides the public API for Loom primitives and their registry.
//
// Registration is two-tier: RegisterOperation declares an executable
// operation (concrete hook, arity, doc), RegisterPrimitive upgrades it with
// an inference rule and an optional gradient rule. Primitive-tier fields
// override operation-tier fields one by one; absent fields inherit.
//
// Example:
//
//	r := prim.New()
//	r.RegisterOperation("my_op", prim.OperationDefaults{Arity: 2, Hook: myHook})
//	r.RegisterPrimitive("my_op", prim.PrimitiveDefaults{Infer: myRule})
package prim

import (
	"github.com/loom-ml/loom/internal/ops"
	"github.com/loom-ml/loom/internal/prim"
)

// Handle is the scheduler surface exposed to inference rules.
type Handle = prim.Handle

// Rule computes a node's abstract value from its arguments' abstract values.
type Rule = prim.Rule

// Hook executes a primitive on concrete runtime values.
type Hook = prim.Hook

// GradRule builds the backward pass for one primitive application.
type GradRule = prim.GradRule

// Descriptor is the merged, immutable metadata record for one primitive.
type Descriptor = prim.Descriptor

// Primitive is an interned operation identity plus its merged Descriptor.
type Primitive = prim.Primitive

// Registry is a catalog mapping primitive names to descriptors.
type Registry = prim.Registry

// OperationDefaults is the operation-tier configuration.
type OperationDefaults = prim.OperationDefaults

// PrimitiveDefaults is the primitive-tier configuration.
type PrimitiveDefaults = prim.PrimitiveDefaults

// DuplicateNameError reports a registration conflict.
type DuplicateNameError = prim.DuplicateNameError

// UnknownPrimitiveError reports a lookup for an unregistered name.
type UnknownPrimitiveError = prim.UnknownPrimitiveError

// MissingHookError reports concrete execution of a hook-less primitive.
type MissingHookError = prim.MissingHookError

// ArityVariadic marks a primitive accepting any number of arguments.
const ArityVariadic = prim.ArityVariadic

// New creates an empty registry.
func New() *Registry { return prim.New() }

// NewBuiltin creates a registry pre-populated with the builtin primitives
// (scalar arithmetic, comparisons, boolean logic, matrix product).
func NewBuiltin() *Registry { return ops.NewRegistry() }
