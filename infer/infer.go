// Copyright 2025 Loom ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package infer provides the public API for Loom's abstract interpretation
// engine.
//
// The engine computes an abstract value for every node reachable from a
// graph's output, running each primitive's inference rule as a suspendable
// task. Cyclic dependencies resolve through provisional values and a fixpoint
// loop instead of deadlocking.
//
// Example:
//
//	engine := infer.New(prim.NewBuiltin(), infer.Options{})
//	report, err := engine.Infer(g, map[string]abstract.Value{
//	    "x": abstract.Scalar(abstract.Int64),
//	})
package infer

import (
	"github.com/loom-ml/loom/internal/abstract"
	"github.com/loom-ml/loom/internal/graph"
	"github.com/loom-ml/loom/internal/infer"
	"github.com/loom-ml/loom/internal/prim"
)

// Engine orchestrates inference over dataflow graphs against one registry.
type Engine = infer.Engine

// Options configures an Engine. The zero value is usable.
type Options = infer.Options

// Report is the result of one Infer run.
type Report = infer.Report

// Diagnostic attributes one error to one graph node.
type Diagnostic = infer.Diagnostic

// DefaultMaxIterations bounds the fixpoint loop on cyclic graphs.
const DefaultMaxIterations = infer.DefaultMaxIterations

// Error types surfaced in reports.
type (
	// UnimplementedInferenceError reports a primitive with no inference rule.
	UnimplementedInferenceError = infer.UnimplementedInferenceError

	// ArityMismatchError reports an argument count disagreeing with the
	// declared arity.
	ArityMismatchError = infer.ArityMismatchError

	// UnboundInputError reports a free input with no bound type.
	UnboundInputError = infer.UnboundInputError

	// CycleUnresolvedError reports a node that did not converge within the
	// iteration cap.
	CycleUnresolvedError = infer.CycleUnresolvedError
)

// New creates an inference engine over the given registry.
func New(registry *prim.Registry, opts Options) *Engine { return infer.New(registry, opts) }

// Infer runs a one-off inference with default options.
func Infer(registry *prim.Registry, g *graph.Graph, inputTypes map[string]abstract.Value) (*Report, error) {
	return infer.New(registry, infer.Options{}).Infer(g, inputTypes)
}
