// Copyright 2025 Loom ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package graph provides the public API for Loom dataflow graphs.
//
// A graph is a set of shared, possibly cyclic nodes, each applying an
// operation (a primitive, a sub-graph, a free input, or a literal) to the
// values of its argument nodes.
//
// Example:
//
//	x := graph.NewInput("x")
//	y := graph.NewInput("y")
//	sum := graph.Apply(addPrimitive, x, y)
//	g := &graph.Graph{Name: "main", Inputs: []*graph.Node{x, y}, Output: sum}
package graph

import (
	"github.com/loom-ml/loom/internal/abstract"
	"github.com/loom-ml/loom/internal/graph"
)

// Operation is anything a node can apply.
type Operation = graph.Operation

// Node is one operation application in the dataflow graph.
type Node = graph.Node

// Input is the operation of a free input node.
type Input = graph.Input

// Literal is the operation of a constant node with a known abstract value.
type Literal = graph.Literal

// Graph is a dataflow graph with named free inputs and a designated output.
type Graph = graph.Graph

// Apply creates a node applying op to the given argument nodes.
func Apply(op Operation, args ...*Node) *Node { return graph.Apply(op, args...) }

// NewInput creates a free input node with the given name.
func NewInput(name string) *Node { return graph.NewInput(name) }

// NewLiteral creates a constant node carrying the given abstract value.
func NewLiteral(v abstract.Value) *Node { return graph.NewLiteral(v) }
