// Package graph provides the dataflow graph model consumed by the Loom
// inference engine.
//
// A graph is a set of shared, possibly cyclic nodes. Each node applies an
// operation to the values produced by its argument nodes. The inference core
// never mutates node structure; it only computes an abstract value per node.
package graph

import (
	"fmt"

	"github.com/loom-ml/loom/internal/abstract"
)

// Operation is anything a node can apply: a primitive, a sub-graph, a free
// input, or a literal constant. The interface is satisfied structurally, so
// the primitive package does not depend on this one.
type Operation interface {
	// OpName returns the operation's identifying name, used in diagnostics.
	OpName() string
}

// Node is one operation application in the dataflow graph.
//
// Nodes are shared: multiple consumers may reference the same producer. Cyclic
// references (recursive graphs) are legal; the inference scheduler resolves
// them with provisional values rather than diverging. Args may be assigned
// after construction to close a cycle.
type Node struct {
	// Op is the operation this node applies.
	Op Operation

	// Args are the argument nodes, bound positionally to the operation's
	// parameters.
	Args []*Node

	// Label is an optional debug name. Input nodes default to the input name.
	Label string
}

// Apply creates a node applying op to the given argument nodes.
func Apply(op Operation, args ...*Node) *Node {
	return &Node{Op: op, Args: args}
}

// String returns the node's label if set, otherwise its operation name.
func (n *Node) String() string {
	if n.Label != "" {
		return n.Label
	}
	if n.Op != nil {
		return n.Op.OpName()
	}
	return "<nil op>"
}

// Input is the operation of a free input node: a graph parameter whose
// abstract value is supplied by the caller of Infer.
type Input struct {
	// Name identifies the input when binding input types.
	Name string
}

// OpName implements Operation.
func (in *Input) OpName() string {
	return in.Name
}

// NewInput creates a free input node with the given name.
func NewInput(name string) *Node {
	return &Node{Op: &Input{Name: name}, Label: name}
}

// Literal is the operation of a constant node with a known abstract value.
type Literal struct {
	// Value is the abstract value the node evaluates to.
	Value abstract.Value
}

// OpName implements Operation.
func (l *Literal) OpName() string {
	return fmt.Sprintf("literal(%s)", l.Value)
}

// NewLiteral creates a constant node carrying the given abstract value.
func NewLiteral(v abstract.Value) *Node {
	return &Node{Op: &Literal{Value: v}}
}

// Graph is a dataflow graph with named free inputs and a designated output.
//
// A Graph is itself an Operation: a node whose Op is a *Graph calls the
// sub-graph with the node's arguments bound to the sub-graph's inputs. A
// graph may reference itself this way (recursion).
type Graph struct {
	// Name identifies the graph in diagnostics.
	Name string

	// Inputs are the free input nodes, in parameter order. Each must have an
	// *Input operation.
	Inputs []*Node

	// Output is the node whose value is the graph's result.
	Output *Node
}

// OpName implements Operation, making sub-graph application a node operation.
func (g *Graph) OpName() string {
	if g.Name != "" {
		return g.Name
	}
	return "<graph>"
}

// Validate checks basic structural sanity: every input node carries an Input
// operation and the output is set.
func (g *Graph) Validate() error {
	if g.Output == nil {
		return fmt.Errorf("graph %q has no output node", g.OpName())
	}
	for i, in := range g.Inputs {
		if in == nil {
			return fmt.Errorf("graph %q: input %d is nil", g.OpName(), i)
		}
		if _, ok := in.Op.(*Input); !ok {
			return fmt.Errorf("graph %q: input %d is not an input node", g.OpName(), i)
		}
	}
	return nil
}

// InputNames returns the names of the graph's free inputs, in order.
func (g *Graph) InputNames() []string {
	names := make([]string, len(g.Inputs))
	for i, in := range g.Inputs {
		names[i] = in.Op.(*Input).Name
	}
	return names
}
