// Package grad provides dispatch of reverse-mode differentiation rules.
//
// The inference core only stores and looks up gradient rules; applying them to
// transform a whole graph is the job of an external differentiation pass. This
// package gives that pass a uniform entry point: rule lookup per primitive and
// single-application of a rule to one node.
package grad

import (
	"fmt"

	"github.com/loom-ml/loom/internal/graph"
	"github.com/loom-ml/loom/internal/prim"
)

// MissingGradRuleError reports an attempt to differentiate through a
// primitive with no gradient rule. A legitimate, reportable condition for any
// transform encountering a non-differentiable primitive.
type MissingGradRuleError struct {
	Primitive string
}

// Error implements the error interface.
func (e *MissingGradRuleError) Error() string {
	return fmt.Sprintf("primitive %q has no differentiation rule", e.Primitive)
}

// RuleFor returns the differentiation rule registered for name. Pure lookup,
// no inference side effects. The second result is false when the primitive
// exists but carries no rule.
func RuleFor(r *prim.Registry, name string) (prim.GradRule, bool, error) {
	p, err := r.Lookup(name)
	if err != nil {
		return nil, false, err
	}
	desc := p.Descriptor()
	if !desc.HasGrad() {
		return nil, false, nil
	}
	return desc.Grad, true, nil
}

// Backward applies the gradient rule of node's primitive, producing one
// gradient node per input of node. outputGrad is the node carrying the
// gradient flowing into node's output.
//
// Fails with MissingGradRuleError when the primitive has no rule, and with an
// ordinary error when node's operation is not a primitive at all (sub-graph
// differentiation is the external pass's recursion, not a dispatch).
func Backward(r *prim.Registry, node, outputGrad *graph.Node) ([]*graph.Node, error) {
	p, ok := node.Op.(*prim.Primitive)
	if !ok {
		return nil, fmt.Errorf("node %s: operation %q is not a primitive", node, node.Op.OpName())
	}
	rule, ok, err := RuleFor(r, p.Name())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &MissingGradRuleError{Primitive: p.Name()}
	}
	grads, err := rule(node.Args, node, outputGrad)
	if err != nil {
		return nil, fmt.Errorf("gradient of %s: %w", node, err)
	}
	if len(grads) != len(node.Args) {
		return nil, fmt.Errorf("gradient of %s: rule returned %d gradient(s) for %d input(s)",
			node, len(grads), len(node.Args))
	}
	return grads, nil
}
