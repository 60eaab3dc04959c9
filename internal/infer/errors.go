package infer

import (
	"fmt"

	"github.com/loom-ml/loom/internal/abstract"
)

// UnimplementedInferenceError reports inference over a primitive registered
// without an inference rule (the executable-only stub case). This is a named,
// attributable failure, never a silent Unknown.
type UnimplementedInferenceError struct {
	// Primitive is the name of the rule-less primitive.
	Primitive string
}

// Error implements the error interface.
func (e *UnimplementedInferenceError) Error() string {
	return fmt.Sprintf("primitive %q has no inference rule", e.Primitive)
}

// ArityMismatchError reports an argument count disagreeing with the
// operation's declared arity.
type ArityMismatchError struct {
	// Op is the operation name (primitive or sub-graph).
	Op string

	// Want is the declared arity, Got the actual argument count.
	Want, Got int
}

// Error implements the error interface.
func (e *ArityMismatchError) Error() string {
	return fmt.Sprintf("%s expects %d argument(s), got %d", e.Op, e.Want, e.Got)
}

// UnboundInputError reports a free input requested during inference with no
// type bound for it.
type UnboundInputError struct {
	// Name is the unbound input's name.
	Name string
}

// Error implements the error interface.
func (e *UnboundInputError) Error() string {
	return fmt.Sprintf("no input type bound for free input %q", e.Name)
}

// CycleUnresolvedError reports a node whose value did not converge within the
// fixpoint iteration cap. The node is finalized at its last provisional value,
// which the error carries for diagnostics.
type CycleUnresolvedError struct {
	// Node is the label of the unconverged node.
	Node string

	// Provisional is the value the node held when the cap was hit.
	Provisional abstract.Value

	// Iterations is the number of fixpoint passes that ran.
	Iterations int
}

// Error implements the error interface.
func (e *CycleUnresolvedError) Error() string {
	return fmt.Sprintf("cycle through %s did not converge after %d iteration(s); last provisional value %s",
		e.Node, e.Iterations, e.Provisional)
}
