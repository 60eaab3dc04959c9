// Package prim provides primitive operations and their process-wide registry.
//
// A primitive is an atomic operation in the dataflow graph. Its Descriptor
// bundles everything the rest of the system needs to know about it: an
// inference rule for the abstract interpreter, an optional concrete execution
// hook for evaluators, and an optional differentiation rule for the reverse-
// mode transform. Registration is two-tier: an operation may be registered
// executable-only first, then upgraded with inference and gradient rules.
package prim

import (
	"github.com/loom-ml/loom/internal/abstract"
	"github.com/loom-ml/loom/internal/graph"
)

// Handle is the scheduler surface exposed to inference rules. Request returns
// the abstract value of another graph node, which may be a provisional
// Unknown if the node participates in a cycle still being resolved.
type Handle interface {
	Request(n *graph.Node) (abstract.Value, error)
}

// Rule computes a node's abstract value from its arguments' abstract values.
//
// Rules must be pure with respect to suspension: a rule may be re-run after a
// provisional argument resolves, so it must not assume side effects from an
// earlier run survived. Arguments arrive positionally resolved; an argument
// caught in a cycle arrives as its current provisional value.
type Rule func(h Handle, args []abstract.Value) (abstract.Value, error)

// Hook executes a primitive on concrete runtime values. The inference core
// stores hooks but never invokes them; they exist for downstream evaluators.
type Hook func(args ...any) (any, error)

// GradRule builds the backward pass for one primitive application: given the
// primal input nodes, the primal output node, and the node carrying the
// output gradient, it returns one gradient node per input. Gradient nodes are
// ordinary graph nodes applying registered primitives, so the same inference
// core can type the backward graph.
type GradRule func(inputs []*graph.Node, output, outputGrad *graph.Node) ([]*graph.Node, error)

// ArityVariadic marks a primitive accepting any number of arguments.
const ArityVariadic = -1

// Descriptor is the merged, immutable metadata record for one primitive.
type Descriptor struct {
	// Name is the primitive's unique identity in the registry.
	Name string

	// Arity is the expected argument count. 0 disables the arity check,
	// ArityVariadic accepts any count.
	Arity int

	// Doc is a one-line description, shown by the CLI.
	Doc string

	// Hook is the optional concrete execution hook.
	Hook Hook

	// Infer is the inference rule. Nil for the executable-only stub case;
	// inference over such a primitive fails with UnimplementedInferenceError.
	Infer Rule

	// Grad is the optional differentiation rule.
	Grad GradRule
}

// HasHook reports whether a concrete execution hook is attached.
func (d Descriptor) HasHook() bool { return d.Hook != nil }

// HasInfer reports whether an inference rule is attached.
func (d Descriptor) HasInfer() bool { return d.Infer != nil }

// HasGrad reports whether a differentiation rule is attached.
func (d Descriptor) HasGrad() bool { return d.Grad != nil }

// Primitive is an interned operation identity plus its merged Descriptor.
// Primitives are created by a Registry and never mutated after registration
// completes; node structures hold them by pointer, so upgrading an operation
// to a full primitive leaves existing graphs pointing at the richer record.
type Primitive struct {
	name string
	desc Descriptor
}

// Name returns the primitive's registered name.
func (p *Primitive) Name() string { return p.name }

// OpName implements the graph operation interface.
func (p *Primitive) OpName() string { return p.name }

// Descriptor returns the merged metadata record.
func (p *Primitive) Descriptor() Descriptor { return p.desc }

// String returns the primitive's name.
func (p *Primitive) String() string { return p.name }

// Execute runs the concrete execution hook on runtime values.
// Fails with MissingHookError when no hook is attached.
func (p *Primitive) Execute(args ...any) (any, error) {
	if !p.desc.HasHook() {
		return nil, &MissingHookError{Primitive: p.name}
	}
	return p.desc.Hook(args...)
}
