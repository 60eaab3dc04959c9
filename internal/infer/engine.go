// Package infer provides the abstract interpretation engine for Loom dataflow
// graphs: a cooperative task scheduler that runs per-node inference rules to a
// fixpoint, memoizing results and resolving cyclic dependencies with
// provisional values instead of deadlocking.
package infer

import (
	"fmt"

	"github.com/loom-ml/loom/internal/abstract"
	"github.com/loom-ml/loom/internal/graph"
	"github.com/loom-ml/loom/internal/prim"
)

// DefaultMaxIterations bounds the fixpoint loop on pathological cyclic graphs.
const DefaultMaxIterations = 100

// Options configures an Engine. The zero value is usable.
type Options struct {
	// MaxIterations caps fixpoint passes over suspended tasks. Exceeding the
	// cap finalizes unresolved nodes at their provisional value with a
	// CycleUnresolvedError diagnostic. Zero selects DefaultMaxIterations.
	MaxIterations int
}

// Engine orchestrates inference over dataflow graphs against one registry.
//
// The engine holds no per-run state: each Infer call owns its own task table,
// so concurrent Infer calls over different graphs are independent. The
// registry must be fully populated before inference starts; it is read-only
// during a run.
type Engine struct {
	registry *prim.Registry
	opts     Options
}

// New creates an inference engine over the given registry.
func New(registry *prim.Registry, opts Options) *Engine {
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultMaxIterations
	}
	return &Engine{registry: registry, opts: opts}
}

// Infer computes an abstract value for every node reachable from the graph's
// output, with the graph's free inputs bound to inputTypes by name.
//
// The returned report always covers every visited node: resolved nodes map to
// their value, failed nodes carry their error and publish no value, and nodes
// caught in a non-converging cycle keep their last provisional value flagged
// with a CycleUnresolvedError. Infer itself returns an error only for a
// structurally invalid graph; rule-level failures are reported, not returned.
func (e *Engine) Infer(g *graph.Graph, inputTypes map[string]abstract.Value) (*Report, error) {
	if g == nil {
		return nil, fmt.Errorf("infer: nil graph")
	}
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("infer: %w", err)
	}

	root := &frame{bindings: make(map[*graph.Node]abstract.Value, len(g.Inputs))}
	for _, in := range g.Inputs {
		name := in.Op.(*graph.Input).Name
		if v, ok := inputTypes[name]; ok {
			root.bindings[in] = v
		}
		// A missing binding surfaces as UnboundInputError when the input is
		// actually requested; inputs dead in the graph don't need types.
	}

	s := newScheduler(e.registry, e.opts.MaxIterations)
	// The output request's error, if any, is recorded on its task and lands
	// in the report with every other diagnostic.
	_, _ = s.request(g.Output, root)
	s.fixpoint()

	return buildReport(g, s), nil
}

// buildReport collects task results into the caller-facing report, in task
// creation order for determinism.
func buildReport(g *graph.Graph, s *scheduler) *Report {
	r := &Report{
		Graph:  g,
		Values: make(map[*graph.Node]abstract.Value, len(s.order)),
	}
	for _, t := range s.order {
		switch t.state {
		case taskDone:
			// Later frames of the same node (re-called sub-graphs) carry the
			// more resolved value; let them overwrite earlier provisional ones.
			r.Values[t.node] = t.result
			if t.unresolved {
				r.Diagnostics = append(r.Diagnostics, Diagnostic{
					Node: t.node,
					Err: &CycleUnresolvedError{
						Node:        t.node.String(),
						Provisional: t.result,
						Iterations:  s.maxIter,
					},
				})
			}
		case taskFailed:
			delete(r.Values, t.node)
			r.Diagnostics = append(r.Diagnostics, Diagnostic{Node: t.node, Err: t.err})
		}
	}
	return r
}
