package infer

import (
	"fmt"
	"strings"

	"github.com/loom-ml/loom/internal/abstract"
	"github.com/loom-ml/loom/internal/graph"
	"github.com/loom-ml/loom/internal/prim"
)

// scheduler runs inference rules as cooperatively scheduled, suspendable
// tasks, one per (node, frame), with memoization and cycle safety.
//
// Everything is single-threaded: a "task" is a logical unit of suspendable
// work, not a goroutine. Suspension happens only when a task consumes another
// task's not-yet-final value; resumption is driven entirely by the fixpoint
// loop, so there is no blocking wait and no lock. A scheduler is scoped to one
// Infer call and must not be shared across runs.
type scheduler struct {
	registry *prim.Registry
	maxIter  int

	// tasks memoizes one task per (node, frame).
	tasks map[taskKey]*task

	// order records tasks in creation order, for deterministic reporting.
	order []*task

	// suspendQueue records tasks in FIFO order of first suspension; the
	// fixpoint loop resumes them in this order.
	suspendQueue []*task

	// calls memoizes sub-graph call frames by (graph, argument signature), so
	// a recursive call with identical argument values becomes a task cycle
	// instead of unbounded recursion.
	calls map[callKey]*frame

	// current is the task whose rule is executing, the implicit requester for
	// waiter registration.
	current *task
}

type callKey struct {
	graph *graph.Graph
	sig   string
}

func newScheduler(registry *prim.Registry, maxIter int) *scheduler {
	return &scheduler{
		registry: registry,
		maxIter:  maxIter,
		tasks:    make(map[taskKey]*task),
		calls:    make(map[callKey]*frame),
	}
}

// request returns the abstract value of node under frame f.
//
// A Done task answers from its memoized result without re-execution. A
// Running or Suspended task is a cyclic or not-yet-final dependency: the
// requester is registered as a waiter and receives the target's current
// provisional value (Unknown on first contact) instead of blocking. Absent a
// task, one is created and run immediately.
func (s *scheduler) request(n *graph.Node, f *frame) (abstract.Value, error) {
	k := taskKey{node: n, frame: f}
	if t, ok := s.tasks[k]; ok {
		switch t.state {
		case taskDone:
			return t.result, nil
		case taskFailed:
			return abstract.Bottom(), t.err
		default: // Running or Suspended: provisional
			t.addWaiter(s.current)
			if s.current != nil {
				s.current.sawProvisional = true
			}
			return t.result, nil
		}
	}

	t := &task{node: n, frame: f, state: taskPending, result: abstract.Unknown()}
	s.tasks[k] = t
	s.order = append(s.order, t)

	v, err := s.run(t)
	if err != nil {
		return abstract.Bottom(), err
	}
	// The fresh task may itself have suspended; its value is then provisional
	// for the requester too.
	if t.state != taskDone {
		t.addWaiter(s.current)
		if s.current != nil {
			s.current.sawProvisional = true
		}
	}
	return v, nil
}

// run executes (or re-executes) a task's rule to completion or suspension.
func (s *scheduler) run(t *task) (abstract.Value, error) {
	prev := s.current
	s.current = t
	t.state = taskRunning
	t.sawProvisional = false

	v, err := s.evaluate(t.node, t.frame)

	s.current = prev

	if err != nil {
		s.fail(t, err)
		return abstract.Bottom(), err
	}

	t.result = v
	if t.sawProvisional {
		s.suspend(t)
	} else {
		t.state = taskDone
	}
	return v, nil
}

// suspend parks a task for the fixpoint loop, preserving FIFO order of first
// suspension.
func (s *scheduler) suspend(t *task) {
	if t.state != taskSuspended {
		for _, q := range s.suspendQueue {
			if q == t {
				t.state = taskSuspended
				return
			}
		}
		s.suspendQueue = append(s.suspendQueue, t)
	}
	t.state = taskSuspended
}

// fail marks a task failed and fail-fast propagates to every transitive
// waiter. No value is published for any of them.
func (s *scheduler) fail(t *task, err error) {
	if t.state == taskFailed {
		return
	}
	t.state = taskFailed
	t.err = err
	t.result = abstract.Bottom()
	for _, w := range t.waiters {
		if w.state == taskFailed {
			continue
		}
		s.fail(w, fmt.Errorf("dependency %s failed: %w", t.node, err))
	}
}

// fixpoint resumes suspended tasks in FIFO order until a full pass changes no
// value, then finalizes the survivors at their (now stable) values. If the
// iteration cap is hit first, unresolved tasks are finalized at their last
// provisional value and flagged, never silently dropped.
func (s *scheduler) fixpoint() {
	for iter := 0; iter < s.maxIter; iter++ {
		changed := false
		for _, t := range s.suspendQueue {
			if t.state != taskSuspended {
				continue
			}
			old := t.result
			if _, err := s.run(t); err != nil {
				continue // recorded on the task by fail
			}
			if !old.Equal(t.result) {
				changed = true
			}
		}
		if !changed {
			for _, t := range s.suspendQueue {
				if t.state == taskSuspended {
					t.state = taskDone
				}
			}
			return
		}
	}
	for _, t := range s.suspendQueue {
		if t.state == taskSuspended {
			t.state = taskDone
			t.unresolved = true
		}
	}
}

// evaluate computes the value of node under frame f, dispatching on the
// operation kind.
func (s *scheduler) evaluate(n *graph.Node, f *frame) (abstract.Value, error) {
	switch op := n.Op.(type) {
	case *graph.Input:
		v, ok := f.bindings[n]
		if !ok {
			return abstract.Bottom(), &UnboundInputError{Name: op.Name}
		}
		return v, nil

	case *graph.Literal:
		return op.Value, nil

	case *graph.Graph:
		return s.call(op, n, f)

	case *prim.Primitive:
		return s.applyPrimitive(op, n, f)

	default:
		return abstract.Bottom(), fmt.Errorf("node %s: unsupported operation %T", n, n.Op)
	}
}

// applyPrimitive resolves the node's arguments and invokes the primitive's
// inference rule.
func (s *scheduler) applyPrimitive(p *prim.Primitive, n *graph.Node, f *frame) (abstract.Value, error) {
	desc := p.Descriptor()
	if !desc.HasInfer() {
		return abstract.Bottom(), &UnimplementedInferenceError{Primitive: p.Name()}
	}
	if desc.Arity > 0 && len(n.Args) != desc.Arity {
		return abstract.Bottom(), &ArityMismatchError{Op: p.Name(), Want: desc.Arity, Got: len(n.Args)}
	}
	args, err := s.resolveArgs(n, f)
	if err != nil {
		return abstract.Bottom(), err
	}
	return desc.Infer(&handle{s: s, frame: f}, args)
}

// call evaluates a sub-graph application structurally: the call's argument
// values are bound to the sub-graph's free inputs in a frame memoized by
// argument signature, and the sub-graph's output is requested under it.
func (s *scheduler) call(g *graph.Graph, n *graph.Node, f *frame) (abstract.Value, error) {
	if err := g.Validate(); err != nil {
		return abstract.Bottom(), err
	}
	if len(n.Args) != len(g.Inputs) {
		return abstract.Bottom(), &ArityMismatchError{Op: g.OpName(), Want: len(g.Inputs), Got: len(n.Args)}
	}
	args, err := s.resolveArgs(n, f)
	if err != nil {
		return abstract.Bottom(), err
	}

	key := callKey{graph: g, sig: signature(args)}
	callFrame, ok := s.calls[key]
	if !ok {
		callFrame = &frame{bindings: make(map[*graph.Node]abstract.Value, len(args))}
		for i, in := range g.Inputs {
			callFrame.bindings[in] = args[i]
		}
		s.calls[key] = callFrame
	}
	return s.request(g.Output, callFrame)
}

// resolveArgs requests each argument node's value left to right, failing fast
// on the first error.
func (s *scheduler) resolveArgs(n *graph.Node, f *frame) ([]abstract.Value, error) {
	args := make([]abstract.Value, len(n.Args))
	for i, arg := range n.Args {
		v, err := s.request(arg, f)
		if err != nil {
			return nil, fmt.Errorf("%s: argument %d: %w", n, i, err)
		}
		args[i] = v
	}
	return args, nil
}

// signature renders argument values to a stable key for call-frame
// memoization.
func signature(args []abstract.Value) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	return strings.Join(parts, ";")
}

// handle is the scheduler surface handed to inference rules.
type handle struct {
	s     *scheduler
	frame *frame
}

// Request implements the rule handle: recursive queries resolve against the
// rule's own call frame.
func (h *handle) Request(n *graph.Node) (abstract.Value, error) {
	return h.s.request(n, h.frame)
}
