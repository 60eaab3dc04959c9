package infer

import (
	"github.com/loom-ml/loom/internal/abstract"
	"github.com/loom-ml/loom/internal/graph"
)

// taskState tracks the lifecycle of one inference task.
type taskState int

const (
	// taskPending: created but never run. Transient; request runs the task
	// immediately after creation.
	taskPending taskState = iota

	// taskRunning: the task's rule is currently on the evaluation stack.
	// Requesting a Running task is how a cycle manifests.
	taskRunning

	// taskSuspended: the last run consumed at least one provisional value;
	// the task is parked for the fixpoint loop.
	taskSuspended

	// taskDone: the result is final and memoized.
	taskDone

	// taskFailed: the rule (or a transitive dependency) failed. No value is
	// published.
	taskFailed
)

func (s taskState) String() string {
	switch s {
	case taskPending:
		return "pending"
	case taskRunning:
		return "running"
	case taskSuspended:
		return "suspended"
	case taskDone:
		return "done"
	case taskFailed:
		return "failed"
	default:
		return "invalid"
	}
}

// frame binds a graph's free input nodes to abstract values for one call.
// The root frame holds the caller's input types; each distinct sub-graph call
// signature gets its own frame, so recursive calls with identical argument
// values share tasks and resolve as cycles instead of diverging.
type frame struct {
	bindings map[*graph.Node]abstract.Value
}

// taskKey identifies a task: one node evaluated under one call frame.
type taskKey struct {
	node  *graph.Node
	frame *frame
}

// task is one suspendable unit of inference work. At most one task exists per
// (node, frame) within a run; completed tasks are retained as the memo cache.
type task struct {
	node  *graph.Node
	frame *frame
	state taskState

	// result holds Unknown while unresolved, the provisional value while
	// suspended, and the final value once done. Failed tasks publish nothing.
	result abstract.Value

	// err is set for failed tasks.
	err error

	// waiters are tasks that consumed this task's provisional value, in FIFO
	// order of suspension. They are resumed when the value changes and failed
	// when this task fails.
	waiters []*task

	// sawProvisional records whether the last run consumed any value that was
	// not yet final.
	sawProvisional bool

	// unresolved marks a task finalized at its provisional value because the
	// fixpoint iteration cap was hit.
	unresolved bool
}

// addWaiter registers w to be resumed when t's value changes. Idempotent so a
// re-run does not duplicate its registration.
func (t *task) addWaiter(w *task) {
	if w == nil || w == t {
		return
	}
	for _, existing := range t.waiters {
		if existing == w {
			return
		}
	}
	t.waiters = append(t.waiters, w)
}
