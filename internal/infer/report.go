package infer

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/loom-ml/loom/internal/abstract"
	"github.com/loom-ml/loom/internal/graph"
)

// Diagnostic attributes one error to one graph node.
type Diagnostic struct {
	Node *graph.Node
	Err  error
}

// String renders the diagnostic as "node: error".
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %v", d.Node, d.Err)
}

// Report is the result of one Infer run: the node-to-value mapping plus every
// failure and unresolved cycle, attributed to its node. Nothing is silently
// swallowed: a failed node appears in Diagnostics and never in Values.
type Report struct {
	// Graph is the graph that was inferred.
	Graph *graph.Graph

	// Values maps each resolved node to its abstract value. Nodes finalized
	// at a provisional value by the iteration cap are included here and
	// additionally flagged in Diagnostics.
	Values map[*graph.Node]abstract.Value

	// Diagnostics lists failures and unresolved cycles in deterministic
	// (task creation) order.
	Diagnostics []Diagnostic
}

// OK reports whether inference completed with no diagnostics.
func (r *Report) OK() bool {
	return len(r.Diagnostics) == 0
}

// Value returns the inferred value of node, if one was published.
func (r *Report) Value(n *graph.Node) (abstract.Value, bool) {
	v, ok := r.Values[n]
	return v, ok
}

// Output returns the inferred value of the graph's output node.
func (r *Report) Output() (abstract.Value, bool) {
	return r.Value(r.Graph.Output)
}

// Err returns the first diagnostic's error, or nil when the run was clean.
func (r *Report) Err() error {
	if len(r.Diagnostics) == 0 {
		return nil
	}
	return r.Diagnostics[0].Err
}

// NodeErr returns the error attributed to node, or nil.
func (r *Report) NodeErr(n *graph.Node) error {
	for _, d := range r.Diagnostics {
		if d.Node == n {
			return d.Err
		}
	}
	return nil
}

// HasError reports whether any diagnostic's error matches target per
// errors.As semantics.
func HasError[E error](r *Report) bool {
	for _, d := range r.Diagnostics {
		var e E
		if errors.As(d.Err, &e) {
			return true
		}
	}
	return false
}

// String renders the report in a stable, human-readable form: values for the
// graph's inputs and output first, then remaining nodes sorted by label, then
// diagnostics in order.
func (r *Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "graph %s: %d node(s), %d diagnostic(s)\n",
		r.Graph.OpName(), len(r.Values), len(r.Diagnostics))

	seen := make(map[*graph.Node]bool)
	writeValue := func(n *graph.Node) {
		if seen[n] {
			return
		}
		seen[n] = true
		if v, ok := r.Values[n]; ok {
			fmt.Fprintf(&b, "  %s: %s\n", n, v)
		}
	}
	for _, in := range r.Graph.Inputs {
		writeValue(in)
	}
	writeValue(r.Graph.Output)

	lineSet := make(map[string]bool)
	rest := make([]string, 0, len(r.Values))
	for n, v := range r.Values {
		if seen[n] {
			continue
		}
		line := fmt.Sprintf("  %s: %s\n", n, v)
		if !lineSet[line] {
			lineSet[line] = true
			rest = append(rest, line)
		}
	}
	sort.Strings(rest)
	for _, line := range rest {
		b.WriteString(line)
	}

	if len(r.Diagnostics) > 0 {
		b.WriteString("diagnostics:\n")
		for _, d := range r.Diagnostics {
			fmt.Fprintf(&b, "  %s\n", d)
		}
	}
	return b.String()
}
