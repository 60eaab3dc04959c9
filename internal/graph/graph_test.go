package graph

import (
	"testing"

	"github.com/loom-ml/loom/internal/abstract"
)

type fakeOp string

func (f fakeOp) OpName() string { return string(f) }

// TestApply tests node construction and labeling.
func TestApply(t *testing.T) {
	x := NewInput("x")
	n := Apply(fakeOp("add"), x, x)
	if len(n.Args) != 2 || n.Args[0] != x || n.Args[1] != x {
		t.Fatalf("Apply did not wire arguments: %v", n.Args)
	}
	if n.String() != "add" {
		t.Errorf("unlabeled node String() = %q, want op name", n.String())
	}
	n.Label = "sum"
	if n.String() != "sum" {
		t.Errorf("labeled node String() = %q, want label", n.String())
	}
	if x.String() != "x" {
		t.Errorf("input node String() = %q, want input name", x.String())
	}
}

// TestGraph_Validate tests structural checks.
func TestGraph_Validate(t *testing.T) {
	x := NewInput("x")
	out := Apply(fakeOp("id"), x)

	g := &Graph{Name: "main", Inputs: []*Node{x}, Output: out}
	if err := g.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}

	noOutput := &Graph{Name: "broken", Inputs: []*Node{x}}
	if err := noOutput.Validate(); err == nil {
		t.Error("Validate() should reject a graph without output")
	}

	badInput := &Graph{Name: "broken", Inputs: []*Node{out}, Output: out}
	if err := badInput.Validate(); err == nil {
		t.Error("Validate() should reject a non-input node in Inputs")
	}
}

// TestGraph_InputNames tests input name extraction in parameter order.
func TestGraph_InputNames(t *testing.T) {
	x, y := NewInput("x"), NewInput("y")
	g := &Graph{Inputs: []*Node{x, y}, Output: x}
	names := g.InputNames()
	if len(names) != 2 || names[0] != "x" || names[1] != "y" {
		t.Errorf("InputNames() = %v, want [x y]", names)
	}
}

// TestNode_Cycle tests that cyclic argument wiring is representable: a node
// may be its own (transitive) argument.
func TestNode_Cycle(t *testing.T) {
	n := Apply(fakeOp("loop"))
	n.Args = append(n.Args, n)
	if n.Args[0] != n {
		t.Fatal("self-referential argument lost")
	}
}

// TestLiteral tests literal nodes carry their abstract value.
func TestLiteral(t *testing.T) {
	v := abstract.Scalar(abstract.Int64)
	n := NewLiteral(v)
	lit, ok := n.Op.(*Literal)
	if !ok {
		t.Fatalf("NewLiteral op = %T, want *Literal", n.Op)
	}
	if !lit.Value.Equal(v) {
		t.Errorf("literal value = %s, want %s", lit.Value, v)
	}
	if lit.OpName() != "literal(scalar(int64))" {
		t.Errorf("OpName() = %q", lit.OpName())
	}
}
