// Package graphfile loads dataflow graphs from YAML descriptions.
//
// A graph file names its free inputs, lists nodes with their operation and
// argument references, designates an output, and optionally binds input
// types. Forward and cyclic references between nodes are allowed; nodes are
// created in a first pass and wired in a second.
//
// Example:
//
//	name: main
//	inputs: [x, y]
//	nodes:
//	  - id: sum
//	    op: scalar_add
//	    args: [x, y]
//	output: sum
//	input_types:
//	  x: {kind: scalar, type: int64}
//	  y: {kind: scalar, type: int64}
package graphfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/loom-ml/loom/internal/abstract"
	"github.com/loom-ml/loom/internal/graph"
	"github.com/loom-ml/loom/internal/prim"
)

// File is the YAML document structure of a graph file.
type File struct {
	Name       string               `yaml:"name"`
	Inputs     []string             `yaml:"inputs"`
	Nodes      []NodeSpec           `yaml:"nodes"`
	Output     string               `yaml:"output"`
	InputTypes map[string]ValueSpec `yaml:"input_types"`
}

// NodeSpec describes one node: either an operation applied to argument
// references, or a literal value.
type NodeSpec struct {
	ID    string     `yaml:"id"`
	Op    string     `yaml:"op"`
	Args  []string   `yaml:"args"`
	Value *ValueSpec `yaml:"value"`
}

// ValueSpec describes an abstract value in YAML form.
type ValueSpec struct {
	Kind  string `yaml:"kind"`  // scalar, tensor, unknown, bottom
	Type  string `yaml:"type"`  // scalar element type name
	Shape []int  `yaml:"shape"` // for tensors
}

// Value converts the spec into an abstract value.
func (s ValueSpec) Value() (abstract.Value, error) {
	switch s.Kind {
	case "unknown":
		return abstract.Unknown(), nil
	case "bottom":
		return abstract.Bottom(), nil
	case "scalar":
		t, err := parseScalarType(s.Type)
		if err != nil {
			return abstract.Bottom(), err
		}
		return abstract.Scalar(t), nil
	case "tensor":
		t, err := parseScalarType(s.Type)
		if err != nil {
			return abstract.Bottom(), err
		}
		shape := abstract.Shape(s.Shape)
		if err := shape.Validate(); err != nil {
			return abstract.Bottom(), err
		}
		return abstract.Tensor(t, shape), nil
	default:
		return abstract.Bottom(), fmt.Errorf("unknown value kind %q", s.Kind)
	}
}

var scalarTypes = map[string]abstract.ScalarType{
	"bool":    abstract.Bool,
	"int8":    abstract.Int8,
	"int16":   abstract.Int16,
	"int32":   abstract.Int32,
	"int64":   abstract.Int64,
	"uint8":   abstract.UInt8,
	"uint16":  abstract.UInt16,
	"uint32":  abstract.UInt32,
	"uint64":  abstract.UInt64,
	"float16": abstract.Float16,
	"float32": abstract.Float32,
	"float64": abstract.Float64,
}

func parseScalarType(name string) (abstract.ScalarType, error) {
	t, ok := scalarTypes[name]
	if !ok {
		return 0, fmt.Errorf("unknown scalar type %q", name)
	}
	return t, nil
}

// Parse builds a graph and its input type bindings from YAML data, resolving
// operation names against the registry.
func Parse(data []byte, registry *prim.Registry) (*graph.Graph, map[string]abstract.Value, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, nil, fmt.Errorf("graphfile: %w", err)
	}
	return f.Build(registry)
}

// Load reads and parses a graph file from disk.
func Load(path string, registry *prim.Registry) (*graph.Graph, map[string]abstract.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("graphfile: %w", err)
	}
	return Parse(data, registry)
}

// Build constructs the graph from the parsed document.
//
// First pass creates input nodes and a shell per node id; second pass
// resolves operations and wires arguments, so nodes may reference later nodes
// or themselves.
func (f *File) Build(registry *prim.Registry) (*graph.Graph, map[string]abstract.Value, error) {
	byID := make(map[string]*graph.Node, len(f.Inputs)+len(f.Nodes))

	g := &graph.Graph{Name: f.Name}
	if g.Name == "" {
		g.Name = "main"
	}
	for _, name := range f.Inputs {
		if _, dup := byID[name]; dup {
			return nil, nil, fmt.Errorf("graphfile: duplicate id %q", name)
		}
		in := graph.NewInput(name)
		byID[name] = in
		g.Inputs = append(g.Inputs, in)
	}
	for _, spec := range f.Nodes {
		if spec.ID == "" {
			return nil, nil, fmt.Errorf("graphfile: node with empty id")
		}
		if _, dup := byID[spec.ID]; dup {
			return nil, nil, fmt.Errorf("graphfile: duplicate id %q", spec.ID)
		}
		n := &graph.Node{Label: spec.ID}
		byID[spec.ID] = n
	}

	for _, spec := range f.Nodes {
		n := byID[spec.ID]
		switch {
		case spec.Value != nil:
			if spec.Op != "" || len(spec.Args) > 0 {
				return nil, nil, fmt.Errorf("graphfile: node %q: value nodes take no op or args", spec.ID)
			}
			v, err := spec.Value.Value()
			if err != nil {
				return nil, nil, fmt.Errorf("graphfile: node %q: %w", spec.ID, err)
			}
			n.Op = &graph.Literal{Value: v}
		case spec.Op != "":
			p, err := registry.Lookup(spec.Op)
			if err != nil {
				return nil, nil, fmt.Errorf("graphfile: node %q: %w", spec.ID, err)
			}
			n.Op = p
			for _, ref := range spec.Args {
				arg, ok := byID[ref]
				if !ok {
					return nil, nil, fmt.Errorf("graphfile: node %q: unknown argument %q", spec.ID, ref)
				}
				n.Args = append(n.Args, arg)
			}
		default:
			return nil, nil, fmt.Errorf("graphfile: node %q: missing op or value", spec.ID)
		}
	}

	out, ok := byID[f.Output]
	if !ok {
		return nil, nil, fmt.Errorf("graphfile: output %q not defined", f.Output)
	}
	g.Output = out
	if err := g.Validate(); err != nil {
		return nil, nil, fmt.Errorf("graphfile: %w", err)
	}

	types := make(map[string]abstract.Value, len(f.InputTypes))
	for name, spec := range f.InputTypes {
		v, err := spec.Value()
		if err != nil {
			return nil, nil, fmt.Errorf("graphfile: input %q: %w", name, err)
		}
		types[name] = v
	}
	return g, types, nil
}
