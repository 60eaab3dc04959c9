// Copyright 2025 Loom ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package loader provides graph loading functionality for the Loom framework.
//
// This package wraps the internal graph-file implementation and exports a
// clean public API for loading dataflow graphs from YAML descriptions.
//
// Example usage:
//
//	import (
//	    "github.com/loom-ml/loom/loader"
//	    "github.com/loom-ml/loom/prim"
//	)
//
//	registry := prim.NewBuiltin()
//	g, inputTypes, err := loader.Load("path/to/graph.yaml", registry)
//	if err != nil {
//	    log.Fatal(err)
//	}
package loader

import (
	"github.com/loom-ml/loom/internal/abstract"
	"github.com/loom-ml/loom/internal/graph"
	"github.com/loom-ml/loom/internal/graphfile"
	"github.com/loom-ml/loom/internal/prim"
)

// File is the YAML document structure of a graph file.
type File = graphfile.File

// NodeSpec describes one node of a graph file.
type NodeSpec = graphfile.NodeSpec

// ValueSpec describes an abstract value in YAML form.
type ValueSpec = graphfile.ValueSpec

// Load reads and parses a graph file from disk, resolving operation names
// against the registry.
func Load(path string, registry *prim.Registry) (*graph.Graph, map[string]abstract.Value, error) {
	return graphfile.Load(path, registry)
}

// Parse builds a graph and its input type bindings from YAML data.
func Parse(data []byte, registry *prim.Registry) (*graph.Graph, map[string]abstract.Value, error) {
	return graphfile.Parse(data, registry)
}
