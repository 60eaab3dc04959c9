// Copyright 2025 Loom ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package grad provides the public API for differentiation-rule dispatch.
//
// The inference core stores gradient rules per primitive; an external
// reverse-mode transform looks them up here and applies them node by node.
package grad

import (
	"github.com/loom-ml/loom/internal/grad"
	"github.com/loom-ml/loom/internal/graph"
	"github.com/loom-ml/loom/internal/prim"
)

// MissingGradRuleError reports differentiation through a primitive with no
// gradient rule.
type MissingGradRuleError = grad.MissingGradRuleError

// RuleFor returns the differentiation rule registered for name.
func RuleFor(r *prim.Registry, name string) (prim.GradRule, bool, error) {
	return grad.RuleFor(r, name)
}

// Backward applies the gradient rule of node's primitive, producing one
// gradient node per input.
func Backward(r *prim.Registry, node, outputGrad *graph.Node) ([]*graph.Node, error) {
	return grad.Backward(r, node, outputGrad)
}
