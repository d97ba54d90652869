// Copyright 2026 The railguard Authors. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package rules contains the per-rule evaluators. Each rule combines pattern
// matches, structural-equivalence checks and contextual predicates to decide
// offense-worthiness and to compute replacement text.
package rules

import (
	"railguard/internal/report"
	"railguard/internal/rubyast"
)

// Context is the per-node evaluation context handed to a rule. Configuration
// is carried by the rule value itself, fixed at construction; the context
// only holds traversal state.
type Context struct {
	// Source is the file under analysis, read-only.
	Source *rubyast.Source

	// Ancestors runs from the tree root down to the visited node's parent.
	// Valid only for the duration of the Check call.
	Ancestors []*rubyast.Node

	// Sink receives offenses.
	Sink *report.Sink
}

// Parent returns the immediate parent of the visited node, or nil at the
// root.
func (cx *Context) Parent() *rubyast.Node {
	if len(cx.Ancestors) == 0 {
		return nil
	}

	return cx.Ancestors[len(cx.Ancestors)-1]
}

// Rule is one smell detector. Check inspects a single node; not matching is
// the normal outcome and is not an error. A non-nil error signals an
// internal invariant violation and aborts the pass.
type Rule interface {
	Name() string
	Check(cx *Context, n *rubyast.Node) error
}
