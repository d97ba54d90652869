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

package rubyast

import (
	"slices"
	"strconv"
	"strings"

	"railguard/internal/config"
)

// Kind identifies the shape of a [Node]. Kinds produced by the adapter are
// normalized; tree-sitter kinds without a normalized form pass through
// verbatim and never match any rule pattern.
type Kind string

// Normalized node kinds.
const (
	KindProgram Kind = "program"

	// KindMethod is a method definition. Text holds the method name,
	// Children[0] the parameter list, the remaining children the body
	// statements. KindSingletonMethod is the `def self.name` form with the
	// same layout.
	KindMethod          Kind = "method"
	KindSingletonMethod Kind = "singleton_method"

	// KindMethodParams and KindBlockParams wrap parameter nodes.
	KindMethodParams Kind = "method_params"
	KindBlockParams  Kind = "block_params"

	KindReqParam       Kind = "req_param"        // name in Text
	KindOptParam       Kind = "opt_param"        // name in Text, default in Children[0]
	KindKeyParam       Kind = "key_param"        // name in Text, optional default in Children[0]
	KindSplatParam     Kind = "splat_param"      // *args
	KindHashSplatParam Kind = "hash_splat_param" // **opts
	KindBlockParam     Kind = "block_param"      // &blk

	// KindCall is a method call. Text holds the method name, Children[0] the
	// receiver (nil for bare calls), Children[1:] the arguments. Plain and
	// safe-navigation calls share this kind; the latter carries FlagSafeNav.
	KindCall Kind = "call"

	// KindBlock lifts a call with an attached block into
	// [call, blockParams, bodyStmt...].
	KindBlock Kind = "block"

	KindKwArg     Kind = "kwarg"      // keyword argument, name in Text, value in Children[0]
	KindSplatArg  Kind = "splat_arg"  // *expr
	KindBlockPass Kind = "block_pass" // &expr

	KindIndex     Kind = "index"      // recv[keys...]
	KindIndexAsgn Kind = "index_asgn" // recv[keys...] = value; value is the last child

	KindIdent    Kind = "ident"
	KindIVar     Kind = "ivar" // Text includes the @ sigil
	KindCVar     Kind = "cvar" // Text includes the @@ sigil
	KindGVar     Kind = "gvar" // Text includes the $ sigil
	KindConst    Kind = "const"
	KindScopeRes Kind = "scope_res" // Children[0] scope (nil for ::C), name in Text
	KindSelf     Kind = "self"

	KindAssign   Kind = "assign"
	KindOpAssign Kind = "op_assign"
	KindBinary   Kind = "binary" // operator in Text
	KindUnary    Kind = "unary"
	KindParen    Kind = "paren"

	KindArray  Kind = "array"
	KindHash   Kind = "hash"
	KindPair   Kind = "pair"
	KindSymbol Kind = "symbol" // Text without the leading colon
	KindString Kind = "string"
	KindInt    Kind = "int"
	KindFloat  Kind = "float"
	KindNil    Kind = "nil"
	KindTrue   Kind = "true"
	KindFalse  Kind = "false"
)

// Flag marks cosmetic node variants that share a normalized kind.
type Flag uint8

const (
	// FlagSafeNav marks a call using the `&.` operator.
	FlagSafeNav Flag = 1 << iota

	// FlagBraceBlock marks a `{ }` block as opposed to `do ... end`.
	FlagBraceBlock
)

// Range is a half-open byte-offset interval into the original source.
type Range struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the range.
func (r Range) Len() int { return r.End - r.Start }

// Overlaps reports whether two ranges share at least one byte.
func (r Range) Overlaps(o Range) bool { return r.Start < o.End && o.Start < r.End }

// Node is an immutable syntax-tree node. Nodes are created by the adapter and
// never mutated afterwards; rules treat the whole tree as read-only.
type Node struct {
	Kind     Kind
	Text     string
	Children []*Node
	Range    Range
	Flags    config.BitMask[Flag]

	// NameRange is the range of the name token for method definitions, used
	// to anchor offenses at `def` through the method name. Zero otherwise.
	NameRange Range
}

// SafeNav reports whether a call node uses safe navigation.
func (n *Node) SafeNav() bool { return n.Flags.Enabled(FlagSafeNav) }

// Walk visits the tree in preorder. The ancestors slice runs from the root
// down to the visited node's parent and is only valid during the call.
// Returning false prunes the subtree. Nil children (absent receivers) are
// skipped.
func Walk(root *Node, visit func(n *Node, ancestors []*Node) bool) {
	var walk func(n *Node, ancestors []*Node)

	walk = func(n *Node, ancestors []*Node) {
		if !visit(n, ancestors) {
			return
		}

		ancestors = append(ancestors, n)
		for _, c := range n.Children {
			if c == nil {
				continue
			}

			walk(c, ancestors)
		}
	}

	walk(root, nil)
}

// ChildIndex returns the position of child in n.Children, or -1. Identity
// comparison; the tree has no shared subtrees.
func (n *Node) ChildIndex(child *Node) int {
	for i, c := range n.Children {
		if c == child {
			return i
		}
	}

	return -1
}

// ImplicitParamIndex maps implicit block-parameter names to their 1-based
// positional slot: `_1`..`_9` and the single-implicit form `it` (slot 1).
func ImplicitParamIndex(name string) (int, bool) {
	if name == "it" {
		return 1, true
	}

	if strings.HasPrefix(name, "_") && len(name) == 2 {
		if i, err := strconv.Atoi(name[1:]); err == nil && i >= 1 && i <= 9 {
			return i, true
		}
	}

	return 0, false
}

// ImplicitRefs collects the distinct implicit-parameter names referenced in a
// subtree, in first-seen order.
func ImplicitRefs(n *Node) []string {
	var refs []string

	Walk(n, func(c *Node, _ []*Node) bool {
		if c.Kind == KindIdent {
			if _, ok := ImplicitParamIndex(c.Text); ok && !slices.Contains(refs, c.Text) {
				refs = append(refs, c.Text)
			}
		}

		return true
	})

	return refs
}

// References reports whether any identifier in the subtree reads the given
// name.
func References(n *Node, name string) bool {
	found := false

	Walk(n, func(c *Node, _ []*Node) bool {
		if c.Kind == KindIdent && c.Text == name {
			found = true
		}

		return !found
	})

	return found
}
