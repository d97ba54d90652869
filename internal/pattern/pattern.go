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

// Package pattern implements declarative structural matching over the
// normalized Ruby node model.
//
// Patterns are immutable and compiled once as package-level values in the
// rule evaluators; a match attempt walks pattern and node in lockstep, so
// the cost is O(pattern size x node size) with no backtracking. Repetition
// ([Rest]) is resolved against the fixed arity of the matched child list.
package pattern

import "railguard/internal/rubyast"

// Pattern is a node-shape predicate. A successful match may record captures.
type Pattern interface {
	match(n *rubyast.Node, caps *Captures) bool
}

// Match evaluates a pattern against a node. It returns the capture set on
// success and (nil, false) otherwise; failure to match is the expected
// outcome for most nodes and never an error.
func Match(p Pattern, n *rubyast.Node) (*Captures, bool) {
	caps := &Captures{}
	if !p.match(n, caps) {
		return nil, false
	}

	return caps, true
}

// Any matches any present node.
func Any() Pattern { return anyPattern{} }

type anyPattern struct{}

func (anyPattern) match(n *rubyast.Node, _ *Captures) bool { return n != nil }

// Nil matches an absent child slot, such as the receiver of a bare call.
func Nil() Pattern { return nilPattern{} }

type nilPattern struct{}

func (nilPattern) match(n *rubyast.Node, _ *Captures) bool { return n == nil }

// Node matches a node of the given kind whose children match elems
// element-wise. Without a [Rest] element the arity must be exact.
func Node(kind rubyast.Kind, elems ...Pattern) Pattern {
	return &nodePattern{kind: kind, children: elems, exact: true}
}

// NodeText matches like [Node] and additionally requires the node's token
// text (a call's method name, an identifier's name).
func NodeText(kind rubyast.Kind, text string, elems ...Pattern) Pattern {
	return &nodePattern{kind: kind, text: &text, children: elems, exact: true}
}

// Tag matches a node of the given kind regardless of its children.
func Tag(kind rubyast.Kind) Pattern {
	return &nodePattern{kind: kind}
}

// Ident matches an identifier with the given name.
func Ident(name string) Pattern {
	return NodeText(rubyast.KindIdent, name)
}

type nodePattern struct {
	kind     rubyast.Kind
	text     *string
	children []Pattern
	exact    bool
}

func (p *nodePattern) match(n *rubyast.Node, caps *Captures) bool {
	if n == nil || n.Kind != p.kind {
		return false
	}

	if p.text != nil && n.Text != *p.text {
		return false
	}

	if !p.exact {
		return true
	}

	return matchChildren(p.children, n.Children, caps)
}

// matchChildren matches a child list against element patterns containing at
// most one [Rest]. The fixed-arity elements around the rest determine the
// repetition count greedily and unambiguously.
func matchChildren(elems []Pattern, children []*rubyast.Node, caps *Captures) bool {
	restAt := -1

	for i, e := range elems {
		if _, ok := e.(*restPattern); ok {
			restAt = i

			break
		}
	}

	if restAt < 0 {
		if len(children) != len(elems) {
			return false
		}

		for i, e := range elems {
			if !e.match(children[i], caps) {
				return false
			}
		}

		return true
	}

	fixed := len(elems) - 1
	if len(children) < fixed {
		return false
	}

	for i := 0; i < restAt; i++ {
		if !elems[i].match(children[i], caps) {
			return false
		}
	}

	suffix := elems[restAt+1:]
	tail := children[len(children)-len(suffix):]

	for i, e := range suffix {
		if !e.match(tail[i], caps) {
			return false
		}
	}

	rest := elems[restAt].(*restPattern)
	middle := children[restAt : len(children)-len(suffix)]

	for _, c := range middle {
		if !rest.elem.match(c, caps) {
			return false
		}
	}

	if rest.name != "" {
		caps.set(rest.name, append([]*rubyast.Node(nil), middle...))
	}

	return true
}

// Bind captures the node matched by p under the given name.
func Bind(name string, p Pattern) Pattern { return &bindPattern{name: name, elem: p} }

type bindPattern struct {
	name string
	elem Pattern
}

func (p *bindPattern) match(n *rubyast.Node, caps *Captures) bool {
	if !p.elem.match(n, caps) {
		return false
	}

	caps.set(p.name, n)

	return true
}

// BindText captures the matched node's token text as a literal value.
func BindText(name string, p Pattern) Pattern { return &bindTextPattern{name: name, elem: p} }

type bindTextPattern struct {
	name string
	elem Pattern
}

func (p *bindTextPattern) match(n *rubyast.Node, caps *Captures) bool {
	if !p.elem.match(n, caps) {
		return false
	}

	caps.set(p.name, n.Text)

	return true
}

// Rest matches zero or more consecutive children, each against elem,
// capturing them in order. At most one Rest is allowed per child list.
func Rest(name string, elem Pattern) Pattern { return &restPattern{name: name, elem: elem} }

type restPattern struct {
	name string
	elem Pattern
}

// match is never called on the rest marker itself; matchChildren expands it.
func (p *restPattern) match(n *rubyast.Node, caps *Captures) bool {
	return p.elem.match(n, caps)
}

// Or matches if any alternative matches. Alternatives are tried in order and
// the first success wins; captures of failed alternatives are not recorded.
func Or(ps ...Pattern) Pattern { return &orPattern{elems: ps} }

type orPattern struct {
	elems []Pattern
}

func (p *orPattern) match(n *rubyast.Node, caps *Captures) bool {
	for _, e := range p.elems {
		trial := &Captures{}
		if e.match(n, trial) {
			caps.merge(trial)

			return true
		}
	}

	return false
}

// Not inverts a pattern, matching the absence of a shape. Captures recorded
// by the inner pattern are discarded.
func Not(p Pattern) Pattern { return &notPattern{elem: p} }

type notPattern struct {
	elem Pattern
}

func (p *notPattern) match(n *rubyast.Node, caps *Captures) bool {
	return !p.elem.match(n, &Captures{})
}

// Pred matches a present node satisfying fn. Escape hatch for contextual
// predicates the combinators do not express.
func Pred(fn func(*rubyast.Node) bool) Pattern { return predPattern{fn: fn} }

type predPattern struct {
	fn func(*rubyast.Node) bool
}

func (p predPattern) match(n *rubyast.Node, _ *Captures) bool {
	return n != nil && p.fn(n)
}
