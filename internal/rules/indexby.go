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

package rules

import (
	"fmt"
	"slices"

	"railguard/internal/pattern"
	"railguard/internal/report"
	"railguard/internal/rubyast"
)

// IndexBy detects hand-rolled "key -> element" hash constructions and
// corrects them to `index_by`. Three surface shapes are recognized: the
// each_with_object accumulator idiom, map-to-pairs followed by to_h, and the
// pairs form wrapped in `Hash[...]`.
type IndexBy struct{}

// NewIndexBy returns the index-by rule. It has no options beyond enablement.
func NewIndexBy() *IndexBy { return &IndexBy{} }

// Name implements [Rule].
func (*IndexBy) Name() string { return "index-by" }

// accumulatorPattern matches
//
//	recv.each_with_object({}) { |el, acc| acc[key] = value }
//
// The exact arities enforce a single empty-hash argument, a single-statement
// block body and a single subscript expression.
var accumulatorPattern = pattern.Node(rubyast.KindBlock,
	pattern.Bind("call", pattern.NodeText(rubyast.KindCall, "each_with_object",
		pattern.Bind("recv", pattern.Any()),
		pattern.Node(rubyast.KindHash),
	)),
	pattern.Bind("params", pattern.Tag(rubyast.KindBlockParams)),
	pattern.Node(rubyast.KindIndexAsgn,
		pattern.Bind("acc", pattern.Tag(rubyast.KindIdent)),
		pattern.Bind("key", pattern.Any()),
		pattern.Bind("value", pattern.Any()),
	),
)

// pairsPattern matches the list-to-pairs transform
//
//	recv.map { |el| [key, value] }
//
// shared by the to_h and Hash[] shapes.
var pairsPattern = pattern.Node(rubyast.KindBlock,
	pattern.Bind("call", pattern.Or(
		pattern.NodeText(rubyast.KindCall, "map", pattern.Bind("recv", pattern.Any())),
		pattern.NodeText(rubyast.KindCall, "collect", pattern.Bind("recv", pattern.Any())),
	)),
	pattern.Bind("params", pattern.Tag(rubyast.KindBlockParams)),
	pattern.Node(rubyast.KindArray,
		pattern.Bind("key", pattern.Any()),
		pattern.Bind("value", pattern.Any()),
	),
)

// mapToHPattern matches the pairs transform feeding a bare hash conversion,
// chained on the same line or the next.
var mapToHPattern = pattern.NodeText(rubyast.KindCall, "to_h",
	pattern.Bind("block", pairsPattern),
)

// hashBracketPattern matches the pairs transform as the sole subscript of a
// Hash[] construction.
var hashBracketPattern = pattern.Node(rubyast.KindIndex,
	pattern.NodeText(rubyast.KindConst, "Hash"),
	pattern.Bind("block", pairsPattern),
)

// Check implements [Rule].
func (r *IndexBy) Check(cx *Context, n *rubyast.Node) error {
	switch n.Kind {
	case rubyast.KindBlock:
		if caps, ok := pattern.Match(accumulatorPattern, n); ok {
			return r.checkAccumulator(cx, n, caps)
		}

	case rubyast.KindCall:
		// A `to_h` carrying its own block transforms the pairs and is not an
		// index_by; the lifted block parent identifies that form.
		if parent := cx.Parent(); parent != nil && parent.Kind == rubyast.KindBlock && parent.ChildIndex(n) == 0 {
			return nil
		}

		if caps, ok := pattern.Match(mapToHPattern, n); ok {
			return r.checkPairs(cx, n, caps, "map { ... }.to_h")
		}

	case rubyast.KindIndex:
		if caps, ok := pattern.Match(hashBracketPattern, n); ok {
			return r.checkPairs(cx, n, caps, "Hash[map { ... }]")
		}
	}

	return nil
}

// checkAccumulator validates the two-parameter accumulator idiom: the value
// must be the untransformed element, the accumulator must only ever be
// indexed by the key expression and must not leak into it.
func (r *IndexBy) checkAccumulator(cx *Context, n *rubyast.Node, caps *pattern.Captures) error {
	params, err := caps.Node("params")
	if err != nil {
		return err
	}

	elName, accName, explicit, ok := accumulatorNames(params)
	if !ok {
		return nil
	}

	acc, err := caps.Node("acc")
	if err != nil {
		return err
	}

	if acc.Text != accName {
		return nil
	}

	value, err := caps.Node("value")
	if err != nil {
		return err
	}

	if !rubyast.StructurallyEqual(value, rubyast.Ident(elName)) {
		return nil
	}

	key, err := caps.Node("key")
	if err != nil {
		return err
	}

	if rubyast.References(key, accName) {
		return nil
	}

	if !explicit && !implicitRefsConfined(key, elName) {
		return nil
	}

	call, err := caps.Node("call")
	if err != nil {
		return err
	}

	recv, err := caps.Node("recv")
	if err != nil {
		return err
	}

	// Two edits: rewrite the call head, then collapse the block body down to
	// the key expression.
	head := report.Edit{
		Range:   rubyast.Range{Start: recv.Range.End, End: call.Range.End},
		NewText: callOperator(call) + "index_by",
	}
	body := report.Edit{
		Range:   rubyast.Range{Start: call.Range.End, End: n.Range.End},
		NewText: blockText(cx, key, elName, explicit),
	}

	cx.Sink.Report(report.Offense{
		Rule:    r.Name(),
		Message: "Prefer 'index_by' over 'each_with_object' (rg:idx)",
		Range:   n.Range,
		Edits:   []report.Edit{head, body},
	})

	return nil
}

// checkPairs validates the one-parameter pairs idiom shared by the to_h and
// Hash[] shapes; n is the full span to replace, including the conversion
// step, which the correction drops entirely.
func (r *IndexBy) checkPairs(cx *Context, n *rubyast.Node, caps *pattern.Captures, shape string) error {
	params, err := caps.Node("params")
	if err != nil {
		return err
	}

	value, err := caps.Node("value")
	if err != nil {
		return err
	}

	elName, explicit, ok := pairsElement(params, value)
	if !ok {
		return nil
	}

	if !rubyast.StructurallyEqual(value, rubyast.Ident(elName)) {
		return nil
	}

	key, err := caps.Node("key")
	if err != nil {
		return err
	}

	if !explicit && !implicitRefsConfined(key, elName) {
		return nil
	}

	call, err := caps.Node("call")
	if err != nil {
		return err
	}

	recv, err := caps.Node("recv")
	if err != nil {
		return err
	}

	replacement := cx.Source.Slice(recv.Range) + callOperator(call) + "index_by" + blockText(cx, key, elName, explicit)

	cx.Sink.Report(report.Offense{
		Rule:    r.Name(),
		Message: fmt.Sprintf("Prefer 'index_by' over '%s' (rg:idx)", shape),
		Range:   n.Range,
		Edits:   []report.Edit{{Range: n.Range, NewText: replacement}},
	})

	return nil
}

// accumulatorNames resolves the element and accumulator names for a
// two-parameter block: two plain declared parameters, or none with the
// numbered forms _1/_2 implied.
func accumulatorNames(params *rubyast.Node) (elName, accName string, explicit, ok bool) {
	switch len(params.Children) {
	case 0:
		return "_1", "_2", false, true

	case 2:
		p0, p1 := params.Children[0], params.Children[1]
		if p0.Kind != rubyast.KindReqParam || p1.Kind != rubyast.KindReqParam {
			return "", "", false, false
		}

		return p0.Text, p1.Text, true, true

	default:
		return "", "", false, false
	}
}

// pairsElement resolves the element name for a one-parameter pairs block.
// With no declared parameters the value position itself determines which
// implicit spelling is in use.
func pairsElement(params *rubyast.Node, value *rubyast.Node) (elName string, explicit, ok bool) {
	switch len(params.Children) {
	case 0:
		if value.Kind != rubyast.KindIdent {
			return "", false, false
		}

		if idx, implicit := rubyast.ImplicitParamIndex(value.Text); !implicit || idx != 1 {
			return "", false, false
		}

		return value.Text, false, true

	case 1:
		p := params.Children[0]
		if p.Kind != rubyast.KindReqParam {
			return "", false, false
		}

		return p.Text, true, true

	default:
		return "", false, false
	}
}

// implicitRefsConfined reports whether every implicit parameter referenced in
// the key expression is the element itself. A different implicit parameter,
// including an out-of-range numbered reference, disqualifies the match.
func implicitRefsConfined(key *rubyast.Node, elName string) bool {
	refs := rubyast.ImplicitRefs(key)

	return !slices.ContainsFunc(refs, func(ref string) bool { return ref != elName })
}

func callOperator(call *rubyast.Node) string {
	if call.SafeNav() {
		return "&."
	}

	return "."
}

func blockText(cx *Context, key *rubyast.Node, elName string, explicit bool) string {
	keySrc := cx.Source.Slice(key.Range)
	if explicit {
		return fmt.Sprintf(" { |%s| %s }", elName, keySrc)
	}

	return fmt.Sprintf(" { %s }", keySrc)
}
