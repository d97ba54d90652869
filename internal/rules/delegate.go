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
	"path/filepath"
	"strings"

	"railguard/internal/config"
	"railguard/internal/pattern"
	"railguard/internal/report"
	"railguard/internal/rubyast"
)

// Delegate detects methods whose body does nothing but forward to the
// same-named method on another receiver and corrects them to
// `delegate :name, to: ...`.
type Delegate struct {
	cfg config.Delegate
}

// NewDelegate returns the delegate rule with an explicit, immutable option
// record.
func NewDelegate(cfg config.Delegate) *Delegate {
	return &Delegate{cfg: cfg}
}

// Name implements [Rule].
func (*Delegate) Name() string { return "delegate" }

// delegatePattern matches an instance method definition whose body is a
// single method call on a present receiver. Singleton methods have a
// different kind and never match; the exact arity of the method node
// enforces the single-statement body.
var delegatePattern = pattern.Node(rubyast.KindMethod,
	pattern.Bind("params", pattern.Tag(rubyast.KindMethodParams)),
	pattern.Bind("call", pattern.Node(rubyast.KindCall,
		pattern.Bind("recv", pattern.Any()),
		pattern.Rest("args", pattern.Any()),
	)),
)

// Check implements [Rule].
func (r *Delegate) Check(cx *Context, n *rubyast.Node) error {
	caps, ok := pattern.Match(delegatePattern, n)
	if !ok {
		return nil
	}

	call, err := caps.Node("call")
	if err != nil {
		return err
	}

	// Safe-navigation forwarding has different nil semantics than
	// `delegate`; refusing it is policy, not a matcher gap.
	if call.SafeNav() {
		return nil
	}

	if r.excludedPath(cx.Source.Path) {
		return nil
	}

	if methodVisibility(n, cx.Ancestors) != Public {
		return nil
	}

	recv, err := caps.Node("recv")
	if err != nil {
		return err
	}

	token, ok := receiverToken(cx.Source, recv)
	if !ok {
		return nil
	}

	prefixed := false

	if n.Text != call.Text {
		if !r.cfg.EnforceForPrefixed {
			return nil
		}

		if recv.Kind != rubyast.KindIdent || n.Text != recv.Text+"_"+call.Text {
			return nil
		}

		prefixed = true
	}

	params, err := caps.Node("params")
	if err != nil {
		return err
	}

	args, err := caps.List("args")
	if err != nil {
		return err
	}

	if !forwardsVerbatim(params.Children, args) {
		return nil
	}

	replacement := fmt.Sprintf("delegate :%s, to: %s", call.Text, token)
	if prefixed {
		replacement += ", prefix: true"
	}

	cx.Sink.Report(report.Offense{
		Rule:    r.Name(),
		Message: "Use 'delegate' to define delegations (rg:dlg)",
		Range:   rubyast.Range{Start: n.Range.Start, End: n.NameRange.End},
		Edits:   []report.Edit{{Range: n.Range, NewText: replacement}},
	})

	return nil
}

// forwardsVerbatim reports whether every declared parameter is forwarded
// verbatim and in order. Optional, keyword, splat and block parameters
// disqualify, as do extra or missing arguments; each forwarded argument must
// be structurally equal to the parameter's identifier, so any wrapping
// expression fails.
func forwardsVerbatim(params, args []*rubyast.Node) bool {
	if len(args) != len(params) {
		return false
	}

	for i, p := range params {
		if p.Kind != rubyast.KindReqParam {
			return false
		}

		if !rubyast.StructurallyEqual(args[i], rubyast.Ident(p.Text)) {
			return false
		}
	}

	return true
}

// receiverToken renders the `to:` target for a receiver node, reproducing
// the receiver spelling losslessly from source text. Unsupported receiver
// shapes reject the match.
func receiverToken(src *rubyast.Source, recv *rubyast.Node) (string, bool) {
	switch recv.Kind {
	case rubyast.KindSelf:
		return "self", true

	case rubyast.KindIdent, rubyast.KindIVar, rubyast.KindCVar, rubyast.KindGVar, rubyast.KindConst:
		return ":" + src.Slice(recv.Range), true

	case rubyast.KindScopeRes:
		// `::` is not valid in a bare symbol; quote it.
		return ":'" + src.Slice(recv.Range) + "'", true

	case rubyast.KindCall:
		// Bare method call (`bar`, `bar()`) or `self.class`.
		if len(recv.Children) == 1 && !recv.SafeNav() {
			if inner := recv.Children[0]; inner == nil || inner.Kind == rubyast.KindSelf {
				return ":" + recv.Text, true
			}
		}

		return "", false

	default:
		return "", false
	}
}

func (r *Delegate) excludedPath(path string) bool {
	slashed := filepath.ToSlash(path)

	for _, fragment := range r.cfg.ExcludedPaths {
		if fragment != "" && strings.Contains(slashed, fragment) {
			return true
		}
	}

	return false
}
