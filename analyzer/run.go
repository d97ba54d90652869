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

package analyzer

import (
	"context"
	"errors"
	"fmt"
	"runtime/trace"

	"railguard/internal/config"
	"railguard/internal/report"
	"railguard/internal/rubyast"
	"railguard/internal/rules"
)

// run executes the engine pipeline over one parsed file: a single preorder
// traversal invoking each enabled rule at every node, then conflict-aware
// composition of the proposed corrections.
func (r *runOptions) run(ctx context.Context, src *rubyast.Source) ([]report.Offense, []byte, error) {
	ctx, task := trace.NewTask(ctx, "Railguard")
	defer task.End()

	checks := r.ruleSet()
	sink := report.NewSink()

	cx := &rules.Context{Source: src, Sink: sink}

	region := trace.StartRegion(ctx, "Check")

	var checkErr error

	rubyast.Walk(src.Root, func(n *rubyast.Node, ancestors []*rubyast.Node) bool {
		if checkErr != nil {
			return false
		}

		cx.Ancestors = ancestors

		for _, rule := range checks {
			if err := rule.Check(cx, n); err != nil {
				// A failing capture read is an evaluator bug, not bad input;
				// identify the rule and node and abort the pass.
				checkErr = fmt.Errorf("rule %s: %s node at [%d,%d): %w",
					rule.Name(), n.Kind, n.Range.Start, n.Range.End, err)

				return false
			}
		}

		return true
	})

	region.End()

	if checkErr != nil {
		return nil, nil, checkErr
	}

	offenses := sink.Offenses()

	var fixed []byte

	if r.behavior.Enabled(config.Autocorrect) {
		defer trace.StartRegion(ctx, "Correct").End()

		corrector := report.NewCorrector(src.Bytes)

		for i := range offenses {
			if len(offenses[i].Edits) == 0 {
				continue
			}

			switch err := corrector.Add(offenses[i].Edits); {
			case err == nil:
				offenses[i].Corrected = true

			case errors.Is(err, report.ErrOverlap):
				// The offense stays visible; its correction is deferred to a
				// later pass over the rewritten source.

			default:
				return nil, nil, fmt.Errorf("rule %s: %w", offenses[i].Rule, err)
			}
		}

		if !corrector.Empty() {
			fixed = corrector.Apply()
		}
	}

	return offenses, fixed, nil
}
