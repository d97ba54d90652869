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
	"fmt"

	"railguard/internal/rubyast"
)

// Linter is a configured rule engine. It is immutable after [New] and safe
// to share: each [Linter.Run] call is self-contained, so hosts may lint
// files in parallel with one Linter.
type Linter struct {
	opts *runOptions
}

// New creates a Linter, applying [Option] values over the defaults (all
// rules enabled, autocorrection off).
func New(opts ...Option) *Linter {
	return &Linter{opts: makeRunOptions(Options(opts))}
}

// Position is a 1-based line and column in the original source.
type Position struct {
	Line   int
	Column int
}

// Offense is a reported rule violation with its location resolved for
// display.
type Offense struct {
	Rule    string
	Message string
	Start   Position
	End     Position

	// Correctable reports whether the rule proposed a correction;
	// Corrected whether it was accepted into this pass. A correctable but
	// uncorrected offense lost an overlap conflict and may be fixed by a
	// subsequent pass over the rewritten source.
	Correctable bool
	Corrected   bool
}

// Result is the outcome of linting one file.
type Result struct {
	Offenses []Offense

	// Fixed is the rewritten source when autocorrection accepted at least
	// one edit, nil otherwise. The engine never writes it anywhere; applying
	// it (and re-linting to a fixed point) is the host's responsibility.
	Fixed []byte
}

// Run parses one Ruby file and evaluates every enabled rule over its tree.
// The engine never touches the filesystem.
func (l *Linter) Run(ctx context.Context, path string, src []byte) (Result, error) {
	parsed, err := rubyast.Parse(ctx, path, src)
	if err != nil {
		return Result{}, err
	}

	offenses, fixed, err := l.opts.run(ctx, parsed)
	if err != nil {
		return Result{}, fmt.Errorf("railguard: %s: %w", path, err)
	}

	result := Result{Fixed: fixed}

	for _, o := range offenses {
		startLine, startCol := parsed.Position(o.Range.Start)
		endLine, endCol := parsed.Position(o.Range.End)

		result.Offenses = append(result.Offenses, Offense{
			Rule:        o.Rule,
			Message:     o.Message,
			Start:       Position{Line: startLine, Column: startCol},
			End:         Position{Line: endLine, Column: endCol},
			Correctable: len(o.Edits) > 0,
			Corrected:   o.Corrected,
		})
	}

	return result, nil
}
