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

package report

import (
	"errors"
	"fmt"
	"slices"
)

// ErrOverlap is returned by [Corrector.Add] when an edit set intersects an
// already-accepted edit. The conflict is recoverable: the offense stays
// reported, its correction is dropped for this pass and may apply in a
// subsequent one.
var ErrOverlap = errors.New("edit overlaps an accepted edit")

// Corrector accepts edit sets for one source buffer and applies them in a
// single pass. Accepted edits are guaranteed mutually non-overlapping.
type Corrector struct {
	src      []byte
	accepted []Edit
}

// NewCorrector returns a corrector over the original source bytes.
func NewCorrector(src []byte) *Corrector {
	return &Corrector{src: src}
}

// Add validates and accepts one offense's edits atomically. A range that
// falls outside the source is an invariant violation and a non-recoverable
// error; a conflict with previously accepted edits returns [ErrOverlap] and
// leaves the corrector unchanged.
func (c *Corrector) Add(edits []Edit) error {
	for _, e := range edits {
		if e.Range.Start < 0 || e.Range.Start > e.Range.End || e.Range.End > len(c.src) {
			return fmt.Errorf("edit range [%d,%d) exceeds %d-byte source", e.Range.Start, e.Range.End, len(c.src))
		}
	}

	for i, e := range edits {
		for _, f := range edits[i+1:] {
			if e.Range.Overlaps(f.Range) {
				return fmt.Errorf("%w: conflicting edits within one correction", ErrOverlap)
			}
		}

		for _, a := range c.accepted {
			if e.Range.Overlaps(a.Range) {
				return ErrOverlap
			}
		}
	}

	c.accepted = append(c.accepted, edits...)

	return nil
}

// Empty reports whether no edits have been accepted.
func (c *Corrector) Empty() bool { return len(c.accepted) == 0 }

// Apply composes the accepted edits into a rewritten buffer. The original
// source is not modified; with no accepted edits the result is the input,
// byte for byte.
func (c *Corrector) Apply() []byte {
	if len(c.accepted) == 0 {
		return c.src
	}

	edits := slices.Clone(c.accepted)
	slices.SortFunc(edits, func(a, b Edit) int { return a.Range.Start - b.Range.Start })

	var out []byte

	last := 0
	for _, e := range edits {
		out = append(out, c.src[last:e.Range.Start]...)
		out = append(out, e.NewText...)
		last = e.Range.End
	}

	return append(out, c.src[last:]...)
}
