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

// Package report collects offenses and composes their corrections into
// rewritten source text.
package report

import "railguard/internal/rubyast"

// Edit is a single range-exact text replacement proposed as part of a
// correction. Immutable once created.
type Edit struct {
	Range   rubyast.Range
	NewText string
}

// Offense is a reported rule violation. One offense may carry several edits;
// they are accepted or dropped as a unit.
type Offense struct {
	Rule    string
	Message string
	Range   rubyast.Range
	Edits   []Edit

	// Corrected is set by the corrector when the offense's edits were
	// accepted into the current pass.
	Corrected bool
}

// Sink accumulates offenses in emission order. One sink serves one tree
// traversal; there is no shared state across files.
type Sink struct {
	offenses []Offense
}

// NewSink returns an empty offense sink.
func NewSink() *Sink { return &Sink{} }

// Report appends an offense.
func (s *Sink) Report(o Offense) {
	s.offenses = append(s.offenses, o)
}

// Offenses returns the collected offenses. The corrector marks accepted
// corrections through this slice.
func (s *Sink) Offenses() []Offense { return s.offenses }
