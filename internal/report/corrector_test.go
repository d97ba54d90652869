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

package report_test

import (
	"errors"
	"testing"

	. "railguard/internal/report"
	"railguard/internal/rubyast"
)

func edit(start, end int, text string) Edit {
	return Edit{Range: rubyast.Range{Start: start, End: end}, NewText: text}
}

func TestCorrectorApply(t *testing.T) {
	t.Parallel()

	testCases := [...]struct {
		name  string
		src   string
		edits [][]Edit
		want  string
	}{
		{
			"single replacement",
			"a.b.c",
			[][]Edit{{edit(2, 3, "x")}},
			"a.x.c",
		},
		{
			"out of order application",
			"abcdef",
			[][]Edit{{edit(4, 6, "Z")}, {edit(0, 2, "Y")}},
			"YcdZ",
		},
		{
			"adjacent ranges do not conflict",
			"abcdef",
			[][]Edit{{edit(0, 3, "X")}, {edit(3, 6, "Y")}},
			"XY",
		},
		{
			"insertion at empty range",
			"abc",
			[][]Edit{{edit(1, 1, "zz")}},
			"azzbc",
		},
		{
			"two edits of one offense",
			"h.each_with_object({}) { |e, a| a[e.k] = e }",
			[][]Edit{{
				edit(1, 22, ".index_by"),
				edit(22, 44, " { |e| e.k }"),
			}},
			"h.index_by { |e| e.k }",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			c := NewCorrector([]byte(tc.src))
			for _, es := range tc.edits {
				if err := c.Add(es); err != nil {
					t.Fatalf("Can't add edits: %v", err)
				}
			}

			if got := string(c.Apply()); got != tc.want {
				t.Errorf("Apply() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestCorrectorOverlap(t *testing.T) {
	t.Parallel()

	c := NewCorrector([]byte("abcdefgh"))

	if err := c.Add([]Edit{edit(2, 5, "X")}); err != nil {
		t.Fatalf("Can't add edits: %v", err)
	}

	// Rejection is atomic: the non-conflicting first edit must not apply.
	err := c.Add([]Edit{edit(6, 8, "Y"), edit(4, 6, "Z")})
	if !errors.Is(err, ErrOverlap) {
		t.Fatalf("Got %v, want ErrOverlap", err)
	}

	if got := string(c.Apply()); got != "abXfgh" {
		t.Errorf("Apply() = %q, want %q", got, "abXfgh")
	}
}

func TestCorrectorInternalConflict(t *testing.T) {
	t.Parallel()

	c := NewCorrector([]byte("abcdefgh"))

	if err := c.Add([]Edit{edit(0, 4, "X"), edit(3, 6, "Y")}); !errors.Is(err, ErrOverlap) {
		t.Fatalf("Got %v, want ErrOverlap for edits conflicting within one correction", err)
	}

	if !c.Empty() {
		t.Error("Expected corrector to stay empty after rejection")
	}
}

func TestCorrectorRangeValidation(t *testing.T) {
	t.Parallel()

	testCases := [...]struct {
		name string
		e    Edit
	}{
		{"end beyond source", edit(0, 9, "X")},
		{"negative start", edit(-1, 2, "X")},
		{"inverted", edit(5, 2, "X")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			c := NewCorrector([]byte("abcdefgh"))

			err := c.Add([]Edit{tc.e})
			if err == nil {
				t.Fatal("Expected range validation to fail")
			}

			if errors.Is(err, ErrOverlap) {
				t.Error("Range violations must not be recoverable as overlaps")
			}
		})
	}
}

// An empty corrector returns the input unchanged, byte for byte.
func TestCorrectorEmpty(t *testing.T) {
	t.Parallel()

	src := []byte("def foo\n  bar.foo\nend\n")

	c := NewCorrector(src)
	if !c.Empty() {
		t.Error("Expected new corrector to be empty")
	}

	if got := c.Apply(); string(got) != string(src) {
		t.Errorf("Apply() = %q, want input unchanged", got)
	}
}
