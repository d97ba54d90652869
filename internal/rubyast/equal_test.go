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

package rubyast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"railguard/internal/rubyast"
	"railguard/internal/testsource"
)

// firstExpr parses a fragment and returns its first top-level expression.
func firstExpr(t *testing.T, fragment string) *rubyast.Node {
	t.Helper()

	src := testsource.Parse(t, fragment)

	if len(src.Root.Children) == 0 {
		t.Fatalf("No expression in %q", fragment)
	}

	return src.Root.Children[0]
}

func TestStructurallyEqual(t *testing.T) {
	t.Parallel()

	testCases := [...]struct {
		name string
		a, b string
		want bool
	}{
		{"same call", "a.b", "a.b", true},
		{"ranges ignored", "a.b", "  a.b", true},
		{"different receiver", "a.b", "c.b", false},
		{"different method", "a.b", "a.c", false},
		{"safe navigation differs", "a.b", "a&.b", false},
		{"extra argument", "foo(x)", "foo(x, y)", false},
		{"expression vs composition", "foo", "foo || 5", false},
		{"nested", "a.b(c[1])", "a.b(c[1])", true},
		{"literal text", "foo(1)", "foo(2)", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			a := firstExpr(t, tc.a+"\n")
			b := firstExpr(t, tc.b+"\n")

			assert.Equal(t, tc.want, rubyast.StructurallyEqual(a, b))
		})
	}
}

func TestStructurallyEqualNil(t *testing.T) {
	t.Parallel()

	n := rubyast.Ident("x")

	assert.True(t, rubyast.StructurallyEqual(nil, nil))
	assert.False(t, rubyast.StructurallyEqual(n, nil))
	assert.False(t, rubyast.StructurallyEqual(nil, n))
}

// A detached identifier compares equal to a parsed argument of the same name.
func TestIdentComparesToParsed(t *testing.T) {
	t.Parallel()

	call := firstExpr(t, "foo(user)\n")
	arg := call.Children[1]

	assert.True(t, rubyast.StructurallyEqual(rubyast.Ident("user"), arg))
	assert.False(t, rubyast.StructurallyEqual(rubyast.Ident("other"), arg))
}
