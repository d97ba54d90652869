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

// Package testsource provides utilities for parsing Ruby source fragments in
// tests, handling the parse-and-adapt boilerplate so tests can focus on tree
// shapes.
package testsource

import (
	"context"
	"testing"

	"railguard/internal/rubyast"
)

// Parse parses a Ruby source fragment into the normalized node model.
func Parse(tb testing.TB, src string) *rubyast.Source {
	tb.Helper()

	parsed, err := rubyast.Parse(context.Background(), "test.rb", []byte(src))
	if err != nil {
		tb.Fatalf("Failed to parse source %q: %v", src, err)
	}

	return parsed
}

// FindFirst returns the first node of the given kind in preorder, along with
// its ancestor chain, and fails the test when no such node exists.
func FindFirst(tb testing.TB, src *rubyast.Source, kind rubyast.Kind) (*rubyast.Node, []*rubyast.Node) {
	tb.Helper()

	var (
		found *rubyast.Node
		chain []*rubyast.Node
	)

	rubyast.Walk(src.Root, func(n *rubyast.Node, ancestors []*rubyast.Node) bool {
		if found != nil {
			return false
		}

		if n.Kind == kind {
			found = n
			chain = append([]*rubyast.Node(nil), ancestors...)

			return false
		}

		return true
	})

	if found == nil {
		tb.Fatalf("No %s node in %q", kind, src.Bytes)
	}

	return found, chain
}
