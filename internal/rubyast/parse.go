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

package rubyast

import (
	"context"
	"fmt"
	"sort"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/ruby"
)

// Source is one parsed Ruby file: the original bytes plus the adapted,
// immutable node tree. The engine reads it and never writes back.
type Source struct {
	Path  string
	Bytes []byte
	Root  *Node

	lineStarts []int
}

// Parse runs the external tree-sitter Ruby parser and adapts the resulting
// tree into the engine's node model.
func Parse(ctx context.Context, path string, src []byte) (*Source, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(ruby.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("railguard: parsing %s: %w", path, err)
	}
	defer tree.Close()

	return NewSource(path, src, adapt(tree.RootNode(), src)), nil
}

// NewSource wraps an already-adapted tree. Useful for tests that construct
// trees by hand.
func NewSource(path string, src []byte, root *Node) *Source {
	lineStarts := []int{0}
	for i, b := range src {
		if b == '\n' {
			lineStarts = append(lineStarts, i+1)
		}
	}

	return &Source{Path: path, Bytes: src, Root: root, lineStarts: lineStarts}
}

// Slice returns the original source text covered by the range.
func (s *Source) Slice(r Range) string {
	if r.Start < 0 || r.End > len(s.Bytes) || r.Start > r.End {
		return ""
	}

	return string(s.Bytes[r.Start:r.End])
}

// Position converts a byte offset into a 1-based line and column.
func (s *Source) Position(offset int) (line, col int) {
	i := sort.Search(len(s.lineStarts), func(i int) bool { return s.lineStarts[i] > offset }) - 1
	if i < 0 {
		i = 0
	}

	return i + 1, offset - s.lineStarts[i] + 1
}
