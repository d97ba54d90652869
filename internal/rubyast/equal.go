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

// StructurallyEqual reports whether two subtrees denote the same expression:
// same kind, token text, flags and children, recursively. Source ranges are
// ignored. Equality is structural, not semantic: `foo` and `foo || 5` differ,
// as do `a.b` and `a&.b`.
func StructurallyEqual(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}

	if a.Kind != b.Kind || a.Text != b.Text || a.Flags != b.Flags {
		return false
	}

	if len(a.Children) != len(b.Children) {
		return false
	}

	for i := range a.Children {
		if !StructurallyEqual(a.Children[i], b.Children[i]) {
			return false
		}
	}

	return true
}

// Ident constructs a detached identifier node, used to compare declared
// parameters against forwarded arguments.
func Ident(name string) *Node {
	return &Node{Kind: KindIdent, Text: name}
}
