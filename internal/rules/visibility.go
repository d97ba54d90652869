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

import "railguard/internal/rubyast"

// Visibility of a method definition within its enclosing body.
type Visibility uint8

const (
	Public Visibility = iota
	Private
	Protected
)

// methodVisibility resolves the effective visibility of a method definition.
// Both declaration forms are recognized: the inline modifier call
// (`private def foo ... end`, the definition being the call's argument) and
// the block-scope marker (a bare `private` statement among the preceding
// siblings, reset by `public`).
func methodVisibility(method *rubyast.Node, ancestors []*rubyast.Node) Visibility {
	if len(ancestors) == 0 {
		return Public
	}

	parent := ancestors[len(ancestors)-1]

	if parent.Kind == rubyast.KindCall && len(parent.Children) > 0 && parent.Children[0] == nil {
		if v, ok := visibilityName(parent.Text); ok {
			return v
		}
	}

	vis := Public

	for i, end := 0, parent.ChildIndex(method); i < end; i++ {
		sib := parent.Children[i]
		if sib == nil {
			continue
		}

		switch sib.Kind {
		case rubyast.KindIdent:
			// A bare visibility keyword parses as a plain identifier.
			if v, ok := visibilityName(sib.Text); ok {
				vis = v
			}

		case rubyast.KindCall:
			// `private()` scope form; `private :foo` names methods and does
			// not change the default, so calls with arguments are ignored.
			if len(sib.Children) == 1 && sib.Children[0] == nil {
				if v, ok := visibilityName(sib.Text); ok {
					vis = v
				}
			}
		}
	}

	return vis
}

func visibilityName(name string) (Visibility, bool) {
	switch name {
	case "private":
		return Private, true
	case "protected":
		return Protected, true
	case "public":
		return Public, true
	default:
		return Public, false
	}
}
