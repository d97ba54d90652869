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

// Package analyzer implements the railguard rule engine for Ruby source.
//
// # Overview
//
// Railguard detects code smells in a parsed Ruby syntax tree and proposes
// equivalent, preferred rewrites.
//
// # Example
//
// Before:
//
//	def full_name
//	  profile.full_name
//	end
//
// After applying railguard's correction:
//
//	delegate :full_name, to: :profile
//
// And for hash construction:
//
//	users.each_with_object({}) { |u, h| h[u.email] = u }
//
// becomes:
//
//	users.index_by { |u| u.email }
//
// # Rules
//
//   - delegate: a method body that does nothing but forward to the
//     same-named method on another receiver
//   - index-by: each_with_object / map-then-to_h / Hash[] idioms building a
//     "key -> element" mapping
//
// The engine consumes an already-parsed tree, emits offenses with optional
// corrections, and guarantees that the corrections accepted within one pass
// never overlap. Applying the rewritten source and re-linting to a fixed
// point is the host's responsibility.
package analyzer
