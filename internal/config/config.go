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

package config

// RuleFlags represents individual lint rules.
type RuleFlags uint8

const (
	// DelegateRule enables detection of trivially forwarding methods.
	DelegateRule RuleFlags = 1 << iota

	// IndexByRule enables detection of hand-rolled key-indexing transforms.
	IndexByRule
)

// Behavior represents engine behavior options.
type Behavior uint8

const (
	// Autocorrect specifies whether the engine composes corrected source
	// text from accepted edits.
	Autocorrect Behavior = 1 << iota
)

// Delegate is the option record for the delegate rule. Unrecognized settings
// are rejected when the configuration file is decoded, not during per-node
// evaluation.
type Delegate struct {
	// EnforceForPrefixed recognizes `def bar_foo; bar.foo; end` as a
	// delegation corrected with `prefix: true`.
	EnforceForPrefixed bool

	// ExcludedPaths suppresses the rule for files whose slash-separated path
	// contains any of these fragments.
	ExcludedPaths []string
}

// DefaultDelegate returns the delegate rule defaults: prefixed forwarding not
// enforced, controller files excluded.
func DefaultDelegate() Delegate {
	return Delegate{
		ExcludedPaths: []string{"app/controllers/"},
	}
}
