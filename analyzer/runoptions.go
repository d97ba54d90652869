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

package analyzer

import (
	"railguard/internal/config"
	"railguard/internal/rules"
)

// runOptions represent the effective configuration of a [Linter].
type runOptions struct {
	// checks represents the rules to be enabled.
	checks config.BitMask[config.RuleFlags]

	// behavior holds engine behavior options.
	behavior config.BitMask[config.Behavior]

	// delegate is the delegate rule's option record.
	delegate config.Delegate
}

// makeRunOptions returns a [runOptions] struct with overriding [Options]
// applied.
func makeRunOptions(opts Options) *runOptions {
	r := defaultRunOptions()
	opts.apply(r)

	return r
}

// defaultRunOptions initializes a runOptions instance with default values.
func defaultRunOptions() *runOptions {
	return &runOptions{
		checks:   config.NewBitMask(config.DelegateRule | config.IndexByRule),
		delegate: config.DefaultDelegate(),
	}
}

// ruleSet instantiates the enabled rule evaluators in their fixed order.
func (r *runOptions) ruleSet() []rules.Rule {
	var set []rules.Rule

	if r.checks.Enabled(config.DelegateRule) {
		set = append(set, rules.NewDelegate(r.delegate))
	}

	if r.checks.Enabled(config.IndexByRule) {
		set = append(set, rules.NewIndexBy())
	}

	return set
}
