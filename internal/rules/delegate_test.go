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

package rules_test

import (
	"context"
	"testing"

	"railguard/internal/config"
	"railguard/internal/report"
	"railguard/internal/rubyast"
	"railguard/internal/rules"
)

// lint runs one rule over a source fragment and returns the offenses along
// with the source after applying all proposed corrections.
func lint(t *testing.T, rule rules.Rule, path, src string) ([]report.Offense, string) {
	t.Helper()

	parsed, err := rubyast.Parse(context.Background(), path, []byte(src))
	if err != nil {
		t.Fatalf("Can't parse source: %v", err)
	}

	sink := report.NewSink()
	cx := &rules.Context{Source: parsed, Sink: sink}

	var checkErr error

	rubyast.Walk(parsed.Root, func(n *rubyast.Node, ancestors []*rubyast.Node) bool {
		cx.Ancestors = ancestors

		if err := rule.Check(cx, n); err != nil {
			checkErr = err

			return false
		}

		return true
	})

	if checkErr != nil {
		t.Fatalf("Rule check failed: %v", checkErr)
	}

	offenses := sink.Offenses()

	c := report.NewCorrector([]byte(src))
	for _, o := range offenses {
		if len(o.Edits) == 0 {
			continue
		}

		if err := c.Add(o.Edits); err != nil {
			t.Fatalf("Can't compose corrections: %v", err)
		}
	}

	return offenses, string(c.Apply())
}

const modelPath = "app/models/user.rb"

func TestDelegate(t *testing.T) {
	t.Parallel()

	testCases := [...]struct {
		name     string
		path     string
		prefixed bool
		src      string
		want     int
		fixed    string
	}{
		{
			name:  "simple forwarding",
			src:   "def full_name\n  profile.full_name\nend\n",
			want:  1,
			fixed: "delegate :full_name, to: :profile\n",
		},
		{
			name:  "arguments forwarded verbatim",
			src:   "def find(id, scope)\n  store.find(id, scope)\nend\n",
			want:  1,
			fixed: "delegate :find, to: :store\n",
		},
		{
			name:  "self receiver",
			path:  modelPath,
			src:   "def save\n  self.save\nend\n",
			want:  1,
			fixed: "delegate :save, to: self\n",
		},
		{
			name:  "class receiver",
			src:   "def sti_name\n  self.class.sti_name\nend\n",
			want:  1,
			fixed: "delegate :sti_name, to: :class\n",
		},
		{
			name:  "instance variable receiver",
			src:   "def name\n  @profile.name\nend\n",
			want:  1,
			fixed: "delegate :name, to: :@profile\n",
		},
		{
			name:  "constant receiver",
			src:   "def value\n  CONFIG.value\nend\n",
			want:  1,
			fixed: "delegate :value, to: :CONFIG\n",
		},
		{
			name:  "scoped constant receiver",
			src:   "def value\n  Settings::Instance.value\nend\n",
			want:  1,
			fixed: "delegate :value, to: :'Settings::Instance'\n",
		},
		{
			name: "safe navigation refused",
			src:  "def full_name\n  profile&.full_name\nend\n",
		},
		{
			name: "different method name",
			src:  "def display_name\n  profile.full_name\nend\n",
		},
		{
			name:     "prefixed forwarding",
			prefixed: true,
			src:      "def profile_name\n  profile.name\nend\n",
			want:     1,
			fixed:    "delegate :name, to: :profile, prefix: true\n",
		},
		{
			name:     "prefix requires matching receiver",
			prefixed: true,
			src:      "def account_name\n  profile.name\nend\n",
		},
		{
			name: "extra argument",
			src:  "def find(id)\n  store.find(id, true)\nend\n",
		},
		{
			name: "transformed argument",
			src:  "def find(id)\n  store.find(id.to_s)\nend\n",
		},
		{
			name: "reordered arguments",
			src:  "def pair(a, b)\n  store.pair(b, a)\nend\n",
		},
		{
			name: "optional parameter",
			src:  "def find(id = nil)\n  store.find(id)\nend\n",
		},
		{
			name: "multi statement body",
			src:  "def full_name\n  audit!\n  profile.full_name\nend\n",
		},
		{
			name: "no receiver",
			src:  "def full_name\n  build_name\nend\n",
		},
		{
			name: "singleton method",
			src:  "def self.full_name\n  profile.full_name\nend\n",
		},
		{
			name: "private method",
			src:  "private\n\ndef full_name\n  profile.full_name\nend\n",
		},
		{
			name: "inline private modifier",
			src:  "private def full_name\n  profile.full_name\nend\n",
		},
		{
			name:  "public resets visibility",
			src:   "private\n\ndef a\n  x.a\nend\n\npublic\n\ndef b\n  x.b\nend\n",
			want:  1,
			fixed: "private\n\ndef a\n  x.a\nend\n\npublic\n\ndelegate :b, to: :x\n",
		},
		{
			name: "excluded path",
			path: "app/controllers/users_controller.rb",
			src:  "def current_account\n  user.current_account\nend\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.DefaultDelegate()
			cfg.EnforceForPrefixed = tc.prefixed

			path := tc.path
			if path == "" {
				path = modelPath
			}

			offenses, fixed := lint(t, rules.NewDelegate(cfg), path, tc.src)

			if len(offenses) != tc.want {
				t.Fatalf("Got %d offenses, want %d", len(offenses), tc.want)
			}

			if tc.want == 0 {
				return
			}

			if offenses[0].Rule != "delegate" {
				t.Errorf("Got rule %q, want %q", offenses[0].Rule, "delegate")
			}

			if fixed != tc.fixed {
				t.Errorf("Corrected source:\n%s\nwant:\n%s", fixed, tc.fixed)
			}
		})
	}
}

// The offense range covers `def` through the method name, not the whole body.
func TestDelegateOffenseRange(t *testing.T) {
	t.Parallel()

	src := "def full_name\n  profile.full_name\nend\n"

	offenses, _ := lint(t, rules.NewDelegate(config.DefaultDelegate()), modelPath, src)
	if len(offenses) != 1 {
		t.Fatalf("Got %d offenses, want 1", len(offenses))
	}

	if got := src[offenses[0].Range.Start:offenses[0].Range.End]; got != "def full_name" {
		t.Errorf("Offense covers %q, want %q", got, "def full_name")
	}
}
