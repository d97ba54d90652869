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

package analyzer_test

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"testing"

	"railguard/analyzer"
)

// Fixture files carry `# want "substring"` markers on the lines where an
// offense is expected; a sibling `.fixed` file holds the source after
// correcting to a fixed point. Files without a `.fixed` sibling must come out
// unchanged.
func TestFixtures(t *testing.T) {
	t.Parallel()

	files, err := filepath.Glob(filepath.Join("testdata", "*.rb"))
	if err != nil {
		t.Fatal(err)
	}

	if len(files) == 0 {
		t.Fatal("No fixtures found")
	}

	linter := analyzer.New(analyzer.WithAutocorrect(true))

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			t.Parallel()

			src, err := os.ReadFile(file)
			if err != nil {
				t.Fatal(err)
			}

			result, err := linter.Run(context.Background(), file, src)
			if err != nil {
				t.Fatalf("Can't lint fixture: %v", err)
			}

			checkWants(t, string(src), result.Offenses)

			final := correctedToFixedPoint(t, linter, file, src, result)

			want, err := os.ReadFile(file + ".fixed")
			if errors.Is(err, fs.ErrNotExist) {
				want = src
			} else if err != nil {
				t.Fatal(err)
			}

			if string(final) != string(want) {
				t.Errorf("Corrected source:\n%s\nwant:\n%s", final, want)
			}
		})
	}
}

// correctedToFixedPoint re-lints the rewritten source until no correction
// applies, mirroring how a host applies deferred corrections.
func correctedToFixedPoint(t *testing.T, linter *analyzer.Linter, file string, src []byte, result analyzer.Result) []byte {
	t.Helper()

	final := src

	for pass := 0; result.Fixed != nil; pass++ {
		if pass == 10 {
			t.Fatal("No fixed point after 10 passes")
		}

		final = result.Fixed

		var err error
		if result, err = linter.Run(context.Background(), file, final); err != nil {
			t.Fatalf("Can't re-lint corrected source: %v", err)
		}
	}

	return final
}

var wantRe = regexp.MustCompile(`# want "([^"]*)"`)

// checkWants matches reported offenses against the fixture's want markers:
// every offense must consume a marker on its start line whose text occurs in
// the message, and every marker must be consumed.
func checkWants(t *testing.T, src string, offenses []analyzer.Offense) {
	t.Helper()

	wants := make(map[int][]string)

	for i, line := range strings.Split(src, "\n") {
		for _, m := range wantRe.FindAllStringSubmatch(line, -1) {
			wants[i+1] = append(wants[i+1], m[1])
		}
	}

	for _, o := range offenses {
		idx := slices.IndexFunc(wants[o.Start.Line], func(w string) bool {
			return strings.Contains(o.Message, w)
		})
		if idx < 0 {
			t.Errorf("Unexpected offense on line %d: %s [%s]", o.Start.Line, o.Message, o.Rule)

			continue
		}

		wants[o.Start.Line] = slices.Delete(wants[o.Start.Line], idx, idx+1)
	}

	for line, rest := range wants {
		for _, w := range rest {
			t.Errorf("Missing offense on line %d matching %q", line, w)
		}
	}
}

func TestRuleSelection(t *testing.T) {
	t.Parallel()

	const src = "def full_name\n  profile.full_name\nend\n" +
		"def by_email\n  users.map { |u| [u.email, u] }.to_h\nend\n"

	testCases := [...]struct {
		name string
		opts []analyzer.Option
		want []string
	}{
		{"default", nil, []string{"delegate", "index-by"}},
		{"delegate only", []analyzer.Option{analyzer.WithIndexBy(false)}, []string{"delegate"}},
		{"index-by only", []analyzer.Option{analyzer.WithDelegate(false)}, []string{"index-by"}},
		{
			"none",
			[]analyzer.Option{analyzer.WithDelegate(false), analyzer.WithIndexBy(false)},
			nil,
		},
		{
			"excluded path suppresses delegate",
			[]analyzer.Option{analyzer.WithExcludedPaths([]string{"app/models/"})},
			[]string{"index-by"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			linter := analyzer.New(tc.opts...)

			result, err := linter.Run(context.Background(), "app/models/user.rb", []byte(src))
			if err != nil {
				t.Fatalf("Can't lint: %v", err)
			}

			var got []string
			for _, o := range result.Offenses {
				got = append(got, o.Rule)
			}

			if !slices.Equal(got, tc.want) {
				t.Errorf("Got rules %v, want %v", got, tc.want)
			}
		})
	}
}

func TestPrefixedOption(t *testing.T) {
	t.Parallel()

	const src = "def profile_name\n  profile.name\nend\n"

	linter := analyzer.New(analyzer.WithPrefixed(true), analyzer.WithAutocorrect(true))

	result, err := linter.Run(context.Background(), "app/models/user.rb", []byte(src))
	if err != nil {
		t.Fatalf("Can't lint: %v", err)
	}

	if len(result.Offenses) != 1 {
		t.Fatalf("Got %d offenses, want 1", len(result.Offenses))
	}

	const want = "delegate :name, to: :profile, prefix: true\n"
	if string(result.Fixed) != want {
		t.Errorf("Fixed = %q, want %q", result.Fixed, want)
	}
}

// Without autocorrection the engine reports correctable offenses but never
// produces rewritten source.
func TestReportOnly(t *testing.T) {
	t.Parallel()

	const src = "def full_name\n  profile.full_name\nend\n"

	result, err := analyzer.New().Run(context.Background(), "app/models/user.rb", []byte(src))
	if err != nil {
		t.Fatalf("Can't lint: %v", err)
	}

	if len(result.Offenses) != 1 {
		t.Fatalf("Got %d offenses, want 1", len(result.Offenses))
	}

	o := result.Offenses[0]
	if !o.Correctable || o.Corrected {
		t.Errorf("Got correctable=%t corrected=%t, want correctable and not corrected",
			o.Correctable, o.Corrected)
	}

	if result.Fixed != nil {
		t.Errorf("Got rewritten source %q without autocorrect", result.Fixed)
	}
}

// When two corrections overlap, the one reported first wins the pass and the
// loser stays visible as correctable but uncorrected.
func TestOverlappingCorrections(t *testing.T) {
	t.Parallel()

	const src = "lookup = groups.each_with_object({}) { |g, h| h[g.entries.map { |e| [e.name, e] }.to_h] = g }\n"

	linter := analyzer.New(analyzer.WithAutocorrect(true))

	result, err := linter.Run(context.Background(), "app/models/group.rb", []byte(src))
	if err != nil {
		t.Fatalf("Can't lint: %v", err)
	}

	if len(result.Offenses) != 2 {
		t.Fatalf("Got %d offenses, want 2", len(result.Offenses))
	}

	if !result.Offenses[0].Corrected {
		t.Error("Expected the first-reported offense to win the pass")
	}

	if loser := result.Offenses[1]; !loser.Correctable || loser.Corrected {
		t.Error("Expected the conflicting offense to stay correctable but uncorrected")
	}

	final := correctedToFixedPoint(t, linter, "app/models/group.rb", []byte(src), result)

	const want = "lookup = groups.index_by { |g| g.entries.index_by { |e| e.name } }\n"
	if string(final) != want {
		t.Errorf("Fixed point:\n%s\nwant:\n%s", final, want)
	}
}

func TestParseError(t *testing.T) {
	t.Parallel()

	// Tree-sitter recovers from almost anything, so parse failures surface
	// only for degenerate input; linting must still never panic.
	if _, err := analyzer.New().Run(context.Background(), "empty.rb", nil); err != nil {
		t.Logf("Run returned %v for empty input", err)
	}
}
