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

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"railguard/analyzer"
)

// errOffenses signals uncorrected offenses; the process exits nonzero
// without treating it as a failure.
var errOffenses = errors.New("offenses detected")

// maxFixPasses bounds the re-lint loop when corrections deferred by overlap
// conflicts keep producing new rewrites.
const maxFixPasses = 10

var (
	locationColor  = color.New(color.Bold)
	ruleColor      = color.New(color.FgYellow)
	correctedColor = color.New(color.FgGreen)
)

func newRootCmd() *cobra.Command {
	var (
		fix        bool
		configPath string
		noColor    bool
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "railguard [flags] path ...",
		Short: "Lint Ruby source for delegation and hash-construction smells",
		Long: `Railguard inspects Ruby files for methods that only forward to another
receiver and for each_with_object / map-then-to_h / Hash[] idioms that build
a "key -> element" mapping, and can rewrite both to their preferred forms.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if noColor {
				color.NoColor = true
			}

			if verbose {
				slog.SetLogLoggerLevel(slog.LevelDebug)
			}

			return run(cmd.Context(), cmd.OutOrStdout(), args, fix, configPath)
		},
	}

	cmd.Flags().BoolVarP(&fix, "fix", "f", false, "rewrite offending files in place")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "settings file (default "+defaultConfigName+" when present)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log effective configuration and progress")

	return cmd
}

func run(ctx context.Context, out io.Writer, args []string, fix bool, configPath string) error {
	settings, err := loadSettings(configPath)
	if err != nil {
		return err
	}

	opts := analyzer.Options(settings.Options())
	if fix {
		opts = append(opts, analyzer.WithAutocorrect(true))
	}

	slog.Default().LogAttrs(ctx, slog.LevelDebug, "Configured", opts.LogAttr())

	linter := analyzer.New(opts...)

	files, err := collectFiles(args)
	if err != nil {
		return err
	}

	var detected, corrected int

	for _, path := range files {
		result, err := lintFile(ctx, linter, path, fix)
		if err != nil {
			return err
		}

		for _, o := range result.Offenses {
			printOffense(out, path, o)

			detected++
			if o.Corrected {
				corrected++
			}
		}
	}

	fmt.Fprintf(out, "%d files inspected, %d offenses detected, %d offenses corrected\n",
		len(files), detected, corrected)

	if detected > corrected {
		return errOffenses
	}

	return nil
}

// lintFile lints one file and, when fixing, re-lints the rewritten source
// until no further corrections apply, then writes the result back. Offenses
// are reported from the first pass only; later passes exist to pick up
// corrections deferred by overlap conflicts.
func lintFile(ctx context.Context, linter *analyzer.Linter, path string, fix bool) (analyzer.Result, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return analyzer.Result{}, fmt.Errorf("reading %s: %w", path, err)
	}

	result, err := linter.Run(ctx, path, src)
	if err != nil {
		return analyzer.Result{}, err
	}

	if !fix || result.Fixed == nil {
		return result, nil
	}

	fixed := result.Fixed

	for pass := 1; pass < maxFixPasses; pass++ {
		next, err := linter.Run(ctx, path, fixed)
		if err != nil {
			return analyzer.Result{}, err
		}

		if next.Fixed == nil {
			break
		}

		fixed = next.Fixed
	}

	if err := os.WriteFile(path, fixed, 0o644); err != nil {
		return analyzer.Result{}, fmt.Errorf("writing %s: %w", path, err)
	}

	return result, nil
}

func printOffense(out io.Writer, path string, o analyzer.Offense) {
	var marker string
	if o.Corrected {
		marker = correctedColor.Sprint("[Corrected] ")
	}

	fmt.Fprintf(out, "%s: %s%s %s\n",
		locationColor.Sprintf("%s:%d:%d", path, o.Start.Line, o.Start.Column),
		marker, o.Message, ruleColor.Sprintf("[%s]", o.Rule))
}

// collectFiles expands the path arguments into a list of Ruby files,
// descending into directories and skipping dot-directories and vendored
// trees.
func collectFiles(args []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			files = append(files, arg)

			continue
		}

		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				name := d.Name()
				if path != arg && (strings.HasPrefix(name, ".") || name == "vendor" || name == "node_modules") {
					return filepath.SkipDir
				}

				return nil
			}

			if filepath.Ext(path) == ".rb" {
				files = append(files, path)
			}

			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}
