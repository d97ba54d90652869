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
	"log/slog"
	"slices"

	"railguard/internal/config"
)

// Option configures specific behavior of a [New] Linter.
type Option interface {
	apply(r *runOptions)
	LogAttr() slog.Attr
}

// Options is a list of [Option] values that itself satisfies the [Option]
// interface.
type Options []Option

// LogValue implements [slog.LogValuer].
func (o Options) LogValue() slog.Value {
	as := make([]slog.Attr, 0, len(o))
	as = appendOptions(as, o)

	return slog.GroupValue(as...)
}

func appendOptions(as []slog.Attr, o Options) []slog.Attr {
	for _, opt := range o {
		switch opt := opt.(type) {
		case nil:
			as = append(as, slog.String("nil", "<nil>"))

		case Options:
			as = appendOptions(as, opt)

		default:
			as = append(as, opt.LogAttr())
		}
	}

	return as
}

func (o Options) apply(r *runOptions) {
	for _, opt := range o {
		if opt == nil {
			continue
		}

		opt.apply(r)
	}
}

// LogAttr is for logging with [slog.Logger.LogAttrs].
func (o Options) LogAttr() slog.Attr {
	return slog.Any("options", o)
}

// WithDelegate is an [Option] to configure whether the delegate rule is
// enabled.
func WithDelegate(delegate bool) Option { return delegateOption{delegate: delegate} }

type delegateOption struct{ delegate bool }

func (o delegateOption) apply(r *runOptions) {
	r.checks.Set(config.DelegateRule, o.delegate)
}

func (o delegateOption) LogAttr() slog.Attr {
	return slog.Bool("delegate", o.delegate)
}

// WithIndexBy is an [Option] to configure whether the index-by rule is
// enabled.
func WithIndexBy(indexBy bool) Option { return indexByOption{indexBy: indexBy} }

type indexByOption struct{ indexBy bool }

func (o indexByOption) apply(r *runOptions) {
	r.checks.Set(config.IndexByRule, o.indexBy)
}

func (o indexByOption) LogAttr() slog.Attr {
	return slog.Bool("index-by", o.indexBy)
}

// WithPrefixed is an [Option] to configure whether prefixed forwarding
// methods (`def bar_foo; bar.foo; end`) are recognized by the delegate rule.
func WithPrefixed(prefixed bool) Option { return prefixedOption{prefixed: prefixed} }

type prefixedOption struct{ prefixed bool }

func (o prefixedOption) apply(r *runOptions) {
	r.delegate.EnforceForPrefixed = o.prefixed
}

func (o prefixedOption) LogAttr() slog.Attr {
	return slog.Bool("prefixed", o.prefixed)
}

// WithExcludedPaths is an [Option] to configure the path fragments that
// suppress the delegate rule.
func WithExcludedPaths(paths []string) Option {
	return excludedPathsOption{paths: slices.Clone(paths)}
}

type excludedPathsOption struct{ paths []string }

func (o excludedPathsOption) apply(r *runOptions) {
	r.delegate.ExcludedPaths = o.paths
}

func (o excludedPathsOption) LogAttr() slog.Attr {
	return slog.Any("excluded-paths", o.paths)
}

// WithAutocorrect is an [Option] to configure whether corrections are
// composed into rewritten source.
func WithAutocorrect(autocorrect bool) Option { return autocorrectOption{autocorrect: autocorrect} }

type autocorrectOption struct{ autocorrect bool }

func (o autocorrectOption) apply(r *runOptions) {
	r.behavior.Set(config.Autocorrect, o.autocorrect)
}

func (o autocorrectOption) LogAttr() slog.Attr {
	return slog.Bool("autocorrect", o.autocorrect)
}
