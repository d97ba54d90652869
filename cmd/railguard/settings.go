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
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"railguard/analyzer"
)

// defaultConfigName is probed in the working directory when no --config flag
// is given.
const defaultConfigName = ".railguard.yml"

// Settings represents the configuration file contents. Every field is
// optional; absent fields leave the engine defaults untouched.
type Settings struct {
	// Autocorrect composes corrections into rewritten source.
	Autocorrect *bool `yaml:"autocorrect"`
	// Delegate configures the delegate rule.
	Delegate *DelegateSettings `yaml:"delegate"`
	// IndexBy configures the index-by rule.
	IndexBy *IndexBySettings `yaml:"index-by"`
}

// DelegateSettings configures the delegate rule.
type DelegateSettings struct {
	// Enabled toggles the rule.
	Enabled *bool `yaml:"enabled"`
	// Prefixed recognizes receiver-prefixed forwarding methods.
	Prefixed *bool `yaml:"prefixed"`
	// ExcludedPaths suppresses the rule for files whose path contains one of
	// these fragments.
	ExcludedPaths []string `yaml:"exclude-paths"`
}

// IndexBySettings configures the index-by rule.
type IndexBySettings struct {
	// Enabled toggles the rule.
	Enabled *bool `yaml:"enabled"`
}

// Options converts [Settings] into a list of [analyzer.Option], applying
// them only when explicitly set (non-nil).
func (s Settings) Options() []analyzer.Option {
	var opts []analyzer.Option

	opts = appendOption(opts, s.Autocorrect, analyzer.WithAutocorrect)

	if d := s.Delegate; d != nil {
		opts = appendOption(opts, d.Enabled, analyzer.WithDelegate)
		opts = appendOption(opts, d.Prefixed, analyzer.WithPrefixed)

		if d.ExcludedPaths != nil {
			opts = append(opts, analyzer.WithExcludedPaths(d.ExcludedPaths))
		}
	}

	if i := s.IndexBy; i != nil {
		opts = appendOption(opts, i.Enabled, analyzer.WithIndexBy)
	}

	return opts
}

// appendOption appends a non-nil setting to an [analyzer.Option] list.
func appendOption[T any](opts []analyzer.Option, value *T, constructor func(T) analyzer.Option) []analyzer.Option {
	if value == nil {
		return opts
	}

	return append(opts, constructor(*value))
}

// loadSettings reads the settings file. Unknown options are rejected, so a
// misspelled key fails at startup instead of being silently ignored. A
// missing file is an error only when it was named explicitly.
func loadSettings(path string) (Settings, error) {
	explicit := path != ""
	if !explicit {
		path = defaultConfigName
	}

	f, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Settings{}, nil
		}

		return Settings{}, fmt.Errorf("reading configuration: %w", err)
	}
	defer f.Close()

	return decodeSettings(f, path)
}

func decodeSettings(r io.Reader, path string) (Settings, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Settings
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) { // empty file
			return Settings{}, nil
		}

		return Settings{}, fmt.Errorf("parsing configuration %s: %w", path, err)
	}

	return s, nil
}
