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

package pattern

import (
	"errors"
	"fmt"

	"railguard/internal/rubyast"
)

// ErrCapture is returned when a rule reads a capture that is missing or has
// a different shape than expected. This indicates a pattern/evaluator bug,
// not bad input, and is surfaced to the host as a fatal condition.
var ErrCapture = errors.New("capture mismatch")

// Captures holds the variable bindings of one successful match: single
// nodes, ordered node sequences, or literal values. Built fresh per match
// attempt and discarded on failure.
type Captures struct {
	values map[string]any
}

func (c *Captures) set(name string, v any) {
	if c.values == nil {
		c.values = make(map[string]any)
	}

	c.values[name] = v
}

func (c *Captures) merge(o *Captures) {
	for name, v := range o.values {
		c.set(name, v)
	}
}

// Node returns a single-node capture.
func (c *Captures) Node(name string) (*rubyast.Node, error) {
	v, ok := c.values[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q not bound", ErrCapture, name)
	}

	n, ok := v.(*rubyast.Node)
	if !ok {
		return nil, fmt.Errorf("%w: %q is %T, expected single node", ErrCapture, name, v)
	}

	return n, nil
}

// List returns an ordered node-sequence capture recorded by [Rest].
func (c *Captures) List(name string) ([]*rubyast.Node, error) {
	v, ok := c.values[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q not bound", ErrCapture, name)
	}

	l, ok := v.([]*rubyast.Node)
	if !ok {
		return nil, fmt.Errorf("%w: %q is %T, expected node sequence", ErrCapture, name, v)
	}

	return l, nil
}

// Text returns a literal capture recorded by [BindText].
func (c *Captures) Text(name string) (string, error) {
	v, ok := c.values[name]
	if !ok {
		return "", fmt.Errorf("%w: %q not bound", ErrCapture, name)
	}

	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %q is %T, expected literal", ErrCapture, name, v)
	}

	return s, nil
}
