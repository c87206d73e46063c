// Copyright 2025 Google LLC
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

// Package dims matches concrete array shapes against dimension expressions.
//
// A dimension expression is a string of space-separated tokens, for example
// "b h w 3". Named tokens are dimension variables: their size is recorded in
// a Memo the first time they are seen and every later occurrence, across all
// parameters and the return value of one call, must have the same size.
package dims

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Memo binds dimension variable names to concrete sizes for the duration of
// one checked call. A fresh Memo is created per call and discarded with it;
// recursive and concurrent calls therefore never share bindings.
type Memo struct {
	names   []string
	sizes   map[string]int
	origins map[string]string

	elided   []int
	elidedBy string
	hasRun   bool

	origin string
}

// NewMemo returns an empty memo.
func NewMemo() *Memo {
	return &Memo{
		sizes:   make(map[string]int),
		origins: make(map[string]string),
	}
}

// SetOrigin records the name of the value being matched (a parameter name or
// "return"). Bindings created while that value is matched are attributed to
// it in conflict messages.
func (m *Memo) SetOrigin(origin string) {
	m.origin = origin
}

// ConflictError reports a dimension variable seeing two different sizes
// within the same call.
type ConflictError struct {
	// Dim is the dimension variable name.
	Dim string
	// Bound is the size the variable was first bound to.
	Bound int
	// Seen is the conflicting size.
	Seen int
	// BoundBy names the value that created the binding. Empty if unknown.
	BoundBy string
}

// Error returns the conflict message.
func (e *ConflictError) Error() string {
	if e.BoundBy != "" {
		return fmt.Sprintf("dimension %q bound to %d by %q but got %d", e.Dim, e.Bound, e.BoundBy, e.Seen)
	}
	return fmt.Sprintf("dimension %q bound to %d but got %d", e.Dim, e.Bound, e.Seen)
}

// Unify binds name to size on first use. On later uses, it returns nil if
// size equals the existing binding and a *ConflictError otherwise, without
// mutating the memo.
func (m *Memo) Unify(name string, size int) error {
	bound, ok := m.sizes[name]
	if !ok {
		m.names = append(m.names, name)
		m.sizes[name] = size
		m.origins[name] = m.origin
		return nil
	}
	if bound != size {
		return &ConflictError{Dim: name, Bound: bound, Seen: size, BoundBy: m.origins[name]}
	}
	return nil
}

// UnifyEllipsis binds the run of dimensions elided by the ellipsis token.
// The first occurrence within a call fixes both the run length and the
// per-position sizes; later occurrences must match exactly.
func (m *Memo) UnifyEllipsis(sizes []int) error {
	if !m.hasRun {
		m.elided = append([]int{}, sizes...)
		m.elidedBy = m.origin
		m.hasRun = true
		return nil
	}
	if !equalInts(m.elided, sizes) {
		if m.elidedBy != "" {
			return errors.Errorf("elided dimensions bound to %v by %q but got %v", m.elided, m.elidedBy, sizes)
		}
		return errors.Errorf("elided dimensions bound to %v but got %v", m.elided, sizes)
	}
	return nil
}

// Lookup returns the size bound to a dimension variable.
func (m *Memo) Lookup(name string) (int, bool) {
	size, ok := m.sizes[name]
	return size, ok
}

// Clone returns an independent copy of the memo. Used to try a match without
// committing its bindings.
func (m *Memo) Clone() *Memo {
	c := NewMemo()
	c.names = append(c.names, m.names...)
	for name, size := range m.sizes {
		c.sizes[name] = size
		c.origins[name] = m.origins[name]
	}
	c.elided = append([]int{}, m.elided...)
	c.elidedBy = m.elidedBy
	c.hasRun = m.hasRun
	c.origin = m.origin
	return c
}

// String lists the bindings in the order in which they were created.
func (m *Memo) String() string {
	w := &strings.Builder{}
	w.WriteString("{")
	for i, name := range m.names {
		if i > 0 {
			w.WriteString(", ")
		}
		fmt.Fprintf(w, "%s=%d", name, m.sizes[name])
	}
	if m.hasRun {
		if len(m.names) > 0 {
			w.WriteString(", ")
		}
		fmt.Fprintf(w, "...=%v", m.elided)
	}
	w.WriteString("}")
	return w.String()
}

func equalInts(xs, ys []int) bool {
	if len(xs) != len(ys) {
		return false
	}
	for i, x := range xs {
		if x != ys[i] {
			return false
		}
	}
	return true
}
