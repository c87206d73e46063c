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

// Package match compares a runtime value against array specifications.
//
// A Match carries three independent verdicts (backend kind, dtype, shape)
// for one (value, specification) pair. Resolve combines the matches of all
// the members of a union into a single acceptance or a single diagnostic.
package match

import (
	"fmt"

	"github.com/gx-org/backend/shape"
	"github.com/gx-org/shapecheck/check/dims"
	"github.com/gx-org/shapecheck/check/kind"
	"github.com/gx-org/shapecheck/check/spec"
)

// Match is the detailed verdict of one value against one specification.
// All three predicates are computed at construction so that they can be
// inspected independently of each other.
type Match struct {
	value any
	sp    *spec.Spec

	valueKind kind.Kind
	hasKind   bool
	sh        *shape.Shape

	typeOK   bool
	dtypeOK  bool
	shapeOK  bool
	shapeErr error
}

// New matches a value against a specification, binding dimension variables
// through the memo.
func New(value any, sp *spec.Spec, memo *dims.Memo) *Match {
	m := &Match{value: value, sp: sp}
	m.valueKind, m.hasKind = kind.Of(value)
	m.typeOK = m.hasKind && sp.AcceptsKind(m.valueKind)
	m.sh, _ = kind.ShapeOf(value)
	if m.sh == nil {
		return m
	}
	m.dtypeOK = sp.AcceptsDType(m.sh.DType)
	m.shapeErr = sp.Dims().Match(m.sh.AxisLengths, memo)
	m.shapeOK = m.shapeErr == nil
	return m
}

// TypeCorrect reports whether the value's backend kind is acceptable.
func (m *Match) TypeCorrect() bool {
	return m.typeOK
}

// DTypeCorrect reports whether the value's dtype is acceptable.
func (m *Match) DTypeCorrect() bool {
	return m.dtypeOK
}

// ShapeCorrect reports whether the value's shape matches the dimension
// expression.
func (m *Match) ShapeCorrect() bool {
	return m.shapeOK
}

// ShapeError returns why the shape did not match.
func (m *Match) ShapeError() error {
	return m.shapeErr
}

// AllCorrect reports whether the value fully matches the specification.
func (m *Match) AllCorrect() bool {
	return m.typeOK && m.dtypeOK && m.shapeOK
}

// Interesting reports whether this failure is worth showing on its own in a
// combined diagnostic. A wrong-backend candidate is only interesting if the
// dtype happens to match; a candidate wrong on both dtype and shape adds
// nothing once the group message has been shown.
func (m *Match) Interesting() bool {
	if !m.typeOK {
		return m.dtypeOK
	}
	if !m.dtypeOK && !m.shapeOK {
		return false
	}
	return true
}

// FailMessage returns one line explaining the most salient failure, by
// priority: backend kind, then dtype, then shape.
func (m *Match) FailMessage() string {
	if !m.typeOK {
		return fmt.Sprintf("%s because backend kind %s is not one of [%s]", m.sp, m.valueKindName(), joinNames(m.sp.KindNames()))
	}
	if !m.dtypeOK {
		return fmt.Sprintf("%s because of dtype (%s not in [%s])", m.sp, kind.DTypeName(m.sh.DType), joinNames(m.sp.DTypeNames()))
	}
	if !m.shapeOK {
		return fmt.Sprintf("%s because of shape (%v incompatible with %q: %v)", m.sp, m.sh.AxisLengths, m.sp.Dims(), m.shapeErr)
	}
	return fmt.Sprintf("%s matches", m.sp)
}

func (m *Match) valueKindName() string {
	if m.hasKind {
		return fmt.Sprintf("%q", m.valueKind)
	}
	return fmt.Sprintf("%T", m.value)
}
